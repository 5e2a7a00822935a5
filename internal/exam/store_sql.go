package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mind-engage/mindengage-authoring/internal/results"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutExam(ctx context.Context, e Exam) error {
	qj, err := json.Marshal(e.Questions)
	if err != nil {
		return err
	}
	created := e.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	var sched int64
	if !e.Schedule.IsZero() {
		sched = e.Schedule.Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exams (id,name,status,total_marks,duration_min,schedule,question_type,questions_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, status=EXCLUDED.status, total_marks=EXCLUDED.total_marks,
			duration_min=EXCLUDED.duration_min, schedule=EXCLUDED.schedule, question_type=EXCLUDED.question_type,
			questions_json=EXCLUDED.questions_json`,
		e.ID, e.Name, string(e.Status), e.TotalMarks, e.DurationMin, sched, string(e.QuestionType), string(qj), created)
	return err
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (Exam, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,status,total_marks,duration_min,schedule,question_type,questions_json,created_at
		FROM exams WHERE id=$1`, id)
	e, qjson, err := scanExam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exam{}, ErrExamNotFound
		}
		return Exam{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &e.Questions); err != nil {
		return Exam{}, fmt.Errorf("decode questions: %w", err)
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExam(row rowScanner) (Exam, string, error) {
	var (
		e             Exam
		status, qtype string
		sched         int64
		qjson         string
	)
	if err := row.Scan(&e.ID, &e.Name, &status, &e.TotalMarks, &e.DurationMin, &sched, &qtype, &qjson, &e.CreatedAt); err != nil {
		return Exam{}, "", err
	}
	e.Status = Status(status)
	e.QuestionType = QuestionType(qtype)
	if sched != 0 {
		e.Schedule = time.Unix(sched, 0)
	}
	return e, qjson, nil
}

func (s *SQLStore) ListExams(ctx context.Context, opts ListOpts) ([]ExamSummary, error) {
	var (
		where []string
		args  []any
	)
	if q := strings.TrimSpace(opts.Q); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT id,name,status,total_marks,duration_min,schedule,question_type,questions_json,created_at FROM exams`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, max(opts.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ExamSummary{}
	for rows.Next() {
		e, qjson, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(qjson), &e.Questions); err != nil {
			return nil, fmt.Errorf("decode questions for %s: %w", e.ID, err)
		}
		out = append(out, e.Summary())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if opts.Limit <= 0 && opts.Offset > 0 {
		out = page(out, 0, opts.Offset)
	}
	return out, nil
}

func (s *SQLStore) examExists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, examID string) error {
	var one int
	if err := q.QueryRowContext(ctx, `SELECT 1 FROM exams WHERE id=$1`, examID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrExamNotFound
		}
		return err
	}
	return nil
}

func (s *SQLStore) AddParticipants(ctx context.Context, examID string, phones []string) (added int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if err = s.examExists(ctx, tx, examID); err != nil {
		return 0, err
	}
	now := time.Now().Unix()
	for _, p := range phones {
		var res sql.Result
		res, err = tx.ExecContext(ctx, `INSERT INTO exam_participants (exam_id, phone, added_at)
			VALUES ($1,$2,$3) ON CONFLICT (exam_id, phone) DO NOTHING`, examID, p, now)
		if err != nil {
			return added, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}

func (s *SQLStore) ListParticipants(ctx context.Context, examID string) ([]string, error) {
	if err := s.examExists(ctx, s.db, examID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT phone FROM exam_participants WHERE exam_id=$1 ORDER BY seq`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutResult(ctx context.Context, examID string, rep results.Report) error {
	if err := s.examExists(ctx, s.db, examID); err != nil {
		return err
	}
	qj, err := json.Marshal(rep.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exam_results
		(exam_id,student_id,row_id,phone,name,marks,percentage,status,time_taken_sec,questions_json)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (exam_id, student_id) DO UPDATE SET row_id=EXCLUDED.row_id, phone=EXCLUDED.phone, name=EXCLUDED.name,
			marks=EXCLUDED.marks, percentage=EXCLUDED.percentage, status=EXCLUDED.status,
			time_taken_sec=EXCLUDED.time_taken_sec, questions_json=EXCLUDED.questions_json`,
		examID, rep.StudentID, rep.ID, rep.Phone, rep.Name, rep.Marks, rep.Percentage, string(rep.Status),
		rep.TimeTakenSec, string(qj))
	return err
}

func (s *SQLStore) ListResults(ctx context.Context, examID string) ([]results.Row, error) {
	if err := s.examExists(ctx, s.db, examID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT row_id,student_id,phone,name,marks,percentage,status
		FROM exam_results WHERE exam_id=$1 ORDER BY row_id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []results.Row{}
	for rows.Next() {
		var (
			r      results.Row
			status string
		)
		if err := rows.Scan(&r.ID, &r.StudentID, &r.Phone, &r.Name, &r.Marks, &r.Percentage, &status); err != nil {
			return nil, err
		}
		r.Status = results.Status(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetReport(ctx context.Context, examID, studentID string) (results.Report, error) {
	row := s.db.QueryRowContext(ctx, `SELECT row_id,student_id,phone,name,marks,percentage,status,time_taken_sec,questions_json
		FROM exam_results WHERE exam_id=$1 AND student_id=$2`, examID, studentID)
	var (
		rep    results.Report
		status string
		qjson  string
	)
	if err := row.Scan(&rep.ID, &rep.StudentID, &rep.Phone, &rep.Name, &rep.Marks, &rep.Percentage, &status,
		&rep.TimeTakenSec, &qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return results.Report{}, ErrResultNotFound
		}
		return results.Report{}, err
	}
	rep.Status = results.Status(status)
	if err := json.Unmarshal([]byte(qjson), &rep.Questions); err != nil {
		return results.Report{}, fmt.Errorf("decode outcomes: %w", err)
	}
	return rep, nil
}
