package exam

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-authoring/internal/importer"
)

var (
	ErrDraftFull     = fmt.Errorf("maximum number of questions reached (%d)", importer.MaxQuestions)
	ErrNoSuchItem    = errors.New("no such question or answer")
	ErrTypeNotChosen = errors.New("select a question type first")
)

// Draft holds an exam while it is being authored. Each editing session owns
// its own Draft; nothing is shared between sessions.
type Draft struct {
	exam Exam
	max  int
}

func NewDraft(now time.Time) *Draft {
	return &Draft{
		exam: Exam{Status: StatusDraft, Schedule: DefaultSchedule(now)},
		max:  importer.MaxQuestions,
	}
}

// SetHeader copies the exam-level fields an author fills in.
func (d *Draft) SetHeader(name string, totalMarks, durationMin int, schedule time.Time) {
	d.exam.Name = name
	d.exam.TotalMarks = totalMarks
	d.exam.DurationMin = durationMin
	if !schedule.IsZero() {
		d.exam.Schedule = schedule
	}
}

// SetType picks the question type and resets the questions to a single
// template of that type.
func (d *Draft) SetType(t QuestionType) error {
	if !t.Valid() || !t.Authorable() {
		return fmt.Errorf("question type %q cannot be authored", string(t))
	}
	d.exam.QuestionType = t
	q := Template(t)
	q.ID = uuid.NewString()
	d.exam.Questions = []Question{q}
	return nil
}

func (d *Draft) Len() int       { return len(d.exam.Questions) }
func (d *Draft) Remaining() int { return d.max - len(d.exam.Questions) }

// AddQuestion appends a template question and returns its index.
func (d *Draft) AddQuestion() (int, error) {
	if d.exam.QuestionType == "" {
		return 0, ErrTypeNotChosen
	}
	if d.Remaining() <= 0 {
		return 0, ErrDraftFull
	}
	q := Template(d.exam.QuestionType)
	q.ID = uuid.NewString()
	d.exam.Questions = append(d.exam.Questions, q)
	return len(d.exam.Questions) - 1, nil
}

func (d *Draft) RemoveQuestion(i int) error {
	if i < 0 || i >= len(d.exam.Questions) {
		return ErrNoSuchItem
	}
	d.exam.Questions = append(d.exam.Questions[:i], d.exam.Questions[i+1:]...)
	return nil
}

func (d *Draft) SetQuestionText(i int, text string) error {
	if i < 0 || i >= len(d.exam.Questions) {
		return ErrNoSuchItem
	}
	d.exam.Questions[i].Text = text
	return nil
}

// AddAnswer appends an empty answer to question qi and returns its label.
func (d *Draft) AddAnswer(qi int) (string, error) {
	if qi < 0 || qi >= len(d.exam.Questions) {
		return "", ErrNoSuchItem
	}
	q := &d.exam.Questions[qi]
	q.Answers = append(q.Answers, "")
	return AnswerLabel(q.Type, len(q.Answers)), nil
}

func (d *Draft) SetAnswer(qi, ai int, text string) error {
	if qi < 0 || qi >= len(d.exam.Questions) {
		return ErrNoSuchItem
	}
	q := &d.exam.Questions[qi]
	if ai < 0 || ai >= len(q.Answers) {
		return ErrNoSuchItem
	}
	q.Answers[ai] = text
	return nil
}

// SetCorrect marks answer ai of question qi as the only correct one.
func (d *Draft) SetCorrect(qi, ai int) error {
	if qi < 0 || qi >= len(d.exam.Questions) {
		return ErrNoSuchItem
	}
	q := &d.exam.Questions[qi]
	if ai < 0 || ai >= len(q.Answers) {
		return ErrNoSuchItem
	}
	q.CorrectIndex = ai
	return nil
}

// ImportRecords appends parsed records as questions until the draft is full.
// It returns how many were added and how many were dropped.
func (d *Draft) ImportRecords(recs []importer.Record) (added, dropped int, err error) {
	if d.exam.QuestionType == "" {
		return 0, 0, ErrTypeNotChosen
	}
	qs := QuestionsFromRecords(recs, d.exam.QuestionType)
	room := max(d.Remaining(), 0)
	kept := importer.Truncate(qs, room)
	d.exam.Questions = append(d.exam.Questions, kept...)
	return len(kept), len(qs) - len(kept), nil
}

// Build returns a copy of the drafted exam together with any validation
// problems. Blank template questions are dropped first.
func (d *Draft) Build() (Exam, []string) {
	e := d.exam
	e.Questions = make([]Question, 0, len(d.exam.Questions))
	for _, q := range d.exam.Questions {
		if q.Text == "" && allBlank(q.Answers) {
			continue
		}
		q.Answers = append([]string(nil), q.Answers...)
		e.Questions = append(e.Questions, q)
	}
	return e, Validate(e)
}

func allBlank(ss []string) bool {
	for _, s := range ss {
		if s != "" {
			return false
		}
	}
	return true
}

// QuestionsFromRecords converts parsed upload records into questions of
// type t.
func QuestionsFromRecords(recs []importer.Record, t QuestionType) []Question {
	out := make([]Question, 0, len(recs))
	for _, r := range recs {
		out = append(out, Question{
			ID:           uuid.NewString(),
			Type:         t,
			Text:         r.Prompt,
			Answers:      append([]string{}, r.Fields...),
			CorrectIndex: r.CorrectIndex,
		})
	}
	return out
}
