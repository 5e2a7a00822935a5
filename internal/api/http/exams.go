package http

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-authoring/internal/exam"
	"github.com/mind-engage/mindengage-authoring/internal/importer"
	syncx "github.com/mind-engage/mindengage-authoring/internal/sync"
)

// GET /exams?q=&status=&limit=&offset=
func ListExamsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.ListExams(r.Context(), exam.ListOpts{
			Q:      strings.TrimSpace(q.Get("q")),
			Status: exam.Status(q.Get("status")),
			Limit:  parseIntDefault(q.Get("limit"), 50),
			Offset: parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /exams/{examID}
func GetExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := store.GetExam(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

// GET /exams/template?type=mcq
func TemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := exam.ParseQuestionType(r.URL.Query().Get("type"))
		if err != nil || !t.Authorable() {
			http.Error(w, "unknown question type", http.StatusBadRequest)
			return
		}
		q := exam.Template(t)
		labels := make([]string, len(q.Answers))
		placeholders := make([]string, len(q.Answers))
		for i := range q.Answers {
			labels[i] = exam.AnswerLabel(t, i+1)
			placeholders[i] = exam.AnswerPlaceholder(t, i+1)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"type":         t,
			"label":        t.Label(),
			"question":     q,
			"labels":       labels,
			"placeholders": placeholders,
		})
	}
}

type questionInput struct {
	Text         string   `json:"text"`
	Answers      []string `json:"answers"`
	CorrectIndex *int     `json:"correct_index"`
}

type createExamRequest struct {
	Name         string          `json:"name"`
	TotalMarks   int             `json:"total_marks"`
	DurationMin  int             `json:"duration_min"`
	Schedule     time.Time       `json:"schedule"`
	QuestionType string          `json:"question_type"`
	Status       exam.Status     `json:"status"`
	Questions    []questionInput `json:"questions"`
}

// POST /exams
// Builds the exam through a Draft so the same limits and validation apply as
// in the editor. Problems are returned together as 422.
func CreateExamHandler(store exam.Store, events syncx.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createExamRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		now := time.Now()
		d := exam.NewDraft(now)
		d.SetHeader(strings.TrimSpace(req.Name), req.TotalMarks, req.DurationMin, req.Schedule)

		t, err := exam.ParseQuestionType(req.QuestionType)
		if err == nil {
			err = d.SetType(t)
		}
		if err != nil {
			_, problems := d.Build()
			writeProblems(w, problems)
			return
		}
		// The editor starts from one template question; the request replaces it.
		_ = d.RemoveQuestion(0)

		recs := make([]importer.Record, 0, len(req.Questions))
		for _, q := range req.Questions {
			ci := -1
			if q.CorrectIndex != nil {
				ci = *q.CorrectIndex
			}
			recs = append(recs, importer.Record{Prompt: q.Text, Fields: q.Answers, CorrectIndex: ci})
		}
		if _, dropped, err := d.ImportRecords(recs); err != nil {
			writeProblems(w, []string{err.Error()})
			return
		} else if dropped > 0 {
			writeProblems(w, []string{exam.ErrDraftFull.Error()})
			return
		}

		e, problems := d.Build()
		if len(problems) > 0 {
			writeProblems(w, problems)
			return
		}
		e.ID = uuid.NewString()
		e.CreatedAt = now.Unix()
		switch req.Status {
		case exam.StatusActive, exam.StatusCompleted:
			e.Status = req.Status
		}
		if err := store.PutExam(r.Context(), e); err != nil {
			writeErr(w, err)
			return
		}
		if err := events.Record(r.Context(), syncx.TypeExamSaved, e.ID, e.Summary()); err != nil {
			log.Printf("record event: %v", err)
		}
		writeJSON(w, http.StatusCreated, e)
	}
}
