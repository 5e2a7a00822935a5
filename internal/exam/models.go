package exam

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Question struct {
	ID           string       `json:"id"`
	Type         QuestionType `json:"type"`
	Text         string       `json:"text"`
	Answers      []string     `json:"answers"`
	CorrectIndex int          `json:"correct_index"` // -1 when unmarked
}

type Exam struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Status       Status       `json:"status"`
	TotalMarks   int          `json:"total_marks"`
	DurationMin  int          `json:"duration_min"`
	Schedule     time.Time    `json:"schedule"`
	QuestionType QuestionType `json:"question_type"`
	Questions    []Question   `json:"questions"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

type ExamSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      Status `json:"status"`
	TotalMarks  int    `json:"total_marks"`
	DurationMin int    `json:"duration_min"`
	Questions   int    `json:"questions"`
	CreatedAt   int64  `json:"created_at"`
}

func (e Exam) Summary() ExamSummary {
	return ExamSummary{
		ID:          e.ID,
		Name:        e.Name,
		Status:      e.Status,
		TotalMarks:  e.TotalMarks,
		DurationMin: e.DurationMin,
		Questions:   len(e.Questions),
		CreatedAt:   e.CreatedAt,
	}
}

// DefaultSchedule is the next day at 10:00 in now's location.
func DefaultSchedule(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 10, 0, 0, 0, now.Location())
}
