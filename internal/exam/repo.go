package exam

import (
	"context"
	"errors"

	"github.com/mind-engage/mindengage-authoring/internal/results"
)

var (
	ErrExamNotFound   = errors.New("exam not found")
	ErrResultNotFound = errors.New("result not found")
)

type ListOpts struct {
	Q      string
	Status Status
	Limit  int
	Offset int
}

type Store interface {
	PutExam(ctx context.Context, e Exam) error
	GetExam(ctx context.Context, id string) (Exam, error)
	ListExams(ctx context.Context, opts ListOpts) ([]ExamSummary, error)

	// AddParticipants records phone numbers for an exam, skipping ones that
	// are already present. It returns how many were new.
	AddParticipants(ctx context.Context, examID string, phones []string) (int, error)
	ListParticipants(ctx context.Context, examID string) ([]string, error)

	PutResult(ctx context.Context, examID string, rep results.Report) error
	ListResults(ctx context.Context, examID string) ([]results.Row, error)
	GetReport(ctx context.Context, examID, studentID string) (results.Report, error)
}
