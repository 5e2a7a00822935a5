package exam

import (
	"context"
	"fmt"
	"time"

	"github.com/mind-engage/mindengage-authoring/internal/results"
)

type seedResult struct {
	studentID, phone, name string
	marks                  int
	pct                    float64
}

// SeedDemo loads a small fixed set of exams and results so a fresh
// development database has something to show. It is safe to run repeatedly.
func SeedDemo(ctx context.Context, s Store) error {
	base := time.Date(2024, time.December, 13, 9, 0, 0, 0, time.UTC)
	exams := []struct {
		exam    Exam
		results []seedResult
	}{
		{
			exam: Exam{ID: "1", Name: "Text Exam 1", Status: StatusActive, TotalMarks: 100, DurationMin: 60},
			results: []seedResult{
				{"001", "01840000000", "John Doe", 100, 100},
				{"002", "01840000001", "Jane Smith", 85, 85},
				{"003", "01840000002", "Mike Johnson", 65, 65},
				{"004", "01840000003", "Sarah Wilson", 92, 92},
			},
		},
		{
			exam: Exam{ID: "2", Name: "Mathematics Quiz", Status: StatusDraft, TotalMarks: 50, DurationMin: 30},
			results: []seedResult{
				{"005", "01840000004", "Alex Brown", 45, 90},
				{"006", "01840000005", "Emma Davis", 40, 80},
			},
		},
		{
			exam: Exam{ID: "3", Name: "Science Assessment", Status: StatusCompleted, TotalMarks: 75, DurationMin: 45},
			results: []seedResult{
				{"007", "01840000006", "Tom Wilson", 60, 80},
				{"008", "01840000007", "Lisa Anderson", 52, 69},
			},
		},
	}

	for i, x := range exams {
		e := x.exam
		e.QuestionType = TypeMCQ
		e.Schedule = base.AddDate(0, 0, 2-i).Add(time.Hour)
		e.CreatedAt = base.AddDate(0, 0, 2-i).Unix()
		e.Questions = []Question{demoQuestion(e.ID)}
		if err := s.PutExam(ctx, e); err != nil {
			return fmt.Errorf("seed exam %s: %w", e.ID, err)
		}
		phones := make([]string, 0, len(x.results))
		for j, r := range x.results {
			rep := results.Report{
				Row: results.Row{
					ID:         j + 1,
					StudentID:  r.studentID,
					Phone:      r.phone,
					Name:       r.name,
					Marks:      r.marks,
					Percentage: r.pct,
					Status:     results.StatusFor(r.pct),
				},
			}
			if e.ID == "1" && j == 0 {
				rep.TimeTakenSec = 45 * 60
				rep.Questions = demoOutcomes()
			}
			if err := s.PutResult(ctx, e.ID, rep); err != nil {
				return fmt.Errorf("seed result %s/%s: %w", e.ID, r.studentID, err)
			}
			phones = append(phones, r.phone)
		}
		if _, err := s.AddParticipants(ctx, e.ID, phones); err != nil {
			return fmt.Errorf("seed participants %s: %w", e.ID, err)
		}
	}
	return nil
}

func demoQuestion(examID string) Question {
	return Question{
		ID:           "demo-" + examID + "-1",
		Type:         TypeMCQ,
		Text:         "What is the capital of Bangladesh?",
		Answers:      []string{"Chittagong", "Dhaka", "Sylhet", "Rajshahi"},
		CorrectIndex: 1,
	}
}

func demoOutcomes() []results.QuestionOutcome {
	opts := func(correct string, texts ...string) []results.Option {
		out := make([]results.Option, len(texts))
		for i, t := range texts {
			label := AnswerLabel(TypeMCQ, i+1)
			out[i] = results.Option{Label: label, Text: t, Correct: label == correct}
		}
		return out
	}
	return []results.QuestionOutcome{
		{Number: 1, Text: "Sample Question", Options: opts("C", "Sample Option", "Sample Option", "Sample Option", "Sample Option"), StudentAnswer: "C"},
		{Number: 2, Text: "What is the capital of Bangladesh?", Options: opts("B", "Chittagong", "Dhaka", "Sylhet", "Rajshahi"), StudentAnswer: "A"},
		{Number: 3, Text: "Which programming language is known as the language of the web?", Options: opts("D", "Python", "Java", "C++", "JavaScript"), StudentAnswer: "D"},
	}
}
