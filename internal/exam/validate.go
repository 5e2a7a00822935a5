package exam

import (
	"fmt"
	"strings"
)

// Validate returns every problem that keeps e from being saved, in the order
// an author would fix them. An empty result means e is valid.
func Validate(e Exam) []string {
	var errs []string
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, "Please enter an exam name")
	}
	if e.TotalMarks < 1 || e.TotalMarks > 1000 {
		errs = append(errs, "Please enter a valid total marks (1-1000)")
	}
	if e.DurationMin < 1 || e.DurationMin > 300 {
		errs = append(errs, "Please enter a valid duration (1-300 minutes)")
	}
	if e.Schedule.IsZero() {
		errs = append(errs, "Please select a schedule")
	}
	if !e.QuestionType.Valid() || !e.QuestionType.Authorable() {
		errs = append(errs, "Please select a question type")
	}
	if len(e.Questions) == 0 {
		errs = append(errs, "Please add at least one question")
	}
	for i, q := range e.Questions {
		for _, msg := range validateQuestion(q) {
			errs = append(errs, fmt.Sprintf("Question %d: %s", i+1, msg))
		}
	}
	return errs
}

func validateQuestion(q Question) []string {
	var errs []string
	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, "Please enter a question")
	}
	filled := 0
	for _, a := range q.Answers {
		if strings.TrimSpace(a) != "" {
			filled++
		}
	}
	marked := q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Answers)

	switch q.Type {
	case TypeMCQ, TypeMatching:
		if filled < 2 {
			errs = append(errs, "Please add at least 2 answers")
		}
		if !marked {
			errs = append(errs, "Please mark a correct answer")
		}
	case TypeTrueFalse:
		if filled != 2 {
			errs = append(errs, "True/False questions need exactly 2 answers")
		}
		if !marked {
			errs = append(errs, "Please mark a correct answer")
		}
	case TypeFillBlank, TypeOneLine:
		if filled < 1 {
			errs = append(errs, "Please add at least 1 answer")
		}
		if q.CorrectIndex != -1 && !marked {
			errs = append(errs, "Correct answer is out of range")
		}
	case TypeSubjective:
		// key points are optional
		if q.CorrectIndex != -1 && !marked {
			errs = append(errs, "Correct answer is out of range")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown question type %q", string(q.Type)))
	}
	return errs
}
