package exam

import (
	"fmt"
	"strconv"
)

// QuestionType is the closed set of question kinds the service knows about.
type QuestionType string

const (
	TypeMCQ        QuestionType = "mcq"
	TypeTrueFalse  QuestionType = "true-false"
	TypeFillBlank  QuestionType = "fill-blank"
	TypeSubjective QuestionType = "subjective"
	TypeOneLine    QuestionType = "one-line"
	TypeMatching   QuestionType = "matching"
)

// AllTypes lists every question type in display order.
var AllTypes = []QuestionType{TypeMCQ, TypeSubjective, TypeOneLine, TypeTrueFalse, TypeFillBlank, TypeMatching}

func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return t, nil
}

func (t QuestionType) Valid() bool {
	switch t {
	case TypeMCQ, TypeTrueFalse, TypeFillBlank, TypeSubjective, TypeOneLine, TypeMatching:
		return true
	}
	return false
}

// Authorable reports whether exams can be created with this type by hand.
// The remaining types only come out of the generator.
func (t QuestionType) Authorable() bool {
	switch t {
	case TypeMCQ, TypeTrueFalse, TypeFillBlank, TypeSubjective:
		return true
	case TypeOneLine, TypeMatching:
		return false
	default:
		panic(fmt.Sprintf("exam: unhandled question type %q", string(t)))
	}
}

func (t QuestionType) Label() string {
	switch t {
	case TypeMCQ:
		return "MCQ"
	case TypeSubjective:
		return "Subjective"
	case TypeOneLine:
		return "One Line Answer"
	case TypeTrueFalse:
		return "True/False"
	case TypeFillBlank:
		return "Fill in the Blank"
	case TypeMatching:
		return "Matching"
	default:
		return string(t)
	}
}

// AnswerLabel is the marker shown next to the n-th (1-based) answer input.
func AnswerLabel(t QuestionType, n int) string {
	switch t {
	case TypeMCQ, TypeMatching:
		return string(rune('A' + n - 1))
	case TypeSubjective:
		return "✓"
	case TypeFillBlank, TypeTrueFalse, TypeOneLine:
		return strconv.Itoa(n)
	default:
		panic(fmt.Sprintf("exam: unhandled question type %q", string(t)))
	}
}

// AnswerPlaceholder is the hint text for the n-th (1-based) answer input.
func AnswerPlaceholder(t QuestionType, n int) string {
	switch t {
	case TypeMCQ, TypeMatching:
		return "Option " + AnswerLabel(t, n)
	case TypeFillBlank:
		return "Answer for blank " + strconv.Itoa(n)
	case TypeSubjective:
		return "Additional key point"
	case TypeTrueFalse, TypeOneLine:
		return "Answer " + strconv.Itoa(n)
	default:
		panic(fmt.Sprintf("exam: unhandled question type %q", string(t)))
	}
}

// Template returns an empty question of the given type, pre-filled with the
// inputs an author sees when picking that type.
func Template(t QuestionType) Question {
	q := Question{Type: t, CorrectIndex: -1}
	switch t {
	case TypeMCQ:
		q.Answers = make([]string, 4)
	case TypeTrueFalse:
		q.Answers = []string{"True", "False"}
	case TypeFillBlank:
		q.Answers = make([]string, 2)
	case TypeSubjective, TypeOneLine:
		q.Answers = make([]string, 1)
	case TypeMatching:
		q.Answers = make([]string, 4)
	default:
		panic(fmt.Sprintf("exam: unhandled question type %q", string(t)))
	}
	return q
}
