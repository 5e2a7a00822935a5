// Package generator produces practice questions from the course catalog.
package generator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/mind-engage/mindengage-authoring/internal/exam"
)

const (
	MinCount = 1
	MaxCount = 100
)

var (
	ErrNoCourses = errors.New("please select at least one course or module")
	ErrNoType    = errors.New("please select a question type")
	ErrBadCount  = fmt.Errorf("please enter a valid number of questions (%d-%d)", MinCount, MaxCount)
)

type Request struct {
	CourseIDs []int             `json:"course_ids"`
	Type      exam.QuestionType `json:"type"`
	Count     int               `json:"count"`
}

// Validate checks the request and resolves the selected courses.
func (r Request) Validate() ([]Course, error) {
	var courses []Course
	for _, id := range r.CourseIDs {
		c, ok := CourseByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown course id %d", id)
		}
		courses = append(courses, c)
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	if !r.Type.Valid() {
		return nil, ErrNoType
	}
	if r.Count < MinCount || r.Count > MaxCount {
		return nil, ErrBadCount
	}
	return courses, nil
}

type Question struct {
	Number       int               `json:"number"`
	Course       string            `json:"course"`
	Type         exam.QuestionType `json:"type"`
	Text         string            `json:"text"`
	Answer       string            `json:"answer"`
	Options      []string          `json:"options"`
	CorrectIndex int               `json:"correct_index"`
}

// Generator builds questions. It is not safe for concurrent use because it
// owns its random source.
type Generator struct {
	rnd *rand.Rand
}

func New(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Generator{rnd: rnd}
}

func (g *Generator) Generate(req Request) ([]Question, error) {
	courses, err := req.Validate()
	if err != nil {
		return nil, err
	}
	out := make([]Question, 0, req.Count)
	for i := 1; i <= req.Count; i++ {
		c := courses[g.rnd.IntN(len(courses))]
		out = append(out, build(i, c.Name, req.Type))
	}
	return out, nil
}

func build(n int, course string, t exam.QuestionType) Question {
	q := Question{Number: n, Course: course, Type: t, Options: []string{}, CorrectIndex: -1}
	switch t {
	case exam.TypeMCQ:
		q.Text = fmt.Sprintf("What is the primary concept in %s?", course)
		q.Options = []string{
			"Option A: Basic principles",
			"Option B: Advanced techniques",
			"Option C: Fundamental theories",
			"Option D: Core concepts",
		}
		q.CorrectIndex = 0
		q.Answer = q.Options[0]
	case exam.TypeSubjective:
		q.Text = fmt.Sprintf("Explain the main principles of %s and how they apply in real-world scenarios.", course)
		q.Answer = fmt.Sprintf("%s involves understanding fundamental concepts that form the basis of the subject. These principles are essential for building a strong foundation and applying knowledge in practical situations.", course)
	case exam.TypeOneLine:
		q.Text = fmt.Sprintf("Define the key term in %s.", course)
		q.Answer = fmt.Sprintf("The key term in %s refers to the fundamental concept that defines the core principles of the subject.", course)
	case exam.TypeTrueFalse:
		q.Text = fmt.Sprintf("%s is a fundamental subject in education.", course)
		q.Options = []string{"True", "False"}
		q.CorrectIndex = 0
		q.Answer = "True"
	case exam.TypeFillBlank:
		q.Text = fmt.Sprintf("The main focus of %s is to understand _____.", course)
		q.Answer = "core concepts and principles"
	case exam.TypeMatching:
		q.Text = fmt.Sprintf("Match the following terms with their definitions in %s:", course)
		q.Options = []string{
			"Term A - Definition 1",
			"Term B - Definition 2",
			"Term C - Definition 3",
			"Term D - Definition 4",
		}
		q.Answer = "A-1, B-2, C-3, D-4"
	default:
		panic(fmt.Sprintf("generator: unhandled question type %q", string(t)))
	}
	return q
}

// Filter keeps questions matching the type and course; empty values match
// everything.
func Filter(qs []Question, t exam.QuestionType, course string) []Question {
	out := []Question{}
	for _, q := range qs {
		if t != "" && q.Type != t {
			continue
		}
		if course != "" && q.Course != course {
			continue
		}
		out = append(out, q)
	}
	return out
}

// WriteCSV writes the spreadsheet export of qs.
func WriteCSV(w io.Writer, qs []Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Question Number", "Question Type", "Course", "Question", "Answer"}); err != nil {
		return err
	}
	for _, q := range qs {
		if err := cw.Write([]string{strconv.Itoa(q.Number), q.Type.Label(), q.Course, q.Text, q.Answer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportFilename(now time.Time) string {
	return "questions_" + now.Format("2006-01-02") + ".csv"
}
