package results

import (
	"fmt"
	"math"
	"strings"
)

type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// PassPercentage is the lowest percentage that counts as a pass.
const PassPercentage = 70.0

func StatusFor(pct float64) Status {
	if pct >= PassPercentage {
		return StatusPassed
	}
	return StatusFailed
}

func (s Status) Label() string {
	if s == StatusPassed {
		return "Passed"
	}
	return "Failed"
}

// Row is one participant's result for an exam.
type Row struct {
	ID         int     `json:"id"`
	StudentID  string  `json:"student_id"`
	Phone      string  `json:"phone"`
	Name       string  `json:"name"`
	Marks      int     `json:"marks"`
	Percentage float64 `json:"percentage"`
	Status     Status  `json:"status"`
}

// DisplayName renders the participant as "01840000000 (John Doe)".
func (r Row) DisplayName() string {
	if r.Name == "" {
		return r.Phone
	}
	return fmt.Sprintf("%s (%s)", r.Phone, r.Name)
}

func (r Row) DisplayID() string { return "ID: " + r.StudentID }

// Search keeps rows whose display name or student ID contains q, ignoring
// case. A blank query keeps everything.
func Search(rows []Row, q string) []Row {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return append([]Row(nil), rows...)
	}
	var out []Row
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.DisplayName()), q) ||
			strings.Contains(strings.ToLower(r.DisplayID()), q) {
			out = append(out, r)
		}
	}
	return out
}

// Filter keeps rows with the given status. An empty status keeps everything.
func Filter(rows []Row, status Status) []Row {
	if status == "" {
		return append([]Row(nil), rows...)
	}
	var out []Row
	for _, r := range rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

type Summary struct {
	Name         string  `json:"name"`
	Participants int     `json:"participants"`
	AverageScore float64 `json:"average_score"`
}

func Summarize(name string, rows []Row) Summary {
	s := Summary{Name: name, Participants: len(rows)}
	if len(rows) == 0 {
		return s
	}
	var sum float64
	for _, r := range rows {
		sum += r.Percentage
	}
	s.AverageScore = math.Round(sum/float64(len(rows))*10) / 10
	return s
}

// Performance is the headline label for a percentage.
func Performance(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent"
	case pct >= 75:
		return "Good"
	case pct >= 60:
		return "Average"
	default:
		return "Needs Improvement"
	}
}
