package exam

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mind-engage/mindengage-authoring/internal/results"
)

type memoryStore struct {
	mu           sync.RWMutex
	exams        map[string]Exam
	participants map[string][]string
	reports      map[string][]results.Report
}

func NewInMemoryStore() Store {
	return &memoryStore{
		exams:        map[string]Exam{},
		participants: map[string][]string{},
		reports:      map[string][]results.Report{},
	}
}

func (m *memoryStore) PutExam(_ context.Context, e Exam) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.CreatedAt == 0 {
		if old, ok := m.exams[e.ID]; ok {
			e.CreatedAt = old.CreatedAt
		} else {
			e.CreatedAt = time.Now().Unix()
		}
	}
	e.Questions = slices.Clone(e.Questions)
	m.exams[e.ID] = e
	return nil
}

func (m *memoryStore) GetExam(_ context.Context, id string) (Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[id]
	if !ok {
		return Exam{}, ErrExamNotFound
	}
	e.Questions = slices.Clone(e.Questions)
	return e, nil
}

func (m *memoryStore) ListExams(_ context.Context, opts ListOpts) ([]ExamSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(opts.Q))
	out := []ExamSummary{}
	for _, e := range m.exams {
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		if opts.Status != "" && e.Status != opts.Status {
			continue
		}
		out = append(out, e.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return page(out, opts.Limit, opts.Offset), nil
}

func (m *memoryStore) AddParticipants(_ context.Context, examID string, phones []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[examID]; !ok {
		return 0, ErrExamNotFound
	}
	cur := m.participants[examID]
	added := 0
	for _, p := range phones {
		if slices.Contains(cur, p) {
			continue
		}
		cur = append(cur, p)
		added++
	}
	m.participants[examID] = cur
	return added, nil
}

func (m *memoryStore) ListParticipants(_ context.Context, examID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.exams[examID]; !ok {
		return nil, ErrExamNotFound
	}
	return append([]string{}, m.participants[examID]...), nil
}

func (m *memoryStore) PutResult(_ context.Context, examID string, rep results.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[examID]; !ok {
		return ErrExamNotFound
	}
	reps := m.reports[examID]
	for i := range reps {
		if reps[i].StudentID == rep.StudentID {
			reps[i] = rep
			return nil
		}
	}
	m.reports[examID] = append(reps, rep)
	return nil
}

func (m *memoryStore) ListResults(_ context.Context, examID string) ([]results.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.exams[examID]; !ok {
		return nil, ErrExamNotFound
	}
	out := []results.Row{}
	for _, r := range m.reports[examID] {
		out = append(out, r.Row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) GetReport(_ context.Context, examID, studentID string) (results.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reports[examID] {
		if r.StudentID == studentID {
			return r, nil
		}
	}
	return results.Report{}, ErrResultNotFound
}

func page[T any](s []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(s) {
			return s[:0]
		}
		s = s[offset:]
	}
	if limit > 0 && len(s) > limit {
		s = s[:limit]
	}
	return s
}
