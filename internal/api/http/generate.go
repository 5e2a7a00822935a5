package http

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mind-engage/mindengage-authoring/internal/exam"
	"github.com/mind-engage/mindengage-authoring/internal/generator"
)

// GET /courses?q=&selected=1,2
func CoursesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var selected []int
		for _, s := range strings.Split(r.URL.Query().Get("selected"), ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				selected = append(selected, id)
			}
		}
		writeJSON(w, http.StatusOK, generator.Search(r.URL.Query().Get("q"), selected))
	}
}

// POST /questions/generate?format=csv&type=&course=
// Body is a generator.Request. The optional type and course query values
// filter the generated set before it is returned.
func GenerateQuestionsHandler(g *generator.Generator) http.HandlerFunc {
	var mu sync.Mutex
	return func(w http.ResponseWriter, r *http.Request) {
		var req generator.Request
		if !decodeJSON(w, r, &req) {
			return
		}
		mu.Lock()
		qs, err := g.Generate(req)
		mu.Unlock()
		if err != nil {
			writeProblems(w, []string{err.Error()})
			return
		}
		q := r.URL.Query()
		qs = generator.Filter(qs, exam.QuestionType(q.Get("type")), q.Get("course"))
		if q.Get("format") == "csv" {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="`+generator.ExportFilename(time.Now())+`"`)
			if err := generator.WriteCSV(w, qs); err != nil {
				writeErr(w, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": qs, "count": len(qs)})
	}
}
