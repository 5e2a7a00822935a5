package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-authoring/internal/exam"
	"github.com/mind-engage/mindengage-authoring/internal/results"
)

func parseStatus(s string) (results.Status, bool) {
	switch st := results.Status(strings.ToLower(s)); st {
	case "", "all":
		return "", true
	case results.StatusPassed, results.StatusFailed:
		return st, true
	default:
		return "", false
	}
}

// GET /exams/{examID}/results?q=&status=
// The summary always covers every participant; q and status only narrow the
// rows returned.
func ListResultsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		status, ok := parseStatus(r.URL.Query().Get("status"))
		if !ok {
			http.Error(w, "status must be passed or failed", http.StatusBadRequest)
			return
		}
		e, err := store.GetExam(r.Context(), examID)
		if err != nil {
			writeErr(w, err)
			return
		}
		rows, err := store.ListResults(r.Context(), examID)
		if err != nil {
			writeErr(w, err)
			return
		}
		shown := results.Filter(results.Search(rows, r.URL.Query().Get("q")), status)
		if shown == nil {
			shown = []results.Row{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"summary": results.Summarize(e.Name, rows),
			"results": shown,
		})
	}
}

// GET /exams/{examID}/results/export?q=&status=
func ExportResultsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		status, ok := parseStatus(r.URL.Query().Get("status"))
		if !ok {
			http.Error(w, "status must be passed or failed", http.StatusBadRequest)
			return
		}
		rows, err := store.ListResults(r.Context(), examID)
		if err != nil {
			writeErr(w, err)
			return
		}
		rows = results.Filter(results.Search(rows, r.URL.Query().Get("q")), status)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="exam_results.csv"`)
		if err := results.WriteCSV(w, rows); err != nil {
			writeErr(w, err)
		}
	}
}

// GET /exams/{examID}/results/{studentID}
func GetReportHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := store.GetReport(r.Context(), chi.URLParam(r, "examID"), chi.URLParam(r, "studentID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		correct, incorrect := rep.Tally()
		writeJSON(w, http.StatusOK, map[string]any{
			"report":       rep,
			"display_name": rep.DisplayName(),
			"display_id":   rep.DisplayID(),
			"status_label": rep.Status.Label(),
			"correct":      correct,
			"incorrect":    incorrect,
			"performance":  rep.Performance(),
		})
	}
}
