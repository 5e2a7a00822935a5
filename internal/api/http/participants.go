package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-authoring/internal/exam"
	"github.com/mind-engage/mindengage-authoring/internal/importer"
	"github.com/mind-engage/mindengage-authoring/internal/roster"
	syncx "github.com/mind-engage/mindengage-authoring/internal/sync"
)

// GET /exams/{examID}/participants
func ListParticipantsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		phones, err := store.ListParticipants(r.Context(), examID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"exam_id": examID, "phones": phones})
	}
}

// POST /exams/{examID}/participants  { "phones": ["01840000000", ...] }
func AddParticipantsHandler(store exam.Store, events syncx.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		var req struct {
			Phones []string `json:"phones"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		ro := roster.New()
		if ro.Replace(req.Phones) > 0 {
			writeProblems(w, []string{roster.ErrFull.Error()})
			return
		}
		phones, err := ro.Ready()
		if err != nil {
			_, problems := ro.Validate()
			if len(problems) == 0 {
				problems = []string{err.Error()}
			}
			writeProblems(w, problems)
			return
		}
		added, err := store.AddParticipants(r.Context(), examID, phones)
		if err != nil {
			writeErr(w, err)
			return
		}
		if err := events.Record(r.Context(), syncx.TypeParticipantsAdded, examID, map[string]any{"phones": phones, "added": added}); err != nil {
			log.Printf("record event: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{"exam_id": examID, "added": added, "submitted": len(phones)})
	}
}

// POST /exams/{examID}/participants/import  (multipart "file", CSV)
// Returns the roster the upload produces; nothing is saved until the author
// posts it back to /participants.
func ImportParticipantsHandler(store exam.Store, up Uploads, events syncx.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		if _, err := store.GetExam(r.Context(), examID); err != nil {
			writeErr(w, err)
			return
		}
		file, err := up.read(w, r, importer.AcceptUsers)
		if err != nil {
			writeErr(w, err)
			return
		}
		ro := roster.New()
		dropped := ro.Replace(importer.ParseUsers(file.Text))
		_, invalid := ro.Validate()
		key := up.archive(r.Context(), file)
		if err := events.Record(r.Context(), syncx.TypeUsersImported, examID, map[string]any{"file": file.Name, "archive": key, "count": ro.Len()}); err != nil {
			log.Printf("record event: %v", err)
		}
		if invalid == nil {
			invalid = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"phones":  ro.Entries(),
			"dropped": dropped,
			"invalid": invalid,
			"archive": key,
		})
	}
}
