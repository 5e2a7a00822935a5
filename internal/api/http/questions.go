package http

import (
	"log"
	"net/http"

	"github.com/mind-engage/mindengage-authoring/internal/exam"
	"github.com/mind-engage/mindengage-authoring/internal/importer"
	syncx "github.com/mind-engage/mindengage-authoring/internal/sync"
)

// POST /questions/import  (multipart "file", optional form field "type")
// Parses a question bank. When type is given the records are also returned
// as questions ready to drop into a draft.
func ImportQuestionsHandler(up Uploads, events syncx.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := up.read(w, r, importer.AcceptQuestions)
		if err != nil {
			writeErr(w, err)
			return
		}
		var qt exam.QuestionType
		if s := r.FormValue("type"); s != "" {
			if qt, err = exam.ParseQuestionType(s); err != nil || !qt.Authorable() {
				http.Error(w, "unknown question type", http.StatusBadRequest)
				return
			}
		}
		recs, err := importer.ParseQuestions(file.Text, up.Parse)
		if err != nil {
			writeErr(w, err)
			return
		}
		kept := importer.Truncate(recs, importer.MaxQuestions)
		key := up.archive(r.Context(), file)
		if err := events.Record(r.Context(), syncx.TypeQuestionsImported, key, map[string]any{"file": file.Name, "count": len(kept)}); err != nil {
			log.Printf("record event: %v", err)
		}
		resp := map[string]any{
			"records": kept,
			"dropped": len(recs) - len(kept),
			"archive": key,
		}
		if qt != "" {
			resp["questions"] = exam.QuestionsFromRecords(kept, qt)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
