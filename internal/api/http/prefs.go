package http

import (
	"net/http"

	auth "github.com/mind-engage/mindengage-authoring/internal/auth/middleware"
	"github.com/mind-engage/mindengage-authoring/internal/prefs"
)

func themeResponse(w http.ResponseWriter, t prefs.Theme) {
	writeJSON(w, http.StatusOK, map[string]string{"theme": string(t)})
}

// GET /prefs/theme
func GetThemeHandler(store prefs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := prefs.GetTheme(r.Context(), store, auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		themeResponse(w, t)
	}
}

// PUT /prefs/theme  { "theme": "dark" }
func PutThemeHandler(store prefs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Theme string `json:"theme"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		t, err := prefs.ParseTheme(req.Theme)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := prefs.SetTheme(r.Context(), store, auth.SubjectFromContext(r.Context()), t); err != nil {
			writeErr(w, err)
			return
		}
		themeResponse(w, t)
	}
}

// POST /prefs/theme/toggle
func ToggleThemeHandler(store prefs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := prefs.ToggleTheme(r.Context(), store, auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		themeResponse(w, t)
	}
}
