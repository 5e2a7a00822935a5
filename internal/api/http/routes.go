package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/mind-engage/mindengage-authoring/internal/auth/middleware"
	"github.com/mind-engage/mindengage-authoring/internal/exam"
	"github.com/mind-engage/mindengage-authoring/internal/generator"
	"github.com/mind-engage/mindengage-authoring/internal/prefs"
	"github.com/mind-engage/mindengage-authoring/internal/rbac"
	syncx "github.com/mind-engage/mindengage-authoring/internal/sync"
)

// Deps is everything the API routes need.
type Deps struct {
	Auth        *auth.AuthService
	Credentials auth.Credentials
	Exams       exam.Store
	Prefs       prefs.Store
	Events      syncx.Recorder
	Uploads     Uploads
	Generator   *generator.Generator
	// Ready backs /readyz; nil means always ready.
	Ready func(ctx context.Context) error
}

// Mount registers the public and protected routes on r.
func Mount(r chi.Router, d Deps) {
	if d.Events == nil {
		d.Events = syncx.Discard{}
	}
	if d.Generator == nil {
		d.Generator = generator.New(nil)
	}

	r.Post("/auth/login", auth.LoginHandler(d.Auth, d.Credentials))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require(rbac.PermExamView)).Get("/exams", ListExamsHandler(d.Exams))
		pr.With(rbac.Require(rbac.PermExamCreate)).Post("/exams", CreateExamHandler(d.Exams, d.Events))
		pr.With(rbac.Require(rbac.PermExamCreate)).Get("/exams/template", TemplateHandler())
		pr.With(rbac.Require(rbac.PermExamView)).Get("/exams/{examID}", GetExamHandler(d.Exams))

		pr.Route("/exams/{examID}/participants", func(pp chi.Router) {
			pp.Use(rbac.Require(rbac.PermParticipants))
			pp.Get("/", ListParticipantsHandler(d.Exams))
			pp.Post("/", AddParticipantsHandler(d.Exams, d.Events))
			pp.Post("/import", ImportParticipantsHandler(d.Exams, d.Uploads, d.Events))
		})

		pr.Route("/exams/{examID}/results", func(rr chi.Router) {
			rr.With(rbac.Require(rbac.PermResultsView)).Get("/", ListResultsHandler(d.Exams))
			rr.With(rbac.Require(rbac.PermResultsExport)).Get("/export", ExportResultsHandler(d.Exams))
			rr.With(rbac.Require(rbac.PermResultsView)).Get("/{studentID}", GetReportHandler(d.Exams))
		})

		pr.With(rbac.Require(rbac.PermQuestionsImport)).Post("/questions/import", ImportQuestionsHandler(d.Uploads, d.Events))
		pr.With(rbac.Require(rbac.PermQuestionsGenerate)).Get("/courses", CoursesHandler())
		pr.With(rbac.Require(rbac.PermQuestionsGenerate)).Post("/questions/generate", GenerateQuestionsHandler(d.Generator))

		pr.Route("/prefs/theme", func(tr chi.Router) {
			tr.Use(rbac.Require(rbac.PermPrefsSelf))
			tr.Get("/", GetThemeHandler(d.Prefs))
			tr.Put("/", PutThemeHandler(d.Prefs))
			tr.Post("/toggle", ToggleThemeHandler(d.Prefs))
		})
	})
}
