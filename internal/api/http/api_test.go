package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/mind-engage/mindengage-authoring/internal/api/http"
	auth "github.com/mind-engage/mindengage-authoring/internal/auth/middleware"
	"github.com/mind-engage/mindengage-authoring/internal/exam"
	"github.com/mind-engage/mindengage-authoring/internal/importer"
	"github.com/mind-engage/mindengage-authoring/internal/prefs"
	"github.com/mind-engage/mindengage-authoring/internal/storage"
)

type recordedEvent struct{ typ, key string }

type fakeRecorder struct{ events []recordedEvent }

func (f *fakeRecorder) Record(_ context.Context, typ, key string, _ any) error {
	f.events = append(f.events, recordedEvent{typ, key})
	return nil
}

type testServer struct {
	t       *testing.T
	h       http.Handler
	authSvc *auth.AuthService
	events  *fakeRecorder
	teacher string
	student string
}

func newTestServer(t *testing.T, parse importer.Options) *testServer {
	t.Helper()
	ctx := context.Background()
	store := exam.NewInMemoryStore()
	if err := exam.SeedDemo(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	blobs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts := &testServer{t: t, authSvc: auth.NewAuthService("test-secret"), events: &fakeRecorder{}}
	r := chi.NewRouter()
	api.Mount(r, api.Deps{
		Auth:        ts.authSvc,
		Credentials: auth.Credentials{AdminUser: "admin", AllowDev: true},
		Exams:       store,
		Prefs:       prefs.NewMemoryStore(),
		Events:      ts.events,
		Uploads:     api.Uploads{Blobs: blobs, MaxBytes: 1 << 16, Parse: parse},
	})
	ts.h = r
	ts.teacher, _ = ts.authSvc.IssueJWT("rahim", "teacher")
	ts.student, _ = ts.authSvc.IssueJWT("karim", "student")
	return ts
}

func (ts *testServer) do(method, path, token string, body []byte, contentType string) *httptest.ResponseRecorder {
	ts.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) json(method, path string, v any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var body []byte
	if v != nil {
		var err error
		if body, err = json.Marshal(v); err != nil {
			ts.t.Fatal(err)
		}
	}
	return ts.do(method, path, ts.teacher, body, "application/json")
}

func (ts *testServer) upload(path, filename, contentType, content string, fields map[string]string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		ts.t.Fatal(err)
	}
	_, _ = part.Write([]byte(content))
	_ = mw.Close()
	return ts.do(http.MethodPost, path, ts.teacher, buf.Bytes(), mw.FormDataContentType())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthAndAuth(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	if rec := ts.do(http.MethodGet, "/healthz", "", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := ts.do(http.MethodGet, "/readyz", "", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
	if rec := ts.do(http.MethodGet, "/exams", "", nil, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}
	rec := ts.do(http.MethodPost, "/auth/login", "", []byte(`{"username":"nadia","password":"nadia"}`), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	tok := decode[map[string]string](t, rec)["access_token"]
	if rec := ts.do(http.MethodGet, "/exams", tok, nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("token from login rejected: %d", rec.Code)
	}
}

func TestStudentCannotAuthor(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	if rec := ts.do(http.MethodPost, "/exams", ts.student, []byte(`{}`), "application/json"); rec.Code != http.StatusForbidden {
		t.Fatalf("create as student: %d", rec.Code)
	}
	if rec := ts.do(http.MethodGet, "/exams/1/results", ts.student, nil, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("results as student: %d", rec.Code)
	}
	if rec := ts.do(http.MethodGet, "/exams/1", ts.student, nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("view as student: %d", rec.Code)
	}
}

func TestListAndGetExams(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	list := decode[[]exam.ExamSummary](t, ts.json(http.MethodGet, "/exams", nil))
	if len(list) != 3 || list[0].ID != "1" {
		t.Fatalf("list = %+v", list)
	}
	list = decode[[]exam.ExamSummary](t, ts.json(http.MethodGet, "/exams?status=draft", nil))
	if len(list) != 1 || list[0].Name != "Mathematics Quiz" {
		t.Fatalf("drafts = %+v", list)
	}
	if rec := ts.json(http.MethodGet, "/exams/nope", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing exam: %d", rec.Code)
	}
}

func TestTemplate(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.json(http.MethodGet, "/exams/template?type=mcq", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("template: %d", rec.Code)
	}
	got := decode[struct {
		Question exam.Question `json:"question"`
		Labels   []string      `json:"labels"`
	}](t, rec)
	if len(got.Question.Answers) != 4 || strings.Join(got.Labels, "") != "ABCD" {
		t.Fatalf("template = %+v", got)
	}
	if rec := ts.json(http.MethodGet, "/exams/template?type=matching", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("matching is not authorable: %d", rec.Code)
	}
}

func TestCreateExam(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	body := map[string]any{
		"name":          "Geography Quiz",
		"total_marks":   20,
		"duration_min":  15,
		"question_type": "mcq",
		"questions": []map[string]any{
			{"text": "Capital of Bangladesh?", "answers": []string{"Dhaka", "Sylhet"}, "correct_index": 0},
		},
	}
	rec := ts.json(http.MethodPost, "/exams", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	e := decode[exam.Exam](t, rec)
	if e.ID == "" || e.Status != exam.StatusDraft || e.Schedule.IsZero() || len(e.Questions) != 1 {
		t.Fatalf("exam = %+v", e)
	}
	if rec := ts.json(http.MethodGet, "/exams/"+e.ID, nil); rec.Code != http.StatusOK {
		t.Fatalf("get created: %d", rec.Code)
	}
	if len(ts.events.events) != 1 || ts.events.events[0].key != e.ID {
		t.Fatalf("events = %+v", ts.events.events)
	}
}

func TestCreateExamReportsProblems(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.json(http.MethodPost, "/exams", map[string]any{
		"name":          "",
		"total_marks":   20,
		"duration_min":  15,
		"question_type": "mcq",
		"questions":     []map[string]any{{"text": "Only one answer", "answers": []string{"x"}}},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d", rec.Code)
	}
	errs := decode[map[string][]string](t, rec)["errors"]
	if len(errs) < 2 || errs[0] != "Please enter an exam name" || !strings.HasPrefix(errs[len(errs)-1], "Question 1:") {
		t.Fatalf("errors = %v", errs)
	}

	qs := make([]map[string]any, 51)
	for i := range qs {
		qs[i] = map[string]any{"text": "q", "answers": []string{"a", "b"}, "correct_index": 1}
	}
	rec = ts.json(http.MethodPost, "/exams", map[string]any{
		"name": "Too long", "total_marks": 10, "duration_min": 10, "question_type": "mcq", "questions": qs,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("51 questions: %d", rec.Code)
	}
}

func TestParticipants(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.json(http.MethodPost, "/exams/2/participants", map[string]any{
		"phones": []string{"01912345678", "", "01840000004"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add: %d %s", rec.Code, rec.Body.String())
	}
	if added := decode[struct {
		Added int `json:"added"`
	}](t, rec).Added; added != 1 {
		t.Fatalf("added = %d", added)
	}
	got := decode[struct {
		Phones []string `json:"phones"`
	}](t, ts.json(http.MethodGet, "/exams/2/participants", nil))
	if len(got.Phones) != 3 || got.Phones[2] != "01912345678" {
		t.Fatalf("phones = %v", got.Phones)
	}

	rec = ts.json(http.MethodPost, "/exams/2/participants", map[string]any{"phones": []string{"01912345678", "12345"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid: %d", rec.Code)
	}
	if errs := decode[map[string][]string](t, rec)["errors"]; len(errs) != 1 || errs[0] != "User 2: Invalid phone number format" {
		t.Fatalf("errors = %v", errs)
	}
	if rec := ts.json(http.MethodPost, "/exams/2/participants", map[string]any{"phones": []string{}}); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty: %d", rec.Code)
	}
	if rec := ts.json(http.MethodPost, "/exams/nope/participants", map[string]any{"phones": []string{"01912345678"}}); rec.Code != http.StatusNotFound {
		t.Fatalf("missing exam: %d", rec.Code)
	}
}

func TestImportParticipants(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	var csv strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&csv, "0171%07d,Student %d\n", i, i)
	}
	csv.WriteString("bad-number\n")
	rec := ts.upload("/exams/1/participants/import", "users.csv", "text/csv", csv.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: %d %s", rec.Code, rec.Body.String())
	}
	got := decode[struct {
		Phones  []string `json:"phones"`
		Dropped int      `json:"dropped"`
		Invalid []string `json:"invalid"`
		Archive string   `json:"archive"`
	}](t, rec)
	if len(got.Phones) != 20 || got.Phones[0] != "01710000000" || got.Dropped != 5 || len(got.Invalid) != 0 {
		t.Fatalf("import = %+v", got)
	}
	if !strings.HasPrefix(got.Archive, "imports/") {
		t.Fatalf("archive = %q", got.Archive)
	}
	if rec := ts.upload("/exams/1/participants/import", "users.txt", "text/plain", "01710000000", nil); rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("txt users: %d", rec.Code)
	}
}

const bank = "Q1. What is the capital of Bangladesh?\n" +
	"A) Chittagong\n" +
	"A) Dhaka (correct)\n" +
	"A) Sylhet\n" +
	"\n" +
	"Q2. 2 + 2 = ?\n" +
	"A) 3\n" +
	"A) 4 (correct)\n"

func TestImportQuestions(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.upload("/questions/import", "bank.txt", "text/plain", bank, map[string]string{"type": "mcq"})
	if rec.Code != http.StatusOK {
		t.Fatalf("import: %d %s", rec.Code, rec.Body.String())
	}
	got := decode[struct {
		Records []struct {
			Prompt       string   `json:"prompt"`
			Fields       []string `json:"fields"`
			CorrectIndex int      `json:"correct_index"`
		} `json:"records"`
		Questions []exam.Question `json:"questions"`
		Dropped   int             `json:"dropped"`
	}](t, rec)
	if len(got.Records) != 2 || got.Records[0].Fields[1] != "Dhaka" || got.Records[0].CorrectIndex != 1 {
		t.Fatalf("records = %+v", got.Records)
	}
	if len(got.Questions) != 2 || got.Questions[1].Type != exam.TypeMCQ || got.Questions[1].CorrectIndex != 1 {
		t.Fatalf("questions = %+v", got.Questions)
	}

	if rec := ts.upload("/questions/import", "bank.pdf", "application/pdf", bank, nil); rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("pdf: %d", rec.Code)
	}
	big := strings.Repeat("Q. x\n", 1<<14)
	if rec := ts.upload("/questions/import", "big.txt", "text/plain", big, nil); rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("too large: %d", rec.Code)
	}
	if rec := ts.do(http.MethodPost, "/questions/import", ts.teacher, []byte("{}"), "application/json"); rec.Code != http.StatusBadRequest {
		t.Fatalf("not multipart: %d", rec.Code)
	}
	huge := strings.Repeat("Q. x\n", (2<<20)/5)
	if rec := ts.upload("/questions/import", "huge.txt", "text/plain", huge, nil); rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("body over cap: %d", rec.Code)
	}
}

func TestCreateExamRejectsCorrectIndexOutOfRange(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.json(http.MethodPost, "/exams", map[string]any{
		"name":          "Blanks",
		"total_marks":   10,
		"duration_min":  10,
		"question_type": "fill-blank",
		"questions": []map[string]any{
			{"text": "The capital is _____.", "answers": []string{"Dhaka", "Dacca"}, "correct_index": 7},
		},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d %s", rec.Code, rec.Body.String())
	}
	errs := decode[map[string][]string](t, rec)["errors"]
	if len(errs) != 1 || errs[0] != "Question 1: Correct answer is out of range" {
		t.Fatalf("errors = %v", errs)
	}
	if got := decode[[]exam.ExamSummary](t, ts.json(http.MethodGet, "/exams?q=Blanks", nil)); len(got) != 0 {
		t.Fatalf("exam stored: %+v", got)
	}
}

func TestImportQuestionsOrphanAnswer(t *testing.T) {
	orphan := "Answer: stray\nQ1. Real question\nA) yes (correct)\n"

	ts := newTestServer(t, importer.Options{})
	rec := ts.upload("/questions/import", "bank.txt", "text/plain", orphan, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("corrected rule should skip the stray line: %d", rec.Code)
	}

	legacy := newTestServer(t, importer.Options{LegacyAnswerGuard: true})
	if rec := legacy.upload("/questions/import", "bank.txt", "text/plain", orphan, nil); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("legacy rule should reject: %d %s", rec.Code, rec.Body.String())
	}
}

func TestResults(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.json(http.MethodGet, "/exams/1/results?status=passed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("results: %d", rec.Code)
	}
	got := decode[struct {
		Summary struct {
			Name         string  `json:"name"`
			Participants int     `json:"participants"`
			AverageScore float64 `json:"average_score"`
		} `json:"summary"`
		Results []struct {
			StudentID string `json:"student_id"`
		} `json:"results"`
	}](t, rec)
	if got.Summary.Participants != 4 || got.Summary.AverageScore != 85.5 || got.Summary.Name != "Text Exam 1" {
		t.Fatalf("summary = %+v", got.Summary)
	}
	if len(got.Results) != 3 {
		t.Fatalf("passed = %+v", got.Results)
	}

	rec = ts.json(http.MethodGet, "/exams/1/results?q=jane", nil)
	if n := len(decode[struct {
		Results []any `json:"results"`
	}](t, rec).Results); n != 1 {
		t.Fatalf("search matched %d", n)
	}
	if rec := ts.json(http.MethodGet, "/exams/1/results?status=maybe", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status: %d", rec.Code)
	}
	if rec := ts.json(http.MethodGet, "/exams/9/results", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing exam: %d", rec.Code)
	}
}

func TestExportResults(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.json(http.MethodGet, "/exams/1/results/export?status=failed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "exam_results.csv") {
		t.Fatalf("disposition = %q", cd)
	}
	want := "Student Name,Student ID,Total Marks,Percentage,Status\n" +
		"01840000002 (Mike Johnson),ID: 003,65,65%,Failed\n"
	if rec.Body.String() != want {
		t.Fatalf("csv =\n%s", rec.Body.String())
	}
}

func TestReport(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	rec := ts.json(http.MethodGet, "/exams/1/results/001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("report: %d", rec.Code)
	}
	got := decode[struct {
		DisplayName string `json:"display_name"`
		Correct     int    `json:"correct"`
		Incorrect   int    `json:"incorrect"`
		Performance string `json:"performance"`
	}](t, rec)
	if got.DisplayName != "01840000000 (John Doe)" || got.Correct != 2 || got.Incorrect != 1 || got.Performance != "Excellent" {
		t.Fatalf("report = %+v", got)
	}
	if rec := ts.json(http.MethodGet, "/exams/1/results/999", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing student: %d", rec.Code)
	}
}

func TestCoursesAndGenerate(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	courses := decode[[]map[string]any](t, ts.json(http.MethodGet, "/courses?q=bio&selected=4", nil))
	if len(courses) != 1 || courses[0]["name"] != "Cell Biology" {
		t.Fatalf("courses = %v", courses)
	}

	req := map[string]any{"course_ids": []int{1, 2}, "type": "true-false", "count": 5}
	rec := ts.json(http.MethodPost, "/questions/generate", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: %d %s", rec.Code, rec.Body.String())
	}
	if n := decode[map[string]any](t, rec)["count"]; n != float64(5) {
		t.Fatalf("count = %v", n)
	}

	rec = ts.json(http.MethodPost, "/questions/generate?format=csv", req)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 6 || lines[0] != "Question Number,Question Type,Course,Question,Answer" {
		t.Fatalf("csv = %v", lines)
	}

	rec = ts.json(http.MethodPost, "/questions/generate", map[string]any{"course_ids": []int{1}, "type": "mcq", "count": 0})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("count 0: %d", rec.Code)
	}
}

func TestThemePrefs(t *testing.T) {
	ts := newTestServer(t, importer.Options{})
	theme := func(rec *httptest.ResponseRecorder) string {
		t.Helper()
		if rec.Code != http.StatusOK {
			t.Fatalf("theme: %d %s", rec.Code, rec.Body.String())
		}
		return decode[map[string]string](t, rec)["theme"]
	}
	if got := theme(ts.json(http.MethodGet, "/prefs/theme", nil)); got != "light" {
		t.Fatalf("default = %q", got)
	}
	if got := theme(ts.json(http.MethodPost, "/prefs/theme/toggle", nil)); got != "dark" {
		t.Fatalf("toggled = %q", got)
	}
	if got := theme(ts.do(http.MethodGet, "/prefs/theme", ts.student, nil, "")); got != "light" {
		t.Fatalf("student theme = %q", got)
	}
	if got := theme(ts.json(http.MethodPut, "/prefs/theme", map[string]string{"theme": "light"})); got != "light" {
		t.Fatalf("put = %q", got)
	}
	if rec := ts.json(http.MethodPut, "/prefs/theme", map[string]string{"theme": "sepia"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad theme: %d", rec.Code)
	}
}
