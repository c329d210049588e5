package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusworks/internal/advisory"
	"campusworks/internal/config"
	apperrors "campusworks/internal/errors"
	"campusworks/internal/genclient"
	"campusworks/internal/observability"
	"campusworks/internal/store"
	"campusworks/internal/types"
	"campusworks/internal/workflow"
)

// failingGenerator simulates a total remote outage so every advisory call
// takes the fallback path.
type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, genclient.Request) (genclient.Result, error) {
	return genclient.Result{}, errors.New("remote unavailable")
}

func testConfig() *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.0-flash",
			Timeout:     30 * time.Second,
			MaxAttempts: 3,
		},
		Server: config.ServerConfig{
			Host: "localhost",
			Port: "0",
		},
		App: config.AppConfig{
			LogLevel:       "error",
			MaxRequestSize: 1 << 20,
		},
	}
}

func newTestMux(t *testing.T, cfg *config.Config) (*http.ServeMux, *Server) {
	t.Helper()

	logger := apperrors.NewLogger(slog.LevelError)
	st := store.Seeded()
	engine := workflow.NewEngine(st, logger)
	adv := advisory.NewServiceWithGenerator(failingGenerator{}, logger)

	srv := NewServer(cfg, "test", st, engine, adv, logger)

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}
	srv.om = om
	return srv.setupRoutes(om), srv
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestMux(t, testConfig())

	rec := doJSON(t, mux, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     LoginRequest
		wantCode int
	}{
		{name: "valid student", body: LoginRequest{Email: "student@edu.com", Password: "123"}, wantCode: http.StatusOK},
		{name: "case insensitive email", body: LoginRequest{Email: "STUDENT@edu.com", Password: "123"}, wantCode: http.StatusOK},
		{name: "wrong password", body: LoginRequest{Email: "student@edu.com", Password: "nope"}, wantCode: http.StatusUnauthorized},
		{name: "unknown email", body: LoginRequest{Email: "ghost@edu.com", Password: "123"}, wantCode: http.StatusUnauthorized},
		{name: "missing password", body: LoginRequest{Email: "student@edu.com"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, _ := newTestMux(t, testConfig())
			rec := doJSON(t, mux, http.MethodPost, "/api/auth/login", tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestRegister(t *testing.T) {
	mux, srv := newTestMux(t, testConfig())

	rec := doJSON(t, mux, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name: "Bob Builder", Email: "bob@edu.com", Password: "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var user types.User
	decodeBody(t, rec, &user)
	if user.Role != types.RoleStudent {
		t.Errorf("default Role = %s, want student", user.Role)
	}
	if user.Avatar != "BB" {
		t.Errorf("Avatar = %q, want BB", user.Avatar)
	}
	if user.Resume == nil {
		t.Error("student registration should attach an empty resume")
	}
	if _, ok := srv.Store.Users.Get(user.ID); !ok {
		t.Error("registered user not persisted")
	}

	// Same email again conflicts.
	rec = doJSON(t, mux, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name: "Bob Again", Email: "BOB@edu.com", Password: "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name: "Eve Admin", Email: "eve@edu.com", Password: "pw", Role: "admin",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("admin self-registration status = %d, want 400", rec.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	mux, _ := newTestMux(t, testConfig())

	rec := doJSON(t, mux, http.MethodGet, "/api/jobs", nil)
	var jobs []types.Job
	decodeBody(t, rec, &jobs)
	if len(jobs) != 4 {
		t.Errorf("jobs = %d, want 4", len(jobs))
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/courses/c2", nil)
	var course types.Course
	decodeBody(t, rec, &course)
	if course.Title != "Java Full Stack Bootcamp" {
		t.Errorf("course Title = %q", course.Title)
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/courses/c99", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown course status = %d, want 404", rec.Code)
	}
}

func TestApplicationLifecycle(t *testing.T) {
	mux, _ := newTestMux(t, testConfig())

	rec := doJSON(t, mux, http.MethodPost, "/api/applications", SubmitApplicationRequest{
		JobID: "j1", StudentID: "s1", CoverLetter: "hello",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var app types.Application
	decodeBody(t, rec, &app)
	if app.Status != types.StatusPending {
		t.Errorf("Status = %s, want Pending", app.Status)
	}

	// Second submission for the same job conflicts.
	rec = doJSON(t, mux, http.MethodPost, "/api/applications", SubmitApplicationRequest{
		JobID: "j1", StudentID: "s1",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate submit status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodPost, "/api/applications/"+app.ID+"/decision", DecisionRequest{Outcome: "Approved"})
	if rec.Code != http.StatusOK {
		t.Fatalf("decision status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var decided types.Application
	decodeBody(t, rec, &decided)
	if decided.Status != types.StatusApproved {
		t.Errorf("decided Status = %s, want Approved", decided.Status)
	}

	// Deciding again is an invalid transition.
	rec = doJSON(t, mux, http.MethodPost, "/api/applications/"+app.ID+"/decision", DecisionRequest{Outcome: "Rejected"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("re-decision status = %d, want 422", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodPost, "/api/applications/missing/decision", DecisionRequest{Outcome: "Approved"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown application status = %d, want 404", rec.Code)
	}
}

func TestApplicationListFilters(t *testing.T) {
	mux, _ := newTestMux(t, testConfig())

	doJSON(t, mux, http.MethodPost, "/api/applications", SubmitApplicationRequest{JobID: "j1", StudentID: "s1"})
	doJSON(t, mux, http.MethodPost, "/api/applications", SubmitApplicationRequest{JobID: "j2", StudentID: "s1"})

	// The seeded store already holds one approved application for s1.
	rec := doJSON(t, mux, http.MethodGet, "/api/applications?studentId=s1", nil)
	var apps []types.Application
	decodeBody(t, rec, &apps)
	if len(apps) != 3 {
		t.Errorf("student applications = %d, want 3", len(apps))
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/applications?status=Pending", nil)
	apps = nil
	decodeBody(t, rec, &apps)
	if len(apps) != 2 {
		t.Errorf("pending applications = %d, want 2", len(apps))
	}
}

func TestNotificationsFlow(t *testing.T) {
	mux, _ := newTestMux(t, testConfig())

	doJSON(t, mux, http.MethodPost, "/api/applications", SubmitApplicationRequest{JobID: "j1", StudentID: "s1"})

	rec := doJSON(t, mux, http.MethodGet, "/api/users/s1/notifications", nil)
	var body struct {
		Notifications []types.Notification `json:"notifications"`
		Unread        int                  `json:"unread"`
	}
	decodeBody(t, rec, &body)
	// Seeded unread notification plus the submit acknowledgment.
	if len(body.Notifications) != 2 || body.Unread != 2 {
		t.Fatalf("notifications = %d unread = %d, want 2/2", len(body.Notifications), body.Unread)
	}

	id := body.Notifications[len(body.Notifications)-1].ID
	for i := 0; i < 2; i++ {
		rec = doJSON(t, mux, http.MethodPost, "/api/notifications/"+id+"/read", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("markRead #%d status = %d", i+1, rec.Code)
		}
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/users/s1/notifications", nil)
	body.Notifications = nil
	decodeBody(t, rec, &body)
	if body.Unread != 1 {
		t.Errorf("unread after markRead = %d, want 1", body.Unread)
	}
}

func TestAdvisoryEndpointsDegradeTo200(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
	}{
		{name: "roadmap", path: "/api/advisory/roadmap", body: RoadmapRequest{Goal: "web developer"}},
		{name: "quiz", path: "/api/advisory/quiz", body: QuizRequest{Topic: "react"}},
		{name: "remediation", path: "/api/advisory/remediation", body: RemediationRequest{Topic: "sql joins"}},
		{name: "risk", path: "/api/advisory/risk", body: RiskRequest{Skills: "cobol"}},
		{name: "fit", path: "/api/advisory/fit", body: FitRequest{Resume: "r", JobDescription: "j"}},
		{name: "explain", path: "/api/advisory/explain", body: ExplainRequest{Concept: "closures"}},
		{name: "cover letter", path: "/api/advisory/cover-letter", body: CoverLetterRequest{JobTitle: "barista"}},
		{name: "chat", path: "/api/advisory/chat", body: ChatRequest{Message: "help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, _ := newTestMux(t, testConfig())
			rec := doJSON(t, mux, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 even during outage (body %s)", rec.Code, rec.Body.String())
			}
			var body map[string]any
			decodeBody(t, rec, &body)
			if degraded, _ := body["degraded"].(bool); !degraded {
				t.Errorf("degraded = %v, want true with remote down", body["degraded"])
			}
		})
	}
}

func TestAdvisoryValidation(t *testing.T) {
	mux, _ := newTestMux(t, testConfig())

	rec := doJSON(t, mux, http.MethodPost, "/api/advisory/roadmap", RoadmapRequest{Goal: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank goal status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/advisory/quiz", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec2 := httptest.NewRecorder()
	mux.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec2.Code)
	}
}

func TestCourseRecommendation(t *testing.T) {
	mux, _ := newTestMux(t, testConfig())

	rec := doJSON(t, mux, http.MethodGet, "/api/advisory/course-recommendation?goal=react+frontend", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		CourseID string       `json:"courseId"`
		Course   types.Course `json:"course"`
	}
	decodeBody(t, rec, &body)
	if body.CourseID != "c1" {
		t.Errorf("courseId = %q, want c1", body.CourseID)
	}
	if body.Course.Title == "" {
		t.Error("course payload missing")
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/advisory/course-recommendation", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing goal status = %d, want 400", rec.Code)
	}
}

func TestAPIKeyAuthentication(t *testing.T) {
	cfg := testConfig()
	cfg.Server.APIKeys = []string{"secret-key-12345"}
	mux, _ := newTestMux(t, cfg)

	// No key.
	rec := doJSON(t, mux, http.MethodPost, "/api/applications", SubmitApplicationRequest{JobID: "j1", StudentID: "s1"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key status = %d, want 401", rec.Code)
	}

	// Wrong key.
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(`{"jobId":"j1","studentId":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "wrong")
	rec2 := httptest.NewRecorder()
	mux.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Errorf("wrong key status = %d, want 401", rec2.Code)
	}

	// Valid key via Authorization header.
	req = httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(`{"jobId":"j1","studentId":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret-key-12345")
	rec3 := httptest.NewRecorder()
	mux.ServeHTTP(rec3, req)
	if rec3.Code != http.StatusCreated {
		t.Errorf("valid bearer status = %d, want 201 (body %s)", rec3.Code, rec3.Body.String())
	}

	// Login stays open even with keys configured.
	rec = doJSON(t, mux, http.MethodPost, "/api/auth/login", LoginRequest{Email: "student@edu.com", Password: "123"})
	if rec.Code != http.StatusOK {
		t.Errorf("login with auth enabled status = %d, want 200", rec.Code)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q", got)
	}
	if got := maskAPIKey("abcdefgh12345"); got != "abcdefgh****" {
		t.Errorf("maskAPIKey(long) = %q", got)
	}
}
