package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seminar-portal/portal-service/internal/events"
	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories/postgres"
	"github.com/seminar-portal/portal-service/internal/services"
	"github.com/seminar-portal/portal-service/internal/testutil"
	"github.com/seminar-portal/portal-service/internal/utils"
	"github.com/seminar-portal/portal-service/internal/validator"
)

type fakeIdentity map[string]*models.Identity

func (f fakeIdentity) ResolveToken(ctx context.Context, token string) (*models.Identity, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return nil, errors.New("invalid token")
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testutil.NewTestDB(t)

	testutil.SeedProfile(t, db, "admin-1", "admin", "Ada Admin", "IT")
	testutil.SeedProfile(t, db, "user-1", "", "Max Member", "Sales")
	testutil.SeedTopic(t, db, "topic-go", "go", "Go")
	testutil.SeedCourse(t, db, "course-123", "topic-go", "Go Basics", true)
	testutil.SeedRequest(t, db, "req-1", "user-1", "course-123", models.RequestPending, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))

	identity := fakeIdentity{
		"admin-token": {ID: "admin-1", Email: "admin@example.com"},
		"user-token":  {ID: "user-1", Email: "user@example.com"},
	}
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	sm := services.NewServiceManager(repo, identity, events.NewMockEventPublisher(slogger), slogger, validator.New())
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	router := gin.New()
	logger := utils.NewSlogLogger(slogger)
	SetupMiddleware(router, logger)
	NewHandlerManager(sm, logger, "/login").SetupRoutes(router)

	return &testServer{router: router, db: db}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeAction(t *testing.T, w *httptest.ResponseRecorder) models.ActionResult {
	t.Helper()
	var result models.ActionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not an action result: %v: %s", err, w.Body.String())
	}
	return result
}

func TestRoutes_StatusCodes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"topics need a session", http.MethodGet, "/api/v1/topics", "", nil, http.StatusUnauthorized},
		{"topic detail needs a session", http.MethodGet, "/api/v1/topics/go", "", nil, http.StatusUnauthorized},
		{"topics", http.MethodGet, "/api/v1/topics", "user-token", nil, http.StatusOK},
		{"topic detail", http.MethodGet, "/api/v1/topics/go", "user-token", nil, http.StatusOK},
		{"unknown topic", http.MethodGet, "/api/v1/topics/cobol", "user-token", nil, http.StatusNotFound},
		{"me needs a session", http.MethodGet, "/api/v1/me", "", nil, http.StatusUnauthorized},
		{"bad token is anonymous", http.MethodGet, "/api/v1/me", "forged", nil, http.StatusUnauthorized},
		{"me", http.MethodGet, "/api/v1/me", "user-token", nil, http.StatusOK},
		{"my requests", http.MethodGet, "/api/v1/my-requests", "user-token", nil, http.StatusOK},
		{"admin list as member", http.MethodGet, "/api/v1/admin/requests", "user-token", nil, http.StatusForbidden},
		{"admin list", http.MethodGet, "/api/v1/admin/requests", "admin-token", nil, http.StatusOK},
		{"export as member", http.MethodGet, "/api/v1/admin/requests/export", "user-token", nil, http.StatusForbidden},
		{"status on missing request", http.MethodPost, "/api/v1/admin/requests/nope/status", "admin-token", map[string]string{"status": "approved"}, http.StatusNotFound},
		{"invalid status", http.MethodPost, "/api/v1/admin/requests/req-1/status", "admin-token", map[string]string{"status": "archived"}, http.StatusBadRequest},
		{"note on missing request", http.MethodPost, "/api/v1/admin/requests/nope/note", "admin-token", map[string]string{"note": "x"}, http.StatusNotFound},
		{"health", http.MethodGet, "/health", "", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.token, tt.body)
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAdminRoutes_RedirectAnonymousToLogin(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/admin/requests", "/api/v1/admin/requests/export"} {
		w := s.do(http.MethodGet, path, "", nil)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("GET %s = %d, want 303", path, w.Code)
		}
		location := w.Header().Get("Location")
		redirect, err := url.Parse(location)
		if err != nil {
			t.Fatalf("Location %q: %v", location, err)
		}
		if redirect.Path != "/login" || redirect.Query().Get("message") == "" {
			t.Errorf("Location = %s", location)
		}
		if got := redirect.Query().Get("redirectedFrom"); got != path {
			t.Errorf("redirectedFrom = %q, want %q", got, path)
		}
	}

	w := s.do(http.MethodPost, "/api/v1/admin/requests/req-1/status", "", map[string]string{"status": "approved"})
	if w.Code != http.StatusSeeOther {
		t.Errorf("anonymous status change = %d, want 303", w.Code)
	}
}

func TestAdminRoutes_UpdateStatusAndNote(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/admin/requests/req-1/status", "admin-token", map[string]string{"status": "approved"})
	if w.Code != http.StatusOK {
		t.Fatalf("status change = %d: %s", w.Code, w.Body.String())
	}
	if result := decodeAction(t, w); !result.Success || result.Message == "" {
		t.Errorf("result = %+v", result)
	}

	w = s.do(http.MethodPost, "/api/v1/admin/requests/req-1/note", "admin-token", map[string]string{"note": "booked"})
	if w.Code != http.StatusOK {
		t.Fatalf("note = %d: %s", w.Code, w.Body.String())
	}

	var stored models.TrainingRequest
	s.db.First(&stored, "id = ?", "req-1")
	if stored.Status != models.RequestApproved || stored.ProcessedAt == nil {
		t.Errorf("status not applied: %+v", stored)
	}
	if stored.AdminNotes == nil || *stored.AdminNotes != "booked" {
		t.Errorf("note not applied: %v", stored.AdminNotes)
	}
}

func TestAdminRoutes_MemberCannotMutate(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/admin/requests/req-1/note", "user-token", map[string]string{"note": "test"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("member note = %d, want 403", w.Code)
	}
	if result := decodeAction(t, w); result.Success {
		t.Error("denied action reported success")
	}

	w = s.do(http.MethodPost, "/api/v1/admin/requests/req-1/status", "user-token", map[string]string{"status": "approved"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("member status = %d, want 403", w.Code)
	}

	var stored models.TrainingRequest
	s.db.First(&stored, "id = ?", "req-1")
	if stored.AdminNotes != nil || stored.Status != models.RequestPending || stored.ProcessedAt != nil {
		t.Errorf("record modified: %+v", stored)
	}
}

func TestAdminRoutes_MemberDeniedBeforePayloadCheck(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/admin/requests/req-1/status", "/api/v1/admin/requests/req-1/note"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Authorization", "Bearer user-token")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("member POST %s without body = %d, want 403: %s", path, w.Code, w.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/requests/req-1/status", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer user-token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("member POST with malformed body = %d, want 403", w.Code)
	}

	w = s.do(http.MethodPost, "/api/v1/admin/requests/req-1/status", "admin-token", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("admin POST without body = %d, want 400", w.Code)
	}
}

func TestInquiryRoute(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"course_id": "course-123", "course_title": "Go Basics"}

	w := s.do(http.MethodPost, "/api/v1/inquiries", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous inquiry = %d, want 401", w.Code)
	}
	if result := decodeAction(t, w); result.Success || result.Message == "" {
		t.Errorf("anonymous result = %+v", result)
	}

	w = s.do(http.MethodPost, "/api/v1/inquiries", "user-token", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("inquiry = %d: %s", w.Code, w.Body.String())
	}
	if result := decodeAction(t, w); !result.Success || !strings.Contains(result.Message, "Go Basics") {
		t.Errorf("result = %+v", result)
	}

	w = s.do(http.MethodPost, "/api/v1/inquiries", "user-token", map[string]string{"course_id": "course-999", "course_title": "Ghost"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown course = %d, want 400", w.Code)
	}

	w = s.do(http.MethodPost, "/api/v1/inquiries", "user-token", map[string]string{"course_id": "course-123"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing title = %d, want 400", w.Code)
	}
}

func TestSessionCookie(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "admin-token"})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /me with cookie = %d", w.Code)
	}
	var profile models.CallerProfile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.Role != models.RoleAdmin || profile.ID != "admin-1" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestExportRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/admin/requests/export", "admin-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type = %s", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), ".xlsx") {
		t.Errorf("Content-Disposition = %s", w.Header().Get("Content-Disposition"))
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("export body is not a zip archive")
	}
}
