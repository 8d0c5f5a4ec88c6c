package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/porikkha/porikkha-backend/internal/handler"
	"github.com/porikkha/porikkha-backend/internal/validator"
)

func testRouter() http.Handler {
	validator.Setup()
	cfg := &config.Config{GinMode: "test"}
	handlers := &Handlers{
		Attempt:    handler.NewAttemptHandler(nil),
		Proctoring: handler.NewProctoringHandler(nil),
	}
	return SetupRouter(nil, handlers, cfg)
}

func TestAnonymousAttemptRouteNeedsNoToken(t *testing.T) {
	r := testRouter()

	// An empty body fails validation, which proves the request reached the
	// handler without being rejected by an auth middleware first.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attempts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (validation failure)", w.Code, http.StatusBadRequest)
	}
}

func TestAnonymousProctoringStartNeedsNoToken(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/proctoring/sessions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (validation failure)", w.Code, http.StatusBadRequest)
	}
}

func TestStudentAttemptRouteStillRequiresToken(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/student/attempts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
