package errors_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func panicking(w http.ResponseWriter, r *http.Request) {
	panic("boom")
}

func TestBoundary_HTMLFallback(t *testing.T) {
	testutil.BootTemplates(t)

	core, logs := observer.New(zapcore.ErrorLevel)
	h := uierrors.Boundary(zap.New(core))(http.HandlerFunc(panicking))

	req := httptest.NewRequest("GET", "/admin/members?ekskul=pmr", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Coba lagi") {
		t.Errorf("fallback missing retry link: %s", body)
	}
	if !strings.Contains(body, `href="/admin/members?ekskul=pmr"`) {
		t.Errorf("retry link should point at the same URL: %s", body)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["panic"] != "boom" {
		t.Errorf("panic field = %v", entry.ContextMap()["panic"])
	}
	if _, ok := entry.ContextMap()["stack"]; !ok {
		t.Error("expected stack field")
	}
}

func TestBoundary_JSONFallback(t *testing.T) {
	h := uierrors.Boundary(zap.NewNop())(http.HandlerFunc(panicking))

	req := httptest.NewRequest("GET", "/api/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
		Retry string `json:"retry"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Error != uierrors.FallbackMessage || body.Retry != "/api/admin/dashboard" {
		t.Errorf("body = %+v", body)
	}
}

func TestBoundary_PassThrough(t *testing.T) {
	h := uierrors.Boundary(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}

func TestBoundary_PanicAfterWrite(t *testing.T) {
	h := uierrors.Boundary(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/x", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want the already written 202", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("no fallback expected after headers were sent, got %q", rec.Body.String())
	}
}

func TestErrorLogger_LogServerError(t *testing.T) {
	testutil.BootTemplates(t)

	core, logs := observer.New(zapcore.DebugLevel)
	el := uierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/members", nil)
	el.LogServerError(rec, req, "list members failed", http.ErrBodyNotAllowed, "Gagal memuat anggota.", "/")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Gagal memuat anggota.") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if logs.FilterMessage("list members failed").Len() != 1 {
		t.Error("expected the failure to be logged")
	}
}

func TestRespond_HTML(t *testing.T) {
	testutil.BootTemplates(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/nope", nil)
	req.Header.Set("Accept", "text/html")
	uierrors.NewHandler().NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Halaman tidak ditemukan.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestForbiddenPage(t *testing.T) {
	testutil.BootTemplates(t)

	rec := httptest.NewRecorder()
	uierrors.NewHandler().Forbidden(rec, httptest.NewRequest("GET", "/forbidden", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Akses ditolak") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRenderPage(t *testing.T) {
	testutil.BootTemplates(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	if uierrors.RenderPage(rec, req, http.StatusTeapot, "no_such_page", nil) {
		t.Fatal("unknown template reported success")
	}
	if rec.Body.Len() != 0 || rec.Header().Get("Content-Type") != "" {
		t.Errorf("failed render leaked output: %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	uierrors.NewHandler().Unauthorized(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}
