// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
	BackURL string
	Retry   string
}

// Handler serves the friendly error pages. No DB needed.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders the access denied page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "", "/")
}

// Unauthorized renders the sign-in required page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "")
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	Respond(w, r, http.StatusNotFound, "Halaman tidak ditemukan.", "/")
}

// RenderUnauthorized shows the sign-in required page with status 200 so the
// browser keeps the link to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Perlu masuk"),
		Status:  http.StatusUnauthorized,
		Message: "Silakan masuk terlebih dahulu.",
		BackURL: backURL,
	}
	renderStatus(w, r, http.StatusUnauthorized, "error_page", data)
}

// RenderForbidden shows the access denied page.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Anda tidak memiliki akses ke halaman ini."
	}
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Akses ditolak"),
		Status:  http.StatusForbidden,
		Message: msg,
		BackURL: backURL,
	}
	renderStatus(w, r, http.StatusForbidden, "error_page", data)
}

// Respond writes msg as JSON {"error": msg} for API callers and as an error
// page for browsers.
func Respond(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	if apiutil.WantsJSON(r) {
		apiutil.WriteError(w, status, msg)
		return
	}
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, titleFor(status)),
		Status:  status,
		Message: msg,
		BackURL: backURL,
	}
	renderStatus(w, r, status, "error_page", data)
}

func titleFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Permintaan tidak valid"
	case http.StatusUnauthorized:
		return "Perlu masuk"
	case http.StatusForbidden:
		return "Akses ditolak"
	case http.StatusNotFound:
		return "Tidak ditemukan"
	case http.StatusConflict:
		return "Data bentrok"
	case http.StatusTooManyRequests:
		return "Terlalu banyak percobaan"
	default:
		return "Terjadi kesalahan"
	}
}
