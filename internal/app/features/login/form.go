// internal/app/features/login/form.go
package login

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type formData struct {
	viewdata.BaseVM
	Email     string
	ReturnURL string
	Error     string
}

// ServeLogin renders GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", formData{
		BaseVM:    viewdata.NewBaseVM(r, "Masuk"),
		ReturnURL: r.URL.Query().Get("return"),
	})
}

// HandleLoginPost handles POST /login from the HTML form and redirects to the
// return URL (default /admin).
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Data formulir tidak valid.", "/login")
		return
	}
	email := r.PostFormValue("email")
	ret := r.PostFormValue("return")

	_, err := h.authenticate(w, r, email, r.PostFormValue("password"))
	var f *failure
	if errors.As(err, &f) {
		data := formData{
			BaseVM:    viewdata.NewBaseVM(r, "Masuk"),
			Email:     email,
			ReturnURL: ret,
			Error:     f.msg,
		}
		if !uierrors.RenderPage(w, r, f.status, "login", data) {
			http.Error(w, f.msg, f.status)
		}
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login failed", err, "Terjadi kesalahan server. Coba lagi.", "/login")
		return
	}
	http.Redirect(w, r, safeReturn(ret, "/admin"), http.StatusSeeOther)
}
