// internal/app/features/login/api.go
package login

import (
	"errors"
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// meResponse mirrors what the browser keeps as the signed-in user.
type meResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	IsAdmin   bool           `json:"isAdmin"`
	Dashboard *authz.Variant `json:"dashboard,omitempty"`
}

func me(u *auth.SessionUser) meResponse {
	resp := meResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	if v, ok := authz.DashboardFor(u.Role); ok {
		resp.IsAdmin = true
		resp.Dashboard = &v
	}
	return resp
}

// APILogin handles POST /api/auth/login with a JSON {email, password} body.
func (h *Handler) APILogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !shared.Decode(w, r, &in) {
		return
	}
	u, err := h.authenticate(w, r, in.Email, in.Password)
	var f *failure
	if errors.As(err, &f) {
		apiutil.WriteError(w, f.status, f.msg)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "api login failed", err, "Terjadi kesalahan server. Coba lagi.", "")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, me(&auth.SessionUser{
		ID:    u.ID.Hex(),
		UID:   u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}))
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apiutil.WriteError(w, http.StatusUnauthorized, "Belum masuk.")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, me(u))
}
