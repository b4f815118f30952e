// internal/app/features/adminusers/handler.go
package adminusers

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	userstore "github.com/dalemusser/ekskulhub/internal/app/store/users"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/app/system/identity"
	"github.com/dalemusser/ekskulhub/internal/app/system/inputval"
	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler manages backoffice accounts. Every route is super admin only.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Users    *userstore.Store
	Provider identity.Provider
}

func NewHandler(db *mongo.Database, provider identity.Provider, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, ErrLog: errLog, Users: userstore.New(db), Provider: provider}
}

type createInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"required"`
}

type updateInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=6,max=128"`
}

type listResponse struct {
	Items []models.User `json:"items"`
}

func fieldError(w http.ResponseWriter, status int, field, msg string) {
	apiutil.WriteJSON(w, status, apiutil.ErrorBody{
		Error:  "Data tidak valid.",
		Fields: []inputval.FieldError{{Field: field, Message: msg}},
	})
}

func validRole(w http.ResponseWriter, role string) bool {
	if !authz.IsAdminRole(normalize.Role(role)) {
		fieldError(w, http.StatusBadRequest, "role", `harus "admin" atau "<ekskul>_admin"`)
		return false
	}
	return true
}

// List handles GET /api/admin/users?role=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role := normalize.Role(r.URL.Query().Get("role"))
	if role != "" && !authz.IsAdminRole(role) {
		apiutil.WriteError(w, http.StatusBadRequest, "Peran tidak valid.")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Users.List(ctx, role)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err, "Gagal memuat pengguna.", "")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, listResponse{Items: items})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := shared.ObjectID(w, r)
	if !ok {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		shared.NotFound(w)
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load user failed", err, "Gagal memuat pengguna.", "", zap.String("id", id.Hex()))
		return nil, false
	}
	return u, true
}

// Get handles GET /api/admin/users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.load(w, r); ok {
		apiutil.WriteJSON(w, http.StatusOK, u)
	}
}

// Create handles POST /api/admin/users. The identity account is created
// first; if the users document cannot be written the account is removed
// again.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if !shared.Decode(w, r, &in) {
		return
	}
	if !validRole(w, in.Role) {
		return
	}
	email := normalize.Email(in.Email)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Provider.CreateAccount(ctx, email, in.Password, normalize.Name(in.Name))
	switch {
	case errors.Is(err, identity.ErrEmailExists):
		fieldError(w, http.StatusConflict, "email", "email sudah terdaftar")
		return
	case errors.Is(err, identity.ErrWeakPassword):
		fieldError(w, http.StatusBadRequest, "password", "kata sandi terlalu lemah")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create identity account failed", err, "Gagal membuat akun.", "", zap.String("provider", h.Provider.Name()))
		return
	}

	u := models.User{UID: acct.UID, Email: email, Name: in.Name, Role: in.Role}
	if acct.PasswordHash != "" {
		hash := acct.PasswordHash
		u.PasswordHash = &hash
	}
	created, err := h.Users.Create(ctx, u)
	if err != nil {
		if derr := h.Provider.DeleteAccount(ctx, acct.UID); derr != nil {
			h.Log.Warn("rollback identity account failed", zap.String("uid", acct.UID), zap.Error(derr))
		}
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			fieldError(w, http.StatusConflict, "email", "email sudah terdaftar")
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Gagal membuat akun.", "")
		return
	}
	h.Log.Info("admin user created",
		zap.String("id", created.ID.Hex()),
		zap.String("role", created.Role),
		zap.String("provider", h.Provider.Name()))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/users/{id}: name and role, plus the password
// when the local provider is in use.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var in updateInput
	if !shared.Decode(w, r, &in) {
		return
	}
	if !validRole(w, in.Role) {
		return
	}
	if in.Password != "" && h.Provider.Name() != "local" {
		fieldError(w, http.StatusBadRequest, "password", "kata sandi diubah lewat layanan identitas")
		return
	}
	if _, _, self, _ := authz.UserCtx(r); self == existing.ID && normalize.Role(in.Role) != existing.Role {
		fieldError(w, http.StatusBadRequest, "role", "tidak dapat mengubah peran sendiri")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Users.UpdateNameRole(ctx, existing.ID, in.Name, in.Role)
	if errors.Is(err, userstore.ErrNotFound) {
		shared.NotFound(w)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update user failed", err, "Gagal menyimpan pengguna.", "", zap.String("id", existing.ID.Hex()))
		return
	}
	if in.Password != "" {
		hash, err := identity.HashPassword(in.Password)
		if err == nil {
			err = h.Users.SetPasswordHash(ctx, existing.ID, hash)
		}
		if err != nil {
			h.ErrLog.LogServerError(w, r, "set password failed", err, "Gagal menyimpan kata sandi.", "", zap.String("id", existing.ID.Hex()))
			return
		}
	}
	apiutil.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/users/{id}. The identity account is
// removed best-effort; the users document is removed regardless.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := h.load(w, r)
	if !ok {
		return
	}
	if _, _, self, _ := authz.UserCtx(r); self == u.ID {
		apiutil.WriteError(w, http.StatusBadRequest, "Tidak dapat menghapus akun sendiri.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if u.UID != "" {
		if err := h.Provider.DeleteAccount(ctx, u.UID); err != nil && !errors.Is(err, identity.ErrAccountNotFound) {
			h.Log.Warn("delete identity account failed", zap.String("uid", u.UID), zap.Error(err))
		}
	}
	n, err := h.Users.Delete(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete user failed", err, "Gagal menghapus pengguna.", "", zap.String("id", u.ID.Hex()))
		return
	}
	if n == 0 {
		shared.NotFound(w)
		return
	}
	h.Log.Info("admin user deleted", zap.String("id", u.ID.Hex()), zap.String("role", u.Role))
	shared.Deleted(w)
}
