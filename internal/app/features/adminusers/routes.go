// internal/app/features/adminusers/routes.go
package adminusers

import (
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user management API, typically at /api/admin/users.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireFunc(authz.IsSuperAdminUser))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
