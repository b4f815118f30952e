// internal/app/features/achievements/routes.go
package achievements

import (
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts the admin API, typically at /api/admin/achievements.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireFunc(authz.IsAdminUser))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// PublicRoutes mounts the public page at /achievements.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePublic)
	return r
}
