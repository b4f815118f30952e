// internal/app/features/schedules/routes.go
package schedules

import (
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the schedules API, typically at /api/admin/schedules.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireFunc(authz.IsAdminUser))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/week", h.Week)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
