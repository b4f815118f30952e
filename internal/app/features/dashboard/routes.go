// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard under whatever mount point the top-level router
// chooses ("/admin" for the page, "/api/admin/dashboard" for JSON).
//
// Any signed-in user reaches the handler; roles without a dashboard get 403
// from it so the message can say why.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeDashboard)
	})
	return r
}
