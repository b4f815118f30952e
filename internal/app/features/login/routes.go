// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts the HTML form at /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Post("/", h.HandleLoginPost)
	return r
}

// APIRoutes mounts the JSON sign-in endpoints at /api/auth.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.APILogin)
	r.Get("/me", h.Me)
	return r
}
