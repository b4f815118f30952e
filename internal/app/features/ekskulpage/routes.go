// internal/app/features/ekskulpage/routes.go
package ekskulpage

import "github.com/go-chi/chi/v5"

// Routes mounts at /ekskul.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{slug}", h.ServePage)
	return r
}
