// internal/app/features/upload/routes.go
package upload

import (
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the upload proxy at /api/cloudinary.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireFunc(authz.IsAdminUser))

	r.Post("/upload", h.Upload)
	r.Post("/upload/batch", h.Batch)
	return r
}
