// internal/app/features/members/list.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	memberstore "github.com/dalemusser/ekskulhub/internal/app/store/members"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.uber.org/zap"
)

// List handles GET /api/admin/members?ekskul=&status=&q=. q matches the
// start of the name or the student id.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	club, ok := shared.ReadClub(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	if status != "" && status != models.MemberActive && status != models.MemberInactive {
		apiutil.WriteError(w, http.StatusBadRequest, "Status tidak valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Members.List(ctx, memberstore.Filter{Ekskul: club, Status: status, Query: r.URL.Query().Get("q")})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list members failed", err, "Gagal memuat data anggota.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, listResponse{Ekskul: club, Items: items})
}

// Get handles GET /api/admin/members/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	m, ok := h.load(w, r)
	if !ok {
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, m)
}

// load fetches the {id} member and checks it is inside the caller's scope.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Member, bool) {
	id, ok := shared.ObjectID(w, r)
	if !ok {
		return models.Member{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Members.GetByID(ctx, id)
	if errors.Is(err, memberstore.ErrNotFound) {
		shared.NotFound(w)
		return models.Member{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member failed", err, "Gagal memuat data anggota.", "", zap.String("id", id.Hex()))
		return models.Member{}, false
	}
	if !shared.Owns(w, r, m.EkskulType) {
		return models.Member{}, false
	}
	return m, true
}
