// internal/app/features/members/edit.go
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

// Create handles POST /api/admin/members.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in memberInput
	if !shared.Decode(w, r, &in) {
		return
	}
	club, ok := shared.WriteClub(w, r, in.EkskulType)
	if !ok {
		return
	}

	var m models.Member
	in.apply(&m, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Members.Create(ctx, m)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create member failed", err, "Gagal menyimpan anggota.", "", zap.String("ekskul", club))
		return
	}
	h.Log.Info("member created", zap.String("id", created.ID.Hex()), zap.String("ekskul", club))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/members/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var in memberInput
	if !shared.Decode(w, r, &in) {
		return
	}
	requested := in.EkskulType
	if requested == "" {
		requested = existing.EkskulType
	}
	club, ok := shared.WriteClub(w, r, requested)
	if !ok {
		return
	}

	m := existing
	in.apply(&m, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Members.Update(ctx, m)
	if errors.Is(err, memberstore.ErrNotFound) {
		shared.NotFound(w)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update member failed", err, "Gagal menyimpan anggota.", "", zap.String("id", m.ID.Hex()))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/members/{id}. Attendance rows of the
// member are kept.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	m, ok := h.load(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Members.Delete(ctx, m.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete member failed", err, "Gagal menghapus anggota.", "", zap.String("id", m.ID.Hex()))
		return
	}
	if n == 0 {
		shared.NotFound(w)
		return
	}
	h.Log.Info("member deleted", zap.String("id", m.ID.Hex()), zap.String("ekskul", m.EkskulType))
	shared.Deleted(w)
}
