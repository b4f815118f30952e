// internal/app/features/documentation/handler.go
package documentationfeature

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	docstore "github.com/dalemusser/ekskulhub/internal/app/store/documentation"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the documentation (photo gallery) panel.
type Handler struct {
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Docs   *docstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, ErrLog: errLog, Docs: docstore.New(db)}
}

type docInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Date        string   `json:"date" validate:"required,ymd"`
	Location    string   `json:"location" validate:"max=200"`
	Photos      []string `json:"photos" validate:"max=50,dive,url"`
	EkskulType  string   `json:"ekskulType" validate:"omitempty,ekskul"`
}

func (in docInput) apply(d *models.Documentation, club string) {
	d.Title = normalize.Name(in.Title)
	d.Description = htmlsanitize.Sanitize(in.Description)
	d.Date, _ = shared.ParseDate(in.Date)
	d.Location = normalize.Name(in.Location)
	d.Photos = append([]string{}, in.Photos...)
	d.EkskulType = club
}

type listResponse struct {
	Ekskul string                 `json:"ekskul,omitempty"`
	Items  []models.Documentation `json:"items"`
}

// List handles GET /api/admin/documentation?ekskul=&limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	club, ok := shared.ReadClub(w, r)
	if !ok {
		return
	}
	var limit int64
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			apiutil.WriteError(w, http.StatusBadRequest, "Limit tidak valid.")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Docs.List(ctx, club, limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list documentation failed", err, "Gagal memuat dokumentasi.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, listResponse{Ekskul: club, Items: items})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Documentation, bool) {
	id, ok := shared.ObjectID(w, r)
	if !ok {
		return models.Documentation{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Docs.GetByID(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		shared.NotFound(w)
		return models.Documentation{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load documentation failed", err, "Gagal memuat dokumentasi.", "", zap.String("id", id.Hex()))
		return models.Documentation{}, false
	}
	if !shared.Owns(w, r, d.EkskulType) {
		return models.Documentation{}, false
	}
	return d, true
}

// Get handles GET /api/admin/documentation/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.load(w, r); ok {
		apiutil.WriteJSON(w, http.StatusOK, d)
	}
}

// Create handles POST /api/admin/documentation.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in docInput
	if !shared.Decode(w, r, &in) {
		return
	}
	club, ok := shared.WriteClub(w, r, in.EkskulType)
	if !ok {
		return
	}
	var d models.Documentation
	in.apply(&d, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Docs.Create(ctx, d)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create documentation failed", err, "Gagal menyimpan dokumentasi.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/documentation/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var in docInput
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
	d := existing
	in.apply(&d, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Docs.Update(ctx, d)
	if errors.Is(err, docstore.ErrNotFound) {
		shared.NotFound(w)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update documentation failed", err, "Gagal menyimpan dokumentasi.", "", zap.String("id", d.ID.Hex()))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/documentation/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Docs.Delete(ctx, d.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete documentation failed", err, "Gagal menghapus dokumentasi.", "", zap.String("id", d.ID.Hex()))
		return
	}
	shared.Deleted(w)
}
