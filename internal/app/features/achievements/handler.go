// internal/app/features/achievements/handler.go
package achievements

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	achievementstore "github.com/dalemusser/ekskulhub/internal/app/store/achievements"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves both the admin achievements panel and the public
// achievements page.
type Handler struct {
	Log          *zap.Logger
	ErrLog       *uierrors.ErrorLogger
	Achievements *achievementstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, ErrLog: errLog, Achievements: achievementstore.New(db)}
}

type achievementInput struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Date         string `json:"date" validate:"required,ymd"`
	Level        string `json:"level" validate:"required,achlevel"`
	Rank         string `json:"rank" validate:"max=100"`
	Participants string `json:"participants" validate:"max=500"`
	PhotoURL     string `json:"photoUrl" validate:"omitempty,url"`
	EkskulType   string `json:"ekskulType" validate:"omitempty,ekskul"`
}

func (in achievementInput) apply(a *models.Achievement, club string) {
	a.Title = normalize.Name(in.Title)
	a.Description = htmlsanitize.Sanitize(in.Description)
	a.Date, _ = shared.ParseDate(in.Date)
	a.Level = in.Level
	a.Rank = normalize.Name(in.Rank)
	a.Participants = htmlsanitize.Sanitize(in.Participants)
	a.PhotoURL = in.PhotoURL
	a.EkskulType = club
}

type listResponse struct {
	Ekskul string               `json:"ekskul,omitempty"`
	Level  string               `json:"level,omitempty"`
	Items  []models.Achievement `json:"items"`
}

// List handles GET /api/admin/achievements?ekskul=&level=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	club, ok := shared.ReadClub(w, r)
	if !ok {
		return
	}
	level := r.URL.Query().Get("level")
	if level != "" && !models.IsAchievementLevel(level) {
		apiutil.WriteError(w, http.StatusBadRequest, "Tingkat prestasi tidak valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Achievements.List(ctx, achievementstore.Filter{Ekskul: club, Level: level})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list achievements failed", err, "Gagal memuat prestasi.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, listResponse{Ekskul: club, Level: level, Items: items})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Achievement, bool) {
	id, ok := shared.ObjectID(w, r)
	if !ok {
		return models.Achievement{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Achievements.GetByID(ctx, id)
	if errors.Is(err, achievementstore.ErrNotFound) {
		shared.NotFound(w)
		return models.Achievement{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load achievement failed", err, "Gagal memuat prestasi.", "", zap.String("id", id.Hex()))
		return models.Achievement{}, false
	}
	if !shared.Owns(w, r, a.EkskulType) {
		return models.Achievement{}, false
	}
	return a, true
}

// Get handles GET /api/admin/achievements/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if a, ok := h.load(w, r); ok {
		apiutil.WriteJSON(w, http.StatusOK, a)
	}
}

// Create handles POST /api/admin/achievements.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in achievementInput
	if !shared.Decode(w, r, &in) {
		return
	}
	club, ok := shared.WriteClub(w, r, in.EkskulType)
	if !ok {
		return
	}
	var a models.Achievement
	in.apply(&a, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Achievements.Create(ctx, a)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create achievement failed", err, "Gagal menyimpan prestasi.", "", zap.String("ekskul", club))
		return
	}
	h.Log.Info("achievement created", zap.String("id", created.ID.Hex()), zap.String("ekskul", club), zap.String("level", created.Level))
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/achievements/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var in achievementInput
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
	a := existing
	in.apply(&a, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Achievements.Update(ctx, a)
	if errors.Is(err, achievementstore.ErrNotFound) {
		shared.NotFound(w)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update achievement failed", err, "Gagal menyimpan prestasi.", "", zap.String("id", a.ID.Hex()))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/achievements/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Achievements.Delete(ctx, a.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete achievement failed", err, "Gagal menghapus prestasi.", "", zap.String("id", a.ID.Hex()))
		return
	}
	shared.Deleted(w)
}
