// internal/app/features/schedules/handler.go
package schedules

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	schedulestore "github.com/dalemusser/ekskulhub/internal/app/store/schedules"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ekskulhub/internal/app/system/inputval"
	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/app/system/timezones"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the schedules panel and its week grid.
type Handler struct {
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Schedules *schedulestore.Store
	Clock     timezones.Clock
}

func NewHandler(db *mongo.Database, clock timezones.Clock, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, ErrLog: errLog, Schedules: schedulestore.New(db), Clock: clock}
}

type scheduleInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Date        string `json:"date" validate:"required,ymd"`
	StartTime   string `json:"startTime" validate:"required,hhmm"`
	EndTime     string `json:"endTime" validate:"required,hhmm"`
	Location    string `json:"location" validate:"max=200"`
	EkskulType  string `json:"ekskulType" validate:"omitempty,ekskul"`
}

// validTimes rejects a session that ends before it starts. HH:MM strings
// compare correctly as text.
func validTimes(w http.ResponseWriter, in scheduleInput) bool {
	if in.EndTime <= in.StartTime {
		apiutil.WriteJSON(w, http.StatusBadRequest, apiutil.ErrorBody{
			Error:  "Data tidak valid.",
			Fields: []inputval.FieldError{{Field: "endTime", Message: "harus setelah jam mulai"}},
		})
		return false
	}
	return true
}

func (in scheduleInput) apply(s *models.Schedule, club string) {
	s.Title = normalize.Name(in.Title)
	s.Description = htmlsanitize.Sanitize(in.Description)
	s.Date, _ = shared.ParseDate(in.Date)
	s.StartTime = in.StartTime
	s.EndTime = in.EndTime
	s.Location = normalize.Name(in.Location)
	s.EkskulType = club
}

type listResponse struct {
	Ekskul string            `json:"ekskul,omitempty"`
	Items  []models.Schedule `json:"items"`
}

// List handles GET /api/admin/schedules?ekskul=&from=&to=. from/to are
// YYYY-MM-DD; to is inclusive.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	club, ok := shared.ReadClub(w, r)
	if !ok {
		return
	}
	from, to, ok := shared.DateRange(w, r)
	if !ok {
		return
	}
	f := schedulestore.Filter{Ekskul: club, From: from, To: to}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Schedules.List(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list schedules failed", err, "Gagal memuat jadwal.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, listResponse{Ekskul: club, Items: items})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Schedule, bool) {
	id, ok := shared.ObjectID(w, r)
	if !ok {
		return models.Schedule{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	s, err := h.Schedules.GetByID(ctx, id)
	if errors.Is(err, schedulestore.ErrNotFound) {
		shared.NotFound(w)
		return models.Schedule{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load schedule failed", err, "Gagal memuat jadwal.", "", zap.String("id", id.Hex()))
		return models.Schedule{}, false
	}
	if !shared.Owns(w, r, s.EkskulType) {
		return models.Schedule{}, false
	}
	return s, true
}

// Get handles GET /api/admin/schedules/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.load(w, r); ok {
		apiutil.WriteJSON(w, http.StatusOK, s)
	}
}

// Create handles POST /api/admin/schedules.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in scheduleInput
	if !shared.Decode(w, r, &in) || !validTimes(w, in) {
		return
	}
	club, ok := shared.WriteClub(w, r, in.EkskulType)
	if !ok {
		return
	}
	var s models.Schedule
	in.apply(&s, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Schedules.Create(ctx, s)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create schedule failed", err, "Gagal menyimpan jadwal.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/schedules/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var in scheduleInput
	if !shared.Decode(w, r, &in) || !validTimes(w, in) {
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
	s := existing
	in.apply(&s, club)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Schedules.Update(ctx, s)
	if errors.Is(err, schedulestore.ErrNotFound) {
		shared.NotFound(w)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update schedule failed", err, "Gagal menyimpan jadwal.", "", zap.String("id", s.ID.Hex()))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/schedules/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Schedules.Delete(ctx, s.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete schedule failed", err, "Gagal menghapus jadwal.", "", zap.String("id", s.ID.Hex()))
		return
	}
	if n == 0 {
		shared.NotFound(w)
		return
	}
	h.Log.Info("schedule deleted", zap.String("id", s.ID.Hex()), zap.String("ekskul", s.EkskulType))
	shared.Deleted(w)
}
