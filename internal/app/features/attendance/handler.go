// internal/app/features/attendance/handler.go
package attendance

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	attendancestore "github.com/dalemusser/ekskulhub/internal/app/store/attendance"
	memberstore "github.com/dalemusser/ekskulhub/internal/app/store/members"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ekskulhub/internal/app/system/inputval"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the attendance panel: single records, whole-day sheets and
// per-member summaries.
type Handler struct {
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Attendance *attendancestore.Store
	Members    *memberstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		ErrLog:     errLog,
		Attendance: attendancestore.New(db),
		Members:    memberstore.New(db),
	}
}

type createInput struct {
	MemberID string `json:"memberId" validate:"required,mongodb"`
	Date     string `json:"date" validate:"required,ymd"`
	Status   string `json:"status" validate:"required,attstatus"`
	Notes    string `json:"notes" validate:"max=500"`
}

type updateInput struct {
	Date   string `json:"date" validate:"required,ymd"`
	Status string `json:"status" validate:"required,attstatus"`
	Notes  string `json:"notes" validate:"max=500"`
}

type listResponse struct {
	Ekskul string              `json:"ekskul,omitempty"`
	Items  []models.Attendance `json:"items"`
}

func fieldError(w http.ResponseWriter, field, msg string) {
	apiutil.WriteJSON(w, http.StatusBadRequest, apiutil.ErrorBody{
		Error:  "Data tidak valid.",
		Fields: []inputval.FieldError{{Field: field, Message: msg}},
	})
}

// List handles GET /api/admin/attendance?ekskul=&date=&memberId=&from=&to=.
// date selects one day and wins over from/to.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	club, ok := shared.ReadClub(w, r)
	if !ok {
		return
	}
	from, to, ok := shared.DateRange(w, r)
	if !ok {
		return
	}
	f := attendancestore.Filter{Ekskul: club, From: from, To: to}

	q := r.URL.Query()
	if s := q.Get("date"); s != "" {
		d, err := shared.ParseDate(s)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Tanggal tidak valid.")
			return
		}
		f.Date = d
	}
	if s := q.Get("memberId"); s != "" {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "ID anggota tidak valid.")
			return
		}
		f.MemberID = id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Attendance.List(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list attendance failed", err, "Gagal memuat absensi.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, listResponse{Ekskul: club, Items: items})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Attendance, bool) {
	id, ok := shared.ObjectID(w, r)
	if !ok {
		return models.Attendance{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Attendance.GetByID(ctx, id)
	if errors.Is(err, attendancestore.ErrNotFound) {
		shared.NotFound(w)
		return models.Attendance{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load attendance failed", err, "Gagal memuat absensi.", "", zap.String("id", id.Hex()))
		return models.Attendance{}, false
	}
	if !shared.Owns(w, r, a.EkskulType) {
		return models.Attendance{}, false
	}
	return a, true
}

// Get handles GET /api/admin/attendance/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if a, ok := h.load(w, r); ok {
		apiutil.WriteJSON(w, http.StatusOK, a)
	}
}

// Create handles POST /api/admin/attendance. The record takes the member's
// club; a member outside the caller's scope is reported as unknown.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if !shared.Decode(w, r, &in) {
		return
	}
	scope, ok := shared.Scope(w, r)
	if !ok {
		return
	}
	memberID, _ := primitive.ObjectIDFromHex(in.MemberID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Members.GetByID(ctx, memberID)
	if errors.Is(err, memberstore.ErrNotFound) || (err == nil && !scope.Allows(m.EkskulType)) {
		fieldError(w, "memberId", "anggota tidak ditemukan")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member for attendance failed", err, "Gagal menyimpan absensi.", "", zap.String("member_id", in.MemberID))
		return
	}

	date, _ := shared.ParseDate(in.Date)
	created, err := h.Attendance.Create(ctx, models.Attendance{
		MemberID:   m.ID,
		MemberName: m.Name,
		EkskulType: m.EkskulType,
		Date:       date,
		Status:     in.Status,
		Notes:      htmlsanitize.Sanitize(in.Notes),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create attendance failed", err, "Gagal menyimpan absensi.", "", zap.String("ekskul", m.EkskulType))
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/attendance/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var in updateInput
	if !shared.Decode(w, r, &in) {
		return
	}
	a := existing
	a.Date, _ = shared.ParseDate(in.Date)
	a.Status = in.Status
	a.Notes = htmlsanitize.Sanitize(in.Notes)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Attendance.Update(ctx, a)
	if errors.Is(err, attendancestore.ErrNotFound) {
		shared.NotFound(w)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update attendance failed", err, "Gagal menyimpan absensi.", "", zap.String("id", a.ID.Hex()))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/attendance/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Attendance.Delete(ctx, a.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete attendance failed", err, "Gagal menghapus absensi.", "", zap.String("id", a.ID.Hex()))
		return
	}
	if n == 0 {
		shared.NotFound(w)
		return
	}
	shared.Deleted(w)
}
