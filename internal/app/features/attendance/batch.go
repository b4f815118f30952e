// internal/app/features/attendance/batch.go
package attendance

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	memberstore "github.com/dalemusser/ekskulhub/internal/app/store/members"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ekskulhub/internal/app/system/inputval"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type sheetEntry struct {
	MemberID string `json:"memberId" validate:"required,mongodb"`
	Status   string `json:"status" validate:"required,attstatus"`
	Notes    string `json:"notes" validate:"max=500"`
}

type sheetInput struct {
	Date       string       `json:"date" validate:"required,ymd"`
	EkskulType string       `json:"ekskulType" validate:"omitempty,ekskul"`
	Entries    []sheetEntry `json:"entries" validate:"required,min=1,max=500,dive"`
}

type sheetResponse struct {
	Ekskul   string `json:"ekskul"`
	Date     string `json:"date"`
	Recorded int    `json:"recorded"`
	Created  int64  `json:"created"`
	Updated  int64  `json:"updated"`
}

// Batch handles POST /api/admin/attendance/batch: one club's sheet for one
// day. Every member must belong to that club and appear once. Re-submitting
// the same day overwrites the earlier statuses.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var in sheetInput
	if !shared.Decode(w, r, &in) {
		return
	}
	club, ok := shared.WriteClub(w, r, in.EkskulType)
	if !ok {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(in.Entries))
	seen := make(map[primitive.ObjectID]bool, len(in.Entries))
	var problems []inputval.FieldError
	for i, e := range in.Entries {
		id, _ := primitive.ObjectIDFromHex(e.MemberID)
		if seen[id] {
			problems = append(problems, inputval.FieldError{
				Field:   fmt.Sprintf("entries[%d].memberId", i),
				Message: "anggota tercatat lebih dari sekali",
			})
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(problems) > 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, apiutil.ErrorBody{Error: "Data tidak valid.", Fields: problems})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Members.List(ctx, memberstore.Filter{Ekskul: club, IDs: ids})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load members for attendance sheet failed", err, "Gagal menyimpan absensi.", "", zap.String("ekskul", club))
		return
	}
	byID := make(map[primitive.ObjectID]models.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	date, _ := shared.ParseDate(in.Date)
	rows := make([]models.Attendance, 0, len(in.Entries))
	for i, e := range in.Entries {
		id, _ := primitive.ObjectIDFromHex(e.MemberID)
		m, found := byID[id]
		if !found {
			problems = append(problems, inputval.FieldError{
				Field:   fmt.Sprintf("entries[%d].memberId", i),
				Message: "bukan anggota ekskul ini",
			})
			continue
		}
		rows = append(rows, models.Attendance{
			MemberID:   m.ID,
			MemberName: m.Name,
			EkskulType: club,
			Date:       date,
			Status:     e.Status,
			Notes:      htmlsanitize.Sanitize(e.Notes),
		})
	}
	if len(problems) > 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, apiutil.ErrorBody{Error: "Data tidak valid.", Fields: problems})
		return
	}

	created, updated, err := h.Attendance.UpsertDay(ctx, date, rows)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "record attendance sheet failed", err, "Gagal menyimpan absensi.", "",
			zap.String("ekskul", club), zap.String("date", in.Date))
		return
	}
	h.Log.Info("attendance sheet recorded",
		zap.String("ekskul", club),
		zap.String("date", in.Date),
		zap.Int("rows", len(rows)),
		zap.Int64("created", created),
		zap.Int64("updated", updated))

	apiutil.WriteJSON(w, http.StatusOK, sheetResponse{
		Ekskul:   club,
		Date:     in.Date,
		Recorded: len(rows),
		Created:  created,
		Updated:  updated,
	})
}
