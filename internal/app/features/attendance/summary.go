// internal/app/features/attendance/summary.go
package attendance

import (
	"context"
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	attendancestore "github.com/dalemusser/ekskulhub/internal/app/store/attendance"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type summaryRow struct {
	attendancestore.MemberSummary
	Rate float64 `json:"rate"`
}

type summaryResponse struct {
	Ekskul string       `json:"ekskul,omitempty"`
	From   string       `json:"from,omitempty"`
	To     string       `json:"to,omitempty"`
	Items  []summaryRow `json:"items"`
}

// Summary handles GET /api/admin/attendance/summary?ekskul=&from=&to=.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	club, ok := shared.ReadClub(w, r)
	if !ok {
		return
	}
	from, to, ok := shared.DateRange(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sums, err := h.Attendance.Summary(ctx, attendancestore.Filter{Ekskul: club, From: from, To: to})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "attendance summary failed", err, "Gagal memuat rekap absensi.", "", zap.String("ekskul", club))
		return
	}

	resp := summaryResponse{Ekskul: club, Items: make([]summaryRow, 0, len(sums))}
	if !from.IsZero() {
		resp.From = shared.FormatDate(from)
	}
	if !to.IsZero() {
		resp.To = shared.FormatDate(to.AddDate(0, 0, -1))
	}
	for _, s := range sums {
		resp.Items = append(resp.Items, summaryRow{MemberSummary: s, Rate: s.Rate()})
	}
	apiutil.WriteJSON(w, http.StatusOK, resp)
}
