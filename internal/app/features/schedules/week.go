// internal/app/features/schedules/week.go
package schedules

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	schedulestore "github.com/dalemusser/ekskulhub/internal/app/store/schedules"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/app/system/weekgrid"
	"go.uber.org/zap"
)

// WeekView is the schedule grid for one Monday-start week. Prev and Next are
// the dates to request for the neighbouring weeks.
type WeekView struct {
	Ekskul string          `json:"ekskul,omitempty"`
	Start  string          `json:"start"`
	End    string          `json:"end"`
	Prev   string          `json:"prev"`
	Next   string          `json:"next"`
	Days   [7]weekgrid.Day `json:"days"`
}

// BuildWeek loads and lays out the week containing day for club ("" = all).
func BuildWeek(ctx context.Context, store *schedulestore.Store, club string, day time.Time) (WeekView, error) {
	week := weekgrid.WeekOf(day)
	items, err := store.List(ctx, schedulestore.Filter{Ekskul: club, From: week.Start(), To: week.End()})
	if err != nil {
		return WeekView{}, err
	}
	return WeekView{
		Ekskul: club,
		Start:  shared.FormatDate(week.Start()),
		End:    shared.FormatDate(week[6]),
		Prev:   shared.FormatDate(weekgrid.Shift(week.Start(), -1)),
		Next:   shared.FormatDate(weekgrid.Shift(week.Start(), 1)),
		Days:   weekgrid.Grid(week, items),
	}, nil
}

// Week handles GET /api/admin/schedules/week?date=YYYY-MM-DD&ekskul=.
// Without date it shows the school's current week.
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	club, ok := shared.ReadClub(w, r)
	if !ok {
		return
	}
	day := h.Clock.Today()
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := shared.ParseDate(s)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Tanggal tidak valid.")
			return
		}
		day = d
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	view, err := BuildWeek(ctx, h.Schedules, club, day)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load schedule week failed", err, "Gagal memuat jadwal.", "", zap.String("ekskul", club))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, view)
}
