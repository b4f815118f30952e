package schedules_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/features/schedules"
	"github.com/dalemusser/ekskulhub/internal/app/system/timezones"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/ekskulhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, now time.Time) (*schedules.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	clock := timezones.Clock{Loc: time.UTC, Now: func() time.Time { return now }}
	return schedules.NewHandler(db, clock, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestCreate_ValidatesTimes(t *testing.T) {
	handler, _ := newTestHandler(t, time.Now())

	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"ok", "14:00", "16:00", http.StatusCreated},
		{"end before start", "16:00", "14:00", http.StatusBadRequest},
		{"same time", "14:00", "14:00", http.StatusBadRequest},
		{"bad clock", "2pm", "16:00", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/api/admin/schedules", map[string]any{
				"title":     "Latihan",
				"date":      "2024-10-15",
				"startTime": tc.start,
				"endTime":   tc.end,
			})
			req = testutil.WithUser(req, testutil.ClubAdmin("futsal"))
			rec := testutil.NewRecorder()
			handler.Create(rec, req)
			rec.AssertStatus(t, tc.want)
		})
	}
}

func TestList_DateRangeInclusive(t *testing.T) {
	handler, fx := newTestHandler(t, time.Now())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSchedule(ctx, "A", "pmr", testutil.Day(2024, 10, 1), "14:00", "15:00")
	fx.CreateSchedule(ctx, "B", "pmr", testutil.Day(2024, 10, 31), "14:00", "15:00")
	fx.CreateSchedule(ctx, "C", "pmr", testutil.Day(2024, 11, 1), "14:00", "15:00")

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/schedules?from=2024-10-01&to=2024-10-31", nil), testutil.ClubAdmin("pmr"))
	rec := testutil.NewRecorder()
	handler.List(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Items []models.Schedule `json:"items"`
	}
	rec.DecodeJSON(t, &body)
	if len(body.Items) != 2 || body.Items[0].Title != "A" || body.Items[1].Title != "B" {
		t.Errorf("items = %+v", body.Items)
	}
}

func TestWeek_Grid(t *testing.T) {
	// Wednesday 1 January 2025: the week starts on Monday 30 December 2024.
	handler, fx := newTestHandler(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSchedule(ctx, "Sore", "basket", testutil.Day(2024, 12, 30), "15:30", "17:00")
	fx.CreateSchedule(ctx, "Pagi", "basket", testutil.Day(2024, 12, 30), "07:00", "08:00")
	fx.CreateSchedule(ctx, "Minggu", "basket", testutil.Day(2025, 1, 5), "08:00", "10:00")
	fx.CreateSchedule(ctx, "Minggu lalu", "basket", testutil.Day(2024, 12, 29), "08:00", "10:00")

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/schedules/week", nil), testutil.ClubAdmin("basket"))
	rec := testutil.NewRecorder()
	handler.Week(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var view schedules.WeekView
	rec.DecodeJSON(t, &view)
	if view.Start != "2024-12-30" || view.End != "2025-01-05" {
		t.Errorf("week = %s..%s", view.Start, view.End)
	}
	if view.Prev != "2024-12-23" || view.Next != "2025-01-06" {
		t.Errorf("prev/next = %s/%s", view.Prev, view.Next)
	}
	monday := view.Days[0]
	if monday.Name != "Senin" || len(monday.Schedules) != 2 || monday.Schedules[0].Title != "Pagi" {
		t.Errorf("monday = %+v", monday)
	}
	if len(view.Days[6].Schedules) != 1 || view.Days[6].Name != "Minggu" {
		t.Errorf("sunday = %+v", view.Days[6])
	}
	total := 0
	for _, d := range view.Days {
		total += len(d.Schedules)
	}
	if total != 3 {
		t.Errorf("grid holds %d schedules, want 3", total)
	}
}

func TestWeek_ExplicitDateAndBadDate(t *testing.T) {
	handler, _ := newTestHandler(t, time.Now())

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/schedules/week?date=2024-02-29&ekskul=tari", nil), testutil.SuperAdmin())
	rec := testutil.NewRecorder()
	handler.Week(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	var view schedules.WeekView
	rec.DecodeJSON(t, &view)
	if view.Start != "2024-02-26" || view.Ekskul != "tari" {
		t.Errorf("view = %+v", view)
	}

	req = testutil.WithUser(httptest.NewRequest("GET", "/api/admin/schedules/week?date=29-02-2024", nil), testutil.SuperAdmin())
	rec = testutil.NewRecorder()
	handler.Week(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestDelete_ScopedAndGoneAfterward(t *testing.T) {
	handler, fx := newTestHandler(t, time.Now())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	own := fx.CreateSchedule(ctx, "Latihan", "tari", testutil.Day(2024, 10, 16), "13:00", "14:00")
	other := fx.CreateSchedule(ctx, "Latihan", "futsal", testutil.Day(2024, 10, 16), "13:00", "14:00")
	admin := testutil.ClubAdmin("tari")

	del := func(id string) *testutil.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/api/admin/schedules/"+id, nil)
		req = testutil.WithChiURLParam(testutil.WithUser(req, admin), "id", id)
		rec := testutil.NewRecorder()
		handler.Delete(rec, req)
		return rec
	}

	del(other.ID.Hex()).AssertStatus(t, http.StatusNotFound)
	del(own.ID.Hex()).AssertStatus(t, http.StatusOK)
	del(own.ID.Hex()).AssertStatus(t, http.StatusNotFound)

	if n, _ := fx.DB().Collection("schedules").CountDocuments(ctx, map[string]any{"_id": other.ID}); n != 1 {
		t.Errorf("other club's schedule was removed")
	}
}
