package schedulestore_test

import (
	"errors"
	"testing"

	schedulestore "github.com/dalemusser/ekskulhub/internal/app/store/schedules"
	"github.com/dalemusser/ekskulhub/internal/testutil"
)

func TestStore_List_WeekOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schedulestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mon := testutil.Day(2024, 10, 14)
	fx.CreateSchedule(ctx, "Latihan sore", "futsal", mon, "15:30", "17:00")
	fx.CreateSchedule(ctx, "Latihan pagi", "futsal", mon, "07:00", "08:30")
	fx.CreateSchedule(ctx, "Rabu", "futsal", mon.AddDate(0, 0, 2), "14:00", "15:00")
	fx.CreateSchedule(ctx, "Minggu depan", "futsal", mon.AddDate(0, 0, 7), "14:00", "15:00")
	fx.CreateSchedule(ctx, "Klub lain", "robotik", mon, "10:00", "11:00")

	week, err := store.List(ctx, schedulestore.Filter{Ekskul: "futsal", From: mon, To: mon.AddDate(0, 0, 7)})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"Latihan pagi", "Latihan sore", "Rabu"}
	if len(week) != len(want) {
		t.Fatalf("got %d schedules, want %d", len(week), len(want))
	}
	for i := range want {
		if week[i].Title != want[i] {
			t.Errorf("position %d: got %q, want %q", i, week[i].Title, want[i])
		}
	}

	n, _ := store.Count(ctx, schedulestore.Filter{})
	if n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schedulestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sc := fx.CreateSchedule(ctx, "Latihan", "tari", testutil.Day(2024, 10, 16), "13:00", "14:00")
	sc.EndTime = "15:00"
	got, err := store.Update(ctx, sc)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.EndTime != "15:00" {
		t.Errorf("EndTime = %q", got.EndTime)
	}
	if n, _ := store.Delete(ctx, sc.ID); n != 1 {
		t.Errorf("Delete = %d, want 1", n)
	}
	if _, err := store.GetByID(ctx, sc.ID); !errors.Is(err, schedulestore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if n, err := store.Delete(ctx, sc.ID); err != nil || n != 0 {
		t.Errorf("second Delete = %d, %v; want 0, nil", n, err)
	}
}
