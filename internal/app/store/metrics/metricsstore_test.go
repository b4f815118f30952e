package metricsstore_test

import (
	"context"
	"testing"

	metricsstore "github.com/dalemusser/ekskulhub/internal/app/store/metrics"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/ekskulhub/internal/testutil"
)

func TestFetchDashboardCounts_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counts, err := metricsstore.FetchDashboardCounts(ctx, db, "", true)
	if err != nil {
		t.Fatalf("FetchDashboardCounts failed: %v", err)
	}
	if counts != (metricsstore.Counts{}) {
		t.Errorf("expected all zero, got %+v", counts)
	}
}

func TestFetchDashboardCounts_Scoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateMember(ctx, "Andi", "robotik")
	fx.CreateMemberWithStatus(ctx, "Bima", "robotik", models.MemberInactive)
	fx.CreateMember(ctx, "Citra", "tari")
	fx.CreateDocumentation(ctx, "Kompetisi", "robotik", testutil.Day(2024, 3, 1))
	fx.CreateAchievement(ctx, "Juara", "robotik", models.LevelNasional, testutil.Day(2024, 3, 2))
	fx.CreateAchievement(ctx, "Juara Tari", "tari", models.LevelSekolah, testutil.Day(2024, 3, 2))
	fx.CreateSchedule(ctx, "Latihan", "robotik", testutil.Day(2024, 3, 4), "14:00", "16:00")
	fx.CreateAttendance(ctx, a, testutil.Day(2024, 3, 4), models.AttendancePresent)
	fx.CreateUser(ctx, "Admin", "admin@a.id", "admin")

	counts, err := metricsstore.FetchDashboardCounts(ctx, db, "robotik", false)
	if err != nil {
		t.Fatalf("FetchDashboardCounts failed: %v", err)
	}
	want := metricsstore.Counts{Members: 2, ActiveMembers: 1, Documentation: 1, Schedules: 1, Attendance: 1, Achievements: 1}
	if counts != want {
		t.Errorf("robotik counts = %+v, want %+v", counts, want)
	}

	all, err := metricsstore.FetchDashboardCounts(ctx, db, "", true)
	if err != nil {
		t.Fatalf("FetchDashboardCounts failed: %v", err)
	}
	if all.Members != 3 || all.Achievements != 2 || all.Users != 1 {
		t.Errorf("all counts = %+v", all)
	}
}

func TestFetchDashboardCounts_CanceledContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := metricsstore.FetchDashboardCounts(ctx, db, "", false); err == nil {
		t.Error("expected error for canceled context")
	}
}
