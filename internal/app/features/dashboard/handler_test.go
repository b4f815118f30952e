package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/ekskulhub/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/ekskulhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return dashboard.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func seed(t *testing.T, fx *testutil.Fixtures) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateMember(ctx, "Ani", "robotik")
	fx.CreateMemberWithStatus(ctx, "Budi", "robotik", models.MemberInactive)
	fx.CreateMember(ctx, "Citra", "tari")
	fx.CreateDocumentation(ctx, "Lomba", "robotik", testutil.Day(2024, 5, 1))
	fx.CreateAchievement(ctx, "Juara 1", "robotik", models.LevelProvinsi, testutil.Day(2024, 5, 2))
	fx.CreateSchedule(ctx, "Latihan", "tari", testutil.Day(2024, 5, 3), "14:00", "16:00")
	fx.CreateAttendance(ctx, a, testutil.Day(2024, 5, 6), models.AttendancePresent)
	fx.CreateUser(ctx, "Admin Robotik", "robotik@sekolah.test", "robotik_admin")
}

func TestServeDashboard_ClubAdmin(t *testing.T) {
	handler, fx := newTestHandler(t)
	seed(t, fx)

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/dashboard", nil), testutil.ClubAdmin("robotik"))
	rec := testutil.NewRecorder()
	handler.ServeDashboard(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var d dashboard.Descriptor
	rec.DecodeJSON(t, &d)
	if d.Key != "robotik_dashboard" || d.Club == nil || d.Club.Slug != "robotik" {
		t.Fatalf("descriptor = %+v", d)
	}
	if len(d.Tabs) != 5 {
		t.Fatalf("got %d tabs, want 5", len(d.Tabs))
	}
	want := map[string]int64{
		authz.TabMembers:       2,
		authz.TabDocumentation: 1,
		authz.TabSchedules:     0,
		authz.TabAttendance:    1,
		authz.TabAchievements:  1,
	}
	for _, tab := range d.Tabs {
		if tab.Count != want[tab.Key] {
			t.Errorf("tab %s count = %d, want %d", tab.Key, tab.Count, want[tab.Key])
		}
		if tab.Label == "" || tab.API != "/api/admin/"+tab.Key {
			t.Errorf("tab %+v", tab)
		}
	}
	if d.Counts.ActiveMembers != 1 || d.Counts.Users != 0 {
		t.Errorf("counts = %+v", d.Counts)
	}
}

func TestServeDashboard_SuperAdmin(t *testing.T) {
	handler, fx := newTestHandler(t)
	seed(t, fx)

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/dashboard", nil), testutil.SuperAdmin())
	rec := testutil.NewRecorder()
	handler.ServeDashboard(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var d dashboard.Descriptor
	rec.DecodeJSON(t, &d)
	if d.Key != "super_admin" || d.Club != nil || !d.Scope.Super {
		t.Fatalf("descriptor = %+v", d)
	}
	last := d.Tabs[len(d.Tabs)-1]
	if last.Key != authz.TabUsers || last.Count != 1 || last.API != "/api/admin/users" {
		t.Errorf("users tab = %+v", last)
	}
	if d.Counts.Members != 3 || d.Counts.Schedules != 1 {
		t.Errorf("counts = %+v", d.Counts)
	}
}

func TestServeDashboard_EveryClubHasVariant(t *testing.T) {
	handler, _ := newTestHandler(t)
	seen := map[string]bool{}
	for _, slug := range []string{"pramuka", "paskibra", "pmr", "robotik", "futsal", "basket", "voli", "tari", "paduan_suara"} {
		req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/dashboard", nil), testutil.ClubAdmin(slug))
		rec := testutil.NewRecorder()
		handler.ServeDashboard(rec, req)
		rec.AssertStatus(t, http.StatusOK)

		var d dashboard.Descriptor
		rec.DecodeJSON(t, &d)
		if seen[d.Key] {
			t.Errorf("variant %q reused", d.Key)
		}
		seen[d.Key] = true
	}
}

func TestServeDashboard_UnknownRoleForbidden(t *testing.T) {
	handler, _ := newTestHandler(t)
	for _, role := range []string{"member", "catur_admin", "robotik_admins", ""} {
		user := testutil.SuperAdmin()
		user.Role = role
		req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/dashboard", nil), user)
		rec := testutil.NewRecorder()
		handler.ServeDashboard(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("role %q: status %d, want 403", role, rec.Code)
		}
	}
}

func TestServeDashboard_HTMLPage(t *testing.T) {
	testutil.BootTemplates(t)

	handler, _ := newTestHandler(t)

	req := testutil.WithUser(httptest.NewRequest("GET", "/admin", nil), testutil.ClubAdmin("voli"))
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	handler.ServeDashboard(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Dashboard Bola Voli")
	rec.AssertContains(t, `id="tab-attendance"`)
}
