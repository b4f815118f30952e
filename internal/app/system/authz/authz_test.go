package authz_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/domain/ekskul"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		role  string
		want  authz.Scope
		admin bool
	}{
		{"admin", authz.Scope{Super: true}, true},
		{"  ADMIN ", authz.Scope{Super: true}, true},
		{"robotik_admin", authz.Scope{Ekskul: "robotik"}, true},
		{"Paduan_Suara_Admin", authz.Scope{Ekskul: "paduan_suara"}, true},
		{"pmr_admin", authz.Scope{Ekskul: "pmr"}, true},
		{"catur_admin", authz.Scope{}, false},
		{"_admin", authz.Scope{}, false},
		{"robotik", authz.Scope{}, false},
		{"paduan-suara_admin", authz.Scope{}, false},
		{"member", authz.Scope{}, false},
		{"", authz.Scope{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got, ok := authz.ParseRole(tt.role)
			if ok != tt.admin || got != tt.want {
				t.Errorf("ParseRole(%q) = %+v, %v; want %+v, %v", tt.role, got, ok, tt.want, tt.admin)
			}
		})
	}
}

func TestParseRole_EveryClubHasAnAdminRole(t *testing.T) {
	for _, c := range ekskul.All() {
		role := c.Slug + "_admin"
		scope, ok := authz.ParseRole(role)
		if !ok || scope.Ekskul != c.Slug {
			t.Errorf("role %q did not round-trip to club %q", role, c.Slug)
		}
	}
	if authz.IsAdminRole("catur_admin") {
		t.Error("expected unknown club admin role to be rejected")
	}
}

func TestDashboardFor(t *testing.T) {
	v, ok := authz.DashboardFor("admin")
	if !ok || v.Key != "super_admin" || !v.Scope.Super {
		t.Fatalf("unexpected super admin dashboard %+v", v)
	}
	if !v.HasTab(authz.TabUsers) {
		t.Error("super admin dashboard should include the users tab")
	}

	v, ok = authz.DashboardFor("basket_admin")
	if !ok || v.Key != "basket_dashboard" || v.Club == nil || v.Club.Slug != "basket" {
		t.Fatalf("unexpected club dashboard %+v", v)
	}
	if v.HasTab(authz.TabUsers) {
		t.Error("club dashboards must not include the users tab")
	}
	if len(v.Tabs) != 5 {
		t.Errorf("club dashboard tabs = %v, want 5 tabs", v.Tabs)
	}

	if _, ok := authz.DashboardFor("guest"); ok {
		t.Error("expected no dashboard for non-admin role")
	}
}

func TestDashboardFor_DistinctPerClub(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range ekskul.All() {
		v, ok := authz.DashboardFor(c.Slug + "_admin")
		if !ok {
			t.Fatalf("no dashboard for %s", c.Slug)
		}
		if seen[v.Key] {
			t.Errorf("duplicate dashboard key %q", v.Key)
		}
		seen[v.Key] = true
	}
}

func TestScopeFilter(t *testing.T) {
	super := authz.Scope{Super: true}
	club := authz.Scope{Ekskul: "robotik"}

	tests := []struct {
		name      string
		scope     authz.Scope
		requested string
		want      string
		wantErr   error
	}{
		{"super all", super, "", "", nil},
		{"super one", super, "Futsal", "futsal", nil},
		{"super unknown", super, "catur", "", authz.ErrUnknownEkskul},
		{"club pinned", club, "", "robotik", nil},
		{"club own", club, "robotik", "robotik", nil},
		{"club other", club, "futsal", "", authz.ErrForbiddenEkskul},
		{"no scope", authz.Scope{}, "", "", authz.ErrForbiddenEkskul},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authz.ScopeFilter(tt.scope, tt.requested)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("filter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScopeForWrite(t *testing.T) {
	if _, err := authz.ScopeForWrite(authz.Scope{Super: true}, ""); !errors.Is(err, authz.ErrUnknownEkskul) {
		t.Errorf("super admin without club: err = %v, want ErrUnknownEkskul", err)
	}
	if got, err := authz.ScopeForWrite(authz.Scope{Ekskul: "tari"}, ""); err != nil || got != "tari" {
		t.Errorf("club admin default = %q, %v; want tari", got, err)
	}
}

func TestScopeAllows(t *testing.T) {
	club := authz.Scope{Ekskul: "voli"}
	if !club.Allows("VOLI") || club.Allows("basket") {
		t.Error("club scope should allow only its own club")
	}
	if !(authz.Scope{Super: true}).Allows("basket") {
		t.Error("super scope should allow every club")
	}
}

func TestRequestHelpers(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/admin/dashboard", nil)
	if _, ok := authz.ScopeFrom(req); ok {
		t.Error("expected no scope without user")
	}

	req = auth.WithTestUser(req, &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "pmr_admin"})
	scope, ok := authz.ScopeFrom(req)
	if !ok || scope.Super || scope.Ekskul != "pmr" {
		t.Errorf("ScopeFrom = %+v, %v", scope, ok)
	}

	bad := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "not-an-id", Role: "admin"})
	if role, _, _, ok := authz.UserCtx(bad); ok || role != "visitor" {
		t.Errorf("malformed ID should fail closed, got role %q ok %v", role, ok)
	}
}

func TestUserPredicates(t *testing.T) {
	cases := []struct {
		role         string
		admin, super bool
	}{
		{"admin", true, true},
		{"ADMIN", true, true},
		{"tari_admin", true, false},
		{"member", false, false},
	}
	for _, tc := range cases {
		u := &auth.SessionUser{Role: tc.role}
		if got := authz.IsAdminUser(u); got != tc.admin {
			t.Errorf("IsAdminUser(%q) = %v", tc.role, got)
		}
		if got := authz.IsSuperAdminUser(u); got != tc.super {
			t.Errorf("IsSuperAdminUser(%q) = %v", tc.role, got)
		}
	}
	if authz.IsAdminUser(nil) || authz.IsSuperAdminUser(nil) {
		t.Error("nil user must not pass")
	}
}
