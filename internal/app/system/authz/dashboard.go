// internal/app/system/authz/dashboard.go
package authz

import "github.com/dalemusser/ekskulhub/internal/domain/ekskul"

// Dashboard tab keys, in sidebar order.
const (
	TabMembers       = "members"
	TabDocumentation = "documentation"
	TabSchedules     = "schedules"
	TabAttendance    = "attendance"
	TabAchievements  = "achievements"
	TabUsers         = "users"
)

var clubTabs = []string{TabMembers, TabDocumentation, TabSchedules, TabAttendance, TabAchievements}

// Variant names one backoffice dashboard.
type Variant struct {
	Key   string       `json:"key"`
	Title string       `json:"title"`
	Scope Scope        `json:"scope"`
	Club  *ekskul.Club `json:"club,omitempty"`
	Tabs  []string     `json:"tabs"`
}

// DashboardFor maps a role to its dashboard: the super admin overview or one
// club's dashboard. ok is false for non-admin roles.
func DashboardFor(role string) (Variant, bool) {
	scope, ok := ParseRole(role)
	if !ok {
		return Variant{}, false
	}
	if scope.Super {
		tabs := append(append([]string(nil), clubTabs...), TabUsers)
		return Variant{
			Key:   "super_admin",
			Title: "Dashboard Admin Sekolah",
			Scope: scope,
			Tabs:  tabs,
		}, true
	}
	club, _ := ekskul.Lookup(scope.Ekskul)
	return Variant{
		Key:   club.Slug + "_dashboard",
		Title: "Dashboard " + club.Name,
		Scope: scope,
		Club:  &club,
		Tabs:  append([]string(nil), clubTabs...),
	}, true
}

// HasTab reports whether the variant exposes tab.
func (v Variant) HasTab(tab string) bool {
	for _, t := range v.Tabs {
		if t == tab {
			return true
		}
	}
	return false
}
