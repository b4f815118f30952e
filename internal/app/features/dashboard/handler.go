// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	metricsstore "github.com/dalemusser/ekskulhub/internal/app/store/metrics"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"github.com/dalemusser/ekskulhub/internal/domain/ekskul"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog}
}

// Tab is one sidebar entry of a dashboard.
type Tab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	API   string `json:"api"`
	Count int64  `json:"count"`
}

// Descriptor is everything a client needs to draw the dashboard for the
// signed-in admin.
type Descriptor struct {
	Key    string              `json:"key"`
	Title  string              `json:"title"`
	Scope  authz.Scope         `json:"scope"`
	Club   *ekskul.Club        `json:"club,omitempty"`
	Tabs   []Tab               `json:"tabs"`
	Counts metricsstore.Counts `json:"counts"`
}

var tabLabels = map[string]string{
	authz.TabMembers:       "Anggota",
	authz.TabDocumentation: "Dokumentasi",
	authz.TabSchedules:     "Jadwal",
	authz.TabAttendance:    "Absensi",
	authz.TabAchievements:  "Prestasi",
	authz.TabUsers:         "Pengguna",
}

func countFor(c metricsstore.Counts, tab string) int64 {
	switch tab {
	case authz.TabMembers:
		return c.Members
	case authz.TabDocumentation:
		return c.Documentation
	case authz.TabSchedules:
		return c.Schedules
	case authz.TabAttendance:
		return c.Attendance
	case authz.TabAchievements:
		return c.Achievements
	case authz.TabUsers:
		return c.Users
	}
	return 0
}

// Describe builds the descriptor for role. ok is false when role has no
// dashboard.
func (h *Handler) Describe(ctx context.Context, role string) (Descriptor, bool, error) {
	v, ok := authz.DashboardFor(role)
	if !ok {
		return Descriptor{}, false, nil
	}
	counts, err := metricsstore.FetchDashboardCounts(ctx, h.DB, v.Scope.Ekskul, v.Scope.Super)
	if err != nil {
		return Descriptor{}, true, err
	}
	d := Descriptor{
		Key:    v.Key,
		Title:  v.Title,
		Scope:  v.Scope,
		Club:   v.Club,
		Tabs:   make([]Tab, 0, len(v.Tabs)),
		Counts: counts,
	}
	for _, key := range v.Tabs {
		d.Tabs = append(d.Tabs, Tab{
			Key:   key,
			Label: tabLabels[key],
			API:   apiPath(key),
			Count: countFor(counts, key),
		})
	}
	return d, true, nil
}

func apiPath(tab string) string {
	if tab == authz.TabUsers {
		return "/api/admin/users"
	}
	return "/api/admin/" + tab
}

type pageData struct {
	viewdata.BaseVM
	Dashboard Descriptor
}

// ServeDashboard answers GET /api/admin/dashboard with the JSON descriptor
// and GET /admin with the rendered page.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, ok, err := h.Describe(ctx, role)
	if !ok {
		uierrors.Respond(w, r, http.StatusForbidden, "Peran Anda tidak memiliki dashboard.", "/")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard counts failed", err, "Gagal memuat dashboard.", "/", zap.String("role", role))
		return
	}

	if apiutil.WantsJSON(r) {
		apiutil.WriteJSON(w, http.StatusOK, d)
		return
	}
	templates.Render(w, r, "admin_dashboard", pageData{
		BaseVM:    viewdata.NewBaseVM(r, d.Title),
		Dashboard: d,
	})
}
