// internal/app/features/achievements/public.go
package achievements

import (
	"context"
	"net/http"

	achievementstore "github.com/dalemusser/ekskulhub/internal/app/store/achievements"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"github.com/dalemusser/ekskulhub/internal/domain/ekskul"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type publicData struct {
	viewdata.BaseVM
	Items  []models.Achievement
	Levels []string
	Ekskul string
	Level  string
}

// ServePublic handles GET /achievements?ekskul=&level=. Unknown filter values
// are ignored rather than rejected.
func (h *Handler) ServePublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := achievementstore.Filter{}
	if slug := ekskul.Normalize(q.Get("ekskul")); ekskul.IsValid(slug) {
		f.Ekskul = slug
	}
	if lvl := q.Get("level"); models.IsAchievementLevel(lvl) {
		f.Level = lvl
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Achievements.List(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list public achievements failed", err, "Gagal memuat prestasi.", "/")
		return
	}

	templates.Render(w, r, "achievements_public", publicData{
		BaseVM: viewdata.NewBaseVM(r, "Prestasi"),
		Items:  items,
		Levels: models.AchievementLevels,
		Ekskul: f.Ekskul,
		Level:  f.Level,
	})
}
