// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	achievementstore "github.com/dalemusser/ekskulhub/internal/app/store/achievements"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// LatestAchievements is how many achievements the landing page shows.
const LatestAchievements = 6

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Log          *zap.Logger
	ErrLog       *uierrors.ErrorLogger
	Achievements *achievementstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:          logger,
		ErrLog:       errLog,
		Achievements: achievementstore.New(db),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	latest, err := h.Achievements.List(ctx, achievementstore.Filter{Limit: LatestAchievements})
	if err != nil {
		// The landing page still renders; only the achievements strip is lost.
		h.Log.Warn("load latest achievements failed", zap.Error(err))
		latest = []models.Achievement{}
	}

	data := struct {
		viewdata.BaseVM
		Latest []models.Achievement
	}{
		BaseVM: viewdata.NewBaseVM(r, "Beranda"),
		Latest: latest,
	}

	templates.Render(w, r, "home", data)
}
