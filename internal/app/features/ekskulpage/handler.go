// internal/app/features/ekskulpage/handler.go

// Package ekskulpage serves the public page of one club.
package ekskulpage

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/features/schedules"
	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	achievementstore "github.com/dalemusser/ekskulhub/internal/app/store/achievements"
	docstore "github.com/dalemusser/ekskulhub/internal/app/store/documentation"
	memberstore "github.com/dalemusser/ekskulhub/internal/app/store/members"
	schedulestore "github.com/dalemusser/ekskulhub/internal/app/store/schedules"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/app/system/timezones"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"github.com/dalemusser/ekskulhub/internal/domain/ekskul"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	galleryLimit     = 12
	achievementLimit = 10
)

type Handler struct {
	Log          *zap.Logger
	ErrLog       *uierrors.ErrorLogger
	Clock        timezones.Clock
	Members      *memberstore.Store
	Docs         *docstore.Store
	Achievements *achievementstore.Store
	Schedules    *schedulestore.Store
}

func NewHandler(db *mongo.Database, clock timezones.Clock, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:          logger,
		ErrLog:       errLog,
		Clock:        clock,
		Members:      memberstore.New(db),
		Docs:         docstore.New(db),
		Achievements: achievementstore.New(db),
		Schedules:    schedulestore.New(db),
	}
}

// Page is everything the club page shows.
type Page struct {
	Club          ekskul.Club            `json:"club"`
	Members       []models.Member        `json:"members"`
	Documentation []models.Documentation `json:"documentation"`
	Achievements  []models.Achievement   `json:"achievements"`
	Week          schedules.WeekView     `json:"week"`
}

// Load reads the four sections of a club page concurrently. Any failure
// fails the whole page.
func (h *Handler) Load(ctx context.Context, club ekskul.Club, day time.Time) (Page, error) {
	p := Page{Club: club}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		p.Members, err = h.Members.List(gctx, memberstore.Filter{Ekskul: club.Slug, Status: models.MemberActive})
		return err
	})
	g.Go(func() error {
		var err error
		p.Documentation, err = h.Docs.List(gctx, club.Slug, galleryLimit)
		return err
	})
	g.Go(func() error {
		var err error
		p.Achievements, err = h.Achievements.List(gctx, achievementstore.Filter{Ekskul: club.Slug, Limit: achievementLimit})
		return err
	})
	g.Go(func() error {
		var err error
		p.Week, err = schedules.BuildWeek(gctx, h.Schedules, club.Slug, day)
		return err
	})

	if err := g.Wait(); err != nil {
		return Page{}, err
	}
	return p, nil
}

type pageData struct {
	viewdata.BaseVM
	Page
}

// ServePage handles GET /ekskul/{slug}?week=YYYY-MM-DD.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	club, ok := ekskul.Lookup(chi.URLParam(r, "slug"))
	if !ok {
		uierrors.Respond(w, r, http.StatusNotFound, "Ekstrakurikuler tidak ditemukan.", "/")
		return
	}

	day := h.Clock.Today()
	if s := r.URL.Query().Get("week"); s != "" {
		d, err := shared.ParseDate(s)
		if err != nil {
			uierrors.Respond(w, r, http.StatusBadRequest, "Tanggal tidak valid.", "/ekskul/"+club.Slug)
			return
		}
		day = d
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Load(ctx, club, day)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load club page failed", err, "Gagal memuat halaman ekskul.", "/",
			zap.String("ekskul", club.Slug))
		return
	}

	if apiutil.WantsJSON(r) {
		apiutil.WriteJSON(w, http.StatusOK, page)
		return
	}
	templates.Render(w, r, "ekskul_page", pageData{
		BaseVM: viewdata.NewBaseVM(r, club.Name),
		Page:   page,
	})
}
