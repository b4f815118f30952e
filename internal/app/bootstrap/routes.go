// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	aboutfeature "github.com/dalemusser/ekskulhub/internal/app/features/about"
	achievementsfeature "github.com/dalemusser/ekskulhub/internal/app/features/achievements"
	adminusersfeature "github.com/dalemusser/ekskulhub/internal/app/features/adminusers"
	attendancefeature "github.com/dalemusser/ekskulhub/internal/app/features/attendance"
	dashboardfeature "github.com/dalemusser/ekskulhub/internal/app/features/dashboard"
	documentationfeature "github.com/dalemusser/ekskulhub/internal/app/features/documentation"
	ekskulpagefeature "github.com/dalemusser/ekskulhub/internal/app/features/ekskulpage"
	errorsfeature "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/ekskulhub/internal/app/features/health"
	homefeature "github.com/dalemusser/ekskulhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/ekskulhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/ekskulhub/internal/app/features/logout"
	membersfeature "github.com/dalemusser/ekskulhub/internal/app/features/members"
	schedulesfeature "github.com/dalemusser/ekskulhub/internal/app/features/schedules"
	uploadfeature "github.com/dalemusser/ekskulhub/internal/app/features/upload"
	userstore "github.com/dalemusser/ekskulhub/internal/app/store/users"
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	appmetrics "github.com/dalemusser/ekskulhub/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/logging"
	wafflemetrics "github.com/dalemusser/waffle/metrics"
	wafflemw "github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router.
//
// Layout:
//   - public pages: /, /about, /achievements, /ekskul/{slug}
//   - browser auth: /login, /logout
//   - admin pages and JSON API: /admin, /api/admin/*, /api/cloudinary/*
//   - JSON auth: /api/auth/login, /api/auth/me, /api/auth/logout
//   - ops: /health, /metrics
//
// Every admin tree sits behind the error boundary so a panic renders the
// retry fallback instead of dropping the connection. JSON APIs take
// max_request_body_bytes; uploads are bounded by upload_max_bytes instead.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc := deps.Services

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	if svc.Verifier != nil {
		sessionMgr.SetBearer(loginfeature.BearerFunc(svc.Verifier, userstore.New(deps.MongoDatabase)))
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	if err := appmetrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("metrics registration failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)
	boundary := errorsfeature.Boundary(logger)
	limitJSON := wafflemw.LimitBodySize(coreCfg.MaxRequestBodyBytes)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(wafflemetrics.HTTPMetrics)
	r.Use(appmetrics.Middleware)
	r.Use(logging.Recoverer(logger))
	r.Use(wafflemw.SecurityHeadersFromConfig(coreCfg))
	r.Use(wafflemw.CompressFromConfig(coreCfg, nil))

	// Loads SessionUser into context if logged in (cookie or bearer token).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", wafflemetrics.Handler())

	// Public pages
	homeHandler := homefeature.NewHandler(db, errLog, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	achievementsHandler := achievementsfeature.NewHandler(db, errLog, logger)
	r.Mount("/achievements", achievementsfeature.PublicRoutes(achievementsHandler))

	ekskulHandler := ekskulpagefeature.NewHandler(db, svc.Clock, errLog, logger)
	r.Mount("/ekskul", ekskulpagefeature.Routes(ekskulHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, svc.Provider, svc.Limiter, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	authAPI := loginfeature.APIRoutes(loginHandler)
	authAPI.Post("/logout", logoutHandler.APILogout)
	r.With(limitJSON).Mount("/api/auth", authAPI)

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Admin backoffice
	dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
	membersHandler := membersfeature.NewHandler(db, errLog, logger)
	docsHandler := documentationfeature.NewHandler(db, errLog, logger)
	schedulesHandler := schedulesfeature.NewHandler(db, svc.Clock, errLog, logger)
	attendanceHandler := attendancefeature.NewHandler(db, errLog, logger)
	usersHandler := adminusersfeature.NewHandler(db, svc.Provider, errLog, logger)
	uploadHandler := uploadfeature.NewHandler(svc.Media, appCfg.UploadMaxBytes, errLog, logger)

	r.Group(func(r chi.Router) {
		r.Use(boundary)

		r.Mount("/admin", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(limitJSON)
			r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))
			r.Mount("/members", membersfeature.Routes(membersHandler, sessionMgr))
			r.Mount("/documentation", documentationfeature.Routes(docsHandler, sessionMgr))
			r.Mount("/achievements", achievementsfeature.AdminRoutes(achievementsHandler, sessionMgr))
			r.Mount("/schedules", schedulesfeature.Routes(schedulesHandler, sessionMgr))
			r.Mount("/attendance", attendancefeature.Routes(attendanceHandler, sessionMgr))
			r.Mount("/users", adminusersfeature.Routes(usersHandler, sessionMgr))
		})

		r.Mount("/api/cloudinary", uploadfeature.Routes(uploadHandler, sessionMgr))
	})

	return r, nil
}
