// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	userstore "github.com/dalemusser/ekskulhub/internal/app/store/users"
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/identity"
	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/app/system/ratelimit"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	SessionMgr *auth.SessionManager
	Provider   identity.Provider
	Users      *userstore.Store
	Limiter    *ratelimit.LoginLimiter
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	provider identity.Provider,
	limiter *ratelimit.LoginLimiter,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:        logger,
		ErrLog:     errLog,
		SessionMgr: sessionMgr,
		Provider:   provider,
		Users:      userstore.New(db),
		Limiter:    limiter,
	}
}

// failure is a sign-in rejection that is safe to show the user.
type failure struct {
	status int
	msg    string
}

func (f *failure) Error() string { return f.msg }

var (
	errBadCredentials = &failure{http.StatusUnauthorized, "Email atau kata sandi salah."}
	errNotRegistered  = &failure{http.StatusForbidden, "Akun ini belum terdaftar sebagai pengurus."}
	errDisabled       = &failure{http.StatusForbidden, "Akun Anda dinonaktifkan. Hubungi admin sekolah."}
	errSlowDown       = &failure{http.StatusTooManyRequests, "Terlalu banyak percobaan masuk. Coba lagi nanti."}
)

// authenticate checks the credentials with the identity provider, resolves the
// users document and starts the session. A *failure is returned for
// rejections the caller should show; any other error is a server fault.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, email, password string) (*models.User, error) {
	email = normalize.Email(email)
	if email == "" || password == "" {
		return nil, errBadCredentials
	}
	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login rate limited", zap.String("email", email), zap.String("ip", ratelimit.ClientIP(r)))
			return nil, &failure{http.StatusTooManyRequests, msg}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Provider.SignIn(ctx, email, password)
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrAccountNotFound):
		h.Log.Info("login failed", zap.String("email", email), zap.String("provider", h.Provider.Name()))
		return nil, errBadCredentials
	case errors.Is(err, identity.ErrAccountDisabled):
		return nil, errDisabled
	case errors.Is(err, identity.ErrTooManyAttempts):
		return nil, errSlowDown
	case err != nil:
		return nil, err
	}

	u, err := h.lookup(ctx, acct, email)
	if err != nil {
		return nil, err
	}

	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		UID:   u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		return nil, err
	}
	if h.Limiter != nil {
		h.Limiter.Succeeded(email)
	}
	h.Log.Info("login succeeded",
		zap.String("user_id", su.ID),
		zap.String("role", su.Role),
		zap.String("provider", h.Provider.Name()))
	return u, nil
}

// lookup finds the users document for a provider account, by uid first and
// then by email for accounts created before the uid was recorded.
func (h *Handler) lookup(ctx context.Context, acct identity.Account, email string) (*models.User, error) {
	u, err := h.Users.GetByUID(ctx, acct.UID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return nil, err
	}
	if acct.Email != "" {
		email = acct.Email
	}
	u, err = h.Users.GetByEmail(ctx, email)
	if errors.Is(err, userstore.ErrNotFound) {
		h.Log.Warn("identity account without users document", zap.String("email", email))
		return nil, errNotRegistered
	}
	return u, err
}

// safeReturn keeps redirects on this site.
func safeReturn(ret, fallback string) string {
	ret = strings.TrimSpace(ret)
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.ContainsAny(ret, "\\\r\n") {
		return fallback
	}
	return ret
}
