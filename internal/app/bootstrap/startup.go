// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/dalemusser/ekskulhub/internal/app/store/users"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/app/system/identity"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, _ *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.FromEnv())
	viewdata.SetSiteName(appCfg.SiteName)

	if appCfg.SuperAdminEmail != "" {
		ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
		defer cancel()
		if err := ensureSuperAdmin(ctx, userstore.New(deps.MongoDatabase), deps.Services.Provider, appCfg, logger); err != nil {
			return fmt.Errorf("ensure super admin: %w", err)
		}
	}
	return nil
}

// ensureSuperAdmin promotes the configured email to super admin, creating
// the account first when no users document exists and a password is set.
func ensureSuperAdmin(ctx context.Context, users *userstore.Store, provider identity.Provider, cfg AppConfig, logger *zap.Logger) error {
	existing, err := users.GetByEmail(ctx, cfg.SuperAdminEmail)
	switch {
	case err == nil:
		if existing.Role == authz.RoleSuperAdmin {
			return nil
		}
		if _, err := users.UpdateNameRole(ctx, existing.ID, existing.Name, authz.RoleSuperAdmin); err != nil {
			return err
		}
		logger.Info("promoted user to super admin", zap.String("email", existing.Email), zap.String("previous_role", existing.Role))
		return nil
	case !errors.Is(err, userstore.ErrNotFound):
		return err
	}

	if cfg.SuperAdminPassword == "" {
		logger.Warn("super admin not found and no password configured; skipping", zap.String("email", cfg.SuperAdminEmail))
		return nil
	}

	acct, err := provider.CreateAccount(ctx, cfg.SuperAdminEmail, cfg.SuperAdminPassword, cfg.SuperAdminName)
	switch {
	case errors.Is(err, identity.ErrEmailExists):
		// The hosted account predates the users collection; link by email at first login.
		logger.Info("identity account already exists; creating users document without uid", zap.String("email", cfg.SuperAdminEmail))
		acct = identity.Account{Email: cfg.SuperAdminEmail}
	case err != nil:
		return err
	}

	u := models.User{
		UID:   acct.UID,
		Email: cfg.SuperAdminEmail,
		Name:  cfg.SuperAdminName,
		Role:  authz.RoleSuperAdmin,
	}
	if acct.PasswordHash != "" {
		h := acct.PasswordHash
		u.PasswordHash = &h
	}
	if _, err := users.Create(ctx, u); err != nil {
		if acct.UID != "" {
			_ = provider.DeleteAccount(ctx, acct.UID)
		}
		return err
	}
	logger.Info("created super admin", zap.String("email", cfg.SuperAdminEmail), zap.String("provider", provider.Name()))
	return nil
}
