// internal/app/bootstrap/services.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	userstore "github.com/dalemusser/ekskulhub/internal/app/store/users"
	"github.com/dalemusser/ekskulhub/internal/app/system/cloudinary"
	"github.com/dalemusser/ekskulhub/internal/app/system/identity"
	"github.com/dalemusser/ekskulhub/internal/app/system/mediaupload"
	"github.com/dalemusser/ekskulhub/internal/app/system/ratelimit"
	"github.com/dalemusser/ekskulhub/internal/app/system/timezones"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Services are the long-lived collaborators shared by the handlers.
type Services struct {
	Clock    timezones.Clock
	Provider identity.Provider
	Verifier *identity.TokenVerifier // nil unless the provider is firebase
	Limiter  *ratelimit.LoginLimiter
	Media    *mediaupload.Service
}

// BuildServices wires the identity provider, media host and login limiter
// from config.
func BuildServices(ctx context.Context, cfg AppConfig, db *mongo.Database, logger *zap.Logger) (*Services, error) {
	loc, err := timezones.Load(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	svc := &Services{
		Clock:   timezones.NewClock(loc),
		Limiter: ratelimit.NewLoginLimiter(cfg.LoginIPLimit, cfg.LoginEmailLimit),
	}

	switch cfg.AuthProvider {
	case "firebase":
		var creds []byte
		if cfg.FirebaseCredentialsFile != "" {
			creds, err = os.ReadFile(cfg.FirebaseCredentialsFile)
			if err != nil {
				svc.Close()
				return nil, fmt.Errorf("read firebase credentials: %w", err)
			}
		} else {
			logger.Warn("firebase credentials not set; admin users cannot be created or deleted")
		}
		fb, err := identity.NewFirebase(ctx, cfg.FirebaseAPIKey, cfg.FirebaseProjectID, creds)
		if err != nil {
			svc.Close()
			return nil, err
		}
		svc.Provider = fb
		svc.Verifier = identity.NewTokenVerifier(cfg.FirebaseProjectID)
	default:
		svc.Provider = identity.NewLocal(userstore.New(db))
	}
	logger.Info("identity provider selected", zap.String("provider", svc.Provider.Name()))

	media := cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	svc.Media = mediaupload.New(media, cfg.UploadMaxDimension, logger)

	return svc, nil
}

// Close stops background work owned by the services.
func (s *Services) Close() {
	if s != nil && s.Limiter != nil {
		s.Limiter.Stop()
	}
}
