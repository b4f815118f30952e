// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/ekskulhub/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/logging"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every app environment variable.
const EnvPrefix = "EKSKULHUB"

// appConfigKeys defines the configuration keys for ekskulhub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: EKSKULHUB_MONGO_URI, EKSKULHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ekskulhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "ekskulhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "168h", Desc: "Session lifetime (e.g., 168h, 24h)"},

	{Name: "site_name", Default: "Ekstrakurikuler Sekolah", Desc: "School name shown in page headers"},
	{Name: "timezone", Default: timezones.Default, Desc: "School time zone (IANA name or WIB/WITA/WIT)"},

	// Identity
	{Name: "auth_provider", Default: "local", Desc: "Identity provider: 'local' or 'firebase'"},
	{Name: "firebase_api_key", Default: "", Desc: "Firebase Web API key"},
	{Name: "firebase_project_id", Default: "", Desc: "Firebase project id"},
	{Name: "firebase_credentials_file", Default: "", Desc: "Firebase service account JSON path"},

	// Cloudinary
	{Name: "cloudinary_cloud_name", Default: "", Desc: "Cloudinary cloud name"},
	{Name: "cloudinary_api_key", Default: "", Desc: "Cloudinary API key"},
	{Name: "cloudinary_api_secret", Default: "", Desc: "Cloudinary API secret"},
	{Name: "cloudinary_folder", Default: "ekskulhub", Desc: "Root folder for uploads"},
	{Name: "upload_max_bytes", Default: 50 << 20, Desc: "Request body limit for uploads"},
	{Name: "upload_max_dimension", Default: 2000, Desc: "Longest photo edge after downscaling (0 disables)"},

	// Login throttling
	{Name: "login_ip_limit", Default: 20, Desc: "Login attempts per IP per 15 minutes"},
	{Name: "login_email_limit", Default: 5, Desc: "Failed logins per email per 15 minutes"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of the super admin (promotes/creates on startup)"},
	{Name: "superadmin_password", Default: "", Desc: "Password for a newly created super admin"},
	{Name: "superadmin_name", Default: "Administrator", Desc: "Display name for a newly created super admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config.toml/yaml/json,
// environment variables (EKSKULHUB_* for core and app keys alike) and
// command-line flags, merged as flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}
	return coreCfg, appConfigFrom(appValues), nil
}

func appConfigFrom(v config.AppConfigValues) AppConfig {
	return AppConfig{
		MongoURI:         v.String("mongo_uri"),
		MongoDatabase:    v.String("mongo_database"),
		MongoMaxPoolSize: uint64(intValue(v, "mongo_max_pool_size")),
		MongoMinPoolSize: uint64(intValue(v, "mongo_min_pool_size")),

		SessionKey:    v.String("session_key"),
		SessionName:   v.String("session_name"),
		SessionDomain: v.String("session_domain"),
		SessionMaxAge: v.Duration("session_max_age", 7*24*time.Hour),

		SiteName: v.String("site_name"),
		Timezone: v.String("timezone"),

		AuthProvider:            strings.ToLower(v.String("auth_provider")),
		FirebaseAPIKey:          v.String("firebase_api_key"),
		FirebaseProjectID:       v.String("firebase_project_id"),
		FirebaseCredentialsFile: v.String("firebase_credentials_file"),

		CloudinaryCloudName: v.String("cloudinary_cloud_name"),
		CloudinaryAPIKey:    v.String("cloudinary_api_key"),
		CloudinaryAPISecret: v.String("cloudinary_api_secret"),
		CloudinaryFolder:    v.String("cloudinary_folder"),

		UploadMaxBytes:     int64(intValue(v, "upload_max_bytes")),
		UploadMaxDimension: intValue(v, "upload_max_dimension"),

		LoginIPLimit:    intValue(v, "login_ip_limit"),
		LoginEmailLimit: intValue(v, "login_email_limit"),

		SuperAdminEmail:    v.String("superadmin_email"),
		SuperAdminPassword: v.String("superadmin_password"),
		SuperAdminName:     v.String("superadmin_name"),
	}
}

// intValue reads an integer key. Values that arrive from the environment
// are strings, so those are parsed.
func intValue(v config.AppConfigValues, key string) int {
	if s := v.String(key); s != "" {
		n, _ := strconv.Atoi(strings.TrimSpace(s))
		return n
	}
	return v.Int(key)
}

// ValidateConfig rejects settings that would only fail later, at first use.
// All app problems are reported together.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var problems []string

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		problems = append(problems, fmt.Sprintf("invalid MongoDB URI: %v", err))
	}
	if appCfg.MongoDatabase == "" {
		problems = append(problems, "mongo_database is required")
	}
	if !logging.IsValidLogLevel(coreCfg.LogLevel) {
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", coreCfg.LogLevel))
	}
	if len(appCfg.SessionKey) < 32 {
		if coreCfg.Env == "prod" {
			problems = append(problems, "session_key must be at least 32 bytes in prod")
		} else {
			logger.Warn("session_key is shorter than 32 bytes; fine for dev only")
		}
	}
	if appCfg.SessionMaxAge <= 0 {
		problems = append(problems, "session_max_age must be positive")
	}
	if _, err := timezones.Load(appCfg.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("timezone: %v", err))
	}

	switch appCfg.AuthProvider {
	case "local":
	case "firebase":
		if appCfg.FirebaseAPIKey == "" || appCfg.FirebaseProjectID == "" {
			problems = append(problems, "auth_provider firebase needs firebase_api_key and firebase_project_id")
		}
	default:
		problems = append(problems, fmt.Sprintf("auth_provider must be local or firebase, got %q", appCfg.AuthProvider))
	}

	set := 0
	for _, s := range []string{appCfg.CloudinaryCloudName, appCfg.CloudinaryAPIKey, appCfg.CloudinaryAPISecret} {
		if s != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		problems = append(problems, "cloudinary needs cloud name, api key and api secret together")
	} else if set == 0 {
		logger.Warn("cloudinary not configured; uploads will answer 503")
	}

	if appCfg.SuperAdminEmail != "" && appCfg.AuthProvider == "local" && appCfg.SuperAdminPassword == "" {
		logger.Warn("superadmin_email set without superadmin_password; an existing user can be promoted but none will be created")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
