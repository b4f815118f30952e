package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	userstore "github.com/dalemusser/ekskulhub/internal/app/store/users"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/app/system/cloudinary"
	"github.com/dalemusser/ekskulhub/internal/app/system/identity"
	"github.com/dalemusser/ekskulhub/internal/app/system/mediaupload"
	"github.com/dalemusser/ekskulhub/internal/app/system/ratelimit"
	"github.com/dalemusser/ekskulhub/internal/app/system/timezones"
	"github.com/dalemusser/ekskulhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "ekskulhub",
		SessionKey:      "test-session-key-for-testing-only-32b",
		SessionName:     "test-session",
		SessionMaxAge:   time.Hour,
		Timezone:        "Asia/Jakarta",
		AuthProvider:    "local",
		LoginIPLimit:    20,
		LoginEmailLimit: 5,
	}
}

func devCore() *config.CoreConfig {
	return &config.CoreConfig{Env: "dev", LogLevel: "info", MaxRequestBodyBytes: 2 << 20}
}

func defaultValues() config.AppConfigValues {
	v := config.AppConfigValues{}
	for _, k := range appConfigKeys {
		v[k.Name] = k.Default
	}
	return v
}

func TestAppConfigFrom_Defaults(t *testing.T) {
	cfg := appConfigFrom(defaultValues())

	if cfg.MongoDatabase != "ekskulhub" || cfg.MongoMaxPoolSize != 100 {
		t.Errorf("mongo = %q/%d", cfg.MongoDatabase, cfg.MongoMaxPoolSize)
	}
	if cfg.SessionMaxAge != 168*time.Hour {
		t.Errorf("SessionMaxAge = %v, want 168h", cfg.SessionMaxAge)
	}
	if cfg.Timezone != "Asia/Jakarta" || cfg.AuthProvider != "local" {
		t.Errorf("timezone/provider = %q/%q", cfg.Timezone, cfg.AuthProvider)
	}
	if cfg.UploadMaxBytes != 50<<20 || cfg.UploadMaxDimension != 2000 {
		t.Errorf("upload limits = %d/%d", cfg.UploadMaxBytes, cfg.UploadMaxDimension)
	}
	if cfg.LoginIPLimit != 20 || cfg.LoginEmailLimit != 5 {
		t.Errorf("login limits = %d/%d", cfg.LoginIPLimit, cfg.LoginEmailLimit)
	}
	if err := ValidateConfig(devCore(), cfg, testLogger()); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// Values set through EKSKULHUB_* variables reach the app as strings.
func TestAppConfigFrom_EnvStrings(t *testing.T) {
	v := defaultValues()
	v["mongo_database"] = "sekolah"
	v["session_max_age"] = "2h"
	v["login_email_limit"] = "3"
	v["upload_max_bytes"] = "1048576"
	v["auth_provider"] = "Firebase"

	cfg := appConfigFrom(v)
	if cfg.MongoDatabase != "sekolah" {
		t.Errorf("MongoDatabase = %q", cfg.MongoDatabase)
	}
	if cfg.SessionMaxAge != 2*time.Hour {
		t.Errorf("SessionMaxAge = %v", cfg.SessionMaxAge)
	}
	if cfg.LoginEmailLimit != 3 || cfg.UploadMaxBytes != 1<<20 {
		t.Errorf("ints = %d/%d", cfg.LoginEmailLimit, cfg.UploadMaxBytes)
	}
	if cfg.AuthProvider != "firebase" {
		t.Errorf("AuthProvider = %q, want lowercased", cfg.AuthProvider)
	}
}

func TestAppConfigKeys_NoCoreClash(t *testing.T) {
	core := map[string]bool{
		"env": true, "log_level": true, "http_port": true, "https_port": true,
		"shutdown_timeout": true, "read_timeout": true, "domain": true,
		"max_request_body_bytes": true, "db_connect_timeout": true, "index_boot_timeout": true,
	}
	seen := map[string]bool{}
	for _, k := range appConfigKeys {
		if core[k.Name] {
			t.Errorf("app key %q shadows a WAFFLE core flag", k.Name)
		}
		if seen[k.Name] {
			t.Errorf("duplicate key %q", k.Name)
		}
		seen[k.Name] = true
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		core    func(*config.CoreConfig)
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", nil, nil, ""},
		{"bad mongo uri", nil, func(c *AppConfig) { c.MongoURI = "localhost:27017" }, "MongoDB URI"},
		{"bad log level", func(c *config.CoreConfig) { c.LogLevel = "verbose" }, nil, "log_level"},
		{"short key in prod", func(c *config.CoreConfig) { c.Env = "prod" }, func(c *AppConfig) { c.SessionKey = "short" }, "session_key"},
		{"short key in dev", nil, func(c *AppConfig) { c.SessionKey = "short" }, ""},
		{"zero session age", nil, func(c *AppConfig) { c.SessionMaxAge = 0 }, "session_max_age"},
		{"bad timezone", nil, func(c *AppConfig) { c.Timezone = "Mars/Olympus" }, "timezone"},
		{"unknown provider", nil, func(c *AppConfig) { c.AuthProvider = "ldap" }, "auth_provider"},
		{"firebase incomplete", nil, func(c *AppConfig) { c.AuthProvider = "firebase"; c.FirebaseAPIKey = "k" }, "firebase_project_id"},
		{"cloudinary partial", nil, func(c *AppConfig) { c.CloudinaryCloudName = "demo" }, "cloudinary"},
		{"cloudinary complete", nil, func(c *AppConfig) {
			c.CloudinaryCloudName, c.CloudinaryAPIKey, c.CloudinaryAPISecret = "demo", "key", "secret"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := devCore()
			if tt.core != nil {
				tt.core(core)
			}
			cfg := validConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := ValidateConfig(core, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestHooks_Wired(t *testing.T) {
	if Hooks.Name != "ekskulhub" {
		t.Errorf("Name = %q", Hooks.Name)
	}
	if Hooks.LoadConfig == nil || Hooks.ConnectDB == nil || Hooks.BuildHandler == nil || Hooks.Shutdown == nil {
		t.Error("required hooks missing")
	}
}

func TestEnsureSuperAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	provider := identity.NewLocal(users)
	cfg := validConfig()
	cfg.SuperAdminEmail = "Kepsek@Sekolah.sch.id"
	cfg.SuperAdminPassword = "rahasia123"
	cfg.SuperAdminName = "Kepala Sekolah"

	if err := ensureSuperAdmin(ctx, users, provider, cfg, testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin: %v", err)
	}

	u, err := users.GetByEmail(ctx, "kepsek@sekolah.sch.id")
	if err != nil {
		t.Fatalf("find created user: %v", err)
	}
	if u.Role != authz.RoleSuperAdmin {
		t.Errorf("role = %q, want %q", u.Role, authz.RoleSuperAdmin)
	}
	if u.PasswordHash == nil || u.UID == "" {
		t.Fatalf("expected uid and password hash, got %+v", u)
	}
	if _, err := provider.SignIn(ctx, "kepsek@sekolah.sch.id", "rahasia123"); err != nil {
		t.Errorf("seeded admin cannot sign in: %v", err)
	}

	// running again is a no-op
	if err := ensureSuperAdmin(ctx, users, provider, cfg, testLogger()); err != nil {
		t.Fatalf("second ensureSuperAdmin: %v", err)
	}
	if n, _ := users.Count(ctx); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestEnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	existing := fx.CreateUser(ctx, "Pembina Tari", "tari@sekolah.sch.id", "tari_admin")

	users := userstore.New(db)
	cfg := validConfig()
	cfg.SuperAdminEmail = "tari@sekolah.sch.id"

	if err := ensureSuperAdmin(ctx, users, identity.NewLocal(users), cfg, testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin: %v", err)
	}
	u, err := users.GetByID(ctx, existing.ID)
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != authz.RoleSuperAdmin || u.Name != "Pembina Tari" {
		t.Errorf("got role %q name %q", u.Role, u.Name)
	}
}

func TestEnsureSuperAdmin_NoPasswordSkips(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	cfg := validConfig()
	cfg.SuperAdminEmail = "nobody@sekolah.sch.id"

	if err := ensureSuperAdmin(ctx, users, identity.NewLocal(users), cfg, testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin: %v", err)
	}
	if n, _ := users.Count(ctx); n != 0 {
		t.Errorf("users = %d, want 0", n)
	}
}

func TestBuildHandler_Routes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	svc := &Services{
		Clock:    timezones.NewClock(time.UTC),
		Provider: identity.NewLocal(users),
		Limiter:  ratelimit.NewLoginLimiter(100, 100),
		Media:    mediaupload.New(cloudinary.New("", "", "", ""), 0, testLogger()),
	}
	defer svc.Close()

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db, Services: svc}
	h, err := BuildHandler(devCore(), validConfig(), deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}

	tests := []struct {
		method string
		path   string
		accept string
		status int
	}{
		{"GET", "/", "text/html", http.StatusOK},
		{"GET", "/about", "text/html", http.StatusOK},
		{"GET", "/achievements", "text/html", http.StatusOK},
		{"GET", "/ekskul/robotik", "text/html", http.StatusOK},
		{"GET", "/ekskul/catur", "text/html", http.StatusNotFound},
		{"GET", "/login", "text/html", http.StatusOK},
		{"GET", "/health", "application/json", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/admin", "text/html", http.StatusSeeOther},
		{"GET", "/api/admin/members", "application/json", http.StatusUnauthorized},
		{"GET", "/api/auth/me", "application/json", http.StatusUnauthorized},
		{"POST", "/api/cloudinary/upload", "application/json", http.StatusUnauthorized},
		{"GET", "/no-such-page", "text/html", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
