// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds the app-specific settings. Runtime mode, log level, ports
// and server timeouts live in WAFFLE's CoreConfig.
//
// Values come from, highest precedence first: command-line flags,
// EKSKULHUB_* environment variables (a .env file is loaded first), a
// config.toml/yaml/json in the working directory, and the defaults in
// appConfigKeys.
type AppConfig struct {
	// MongoDB
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Sessions
	SessionKey    string // signs session cookies; at least 32 bytes in prod
	SessionName   string
	SessionDomain string // blank means current host
	SessionMaxAge time.Duration

	// Site
	SiteName string
	Timezone string // IANA zone the school's "today" is computed in

	// Identity: "local" (bcrypt hashes on users) or "firebase"
	AuthProvider            string
	FirebaseAPIKey          string
	FirebaseProjectID       string
	FirebaseCredentialsFile string // service account JSON; needed to create/delete accounts

	// Cloudinary
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	UploadMaxBytes     int64
	UploadMaxDimension int // photos are downscaled to fit; 0 disables

	// Login throttling, per 15 minutes
	LoginIPLimit    int
	LoginEmailLimit int

	// First super admin, created or promoted on startup when set.
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
}
