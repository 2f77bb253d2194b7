// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for PulseHub.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, log level); AppConfig is
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Profile photo storage (waffle pantry/storage, local backend)
	StorageLocalPath string // Filesystem path for stored photos
	StorageLocalURL  string // URL prefix for serving stored photos

	// Scoring policy: multiplier applied to 1-5 ratings to derive
	// percentage scores (20 maps 5 stars to 100%).
	ScoringMultiplier int

	// OverdueSweepInterval is how often the background worker marks
	// past-due open goals overdue.
	OverdueSweepInterval time.Duration

	// SuperAdminEmail, when set, promotes that account to admin during
	// startup. Useful for bootstrapping a fresh deployment. When
	// SuperAdminPassword is also set and no account exists for the email,
	// the account is created with that password so a fresh database has
	// at least one admin that can sign in.
	SuperAdminEmail    string
	SuperAdminPassword string
}
