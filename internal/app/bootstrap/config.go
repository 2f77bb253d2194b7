// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PulseHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: PULSEHUB_MONGO_URI, PULSEHUB_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "pulsehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Profile photo storage
	{Name: "storage_local_path", Default: "./uploads/photos", Desc: "Local storage path for profile photos"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving stored photos"},

	// Scoring policy
	{Name: "scoring_multiplier", Default: 20, Desc: "Multiplier from 1-5 rating to percentage score"},

	// Background work
	{Name: "overdue_sweep_interval", Default: "1h", Desc: "How often to mark past-due goals overdue (e.g., 30m, 1h)"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of an account to promote to admin on startup"},
	{Name: "superadmin_password", Default: "", Desc: "Password used to seed the superadmin account when it does not exist yet"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// config.LoadWithAppConfig merges flags > env > files > defaults, with
// app env vars under the PULSEHUB_ prefix.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PULSEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		ScoringMultiplier: appValues.Int("scoring_multiplier"),

		OverdueSweepInterval: appValues.Duration("overdue_sweep_interval", time.Hour),

		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminPassword: appValues.String("superadmin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// PulseHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.ScoringMultiplier <= 0 {
		return fmt.Errorf("scoring_multiplier must be positive, got %d", appCfg.ScoringMultiplier)
	}

	if appCfg.OverdueSweepInterval < time.Minute {
		return fmt.Errorf("overdue_sweep_interval must be at least 1m, got %s", appCfg.OverdueSweepInterval)
	}

	return nil
}
