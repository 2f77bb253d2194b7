// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	goalstore "github.com/dalemusser/pulsehub/internal/app/store/goals"
	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/authutil"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/photos"
	"github.com/dalemusser/pulsehub/internal/app/system/provision"
	"github.com/dalemusser/pulsehub/internal/app/system/scoring"
	"github.com/dalemusser/pulsehub/internal/app/system/workers"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Shared application state built during Startup and consumed by
// BuildHandler and Shutdown.
var (
	liveHub        *livequery.Hub
	photoSvc       *photos.Service
	provisionGuard *provision.Guard
	scoringPolicy  scoring.Policy
	overdueWorker  *workers.OverdueGoals
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built:
// session store, photo storage, the live-query hub, and the overdue-goal
// worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		return fmt.Errorf("session store init: %w", err)
	}

	local, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		return fmt.Errorf("photo storage init: %w", err)
	}
	photoSvc = photos.NewService(local)

	liveHub = livequery.NewHub(deps.MongoDatabase, livequery.NewChangeStreamWatcher(deps.MongoDatabase, logger), logger)
	provisionGuard = provision.NewGuard()
	scoringPolicy = scoring.Policy{Multiplier: appCfg.ScoringMultiplier}

	overdueWorker = workers.NewOverdueGoals(goalstore.New(deps.MongoDatabase), logger, appCfg.OverdueSweepInterval)
	overdueWorker.Start()

	if appCfg.SuperAdminEmail != "" {
		ensureSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, appCfg.SuperAdminPassword, logger)
	}

	return nil
}

// ensureSuperAdmin flips the configured account to the admin role,
// creating it first when a seed password is configured and the account
// does not exist. Best effort: failures are only logged, since the
// deployment may prefer seeding users another way.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) {
	users := userstore.New(deps.MongoDatabase)
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		logger.Warn("superadmin lookup failed", zap.String("email", email), zap.Error(err))
		return
	}
	if u == nil {
		if password == "" {
			logger.Warn("superadmin account not found and no seed password configured", zap.String("email", email))
			return
		}
		hash, err := authutil.HashPassword(password)
		if err != nil {
			logger.Warn("superadmin seed failed", zap.String("email", email), zap.Error(err))
			return
		}
		created, err := users.Create(ctx, models.User{
			UID:          uuid.NewString(),
			Email:        email,
			DisplayName:  "Administrator",
			Role:         models.RoleAdmin,
			PasswordHash: hash,
		})
		if err != nil {
			logger.Warn("superadmin seed failed", zap.String("email", email), zap.Error(err))
			return
		}
		logger.Info("seeded superadmin account", zap.String("email", email), zap.String("uid", created.UID))
		return
	}
	if u.Role == models.RoleAdmin {
		return
	}
	if err := users.Update(ctx, u.UID, bson.M{"role": models.RoleAdmin}); err != nil {
		logger.Warn("superadmin promotion failed", zap.String("email", email), zap.Error(err))
		return
	}
	logger.Info("promoted superadmin", zap.String("email", email))
}
