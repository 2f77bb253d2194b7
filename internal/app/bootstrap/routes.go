// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	employeesfeature "github.com/dalemusser/pulsehub/internal/app/features/employees"
	feedbackfeature "github.com/dalemusser/pulsehub/internal/app/features/feedback"
	goalsfeature "github.com/dalemusser/pulsehub/internal/app/features/goals"
	healthfeature "github.com/dalemusser/pulsehub/internal/app/features/health"
	leaderboardfeature "github.com/dalemusser/pulsehub/internal/app/features/leaderboard"
	loginfeature "github.com/dalemusser/pulsehub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/pulsehub/internal/app/features/logout"
	notificationsfeature "github.com/dalemusser/pulsehub/internal/app/features/notifications"
	profilefeature "github.com/dalemusser/pulsehub/internal/app/features/profile"
	usersfeature "github.com/dalemusser/pulsehub/internal/app/features/users"
	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/notify"
	notificationstore "github.com/dalemusser/pulsehub/internal/app/store/notifications"
	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
)

// BuildHandler constructs the root HTTP handler for the app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. Session loading happens globally; every
// /api route additionally requires a signed-in user, and feature
// routers gate admin-only operations themselves.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	notifier := notify.NewService(notificationstore.New(db), userstore.New(db), logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(auth.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	loginHandler := loginfeature.NewHandler(db, logger)
	r.Route("/login", loginHandler.MountRoutes)

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Route("/logout", logoutHandler.MountRoutes)

	// Uploaded profile photos served from local storage.
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.RequireSignedIn)

		employeesHandler := employeesfeature.NewHandler(db, notifier, photoSvc, liveHub, scoringPolicy, logger)
		api.Route("/employees", employeesHandler.MountRoutes)

		goalsHandler := goalsfeature.NewHandler(db, notifier, liveHub, logger)
		api.Route("/goals", goalsHandler.MountRoutes)

		feedbackHandler := feedbackfeature.NewHandler(db, notifier, liveHub, logger)
		api.Route("/feedback", feedbackHandler.MountRoutes)

		notificationsHandler := notificationsfeature.NewHandler(db, liveHub, logger)
		api.Route("/notifications", notificationsHandler.MountRoutes)

		leaderboardHandler := leaderboardfeature.NewHandler(db, logger)
		api.Route("/leaderboard", leaderboardHandler.MountRoutes)

		profileHandler := profilefeature.NewHandler(db, provisionGuard, logger)
		api.Route("/profile", profileHandler.MountRoutes)

		usersHandler := usersfeature.NewHandler(db, logger)
		api.Route("/users", usersHandler.MountRoutes)
	})

	return r, nil
}
