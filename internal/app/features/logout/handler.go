// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeLogout handles POST /logout. It clears the session cookie even
// when decoding the current session fails.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user logged out", zap.String("uid", u.ID))
	}

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "signed out"})
}
