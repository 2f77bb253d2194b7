// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/authutil"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/ratelimit"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
)

// loginAttemptLimit caps failed sign-in attempts per IP per window.
const loginAttemptLimit = 10

type Handler struct {
	DB      *mongo.Database
	Users   *userstore.Store
	Log     *zap.Logger
	Limiter *ratelimit.Limiter
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Users:   userstore.New(db),
		Log:     logger,
		Limiter: ratelimit.New(loginAttemptLimit, time.Minute),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// HandleLogin handles POST /login. It checks credentials against the
// stored bcrypt hash and establishes a cookie session.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		h.Log.Warn("login rate limited", zap.String("ip", ip))
		httpjson.Error(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		h.Log.Error("login: user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if u == nil || u.PasswordHash == "" || !authutil.CheckPassword(req.Password, u.PasswordHash) {
		// Same response for unknown account and wrong password.
		h.Log.Info("login failed", zap.String("email", req.Email), zap.String("ip", ip))
		httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !u.Active {
		h.Log.Info("login rejected for inactive account", zap.String("uid", u.UID))
		httpjson.Error(w, http.StatusForbidden, "account is disabled")
		return
	}

	if err := auth.SignIn(w, r, &auth.SessionUser{
		ID:    u.UID,
		Name:  u.DisplayName,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.Log.Error("login: session save failed", zap.Error(err), zap.String("uid", u.UID))
		httpjson.Error(w, http.StatusInternalServerError, "unable to create session")
		return
	}

	if err := h.Users.TouchLastLogin(ctx, u.UID); err != nil {
		h.Log.Warn("login: failed to record last login", zap.Error(err), zap.String("uid", u.UID))
	}

	h.Limiter.Reset(ip)
	h.Log.Info("user logged in", zap.String("uid", u.UID), zap.String("role", u.Role))

	httpjson.Respond(w, http.StatusOK, loginResponse{
		UID:         u.UID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
	})
}
