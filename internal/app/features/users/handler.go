// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
	"github.com/dalemusser/pulsehub/internal/app/system/authutil"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/inputval"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Handler owns the admin user-management endpoints. This is the only
// path that provisions accounts with a password; self-service signup
// does not exist.
type Handler struct {
	DB    *mongo.Database
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Users: userstore.New(db),
		Log:   logger,
	}
}

type createRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=200"`
	Role        string `json:"role" validate:"omitempty,oneof=admin employee"`
	Password    string `json:"password" validate:"required"`
}

// List handles GET /api/users. Admin only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, users)
}

// Create handles POST /api/users. Admin only. The password is checked
// against the minimum policy and stored as a bcrypt hash; the account
// can sign in at /login immediately afterwards.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("create user: password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		UID:          uuid.NewString(),
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	h.Log.Info("user created",
		zap.String("uid", u.UID),
		zap.String("role", u.Role))
	httpjson.Respond(w, http.StatusCreated, u)
}
