// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsehub/internal/app/store/employees"
	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/provision"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Handler serves the signed-in user's own profile: their account record
// and, when one is linked, their employee record.
type Handler struct {
	DB        *mongo.Database
	Users     *userstore.Store
	Employees *employeestore.Store
	Guard     *provision.Guard
	Log       *zap.Logger
}

// NewHandler constructs a profile Handler.
func NewHandler(db *mongo.Database, guard *provision.Guard, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Users:     userstore.New(db),
		Employees: employeestore.New(db),
		Guard:     guard,
		Log:       logger,
	}
}

type profileResponse struct {
	User     *models.User     `json:"user"`
	Employee *models.Employee `json:"employee,omitempty"`
}

// Get handles GET /api/profile. A session can outlive its backing users
// record (the record was wiped, or the database was reseeded); in that
// case the account is recreated from the session identity, serialized
// per uid so concurrent requests cannot mint duplicates.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.Users.GetByUID(ctx, su.ID)
	if err != nil {
		h.Log.Error("profile: account lookup failed", zap.Error(err), zap.String("uid", su.ID))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if account == nil {
		account, err = h.recreateAccount(ctx, su)
		if err != nil {
			if errors.Is(err, errProvisionBusy) {
				httpjson.Error(w, http.StatusConflict, "account provisioning in progress, retry shortly")
				return
			}
			h.Log.Error("profile: account recreation failed", zap.Error(err), zap.String("uid", su.ID))
			httpjson.Error(w, http.StatusInternalServerError, "server error")
			return
		}
	}

	emp, err := h.Employees.GetByUserID(ctx, su.ID)
	if err != nil {
		h.Log.Error("profile: employee lookup failed", zap.Error(err), zap.String("uid", su.ID))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	httpjson.Respond(w, http.StatusOK, profileResponse{User: account, Employee: emp})
}

var errProvisionBusy = errors.New("provisioning claim held by another request")

// recreateAccount rebuilds a users record from the session identity.
// The provisioning guard grants one in-flight claim per uid; a losing
// request reports busy rather than waiting.
func (h *Handler) recreateAccount(ctx context.Context, su *auth.SessionUser) (*models.User, error) {
	release, ok := h.Guard.Acquire(su.ID)
	if !ok {
		return nil, errProvisionBusy
	}
	defer release()

	// The winner may have finished between our lookup and the claim.
	existing, err := h.Users.GetByUID(ctx, su.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created, err := h.Users.Create(ctx, models.User{
		UID:         su.ID,
		Email:       su.Email,
		DisplayName: su.Name,
		Role:        su.Role,
		Active:      true,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			return h.Users.GetByUID(ctx, su.ID)
		}
		return nil, err
	}

	h.Log.Info("account recreated from session", zap.String("uid", su.ID))
	return &created, nil
}
