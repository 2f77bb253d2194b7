// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), name, uid, and a found
// flag. If no user is present in context, it returns "visitor", "", "",
// false, so ok=true always means a signed-in account.
func UserCtx(r *http.Request) (role string, name string, uid string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ID == "" {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsEmployee reports whether the current request's user is a regular
// employee account.
func IsEmployee(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleEmployee
}

// CanManageEmployees reports whether the current user can create, rate,
// or delete employee records. Only admins can.
func CanManageEmployees(r *http.Request) bool {
	return IsAdmin(r)
}

// CanViewEmployee reports whether the current user may read the given
// employee record. Admins see everyone; employees only themselves.
func CanViewEmployee(r *http.Request, emp *models.Employee) bool {
	role, _, uid, ok := UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	return emp != nil && emp.UserID != "" && emp.UserID == uid
}

// CanClearFeedback reports whether the current user can delete feedback
// entries. Admins can clear anyone's; employees their own record's.
func CanClearFeedback(r *http.Request, emp *models.Employee) bool {
	return CanViewEmployee(r, emp)
}
