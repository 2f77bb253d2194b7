package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/pulsehub/internal/app/system/auth"
	"github.com/dalemusser/pulsehub/internal/app/system/authz"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

func reqWithUser(uid, role string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    uid,
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	})
}

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	role, name, uid, ok := authz.UserCtx(r)

	if ok {
		t.Error("expected ok=false with no user in context")
	}
	if role != "visitor" {
		t.Errorf("expected role 'visitor', got %q", role)
	}
	if name != "" || uid != "" {
		t.Errorf("expected empty name and uid, got %q / %q", name, uid)
	}
}

func TestUserCtx_NormalizesRole(t *testing.T) {
	r := reqWithUser("uid-1", "ADMIN")

	role, _, uid, ok := authz.UserCtx(r)

	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "admin" {
		t.Errorf("expected lowercased role, got %q", role)
	}
	if uid != "uid-1" {
		t.Errorf("expected uid 'uid-1', got %q", uid)
	}
}

func TestIsAdmin(t *testing.T) {
	if !authz.IsAdmin(reqWithUser("uid-1", models.RoleAdmin)) {
		t.Error("expected admin to be admin")
	}
	if authz.IsAdmin(reqWithUser("uid-2", models.RoleEmployee)) {
		t.Error("expected employee not to be admin")
	}
	if authz.IsAdmin(httptest.NewRequest("GET", "/", nil)) {
		t.Error("expected anonymous not to be admin")
	}
}

func TestCanViewEmployee(t *testing.T) {
	emp := &models.Employee{UserID: "uid-emp"}

	if !authz.CanViewEmployee(reqWithUser("uid-admin", models.RoleAdmin), emp) {
		t.Error("admin should view any employee")
	}
	if !authz.CanViewEmployee(reqWithUser("uid-emp", models.RoleEmployee), emp) {
		t.Error("employee should view their own record")
	}
	if authz.CanViewEmployee(reqWithUser("uid-other", models.RoleEmployee), emp) {
		t.Error("employee should not view someone else's record")
	}
	if authz.CanViewEmployee(reqWithUser("uid-other", models.RoleEmployee), &models.Employee{}) {
		t.Error("unlinked employee record should not match any employee account")
	}
	if authz.CanViewEmployee(reqWithUser("uid-other", models.RoleEmployee), nil) {
		t.Error("nil employee should not be viewable by non-admins")
	}
}

func TestCanManageEmployees(t *testing.T) {
	if !authz.CanManageEmployees(reqWithUser("uid-admin", models.RoleAdmin)) {
		t.Error("admin should manage employees")
	}
	if authz.CanManageEmployees(reqWithUser("uid-emp", models.RoleEmployee)) {
		t.Error("employee should not manage employees")
	}
}
