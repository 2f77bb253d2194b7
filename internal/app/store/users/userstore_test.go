package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
	"github.com/dalemusser/pulsehub/internal/app/system/indexes"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"github.com/dalemusser/pulsehub/internal/testutil"
)

func TestCreate_RoundTripAndNormalization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.User{
		UID:         "uid-rt",
		Email:       "  Mixed.Case@Test.COM ",
		DisplayName: "Round Trip",
		Role:        models.RoleEmployee,
		Active:      true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "mixed.case@test.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}

	got, err := store.GetByUID(ctx, "uid-rt")
	if err != nil {
		t.Fatalf("GetByUID failed: %v", err)
	}
	if got == nil || got.DisplayName != "Round Trip" {
		t.Errorf("round trip: got %+v", got)
	}

	byEmail, err := store.GetByEmail(ctx, "MIXED.case@test.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.UID != "uid-rt" {
		t.Errorf("case-insensitive email lookup: got %+v", byEmail)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.User{Email: "a@b.c", Role: models.RoleAdmin}); err == nil {
		t.Error("missing uid must fail")
	}
	if _, err := store.Create(ctx, models.User{UID: "u", Email: "a@b.c", Role: "superuser"}); err == nil {
		t.Error("unknown role must fail")
	}
}

func TestCreate_DuplicateUID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	// Duplicate detection rides on the unique indexes.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	seed := models.User{UID: "uid-dup", Email: "dup@test.com", Role: models.RoleEmployee}
	if _, err := store.Create(ctx, seed); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{UID: "uid-dup", Email: "other@test.com", Role: models.RoleEmployee})
	if !errors.Is(err, userstore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetByUID_NotFoundIsNilNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	got, err := store.GetByUID(ctx, "uid-ghost")
	if err != nil {
		t.Fatalf("GetByUID must not error on missing uid: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing user, got %+v", got)
	}
}

func TestListAdmins_FiltersByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	fixtures.CreateAdmin(ctx, "Admin A", "aa@test.com")
	fixtures.CreateAdmin(ctx, "Admin B", "ab@test.com")
	fixtures.CreateEmployeeUser(ctx, "Worker", "w@test.com")

	admins, err := store.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("ListAdmins failed: %v", err)
	}
	if len(admins) != 2 {
		t.Errorf("expected 2 admins, got %d", len(admins))
	}
	for _, a := range admins {
		if a.Role != models.RoleAdmin {
			t.Errorf("non-admin in list: %+v", a)
		}
	}
}

func TestTouchLastLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	u := fixtures.CreateEmployeeUser(ctx, "Login User", "ll@test.com")

	if err := store.TouchLastLogin(ctx, u.UID); err != nil {
		t.Fatalf("TouchLastLogin failed: %v", err)
	}
	got, _ := store.GetByUID(ctx, u.UID)
	if got.LastLogin == nil {
		t.Error("last_login must be set after touch")
	}
}
