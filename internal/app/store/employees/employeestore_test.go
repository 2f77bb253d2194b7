package employeestore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	employeestore "github.com/dalemusser/pulsehub/internal/app/store/employees"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"github.com/dalemusser/pulsehub/internal/testutil"
)

func TestCreate_NormalizesAndFolds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := employeestore.New(db)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.Employee{
		Name:     "  José   García  ",
		Email:    "Jose@Test.COM",
		Position: "Engineer",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Name != "José García" {
		t.Errorf("name not normalized: %q", created.Name)
	}
	if created.NameCI != "jose garcia" {
		t.Errorf("name_ci not folded: %q", created.NameCI)
	}
	if created.Email != "jose@test.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
}

func TestCreate_EmptyNameRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := employeestore.New(db)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.Employee{Name: "   "}); err == nil {
		t.Error("whitespace-only name must fail")
	}
}

func TestGetByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := employeestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	fixtures.CreateEmployee(ctx, "Linked", "uid-linked")
	fixtures.CreateEmployee(ctx, "Unlinked", "")

	got, err := store.GetByUserID(ctx, "uid-linked")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if got == nil || got.Name != "Linked" {
		t.Errorf("got %+v, want the linked employee", got)
	}

	missing, err := store.GetByUserID(ctx, "uid-ghost")
	if err != nil {
		t.Fatalf("GetByUserID must not error on missing uid: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing link, got %+v", missing)
	}
}

func TestUpdate_RefoldsName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := employeestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	emp := fixtures.CreateEmployee(ctx, "Old Name", "")

	if err := store.Update(ctx, emp.ID, bson.M{"name": "  Née   Smith "}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := store.GetByID(ctx, emp.ID)
	if got.Name != "Née Smith" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.NameCI != "nee smith" {
		t.Errorf("name_ci: got %q", got.NameCI)
	}
	if got.Position != "Engineer" {
		t.Errorf("untouched field changed: %q", got.Position)
	}
	if !got.UpdatedAt.After(emp.UpdatedAt) {
		t.Error("updated_at must be refreshed")
	}
}

func TestListRanked_ScoreDescending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := employeestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	low := fixtures.CreateEmployee(ctx, "Low", "")
	high := fixtures.CreateEmployee(ctx, "High", "")
	unrated := fixtures.CreateEmployee(ctx, "Unrated", "")

	for id, score := range map[primitive.ObjectID]int{low.ID: 40, high.ID: 95} {
		if err := store.Update(ctx, id, bson.M{"performance_score": score}); err != nil {
			t.Fatalf("seeding score failed: %v", err)
		}
	}

	ranked, err := store.ListRanked(ctx)
	if err != nil {
		t.Fatalf("ListRanked failed: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(ranked))
	}
	if ranked[0].ID != high.ID || ranked[1].ID != low.ID || ranked[2].ID != unrated.ID {
		t.Errorf("order: got %s, %s, %s", ranked[0].Name, ranked[1].Name, ranked[2].Name)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := employeestore.New(db)
	ctx := testutil.TestContext(t)

	if err := store.Delete(ctx, primitive.NewObjectID()); err != nil {
		t.Errorf("deleting a missing employee must succeed: %v", err)
	}
}
