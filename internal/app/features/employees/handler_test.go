package employees_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/features/employees"
	notificationstore "github.com/dalemusser/pulsehub/internal/app/store/notifications"
	userstore "github.com/dalemusser/pulsehub/internal/app/store/users"
	"github.com/dalemusser/pulsehub/internal/app/system/notify"
	"github.com/dalemusser/pulsehub/internal/app/system/scoring"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"github.com/dalemusser/pulsehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*employees.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	notifier := notify.NewService(notificationstore.New(db), userstore.New(db), logger)
	handler := employees.NewHandler(db, notifier, nil, nil, scoring.DefaultPolicy(), logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestCreate_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	body := `{"name":"Ada Lovelace","position":"Engineer","department":"Platform","email":"ada@test.com"}`
	req := httptest.NewRequest("POST", "/api/employees", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	count, err := db.Collection("employees").CountDocuments(ctx, bson.M{"name": "Ada Lovelace"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 employee, got %d", count)
	}
}

func TestCreate_MissingName(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	body := `{"position":"Engineer"}`
	req := httptest.NewRequest("POST", "/api/employees", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	count, err := fixtures.DB().Collection("employees").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 employees, got %d", count)
	}
}

func TestGet_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/employees/ffffffffffffffffffffffff", nil)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "ffffffffffffffffffffffff")

	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestGet_BadID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/employees/not-an-id", nil)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "not-an-id")

	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGet_EmployeeSeesOnlyTheirRecord(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	me := testutil.EmployeeUser()
	mine := fixtures.CreateEmployee(ctx, "My Record", me.ID)
	other := fixtures.CreateEmployee(ctx, "Other Record", "uid-someone-else")

	req := testutil.NewAuthenticatedRequest("GET", "/api/employees/"+mine.ID.Hex(), me)
	req = testutil.WithChiURLParam(req, "id", mine.ID.Hex())
	rec := httptest.NewRecorder()
	handler.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("own record: expected status %d, got %d", http.StatusOK, rec.Code)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/api/employees/"+other.ID.Hex(), me)
	req = testutil.WithChiURLParam(req, "id", other.ID.Hex())
	rec = httptest.NewRecorder()
	handler.Get(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("other record: expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	emp := fixtures.CreateEmployee(ctx, "Grace Hopper", "")

	body := `{"position":"Rear Admiral"}`
	req := httptest.NewRequest("PATCH", "/api/employees/"+emp.ID.Hex(), strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", emp.ID.Hex())

	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var got models.Employee
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if got.Position != "Rear Admiral" {
		t.Errorf("position: got %q, want %q", got.Position, "Rear Admiral")
	}
	if got.Name != "Grace Hopper" {
		t.Errorf("untouched field changed: name %q", got.Name)
	}
}

func TestDelete_RemovesOnlyTheEmployee(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	emp := fixtures.CreateEmployee(ctx, "To Delete", "")
	fixtures.CreateGoal(ctx, emp.ID.Hex(), "Ship the thing", models.GoalPending)
	fixtures.CreateFeedback(ctx, emp.ID.Hex(), "peer", "Great work")

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/employees/"+emp.ID.Hex(), testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", emp.ID.Hex())

	rec := httptest.NewRecorder()
	handler.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	count, err := db.Collection("employees").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments(employees) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("employees: expected 0 documents, got %d", count)
	}

	// Dependent records stay put; they have their own clear endpoints.
	for _, coll := range []string{"goals", "feedbacks"} {
		count, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("CountDocuments(%s) failed: %v", coll, err)
		}
		if count != 1 {
			t.Errorf("%s: expected 1 surviving document, got %d", coll, count)
		}
	}

	// Deleting again succeeds.
	rec = httptest.NewRecorder()
	req = testutil.NewAuthenticatedRequest("DELETE", "/api/employees/"+emp.ID.Hex(), testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", emp.ID.Hex())
	handler.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("repeat delete: expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRate_UpdatesScoreMetricsAndNotifies(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	account := fixtures.CreateEmployeeUser(ctx, "Rated Person", "rated@test.com")
	emp := fixtures.CreateEmployee(ctx, "Rated Person", account.UID)

	body := `{"overall":4,"communication":5,"teamwork":3,"technical_skills":4,"comment":"Solid quarter"}`
	req := httptest.NewRequest("POST", "/api/employees/"+emp.ID.Hex()+"/rate", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", emp.ID.Hex())

	rec := httptest.NewRecorder()
	handler.Rate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		PerformanceScore int `json:"performance_score"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	// mean(4,5,3,4) * 20 = 80
	if resp.PerformanceScore != 80 {
		t.Errorf("performance score: got %d, want 80", resp.PerformanceScore)
	}

	metricCount, err := db.Collection("performance_metrics").CountDocuments(ctx, bson.M{"employee_id": emp.ID.Hex()})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if metricCount != 3 {
		t.Errorf("expected 3 metric records, got %d", metricCount)
	}

	reviewCount, err := db.Collection("feedbacks").CountDocuments(ctx, bson.M{
		"employee_id": emp.ID.Hex(),
		"category":    models.CategoryPerformanceReview,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if reviewCount != 1 {
		t.Errorf("expected 1 review feedback, got %d", reviewCount)
	}

	// 3 metric notifications + 1 review notification, all to the account uid.
	noteCount, err := db.Collection("notifications").CountDocuments(ctx, bson.M{"user_id": account.UID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if noteCount != 4 {
		t.Errorf("expected 4 notifications, got %d", noteCount)
	}
}

func TestRate_RejectsOutOfRangeRating(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	emp := fixtures.CreateEmployee(ctx, "Someone", "")

	body := `{"overall":6,"communication":5,"teamwork":3,"technical_skills":4}`
	req := httptest.NewRequest("POST", "/api/employees/"+emp.ID.Hex()+"/rate", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", emp.ID.Hex())

	rec := httptest.NewRecorder()
	handler.Rate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
