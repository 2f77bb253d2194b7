package employees_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dalemusser/pulsehub/internal/domain/models"
	"github.com/dalemusser/pulsehub/internal/testutil"
)

type directoryPage struct {
	Employees []models.Employee `json:"employees"`
	Prev      string            `json:"prev"`
	Next      string            `json:"next"`
	HasPrev   bool              `json:"has_prev"`
	HasNext   bool              `json:"has_next"`
}

func TestDirectory_NameOrderAndSearch(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	fixtures.CreateEmployee(ctx, "Carol Chen", "")
	fixtures.CreateEmployee(ctx, "Alice Araya", "")
	fixtures.CreateEmployee(ctx, "Bob Brown", "")

	req := testutil.NewAuthenticatedRequest("GET", "/api/employees/directory", testutil.EmployeeUser())
	rec := httptest.NewRecorder()
	handler.Directory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var page directoryPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(page.Employees) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(page.Employees))
	}
	for i, want := range []string{"Alice Araya", "Bob Brown", "Carol Chen"} {
		if page.Employees[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, page.Employees[i].Name, want)
		}
	}
	if page.HasPrev || page.HasNext {
		t.Errorf("single page should have no prev/next, got %+v", page)
	}

	// Folded prefix search matches accent-insensitively.
	req = testutil.NewAuthenticatedRequest("GET", "/api/employees/directory?q=ali", testutil.EmployeeUser())
	rec = httptest.NewRecorder()
	handler.Directory(rec, req)

	page = directoryPage{}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(page.Employees) != 1 || page.Employees[0].Name != "Alice Araya" {
		t.Errorf("search results = %+v", page.Employees)
	}
}

func TestDirectory_EmailPivot(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	a := fixtures.CreateEmployee(ctx, "Alice Araya", "")
	b := fixtures.CreateEmployee(ctx, "Bob Brown", "")
	if _, err := db.Collection("employees").UpdateByID(ctx, a.ID, bson.M{"$set": bson.M{"email": "alice@example.com"}}); err != nil {
		t.Fatalf("seed email: %v", err)
	}
	if _, err := db.Collection("employees").UpdateByID(ctx, b.ID, bson.M{"$set": bson.M{"email": "bob@example.com"}}); err != nil {
		t.Fatalf("seed email: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/employees/directory?q=bob@", testutil.EmployeeUser())
	rec := httptest.NewRecorder()
	handler.Directory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var page directoryPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(page.Employees) != 1 || page.Employees[0].Name != "Bob Brown" {
		t.Errorf("email search results = %+v", page.Employees)
	}
}

func TestImportCSV_CreatesEmployees(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	csv := "Name,Email,Position\nAda Lovelace,ada@example.com,Engineer\nGrace Hopper,grace@example.com,Admiral\n"
	req := httptest.NewRequest("POST", "/api/employees/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.ImportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp struct {
		Created int `json:"created"`
		Failed  int `json:"failed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Created != 2 || resp.Failed != 0 {
		t.Errorf("response = %+v", resp)
	}

	count, err := db.Collection("employees").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 employees, got %d", count)
	}
}

func TestImportCSV_RejectsBadRowsWithoutImporting(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	csv := "Name,Email\nAda Lovelace,ada@example.com\n,missing-name@example.com\n"
	req := httptest.NewRequest("POST", "/api/employees/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.ImportCSV(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, rec.Code, rec.Body.String())
	}
	count, err := db.Collection("employees").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("bad upload must not import anything, got %d employees", count)
	}
}

func TestImportCSV_EmptyBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/employees/import", strings.NewReader(""))
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.ImportCSV(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, rec.Code, rec.Body.String())
	}
}
