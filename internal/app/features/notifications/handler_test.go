package notifications_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/features/notifications"
	"github.com/dalemusser/pulsehub/internal/domain/models"
	"github.com/dalemusser/pulsehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*notifications.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := notifications.NewHandler(db, nil, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestList_OwnNotificationsNewestFirst(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	me := testutil.EmployeeUser()
	fixtures.CreateNotification(ctx, me.ID, "First")
	fixtures.CreateNotification(ctx, me.ID, "Second")
	fixtures.CreateNotification(ctx, "uid-other", "Not Mine")

	req := testutil.NewAuthenticatedRequest("GET", "/api/notifications", me)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var list []models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	for _, n := range list {
		if n.UserID != me.ID {
			t.Errorf("leaked notification for user %q", n.UserID)
		}
	}
	if list[0].CreatedAt.Before(list[1].CreatedAt) {
		t.Errorf("expected newest first, got %v before %v", list[0].CreatedAt, list[1].CreatedAt)
	}
}

func TestMarkRead_ScopedToOwner(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	me := testutil.EmployeeUser()
	mine := fixtures.CreateNotification(ctx, me.ID, "Mine")
	theirs := fixtures.CreateNotification(ctx, "uid-other", "Theirs")

	req := testutil.NewAuthenticatedRequest("POST", "/api/notifications/"+mine.ID.Hex()+"/read", me)
	req = testutil.WithChiURLParam(req, "id", mine.ID.Hex())
	rec := httptest.NewRecorder()
	handler.MarkRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var got models.Notification
	if err := db.Collection("notifications").FindOne(ctx, bson.M{"_id": mine.ID}).Decode(&got); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if !got.Read {
		t.Error("expected own notification to be marked read")
	}

	// Marking someone else's id succeeds but changes nothing.
	req = testutil.NewAuthenticatedRequest("POST", "/api/notifications/"+theirs.ID.Hex()+"/read", me)
	req = testutil.WithChiURLParam(req, "id", theirs.ID.Hex())
	rec = httptest.NewRecorder()
	handler.MarkRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if err := db.Collection("notifications").FindOne(ctx, bson.M{"_id": theirs.ID}).Decode(&got); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if got.Read {
		t.Error("foreign notification must stay unread")
	}
}

func TestMarkAllRead_CountsOnlyUnread(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)
	db := fixtures.DB()

	me := testutil.EmployeeUser()
	fixtures.CreateNotification(ctx, me.ID, "Unread One")
	already := fixtures.CreateNotification(ctx, me.ID, "Already Read")
	fixtures.CreateNotification(ctx, "uid-other", "Foreign")

	_, err := db.Collection("notifications").UpdateOne(ctx,
		bson.M{"_id": already.ID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		t.Fatalf("seeding read flag failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("POST", "/api/notifications/read-all", me)
	rec := httptest.NewRecorder()
	handler.MarkAllRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["marked"] != 1 {
		t.Errorf("marked: got %d, want 1", resp["marked"])
	}

	count, err := db.Collection("notifications").CountDocuments(ctx, bson.M{"user_id": "uid-other", "read": false})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("foreign notifications must stay unread, got %d unread", count)
	}
}

func TestList_Unauthenticated(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/notifications", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
