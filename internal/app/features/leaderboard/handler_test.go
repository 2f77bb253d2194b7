package leaderboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/features/leaderboard"
	"github.com/dalemusser/pulsehub/internal/testutil"
)

func TestList_RanksByScoreWithUnratedLast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := leaderboard.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	top := fixtures.CreateEmployee(ctx, "Top Performer", "")
	mid := fixtures.CreateEmployee(ctx, "Mid Performer", "")
	unrated := fixtures.CreateEmployee(ctx, "New Hire", "")

	for _, seed := range []struct {
		id    interface{}
		score int
	}{
		{top.ID, 92},
		{mid.ID, 70},
	} {
		_, err := db.Collection("employees").UpdateOne(ctx,
			bson.M{"_id": seed.id},
			bson.M{"$set": bson.M{"performance_score": seed.score}})
		if err != nil {
			t.Fatalf("seeding score failed: %v", err)
		}
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/leaderboard", testutil.EmployeeUser())
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var entries []leaderboard.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].ID != top.ID.Hex() || entries[0].Score != "92" || entries[0].Rank != 1 {
		t.Errorf("rank 1: got %+v", entries[0])
	}
	if entries[1].ID != mid.ID.Hex() || entries[1].Score != "70" {
		t.Errorf("rank 2: got %+v", entries[1])
	}
	if entries[2].ID != unrated.ID.Hex() {
		t.Errorf("rank 3: got %+v", entries[2])
	}
	if entries[2].Score != "N/A" || entries[2].Rated {
		t.Errorf("unrated employee must render N/A, got %+v", entries[2])
	}
}

func TestList_EmptyBoard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := leaderboard.NewHandler(db, zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/api/leaderboard", testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" && body != "[]" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}
