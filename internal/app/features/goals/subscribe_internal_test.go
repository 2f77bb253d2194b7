package goals

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/pulsehub/internal/app/system/viewstate"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

func TestProjectGoals_OldestFirstStableAcrossSnapshots(t *testing.T) {
	now := time.Now().UTC()
	first := models.Goal{ID: primitive.NewObjectID(), Title: "first", CreatedAt: now.Add(-time.Hour)}
	second := models.Goal{ID: primitive.NewObjectID(), Title: "second", CreatedAt: now}

	view := viewstate.NewList[models.Goal]()

	got := projectGoals(view, []models.Goal{second, first})
	if len(got) != 2 || got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("initial projection = %+v", got)
	}

	// A status change arrives in a fresh snapshot; order holds.
	second.Status = models.GoalCompleted
	got = projectGoals(view, []models.Goal{second, first})
	if got[1].Status != models.GoalCompleted {
		t.Errorf("status: got %q, want %q", got[1].Status, models.GoalCompleted)
	}
	if got[0].Title != "first" {
		t.Errorf("order changed: %+v", got)
	}
}
