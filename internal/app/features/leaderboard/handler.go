// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsehub/internal/app/store/employees"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Handler serves the performance leaderboard.
type Handler struct {
	Employees *employeestore.Store
	Log       *zap.Logger
}

// NewHandler constructs a leaderboard Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Employees: employeestore.New(db),
		Log:       logger,
	}
}

// Entry is one leaderboard row. Rank is 1-based; Score is the rendered
// score ("87" or "N/A" for employees who have never been rated).
type Entry struct {
	Rank     int    `json:"rank"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	PhotoURL string `json:"photo_url,omitempty"`
	Score    string `json:"score"`
	Rated    bool   `json:"rated"`
}

// List handles GET /api/leaderboard. Employees are ordered by
// performance score, highest first; unrated employees sink to the
// bottom with an "N/A" score.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ranked, err := h.Employees.ListRanked(ctx)
	if err != nil {
		h.Log.Error("leaderboard query failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	entries := make([]Entry, 0, len(ranked))
	for i, emp := range ranked {
		entries = append(entries, toEntry(i+1, emp))
	}
	httpjson.Respond(w, http.StatusOK, entries)
}

func toEntry(rank int, emp models.Employee) Entry {
	e := Entry{
		Rank:     rank,
		ID:       emp.ID.Hex(),
		Name:     emp.Name,
		Position: emp.Position,
		PhotoURL: emp.PhotoURL,
		Score:    "N/A",
	}
	if emp.PerformanceScore > 0 {
		e.Score = strconv.Itoa(emp.PerformanceScore)
		e.Rated = true
	}
	return e
}
