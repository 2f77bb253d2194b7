// internal/app/features/employees/directory.go
package employees

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/paging"
	"github.com/dalemusser/pulsehub/internal/app/system/search"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

type directoryResponse struct {
	Employees []models.Employee `json:"employees"`
	Prev      string            `json:"prev,omitempty"`
	Next      string            `json:"next,omitempty"`
	HasPrev   bool              `json:"has_prev"`
	HasNext   bool              `json:"has_next"`
}

// Directory handles GET /api/employees/directory. Results are keyset
// paged on folded name, pivoting to email order when the q parameter
// looks like an email address. Cursors come back in prev/next and are
// fed to the before/after parameters of the following request.
func (h *Handler) Directory(w http.ResponseWriter, r *http.Request) {
	before := query.Get(r, "before")
	after := query.Get(r, "after")
	term := search.Term(query.Get(r, "q"))

	sortField := "name_ci"
	if search.EmailPivot(term) {
		sortField = "email"
	}
	cfg := paging.ConfigureKeyset(before, after)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Employees.SearchPage(ctx, term, sortField, cfg)
	if err != nil {
		h.Log.Error("directory page failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	res := paging.TrimPage(&rows, before, after)

	prev, next := paging.BuildCursors(rows,
		func(e models.Employee) string {
			if sortField == "email" {
				return e.Email
			}
			return e.NameCI
		},
		func(e models.Employee) primitive.ObjectID { return e.ID })

	httpjson.Respond(w, http.StatusOK, directoryResponse{
		Employees: rows,
		Prev:      prev,
		Next:      next,
		HasPrev:   res.HasPrev,
		HasNext:   res.HasNext,
	})
}
