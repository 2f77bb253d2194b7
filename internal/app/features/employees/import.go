// internal/app/features/employees/import.go
package employees

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/system/csvutil"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

type importResponse struct {
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
	Errors  []csvutil.RowError `json:"errors,omitempty"`
}

// ImportCSV handles POST /api/employees/import. Admin only. The body is
// raw CSV with columns name,email,position and an optional header row.
// The whole upload is validated before any record is created, so a bad
// file never results in a partial import.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)

	rows, rowErrs, err := csvutil.PreScanEmployeesCSV(body)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(rowErrs) > 0 {
		httpjson.Respond(w, http.StatusBadRequest, importResponse{Errors: rowErrs})
		return
	}
	if len(rows) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "csv contains no employee rows")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var resp importResponse
	for _, row := range rows {
		_, err := h.Employees.Create(ctx, models.Employee{
			Name:     row.Name,
			Email:    row.Email,
			Position: row.Position,
		})
		if err != nil {
			h.Log.Warn("import row failed",
				zap.String("email", row.Email), zap.Error(err))
			resp.Failed++
			continue
		}
		resp.Created++
	}

	h.Log.Info("employee csv import finished",
		zap.Int("created", resp.Created), zap.Int("failed", resp.Failed))
	httpjson.Respond(w, http.StatusOK, resp)
}
