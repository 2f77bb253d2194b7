// internal/app/features/employees/subscribe.go
package employees

import (
	"net/http"

	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsehub/internal/app/store/employees"
	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/livequery"
	"github.com/dalemusser/pulsehub/internal/app/system/sse"
	"github.com/dalemusser/pulsehub/internal/domain/models"
)

// Subscribe handles GET /api/employees/subscribe. It streams the full
// employee list as a server-sent event on connect and after every change
// to the collection, until the client disconnects.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	stream, err := sse.NewStream(w)
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub, err := livequery.SubscribeAll(r.Context(), h.Hub, employeestore.Collection,
		func(recs []models.Employee) {
			stream.Send(recs)
		})
	if err != nil {
		h.Log.Error("employee subscription failed", zap.Error(err))
		return
	}
	defer sub.Unsubscribe()

	stream.Serve(r.Context().Done())
}
