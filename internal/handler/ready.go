package handler

import (
	"net/http"

	appmw "github.com/coast-guide/agent-fleet/internal/middleware"
	"github.com/coast-guide/agent-fleet/internal/model"
	"github.com/coast-guide/agent-fleet/internal/service"
)

// ReadyHandler handles GET /ready.
type ReadyHandler struct {
	Readiness *service.Readiness
}

// Ready reports dependency readiness; 503 when degraded.
func (h *ReadyHandler) Ready(w http.ResponseWriter, r *http.Request) {
	report := h.Readiness.Check(r.Context())

	status := http.StatusOK
	if report.Status != model.ReadyOK {
		status = http.StatusServiceUnavailable
	}
	appmw.RespondJSON(w, status, report)
}
