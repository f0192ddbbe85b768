package handler

import (
	"encoding/json"
	"net/http"

	"github.com/coast-guide/agent-fleet/internal/model"
)

// statusBody is encoded once so every response is byte-identical.
var statusBody = mustMarshal(model.Status{Status: model.StatusHealthy})

// Status handles GET /status. It ignores the request entirely.
func Status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(statusBody)
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
