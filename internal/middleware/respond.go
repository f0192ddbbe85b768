package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/coast-guide/agent-fleet/internal/model"
)

// RespondJSON writes v as a compact JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// RespondError writes a {"detail": ...} error response.
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondJSON(w, status, model.ErrorDetail{Detail: detail})
}
