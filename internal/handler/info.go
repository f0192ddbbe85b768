package handler

import (
	"net/http"

	"github.com/coast-guide/agent-fleet/internal/config"
	appmw "github.com/coast-guide/agent-fleet/internal/middleware"
	"github.com/coast-guide/agent-fleet/internal/model"
	"github.com/coast-guide/agent-fleet/pkg/version"
)

// InfoHandler handles GET /.
type InfoHandler struct {
	App config.App
}

// Info describes the running service.
func (h *InfoHandler) Info(w http.ResponseWriter, _ *http.Request) {
	appmw.RespondJSON(w, http.StatusOK, model.AppInfo{
		Name:    h.App.Name,
		Title:   h.App.Title,
		Version: version.Version,
		Commit:  version.Commit,
	})
}
