package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appmw "github.com/coast-guide/agent-fleet/internal/middleware"
)

var routableMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// NotFound renders unknown paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	appmw.RespondError(w, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed renders known paths requested with an unsupported method.
// Allow lists the methods the router accepts for the path.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if allowed := allowedMethods(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	appmw.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := rctx.RoutePath
	if path == "" {
		path = r.URL.Path
	}

	var allowed []string
	for _, m := range routableMethods {
		if rctx.Routes.Match(chi.NewRouteContext(), m, path) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}
