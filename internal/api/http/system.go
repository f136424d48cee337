package http

import (
	"net/http"

	"github.com/go-chi/render"
)

// serviceInfo is the static identity payload served at the root path.
type serviceInfo struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// handleServiceInfo handles GET requests to the root path.
func handleServiceInfo(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, serviceInfo{
		Service:     "url-alias",
		Version:     "1.0.0",
		Description: "URL shortening service with click statistics",
	})
}

// handleHealth handles liveness probe requests.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}
