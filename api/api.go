// Package api holds the HTTP plumbing shared by every route: authentication,
// request logging, timeouts, CORS and rate limiting.
package api

import (
	"net/http"

	"github.com/reporthub/reporthub-api/models"
)

// HealthCheckHandler reports that the process is up
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, models.HealthCheckResponse{Alive: true})
}
