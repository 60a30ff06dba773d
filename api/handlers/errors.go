package handlers

import (
	"errors"
	"net/http"

	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/lifecycle"
)

// lifecycleStatus maps engine errors to HTTP status codes. Anything unknown is a store failure.
func lifecycleStatus(err error) int {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidID),
		errors.Is(err, lifecycle.ErrDuplicateUpvote),
		errors.Is(err, lifecycle.ErrStaffEmailRequired),
		errors.Is(err, lifecycle.ErrStatusRequired):
		return http.StatusBadRequest
	case errors.Is(err, lifecycle.ErrSelfUpvote),
		errors.Is(err, lifecycle.ErrQuotaExceeded),
		errors.Is(err, lifecycle.ErrReporterMismatch):
		return http.StatusForbidden
	case errors.Is(err, lifecycle.ErrIssueNotFound),
		errors.Is(err, lifecycle.ErrCitizenNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func lifecycleError(message string, w http.ResponseWriter, err error) {
	config.ErrorStatus(message, lifecycleStatus(err), w, err)
}
