package models

import "strings"

// Report statuses. Anything else a staff member sets is kept as given.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In-Progress"
	StatusWorking    = "Working"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
	StatusRejected   = "Rejected"
)

var knownStatuses = map[string]string{
	"pending":     StatusPending,
	"in-progress": StatusInProgress,
	"in progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"working":     StatusWorking,
	"resolved":    StatusResolved,
	"closed":      StatusClosed,
	"rejected":    StatusRejected,
}

// CanonicalStatus maps a status string to its canonical spelling, ignoring case.
// Unknown values are returned trimmed but otherwise untouched.
func CanonicalStatus(s string) string {
	s = strings.TrimSpace(s)
	if c, ok := knownStatuses[strings.ToLower(s)]; ok {
		return c
	}
	return s
}
