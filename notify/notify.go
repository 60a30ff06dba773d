// Package notify sends best-effort emails to staff about their reports.
package notify

import (
	"context"

	"github.com/reporthub/reporthub-api/models"
)

// Assignment describes a report that was just handed to a staff member
type Assignment struct {
	ReportID string
	Staff    models.AssignedStaff
}

// Notifier delivers staff notifications. Failures are reported but callers
// treat them as non-fatal.
type Notifier interface {
	Assigned(ctx context.Context, a Assignment) error
	Reminder(ctx context.Context, staff models.AssignedStaff, reports []models.Report) error
}

// Nop discards every notification
type Nop struct{}

func (Nop) Assigned(context.Context, Assignment) error { return nil }

func (Nop) Reminder(context.Context, models.AssignedStaff, []models.Report) error { return nil }
