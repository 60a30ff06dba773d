// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/models"
	"github.com/reporthub/reporthub-api/notify"
)

// Scheduler reminds staff about reports that have been sitting in Pending
// since they were assigned
type Scheduler struct {
	cron     *cron.Cron
	Reports  databases.ReportDatabase
	Notifier notify.Notifier
	// StaleAfter is how long an assigned report may stay Pending before a reminder
	StaleAfter time.Duration
	Now        func() time.Time
}

// NewScheduler creates a scheduler running in UTC
func NewScheduler(reports databases.ReportDatabase, notifier notify.Notifier, staleAfter time.Duration) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Reports:    reports,
		Notifier:   notifier,
		StaleAfter: staleAfter,
		Now:        time.Now,
	}
}

// Start registers the reminder job on spec, a standard five field cron expression
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runReminders); err != nil {
		return err
	}
	s.cron.Start()
	zap.S().Infow("reminder scheduler started", "schedule", spec, "staleAfter", s.StaleAfter)
	return nil
}

// Stop waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("reminder scheduler stopped")
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := s.RemindStale(ctx)
	if err != nil {
		zap.S().Errorw("reminder job failed", "error", err)
		return
	}
	zap.S().Infow("reminder job complete", "remindersSent", sent)
}

// RemindStale emails each staff member one digest of their stale reports and
// returns how many digests went out. A report is included again only once
// StaleAfter has passed since its last reminder.
func (s *Scheduler) RemindStale(ctx context.Context) (int, error) {
	now := s.Now()
	cutoff := primitive.NewDateTimeFromTime(now.Add(-s.StaleAfter))
	filter := bson.M{
		"status":              models.StatusPending,
		"assignedStaff.email": bson.M{"$exists": true, "$ne": ""},
		"assignedAt":          bson.M{"$lte": cutoff},
		"$or": bson.A{
			bson.M{"remindedAt": bson.M{"$exists": false}},
			bson.M{"remindedAt": bson.M{"$lte": cutoff}},
		},
	}
	reports, err := s.Reports.Find(ctx, filter)
	if err != nil {
		return 0, err
	}

	var order []string
	byStaff := make(map[string][]models.Report)
	staff := make(map[string]models.AssignedStaff)
	for _, r := range reports {
		if r.AssignedStaff == nil {
			continue
		}
		email := r.AssignedStaff.Email
		if _, ok := byStaff[email]; !ok {
			order = append(order, email)
			staff[email] = *r.AssignedStaff
		}
		byStaff[email] = append(byStaff[email], r)
	}

	sent := 0
	for _, email := range order {
		if err := s.Notifier.Reminder(ctx, staff[email], byStaff[email]); err != nil {
			zap.S().Warnw("failed to send reminder", "staff", email, "error", err)
			continue
		}
		sent++
		s.markReminded(ctx, byStaff[email], primitive.NewDateTimeFromTime(now))
	}
	return sent, nil
}

func (s *Scheduler) markReminded(ctx context.Context, reports []models.Report, at primitive.DateTime) {
	for _, r := range reports {
		update := bson.M{"$set": bson.M{"remindedAt": at}}
		if _, err := s.Reports.UpdateOne(ctx, bson.M{"_id": r.ID}, update); err != nil {
			zap.S().Warnw("failed to mark report reminded", "report", r.ID.Hex(), "error", err)
		}
	}
}
