package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/reporthub/reporthub-api/models"
)

// Edit applies the set fields of changes to a Pending report owned by
// reporter. A report that is not Pending or not owned by reporter yields a
// zero MatchedCount and no error.
func (e *Engine) Edit(ctx context.Context, id, reporter string, changes models.ReportEdit) (models.WriteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.WriteResult{}, err
	}

	set := changes.Set()
	set["lastUpdated"] = e.now()

	filter := bson.M{
		"_id":            oid,
		"reporter.email": normalizeEmail(reporter),
		"status":         models.StatusPending,
	}
	res, err := e.Reports.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("edit report: %w", err)
	}
	return updateResult(res), nil
}

// Delete removes a report owned by reporter, whatever its status.
// A report owned by someone else yields a zero DeletedCount and no error.
func (e *Engine) Delete(ctx context.Context, id, reporter string) (models.WriteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.WriteResult{}, err
	}

	res, err := e.Reports.DeleteOne(ctx, bson.M{"_id": oid, "reporter.email": normalizeEmail(reporter)})
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("delete report: %w", err)
	}
	return deleteResult(res), nil
}

// Assign hands the report to a staff member and puts it back to Pending.
// Any previous assignment is replaced as a whole.
func (e *Engine) Assign(ctx context.Context, id string, staff models.AssignedStaff) (models.WriteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.WriteResult{}, err
	}
	staff.Email = normalizeEmail(staff.Email)
	staff.Name = strings.TrimSpace(staff.Name)
	if staff.Email == "" {
		return models.WriteResult{}, ErrStaffEmailRequired
	}

	update := bson.M{
		"$set": bson.M{
			"assignedStaff": staff,
			"status":        models.StatusPending,
			"assignedAt":    e.now(),
		},
		"$unset": bson.M{"remindedAt": ""},
	}
	res, err := e.Reports.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("assign report: %w", err)
	}
	return updateResult(res), nil
}

// Reject marks the report Rejected and touches nothing else
func (e *Engine) Reject(ctx context.Context, id string) (models.WriteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.WriteResult{}, err
	}

	res, err := e.Reports.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": models.StatusRejected}})
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("reject report: %w", err)
	}
	return updateResult(res), nil
}

// SetStatus overwrites the status with any non-empty value
func (e *Engine) SetStatus(ctx context.Context, id, status string) (models.WriteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.WriteResult{}, err
	}
	status = models.CanonicalStatus(status)
	if status == "" {
		return models.WriteResult{}, ErrStatusRequired
	}

	update := bson.M{"$set": bson.M{
		"status":          status,
		"statusUpdatedAt": e.now(),
	}}
	res, err := e.Reports.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("set report status: %w", err)
	}
	return updateResult(res), nil
}
