package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reporthub/reporthub-api/models"
)

// Upvote records one vote from voter on the report with the given id.
// The increment and the upvoters append happen in one update whose filter
// re-checks both guards, so upvote always equals len(upvoters).
func (e *Engine) Upvote(ctx context.Context, id, voter string) (models.WriteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.WriteResult{}, err
	}
	voter = normalizeEmail(voter)

	report, err := e.Reports.FindOne(ctx, bson.M{"_id": oid})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.WriteResult{}, ErrIssueNotFound
	}
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("find report: %w", err)
	}

	if normalizeEmail(report.Reporter.Email) == voter {
		return models.WriteResult{}, ErrSelfUpvote
	}
	for _, u := range report.Upvoters {
		if normalizeEmail(u) == voter {
			return models.WriteResult{}, ErrDuplicateUpvote
		}
	}

	filter := bson.M{
		"_id":            oid,
		"reporter.email": bson.M{"$ne": voter},
		"upvoters":       bson.M{"$ne": voter},
	}
	update := bson.M{
		"$inc":  bson.M{"upvote": 1},
		"$push": bson.M{"upvoters": voter},
	}
	res, err := e.Reports.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("upvote report: %w", err)
	}
	if res.MatchedCount == 0 {
		// the report was deleted after the read, or the same voter won a race
		_, err := e.Reports.FindOne(ctx, bson.M{"_id": oid})
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.WriteResult{}, ErrIssueNotFound
		}
		if err != nil {
			return models.WriteResult{}, fmt.Errorf("find report: %w", err)
		}
		return models.WriteResult{}, ErrDuplicateUpvote
	}
	return updateResult(res), nil
}
