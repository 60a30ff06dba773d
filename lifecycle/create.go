package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/models"
)

// Create files a new Pending report on behalf of caller.
//
// An empty reporter email is taken from caller; any other email is rejected.
// Citizens on the free plan may have at most QuotaLimit reports. The count and
// the insert are separate operations, so parallel requests from one citizen can
// overshoot the quota.
func (e *Engine) Create(ctx context.Context, caller string, r models.Report) (models.WriteResult, error) {
	caller = normalizeEmail(caller)
	switch reporter := normalizeEmail(r.Reporter.Email); {
	case reporter == "":
	case reporter != caller:
		return models.WriteResult{}, ErrReporterMismatch
	}

	citizen, err := e.Citizens.FindOne(ctx, bson.M{"email": caller})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.WriteResult{}, ErrCitizenNotFound
	}
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("find citizen: %w", err)
	}

	if citizen.IsQuotaLimited() {
		count, err := e.Reports.CountDocuments(ctx, bson.M{"reporter.email": caller})
		if err != nil {
			return models.WriteResult{}, fmt.Errorf("count reports: %w", err)
		}
		if count >= QuotaLimit {
			zap.S().Infow("report quota reached", "email", caller, "count", count)
			return models.WriteResult{}, ErrQuotaExceeded
		}
	}

	doc := models.Report{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Category:    r.Category,
		Priority:    r.Priority,
		Image:       r.Image,
		Status:      models.StatusPending,
		Upvote:      0,
		Upvoters:    []string{},
		Reporter: models.Reporter{
			Email: caller,
			Name:  r.Reporter.Name,
			Photo: r.Reporter.Photo,
		},
		CreatedAt: e.now(),
	}

	res, err := e.Reports.InsertOne(ctx, doc)
	if err != nil {
		return models.WriteResult{}, fmt.Errorf("insert report: %w", err)
	}
	return models.WriteResult{Acknowledged: true, InsertedID: res.Decode()}, nil
}
