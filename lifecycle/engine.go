// Package lifecycle owns the rules around a report: who may create, edit,
// delete and upvote it, and how its status and assignment move.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/models"
)

// QuotaLimit is how many reports a non-subscribed citizen may have on file
const QuotaLimit = 3

var (
	ErrInvalidID          = errors.New("invalid report id")
	ErrIssueNotFound      = errors.New("issue not found")
	ErrCitizenNotFound    = errors.New("citizen not found")
	ErrSelfUpvote         = errors.New("you cannot upvote your own issue")
	ErrDuplicateUpvote    = errors.New("you have already upvoted this issue")
	ErrQuotaExceeded      = errors.New("free plan limit reached, subscribe to report more issues")
	ErrReporterMismatch   = errors.New("reporter email does not match the signed in user")
	ErrStaffEmailRequired = errors.New("staff email is required")
	ErrStatusRequired     = errors.New("status is required")
)

// Engine applies the report rules on top of the report, citizen and staff stores
type Engine struct {
	Reports  databases.ReportDatabase
	Citizens databases.CitizenDatabase
	Staff    databases.StaffDatabase
	Now      func() time.Time
}

// New returns an Engine using the wall clock
func New(reports databases.ReportDatabase, citizens databases.CitizenDatabase, staff databases.StaffDatabase) *Engine {
	return &Engine{
		Reports:  reports,
		Citizens: citizens,
		Staff:    staff,
		Now:      time.Now,
	}
}

func (e *Engine) now() primitive.DateTime {
	return primitive.NewDateTimeFromTime(e.Now())
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func updateResult(res *mongo.UpdateResult) models.WriteResult {
	wr := models.WriteResult{Acknowledged: true}
	if res != nil {
		wr.MatchedCount = res.MatchedCount
		wr.ModifiedCount = res.ModifiedCount
	}
	return wr
}

func deleteResult(res *mongo.DeleteResult) models.WriteResult {
	wr := models.WriteResult{Acknowledged: true}
	if res != nil {
		wr.DeletedCount = res.DeletedCount
	}
	return wr
}
