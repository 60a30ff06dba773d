package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/models"
)

// Listing defaults
const (
	DefaultPageLimit   = 10
	MaxPageLimit       = 100
	DefaultLatestLimit = 6
	MaxPage            = 1000000
)

// Query filters a paginated listing. Empty fields do not filter.
type Query struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	Priority string
	Category string
}

func (q Query) normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

// Filter builds the mongo filter for q
func (q Query) Filter() bson.M {
	filter := bson.M{}
	if s := strings.TrimSpace(q.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"location": re},
		}
	}
	if s := models.CanonicalStatus(q.Status); s != "" {
		filter["status"] = s
	}
	if p := strings.TrimSpace(q.Priority); p != "" {
		filter["priority"] = p
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		filter["category"] = c
	}
	return filter
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// Get returns the report and, when assigned, the staff record behind it
func (e *Engine) Get(ctx context.Context, id string) (*models.ReportDetail, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	report, err := e.Reports.FindOne(ctx, bson.M{"_id": oid})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}

	detail := &models.ReportDetail{Report: *report}
	if report.AssignedStaff == nil || report.AssignedStaff.Email == "" {
		return detail, nil
	}
	staff, err := e.Staff.FindOne(ctx, bson.M{"email": report.AssignedStaff.Email})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		zap.S().Debugw("assigned staff no longer exists", "report", id, "staff", report.AssignedStaff.Email)
	case err != nil:
		return nil, fmt.Errorf("find staff: %w", err)
	default:
		detail.StaffInfo = staff
	}
	return detail, nil
}

// List returns every report, newest first
func (e *Engine) List(ctx context.Context) ([]models.Report, error) {
	reports, err := e.Reports.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Paginate returns one page of the reports matching q together with the total match count
func (e *Engine) Paginate(ctx context.Context, q Query) (*models.ReportPage, error) {
	q = q.normalized()
	filter := q.Filter()

	total, err := e.Reports.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}
	issues, err := e.Reports.Find(ctx, filter, databases.NewPaginate(q.Limit, q.Page).Options())
	if err != nil {
		return nil, fmt.Errorf("page reports: %w", err)
	}
	return &models.ReportPage{
		Issues: issues,
		Total:  total,
		Page:   q.Page,
		Limit:  q.Limit,
	}, nil
}

// MyIssues returns the reports filed by reporter, newest first
func (e *Engine) MyIssues(ctx context.Context, reporter string) ([]models.Report, error) {
	reports, err := e.Reports.Find(ctx, bson.M{"reporter.email": normalizeEmail(reporter)}, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("find reports by reporter: %w", err)
	}
	return reports, nil
}

// AssignedTo returns the reports assigned to the staff member, newest first
func (e *Engine) AssignedTo(ctx context.Context, staffEmail string) ([]models.Report, error) {
	reports, err := e.Reports.Find(ctx, bson.M{"assignedStaff.email": normalizeEmail(staffEmail)}, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("find reports by staff: %w", err)
	}
	return reports, nil
}

// Latest returns up to limit of the newest reports in status, or in any status when status is empty
func (e *Engine) Latest(ctx context.Context, status string, limit int) ([]models.Report, error) {
	if limit < 1 {
		limit = DefaultLatestLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	filter := bson.M{}
	if s := models.CanonicalStatus(status); s != "" {
		filter["status"] = s
	}
	reports, err := e.Reports.Find(ctx, filter, newestFirst().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("find latest reports: %w", err)
	}
	return reports, nil
}
