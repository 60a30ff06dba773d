package lifecycle_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reporthub/reporthub-api/lifecycle"
	"github.com/reporthub/reporthub-api/models"
)

func findOpts(skip, limit int64) interface{} {
	return mock.MatchedBy(func(opts []*options.FindOptions) bool {
		if len(opts) != 1 || opts[0].Limit == nil || opts[0].Skip == nil {
			return false
		}
		return *opts[0].Skip == skip && *opts[0].Limit == limit
	})
}

func TestPaginate_StatusSecondPage(t *testing.T) {
	e, s := newEngine()
	filter := bson.M{"status": models.StatusPending}
	page := make([]models.Report, 8)
	s.reports.On("CountDocuments", ctx, filter).Return(int64(21), nil)
	s.reports.On("Find", ctx, filter, findOpts(8, 8)).Return(page, nil)

	res, err := e.Paginate(ctx, lifecycle.Query{Status: "pending", Page: 2, Limit: 8})
	require.NoError(t, err)
	assert.Equal(t, int64(21), res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 8, res.Limit)
	assert.Len(t, res.Issues, 8)
	s.reports.AssertExpectations(t)
}

func TestPaginate_Defaults(t *testing.T) {
	e, s := newEngine()
	s.reports.On("CountDocuments", ctx, bson.M{}).Return(int64(0), nil)
	s.reports.On("Find", ctx, bson.M{}, findOpts(0, lifecycle.DefaultPageLimit)).Return([]models.Report{}, nil)

	res, err := e.Paginate(ctx, lifecycle.Query{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, lifecycle.DefaultPageLimit, res.Limit)
	assert.NotNil(t, res.Issues)

	e, s = newEngine()
	s.reports.On("CountDocuments", ctx, bson.M{}).Return(int64(0), nil)
	s.reports.On("Find", ctx, bson.M{}, findOpts(0, lifecycle.MaxPageLimit)).Return([]models.Report{}, nil)
	res, err = e.Paginate(ctx, lifecycle.Query{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.MaxPageLimit, res.Limit)
}

func TestPaginate_HugePageIsClamped(t *testing.T) {
	e, s := newEngine()
	skip := int64(lifecycle.MaxPage-1) * lifecycle.MaxPageLimit
	s.reports.On("CountDocuments", ctx, bson.M{}).Return(int64(3), nil)
	s.reports.On("Find", ctx, bson.M{}, findOpts(skip, lifecycle.MaxPageLimit)).Return([]models.Report{}, nil)

	res, err := e.Paginate(ctx, lifecycle.Query{Page: math.MaxInt, Limit: lifecycle.MaxPageLimit})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.MaxPage, res.Page)
	assert.Empty(t, res.Issues)
	s.reports.AssertExpectations(t)
}

func TestPaginate_Failures(t *testing.T) {
	boom := errors.New("mocked-error")

	e, s := newEngine()
	s.reports.On("CountDocuments", ctx, mock.Anything).Return(int64(0), boom)
	_, err := e.Paginate(ctx, lifecycle.Query{})
	assert.ErrorIs(t, err, boom)

	e, s = newEngine()
	s.reports.On("CountDocuments", ctx, mock.Anything).Return(int64(4), nil)
	s.reports.On("Find", ctx, mock.Anything, mock.Anything).Return(nil, boom)
	_, err = e.Paginate(ctx, lifecycle.Query{})
	assert.ErrorIs(t, err, boom)
}

func TestQuery_Filter(t *testing.T) {
	f := lifecycle.Query{
		Search:   "main st. (north)",
		Status:   "REJECTED",
		Priority: "high",
		Category: "Roads",
	}.Filter()

	re := primitive.Regex{Pattern: `main st\. \(north\)`, Options: "i"}
	assert.Equal(t, bson.M{
		"$or":      bson.A{bson.M{"title": re}, bson.M{"location": re}},
		"status":   models.StatusRejected,
		"priority": "high",
		"category": "Roads",
	}, f)

	assert.Equal(t, bson.M{}, lifecycle.Query{Search: "  "}.Filter())
}

func TestGet_WithStaffInfo(t *testing.T) {
	e, s := newEngine()
	report := &models.Report{ID: reportOID, AssignedStaff: &models.AssignedStaff{Email: "sam@city.gov", Name: "Sam"}}
	staff := &models.Staff{Email: "sam@city.gov", Name: "Sam Porter", Phone: "555-0100"}
	s.reports.On("FindOne", ctx, bson.M{"_id": reportOID}).Return(report, nil)
	s.staff.On("FindOne", ctx, bson.M{"email": "sam@city.gov"}).Return(staff, nil)

	detail, err := e.Get(ctx, reportID)
	require.NoError(t, err)
	assert.Equal(t, reportOID, detail.ID)
	assert.Equal(t, staff, detail.StaffInfo)
}

func TestGet_StaffGone(t *testing.T) {
	e, s := newEngine()
	report := &models.Report{ID: reportOID, AssignedStaff: &models.AssignedStaff{Email: "sam@city.gov"}}
	s.reports.On("FindOne", ctx, mock.Anything).Return(report, nil)
	s.staff.On("FindOne", ctx, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	detail, err := e.Get(ctx, reportID)
	require.NoError(t, err)
	assert.Nil(t, detail.StaffInfo)
}

func TestGet_Unassigned(t *testing.T) {
	e, s := newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).Return(&models.Report{ID: reportOID}, nil)

	detail, err := e.Get(ctx, reportID)
	require.NoError(t, err)
	assert.Nil(t, detail.StaffInfo)
	s.staff.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestGet_Failures(t *testing.T) {
	e, _ := newEngine()
	_, err := e.Get(ctx, "123")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidID)

	e, s := newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	_, err = e.Get(ctx, reportID)
	assert.ErrorIs(t, err, lifecycle.ErrIssueNotFound)

	boom := errors.New("mocked-error")
	e, s = newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).
		Return(&models.Report{AssignedStaff: &models.AssignedStaff{Email: "sam@city.gov"}}, nil)
	s.staff.On("FindOne", ctx, mock.Anything).Return(nil, boom)
	_, err = e.Get(ctx, reportID)
	assert.ErrorIs(t, err, boom)
}

func TestScopedListings(t *testing.T) {
	e, s := newEngine()
	mine := []models.Report{{Title: "mine"}}
	assigned := []models.Report{{Title: "assigned"}}
	s.reports.On("Find", ctx, bson.M{"reporter.email": "r@x.com"}, mock.Anything).Return(mine, nil)
	s.reports.On("Find", ctx, bson.M{"assignedStaff.email": "sam@city.gov"}, mock.Anything).Return(assigned, nil)
	s.reports.On("Find", ctx, bson.M{}, mock.Anything).Return(append(mine, assigned...), nil)

	got, err := e.MyIssues(ctx, "R@x.com")
	require.NoError(t, err)
	assert.Equal(t, mine, got)

	got, err = e.AssignedTo(ctx, "sam@city.gov")
	require.NoError(t, err)
	assert.Equal(t, assigned, got)

	got, err = e.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLatest(t *testing.T) {
	e, s := newEngine()
	limitIs := func(n int64) interface{} {
		return mock.MatchedBy(func(opts []*options.FindOptions) bool {
			return len(opts) == 1 && opts[0].Limit != nil && *opts[0].Limit == n
		})
	}
	s.reports.On("Find", ctx, bson.M{"status": models.StatusPending}, limitIs(lifecycle.DefaultLatestLimit)).
		Return([]models.Report{}, nil)
	s.reports.On("Find", ctx, bson.M{}, limitIs(3)).Return([]models.Report{}, nil)

	_, err := e.Latest(ctx, "pending", 0)
	require.NoError(t, err)
	_, err = e.Latest(ctx, "", 3)
	require.NoError(t, err)
	s.reports.AssertExpectations(t)

	boom := errors.New("mocked-error")
	e, s = newEngine()
	s.reports.On("Find", ctx, mock.Anything, mock.Anything).Return(nil, boom)
	_, err = e.Latest(ctx, "", 3)
	assert.ErrorIs(t, err, boom)
	_, err = e.MyIssues(ctx, "r@x.com")
	assert.ErrorIs(t, err, boom)
	_, err = e.AssignedTo(ctx, "s@x.com")
	assert.ErrorIs(t, err, boom)
	_, err = e.List(ctx)
	assert.ErrorIs(t, err, boom)
}
