package lifecycle_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/lifecycle"
	"github.com/reporthub/reporthub-api/models"
)

// oneReport holds a single report in memory and applies upvote updates the way
// mongo would, honouring the $ne guards of the filter.
type oneReport struct {
	databases.ReportDatabase
	mu      sync.Mutex
	report  models.Report
	updates int
}

func (o *oneReport) FindOne(_ context.Context, filter interface{}) (*models.Report, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if filter.(bson.M)["_id"] != o.report.ID {
		return nil, mongo.ErrNoDocuments
	}
	r := o.report
	r.Upvoters = append([]string{}, o.report.Upvoters...)
	return &r, nil
}

func (o *oneReport) UpdateOne(_ context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.updates++
	f, u := filter.(bson.M), update.(bson.M)
	ne := func(field string) string { return f[field].(bson.M)["$ne"].(string) }
	if f["_id"] != o.report.ID || o.report.Reporter.Email == ne("reporter.email") {
		return &mongo.UpdateResult{}, nil
	}
	for _, v := range o.report.Upvoters {
		if v == ne("upvoters") {
			return &mongo.UpdateResult{}, nil
		}
	}
	o.report.Upvote += u["$inc"].(bson.M)["upvote"].(int)
	o.report.Upvoters = append(o.report.Upvoters, u["$push"].(bson.M)["upvoters"].(string))
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func newOneReport() (*lifecycle.Engine, *oneReport) {
	store := &oneReport{report: models.Report{
		ID:       reportOID,
		Status:   models.StatusPending,
		Reporter: models.Reporter{Email: "r@x.com"},
		Upvoters: []string{},
	}}
	return lifecycle.New(store, nil, nil), store
}

func TestUpvote_Scenario(t *testing.T) {
	e, store := newOneReport()

	res, err := e.Upvote(ctx, reportID, "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)
	assert.Equal(t, 1, store.report.Upvote)
	assert.Equal(t, []string{"u@x.com"}, store.report.Upvoters)

	_, err = e.Upvote(ctx, reportID, "u@x.com")
	assert.ErrorIs(t, err, lifecycle.ErrDuplicateUpvote)
	assert.Equal(t, 1, store.report.Upvote)

	_, err = e.Upvote(ctx, reportID, "r@x.com")
	assert.ErrorIs(t, err, lifecycle.ErrSelfUpvote)
	assert.Equal(t, 1, store.report.Upvote)
	assert.NotContains(t, store.report.Upvoters, "r@x.com")

	// neither rejected call reached the store
	assert.Equal(t, 1, store.updates)
}

func TestUpvote_CountMatchesVoters(t *testing.T) {
	e, store := newOneReport()
	voters := []string{"a@x.com", "b@x.com", "a@x.com", "r@x.com", "c@x.com", "B@x.com"}

	for _, v := range voters {
		_, _ = e.Upvote(ctx, reportID, v)
		assert.Equal(t, len(store.report.Upvoters), store.report.Upvote)
	}
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, store.report.Upvoters)
}

func TestUpvote_ConcurrentDistinctVoters(t *testing.T) {
	e, store := newOneReport()
	voters := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com", "f@x.com", "g@x.com", "h@x.com"}

	var wg sync.WaitGroup
	for _, v := range voters {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			_, err := e.Upvote(ctx, reportID, v)
			assert.NoError(t, err)
		}(v)
	}
	wg.Wait()

	assert.Equal(t, len(voters), store.report.Upvote)
	assert.ElementsMatch(t, voters, store.report.Upvoters)
}

func TestUpvote_SingleCombinedUpdate(t *testing.T) {
	e, s := newEngine()
	s.reports.On("FindOne", ctx, bson.M{"_id": reportOID}).
		Return(&models.Report{ID: reportOID, Reporter: models.Reporter{Email: "r@x.com"}}, nil)
	s.reports.On("UpdateOne", ctx,
		bson.M{
			"_id":            reportOID,
			"reporter.email": bson.M{"$ne": "u@x.com"},
			"upvoters":       bson.M{"$ne": "u@x.com"},
		},
		bson.M{
			"$inc":  bson.M{"upvote": 1},
			"$push": bson.M{"upvoters": "u@x.com"},
		}).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	res, err := e.Upvote(ctx, reportID, "U@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)
	s.reports.AssertExpectations(t)
}

func TestUpvote_RaceLostIsDuplicate(t *testing.T) {
	e, s := newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).
		Return(&models.Report{ID: reportOID, Reporter: models.Reporter{Email: "r@x.com"}}, nil)
	s.reports.On("UpdateOne", ctx, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{}, nil)

	_, err := e.Upvote(ctx, reportID, "u@x.com")
	assert.ErrorIs(t, err, lifecycle.ErrDuplicateUpvote)
}

func TestUpvote_ReportDeletedMidwayIsNotFound(t *testing.T) {
	e, s := newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).
		Return(&models.Report{ID: reportOID, Reporter: models.Reporter{Email: "r@x.com"}}, nil).Once()
	s.reports.On("UpdateOne", ctx, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{}, nil)
	s.reports.On("FindOne", ctx, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()

	_, err := e.Upvote(ctx, reportID, "u@x.com")
	assert.ErrorIs(t, err, lifecycle.ErrIssueNotFound)
	assert.NotErrorIs(t, err, lifecycle.ErrDuplicateUpvote)
	s.reports.AssertNumberOfCalls(t, "FindOne", 2)
}

func TestUpvote_RecheckFailureIsReported(t *testing.T) {
	boom := errors.New("mocked-error")
	e, s := newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).
		Return(&models.Report{ID: reportOID, Reporter: models.Reporter{Email: "r@x.com"}}, nil).Once()
	s.reports.On("UpdateOne", ctx, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{}, nil)
	s.reports.On("FindOne", ctx, mock.Anything).Return(nil, boom).Once()

	_, err := e.Upvote(ctx, reportID, "u@x.com")
	assert.ErrorIs(t, err, boom)
}

func TestUpvote_Failures(t *testing.T) {
	boom := errors.New("mocked-error")

	e, s := newEngine()
	_, err := e.Upvote(ctx, "not-an-id", "u@x.com")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidID)
	s.reports.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)

	e, s = newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	_, err = e.Upvote(ctx, reportID, "u@x.com")
	assert.ErrorIs(t, err, lifecycle.ErrIssueNotFound)
	s.reports.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)

	e, s = newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).Return(nil, boom)
	_, err = e.Upvote(ctx, reportID, "u@x.com")
	assert.ErrorIs(t, err, boom)

	e, s = newEngine()
	s.reports.On("FindOne", ctx, mock.Anything).
		Return(&models.Report{ID: reportOID, Reporter: models.Reporter{Email: "r@x.com"}}, nil)
	s.reports.On("UpdateOne", ctx, mock.Anything, mock.Anything).Return(nil, boom)
	_, err = e.Upvote(ctx, reportID, "u@x.com")
	assert.ErrorIs(t, err, boom)
}
