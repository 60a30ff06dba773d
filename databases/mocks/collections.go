package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/models"
)

func insertResult(ret mock.Arguments) (databases.InsertOneResultHelper, error) {
	var r0 databases.InsertOneResultHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.InsertOneResultHelper)
	}
	return r0, ret.Error(1)
}

func updateResult(ret mock.Arguments) (*mongo.UpdateResult, error) {
	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}

func deleteResult(ret mock.Arguments) (*mongo.DeleteResult, error) {
	var r0 *mongo.DeleteResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.DeleteResult)
	}
	return r0, ret.Error(1)
}

// ReportDatabase is a mock type for the ReportDatabase type
type ReportDatabase struct {
	mock.Mock
}

// FindOne provides a mock function with given fields: ctx, filter
func (_m *ReportDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Report, error) {
	ret := _m.Called(ctx, filter)
	var r0 *models.Report
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Report)
	}
	return r0, ret.Error(1)
}

// Find provides a mock function with given fields: ctx, filter, opts
func (_m *ReportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error) {
	ret := _m.Called(ctx, filter, opts)
	var r0 []models.Report
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Report)
	}
	return r0, ret.Error(1)
}

// InsertOne provides a mock function with given fields: ctx, report
func (_m *ReportDatabase) InsertOne(ctx context.Context, report models.Report) (databases.InsertOneResultHelper, error) {
	return insertResult(_m.Called(ctx, report))
}

// UpdateOne provides a mock function with given fields: ctx, filter, update
func (_m *ReportDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return updateResult(_m.Called(ctx, filter, update))
}

// DeleteOne provides a mock function with given fields: ctx, filter
func (_m *ReportDatabase) DeleteOne(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	return deleteResult(_m.Called(ctx, filter))
}

// CountDocuments provides a mock function with given fields: ctx, filter
func (_m *ReportDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	ret := _m.Called(ctx, filter)
	return ret.Get(0).(int64), ret.Error(1)
}

// CitizenDatabase is a mock type for the CitizenDatabase type
type CitizenDatabase struct {
	mock.Mock
}

// FindOne provides a mock function with given fields: ctx, filter
func (_m *CitizenDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Citizen, error) {
	ret := _m.Called(ctx, filter)
	var r0 *models.Citizen
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Citizen)
	}
	return r0, ret.Error(1)
}

// Find provides a mock function with given fields: ctx, filter, opts
func (_m *CitizenDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Citizen, error) {
	ret := _m.Called(ctx, filter, opts)
	var r0 []models.Citizen
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Citizen)
	}
	return r0, ret.Error(1)
}

// InsertOne provides a mock function with given fields: ctx, citizen
func (_m *CitizenDatabase) InsertOne(ctx context.Context, citizen models.Citizen) (databases.InsertOneResultHelper, error) {
	return insertResult(_m.Called(ctx, citizen))
}

// UpdateOne provides a mock function with given fields: ctx, filter, update
func (_m *CitizenDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return updateResult(_m.Called(ctx, filter, update))
}

// StaffDatabase is a mock type for the StaffDatabase type
type StaffDatabase struct {
	mock.Mock
}

// FindOne provides a mock function with given fields: ctx, filter
func (_m *StaffDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Staff, error) {
	ret := _m.Called(ctx, filter)
	var r0 *models.Staff
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Staff)
	}
	return r0, ret.Error(1)
}

// Find provides a mock function with given fields: ctx, filter, opts
func (_m *StaffDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Staff, error) {
	ret := _m.Called(ctx, filter, opts)
	var r0 []models.Staff
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Staff)
	}
	return r0, ret.Error(1)
}

// InsertOne provides a mock function with given fields: ctx, staff
func (_m *StaffDatabase) InsertOne(ctx context.Context, staff models.Staff) (databases.InsertOneResultHelper, error) {
	return insertResult(_m.Called(ctx, staff))
}

// UpdateOne provides a mock function with given fields: ctx, filter, update
func (_m *StaffDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return updateResult(_m.Called(ctx, filter, update))
}

// DeleteOne provides a mock function with given fields: ctx, filter
func (_m *StaffDatabase) DeleteOne(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	return deleteResult(_m.Called(ctx, filter))
}

// CommentDatabase is a mock type for the CommentDatabase type
type CommentDatabase struct {
	mock.Mock
}

// Find provides a mock function with given fields: ctx, filter, opts
func (_m *CommentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Comment, error) {
	ret := _m.Called(ctx, filter, opts)
	var r0 []models.Comment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Comment)
	}
	return r0, ret.Error(1)
}

// InsertOne provides a mock function with given fields: ctx, comment
func (_m *CommentDatabase) InsertOne(ctx context.Context, comment models.Comment) (databases.InsertOneResultHelper, error) {
	return insertResult(_m.Called(ctx, comment))
}
