// Package mocks holds testify mocks for the databases interfaces. Variadic
// options are passed to Called as a single slice argument.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reporthub/reporthub-api/databases"
)

// DatabaseHelper is a mock type for the DatabaseHelper type
type DatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function
func (_m *DatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(databases.ClientHelper)
}

// Collection provides a mock function with given fields: name
func (_m *DatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(databases.CollectionHelper)
}

// ClientHelper is a mock type for the ClientHelper type
type ClientHelper struct {
	mock.Mock
}

// Database provides a mock function with given fields: name
func (_m *ClientHelper) Database(name string) databases.DatabaseHelper {
	ret := _m.Called(name)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(databases.DatabaseHelper)
}

// Connect provides a mock function with given fields: ctx
func (_m *ClientHelper) Connect(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// Disconnect provides a mock function with given fields: ctx
func (_m *ClientHelper) Disconnect(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// Ping provides a mock function with given fields: ctx
func (_m *ClientHelper) Ping(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// CollectionHelper is a mock type for the CollectionHelper type
type CollectionHelper struct {
	mock.Mock
}

// FindOne provides a mock function with given fields: ctx, filter, opts
func (_m *CollectionHelper) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) databases.SingleResultHelper {
	ret := _m.Called(ctx, filter, opts)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(databases.SingleResultHelper)
}

// Find provides a mock function with given fields: ctx, filter, opts
func (_m *CollectionHelper) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (databases.CursorHelper, error) {
	ret := _m.Called(ctx, filter, opts)
	var r0 databases.CursorHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.CursorHelper)
	}
	return r0, ret.Error(1)
}

// InsertOne provides a mock function with given fields: ctx, document, opts
func (_m *CollectionHelper) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	ret := _m.Called(ctx, document, opts)
	var r0 databases.InsertOneResultHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.InsertOneResultHelper)
	}
	return r0, ret.Error(1)
}

// UpdateOne provides a mock function with given fields: ctx, filter, update, opts
func (_m *CollectionHelper) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := _m.Called(ctx, filter, update, opts)
	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}

// DeleteOne provides a mock function with given fields: ctx, filter, opts
func (_m *CollectionHelper) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ret := _m.Called(ctx, filter, opts)
	var r0 *mongo.DeleteResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.DeleteResult)
	}
	return r0, ret.Error(1)
}

// CountDocuments provides a mock function with given fields: ctx, filter, opts
func (_m *CollectionHelper) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	ret := _m.Called(ctx, filter, opts)
	return ret.Get(0).(int64), ret.Error(1)
}

// CreateIndexes provides a mock function with given fields: ctx, models
func (_m *CollectionHelper) CreateIndexes(ctx context.Context, models []mongo.IndexModel) ([]string, error) {
	ret := _m.Called(ctx, models)
	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

// SingleResultHelper is a mock type for the SingleResultHelper type
type SingleResultHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields: v
func (_m *SingleResultHelper) Decode(v interface{}) error {
	return _m.Called(v).Error(0)
}

// CursorHelper is a mock type for the CursorHelper type
type CursorHelper struct {
	mock.Mock
}

// All provides a mock function with given fields: ctx, results
func (_m *CursorHelper) All(ctx context.Context, results interface{}) error {
	return _m.Called(ctx, results).Error(0)
}

// InsertOneResultHelper is a mock type for the InsertOneResultHelper type
type InsertOneResultHelper struct {
	mock.Mock
}

// Decode provides a mock function
func (_m *InsertOneResultHelper) Decode() interface{} {
	return _m.Called().Get(0)
}
