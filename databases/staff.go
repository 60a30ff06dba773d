package databases

// go generate: mockery --name StaffDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reporthub/reporthub-api/models"
)

const staffName = "staff"

// StaffDatabase contains the methods to use with the staff database
type StaffDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Staff, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Staff, error)
	InsertOne(ctx context.Context, staff models.Staff) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)
}

type staffDatabase struct {
	collection[models.Staff]
}

// NewStaffDatabase initializes a new instance of staff database with the provided db connection
func NewStaffDatabase(db DatabaseHelper) StaffDatabase {
	return &staffDatabase{collection[models.Staff]{db: db, name: staffName}}
}
