package databases

// go generate: mockery --name CitizenDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reporthub/reporthub-api/models"
)

const citizenName = "citizen"

// CitizenDatabase contains the methods to use with the citizen database
type CitizenDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Citizen, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Citizen, error)
	InsertOne(ctx context.Context, citizen models.Citizen) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}

type citizenDatabase struct {
	collection[models.Citizen]
}

// NewCitizenDatabase initializes a new instance of citizen database with the provided db connection
func NewCitizenDatabase(db DatabaseHelper) CitizenDatabase {
	return &citizenDatabase{collection[models.Citizen]{db: db, name: citizenName}}
}
