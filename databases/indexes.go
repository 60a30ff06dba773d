package databases

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Indexes lists the indexes each collection should carry
var Indexes = map[string][]mongo.IndexModel{
	citizenName: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	staffName: {
		{Keys: bson.D{{Key: "email", Value: 1}}},
	},
	reportName: {
		{Keys: bson.D{{Key: "reporter.email", Value: 1}}},
		{Keys: bson.D{{Key: "assignedStaff.email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	commentName: {
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
}

// EnsureIndexes creates the indexes in Indexes. Existing identical indexes are left alone.
func EnsureIndexes(ctx context.Context, db DatabaseHelper) error {
	for name, models := range Indexes {
		created, err := db.Collection(name).CreateIndexes(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
		zap.S().Infow("ensured indexes", "collection", name, "indexes", created)
	}
	return nil
}
