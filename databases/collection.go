package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection decodes a single mongo collection into T
type collection[T any] struct {
	db   DatabaseHelper
	name string
}

func (c collection[T]) FindOne(ctx context.Context, filter interface{}) (*T, error) {
	doc := new(T)
	err := c.db.Collection(c.name).FindOne(ctx, filter).Decode(doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c collection[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.db.Collection(c.name).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

func (c collection[T]) InsertOne(ctx context.Context, doc T) (InsertOneResultHelper, error) {
	return c.db.Collection(c.name).InsertOne(ctx, doc)
}

func (c collection[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return c.db.Collection(c.name).UpdateOne(ctx, filter, update)
}

func (c collection[T]) DeleteOne(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	return c.db.Collection(c.name).DeleteOne(ctx, filter)
}

func (c collection[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(c.name).CountDocuments(ctx, filter)
}
