package databases

// go generate: mockery --name CommentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reporthub/reporthub-api/models"
)

const commentName = "comments"

// CommentDatabase contains the methods to use with the comment database
type CommentDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Comment, error)
	InsertOne(ctx context.Context, comment models.Comment) (InsertOneResultHelper, error)
}

type commentDatabase struct {
	collection[models.Comment]
}

// NewCommentDatabase initializes a new instance of comment database with the provided db connection
func NewCommentDatabase(db DatabaseHelper) CommentDatabase {
	return &commentDatabase{collection[models.Comment]{db: db, name: commentName}}
}
