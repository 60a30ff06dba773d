package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/models"
)

// LatestComments is how many comments the feed returns
const LatestComments = 3

// Comment exported for testing purposes
type Comment struct {
	DB  databases.CommentDatabase
	Now func() time.Time
}

// CommentsHandler returns the newest comments
func (c Comment) CommentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(LatestComments)
	comments, err := c.DB.Find(ctx, bson.M{}, opts)
	if err != nil {
		config.ErrorStatus("failed to get comments", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, comments)
}

// CreateCommentHandler posts a comment authored by the caller
func (c Comment) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	email, _ := api.EmailFromContext(r.Context())

	var body models.Comment
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(body.Comment) == "" {
		config.ErrorStatus("comment is required", http.StatusBadRequest, w, errors.New("empty comment"))
		return
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	comment := models.Comment{
		Comment:   body.Comment,
		Email:     email,
		CreatedAt: primitive.NewDateTimeFromTime(now),
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.InsertOne(ctx, comment)
	if err != nil {
		config.ErrorStatus("failed to create comment", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, models.WriteResult{Acknowledged: true, InsertedID: res.Decode()})
}
