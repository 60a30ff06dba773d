package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reporthub/reporthub-api/api/handlers"
	"github.com/reporthub/reporthub-api/databases/mocks"
	"github.com/reporthub/reporthub-api/models"
)

func newCitizenHandler() (handlers.Citizen, *mocks.CitizenDatabase) {
	db := &mocks.CitizenDatabase{}
	return handlers.Citizen{DB: db, Now: func() time.Time { return fixedNow }}, db
}

func TestCitizen_CreateCitizenHandler(t *testing.T) {
	c, db := newCitizenHandler()
	oid := primitive.NewObjectID()
	db.On("InsertOne", mock.Anything, models.Citizen{
		Name:      "Ada",
		Email:     ada,
		Role:      models.RoleCitizen,
		Status:    models.CitizenStatusNormal,
		CreatedAt: fixedDT,
	}).Return(insertResult(oid), nil)

	// role and status from the client are ignored
	body := `{"name":"Ada","email":" ADA@example.com ","role":"admin","status":"premium"}`
	rr := serve(c.CreateCitizenHandler, newRequest(http.MethodPost, "/citizen", body, nil, ""))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, oid.Hex(), decodeResult(t, rr).InsertedID)
	db.AssertExpectations(t)
}

func TestCitizen_CreateCitizenHandlerErrors(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		c, _ := newCitizenHandler()
		rr := serve(c.CreateCitizenHandler, newRequest(http.MethodPost, "/citizen", `{"name":"Ada"}`, nil, ""))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("already registered", func(t *testing.T) {
		c, db := newCitizenHandler()
		dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
		db.On("InsertOne", mock.Anything, mock.Anything).Return(nil, dup)

		rr := serve(c.CreateCitizenHandler, newRequest(http.MethodPost, "/citizen", `{"email":"ada@example.com"}`, nil, ""))
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "citizen already exists", decodeError(t, rr).Message)
	})

	t.Run("store failure", func(t *testing.T) {
		c, db := newCitizenHandler()
		db.On("InsertOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

		rr := serve(c.CreateCitizenHandler, newRequest(http.MethodPost, "/citizen", `{"email":"ada@example.com"}`, nil, ""))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, models.MessageError{Message: "failed to create citizen", Error: "mocked-error"}, decodeError(t, rr))
	})
}

func TestCitizen_CitizensHandler(t *testing.T) {
	c, db := newCitizenHandler()
	db.On("Find", mock.Anything, bson.M{}, mock.Anything).Return([]models.Citizen{{Email: ada}, {Email: grace}}, nil)

	rr := serve(c.CitizensHandler, newRequest(http.MethodGet, "/citizen", "", nil, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []models.Citizen
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestCitizen_CitizenByEmailHandler(t *testing.T) {
	c, db := newCitizenHandler()
	db.On("FindOne", mock.Anything, bson.M{"email": ada}).Return(&models.Citizen{Email: ada, Role: models.RoleAdmin}, nil)
	db.On("FindOne", mock.Anything, bson.M{"email": grace}).Return(nil, mongo.ErrNoDocuments)

	rr := serve(c.CitizenByEmailHandler, newRequest(http.MethodGet, "/citizen/Ada@example.com", "", map[string]string{"email": "Ada@example.com"}, ""))
	assert.Equal(t, http.StatusOK, rr.Code)
	var got models.Citizen
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, models.RoleAdmin, got.Role)

	rr = serve(c.CitizenByEmailHandler, newRequest(http.MethodGet, "/citizen/"+grace, "", map[string]string{"email": grace}, ""))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCitizen_UpdateCitizenRoleHandler(t *testing.T) {
	oid := primitive.NewObjectID()
	vars := map[string]string{"id": oid.Hex()}

	tests := []struct {
		name       string
		vars       map[string]string
		body       string
		wantStatus int
	}{
		{name: "promote", vars: vars, body: `{"role":"admin"}`, wantStatus: http.StatusOK},
		{name: "unknown role", vars: vars, body: `{"role":"mayor"}`, wantStatus: http.StatusBadRequest},
		{name: "bad id", vars: map[string]string{"id": "nope"}, body: `{"role":"admin"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, db := newCitizenHandler()
			db.On("UpdateOne", mock.Anything, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": models.RoleAdmin}}).
				Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

			rr := serve(c.UpdateCitizenRoleHandler, newRequest(http.MethodPatch, "/citizen/x/role", tt.body, tt.vars, ""))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestCitizen_UpdateCitizenActionHandler(t *testing.T) {
	oid := primitive.NewObjectID()
	vars := map[string]string{"id": oid.Hex()}
	c, db := newCitizenHandler()
	db.On("UpdateOne", mock.Anything, bson.M{"_id": oid}, bson.M{"$set": bson.M{"action": models.ActionBlock}}).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	rr := serve(c.UpdateCitizenActionHandler, newRequest(http.MethodPatch, "/citizen/x/action", `{"action":"block"}`, vars, ""))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(1), decodeResult(t, rr).ModifiedCount)

	rr = serve(c.UpdateCitizenActionHandler, newRequest(http.MethodPatch, "/citizen/x/action", `{"action":"ban"}`, vars, ""))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCitizen_SubscribeCitizenHandler(t *testing.T) {
	c, db := newCitizenHandler()
	db.On("UpdateOne", mock.Anything, bson.M{"email": ada}, bson.M{"$set": bson.M{
		"status":      models.CitizenStatusPremium,
		"paymentDate": fixedDT,
	}}).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	rr := serve(c.SubscribeCitizenHandler, newRequest(http.MethodPatch, "/citizen/ada@example.com/subscribe", "", map[string]string{"email": ada}, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	db.AssertExpectations(t)
}
