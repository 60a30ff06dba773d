package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/models"
)

// Citizen exported for testing purposes
type Citizen struct {
	DB  databases.CitizenDatabase
	Now func() time.Time
}

func (c Citizen) now() primitive.DateTime {
	if c.Now == nil {
		return primitive.NewDateTimeFromTime(time.Now())
	}
	return primitive.NewDateTimeFromTime(c.Now())
}

// CitizensHandler returns every registered citizen
func (c Citizen) CitizensHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	citizens, err := c.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get citizens", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, citizens)
}

// CreateCitizenHandler registers a citizen with the default role and tier
func (c Citizen) CreateCitizenHandler(w http.ResponseWriter, r *http.Request) {
	var body models.Citizen
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" {
		config.ErrorStatus("email is required", http.StatusBadRequest, w, errors.New("missing email"))
		return
	}

	citizen := models.Citizen{
		Name:      body.Name,
		Email:     email,
		Photo:     body.Photo,
		Role:      models.RoleCitizen,
		Status:    models.CitizenStatusNormal,
		CreatedAt: c.now(),
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.InsertOne(ctx, citizen)
	if mongo.IsDuplicateKeyError(err) {
		config.ErrorStatus("citizen already exists", http.StatusConflict, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to create citizen", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, models.WriteResult{Acknowledged: true, InsertedID: res.Decode()})
}

// CitizenByEmailHandler returns the citizen registered under an email
func (c Citizen) CitizenByEmailHandler(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(mux.Vars(r)["email"]))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	citizen, err := c.DB.FindOne(ctx, bson.M{"email": email})
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("citizen not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get citizen by email", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, citizen)
}

// UpdateCitizenRoleHandler promotes or demotes a citizen
func (c Citizen) UpdateCitizenRoleHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.Role != models.RoleCitizen && body.Role != models.RoleAdmin {
		config.ErrorStatus("invalid role", http.StatusBadRequest, w, errors.New("role must be citizen or admin"))
		return
	}
	c.setByID(w, r, bson.M{"role": body.Role}, "failed to update citizen role")
}

// UpdateCitizenActionHandler blocks or unblocks a citizen
func (c Citizen) UpdateCitizenActionHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.Action != models.ActionBlock && body.Action != models.ActionUnblock {
		config.ErrorStatus("invalid action", http.StatusBadRequest, w, errors.New("action must be block or unblock"))
		return
	}
	c.setByID(w, r, bson.M{"action": body.Action}, "failed to update citizen action")
}

func (c Citizen) setByID(w http.ResponseWriter, r *http.Request, set bson.M, message string) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid citizen id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus(message, http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updateResult(res))
}

// SubscribeCitizenHandler upgrades a citizen to premium after payment
func (c Citizen) SubscribeCitizenHandler(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(mux.Vars(r)["email"]))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"status":      models.CitizenStatusPremium,
		"paymentDate": c.now(),
	}})
	if err != nil {
		config.ErrorStatus("failed to subscribe citizen", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updateResult(res))
}

func updateResult(res *mongo.UpdateResult) models.WriteResult {
	return models.WriteResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}

func deleteResult(res *mongo.DeleteResult) models.WriteResult {
	return models.WriteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
