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

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/models"
)

// Staff exported for testing purposes
type Staff struct {
	DB  databases.StaffDatabase
	Now func() time.Time
}

func (s Staff) now() primitive.DateTime {
	if s.Now == nil {
		return primitive.NewDateTimeFromTime(time.Now())
	}
	return primitive.NewDateTimeFromTime(s.Now())
}

// StaffHandler returns every staff member
func (s Staff) StaffHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	staff, err := s.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get staff", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, staff)
}

// CreateStaffHandler adds a staff member
func (s Staff) CreateStaffHandler(w http.ResponseWriter, r *http.Request) {
	var body models.Staff
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" {
		config.ErrorStatus("email is required", http.StatusBadRequest, w, errors.New("missing email"))
		return
	}

	now := s.now()
	staff := models.Staff{
		Name:      body.Name,
		Email:     email,
		Phone:     body.Phone,
		Photo:     body.Photo,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := s.DB.InsertOne(ctx, staff)
	if err != nil {
		config.ErrorStatus("failed to create staff", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, models.WriteResult{Acknowledged: true, InsertedID: res.Decode()})
}

// UpdateStaffHandler edits a staff member's profile fields
func (s Staff) UpdateStaffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid staff id", http.StatusBadRequest, w, err)
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	set := bson.M{}
	for _, field := range []string{"name", "email", "phone", "photo"} {
		if v, ok := body[field]; ok {
			set[field] = v
		}
	}
	if email, ok := set["email"].(string); ok {
		set["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	set["updatedAt"] = s.now()

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := s.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update staff", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updateResult(res))
}

// DeleteStaffHandler removes a staff member. Existing assignments keep their copy.
func (s Staff) DeleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("invalid staff id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := s.DB.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to delete staff", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, deleteResult(res))
}
