package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is an entry in the global comment feed
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Comment   string             `bson:"comment" json:"comment"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt primitive.DateTime `bson:"createdAt" json:"createdAt"`
}
