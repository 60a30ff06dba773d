package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Citizen roles and subscription tiers
const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"

	CitizenStatusNormal  = "normal"
	CitizenStatusPremium = "premium"

	ActionBlock   = "block"
	ActionUnblock = "unblock"
)

// Citizen holds the structure for the citizen collection in mongo
type Citizen struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Photo       string              `bson:"photo,omitempty" json:"photo,omitempty"`
	Role        string              `bson:"role" json:"role"`
	Status      string              `bson:"status" json:"status"`
	Action      string              `bson:"action,omitempty" json:"action,omitempty"`
	PaymentDate *primitive.DateTime `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	CreatedAt   primitive.DateTime  `bson:"createdAt" json:"createdAt"`
}

// IsQuotaLimited reports whether the citizen is a non-subscriber subject to the report quota
func (c Citizen) IsQuotaLimited() bool {
	return c.Role == RoleCitizen && c.Status == CitizenStatusNormal
}
