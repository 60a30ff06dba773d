package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a citizen-filed issue in the reports collection
type Report struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Location        string              `bson:"location" json:"location"`
	Category        string              `bson:"category" json:"category"`
	Priority        string              `bson:"priority" json:"priority"`
	Image           string              `bson:"image,omitempty" json:"image,omitempty"`
	Status          string              `bson:"status" json:"status"`
	Upvote          int                 `bson:"upvote" json:"upvote"`
	Upvoters        []string            `bson:"upvoters" json:"upvoters"`
	Reporter        Reporter            `bson:"reporter" json:"reporter"`
	AssignedStaff   *AssignedStaff      `bson:"assignedStaff,omitempty" json:"assignedStaff,omitempty"`
	CreatedAt       primitive.DateTime  `bson:"createdAt" json:"createdAt"`
	LastUpdated     *primitive.DateTime `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
	StatusUpdatedAt *primitive.DateTime `bson:"statusUpdatedAt,omitempty" json:"statusUpdatedAt,omitempty"`
	AssignedAt      *primitive.DateTime `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	RemindedAt      *primitive.DateTime `bson:"remindedAt,omitempty" json:"remindedAt,omitempty"`
}

// Reporter identifies the citizen who filed a report. It never changes after creation.
type Reporter struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
}

// AssignedStaff is a denormalized reference to a staff member. Email is the
// stable identifier, Name is a cached display value.
type AssignedStaff struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
}

// ReportDetail is a report together with the staff record it is assigned to, if any
type ReportDetail struct {
	Report    `bson:",inline"`
	StaffInfo *Staff `bson:"staffInfo,omitempty" json:"staffInfo,omitempty"`
}

// ReportPage is one page of a filtered report listing
type ReportPage struct {
	Issues []Report `json:"issues"`
	Total  int64    `json:"total"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
}

// ReportEdit holds the fields a reporter may change while the report is pending.
// Nil fields are left untouched.
type ReportEdit struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Set returns the $set document for the non-nil fields
func (e ReportEdit) Set() bson.M {
	set := bson.M{}
	for key, v := range map[string]*string{
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"category":    e.Category,
		"priority":    e.Priority,
		"image":       e.Image,
	} {
		if v != nil {
			set[key] = *v
		}
	}
	return set
}
