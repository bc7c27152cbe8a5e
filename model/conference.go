package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conference is owned by the profile named in OrganizerUserId.
type Conference struct {
	Id              primitive.ObjectID `json:"_id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	Description     string             `json:"description" bson:"description"`
	OrganizerUserId string             `json:"organizer_user_id" bson:"organizer_user_id"`
	Topics          []string           `json:"topics" bson:"topics"`
	City            string             `json:"city" bson:"city"`
	StartDate       *time.Time         `json:"start_date" bson:"start_date,omitempty"`
	EndDate         *time.Time         `json:"end_date" bson:"end_date,omitempty"`
	Month           int                `json:"month" bson:"month"`
	MaxAttendees    int                `json:"max_attendees" bson:"max_attendees"`
	SeatsAvailable  int                `json:"seats_available" bson:"seats_available"`
}

// WebsafeKey is the key clients use to address the conference.
func (c Conference) WebsafeKey() string {
	return c.Id.Hex()
}
