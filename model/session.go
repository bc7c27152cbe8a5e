package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session belongs to the conference in ConferenceId. StartTime is kept as
// "HH:MM" so it orders lexically.
type Session struct {
	Id            primitive.ObjectID `json:"_id" bson:"_id"`
	ConferenceId  primitive.ObjectID `json:"conference_id" bson:"conference_id"`
	Name          string             `json:"name" bson:"name"`
	Highlights    string             `json:"highlights" bson:"highlights"`
	SpeakerKey    string             `json:"speaker_key" bson:"speaker_key"`
	Duration      int                `json:"duration" bson:"duration"`
	TypeOfSession string             `json:"type_of_session" bson:"type_of_session"`
	StartDate     *time.Time         `json:"start_date" bson:"start_date,omitempty"`
	StartTime     string             `json:"start_time" bson:"start_time,omitempty"`
}

func (s Session) WebsafeKey() string {
	return s.Id.Hex()
}
