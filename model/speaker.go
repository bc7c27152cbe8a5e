package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Speaker struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	SpeakerName    string             `json:"speaker_name" bson:"speaker_name"`
	SpeakerInfo    string             `json:"speaker_info" bson:"speaker_info"`
	SpeakerContact string             `json:"speaker_contact" bson:"speaker_contact"`
}

func (s Speaker) WebsafeKey() string {
	return s.Id.Hex()
}
