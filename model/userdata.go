package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Login          string             `json:"login" bson:"login,omitempty"`
	HashedPassword string             `json:"password_hash" bson:"password_hash,omitempty"`
	Email          string             `json:"email" bson:"email,omitempty"`
	DisplayName    string             `json:"display_name" bson:"display_name,omitempty"`
}
