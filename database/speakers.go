package database

import (
	"conference-api/model"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertSpeaker(ctx context.Context, speaker *model.Speaker) error {
	if speaker.Id.IsZero() {
		speaker.Id = newID()
	}

	if _, err := s.speakers.InsertOne(ctx, speaker); err != nil {
		return fmt.Errorf("db error while creating speaker: %w", err)
	}
	return nil
}

func (s *Store) GetSpeaker(ctx context.Context, id primitive.ObjectID) (*model.Speaker, error) {
	return findOne[model.Speaker](ctx, s.speakers, bson.D{{Key: "_id", Value: id}},
		fmt.Sprintf("No speaker found with key: %v", id.Hex()))
}

func (s *Store) GetSpeakers(ctx context.Context, ids []primitive.ObjectID) ([]model.Speaker, error) {
	speakers, err := findAll[model.Speaker](ctx, s.speakers, idsFilter(ids))
	if err != nil {
		return nil, err
	}
	return inOrder(ids, speakers, func(sp model.Speaker) primitive.ObjectID { return sp.Id }), nil
}

func (s *Store) ListSpeakers(ctx context.Context) ([]model.Speaker, error) {
	return findAll[model.Speaker](ctx, s.speakers, bson.D{},
		options.Find().SetSort(bson.D{{Key: "speaker_name", Value: 1}}))
}
