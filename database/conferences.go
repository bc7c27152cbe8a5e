package database

import (
	"conference-api/model"
	"conference-api/query"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertConference(ctx context.Context, conf *model.Conference) error {
	if conf.Id.IsZero() {
		conf.Id = newID()
	}

	if _, err := s.conferences.InsertOne(ctx, conf); err != nil {
		return fmt.Errorf("db error while creating conference: %w", err)
	}
	return nil
}

func (s *Store) GetConference(ctx context.Context, id primitive.ObjectID) (*model.Conference, error) {
	return findOne[model.Conference](ctx, s.conferences, bson.D{{Key: "_id", Value: id}},
		fmt.Sprintf("No conference found with key: %v", id.Hex()))
}

func (s *Store) GetConferences(ctx context.Context, ids []primitive.ObjectID) ([]model.Conference, error) {
	conferences, err := findAll[model.Conference](ctx, s.conferences, idsFilter(ids))
	if err != nil {
		return nil, err
	}
	return inOrder(ids, conferences, func(c model.Conference) primitive.ObjectID { return c.Id }), nil
}

func (s *Store) SaveConference(ctx context.Context, conf *model.Conference) error {
	return replaceByID(ctx, s.conferences, conf.Id, conf, false)
}

func (s *Store) ConferencesByOrganizer(ctx context.Context, userID string) ([]model.Conference, error) {
	return findAll[model.Conference](ctx, s.conferences,
		bson.D{{Key: "organizer_user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *Store) QueryConferences(ctx context.Context, q query.Query) ([]model.Conference, error) {
	return findAll[model.Conference](ctx, s.conferences, q.BSON(), options.Find().SetSort(q.Sort()))
}

// ConferencesWithSeatsUpTo returns conferences that still have seats but no
// more than maxSeats of them.
func (s *Store) ConferencesWithSeatsUpTo(ctx context.Context, maxSeats int) ([]model.Conference, error) {
	filter := bson.D{{Key: "seats_available", Value: bson.D{
		{Key: "$gt", Value: 0},
		{Key: "$lte", Value: maxSeats},
	}}}
	return findAll[model.Conference](ctx, s.conferences, filter,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}
