package database

import (
	"conference-api/model"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var sessionOrder = options.Find().SetSort(bson.D{
	{Key: "start_date", Value: 1},
	{Key: "start_time", Value: 1},
	{Key: "name", Value: 1},
})

func (s *Store) InsertSession(ctx context.Context, session *model.Session) error {
	if session.Id.IsZero() {
		session.Id = newID()
	}

	if _, err := s.sessions.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("db error while creating session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error) {
	return findOne[model.Session](ctx, s.sessions, bson.D{{Key: "_id", Value: id}},
		fmt.Sprintf("No session found with key: %v", id.Hex()))
}

func (s *Store) GetSessions(ctx context.Context, ids []primitive.ObjectID) ([]model.Session, error) {
	sessions, err := findAll[model.Session](ctx, s.sessions, idsFilter(ids))
	if err != nil {
		return nil, err
	}
	return inOrder(ids, sessions, func(sess model.Session) primitive.ObjectID { return sess.Id }), nil
}

// SessionsByConference lists a conference's sessions, restricted to one
// session type unless typeOfSession is empty.
func (s *Store) SessionsByConference(ctx context.Context, confID primitive.ObjectID, typeOfSession string) ([]model.Session, error) {
	filter := bson.D{{Key: "conference_id", Value: confID}}
	if typeOfSession != "" {
		filter = append(filter, bson.E{Key: "type_of_session", Value: typeOfSession})
	}
	return findAll[model.Session](ctx, s.sessions, filter, sessionOrder)
}

func (s *Store) SessionsBySpeaker(ctx context.Context, speakerKey string) ([]model.Session, error) {
	return findAll[model.Session](ctx, s.sessions, bson.D{{Key: "speaker_key", Value: speakerKey}}, sessionOrder)
}

// SessionsExcludingTypeBefore lists sessions not of typeOfSession that start
// strictly before the "HH:MM" time given. Sessions without a start time are
// left out.
func (s *Store) SessionsExcludingTypeBefore(ctx context.Context, typeOfSession, before string) ([]model.Session, error) {
	filter := bson.D{
		{Key: "type_of_session", Value: bson.D{{Key: "$ne", Value: typeOfSession}}},
		{Key: "start_time", Value: bson.D{{Key: "$lt", Value: before}}},
	}
	return findAll[model.Session](ctx, s.sessions, filter, sessionOrder)
}

func (s *Store) CountSpeakerSessions(ctx context.Context, confID primitive.ObjectID, speakerKey string) (int64, error) {
	count, err := s.sessions.CountDocuments(ctx, bson.D{
		{Key: "conference_id", Value: confID},
		{Key: "speaker_key", Value: speakerKey},
	})
	if err != nil {
		return 0, fmt.Errorf("db error while counting sessions: %w", err)
	}
	return count, nil
}

// SpeakerKeysByConference returns the distinct speaker keys used by the
// conference's sessions.
func (s *Store) SpeakerKeysByConference(ctx context.Context, confID primitive.ObjectID) ([]string, error) {
	values, err := s.sessions.Distinct(ctx, "speaker_key", bson.D{{Key: "conference_id", Value: confID}})
	if err != nil {
		return nil, fmt.Errorf("db error while reading conference speakers: %w", err)
	}

	keys := make([]string, 0, len(values))
	for _, v := range values {
		if key, ok := v.(string); ok && key != "" {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
