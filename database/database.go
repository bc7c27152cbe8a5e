package database

import (
	"conference-api/config"
	"conference-api/errors"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection       = "users"
	profilesCollection    = "profiles"
	conferencesCollection = "conferences"
	sessionsCollection    = "sessions"
	speakersCollection    = "speakers"
)

// Store keeps conference entities in MongoDB.
type Store struct {
	client       *mongo.Client
	transactions bool

	users       *mongo.Collection
	profiles    *mongo.Collection
	conferences *mongo.Collection
	sessions    *mongo.Collection
	speakers    *mongo.Collection
}

// Connect opens the client and checks the server is reachable.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	clientOptions := options.Client().ApplyURI(cfg.ConnString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	return NewStore(client, cfg.Name, cfg.Transactions), nil
}

func NewStore(client *mongo.Client, dbName string, transactions bool) *Store {
	db := client.Database(dbName)
	return &Store{
		client:       client,
		transactions: transactions,
		users:        db.Collection(usersCollection),
		profiles:     db.Collection(profilesCollection),
		conferences:  db.Collection(conferencesCollection),
		sessions:     db.Collection(sessionsCollection),
		speakers:     db.Collection(speakersCollection),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the queries below rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "login", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.conferences, []mongo.IndexModel{
			{Keys: bson.D{{Key: "organizer_user_id", Value: 1}}},
			{Keys: bson.D{{Key: "seats_available", Value: 1}, {Key: "name", Value: 1}}},
		}},
		{s.sessions, []mongo.IndexModel{
			{Keys: bson.D{{Key: "conference_id", Value: 1}, {Key: "type_of_session", Value: 1}}},
			{Keys: bson.D{{Key: "speaker_key", Value: 1}}},
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateMany(ctx, idx.models); err != nil {
			return fmt.Errorf("cannot create indexes on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

// Transact runs fn inside a multi-document transaction. The driver may run
// fn more than once on transient errors, so fn must re-read what it writes.
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("cannot start db session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading %s from database: %w", coll.Name(), err)
	}

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("server side problem occured while reading %s from database: %w", coll.Name(), err)
	}
	return items, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, notFound string) (*T, error) {
	var item T
	err := coll.FindOne(ctx, filter).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("%s", notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading %s from database: %w", coll.Name(), err)
	}
	return &item, nil
}

func replaceByID(ctx context.Context, coll *mongo.Collection, id any, doc any, upsert bool) error {
	_, err := coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(upsert))
	if err != nil {
		return fmt.Errorf("db error while updating %s: %w", coll.Name(), err)
	}
	return nil
}

func idsFilter[K any](ids []K) bson.D {
	return bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
}

// inOrder arranges items to follow keys, dropping keys with no item.
func inOrder[K comparable, T any](keys []K, items []T, keyOf func(T) K) []T {
	byKey := make(map[K]T, len(items))
	for _, item := range items {
		byKey[keyOf(item)] = item
	}

	ordered := make([]T, 0, len(keys))
	for _, key := range keys {
		if item, ok := byKey[key]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered
}

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}
