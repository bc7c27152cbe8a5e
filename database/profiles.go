package database

import (
	"conference-api/errors"
	"conference-api/model"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *Store) GetUserData(ctx context.Context, login string) (*model.UserData, error) {
	return findOne[model.UserData](ctx, s.users, bson.D{{Key: "login", Value: login}},
		fmt.Sprintf("no user with login %v", login))
}

func (s *Store) CreateUser(ctx context.Context, user *model.UserData) error {
	if user.Id.IsZero() {
		user.Id = newID()
	}

	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Conflict("login %v is already taken", user.Login)
	}
	if err != nil {
		return fmt.Errorf("db error while creating user: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return findOne[model.Profile](ctx, s.profiles, bson.D{{Key: "_id", Value: userID}},
		fmt.Sprintf("no profile for user %v", userID))
}

func (s *Store) GetProfiles(ctx context.Context, userIDs []string) ([]model.Profile, error) {
	profiles, err := findAll[model.Profile](ctx, s.profiles, idsFilter(userIDs))
	if err != nil {
		return nil, err
	}
	return inOrder(userIDs, profiles, func(p model.Profile) string { return p.UserId }), nil
}

// SaveProfile inserts or replaces the profile.
func (s *Store) SaveProfile(ctx context.Context, profile *model.Profile) error {
	return replaceByID(ctx, s.profiles, profile.UserId, profile, true)
}
