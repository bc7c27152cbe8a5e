// Package service implements the conference API operations on top of the
// entity store, the derived-value cache and the task queue.
package service

import (
	"conference-api/errors"
	"conference-api/model"
	"conference-api/query"
	"conference-api/tasks"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the entity store. database.Store is the production
// implementation.
type Store interface {
	Ping(ctx context.Context) error
	Transact(ctx context.Context, fn func(ctx context.Context) error) error

	GetUserData(ctx context.Context, login string) (*model.UserData, error)
	CreateUser(ctx context.Context, user *model.UserData) error

	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	GetProfiles(ctx context.Context, userIDs []string) ([]model.Profile, error)
	SaveProfile(ctx context.Context, profile *model.Profile) error

	InsertConference(ctx context.Context, conf *model.Conference) error
	GetConference(ctx context.Context, id primitive.ObjectID) (*model.Conference, error)
	GetConferences(ctx context.Context, ids []primitive.ObjectID) ([]model.Conference, error)
	SaveConference(ctx context.Context, conf *model.Conference) error
	ConferencesByOrganizer(ctx context.Context, userID string) ([]model.Conference, error)
	QueryConferences(ctx context.Context, q query.Query) ([]model.Conference, error)
	ConferencesWithSeatsUpTo(ctx context.Context, maxSeats int) ([]model.Conference, error)

	InsertSpeaker(ctx context.Context, speaker *model.Speaker) error
	GetSpeaker(ctx context.Context, id primitive.ObjectID) (*model.Speaker, error)
	GetSpeakers(ctx context.Context, ids []primitive.ObjectID) ([]model.Speaker, error)
	ListSpeakers(ctx context.Context) ([]model.Speaker, error)

	InsertSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error)
	GetSessions(ctx context.Context, ids []primitive.ObjectID) ([]model.Session, error)
	SessionsByConference(ctx context.Context, confID primitive.ObjectID, typeOfSession string) ([]model.Session, error)
	SessionsBySpeaker(ctx context.Context, speakerKey string) ([]model.Session, error)
	SessionsExcludingTypeBefore(ctx context.Context, typeOfSession, before string) ([]model.Session, error)
	CountSpeakerSessions(ctx context.Context, confID primitive.ObjectID, speakerKey string) (int64, error)
	SpeakerKeysByConference(ctx context.Context, confID primitive.ObjectID) ([]string, error)
}

// Cache is the derived-value cache. cache.Cache is the production
// implementation.
type Cache interface {
	Ping(ctx context.Context) error
	Announcement(ctx context.Context) (string, error)
	FeaturedSpeaker(ctx context.Context) (string, error)
	RefreshAnnouncement(ctx context.Context) (string, error)
	RefreshFeaturedSpeaker(ctx context.Context, confID, speakerID primitive.ObjectID) (string, error)
}

// User is the authenticated caller.
type User struct {
	ID    string
	Email string
	Name  string
}

type Service struct {
	store    Store
	cache    Cache
	tasks    tasks.Enqueuer
	validate *validator.Validate
	logger   *slog.Logger
}

func New(store Store, cache Cache, enqueuer tasks.Enqueuer, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		tasks:    enqueuer,
		validate: validator.New(),
		logger:   logger,
	}
}

// Ping checks the store and the cache are reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("db is not available: %w", err)
	}
	if err := s.cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache is not available: %w", err)
	}
	return nil
}

func requireUser(user User) error {
	if strings.TrimSpace(user.ID) == "" {
		return errors.Unauthorized("Authorization required")
	}
	return nil
}

func (s *Service) validateForm(form any) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.BadRequest("invalid input: %v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.BadRequest("invalid input: %s", strings.Join(msgs, "; "))
}

// enqueue defers a task. The write the task follows has already happened,
// so a failure is only logged.
func (s *Service) enqueue(ctx context.Context, name string, params map[string]string) {
	if err := s.tasks.Enqueue(ctx, name, params); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue task", "task", name, "error", err)
	}
}
