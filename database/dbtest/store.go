// Package dbtest provides an in-memory store with the same behaviour as the
// mongo store, for tests that should not need a running database.
package dbtest

import (
	"conference-api/errors"
	"conference-api/model"
	"conference-api/query"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data state

	// FailNext, when set, is returned by the next write and then cleared.
	FailNext error
}

type state struct {
	users       map[string]model.UserData
	profiles    map[string]model.Profile
	conferences map[primitive.ObjectID]model.Conference
	sessions    map[primitive.ObjectID]model.Session
	speakers    map[primitive.ObjectID]model.Speaker
}

func New() *Store {
	return &Store{data: state{
		users:       map[string]model.UserData{},
		profiles:    map[string]model.Profile{},
		conferences: map[primitive.ObjectID]model.Conference{},
		sessions:    map[primitive.ObjectID]model.Session{},
		speakers:    map[primitive.ObjectID]model.Speaker{},
	}}
}

func (s state) clone() state {
	c := state{
		users:       make(map[string]model.UserData, len(s.users)),
		profiles:    make(map[string]model.Profile, len(s.profiles)),
		conferences: make(map[primitive.ObjectID]model.Conference, len(s.conferences)),
		sessions:    make(map[primitive.ObjectID]model.Session, len(s.sessions)),
		speakers:    make(map[primitive.ObjectID]model.Speaker, len(s.speakers)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = copyProfile(v)
	}
	for k, v := range s.conferences {
		c.conferences[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.speakers {
		c.speakers[k] = v
	}
	return c
}

func copyProfile(p model.Profile) model.Profile {
	p.ConferenceKeysToAttend = append([]string(nil), p.ConferenceKeysToAttend...)
	p.SessionWishlist = append([]string(nil), p.SessionWishlist...)
	return p
}

func (s *Store) failure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Transact serializes transactions and rolls every change back when fn
// fails.
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) GetUserData(ctx context.Context, login string) (*model.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.data.users[login]
	if !ok {
		return nil, errors.NotFound("no user with login %v", login)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(); err != nil {
		return err
	}
	if _, ok := s.data.users[user.Login]; ok {
		return errors.Conflict("login %v is already taken", user.Login)
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	s.data.users[user.Login] = *user
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.data.profiles[userID]
	if !ok {
		return nil, errors.NotFound("no profile for user %v", userID)
	}
	profile = copyProfile(profile)
	return &profile, nil
}

func (s *Store) GetProfiles(ctx context.Context, userIDs []string) ([]model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := []model.Profile{}
	for _, id := range userIDs {
		if p, ok := s.data.profiles[id]; ok {
			profiles = append(profiles, copyProfile(p))
		}
	}
	return profiles, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(); err != nil {
		return err
	}
	s.data.profiles[profile.UserId] = copyProfile(*profile)
	return nil
}

func (s *Store) InsertConference(ctx context.Context, conf *model.Conference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(); err != nil {
		return err
	}
	if conf.Id.IsZero() {
		conf.Id = primitive.NewObjectID()
	}
	s.data.conferences[conf.Id] = *conf
	return nil
}

func (s *Store) GetConference(ctx context.Context, id primitive.ObjectID) (*model.Conference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conf, ok := s.data.conferences[id]
	if !ok {
		return nil, errors.NotFound("No conference found with key: %v", id.Hex())
	}
	return &conf, nil
}

func (s *Store) GetConferences(ctx context.Context, ids []primitive.ObjectID) ([]model.Conference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conferences := []model.Conference{}
	for _, id := range ids {
		if c, ok := s.data.conferences[id]; ok {
			conferences = append(conferences, c)
		}
	}
	return conferences, nil
}

func (s *Store) SaveConference(ctx context.Context, conf *model.Conference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(); err != nil {
		return err
	}
	if _, ok := s.data.conferences[conf.Id]; !ok {
		return fmt.Errorf("db error while updating conferences: no document %v", conf.Id.Hex())
	}
	s.data.conferences[conf.Id] = *conf
	return nil
}

func (s *Store) ConferencesByOrganizer(ctx context.Context, userID string) ([]model.Conference, error) {
	return s.filterConferences(func(c model.Conference) bool { return c.OrganizerUserId == userID }, []string{"name"}), nil
}

func (s *Store) QueryConferences(ctx context.Context, q query.Query) ([]model.Conference, error) {
	return s.filterConferences(func(c model.Conference) bool {
		for _, f := range q.Filters {
			if !matches(c, f) {
				return false
			}
		}
		return true
	}, q.Order), nil
}

func (s *Store) ConferencesWithSeatsUpTo(ctx context.Context, maxSeats int) ([]model.Conference, error) {
	return s.filterConferences(func(c model.Conference) bool {
		return c.SeatsAvailable > 0 && c.SeatsAvailable <= maxSeats
	}, []string{"name"}), nil
}

func (s *Store) filterConferences(keep func(model.Conference) bool, order []string) []model.Conference {
	s.mu.Lock()
	defer s.mu.Unlock()
	conferences := []model.Conference{}
	for _, c := range s.data.conferences {
		if keep(c) {
			conferences = append(conferences, c)
		}
	}
	sort.SliceStable(conferences, func(i, j int) bool {
		for _, field := range order {
			if cmp := compareField(conferences[i], conferences[j], field); cmp != 0 {
				return cmp < 0
			}
		}
		return conferences[i].Id.Hex() < conferences[j].Id.Hex()
	})
	return conferences
}

func (s *Store) InsertSpeaker(ctx context.Context, speaker *model.Speaker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(); err != nil {
		return err
	}
	if speaker.Id.IsZero() {
		speaker.Id = primitive.NewObjectID()
	}
	s.data.speakers[speaker.Id] = *speaker
	return nil
}

func (s *Store) GetSpeaker(ctx context.Context, id primitive.ObjectID) (*model.Speaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker, ok := s.data.speakers[id]
	if !ok {
		return nil, errors.NotFound("No speaker found with key: %v", id.Hex())
	}
	return &speaker, nil
}

func (s *Store) GetSpeakers(ctx context.Context, ids []primitive.ObjectID) ([]model.Speaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	speakers := []model.Speaker{}
	for _, id := range ids {
		if sp, ok := s.data.speakers[id]; ok {
			speakers = append(speakers, sp)
		}
	}
	return speakers, nil
}

func (s *Store) ListSpeakers(ctx context.Context) ([]model.Speaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	speakers := []model.Speaker{}
	for _, sp := range s.data.speakers {
		speakers = append(speakers, sp)
	}
	sort.Slice(speakers, func(i, j int) bool { return speakers[i].SpeakerName < speakers[j].SpeakerName })
	return speakers, nil
}

func (s *Store) InsertSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(); err != nil {
		return err
	}
	if session.Id.IsZero() {
		session.Id = primitive.NewObjectID()
	}
	s.data.sessions[session.Id] = *session
	return nil
}

func (s *Store) GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.data.sessions[id]
	if !ok {
		return nil, errors.NotFound("No session found with key: %v", id.Hex())
	}
	return &session, nil
}

func (s *Store) GetSessions(ctx context.Context, ids []primitive.ObjectID) ([]model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := []model.Session{}
	for _, id := range ids {
		if sess, ok := s.data.sessions[id]; ok {
			sessions = append(sessions, sess)
		}
	}
	return sessions, nil
}

func (s *Store) SessionsByConference(ctx context.Context, confID primitive.ObjectID, typeOfSession string) ([]model.Session, error) {
	return s.filterSessions(func(sess model.Session) bool {
		return sess.ConferenceId == confID && (typeOfSession == "" || sess.TypeOfSession == typeOfSession)
	}), nil
}

func (s *Store) SessionsBySpeaker(ctx context.Context, speakerKey string) ([]model.Session, error) {
	return s.filterSessions(func(sess model.Session) bool { return sess.SpeakerKey == speakerKey }), nil
}

func (s *Store) SessionsExcludingTypeBefore(ctx context.Context, typeOfSession, before string) ([]model.Session, error) {
	return s.filterSessions(func(sess model.Session) bool {
		return sess.TypeOfSession != typeOfSession && sess.StartTime != "" && sess.StartTime < before
	}), nil
}

func (s *Store) CountSpeakerSessions(ctx context.Context, confID primitive.ObjectID, speakerKey string) (int64, error) {
	sessions := s.filterSessions(func(sess model.Session) bool {
		return sess.ConferenceId == confID && sess.SpeakerKey == speakerKey
	})
	return int64(len(sessions)), nil
}

func (s *Store) SpeakerKeysByConference(ctx context.Context, confID primitive.ObjectID) ([]string, error) {
	seen := map[string]bool{}
	keys := []string{}
	for _, sess := range s.filterSessions(func(sess model.Session) bool { return sess.ConferenceId == confID }) {
		if sess.SpeakerKey != "" && !seen[sess.SpeakerKey] {
			seen[sess.SpeakerKey] = true
			keys = append(keys, sess.SpeakerKey)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) filterSessions(keep func(model.Session) bool) []model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := []model.Session{}
	for _, sess := range s.data.sessions {
		if keep(sess) {
			sessions = append(sessions, sess)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Id.Hex() < b.Id.Hex()
	})
	return sessions
}

func matches(c model.Conference, f query.Filter) bool {
	if f.Field == "topics" {
		// a list field matches when any element does, except for "!="
		// which requires that no element is equal
		if f.Operator == query.OpNotEqual {
			return !matches(c, query.Filter{Field: f.Field, Operator: query.OpEqual, Value: f.Value})
		}
		for _, topic := range c.Topics {
			if compare(strings.Compare(topic, fmt.Sprint(f.Value)), f.Operator) {
				return true
			}
		}
		return false
	}

	switch v := f.Value.(type) {
	case int:
		return compare(compareInt(intField(c, f.Field), v), f.Operator)
	default:
		return compare(strings.Compare(c.City, fmt.Sprint(v)), f.Operator)
	}
}

func intField(c model.Conference, field string) int {
	switch field {
	case "month":
		return c.Month
	case "max_attendees":
		return c.MaxAttendees
	case "seats_available":
		return c.SeatsAvailable
	}
	return 0
}

func compareField(a, b model.Conference, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "city":
		return strings.Compare(a.City, b.City)
	case "topics":
		return strings.Compare(strings.Join(a.Topics, ","), strings.Join(b.Topics, ","))
	default:
		return compareInt(intField(a, field), intField(b, field))
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compare(cmp int, operator string) bool {
	switch operator {
	case query.OpEqual:
		return cmp == 0
	case query.OpNotEqual:
		return cmp != 0
	case query.OpGreater:
		return cmp > 0
	case query.OpGreaterEqual:
		return cmp >= 0
	case query.OpLess:
		return cmp < 0
	case query.OpLessEqual:
		return cmp <= 0
	}
	return false
}
