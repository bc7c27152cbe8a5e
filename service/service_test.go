package service

import (
	"conference-api/cache"
	"conference-api/database/dbtest"
	"conference-api/errors"
	"conference-api/mailer"
	"conference-api/model"
	"conference-api/tasks"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = User{ID: "alice", Email: "alice@example.com", Name: "Alice"}
	bob   = User{ID: "bob", Email: "bob@example.com", Name: "Bob"}
)

type testEnv struct {
	svc   *Service
	store *dbtest.Store
	queue *tasks.Queue
	mr    *miniredis.Miniredis
	redis *redis.Client
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	store := dbtest.New()
	queue := tasks.NewQueue(client)
	svc := New(store, cache.New(client, store, discardLogger()), queue, discardLogger())
	return &testEnv{svc: svc, store: store, queue: queue, mr: mr, redis: client}
}

func (e *testEnv) createConference(t *testing.T, user User, form model.ConferenceForm) model.ConferenceForm {
	conf, err := e.svc.CreateConference(context.Background(), user, form)
	require.NoError(t, err)
	return conf
}

type recordingSender struct {
	sent []mailer.Message
}

func (r *recordingSender) Send(ctx context.Context, msg mailer.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestCreateConference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("fills in defaults", func(t *testing.T) {
		conf := env.createConference(t, alice, model.ConferenceForm{
			Name:         "  Go Days ",
			StartDate:    "2026-03-10T00:00:00",
			EndDate:      "2026-03-12",
			MaxAttendees: intPtr(50),
		})

		assert.Equal(t, "Go Days", conf.Name)
		assert.Equal(t, "Default City", conf.City)
		assert.Equal(t, []string{"Default", "Topic"}, conf.Topics)
		assert.Equal(t, 3, conf.Month)
		assert.Equal(t, "2026-03-10", conf.StartDate)
		assert.Equal(t, 50, *conf.SeatsAvailable)
		assert.Equal(t, "alice", conf.OrganizerUserId)
		assert.Equal(t, "Alice", conf.OrganizerDisplayName)
		assert.NotEmpty(t, conf.WebsafeKey)
	})

	t.Run("queues a confirmation email", func(t *testing.T) {
		n, err := env.queue.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := env.svc.CreateConference(ctx, alice, model.ConferenceForm{City: "Berlin"})
		assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
		assert.EqualError(t, err, "Conference 'name' field required")
	})

	t.Run("requires a user", func(t *testing.T) {
		_, err := env.svc.CreateConference(ctx, User{}, model.ConferenceForm{Name: "x"})
		assert.Equal(t, errors.KindUnauthorized, errors.KindOf(err))
	})

	t.Run("rejects an end before the start", func(t *testing.T) {
		_, err := env.svc.CreateConference(ctx, alice, model.ConferenceForm{
			Name:      "Backwards",
			StartDate: "2026-03-10",
			EndDate:   "2026-03-01",
		})
		assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
	})

	t.Run("rejects negative seats", func(t *testing.T) {
		_, err := env.svc.CreateConference(ctx, alice, model.ConferenceForm{Name: "Neg", MaxAttendees: intPtr(-1)})
		assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
	})
}

func TestUpdateConference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	conf := env.createConference(t, alice, model.ConferenceForm{Name: "Go Days", City: "Berlin", MaxAttendees: intPtr(10)})

	t.Run("only the owner", func(t *testing.T) {
		_, err := env.svc.UpdateConference(ctx, bob, conf.WebsafeKey, model.ConferenceForm{City: "Paris"})
		assert.Equal(t, errors.KindForbidden, errors.KindOf(err))
		assert.EqualError(t, err, "Only the owner can update the conference.")
	})

	t.Run("copies present fields", func(t *testing.T) {
		updated, err := env.svc.UpdateConference(ctx, alice, conf.WebsafeKey, model.ConferenceForm{
			City:      "Paris",
			StartDate: "2026-07-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "Go Days", updated.Name)
		assert.Equal(t, "Paris", updated.City)
		assert.Equal(t, 7, updated.Month)
		assert.Equal(t, 10, *updated.MaxAttendees)
	})

	t.Run("bad key", func(t *testing.T) {
		_, err := env.svc.UpdateConference(ctx, alice, "nope", model.ConferenceForm{})
		assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
	})

	t.Run("missing conference", func(t *testing.T) {
		_, err := env.svc.UpdateConference(ctx, alice, "64b7f0c2a1b2c3d4e5f60718", model.ConferenceForm{})
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func TestRegistration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	conf := env.createConference(t, alice, model.ConferenceForm{Name: "Tiny", MaxAttendees: intPtr(1)})

	msg, err := env.svc.RegisterForConference(ctx, bob, conf.WebsafeKey)
	require.NoError(t, err)
	assert.True(t, msg.Data)

	got, err := env.svc.GetConference(ctx, conf.WebsafeKey)
	require.NoError(t, err)
	assert.Equal(t, 0, *got.SeatsAvailable)

	_, err = env.svc.RegisterForConference(ctx, bob, conf.WebsafeKey)
	assert.EqualError(t, err, "You have already registered for this conference")

	_, err = env.svc.RegisterForConference(ctx, alice, conf.WebsafeKey)
	assert.Equal(t, errors.KindConflict, errors.KindOf(err))
	assert.EqualError(t, err, "There are no seats available.")

	attending, err := env.svc.ConferencesToAttend(ctx, bob)
	require.NoError(t, err)
	require.Len(t, attending.Items, 1)
	assert.Equal(t, "Alice", attending.Items[0].OrganizerDisplayName)

	msg, err = env.svc.UnregisterFromConference(ctx, bob, conf.WebsafeKey)
	require.NoError(t, err)
	assert.True(t, msg.Data)

	msg, err = env.svc.UnregisterFromConference(ctx, bob, conf.WebsafeKey)
	require.NoError(t, err)
	assert.False(t, msg.Data)

	got, err = env.svc.GetConference(ctx, conf.WebsafeKey)
	require.NoError(t, err)
	assert.Equal(t, 1, *got.SeatsAvailable)
}

func TestRegistrationFailedWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	conf := env.createConference(t, alice, model.ConferenceForm{Name: "Go Days", MaxAttendees: intPtr(5)})
	_, err := env.svc.GetProfile(ctx, bob)
	require.NoError(t, err)

	env.store.FailNext = assert.AnError
	_, err = env.svc.RegisterForConference(ctx, bob, conf.WebsafeKey)
	require.ErrorIs(t, err, assert.AnError)

	prof, err := env.svc.GetProfile(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, prof.ConferenceKeysToAttend)
	got, err := env.svc.GetConference(ctx, conf.WebsafeKey)
	require.NoError(t, err)
	assert.Equal(t, 5, *got.SeatsAvailable)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	prof, err := env.svc.GetProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", prof.DisplayName)
	assert.Equal(t, "alice@example.com", prof.MainEmail)
	assert.Equal(t, model.TeeShirtNotSpecified, prof.TeeShirtSize)
	assert.Empty(t, prof.ConferenceKeysToAttend)

	prof, err = env.svc.SaveProfile(ctx, alice, model.ProfileMiniForm{TeeShirtSize: "M_M"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", prof.DisplayName)
	assert.Equal(t, "M_M", prof.TeeShirtSize)

	_, err = env.svc.SaveProfile(ctx, alice, model.ProfileMiniForm{TeeShirtSize: "HUGE"})
	assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
}

func TestSignupAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	prof, err := env.svc.Signup(ctx, model.SignupForm{
		Login:       "carol",
		Password:    "correct horse",
		Email:       "carol@example.com",
		DisplayName: "Carol",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carol", prof.DisplayName)

	_, err = env.svc.Signup(ctx, model.SignupForm{Login: "carol", Password: "another one", Email: "c@example.com"})
	assert.Equal(t, errors.KindConflict, errors.KindOf(err))

	_, err = env.svc.Signup(ctx, model.SignupForm{Login: "dave", Password: "short", Email: "d@example.com"})
	assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))

	account, err := env.svc.Authenticate(ctx, model.Credentials{Login: "carol", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, User{ID: "carol", Email: "carol@example.com", Name: "Carol"}, UserFromAccount(*account))

	_, err = env.svc.Authenticate(ctx, model.Credentials{Login: "carol", Password: "wrong password"})
	assert.Equal(t, errors.KindUnauthorized, errors.KindOf(err))

	_, err = env.svc.Authenticate(ctx, model.Credentials{Login: "nobody", Password: "whatever"})
	assert.Equal(t, errors.KindUnauthorized, errors.KindOf(err))
}

func TestQueryConferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createConference(t, alice, model.ConferenceForm{Name: "Go Days", City: "Berlin", MaxAttendees: intPtr(50)})
	env.createConference(t, bob, model.ConferenceForm{Name: "Web Week", City: "Paris", MaxAttendees: intPtr(500)})

	got, err := env.svc.QueryConferences(ctx, model.ConferenceQueryForms{Filters: []model.ConferenceQueryForm{
		{Field: "CITY", Operator: "EQ", Value: "Paris"},
	}})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Web Week", got.Items[0].Name)
	assert.Equal(t, "Bob", got.Items[0].OrganizerDisplayName)

	all, err := env.svc.QueryConferences(ctx, model.ConferenceQueryForms{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = env.svc.QueryConferences(ctx, model.ConferenceQueryForms{Filters: []model.ConferenceQueryForm{
		{Field: "CITY", Operator: "GT", Value: "A"},
		{Field: "MAX_ATTENDEES", Operator: "LT", Value: "10"},
	}})
	assert.EqualError(t, err, "Inequality filter is allowed on only one field.")

	created, err := env.svc.ConferencesCreated(ctx, alice)
	require.NoError(t, err)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "Go Days", created.Items[0].Name)
}

func TestSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	conf := env.createConference(t, alice, model.ConferenceForm{Name: "Go Days"})
	speaker, err := env.svc.AddSpeaker(ctx, alice, model.SpeakerForm{SpeakerName: "Rob"})
	require.NoError(t, err)

	t.Run("only the owner adds sessions", func(t *testing.T) {
		_, err := env.svc.CreateSession(ctx, bob, conf.WebsafeKey, model.SessionForm{Name: "Intro"})
		assert.EqualError(t, err, "Only owner can add sessions.")
	})

	t.Run("unknown conference", func(t *testing.T) {
		_, err := env.svc.CreateSession(ctx, alice, "64b7f0c2a1b2c3d4e5f60718", model.SessionForm{Name: "Intro"})
		assert.EqualError(t, err, "No conference found.")
	})

	t.Run("unknown speaker", func(t *testing.T) {
		_, err := env.svc.CreateSession(ctx, alice, conf.WebsafeKey, model.SessionForm{Name: "Intro", SpeakerKey: "64b7f0c2a1b2c3d4e5f60718"})
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})

	keynote, err := env.svc.CreateSession(ctx, alice, conf.WebsafeKey, model.SessionForm{
		Name:          "Keynote",
		SpeakerKey:    speaker.WebsafeKey,
		TypeOfSession: "keynote",
		StartDate:     "2026-03-10",
		StartTime:     "9:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "Go Days", keynote.ConferenceName)
	assert.Equal(t, "Rob", keynote.SpeakerName)
	assert.Equal(t, "09:30", keynote.StartTime)

	_, err = env.svc.CreateSession(ctx, alice, conf.WebsafeKey, model.SessionForm{
		Name:          "Hands on",
		SpeakerKey:    speaker.WebsafeKey,
		TypeOfSession: "workshop",
		StartTime:     "14:00",
	})
	require.NoError(t, err)
	_, err = env.svc.CreateSession(ctx, alice, conf.WebsafeKey, model.SessionForm{
		Name:          "Late talk",
		TypeOfSession: "talk",
		StartTime:     "20:00",
	})
	require.NoError(t, err)

	all, err := env.svc.ConferenceSessions(ctx, conf.WebsafeKey, "")
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	workshops, err := env.svc.ConferenceSessions(ctx, conf.WebsafeKey, "workshop")
	require.NoError(t, err)
	require.Len(t, workshops.Items, 1)
	assert.Equal(t, "Hands on", workshops.Items[0].Name)

	bySpeaker, err := env.svc.SessionsBySpeaker(ctx, speaker.WebsafeKey)
	require.NoError(t, err)
	assert.Len(t, bySpeaker.Items, 2)

	early, err := env.svc.SessionsExcludingTypeBefore(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, early.Items, 1)
	assert.Equal(t, "Keynote", early.Items[0].Name)

	_, err = env.svc.SessionsExcludingTypeBefore(ctx, "talk", "7pm")
	assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))

	got, err := env.svc.GetSession(ctx, keynote.WebsafeSessionKey)
	require.NoError(t, err)
	assert.Equal(t, keynote, got)

	speakers, err := env.svc.SpeakersByConference(ctx, conf.WebsafeKey)
	require.NoError(t, err)
	require.Len(t, speakers.Items, 1)
	assert.Equal(t, "Rob", speakers.Items[0].SpeakerName)
}

func TestWishlist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	conf := env.createConference(t, alice, model.ConferenceForm{Name: "Go Days"})
	sess, err := env.svc.CreateSession(ctx, alice, conf.WebsafeKey, model.SessionForm{Name: "Keynote"})
	require.NoError(t, err)

	_, err = env.svc.AddSessionToWishlist(ctx, bob, "64b7f0c2a1b2c3d4e5f60718")
	assert.EqualError(t, err, "No session found.")

	msg, err := env.svc.AddSessionToWishlist(ctx, bob, sess.WebsafeSessionKey)
	require.NoError(t, err)
	assert.True(t, msg.Data)

	_, err = env.svc.AddSessionToWishlist(ctx, bob, sess.WebsafeSessionKey)
	assert.EqualError(t, err, "Session already in wishlist.")

	list, err := env.svc.SessionsInWishlist(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Go Days", list.Items[0].ConferenceName)

	msg, err = env.svc.DeleteSessionFromWishlist(ctx, bob, sess.WebsafeSessionKey)
	require.NoError(t, err)
	assert.True(t, msg.Data)

	_, err = env.svc.DeleteSessionFromWishlist(ctx, bob, sess.WebsafeSessionKey)
	assert.EqualError(t, err, "Session not in wishlist.")
}

func TestTaskHandlers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := &recordingSender{}
	worker := tasks.NewWorker(env.queue, 10*time.Millisecond, discardLogger())
	env.svc.RegisterTaskHandlers(worker, sender)

	conf := env.createConference(t, alice, model.ConferenceForm{Name: "Go Days", City: "Berlin"})
	speaker, err := env.svc.AddSpeaker(ctx, alice, model.SpeakerForm{SpeakerName: "Rob"})
	require.NoError(t, err)
	for _, name := range []string{"Keynote", "Closing"} {
		_, err := env.svc.CreateSession(ctx, alice, conf.WebsafeKey, model.SessionForm{Name: name, SpeakerKey: speaker.WebsafeKey})
		require.NoError(t, err)
	}

	for {
		processed, err := worker.ProcessOne(ctx)
		require.NoError(t, err)
		if !processed {
			break
		}
	}

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "Name: Go Days")

	featured, err := env.svc.FeaturedSpeaker(ctx)
	require.NoError(t, err)
	assert.Equal(t, "The main speaker for this conference is: Rob", featured.Data)
}

func TestAnnouncement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	msg, err := env.svc.Announcement(ctx)
	require.NoError(t, err)
	assert.Empty(t, msg.Data)

	env.createConference(t, alice, model.ConferenceForm{Name: "Tiny", MaxAttendees: intPtr(3)})
	_, err = env.svc.cache.RefreshAnnouncement(ctx)
	require.NoError(t, err)

	msg, err = env.svc.Announcement(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Last chance to attend! The following conferences are nearly sold out: Tiny", msg.Data)
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.Ping(context.Background()))

	env.mr.Close()
	assert.Error(t, env.svc.Ping(context.Background()))
}
