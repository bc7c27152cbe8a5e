package cache

import (
	"conference-api/database/dbtest"
	"conference-api/model"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	err = client.Ping(context.Background()).Err()
	require.NoError(t, err)

	return client, mr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefreshAnnouncement(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	store := dbtest.New()
	c := New(client, store, discardLogger())

	t.Run("clears when nothing is nearly sold out", func(t *testing.T) {
		mr.Set(AnnouncementsKey, "stale")

		announcement, err := c.RefreshAnnouncement(ctx)
		require.NoError(t, err)
		assert.Empty(t, announcement)
		assert.False(t, mr.Exists(AnnouncementsKey))

		got, err := c.Announcement(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("lists nearly sold out conferences", func(t *testing.T) {
		for _, conf := range []model.Conference{
			{Name: "Sold Out", SeatsAvailable: 0},
			{Name: "Zeta", SeatsAvailable: 5},
			{Name: "Plenty", SeatsAvailable: 6},
			{Name: "Alpha", SeatsAvailable: 1},
		} {
			conf := conf
			require.NoError(t, store.InsertConference(ctx, &conf))
		}

		announcement, err := c.RefreshAnnouncement(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Last chance to attend! The following conferences are nearly sold out: Alpha, Zeta", announcement)

		got, err := c.Announcement(ctx)
		require.NoError(t, err)
		assert.Equal(t, announcement, got)
	})
}

func TestRefreshFeaturedSpeaker(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	store := dbtest.New()
	c := New(client, store, discardLogger())

	speaker := model.Speaker{SpeakerName: "Grace Hopper"}
	require.NoError(t, store.InsertSpeaker(ctx, &speaker))
	conf := model.Conference{Name: "Go Days"}
	require.NoError(t, store.InsertConference(ctx, &conf))

	first := model.Session{ConferenceId: conf.Id, Name: "Keynote", SpeakerKey: speaker.WebsafeKey()}
	require.NoError(t, store.InsertSession(ctx, &first))

	msg, err := c.RefreshFeaturedSpeaker(ctx, conf.Id, speaker.Id)
	require.NoError(t, err)
	assert.Empty(t, msg, "one session is not enough")
	assert.False(t, mr.Exists(FeaturedSpeakerKey))

	second := model.Session{ConferenceId: conf.Id, Name: "Workshop", SpeakerKey: speaker.WebsafeKey()}
	require.NoError(t, store.InsertSession(ctx, &second))

	msg, err = c.RefreshFeaturedSpeaker(ctx, conf.Id, speaker.Id)
	require.NoError(t, err)
	assert.Equal(t, "The main speaker for this conference is: Grace Hopper", msg)

	got, err := c.FeaturedSpeaker(ctx)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestGetReportsRedisErrors(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()

	c := New(client, dbtest.New(), discardLogger())
	mr.Close()

	_, err := c.Announcement(context.Background())
	assert.Error(t, err)
}
