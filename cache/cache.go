// Package cache holds the announcement and featured speaker strings in Redis
// and recomputes them from the entity store.
package cache

import (
	"conference-api/model"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AnnouncementsKey   = "RECENT_ANNOUNCEMENTS"
	FeaturedSpeakerKey = "SET_SPEAKER"

	// NearlySoldOutSeats is the most seats a conference may have left to
	// be announced as nearly sold out.
	NearlySoldOutSeats = 5
)

// Source is the part of the entity store the cache reads from.
type Source interface {
	ConferencesWithSeatsUpTo(ctx context.Context, maxSeats int) ([]model.Conference, error)
	CountSpeakerSessions(ctx context.Context, confID primitive.ObjectID, speakerKey string) (int64, error)
	GetSpeaker(ctx context.Context, id primitive.ObjectID) (*model.Speaker, error)
}

type Cache struct {
	client redis.Cmdable
	source Source
	logger *slog.Logger
}

func New(client redis.Cmdable, source Source, logger *slog.Logger) *Cache {
	return &Cache{client: client, source: source, logger: logger}
}

// Get returns the cached value or "" when the key is not set.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s from cache: %w", key, err)
	}
	return val, nil
}

func (c *Cache) Announcement(ctx context.Context) (string, error) {
	return c.Get(ctx, AnnouncementsKey)
}

func (c *Cache) FeaturedSpeaker(ctx context.Context) (string, error) {
	return c.Get(ctx, FeaturedSpeakerKey)
}

// RefreshAnnouncement lists the nearly sold out conferences under
// AnnouncementsKey, or clears the key when there are none.
func (c *Cache) RefreshAnnouncement(ctx context.Context) (string, error) {
	confs, err := c.source.ConferencesWithSeatsUpTo(ctx, NearlySoldOutSeats)
	if err != nil {
		return "", err
	}

	if len(confs) == 0 {
		if err := c.client.Del(ctx, AnnouncementsKey).Err(); err != nil {
			return "", fmt.Errorf("failed to clear announcement: %w", err)
		}
		c.logger.Debug("announcement cleared")
		return "", nil
	}

	names := make([]string, 0, len(confs))
	for _, conf := range confs {
		names = append(names, conf.Name)
	}
	announcement := "Last chance to attend! The following conferences are nearly sold out: " +
		strings.Join(names, ", ")

	if err := c.client.Set(ctx, AnnouncementsKey, announcement, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to store announcement: %w", err)
	}
	c.logger.Info("announcement refreshed", "conferences", len(confs))
	return announcement, nil
}

// RefreshFeaturedSpeaker stores the speaker under FeaturedSpeakerKey when
// they give more than one session at the conference. It returns the cached
// sentence, or "" when the speaker does not qualify.
func (c *Cache) RefreshFeaturedSpeaker(ctx context.Context, confID, speakerID primitive.ObjectID) (string, error) {
	count, err := c.source.CountSpeakerSessions(ctx, confID, speakerID.Hex())
	if err != nil {
		return "", err
	}
	if count <= 1 {
		return "", nil
	}

	speaker, err := c.source.GetSpeaker(ctx, speakerID)
	if err != nil {
		return "", err
	}

	msg := "The main speaker for this conference is: " + speaker.SpeakerName
	if err := c.client.Set(ctx, FeaturedSpeakerKey, msg, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to store featured speaker: %w", err)
	}
	c.logger.Info("featured speaker refreshed", "speaker", speakerID.Hex(), "conference", confID.Hex(), "sessions", count)
	return msg, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
