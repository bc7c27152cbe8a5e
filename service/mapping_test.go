package service

import (
	"conference-api/errors"
	"conference-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseKey(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := parseKey(" "+id.Hex()+" ", "conference")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseKey("not-a-key", "session")
	assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
	assert.EqualError(t, err, "Invalid session key: not-a-key")

	assert.Len(t, parseKeys([]string{id.Hex(), "junk"}), 1)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-05-04T10:00:00.000Z", "start_date")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-04", formatDate(d))
	assert.Equal(t, 5, monthOf(d))

	d, err = parseDate("", "start_date")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, 0, monthOf(d))

	_, err = parseDate("04/05/2026", "start_date")
	assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
}

func TestRegisterMutators(t *testing.T) {
	conf := &model.Conference{Id: primitive.NewObjectID(), SeatsAvailable: 1}
	prof := &model.Profile{UserId: "bob"}

	require.NoError(t, register(prof, conf))
	assert.Equal(t, 0, conf.SeatsAvailable)
	assert.True(t, prof.IsAttending(conf.WebsafeKey()))

	assert.Error(t, register(prof, conf))

	other := &model.Profile{UserId: "carol"}
	err := register(other, conf)
	assert.EqualError(t, err, "There are no seats available.")
	assert.Equal(t, 0, conf.SeatsAvailable)

	assert.True(t, unregister(prof, conf))
	assert.Equal(t, 1, conf.SeatsAvailable)
	assert.False(t, unregister(prof, conf))
	assert.Equal(t, 1, conf.SeatsAvailable)
}

func TestWishlistMutators(t *testing.T) {
	prof := &model.Profile{UserId: "bob"}
	require.NoError(t, addToWishlist(prof, "k1"))
	assert.Equal(t, errors.KindConflict, errors.KindOf(addToWishlist(prof, "k1")))
	require.NoError(t, removeFromWishlist(prof, "k1"))
	assert.Empty(t, prof.SessionWishlist)
	assert.Equal(t, errors.KindConflict, errors.KindOf(removeFromWishlist(prof, "k1")))
}
