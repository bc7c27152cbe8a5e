package dbtest

import (
	"conference-api/errors"
	"conference-api/model"
	"conference-api/query"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedConferences(t *testing.T, s *Store, confs ...model.Conference) {
	for i := range confs {
		require.NoError(t, s.InsertConference(context.Background(), &confs[i]))
	}
}

func names(confs []model.Conference) []string {
	out := []string{}
	for _, c := range confs {
		out = append(out, c.Name)
	}
	return out
}

func TestQueryConferences(t *testing.T) {
	s := New()
	seedConferences(t, s,
		model.Conference{Name: "Go Days", City: "Berlin", Month: 3, MaxAttendees: 50, Topics: []string{"Go"}},
		model.Conference{Name: "Alpha", City: "Berlin", Month: 6, MaxAttendees: 500, Topics: []string{"Rust", "Go"}},
		model.Conference{Name: "Beta", City: "Paris", Month: 6, MaxAttendees: 10, Topics: []string{"Web"}},
	)

	q, err := query.Build([]model.ConferenceQueryForm{
		{Field: "CITY", Operator: "EQ", Value: "Berlin"},
	})
	require.NoError(t, err)
	got, err := s.QueryConferences(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Go Days"}, names(got))

	q, err = query.Build([]model.ConferenceQueryForm{
		{Field: "MAX_ATTENDEES", Operator: "LT", Value: "100"},
	})
	require.NoError(t, err)
	got, err = s.QueryConferences(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Go Days"}, names(got), "ordered by the inequality field first")

	q, err = query.Build([]model.ConferenceQueryForm{
		{Field: "TOPIC", Operator: "NE", Value: "Go"},
	})
	require.NoError(t, err)
	got, err = s.QueryConferences(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, names(got))
}

func TestTransactRollsBack(t *testing.T) {
	s := New()
	ctx := context.Background()
	conf := model.Conference{Name: "Go Days", SeatsAvailable: 3}
	seedConferences(t, s, conf)
	stored, err := s.ConferencesByOrganizer(ctx, "")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	err = s.Transact(ctx, func(ctx context.Context) error {
		c := stored[0]
		c.SeatsAvailable = 0
		require.NoError(t, s.SaveConference(ctx, &c))
		require.NoError(t, s.SaveProfile(ctx, &model.Profile{UserId: "ann"}))
		return fmt.Errorf("abort")
	})
	assert.EqualError(t, err, "abort")

	got, err := s.GetConference(ctx, stored[0].Id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.SeatsAvailable)
	_, err = s.GetProfile(ctx, "ann")
	assert.True(t, errors.IsNotFound(err))
}

func TestCreateUserRejectsDuplicateLogin(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &model.UserData{Login: "ann"}))
	err := s.CreateUser(ctx, &model.UserData{Login: "ann"})
	assert.Equal(t, errors.KindConflict, errors.KindOf(err))
}
