//go:build integration_test || all_tests

package test

import (
	"context"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/macros"
	"github.com/2beens/gymstats/internal/gymstats/store"
	"github.com/2beens/gymstats/internal/gymstats/workout"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredSession(userID string, date time.Time) *workout.Session {
	session := &workout.Session{
		ID:        gofakeit.UUID(),
		UserID:    userID,
		Label:     gofakeit.Word(),
		Date:      date,
		State:     workout.StateOpen,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Exercises: []workout.Exercise{
			workout.NewExercise("bench press", 2, []int{10, 8}, []float64{50, 60}),
			workout.NewExercise("pull up", 3, []int{8, 8, 6}, []float64{0, 0, 0}),
		},
	}
	session.RecomputeVolume()
	return session
}

// assertStoreContract runs the same scenario against every workout.Store backed by a real database.
func (s *IntegrationTestSuite) assertStoreContract(ctx context.Context, st workout.Store) {
	t := s.T()
	userID := gofakeit.UUID()
	day := time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)

	later := newStoredSession(userID, day.AddDate(0, 0, 2))
	earlier := newStoredSession(userID, day)
	other := newStoredSession(gofakeit.UUID(), day)
	require.NoError(t, st.Create(ctx, later))
	require.NoError(t, st.Create(ctx, earlier))
	require.NoError(t, st.Create(ctx, other))

	assert.Error(t, st.Create(ctx, earlier), "duplicate id must be rejected")

	found, err := st.FindByID(ctx, earlier.ID)
	require.NoError(t, err)
	assert.Equal(t, earlier.UserID, found.UserID)
	assert.Equal(t, earlier.Label, found.Label)
	assert.True(t, earlier.Date.Equal(found.Date))
	require.Len(t, found.Exercises, 2)
	assert.Equal(t, []int{10, 8}, found.Exercises[0].Reps)
	assert.Equal(t, []float64{50, 60}, found.Exercises[0].Weights)
	assert.Equal(t, 980.0, found.TotalVolume())
	assert.Equal(t, 0.0, found.Exercises[1].Volume())

	sessions, err := st.FindAllByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, earlier.ID, sessions[0].ID)
	assert.Equal(t, later.ID, sessions[1].ID)

	loggedAt := time.Now().UTC().Truncate(time.Millisecond)
	found.State = workout.StateLogged
	found.LoggedAt = &loggedAt
	found.Exercises = found.Exercises[:1]
	found.RecomputeVolume()
	require.NoError(t, st.Update(ctx, found))

	updated, err := st.FindByID(ctx, earlier.ID)
	require.NoError(t, err)
	assert.Equal(t, workout.StateLogged, updated.State)
	require.NotNil(t, updated.LoggedAt)
	assert.True(t, loggedAt.Equal(*updated.LoggedAt))
	assert.Equal(t, time.UTC, updated.LoggedAt.Location())
	assert.Equal(t, time.UTC, updated.Date.Location())
	require.Len(t, updated.Exercises, 1)
	assert.Equal(t, 980.0, updated.TotalVolume())

	require.NoError(t, st.DeleteByID(ctx, earlier.ID))
	_, err = st.FindByID(ctx, earlier.ID)
	assert.ErrorIs(t, err, workout.ErrSessionNotFound)
	assert.ErrorIs(t, st.DeleteByID(ctx, earlier.ID), workout.ErrSessionNotFound)
	assert.ErrorIs(t, st.Update(ctx, earlier), workout.ErrSessionNotFound)

	sessions, err = st.FindAllByUser(ctx, gofakeit.UUID())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

// assertProfileStoreContract checks the one-profile-per-user upsert of a macros.Store.
func (s *IntegrationTestSuite) assertProfileStoreContract(ctx context.Context, profiles macros.Store) {
	t := s.T()
	userID := gofakeit.UUID()

	_, err := profiles.FindByUser(ctx, userID)
	assert.ErrorIs(t, err, macros.ErrProfileNotFound)

	profile := macros.Profile{
		UserID: userID, WeightKg: 80.5, HeightCm: 180, Age: 30,
		Gender: macros.Male, ActivityLevel: macros.Moderate, Goal: macros.Maintain,
	}
	record, err := macros.NewRecord(profile, time.Now().Truncate(time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, profiles.Save(ctx, record))

	found, err := profiles.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, record.Profile, found.Profile)
	assert.Equal(t, record.Targets, found.Targets)
	assert.True(t, record.UpdatedAt.Equal(found.UpdatedAt))
	assert.Equal(t, time.UTC, found.UpdatedAt.Location())

	profile.Goal = macros.Gain
	updated, err := macros.NewRecord(profile, time.Now().Truncate(time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, profiles.Save(ctx, updated))

	found, err = profiles.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, macros.Gain, found.Profile.Goal)
	assert.Equal(t, updated.Targets, found.Targets)
	assert.Greater(t, found.Targets.Calories, record.Targets.Calories)
}

func (s *IntegrationTestSuite) TestPostgresStore() {
	ctx := context.Background()
	s.assertStoreContract(ctx, store.NewPostgresStore(s.dbPool))
	s.assertProfileStoreContract(ctx, store.NewPostgresProfileStore(s.dbPool))
}

func (s *IntegrationTestSuite) TestMongoStore() {
	ctx := context.Background()
	mongoStore := store.NewMongoStore(s.mongoDB)
	require.NoError(s.T(), mongoStore.EnsureIndexes(ctx))
	s.assertStoreContract(ctx, mongoStore)
	s.assertProfileStoreContract(ctx, store.NewMongoProfileStore(s.mongoDB))
}
