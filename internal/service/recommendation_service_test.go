package service

import (
	"context"
	"testing"
	"time"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
	"wolfpack/fitness-hub/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recommendationFixture struct {
	prefs   repository.PreferenceRepository
	apparel repository.ApparelRepository
	service RecommendationService
}

func newRecommendationFixture() *recommendationFixture {
	store := memory.NewStore()
	f := &recommendationFixture{
		prefs:   memory.NewPreferenceRepository(store),
		apparel: memory.NewApparelRepository(store),
	}
	f.service = NewRecommendationService(memory.NewRecommendationRepository(store), f.prefs, f.apparel)
	return f
}

func TestGenerateWithoutPreferencesFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()

	rec, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "Beginner Full Body", rec.Title)
	assert.Equal(t, "general", rec.Type)
	assert.Equal(t, "beginner", rec.Difficulty)
	assert.Equal(t, 30, rec.Duration)
	assert.Equal(t, 240, rec.CaloriesBurn)
	assert.NotEmpty(t, rec.Exercises)
	assert.False(t, rec.IsCompleted)
}

func TestGenerateFollowsPreferences(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()

	require.NoError(t, f.prefs.Save(ctx, &domain.UserPreferences{
		UserID:            1,
		FitnessLevel:      "advanced",
		WorkoutPreference: "hiit",
		FitnessGoal:       "weight_loss",
		WorkoutDuration:   45,
		WorkoutFrequency:  4,
	}))

	rec, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "HIIT Circuit", rec.Title)
	assert.Equal(t, "hiit", rec.Type)
	assert.Equal(t, "advanced", rec.Difficulty)
	assert.Equal(t, 45, rec.Duration)
	// 45 minutes at 12 calories per minute.
	assert.Equal(t, 540, rec.CaloriesBurn)
}

func TestGenerateIsDeterministic(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()

	require.NoError(t, f.prefs.Save(ctx, &domain.UserPreferences{
		UserID:            1,
		WorkoutPreference: "cardio",
		WorkoutDuration:   60,
	}))

	first, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)
	second, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.CaloriesBurn, second.CaloriesBurn)
	assert.Equal(t, first.Exercises, second.Exercises)
}

func TestGenerateRecommendsBestPerformingApparel(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()
	now := time.Now()

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := f.apparel.Create(ctx, &domain.Apparel{UserID: 1, Name: name, Type: "gear", DateAdded: now})
		require.NoError(t, err)
	}
	// Raise item 2's rating above the rest.
	_, err := f.apparel.RecordUsage(ctx, 2, 60, 500, now)
	require.NoError(t, err)

	rec, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)

	require.Len(t, rec.RecommendedApparel, 3)
	assert.Equal(t, int64(2), rec.RecommendedApparel[0])
}

func TestRecommendationOwnership(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()

	rec, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)

	_, err = f.service.Get(ctx, 2, rec.ID)
	assert.ErrorIs(t, err, ErrForbiddenRecommendation)

	_, err = f.service.Get(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrRecommendationNotFound)

	got, err := f.service.Get(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}

func TestCompleteRecommendationIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()

	rec, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)

	done, err := f.service.Complete(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)

	again, err := f.service.Complete(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.True(t, again.IsCompleted)

	_, err = f.service.Complete(ctx, 2, rec.ID)
	assert.ErrorIs(t, err, ErrForbiddenRecommendation)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()

	first, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)
	second, err := f.service.Generate(ctx, 1)
	require.NoError(t, err)

	recs, err := f.service.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second.ID, recs[0].ID)
	assert.Equal(t, first.ID, recs[1].ID)
}
