package service

import (
	"context"
	"testing"

	"wolfpack/fitness-hub/internal/domain"
	"wolfpack/fitness-hub/internal/repository"
	"wolfpack/fitness-hub/internal/repository/memory"
	"wolfpack/fitness-hub/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workoutFixture struct {
	users    repository.UserRepository
	apparel  repository.ApparelRepository
	workouts repository.WorkoutRepository
	progress repository.AchievementRepository
	service  WorkoutService
}

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()
	store := memory.NewStore()
	f := &workoutFixture{
		users:    memory.NewUserRepository(store),
		apparel:  memory.NewApparelRepository(store),
		workouts: memory.NewWorkoutRepository(store),
		progress: memory.NewAchievementRepository(store),
	}
	f.service = NewWorkoutService(f.users, f.apparel, f.workouts, f.progress, zap.NewNop())
	require.NoError(t, seed.Achievements(context.Background(), f.progress, zap.NewNop()))
	return f
}

func (f *workoutFixture) createUser(t *testing.T, username string) int64 {
	t.Helper()
	id, err := f.users.Create(context.Background(), &domain.User{
		Username: username,
		Level:    1,
		Role:     domain.RoleMember,
		Privacy:  domain.DefaultPrivacySettings(),
	})
	require.NoError(t, err)
	return id
}

func (f *workoutFixture) userPoints(t *testing.T, userID int64) int {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	return u.Points
}

func TestCreateWorkoutUpdatesApparelAndPoints(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	userID := f.createUser(t, "runner")

	apparelID, err := f.apparel.Create(ctx, &domain.Apparel{UserID: userID, Name: "Trail Shoes", Type: "shoes"})
	require.NoError(t, err)

	workout, err := f.service.Create(ctx, userID, WorkoutInput{
		Type:      "Running",
		Duration:  40,
		Calories:  300,
		ApparelID: &apparelID,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, workout.Progress)
	assert.Equal(t, 8, f.userPoints(t, userID))

	apparel, err := f.apparel.GetByID(ctx, apparelID)
	require.NoError(t, err)
	assert.Equal(t, 1, apparel.UsageCount)
	assert.Equal(t, 40, apparel.TotalWorkoutDuration)
	assert.Equal(t, 300, apparel.TotalCaloriesBurned)
	assert.Equal(t, 40, apparel.AverageWorkoutDuration)
	assert.NotNil(t, apparel.LastUsed)
	assert.Greater(t, apparel.PerformanceRating, 0)
}

func TestCreateWorkoutRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	userID := f.createUser(t, "runner")

	_, err := f.service.Create(ctx, userID, WorkoutInput{Type: "", Duration: 30})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.Create(ctx, userID, WorkoutInput{Type: "Running", Duration: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.Create(ctx, userID, WorkoutInput{Type: "Running", Duration: 30, Calories: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateWorkoutUnknownApparelLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	userID := f.createUser(t, "runner")

	missing := int64(99)
	_, err := f.service.Create(ctx, userID, WorkoutInput{
		Type:      "Running",
		Duration:  30,
		Calories:  200,
		ApparelID: &missing,
	})
	assert.ErrorIs(t, err, ErrApparelNotFound)

	workouts, err := f.workouts.GetByUserID(ctx, userID, 0)
	require.NoError(t, err)
	assert.Empty(t, workouts)
	assert.Equal(t, 0, f.userPoints(t, userID))
}

func TestCreateWorkoutForeignApparelForbidden(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	owner := f.createUser(t, "owner")
	intruder := f.createUser(t, "intruder")

	apparelID, err := f.apparel.Create(ctx, &domain.Apparel{UserID: owner, Name: "Vest", Type: "vest"})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, intruder, WorkoutInput{
		Type:      "Running",
		Duration:  30,
		Calories:  200,
		ApparelID: &apparelID,
	})
	assert.ErrorIs(t, err, ErrForbiddenApparelAccess)

	workouts, err := f.workouts.GetByUserID(ctx, intruder, 0)
	require.NoError(t, err)
	assert.Empty(t, workouts)
}

func TestFiveWorkoutsUnlockConsistencyOnce(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	userID := f.createUser(t, "grinder")

	// Four workouts at 30 minutes each: 6 points apiece, no unlock yet.
	for i := 0; i < 4; i++ {
		_, err := f.service.Create(ctx, userID, WorkoutInput{Type: "Running", Duration: 30, Calories: 100})
		require.NoError(t, err)
	}
	assert.Equal(t, 24, f.userPoints(t, userID))

	// The fifth workout crosses the threshold and pays the bonus.
	_, err := f.service.Create(ctx, userID, WorkoutInput{Type: "Running", Duration: 30, Calories: 100})
	require.NoError(t, err)
	assert.Equal(t, 55, f.userPoints(t, userID))

	achievement, err := f.progress.GetAchievementByName(ctx, domain.AchievementAlphaConsistency)
	require.NoError(t, err)
	unlocked, err := f.progress.GetUserAchievements(ctx, userID)
	require.NoError(t, err)
	var consistency *domain.UserAchievement
	for i := range unlocked {
		if unlocked[i].AchievementID == achievement.ID {
			consistency = &unlocked[i]
		}
	}
	require.NotNil(t, consistency)
	assert.True(t, consistency.Completed)
	assert.Equal(t, 100, consistency.Progress)

	// A sixth workout pays workout points only, never the bonus again.
	_, err = f.service.Create(ctx, userID, WorkoutInput{Type: "Running", Duration: 30, Calories: 100})
	require.NoError(t, err)
	assert.Equal(t, 61, f.userPoints(t, userID))
}

func TestCalorieAchievementCompletesAtTarget(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	userID := f.createUser(t, "burner")

	// Three workouts total 7500 calories: progress only, no bonus.
	for i := 0; i < 3; i++ {
		_, err := f.service.Create(ctx, userID, WorkoutInput{Type: "Cycling", Duration: 60, Calories: 2500})
		require.NoError(t, err)
	}
	assert.Equal(t, 36, f.userPoints(t, userID))

	// The fourth workout reaches 10,000 calories exactly.
	_, err := f.service.Create(ctx, userID, WorkoutInput{Type: "Cycling", Duration: 60, Calories: 2500})
	require.NoError(t, err)
	assert.Equal(t, 73, f.userPoints(t, userID))

	// The fifth workout triggers the consistency unlock, but the calorie
	// bonus never repeats.
	_, err = f.service.Create(ctx, userID, WorkoutInput{Type: "Cycling", Duration: 60, Calories: 2500})
	require.NoError(t, err)
	assert.Equal(t, 110, f.userPoints(t, userID))

	u, err := f.users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, u.Level)
}

func TestWorkoutStatsAverageProgress(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	userID := f.createUser(t, "statto")

	// 20 minutes scores 5 progress, 45 minutes scores 10.
	_, err := f.service.Create(ctx, userID, WorkoutInput{Type: "Running", Duration: 20, Calories: 150})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, userID, WorkoutInput{Type: "Running", Duration: 45, Calories: 400})
	require.NoError(t, err)

	stats, err := f.service.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalWorkouts)
	assert.Equal(t, 550, stats.TotalCalories)
	assert.Equal(t, 8, stats.AvgProgress)
}

func TestListByApparelChecksOwnership(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)
	owner := f.createUser(t, "owner")
	other := f.createUser(t, "other")

	apparelID, err := f.apparel.Create(ctx, &domain.Apparel{UserID: owner, Name: "Band", Type: "band"})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, owner, WorkoutInput{Type: "Yoga", Duration: 25, Calories: 90, ApparelID: &apparelID})
	require.NoError(t, err)

	workouts, err := f.service.ListByApparel(ctx, owner, apparelID, 0)
	require.NoError(t, err)
	assert.Len(t, workouts, 1)

	_, err = f.service.ListByApparel(ctx, other, apparelID, 0)
	assert.ErrorIs(t, err, ErrForbiddenApparelAccess)

	_, err = f.service.ListByApparel(ctx, owner, 404, 0)
	assert.ErrorIs(t, err, ErrApparelNotFound)
}
