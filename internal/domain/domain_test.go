package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	assert.Equal(t, 1, LevelForPoints(0))
	assert.Equal(t, 1, LevelForPoints(99))
	assert.Equal(t, 2, LevelForPoints(100))
	assert.Equal(t, 4, LevelForPoints(350))
}

func TestAddPointsKeepsLevelInvariant(t *testing.T) {
	u := User{Level: 1}
	awards := []int{8, 25, 50, 3, 120, 7}

	for _, points := range awards {
		u = u.AddPoints(points)
		assert.Equal(t, u.Points/100+1, u.Level)
	}
}

func TestAddPointsClampsNegative(t *testing.T) {
	u := User{Points: 10, Level: 1}
	u = u.AddPoints(-50)

	assert.Equal(t, 0, u.Points)
	assert.Equal(t, 1, u.Level)
}

func TestWorkoutProgress(t *testing.T) {
	assert.Equal(t, 5, WorkoutProgress(30))
	assert.Equal(t, 10, WorkoutProgress(31))
	assert.Equal(t, 5, WorkoutProgress(1))
}

func TestPointsForWorkout(t *testing.T) {
	assert.Equal(t, 8, PointsForWorkout(40))
	assert.Equal(t, 0, PointsForWorkout(4))
}

func TestPerformanceScoreCaps(t *testing.T) {
	// 60 minutes and 500 calories both saturate their halves.
	assert.Equal(t, 100, PerformanceScore(60, 500))
	assert.Equal(t, 100, PerformanceScore(300, 5000))
	assert.Equal(t, 0, PerformanceScore(0, 0))
	// Half duration, no calories.
	assert.Equal(t, 25, PerformanceScore(30, 0))
}

func TestSmoothedRatingBoundsSingleUpdate(t *testing.T) {
	for _, old := range []int{0, 20, 50, 80, 100} {
		for _, current := range []int{0, 50, 100} {
			next := SmoothedRating(old, current)
			diff := next - old
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, 30, "old=%d current=%d", old, current)
		}
	}
}

func TestWithUsageAggregates(t *testing.T) {
	now := time.Now()
	a := Apparel{}

	a = a.WithUsage(40, 300, now)
	assert.Equal(t, 1, a.UsageCount)
	assert.Equal(t, 40, a.TotalWorkoutDuration)
	assert.Equal(t, 300, a.TotalCaloriesBurned)
	assert.Equal(t, 40, a.AverageWorkoutDuration)
	assert.NotNil(t, a.LastUsed)

	a = a.WithUsage(20, 100, now)
	assert.Equal(t, 2, a.UsageCount)
	assert.Equal(t, 30, a.AverageWorkoutDuration)
}

func TestCalorieProgress(t *testing.T) {
	assert.Equal(t, 0, CalorieProgress(0))
	assert.Equal(t, 50, CalorieProgress(5000))
	assert.Equal(t, 100, CalorieProgress(10000))
	assert.Equal(t, 100, CalorieProgress(25000))
}

func TestChallengeStatus(t *testing.T) {
	now := time.Now()
	c := Challenge{StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)}

	assert.Equal(t, ChallengeActive, c.Status(now))
	assert.Equal(t, ChallengeUpcoming, c.Status(now.Add(-2*time.Hour)))
	assert.Equal(t, ChallengeExpired, c.Status(now.Add(2*time.Hour)))
}
