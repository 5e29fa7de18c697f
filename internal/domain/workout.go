package domain

import "time"

// Workout is a completed workout session. Workouts are immutable once
// created; logging one is the single event that awards points, updates
// apparel aggregates and re-evaluates achievements.
type Workout struct {
	ID        int64     `bson:"_id,omitempty" json:"id"`
	UserID    int64     `bson:"userId" json:"userId"`
	ApparelID *int64    `bson:"apparelId,omitempty" json:"apparelId,omitempty"`
	Type      string    `bson:"type" json:"type"` // e.g. "Running"
	Duration  int       `bson:"duration" json:"duration"` // minutes, > 0
	Calories  int       `bson:"calories" json:"calories"`
	Date      time.Time `bson:"date" json:"date"`
	Progress  int       `bson:"progress" json:"progress"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutProgress is the dashboard progress heuristic: long sessions count
// double.
func WorkoutProgress(duration int) int {
	if duration > 30 {
		return 10
	}
	return 5
}

// PointsForWorkout is the point award for logging a workout.
func PointsForWorkout(duration int) int {
	return duration / 5
}

// WorkoutStats aggregates a user's workout history for the dashboard.
type WorkoutStats struct {
	TotalWorkouts int `json:"totalWorkouts"`
	TotalCalories int `json:"totalCalories"`
	AvgProgress   int `json:"avgProgress"`
}
