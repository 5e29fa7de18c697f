package domain

import "time"

// RecommendedExercise is one entry of a generated workout plan.
type RecommendedExercise struct {
	Name        string `bson:"name" json:"name"`
	Sets        int    `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps        int    `bson:"reps,omitempty" json:"reps,omitempty"`
	Duration    int    `bson:"duration,omitempty" json:"duration,omitempty"`     // seconds
	RestPeriod  int    `bson:"restPeriod,omitempty" json:"restPeriod,omitempty"` // seconds
	Instruction string `bson:"instruction,omitempty" json:"instruction,omitempty"`
}

// WorkoutRecommendation is a generated workout plan. It is immutable except
// for IsCompleted, which flips false->true exactly once through the
// complete operation.
type WorkoutRecommendation struct {
	ID                 int64                 `bson:"_id,omitempty" json:"id"`
	UserID             int64                 `bson:"userId" json:"userId"`
	Title              string                `bson:"title" json:"title"`
	Description        string                `bson:"description" json:"description"`
	Type               string                `bson:"type" json:"type"`
	Duration           int                   `bson:"duration" json:"duration"` // minutes
	CaloriesBurn       int                   `bson:"caloriesBurn" json:"caloriesBurn"`
	Difficulty         string                `bson:"difficulty" json:"difficulty"`
	Exercises          []RecommendedExercise `bson:"exercises" json:"exercises"`
	RecommendedApparel []int64               `bson:"recommendedApparel,omitempty" json:"recommendedApparel,omitempty"`
	IsCompleted        bool                  `bson:"isCompleted" json:"isCompleted"`
	CreatedAt          time.Time             `bson:"createdAt" json:"createdAt"`
}
