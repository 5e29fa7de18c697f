package domain

import (
	"math"
	"time"
)

// Catalog achievement names the aggregation logic keys off.
const (
	AchievementAlphaConsistency = "Alpha Consistency"
	AchievementPowerSurge       = "Power Surge"
)

const (
	// AchievementPointBonus is awarded exactly once, when an achievement
	// completes.
	AchievementPointBonus = 25

	// ConsistencyWorkoutCount unlocks "Alpha Consistency". This is a total
	// workout count, not day-consecutiveness.
	ConsistencyWorkoutCount = 5

	// PowerSurgeCalorieTarget drives "Power Surge" progress.
	PowerSurgeCalorieTarget = 10000
)

// Achievement is a global catalog entry. Seeded at startup, read-only
// thereafter.
type Achievement struct {
	ID          int64  `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Criteria    string `bson:"criteria" json:"criteria"`
	Icon        string `bson:"icon" json:"icon"`
	Color       string `bson:"color" json:"color"`
}

// UserAchievement tracks one user's progress toward one achievement.
// Progress is monotonically non-decreasing and Completed flips false->true
// at most once.
type UserAchievement struct {
	ID            int64      `bson:"_id,omitempty" json:"id"`
	UserID        int64      `bson:"userId" json:"userId"`
	AchievementID int64      `bson:"achievementId" json:"achievementId"`
	Progress      int        `bson:"progress" json:"progress"` // 0-100
	Completed     bool       `bson:"completed" json:"completed"`
	DateEarned    *time.Time `bson:"dateEarned,omitempty" json:"dateEarned,omitempty"`
}

// UserAchievementDetail joins a catalog entry with the user's progress
// toward it for API responses.
type UserAchievementDetail struct {
	Achievement Achievement `json:"achievement"`
	Progress    int         `json:"progress"`
	Completed   bool        `json:"completed"`
	DateEarned  *time.Time  `json:"dateEarned,omitempty"`
}

// CalorieProgress converts a cumulative calorie total into 0-100 progress
// toward the Power Surge target.
func CalorieProgress(totalCalories int) int {
	progress := int(math.Round(float64(totalCalories) / PowerSurgeCalorieTarget * 100))
	if progress > 100 {
		progress = 100
	}
	return progress
}
