package domain

import (
	"math"
	"time"
)

// Apparel represents a piece of smart apparel owned by a single user and
// identified by a unique QR code. Usage aggregates are only ever updated
// through workout creation.
type Apparel struct {
	ID                     int64      `bson:"_id,omitempty" json:"id"`
	UserID                 int64      `bson:"userId" json:"userId"`
	Name                   string     `bson:"name" json:"name"`
	Type                   string     `bson:"type" json:"type"`
	QRCode                 string     `bson:"qrCode" json:"qrCode"` // Unique
	DateAdded              time.Time  `bson:"dateAdded" json:"dateAdded"`
	UsageCount             int        `bson:"usageCount" json:"usageCount"`
	LastUsed               *time.Time `bson:"lastUsed,omitempty" json:"lastUsed,omitempty"`
	TotalWorkoutDuration   int        `bson:"totalWorkoutDuration" json:"totalWorkoutDuration"` // minutes
	TotalCaloriesBurned    int        `bson:"totalCaloriesBurned" json:"totalCaloriesBurned"`
	AverageWorkoutDuration int        `bson:"averageWorkoutDuration" json:"averageWorkoutDuration"` // minutes
	PerformanceRating      int        `bson:"performanceRating" json:"performanceRating"`           // 0-100
}

// PerformanceScore rates a single workout 0-100. Duration is capped at one
// hour and calories at 500, each contributing half of the score.
func PerformanceScore(duration, calories int) int {
	durationFactor := math.Min(float64(duration)/60, 1)
	caloriesFactor := math.Min(float64(calories)/500, 1)
	return int(math.Round((durationFactor*0.5 + caloriesFactor*0.5) * 100))
}

// SmoothedRating blends the stored rating with the latest workout's score
// (70% old, 30% new) so a single exceptional workout cannot swing the
// rating by more than 30 points.
func SmoothedRating(oldRating, currentScore int) int {
	return int(math.Round(float64(oldRating)*0.7 + float64(currentScore)*0.3))
}

// WithUsage returns a copy of the apparel with usage aggregates and the
// performance rating updated for one workout.
func (a Apparel) WithUsage(duration, calories int, now time.Time) Apparel {
	a.UsageCount++
	a.TotalWorkoutDuration += duration
	a.TotalCaloriesBurned += calories
	a.AverageWorkoutDuration = int(math.Round(float64(a.TotalWorkoutDuration) / float64(a.UsageCount)))
	a.PerformanceRating = SmoothedRating(a.PerformanceRating, PerformanceScore(duration, calories))
	a.LastUsed = &now
	return a
}

// ApparelUsageStats is the aggregate view served for a single garment.
type ApparelUsageStats struct {
	TotalWorkouts     int        `json:"totalWorkouts"`
	TotalDuration     int        `json:"totalDuration"`
	TotalCalories     int        `json:"totalCalories"`
	AverageDuration   int        `json:"averageDuration"`
	LastUsed          *time.Time `json:"lastUsed"`
	PerformanceRating int        `json:"performanceRating"`
}

// UsageStats projects the stored aggregates into the stats shape.
func (a Apparel) UsageStats() ApparelUsageStats {
	return ApparelUsageStats{
		TotalWorkouts:     a.UsageCount,
		TotalDuration:     a.TotalWorkoutDuration,
		TotalCalories:     a.TotalCaloriesBurned,
		AverageDuration:   a.AverageWorkoutDuration,
		LastUsed:          a.LastUsed,
		PerformanceRating: a.PerformanceRating,
	}
}
