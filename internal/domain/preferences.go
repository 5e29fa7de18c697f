package domain

// Workout types and fitness goals accepted in user preferences.
var (
	WorkoutTypes = []string{"strength", "cardio", "flexibility", "hiit", "endurance", "recovery", "balance"}

	FitnessGoals = []string{"weight_loss", "muscle_gain", "endurance", "flexibility", "general_fitness", "recovery", "strength"}

	FitnessLevels = []string{"beginner", "intermediate", "advanced"}
)

// UserPreferences is the one-per-user record driving recommendation
// generation. Save replaces it wholesale; partial updates merge field by
// field.
type UserPreferences struct {
	UserID            int64    `bson:"_id,omitempty" json:"userId"`
	FitnessLevel      string   `bson:"fitnessLevel" json:"fitnessLevel"`
	WorkoutPreference string   `bson:"workoutPreference" json:"workoutPreference"`
	FitnessGoal       string   `bson:"fitnessGoal" json:"fitnessGoal"`
	WorkoutDuration   int      `bson:"workoutDuration" json:"workoutDuration"`   // minutes, 5-120
	WorkoutFrequency  int      `bson:"workoutFrequency" json:"workoutFrequency"` // days per week, 1-7
	Equipment         []string `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Limitations       []string `bson:"limitations,omitempty" json:"limitations,omitempty"`
}
