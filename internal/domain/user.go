package domain

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// PrivacySettings controls which of a user's activities are visible to the
// rest of the community.
type PrivacySettings struct {
	ShareWorkouts     bool `bson:"shareWorkouts" json:"shareWorkouts"`
	ShareAchievements bool `bson:"shareAchievements" json:"shareAchievements"`
	ShowInLeaderboard bool `bson:"showInLeaderboard" json:"showInLeaderboard"`
}

// DefaultPrivacySettings returns the settings applied at registration.
// Everything is shared until the user opts out.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		ShareWorkouts:     true,
		ShareAchievements: true,
		ShowInLeaderboard: true,
	}
}

// User represents a registered member of the community.
type User struct {
	ID             int64           `bson:"_id,omitempty" json:"id"`
	Username       string          `bson:"username" json:"username"` // Unique
	PasswordHash   string          `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	Email          string          `bson:"email" json:"email"`
	FullName       string          `bson:"fullName" json:"fullName"`
	Level          int             `bson:"level" json:"level"`
	Points         int             `bson:"points" json:"points"`
	Role           Role            `bson:"role" json:"role"`
	QRCode         string          `bson:"qrCode,omitempty" json:"qrCode,omitempty"`
	ProfilePicture string          `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Privacy        PrivacySettings `bson:"privacySettings" json:"privacySettings"`
}

// LevelForPoints derives the level from a point total.
// Invariant: level == floor(points/100) + 1, recomputed on every point change.
func LevelForPoints(points int) int {
	return points/100 + 1
}

// AddPoints returns a copy of the user with the point total increased and the
// level recomputed.
func (u User) AddPoints(points int) User {
	u.Points += points
	if u.Points < 0 {
		u.Points = 0
	}
	u.Level = LevelForPoints(u.Points)
	return u
}
