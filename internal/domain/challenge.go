package domain

import "time"

// ChallengePointBonus is awarded exactly once, when a challenge completes.
const ChallengePointBonus = 50

// ChallengeStatus is derived from the current time; it is never stored.
type ChallengeStatus string

const (
	ChallengeUpcoming ChallengeStatus = "upcoming"
	ChallengeActive   ChallengeStatus = "active"
	ChallengeExpired  ChallengeStatus = "expired"
)

// Challenge is a global, time-boxed catalog entry.
type Challenge struct {
	ID          int64     `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	StartDate   time.Time `bson:"startDate" json:"startDate"`
	EndDate     time.Time `bson:"endDate" json:"endDate"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Type        string    `bson:"type" json:"type"` // solo, featured, team
	Criteria    string    `bson:"criteria" json:"criteria"`
}

// Status reports whether the challenge is upcoming, active or expired at
// the given time.
func (c Challenge) Status(now time.Time) ChallengeStatus {
	switch {
	case now.Before(c.StartDate):
		return ChallengeUpcoming
	case now.After(c.EndDate):
		return ChallengeExpired
	default:
		return ChallengeActive
	}
}

// UserChallenge tracks one user's participation in one challenge. Joining
// is idempotent; progress is monotonically non-decreasing.
type UserChallenge struct {
	ID          int64     `bson:"_id,omitempty" json:"id"`
	UserID      int64     `bson:"userId" json:"userId"`
	ChallengeID int64     `bson:"challengeId" json:"challengeId"`
	DateJoined  time.Time `bson:"dateJoined" json:"dateJoined"`
	Progress    int       `bson:"progress" json:"progress"` // 0-100
	Completed   bool      `bson:"completed" json:"completed"`
}

// UserChallengeDetail joins participation state with the catalog entry.
type UserChallengeDetail struct {
	UserChallenge
	Challenge Challenge       `json:"challenge"`
	Status    ChallengeStatus `json:"status"`
}
