package domain

import "time"

// IntegratedApp records a user's connection to a third-party fitness app.
// Disconnecting clears the tokens but keeps the row so a later reconnect is
// an overwrite rather than a duplicate.
type IntegratedApp struct {
	ID           int64      `bson:"_id,omitempty" json:"id"`
	UserID       int64      `bson:"userId" json:"userId"`
	AppName      string     `bson:"appName" json:"appName"` // e.g. Strava, Apple Health
	Connected    bool       `bson:"connected" json:"connected"`
	AccessToken  string     `bson:"accessToken,omitempty" json:"-"`
	RefreshToken string     `bson:"refreshToken,omitempty" json:"-"`
	LastSynced   *time.Time `bson:"lastSynced,omitempty" json:"lastSynced,omitempty"`
}
