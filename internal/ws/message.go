// Package ws implements the live notification channel. Connected clients
// self-report workout and achievement events, which the hub fans out to
// every other open connection. The feed is best-effort and advisory: a
// message lost to a disconnected client is never replayed, and payloads
// are relayed as received without being checked against stored state.
package ws

import "encoding/json"

// Event types accepted on the channel.
const (
	EventWorkoutUpdate           = "workout_update"
	EventAchievementNotification = "achievement_notification"
	EventConnection              = "connection"
)

// Envelope is the wire format for every channel message. Data stays raw
// because the hub relays payloads without validating them.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ConnectionAck is sent to a client immediately after it connects.
type ConnectionAck struct {
	Type     string `json:"type"`
	Status   string `json:"status"`
	ClientID string `json:"clientId"`
}

// UnverifiedPayload wraps a client-supplied payload that was never checked
// against the domain store. Consumers must treat it as advisory only.
type UnverifiedPayload struct {
	Type string
	Data json.RawMessage
}

// Encode re-wraps the payload in the wire envelope for relaying.
func (p UnverifiedPayload) Encode() ([]byte, error) {
	return json.Marshal(Envelope{Type: p.Type, Data: p.Data})
}

// WorkoutUpdate is the documented payload shape for workout events. The hub
// does not enforce it.
type WorkoutUpdate struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	Type        string `json:"type"`
	Duration    int    `json:"duration"`
	Calories    int    `json:"calories"`
	ApparelName string `json:"apparelName,omitempty"`
	ApparelType string `json:"apparelType,omitempty"`
}

// AchievementNotification is the documented payload shape for achievement
// events.
type AchievementNotification struct {
	UserID                 int64  `json:"userId"`
	Username               string `json:"username"`
	AchievementName        string `json:"achievementName"`
	AchievementDescription string `json:"achievementDescription"`
}
