package events

import "time"

// EventType enumerates supported security event identifiers.
type EventType string

const (
	EventLoginSucceeded       EventType = "login_succeeded"
	EventLoginFailed          EventType = "login_failed"
	EventTokenRefreshed       EventType = "token_refreshed"
	EventRefreshReuseDetected EventType = "refresh_reuse_detected"
	EventLoggedOut            EventType = "logged_out"
)

// Event represents a security event emitted by the auth service. UserID is
// empty when the acting user could not be determined. Payload never carries
// secrets or token contents.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// RefreshReusePayload payload.
type RefreshReusePayload struct {
	ChainRevoked bool `json:"chain_revoked"`
}
