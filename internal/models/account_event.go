package models

// Account event types published to Kafka.
const (
	EventUserRegistered         = "user.registered"
	EventUserVerified           = "user.verified"
	EventPasswordResetRequested = "password.reset_requested"
	EventPasswordReset          = "password.reset"
)

// AccountEvent represents an account lifecycle change published to Kafka.
type AccountEvent struct {
	EventID   string `json:"event_id"`  // Unique event ID
	Type      string `json:"type"`      // One of the Event* constants
	UserID    string `json:"user_id"`   // Affected user
	Username  string `json:"username"`  // Affected username
	Timestamp int64  `json:"timestamp"` // Unix timestamp
}
