package domain

import "time"

// AuthEventType names an entry in the authentication audit trail.
type AuthEventType string

const (
	AuthEventRegister AuthEventType = "register"
	AuthEventLogin    AuthEventType = "login"
	AuthEventRefresh  AuthEventType = "refresh"
	AuthEventLogout   AuthEventType = "logout"
)

// AuthEvent records the outcome of one authentication flow.
type AuthEvent struct {
	UserID     int64         `bson:"user_id,omitempty"`
	Email      string        `bson:"email,omitempty"`
	Type       AuthEventType `bson:"type"`
	Success    bool          `bson:"success"`
	IP         string        `bson:"ip,omitempty"`
	OccurredAt time.Time     `bson:"occurred_at"`
}
