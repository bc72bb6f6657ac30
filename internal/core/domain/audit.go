package domain

import "time"

// AuthAction identifies the kind of account activity recorded in the audit trail.
type AuthAction string

const (
	ActionSignup      AuthAction = "signup"
	ActionLogin       AuthAction = "login"
	ActionLoginFailed AuthAction = "login_failed"
	ActionLogout      AuthAction = "logout"
)

// AuthEvent is a single entry in the account activity audit trail.
type AuthEvent struct {
	UserID    string
	Email     string
	Action    AuthAction
	Timestamp time.Time
}
