package session

import (
	"time"

	"github.com/askdesk/askdesk-go/access"
)

// Profile is the authenticated principal returned by the backend.
// The backend's canonical field for it is "user"; "admin" is accepted
// as deprecated input by the transport layer only.
type Profile struct {
	Username string      `json:"username" validate:"required"`
	Role     access.Role `json:"role" validate:"required"`
	Email    string      `json:"email,omitempty"`
}

// Record is the persisted session layout, identical to the storage
// record the web client keeps: token, user and login time in epoch ms.
type Record struct {
	Token     string  `json:"token"`
	User      Profile `json:"user"`
	LoginTime int64   `json:"loginTime"`
}

// NewRecord builds a record stamped with the current login time
func NewRecord(token string, user Profile, now time.Time) *Record {
	return &Record{
		Token:     token,
		User:      user,
		LoginTime: now.UnixMilli(),
	}
}

// State represents the manager lifecycle state
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAnonymous
	StateAuthenticated
	StateRefreshing
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	}
	return "unknown"
}

// Result is the uniform outcome reported for login and refresh
type Result struct {
	Success bool     `json:"success"`
	User    *Profile `json:"user,omitempty"`
	Error   string   `json:"error,omitempty"`
}
