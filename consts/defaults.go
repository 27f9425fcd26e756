package consts

import "time"

// Session lifecycle constants
const (
	// WatchdogInterval is how often the expiry watchdog inspects the token
	WatchdogInterval = time.Minute

	// RefreshWindow is the remaining lifetime below which a refresh is attempted
	RefreshWindow = time.Minute * 5

	// RequestTimeout bounds every outbound backend call
	RequestTimeout = time.Second * 10
)

// Retry constants for idempotent requests
const (
	MaxRetries = 3
	RetryDelay = time.Second
)
