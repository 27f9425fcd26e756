package session

import (
	"context"
	"sync"
	"time"

	"github.com/askdesk/askdesk-go/access"
	"github.com/askdesk/askdesk-go/consts"
	"github.com/askdesk/askdesk-go/ecode"
	"github.com/askdesk/askdesk-go/logging/logger"
	"github.com/askdesk/askdesk-go/token"
	"github.com/askdesk/askdesk-go/validation/validator"
)

// AuthResult is what the backend hands back on login and refresh
type AuthResult struct {
	Token string
	User  *Profile
}

// AuthBackend is the transport the manager drives for the three
// credential-exchanging endpoints
type AuthBackend interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Logout(ctx context.Context, credential string) error
	Refresh(ctx context.Context, credential string) (*AuthResult, error)
}

type loginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Manager owns the in-memory session and serializes every mutation.
// Consumers read derived state; the store is written only from here.
type Manager struct {
	mu      sync.Mutex
	state   State
	record  *Record
	claims  *token.Claims
	epoch   uint64
	store   *Store
	backend AuthBackend
	log     *logger.Logger

	now              func() time.Time
	watchdogInterval time.Duration
	refreshWindow    time.Duration
	watchdogStop     chan struct{}

	initialized bool
	closed      bool
}

// Option customizes a manager
type Option func(*Manager)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithWatchdog overrides the watchdog interval and refresh window
func WithWatchdog(interval, window time.Duration) Option {
	return func(m *Manager) {
		m.watchdogInterval = interval
		m.refreshWindow = window
	}
}

// NewManager creates a manager; Initialize must run before consumers
// treat its state as authoritative
func NewManager(store *Store, backend AuthBackend, opts ...Option) *Manager {
	m := &Manager{
		state:            StateUninitialized,
		store:            store,
		backend:          backend,
		log:              logger.StdLogger(),
		now:              time.Now,
		watchdogInterval: consts.WatchdogInterval,
		refreshWindow:    consts.RefreshWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize restores the persisted session, falling back to anonymous
// on absence, structural damage or expiry. Runs once; later calls are
// no-ops.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	m.initialized = true
	m.state = StateRestoring

	rec, err := m.store.Load()
	if err != nil {
		m.log.Warnf(ctx, "session restore failed: %v", err)
	}
	if rec == nil {
		m.toAnonymousLocked()
		return nil
	}

	claims, err := token.Decode(rec.Token)
	if err != nil || token.IsExpired(claims, m.now()) {
		m.store.Clear()
		m.toAnonymousLocked()
		return nil
	}

	m.record = rec
	m.claims = claims
	m.toAuthenticatedLocked()
	m.log.Infof(ctx, "session restored for %s", rec.User.Username)
	return nil
}

// Login exchanges credentials for a session. All failure paths are
// reported through the result; state is left untouched on failure.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	if err := validator.Struct(&loginRequest{Username: username, Password: password}); err != nil {
		return Result{Success: false, Error: ecode.UserMessage(err)}
	}

	res, err := m.backend.Login(ctx, username, password)
	if err != nil {
		return Result{Success: false, Error: ecode.UserMessage(err)}
	}
	if res == nil || res.Token == "" || res.User == nil {
		return Result{Success: false, Error: ecode.LoginFailed()}
	}

	claims, err := token.Decode(res.Token)
	if err != nil {
		return Result{Success: false, Error: ecode.LoginFailed()}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec := NewRecord(res.Token, *res.User, m.now())
	if err := m.store.Save(rec); err != nil {
		m.log.Errorf(ctx, "failed to persist session: %v", err)
		return Result{Success: false, Error: ecode.UserMessage(err)}
	}

	m.record = rec
	m.claims = claims
	m.toAuthenticatedLocked()
	m.log.Infof(ctx, "login succeeded for %s", res.User.Username)

	user := rec.User
	return Result{Success: true, User: &user}
}

// Logout drops the session unconditionally and notifies the backend
// best-effort. Calling it while anonymous is a no-op success.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	credential := ""
	if m.record != nil {
		credential = m.record.Token
	}
	m.store.Clear()
	m.toAnonymousLocked()
	m.mu.Unlock()

	if credential == "" {
		return
	}
	if err := m.backend.Logout(ctx, credential); err != nil {
		m.log.Warnf(ctx, "logout notification failed: %v", err)
	}
}

// Invalidate drops the session locally without notifying the backend.
// Used when the backend rejects a credential in flight. The epoch pins
// the session the rejection belongs to: a stale epoch is a no-op, so a
// 401 from a request issued against an earlier session cannot drop a
// newer one, and concurrent rejections collapse to a single transition.
func (m *Manager) Invalidate(ctx context.Context, epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated && m.state != StateRefreshing {
		return
	}
	if m.epoch != epoch {
		return
	}
	m.store.Clear()
	m.toAnonymousLocked()
	m.log.Infof(ctx, "session invalidated")
}

// Refresh exchanges the current credential for a fresh one. A logout
// issued while the exchange is in flight wins; the stale result is
// discarded. Failure does not log out by itself.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if (m.state != StateAuthenticated && m.state != StateRefreshing) || m.record == nil {
		m.mu.Unlock()
		return ecode.New(ecode.Validation, "no session to refresh")
	}
	startEpoch := m.epoch
	credential := m.record.Token
	m.state = StateRefreshing
	m.mu.Unlock()

	res, err := m.backend.Refresh(ctx, credential)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != startEpoch {
		// session ended or was replaced while the exchange was in flight
		return ecode.New(ecode.Validation, "session ended during refresh")
	}

	if err != nil {
		m.state = StateAuthenticated
		return err
	}
	if res == nil || res.Token == "" {
		m.state = StateAuthenticated
		return ecode.New(ecode.Validation, "refresh response missing token")
	}

	claims, derr := token.Decode(res.Token)
	if derr != nil {
		m.state = StateAuthenticated
		return derr
	}

	rec := *m.record
	rec.Token = res.Token
	if res.User != nil {
		rec.User = *res.User
	}
	if serr := m.store.Save(&rec); serr != nil {
		m.state = StateAuthenticated
		return serr
	}

	m.record = &rec
	m.claims = claims
	m.state = StateAuthenticated
	m.log.Infof(ctx, "session refreshed for %s", rec.User.Username)
	return nil
}

// IsAuthenticated reports whether a live, unexpired session exists
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isAuthenticatedLocked()
}

func (m *Manager) isAuthenticatedLocked() bool {
	if m.state != StateAuthenticated && m.state != StateRefreshing {
		return false
	}
	if m.claims == nil || token.IsExpired(m.claims, m.now()) {
		return false
	}
	return true
}

// Current returns a copy of the active profile
func (m *Manager) Current() (Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isAuthenticatedLocked() || m.record == nil {
		return Profile{}, false
	}
	return m.record.User, true
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Epoch returns the session epoch, bumped on every transition
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// HasPermission checks the role permission table for the active session
func (m *Manager) HasPermission(p access.Permission) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isAuthenticatedLocked() || m.record == nil {
		return false
	}
	return access.HasPermission(m.record.User.Role, p)
}

// IsAdminEligible reports whether the active session may enter the
// admin area
func (m *Manager) IsAdminEligible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isAuthenticatedLocked() || m.record == nil {
		return false
	}
	return access.IsAdminEligible(m.record.User.Role)
}

// AuthHeader returns the bearer header value for the current
// credential, or "" when anonymous. A structurally damaged credential
// drops the session before returning empty.
func (m *Manager) AuthHeader() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.record == nil {
		return ""
	}
	if err := token.Validate(m.record.Token); err != nil {
		m.log.Warnf(context.Background(), "stored credential is damaged, dropping session: %v", err)
		m.store.Clear()
		m.toAnonymousLocked()
		return ""
	}
	return consts.BearerKey + m.record.Token
}

// Close tears the manager down, stopping the watchdog. Idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.stopWatchdogLocked()
}

// toAnonymousLocked drops session state and the watchdog; bumps epoch
func (m *Manager) toAnonymousLocked() {
	m.record = nil
	m.claims = nil
	m.state = StateAnonymous
	m.epoch++
	m.stopWatchdogLocked()
}

// toAuthenticatedLocked installs the session and starts the watchdog;
// bumps epoch so in-flight refreshes against the old session die
func (m *Manager) toAuthenticatedLocked() {
	m.state = StateAuthenticated
	m.epoch++
	if !m.closed {
		m.startWatchdogLocked()
	}
}
