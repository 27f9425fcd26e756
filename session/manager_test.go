package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/askdesk/askdesk-go/access"
	"github.com/askdesk/askdesk-go/ecode"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

func makeToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	tok := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, jwtstd.MapClaims{
		"exp": now.Add(expiresIn).Unix(),
		"iat": now.Unix(),
	})
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

// stubBackend scripts the three credential-exchanging endpoints
type stubBackend struct {
	loginFn   func(ctx context.Context, username, password string) (*AuthResult, error)
	refreshFn func(ctx context.Context, credential string) (*AuthResult, error)

	logoutCalls  atomic.Int32
	refreshCalls atomic.Int32
}

func (s *stubBackend) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if s.loginFn == nil {
		return nil, ecode.New(ecode.Network, "login not scripted")
	}
	return s.loginFn(ctx, username, password)
}

func (s *stubBackend) Logout(ctx context.Context, credential string) error {
	s.logoutCalls.Add(1)
	return nil
}

func (s *stubBackend) Refresh(ctx context.Context, credential string) (*AuthResult, error) {
	s.refreshCalls.Add(1)
	if s.refreshFn == nil {
		return nil, ecode.New(ecode.Network, "refresh not scripted")
	}
	return s.refreshFn(ctx, credential)
}

func newTestManager(t *testing.T, backend AuthBackend, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(NewStore(t.TempDir()), backend, opts...)
	t.Cleanup(m.Close)
	return m
}

func TestInitializeEmptyStore(t *testing.T) {
	m := newTestManager(t, &stubBackend{})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if m.IsAuthenticated() {
		t.Error("empty store must not authenticate")
	}
}

func TestInitializeExpiredCredential(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := NewRecord(makeToken(t, -time.Hour), Profile{Username: "alice", Role: access.RoleAdmin}, time.Now())
	if err := store.Save(rec); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	m := NewManager(store, &stubBackend{})
	defer m.Close()

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if loaded, _ := store.Load(); loaded != nil {
		t.Errorf("expired record must be cleared, got %+v", loaded)
	}

	// a second Initialize is a no-op and stays anonymous
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("state after second Initialize = %v, want anonymous", m.State())
	}
}

func TestInitializeRestoresValidSession(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := NewRecord(makeToken(t, time.Hour), Profile{Username: "alice", Role: access.RoleModerator}, time.Now())
	if err := store.Save(rec); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	m := NewManager(store, &stubBackend{})
	defer m.Close()

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatal("valid persisted session must authenticate")
	}
	user, ok := m.Current()
	if !ok || user.Username != "alice" || user.Role != access.RoleModerator {
		t.Errorf("unexpected restored profile: %+v ok=%v", user, ok)
	}
}

func TestLoginSuccess(t *testing.T) {
	credential := makeToken(t, time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			if username != "alice" || password != "secret" {
				return nil, ecode.New(ecode.Unauthorized, "bad credentials")
			}
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	result := m.Login(context.Background(), "alice", "secret")
	if !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}
	if result.User == nil || result.User.Username != "alice" {
		t.Fatalf("unexpected result user: %+v", result.User)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", m.State())
	}
	if !m.HasPermission(access.PermPublish) {
		t.Error("admin must carry publish")
	}
	if m.HasPermission(access.PermDelete) {
		t.Error("admin must not carry delete")
	}
}

func TestLoginMissingToken(t *testing.T) {
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	result := m.Login(context.Background(), "alice", "secret")
	if result.Success {
		t.Fatal("login must fail when the response carries no token")
	}
	if result.Error == "" {
		t.Error("failure result must carry a user-facing message")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous (no partial session)", m.State())
	}
}

func TestLoginEmptyInput(t *testing.T) {
	m := newTestManager(t, &stubBackend{})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if result := m.Login(context.Background(), "", "secret"); result.Success {
		t.Error("empty username must fail validation")
	}
	if result := m.Login(context.Background(), "alice", ""); result.Success {
		t.Error("empty password must fail validation")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	credential := makeToken(t, time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	m.Logout(context.Background())
	if m.State() != StateAnonymous {
		t.Fatalf("state = %v, want anonymous", m.State())
	}
	m.Logout(context.Background())
	if m.State() != StateAnonymous {
		t.Errorf("second logout changed state to %v", m.State())
	}
	if got := backend.logoutCalls.Load(); got != 1 {
		t.Errorf("backend notified %d times, want 1", got)
	}
}

func TestRefreshAfterLogoutIsDiscarded(t *testing.T) {
	credential := makeToken(t, time.Hour)
	fresh := makeToken(t, 2*time.Hour)

	release := make(chan struct{})
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
		refreshFn: func(ctx context.Context, cred string) (*AuthResult, error) {
			<-release
			return &AuthResult{Token: fresh}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	var wg sync.WaitGroup
	var refreshErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		refreshErr = m.Refresh(context.Background())
	}()

	// wait until the refresh is in flight, then log out
	for m.State() != StateRefreshing {
		time.Sleep(time.Millisecond)
	}
	m.Logout(context.Background())
	close(release)
	wg.Wait()

	if refreshErr == nil {
		t.Error("late refresh must report that the session ended")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous (logout wins)", m.State())
	}
	if m.IsAuthenticated() {
		t.Error("stale refresh result must not resurrect the session")
	}
}

func TestRefreshReplacesCredential(t *testing.T) {
	credential := makeToken(t, time.Hour)
	fresh := makeToken(t, 2*time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
		refreshFn: func(ctx context.Context, cred string) (*AuthResult, error) {
			if cred != credential {
				t.Errorf("refresh sent %q, want the current credential", cred)
			}
			return &AuthResult{Token: fresh}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", m.State())
	}
	if header := m.AuthHeader(); header != "Bearer "+fresh {
		t.Errorf("AuthHeader = %q, want the fresh credential", header)
	}
	// profile survives a refresh that returns no user
	if user, ok := m.Current(); !ok || user.Username != "alice" {
		t.Errorf("profile lost across refresh: %+v ok=%v", user, ok)
	}
}

func TestRefreshWhileAnonymous(t *testing.T) {
	m := newTestManager(t, &stubBackend{})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := m.Refresh(context.Background()); err == nil {
		t.Error("refresh without a session must fail")
	}
}

func TestWatchdogRefreshWindow(t *testing.T) {
	// credential expiring in 4 minutes: inside the 5 minute window
	credential := makeToken(t, 4*time.Minute)
	fresh := makeToken(t, time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
		refreshFn: func(ctx context.Context, cred string) (*AuthResult, error) {
			return &AuthResult{Token: fresh}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	m.tick(context.Background())

	if got := backend.refreshCalls.Load(); got != 1 {
		t.Errorf("refresh attempted %d times, want 1", got)
	}
	if !m.IsAuthenticated() {
		t.Error("session must stay authenticated after a proactive refresh")
	}
}

func TestWatchdogExpiredLogsOutWithoutRefresh(t *testing.T) {
	credential := makeToken(t, time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
	}

	// clock that jumps past the credential's expiry after login
	var offset atomic.Int64
	now := func() time.Time { return time.Now().Add(time.Duration(offset.Load())) }

	m := newTestManager(t, backend, WithClock(now))
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	offset.Store(int64(time.Hour + 5*time.Second)) // time-to-expiry is now -5s
	m.tick(context.Background())

	if got := backend.refreshCalls.Load(); got != 0 {
		t.Errorf("expired credential must not be refreshed, got %d attempts", got)
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous after expiry", m.State())
	}
}

func TestWatchdogFailedRefreshLogsOut(t *testing.T) {
	credential := makeToken(t, 4*time.Minute)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
		refreshFn: func(ctx context.Context, cred string) (*AuthResult, error) {
			return nil, ecode.New(ecode.Network, "backend down")
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	m.tick(context.Background())

	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous after failed proactive refresh", m.State())
	}
}

func TestAuthHeaderSelfHeals(t *testing.T) {
	m := newTestManager(t, &stubBackend{})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// simulate storage tampering after restore
	m.mu.Lock()
	m.record = &Record{Token: "tampered", User: Profile{Username: "alice", Role: access.RoleAdmin}}
	m.state = StateAuthenticated
	m.mu.Unlock()

	if header := m.AuthHeader(); header != "" {
		t.Errorf("AuthHeader = %q, want empty for a damaged credential", header)
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous after self-heal", m.State())
	}
}

func TestInvalidateCollapsesConcurrentCalls(t *testing.T) {
	credential := makeToken(t, time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}

	epochBefore := m.Epoch()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Invalidate(context.Background(), epochBefore)
		}()
	}
	wg.Wait()

	if m.State() != StateAnonymous {
		t.Fatalf("state = %v, want anonymous", m.State())
	}
	if got := m.Epoch() - epochBefore; got != 1 {
		t.Errorf("invalidation transitioned %d times, want exactly 1", got)
	}
	if got := backend.logoutCalls.Load(); got != 0 {
		t.Errorf("invalidation must not notify the backend, got %d calls", got)
	}
}

func TestInvalidateStaleEpochLeavesNewerSession(t *testing.T) {
	credential := makeToken(t, time.Hour)
	backend := &stubBackend{
		loginFn: func(ctx context.Context, username, password string) (*AuthResult, error) {
			return &AuthResult{Token: credential, User: &Profile{Username: "alice", Role: access.RoleAdmin}}, nil
		},
	}

	m := newTestManager(t, backend)
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}
	staleEpoch := m.Epoch()

	// the first session ends and a new one is established
	m.Logout(context.Background())
	if result := m.Login(context.Background(), "alice", "secret"); !result.Success {
		t.Fatalf("second login failed: %s", result.Error)
	}
	current := m.Epoch()

	// a rejection belonging to the first session arrives late
	m.Invalidate(context.Background(), staleEpoch)
	if !m.IsAuthenticated() {
		t.Fatal("stale invalidation must not drop the newer session")
	}
	if m.Epoch() != current {
		t.Errorf("epoch moved from %d to %d on a stale invalidation", current, m.Epoch())
	}

	// one carrying the current epoch still works
	m.Invalidate(context.Background(), current)
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
}
