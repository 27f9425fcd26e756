package session

import (
	"context"
	"time"
)

// The watchdog periodically inspects the credential while a session is
// active: an expired credential drops the session immediately, one
// inside the refresh window is exchanged proactively, and a failed
// exchange drops the session as well.

func (m *Manager) startWatchdogLocked() {
	if m.watchdogStop != nil {
		return
	}
	stop := make(chan struct{})
	m.watchdogStop = stop
	go m.watch(stop)
}

func (m *Manager) stopWatchdogLocked() {
	if m.watchdogStop != nil {
		close(m.watchdogStop)
		m.watchdogStop = nil
	}
}

func (m *Manager) watch(stop chan struct{}) {
	ticker := time.NewTicker(m.watchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.tick(context.Background())
		}
	}
}

// tick runs one watchdog inspection
func (m *Manager) tick(ctx context.Context) {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.claims == nil {
		m.mu.Unlock()
		return
	}
	ttl := m.claims.ExpiresIn(m.now())
	m.mu.Unlock()

	switch {
	case ttl <= 0:
		m.log.Infof(ctx, "credential expired, dropping session")
		m.Logout(ctx)
	case ttl <= m.refreshWindow:
		if err := m.Refresh(ctx); err != nil {
			m.log.Warnf(ctx, "proactive refresh failed: %v", err)
			m.Logout(ctx)
		}
	}
}
