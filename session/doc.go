// Package session owns the client's authentication state: the durable
// session record, the in-memory state machine, and the expiry watchdog.
//
// The manager is the sole writer of the store; consumers read derived
// state (IsAuthenticated, Current, HasPermission) and drive the
// lifecycle through Initialize, Login, Logout and Refresh.
//
// # Lifecycle
//
//	Uninitialized → Restoring → {Anonymous, Authenticated} ⇄ Refreshing
//
// Logout and invalidation return to Anonymous from any authenticated
// state. Every transition bumps the session epoch; a refresh result
// arriving under a different epoch than it started with is discarded,
// so a logout issued mid-refresh always wins.
//
// # Watchdog
//
// While authenticated, a background ticker inspects the credential
// once a minute. A credential inside the refresh window is exchanged
// proactively; an expired one, or a failed exchange, drops the
// session. The ticker stops when the session ends or the manager is
// closed.
//
// # Usage
//
//	store := session.NewStore(cfg.Session.Dir)
//	manager := session.NewManager(store, client.Admin())
//	client.BindSession(manager)
//
//	if err := manager.Initialize(ctx); err != nil { ... }
//	defer manager.Close()
//
//	result := manager.Login(ctx, username, password)
//	if result.Success {
//		fmt.Println("logged in as", result.User.Username)
//	}
package session
