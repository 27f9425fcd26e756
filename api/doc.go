// Package api is the authenticated request gateway to the question/FAQ
// backend and its typed endpoint services.
//
// Every call attaches the bearer header pulled from the bound session
// source, runs under a bounded deadline and a shared circuit breaker,
// and maps failures onto the ecode taxonomy. A 401 on an authenticated
// call surfaces an unauthorized error to the caller and invalidates
// the session; concurrent 401s against the same stale credential
// collapse to a single invalidation.
//
// Services:
//
//	client.Admin()      // login, logout, refresh, profile, accounts
//	client.Questions()  // admin triage: list, update, delete, stats
//	client.FAQ(rc)      // public archive, optionally cached in redis
//	client.Health(ctx)  // backend liveness
package api
