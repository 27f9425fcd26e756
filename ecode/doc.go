// Package ecode defines the client-side failure taxonomy and the
// user-facing messages derived from it.
//
// Kinds:
//
//	ecode.Validation    // malformed input or response shape
//	ecode.Network       // unreachable backend
//	ecode.Timeout       // bounded wait exceeded
//	ecode.Unauthorized  // in-session credential rejected (401)
//	ecode.Store         // session persistence failure
//	ecode.Decode        // malformed credential structure
//	ecode.Backend       // backend-reported failure other than 401
//
// Errors carry an internal message and optionally wrap a cause; the
// kind survives fmt.Errorf("%w") wrapping and is recovered with
// ecode.KindOf or ecode.Is. UserMessage resolves any error to a
// display string in the client's fixed locale, preferring a
// backend-supplied message where one exists.
package ecode
