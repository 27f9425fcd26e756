// Package token decodes bearer credentials without verifying their
// signature. The client only interprets structure and expiry; the
// backend re-verifies the signature on every request.
package token
