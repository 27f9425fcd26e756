package token

import (
	"strings"
	"time"

	"github.com/askdesk/askdesk-go/ecode"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

// Claims holds the decoded credential contents the client interprets.
// The signature is never verified here; trust is delegated to the
// backend on every request.
type Claims struct {
	// Exp expiry, seconds since epoch (required)
	Exp int64
	// Iat issuance, seconds since epoch (optional)
	Iat int64
	// Subject token subject (optional)
	Subject string
	// Username principal name when embedded (optional)
	Username string
	// Role principal role when embedded (optional)
	Role string
}

// Decode parses a bearer credential without verifying its signature.
// The credential must be a non-empty three-segment JWT whose payload is
// a base64url JSON object carrying a numeric exp claim. Every violation
// yields an ecode.Decode error.
func Decode(credential string) (*Claims, error) {
	if credential == "" {
		return nil, ecode.New(ecode.Decode, "empty credential")
	}
	if strings.Count(credential, ".") != 2 {
		return nil, ecode.New(ecode.Decode, "credential must have three segments")
	}

	parser := jwtstd.NewParser()
	mapClaims := jwtstd.MapClaims{}
	if _, _, err := parser.ParseUnverified(credential, mapClaims); err != nil {
		return nil, ecode.Wrap(ecode.Decode, "malformed credential", err)
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return nil, ecode.Wrap(ecode.Decode, "invalid exp claim", err)
	}
	if exp == nil {
		return nil, ecode.New(ecode.Decode, "missing exp claim")
	}

	claims := &Claims{Exp: exp.Unix()}

	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.Iat = iat.Unix()
	}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}

	return claims, nil
}

// ExpiresAt returns the expiry instant
func (c *Claims) ExpiresAt() time.Time {
	return time.Unix(c.Exp, 0)
}

// ExpiresIn returns the remaining lifetime relative to now; negative
// when already expired
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	return c.ExpiresAt().Sub(now)
}

// IsExpired reports whether the claims are expired at now (exp <= now)
func IsExpired(c *Claims, now time.Time) bool {
	return c.Exp <= now.Unix()
}

// Validate checks the structural shape of a credential without
// interpreting expiry
func Validate(credential string) error {
	_, err := Decode(credential)
	return err
}
