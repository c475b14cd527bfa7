package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a session token. There is no refresh
// flow, the client logs in again once it lapses.
const DefaultSessionTTL = 24 * time.Hour

// Claims is the session-token claim set. The subject is the account handle;
// handles can be renamed and reused, so the account id travels alongside it.
type Claims struct {
	jwt.RegisteredClaims

	// AccountID is the id of the account the token was issued to.
	AccountID string `json:"uid"`

	// Role is the account role at issue time ("USER" or "ADMIN").
	Role string `json:"role"`
}

// NewSessionClaims builds the claim set for the account. The result depends
// only on its arguments, so issuing twice at the same instant yields the same token.
func NewSessionClaims(accountID, handle, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   handle,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: accountID,
		Role:      role,
	}
}

// ValidateIssuer checks the issuer when expected is set.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryAt reports ErrExpired when now is past exp (plus leeway).
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrMalformed
	}
	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	return nil
}

// ExpiresIn returns the remaining lifetime at now, floored at zero.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}
