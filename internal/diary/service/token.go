package service

import (
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/pkg/jwtx"
)

// IssuedToken is a signed session token and when it lapses.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

// TokenService issues and checks stateless HS256 session tokens. There is
// no server-side session record and no revocation list.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
	Now      func() time.Time
}

// NewTokenService wires an HS256 signer and verifier around one secret.
func NewTokenService(secret []byte, issuer string, ttl time.Duration, now func() time.Time) (*TokenService, error) {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{
		Issuer: issuer,
		Leeway: 5 * time.Second,
		Now:    now,
	})
	if err != nil {
		return nil, err
	}

	return &TokenService{Signer: signer, Verifier: verifier, Issuer: issuer, TTL: ttl, Now: now}, nil
}

// Issue signs a token for a. Same account and same instant give the same token.
func (s *TokenService) Issue(a domain.Account) (IssuedToken, error) {
	now := s.Now()
	claims := jwtx.NewSessionClaims(a.ID, a.Handle, string(a.Role), s.Issuer, s.TTL, now)

	raw, err := s.Signer.Sign(claims)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{
		Token:     raw,
		ExpiresAt: claims.ExpiresAt.Time,
		ExpiresIn: claims.ExpiresIn(now),
	}, nil
}

// Validate returns the claims of raw or one of jwtx.ErrMalformed,
// jwtx.ErrInvalidSig, jwtx.ErrExpired (and the other jwtx sentinels).
func (s *TokenService) Validate(raw string) (jwtx.Claims, error) {
	return s.Verifier.Verify(raw)
}
