package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/reelbook/internal/diary/store"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"
)

// Gate turns an Authorization header into a caller identity. It never
// rejects: anything short of a valid token for the same live account, still
// under the same handle and role, is an anonymous request, and the route
// decides what that means.
type Gate struct {
	Tokens *TokenService
	Store  store.Store
}

var _ httpx.IdentityResolver = (*Gate)(nil)

func (g *Gate) Resolve(ctx context.Context, authorization string) (httpx.Principal, bool) {
	if authorization == "" {
		return httpx.Principal{}, false
	}
	l := slogx.FromContext(ctx)

	// 1. Parse the bearer credential
	scheme, raw, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	raw = strings.TrimSpace(raw)
	if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
		l.Info("gate: malformed authorization header")
		return httpx.Principal{}, false
	}

	// 2. Check signature and lifetime
	claims, err := g.Tokens.Validate(raw)
	if err != nil {
		l.Info("gate: token rejected", slog.String("reason", err.Error()))
		return httpx.Principal{}, false
	}

	// 3. Re-resolve the account; a renamed or missing subject is anonymous
	account, err := g.Store.Accounts().GetAccountByHandle(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("gate: subject no longer exists", slog.String("sub", claims.Subject))
		} else {
			l.Warn("gate: account lookup failed", slog.String("sub", claims.Subject), slog.Any("error", err))
		}
		return httpx.Principal{}, false
	}

	// A released handle can be taken by another account
	if account.ID != claims.AccountID {
		l.Info("gate: subject now belongs to another account",
			slog.String("sub", claims.Subject),
			slog.String("uid", claims.AccountID),
		)
		return httpx.Principal{}, false
	}

	// 4. A role change since issue invalidates the token
	if string(account.Role) != claims.Role {
		l.Info("gate: role changed since issue",
			slog.String("sub", claims.Subject),
			slog.String("token_role", claims.Role),
			slog.String("role", string(account.Role)),
		)
		return httpx.Principal{}, false
	}

	return httpx.Principal{
		AccountID: account.ID,
		Handle:    account.Handle,
		Role:      string(account.Role),
	}, true
}
