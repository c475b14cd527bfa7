package httpx

import (
	"context"
	"net/http"
)

// IdentityResolver turns the Authorization header value into a caller.
// It reports false for anything that does not resolve, it never errors.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (Principal, bool)
}

// Authenticate attaches the resolved caller to the request context. Requests
// without a usable credential continue anonymously; RequireAuthenticated and
// RequireRole decide whether that is acceptable for a route.
func Authenticate(resolver IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, ok := resolver.Resolve(r.Context(), authz)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
