package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/reelbook/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type stubResolver map[string]httpx.Principal

func (s stubResolver) Resolve(_ context.Context, authz string) (httpx.Principal, bool) {
	p, ok := s[authz]
	return p, ok
}

var alice = httpx.Principal{AccountID: "acc-alice", Handle: "alice", Role: "USER"}

func TestChainOrder(t *testing.T) {
	var trace []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trace = append(trace, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		trace = append(trace, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, trace)
}

func whoAmI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := httpx.PrincipalFrom(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(p.Handle))
	})
}

func TestAuthenticate_FailsOpen(t *testing.T) {
	h := httpx.Authenticate(stubResolver{"Bearer good": alice})(whoAmI())

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "anonymous"},
		{"garbage header", "Basic Zm9vOmJhcg==", "anonymous"},
		{"unknown token", "Bearer bad", "anonymous"},
		{"valid token", "Bearer good", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	h := httpx.Chain(whoAmI(),
		httpx.Authenticate(stubResolver{"Bearer good": alice}),
		httpx.RequireAuthenticated(),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unauthorized", body.Error)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	admin := httpx.Principal{AccountID: "acc-root", Handle: "root", Role: "ADMIN"}
	h := httpx.Chain(whoAmI(),
		httpx.Authenticate(stubResolver{"Bearer user": alice, "Bearer admin": admin}),
		httpx.RequireRole("ADMIN"),
	)

	send := func(authz string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusUnauthorized, send(""))
	require.Equal(t, http.StatusForbidden, send("Bearer user"))
	require.Equal(t, http.StatusOK, send("Bearer admin"))
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	decode := func(body string) (payload, error) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &p)
		return p, err
	}

	p, err := decode(`{"name":"alice"}`)
	require.NoError(t, err)
	require.Equal(t, "alice", p.Name)

	_, err = decode(``)
	require.Error(t, err)

	_, err = decode(`{"name":"alice","extra":1}`)
	require.Error(t, err)

	_, err = decode(`{"name":"a"}{"name":"b"}`)
	require.Error(t, err)
}
