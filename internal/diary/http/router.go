package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/internal/diary/store"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"

	_ "github.com/aussiebroadwan/reelbook/api/diary" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *httpx.Metrics

	store              store.Store
	Gate               *service.Gate
	AccountService     *service.AccountService
	SocialService      *service.SocialService
	GroupService       *service.GroupService
	MaintenanceService *service.MaintenanceService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	gate *service.Gate,
	metrics *httpx.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      metrics,
		store:        st,
		Gate:         gate,
	}

	// Metrics sits last so it sees the request the mux annotates.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Authenticate(r.Gate),
	}
	if r.metrics != nil {
		r.middlewares = append(r.middlewares, r.metrics.Middleware())
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerAdmin()
	r.registerGroups()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Reelbook Diary Service API
//	@version		0.1.0
//	@description	Accounts, e-mail verification, follows and movie groups for the Reelbook diary.
//	@description
//	@description				Session tokens are HS256 JWTs returned by verify and login.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/reelbook
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Accounts: r.AccountService}

	// Registration - strict rate limit by IP
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Code endpoints - strict, keyed by IP + address so codes can't be guessed
	r.Mux.Handle("POST /v1/auth/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/auth/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// Login - strict rate limit by IP + identifier
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "identifier"),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Accounts: r.AccountService, Social: r.SocialService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireAuthenticated(),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireAuthenticated(),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		)
	}
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.PublicLimit))
	}

	r.Mux.Handle("GET /v1/users/me", read(h.HandleMe))
	r.Mux.Handle("PATCH /v1/users/me", write(h.HandleUpdateMe))
	r.Mux.Handle("GET /v1/users", read(h.HandleSearch))

	// Password change - strict, it checks the current password
	r.Mux.Handle("PUT /v1/users/me/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.RequireAuthenticated(),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/users/{id}", public(h.HandleGet))
	r.Mux.Handle("GET /v1/users/{id}/followers", public(h.HandleFollowers))
	r.Mux.Handle("GET /v1/users/{id}/following", public(h.HandleFollowing))

	r.Mux.Handle("POST /v1/users/{id}/follow", write(h.HandleFollow))
	r.Mux.Handle("DELETE /v1/users/{id}/follow", write(h.HandleUnfollow))
}

func (r *Router) registerAdmin() {
	h := &UsersHandler{Accounts: r.AccountService, Social: r.SocialService}

	r.Mux.Handle("PUT /v1/admin/users/{id}/role",
		httpx.Chain(http.HandlerFunc(h.HandleSetRole),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerGroups() {
	h := &GroupsHandler{Groups: r.GroupService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireAuthenticated(),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireAuthenticated(),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/groups", write(h.HandleCreate))
	r.Mux.Handle("GET /v1/groups", read(h.HandleList))
	r.Mux.Handle("GET /v1/groups/{id}", read(h.HandleGet))
	r.Mux.Handle("POST /v1/groups/{id}/join", write(h.HandleJoin))
	r.Mux.Handle("POST /v1/groups/{id}/leave", write(h.HandleLeave))
	r.Mux.Handle("GET /v1/groups/{id}/members", read(h.HandleMembers))
	r.Mux.Handle("PUT /v1/groups/{id}/members/{accountID}/role", write(h.HandleSetMemberRole))
	r.Mux.Handle("GET /v1/groups/{id}/messages", read(h.HandleListMessages))
	r.Mux.Handle("POST /v1/groups/{id}/messages", write(h.HandleSendMessage))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	var scheduler SchedulerState
	if r.MaintenanceService != nil {
		scheduler = r.MaintenanceService
	}
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, scheduler),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
