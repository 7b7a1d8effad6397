package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cinelog/sessiond/internal/session/service"
	"github.com/cinelog/sessiond/internal/session/store"
	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/slogx"

	_ "github.com/cinelog/sessiond/api/session" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Session Service API
//	@version		0.1.0
//	@description	Issues, resolves, rotates, and revokes opaque bearer sessions (ROPC style).
//	@description
//	@description				Access tokens are 40-character lowercase hex strings carrying 160 bits of entropy.
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
//	@description				Opaque access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	// POST /v1/session - issuance; trusted callers only, strict limit to slow
	// down anything that slips past them.
	createHandler := &CreateHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/session",
		httpx.Chain(createHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /session/renew - rotation; same strict treatment, the refresh
	// token is effectively a credential.
	renewHandler := &RenewHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/session/renew",
		httpx.Chain(renewHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /session/revoke - requires a resolved session.
	revokeHandler := &RevokeHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/session/revoke",
		httpx.Chain(revokeHandler,
			Authenticate(r.SessionService, Required),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	infoHandler := &InfoHandler{}

	// GET /session - resolve the presented credential or 401.
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(infoHandler.HandleCurrent),
			Authenticate(r.SessionService, Required),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /session/peek - optional gate; anonymous callers get a 200 too.
	r.Mux.Handle("GET /v1/session/peek",
		httpx.Chain(http.HandlerFunc(infoHandler.HandlePeek),
			Authenticate(r.SessionService, Optional),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
