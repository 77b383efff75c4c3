package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lang-track/api/internal/api/service"
	"github.com/lang-track/api/internal/api/store"
	"github.com/lang-track/api/pkg/httpx"
	"github.com/lang-track/api/pkg/jwtx"
	"github.com/lang-track/api/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier          jwtx.Verifier
	allowRegistration string
	buildVersion      string
	startTime         time.Time
	logger            *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	TimeEntryService *service.TimeEntryService
}

func NewRouter(
	verifier jwtx.Verifier,
	allowRegistration, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:               http.NewServeMux(),
		verifier:          verifier,
		allowRegistration: allowRegistration,
		buildVersion:      buildVersion,
		startTime:         time.Now(),
		store:             st,
		logger:            logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTimeEntries()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/register - gated on the registration flag before the body
	// is even read.
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(registerHandler,
			RegistrationGate(r.allowRegistration),
		),
	)

	// POST /auth/login
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/login", loginHandler)
}

func (r *Router) registerTimeEntries() {
	h := &TimeEntriesHandler{TimeEntryService: r.TimeEntryService}

	// The whole /api surface requires a Bearer session token; the owner id
	// always comes from the verified claims.
	secured := func(next http.Handler) http.Handler {
		return httpx.Chain(next, httpx.AuthnMiddleware(r.verifier))
	}

	r.Mux.Handle("POST /api/time-entries", secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/time-entries", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /api/time-entries/{id}", secured(http.HandlerFunc(h.HandleGet)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
