package app

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/striketrack/backend/internal/auth"
	"github.com/striketrack/backend/internal/config"
	"github.com/striketrack/backend/internal/tracker"
	"github.com/striketrack/backend/internal/transport/middleware"
	"github.com/striketrack/backend/internal/transport/rest"
)

// loginRateLimit caps login attempts per IP per minute.
const loginRateLimit = 10

// newRouter builds the HTTP routing table with the standard middleware
// stack: request ID, panic recovery, request logging, CORS and bearer-token
// authentication. Mutation endpoints additionally require the admin role.
func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	svc *tracker.Service,
	authMgr *auth.Manager,
	limiter *middleware.RateLimiter,
) http.Handler {
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	trackerHandler := rest.NewTrackerHandler(svc, logger)
	authHandler := rest.NewAuthHandler(authMgr, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)

	mux.HandleFunc("GET /api/v1/tracker", trackerHandler.Dashboard)
	mux.HandleFunc("GET /api/v1/summary", trackerHandler.Summary)

	mux.Handle("POST /api/v1/admin/login",
		limiter.Limit(loginRateLimit)(http.HandlerFunc(authHandler.Login)))

	mux.Handle("POST /api/v1/strikes",
		middleware.RequireAdmin(http.HandlerFunc(trackerHandler.AddStrike)))
	mux.Handle("POST /api/v1/report",
		middleware.RequireAdmin(http.HandlerFunc(trackerHandler.Report)))

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authMgr),
	)

	return chain(mux)
}
