// Package groupservice wires and runs the group service HTTP server.
package groupservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/api"
	"github.com/tinto-app/backend/internal/config"
	"github.com/tinto-app/backend/internal/health"
	"github.com/tinto-app/backend/internal/logger"
	"github.com/tinto-app/backend/internal/services"
	"github.com/tinto-app/backend/internal/sparql"
	"github.com/tinto-app/backend/internal/store"
	"github.com/tinto-app/backend/internal/store/sparqlstore"
)

// Run starts the group service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("group-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("triplestore_url", cfg.TriplestoreURL).
		Msg("Group service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	client := sparql.NewHTTPClient(cfg.TriplestoreURL)
	st := sparqlstore.New(client, log)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	router := buildRouter(st, cfg, log, svcHealth.IsHealthy)

	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, cfg *config.Config, log zerolog.Logger, isHealthy func() bool) *mux.Router {
	root := mux.NewRouter()

	sessionSvc := services.NewSessionService(st, log)
	groupSvc := services.NewGroupService(st, log)
	membershipSvc := services.NewMembershipService(st, log)
	leaderboardSvc := services.NewLeaderboardService(st)

	metrics := api.NewMetrics(prometheus.DefaultRegisterer)
	root.Use(api.Recover)
	root.Use(metrics.Middleware)
	root.Use(api.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	root.Use(api.NewPrincipalMiddleware(sessionSvc))

	sessionHandler := api.NewSessionHandler(sessionSvc)
	root.HandleFunc("/session", sessionHandler.Login).Methods("POST")
	root.HandleFunc("/me", sessionHandler.Me).Methods("GET")

	groupHandler := api.NewGroupHandler(groupSvc, membershipSvc)
	root.HandleFunc("/groups", groupHandler.ListGroups).Methods("GET")
	root.HandleFunc("/groups", groupHandler.CreateGroup).Methods("POST")
	root.HandleFunc("/groups/{id}", groupHandler.GetGroup).Methods("GET")
	root.HandleFunc("/groups/{id}/join", groupHandler.Join).Methods("POST")
	root.HandleFunc("/groups/{id}/members", groupHandler.ListMembers).Methods("GET")
	root.HandleFunc("/groups/{id}/leave", groupHandler.Leave).Methods("DELETE")

	leaderboardHandler := api.NewLeaderboardHandler(leaderboardSvc)
	root.HandleFunc("/groups/{id}/leaderboard", leaderboardHandler.Leaderboard).Methods("GET")

	healthHandler := api.NewHealthHandler(isHealthy)
	root.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")
	root.Handle("/metrics", api.MetricsHandler(prometheus.DefaultGatherer)).Methods("GET")
	return root
}

// startHealthCheckers starts the store checker and the service-level
// aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st *sparqlstore.GraphStore) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in
// seconds, calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup
// window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: triplestore not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on
// SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
