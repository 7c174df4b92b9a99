package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/health"
)

// StoreHealthChecker monitors triplestore reachability via periodic pings.
// It starts unhealthy and stays so until the first successful probe.
type StoreHealthChecker struct {
	pinger       health.HealthPinger
	healthy      atomic.Bool
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewStoreHealthChecker(pinger health.HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *StoreHealthChecker {
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}
	return &StoreHealthChecker{pinger: pinger, log: log, probeTimeout: probeTimeout}
}

func (hc *StoreHealthChecker) Name() string { return "store" }

// IsHealthy returns the cached probe result without blocking.
func (hc *StoreHealthChecker) IsHealthy() bool { return hc.healthy.Load() }

// Start probes the triplestore on the given interval until the context
// is cancelled.
func (hc *StoreHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		hc.healthy.Store(hc.probe(ctx))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (hc *StoreHealthChecker) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, hc.probeTimeout)
	defer cancel()

	if err := hc.pinger.HealthPing(probeCtx); err != nil {
		hc.log.Error().
			Str("checker", hc.Name()).
			Err(err).
			Msg("store health check failed")
		return false
	}
	return true
}
