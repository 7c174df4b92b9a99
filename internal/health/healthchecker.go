// Package health aggregates component health into a single service flag.
package health

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ServiceHealthChecker folds the health of all registered dependencies
// into one cached flag. The service is healthy only while every
// dependency is.
type ServiceHealthChecker struct {
	healthy atomic.Bool
	deps    []HealthChecker
	log     zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log}
}

// IsHealthy returns cached service health without probing anything.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() }

// Start re-evaluates dependency health on the given interval until the
// context is cancelled. Transitions are logged once, with the names of
// the dependencies that are down.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasHealthy := false
	for {
		down := h.downDependencies()
		nowHealthy := len(down) == 0
		h.healthy.Store(nowHealthy)

		if nowHealthy != wasHealthy {
			if nowHealthy {
				h.log.Info().Msg("service health: UP")
			} else {
				h.log.Error().Str("down", strings.Join(down, ",")).Msg("service health: DOWN")
			}
			wasHealthy = nowHealthy
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *ServiceHealthChecker) downDependencies() []string {
	var down []string
	for _, c := range h.deps {
		if !c.IsHealthy() {
			down = append(down, c.Name())
		}
	}
	return down
}
