package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakePinger struct {
	fail atomic.Bool
}

func (f *fakePinger) HealthPing(context.Context) error {
	if f.fail.Load() {
		return errors.New("triplestore unreachable")
	}
	return nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestStoreHealthCheckerStartsUnhealthy(t *testing.T) {
	hc := NewStoreHealthChecker(&fakePinger{}, zerolog.Nop(), time.Second)
	if hc.IsHealthy() {
		t.Fatal("expected unhealthy before first probe")
	}
	if hc.Name() != "store" {
		t.Fatalf("unexpected name %q", hc.Name())
	}
}

func TestStoreHealthCheckerProbeCycle(t *testing.T) {
	pinger := &fakePinger{}
	hc := NewStoreHealthChecker(pinger, zerolog.Nop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, 10*time.Millisecond)

	if !waitFor(t, time.Second, hc.IsHealthy) {
		t.Fatal("expected healthy after successful probe")
	}

	pinger.fail.Store(true)
	if !waitFor(t, time.Second, func() bool { return !hc.IsHealthy() }) {
		t.Fatal("expected unhealthy after probe failure")
	}

	pinger.fail.Store(false)
	if !waitFor(t, time.Second, hc.IsHealthy) {
		t.Fatal("expected recovery after probes succeed again")
	}
}
