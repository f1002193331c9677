package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type stubDashboard struct {
	calls atomic.Int32
}

func (s *stubDashboard) RefreshDashboard(context.Context) error {
	s.calls.Add(1)
	return nil
}

func TestNewDashboardRefresherInterval(t *testing.T) {
	r := NewDashboardRefresher(testTracer, &stubDashboard{}, 900)
	if r.interval != 15*time.Minute {
		t.Fatalf("expected 15m interval, got %v", r.interval)
	}
}

func TestDashboardRefresherRunsImmediately(t *testing.T) {
	t.Parallel()

	stub := &stubDashboard{}
	r := NewDashboardRefresher(testTracer, stub, 3600)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	eventually(t, func() bool { return stub.calls.Load() > 0 })
	cancel()
	<-done
}

func TestDashboardRefresherDisabled(t *testing.T) {
	stub := &stubDashboard{}
	r := NewDashboardRefresher(testTracer, stub, 0)

	r.Start(context.Background())

	if stub.calls.Load() != 0 {
		t.Fatal("disabled refresher should not run")
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}
