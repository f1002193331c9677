package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// DashboardRefresher re-runs the dashboard refresh on an interval so that
// provider responses stay warm in the cache between requests.
type DashboardRefresher struct {
	tracer    trace.Tracer
	dashboard DashboardRefreshRunner
	interval  time.Duration
}

type DashboardRefreshRunner interface {
	RefreshDashboard(ctx context.Context) error
}

func NewDashboardRefresher(tracer trace.Tracer, dashboard DashboardRefreshRunner, intervalSecs int) *DashboardRefresher {
	return &DashboardRefresher{
		tracer:    tracer,
		dashboard: dashboard,
		interval:  time.Duration(intervalSecs) * time.Second,
	}
}

// Start blocks until ctx is cancelled. A non-positive interval disables it.
func (r *DashboardRefresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		log.Println("Dashboard refresher disabled")
		return
	}
	log.Printf("Dashboard refresher starting (every %v)", r.interval)

	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Dashboard refresher stopped")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *DashboardRefresher) runOnce(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "job.dashboard-refresh")
	defer span.End()

	if err := r.dashboard.RefreshDashboard(ctx); err != nil {
		log.Printf("dashboard refresh error: %v", err)
	}
}
