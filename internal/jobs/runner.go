package jobs

import (
	"context"
	"time"

	"ihome-rentals/pkg/logger"
)

// AreaRefresher reloads the cached area directory.
type AreaRefresher interface {
	RefreshAreas(ctx context.Context) error
}

// LimiterSweeper drops idle per-client rate limiters.
type LimiterSweeper interface {
	Cleanup(maxIdle time.Duration) int
}

// JobRunner holds the periodic maintenance tasks.
type JobRunner struct {
	areas          AreaRefresher
	limiters       LimiterSweeper
	limiterMaxIdle time.Duration
	timeout        time.Duration
}

func NewJobRunner(areas AreaRefresher, limiters LimiterSweeper, limiterMaxIdle time.Duration) *JobRunner {
	return &JobRunner{
		areas:          areas,
		limiters:       limiters,
		limiterMaxIdle: limiterMaxIdle,
		timeout:        30 * time.Second,
	}
}

// WarmAreas rewrites area_info so readers rarely see a miss.
func (r *JobRunner) WarmAreas() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	if err := r.areas.RefreshAreas(ctx); err != nil {
		logger.GlobalLogger.Warnf("area warm-up failed: %v", err)
		return
	}
	logger.GlobalLogger.Debugf("area warm-up done in %v", time.Since(start))
}

// SweepLimiters removes rate limiters of clients idle longer than the configured window.
func (r *JobRunner) SweepLimiters() {
	removed := r.limiters.Cleanup(r.limiterMaxIdle)
	if removed > 0 {
		logger.GlobalLogger.Printf("removed %d idle rate limiters", removed)
	}
}
