package jobs

import (
	"fmt"
	"time"

	"ihome-rentals/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Schedule holds six-field cron specs. An empty spec disables the job.
type Schedule struct {
	AreaWarmup     string
	LimiterCleanup string
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *JobRunner
}

// NewScheduler registers the jobs of runner under schedule.
func NewScheduler(runner *JobRunner, schedule Schedule) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)
	s := &Scheduler{cron: c, jobs: runner}

	if schedule.AreaWarmup != "" {
		if _, err := c.AddFunc(schedule.AreaWarmup, runner.WarmAreas); err != nil {
			return nil, fmt.Errorf("failed to register area warm-up job: %w", err)
		}
	}
	if schedule.LimiterCleanup != "" {
		if _, err := c.AddFunc(schedule.LimiterCleanup, runner.SweepLimiters); err != nil {
			return nil, fmt.Errorf("failed to register limiter cleanup job: %w", err)
		}
	}
	logger.GlobalLogger.Printf("registered %d cron jobs", len(c.Entries()))
	return s, nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.GlobalLogger.Println("cron scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.GlobalLogger.Println("cron scheduler stopped")
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}
