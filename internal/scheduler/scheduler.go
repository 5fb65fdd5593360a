// Package scheduler runs the pipeline jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/config"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
)

// Job names used for scheduling and metrics
const (
	JobScan   = "scan"
	JobSettle = "settle"
	JobStats  = "update_stats"
)

// JobFunc is one pipeline run
type JobFunc func(ctx context.Context) error

type job struct {
	name string
	spec string
	run  JobFunc
	id   cron.EntryID
}

// Scheduler manages the scheduled pipeline jobs. Runs of the same job
// never overlap and each run gets its own wall-clock budget.
type Scheduler struct {
	cron            *cron.Cron
	logger          logrus.FieldLogger
	mu              sync.RWMutex
	isRunning       bool
	jobs            map[string]*job
	order           []string
	runTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg config.SchedulerConfig, log logrus.FieldLogger) *Scheduler {
	log = logger.OrDiscard(log).WithField("component", "scheduler")

	runTimeout := cfg.RunTimeout
	if runTimeout <= 0 {
		runTimeout = 10 * time.Minute
	}
	graceful := cfg.GracefulTimeout
	if graceful <= 0 {
		graceful = 30 * time.Second
	}

	cronLog := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger:          log,
		jobs:            make(map[string]*job),
		runTimeout:      runTimeout,
		gracefulTimeout: graceful,
	}
}

// AddJob schedules fn under name with a cron expression
func (s *Scheduler) AddJob(name, spec string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already scheduled", name)
	}

	j := &job{name: name, spec: spec, run: fn}
	entryID, err := s.cron.AddFunc(spec, func() { _ = s.execute(context.Background(), j) })
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}
	j.id = entryID

	s.jobs[name] = j
	s.order = append(s.order, name)
	s.logger.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("Scheduled job")

	return nil
}

// RunNow executes a scheduled job immediately under the same timeout and
// metrics as a cron-triggered run
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q is not scheduled", name)
	}
	return s.execute(ctx, j)
}

func (s *Scheduler) execute(parent context.Context, j *job) error {
	ctx, cancel := context.WithTimeout(parent, s.runTimeout)
	defer cancel()

	started := time.Now()
	log := s.logger.WithField("job", j.name)
	log.Info("Job started")

	err := j.run(ctx)
	metrics.RecordJobRun(j.name, started, err)

	fields := logrus.Fields{"duration": time.Since(started).String()}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("Job failed")
		return err
	}
	log.WithFields(fields).Info("Job completed")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobs)).Info("Scheduler started")

	return nil
}

// Stop stops scheduling and waits for in-flight runs up to the graceful
// timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	s.isRunning = false

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, j := range s.jobs {
		entry := s.cron.Entry(j.id)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}

// Jobs returns the scheduled job names in insertion order
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot remove job while scheduler is running")
	}
	j, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("job %q is not scheduled", name)
	}

	s.cron.Remove(j.id)
	delete(s.jobs, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.WithField("job", name).Info("Removed job")

	return nil
}
