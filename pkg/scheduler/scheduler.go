package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Task is one scheduled action body. Errors are logged and isolated; they
// never stop the scheduler or other jobs.
type Task func() error

// JobInfo is a read-only snapshot of one registered job.
type JobInfo struct {
	ID      string     `json:"id"`
	Trigger string     `json:"trigger"` // cron expression or interval
	Overlap bool       `json:"overlap"` // whether concurrent runs are allowed
	LastRun *time.Time `json:"last_run,omitempty"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// Scheduler wraps gocron with named jobs, per-run panic isolation and a
// singleton-by-default execution policy.
type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*jobEntry
	mu        sync.RWMutex
	running   bool
	logger    *slog.Logger
}

type jobEntry struct {
	info JobInfo
	job  *gocron.Job
}

// New creates a scheduler firing in the given location.
func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		jobs:      make(map[string]*jobEntry),
		logger:    slog.Default().With("component", "scheduler"),
	}
}

// Start begins firing jobs asynchronously.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.scheduler.StartAsync()
	s.running = true
	s.logger.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop halts the scheduler, waiting for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.scheduler.Stop()
	s.running = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning reports whether the scheduler is firing.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// AddCronJob registers task under id on a cron expression, evaluated in the
// scheduler's location. At most one instance of the job runs at a time.
func (s *Scheduler) AddCronJob(id, cronExpr string, task Task) error {
	return s.add(id, cronExpr, false, func() (*gocron.Job, error) {
		return s.scheduler.Cron(cronExpr).Do(s.wrap(id, task))
	})
}

// AddIntervalJob registers task under id to fire every interval, measured
// from scheduler start. When overlap is true the job may run concurrently
// with itself; otherwise a firing is skipped while the previous run is
// still going.
func (s *Scheduler) AddIntervalJob(id string, interval time.Duration, overlap bool, task Task) error {
	return s.add(id, interval.String(), overlap, func() (*gocron.Job, error) {
		return s.scheduler.Every(interval).Do(s.wrap(id, task))
	})
}

func (s *Scheduler) add(id, trigger string, overlap bool, schedule func() (*gocron.Job, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job %q already registered", id)
	}

	job, err := schedule()
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", id, err)
	}
	if !overlap {
		job.SingletonMode()
	}

	s.jobs[id] = &jobEntry{
		info: JobInfo{ID: id, Trigger: trigger, Overlap: overlap},
		job:  job,
	}
	s.logger.Info("Job registered", "id", id, "trigger", trigger, "overlap", overlap)
	return nil
}

// wrap isolates one invocation: it stamps run times, recovers panics and
// logs errors so a failing action cannot take the scheduler down.
func (s *Scheduler) wrap(id string, task Task) func() {
	return func() {
		now := time.Now()
		s.mu.Lock()
		if entry, ok := s.jobs[id]; ok {
			entry.info.LastRun = &now
		}
		s.mu.Unlock()

		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Job panicked", "id", id, "panic", r)
			}
		}()

		if err := task(); err != nil {
			s.logger.Error("Job failed", "id", id, "error", err)
		}
	}
}

// ListJobs returns snapshots of every registered job, keyed by ID.
func (s *Scheduler) ListJobs() map[string]JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[string]JobInfo, len(s.jobs))
	for id, entry := range s.jobs {
		info := entry.info
		if entry.job != nil {
			nextRun := entry.job.NextRun()
			info.NextRun = &nextRun
		}
		jobs[id] = info
	}
	return jobs
}
