package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestAddCronJob_DuplicateIDRejected(t *testing.T) {
	s := New(time.UTC)

	if err := s.AddCronJob("daily", "0 6 * * *", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddCronJob("daily", "0 7 * * *", func() error { return nil }); err == nil {
		t.Fatal("expected duplicate ID to be rejected")
	}
}

func TestListJobs_ReportsRegisteredJobs(t *testing.T) {
	s := New(time.UTC)

	if err := s.AddCronJob("morning", "10 4 * * *", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddIntervalJob("rolling", 2*time.Hour, true, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jobs := s.ListJobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs["morning"].Trigger != "10 4 * * *" {
		t.Errorf("unexpected trigger %q", jobs["morning"].Trigger)
	}
	if jobs["morning"].Overlap {
		t.Error("cron jobs must be singleton by default")
	}
	if !jobs["rolling"].Overlap {
		t.Error("expected overlap to be recorded")
	}
	if jobs["rolling"].Trigger != "2h0m0s" {
		t.Errorf("unexpected trigger %q", jobs["rolling"].Trigger)
	}
}

func TestScheduler_IsolatesPanicsAndErrors(t *testing.T) {
	s := New(time.UTC)

	var healthyRuns atomic.Int32
	if err := s.AddIntervalJob("panics", 10*time.Millisecond, false, func() error {
		panic("kaboom")
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddIntervalJob("errors", 10*time.Millisecond, false, func() error {
		return errors.New("always fails")
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddIntervalJob("healthy", 10*time.Millisecond, false, func() error {
		healthyRuns.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for healthyRuns.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if healthyRuns.Load() < 2 {
		t.Error("healthy job should keep running despite sibling failures")
	}
}

func TestScheduler_StartStopIdempotent(t *testing.T) {
	s := New(time.UTC)

	if s.IsRunning() {
		t.Error("new scheduler must not be running")
	}
	s.Start()
	s.Start()
	if !s.IsRunning() {
		t.Error("expected scheduler to be running")
	}
	s.Stop()
	s.Stop()
	if s.IsRunning() {
		t.Error("expected scheduler to be stopped")
	}
}

func TestWrap_StampsLastRun(t *testing.T) {
	s := New(time.UTC)
	if err := s.AddCronJob("stamped", "0 0 * * *", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.wrap("stamped", func() error { return nil })()

	jobs := s.ListJobs()
	if jobs["stamped"].LastRun == nil {
		t.Error("expected LastRun to be stamped after a run")
	}
}
