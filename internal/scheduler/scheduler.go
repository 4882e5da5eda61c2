package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the report job on a cron schedule in daemon mode.
type Scheduler struct {
	Cron *cron.Cron
	Job  func()
}

// NewScheduler creates a scheduler around the given job.
func NewScheduler(job func()) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Job:  job,
	}
}

// Register adds the report job under the given cron spec (with seconds).
func (s *Scheduler) Register(cronSpec string) error {
	if _, err := s.Cron.AddFunc(cronSpec, s.Job); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the report job immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.Job()
}
