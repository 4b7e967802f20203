package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

// Enqueuer hands a task to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRun returns the next activation time of schedule after from.
func NextRun(schedule string, from time.Time) (time.Time, error) {
	s, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return s.Next(from), nil
}

// MaintenanceScheduler periodically enqueues genre reconciliation and audit pruning.
type MaintenanceScheduler struct {
	queue  Enqueuer
	config config.Maintenance

	cron      *cron.Cron
	entries   map[string]cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	baseCtx   context.Context
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(queue Enqueuer, cfg config.Maintenance) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		queue:   queue,
		config:  cfg,
		cron:    cron.New(cron.WithParser(parser)),
		entries: make(map[string]cron.EntryID),
	}
}

// Start registers the maintenance jobs and starts the cron loop. The
// scheduler stops when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Info().Msg("maintenance scheduler disabled")
		return nil
	}

	jobs := []struct {
		name     string
		schedule string
		task     func() backlite.Task
	}{
		{"reconcile_genres", s.config.ReconcileSchedule, func() backlite.Task { return tasks.ReconcileGenresTask{} }},
		{"prune_audit_events", s.config.AuditPruneSchedule, func() backlite.Task {
			return tasks.PruneAuditEventsTask{RetentionDays: s.config.AuditRetentionDays}
		}},
	}

	for _, job := range jobs {
		if job.schedule == "" {
			continue
		}
		if err := ValidateSchedule(job.schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", job.schedule, job.name, err)
		}
	}

	s.baseCtx = ctx
	for _, job := range jobs {
		if job.schedule == "" {
			continue
		}
		newTask := job.task
		id, err := s.cron.AddFunc(job.schedule, func() { s.enqueue(newTask()) })
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
		s.entries[job.name] = id
	}

	s.cron.Start()
	s.isRunning = true

	for name, id := range s.entries {
		log.Info().Str("job", name).Time("next_run", s.cron.Entry(id).Next).Msg("maintenance job scheduled")
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron loop and waits for running jobs.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	for name, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
	s.isRunning = false

	log.Info().Msg("maintenance scheduler stopped")
}

// RunNow enqueues a reconcile pass immediately.
func (s *MaintenanceScheduler) RunNow(ctx context.Context) error {
	_, err := s.queue.Enqueue(ctx, tasks.ReconcileGenresTask{})
	return err
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the named job fires next, or nil when it is not scheduled.
func (s *MaintenanceScheduler) NextRunTime(job string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entries[job]
	if !s.isRunning || !ok {
		return nil
	}
	next := s.cron.Entry(id).Next
	return &next
}

func (s *MaintenanceScheduler) enqueue(task backlite.Task) {
	ctx := s.baseCtx
	if ctx == nil || ctx.Err() != nil {
		ctx = context.Background()
	}
	name := task.Config().Name
	id, err := s.queue.Enqueue(ctx, task)
	if err != nil {
		log.Error().Err(err).Str("task", name).Msg("failed to enqueue maintenance task")
		return
	}
	log.Debug().Str("task", name).Str("task_id", id).Msg("maintenance task enqueued")
}
