package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
)

// GenreReferenceRepairer finds and clears book genre references that point
// at genres which no longer exist.
type GenreReferenceRepairer interface {
	FindDanglingGenreReferences(ctx context.Context) ([]uint, error)
	ClearGenreReferences(ctx context.Context, bookIDs []uint) (int64, error)
}

// MaintenanceLogger records the outcome of a maintenance run.
type MaintenanceLogger interface {
	LogMaintenance(ctx context.Context, action, description string, err error)
}

// ReconcileGenresTask clears dangling genre references left behind when a
// genre was deleted while a book was being attached to it.
type ReconcileGenresTask struct {
	// DryRun only reports the dangling references.
	DryRun bool `json:"dry_run"`
}

// Config returns the queue configuration for reconcile tasks.
func (t ReconcileGenresTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "reconcile_genres",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ReconcileResult reports what a reconcile run found and changed.
type ReconcileResult struct {
	BookIDs []uint
	Cleared int64
}

// ReconcileGenres runs one reconcile pass. With dryRun set nothing is
// written.
func ReconcileGenres(ctx context.Context, repairer GenreReferenceRepairer, dryRun bool) (ReconcileResult, error) {
	ids, err := repairer.FindDanglingGenreReferences(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("find dangling genre references: %w", err)
	}

	result := ReconcileResult{BookIDs: ids}
	if dryRun || len(ids) == 0 {
		return result, nil
	}

	result.Cleared, err = repairer.ClearGenreReferences(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("clear genre references: %w", err)
	}
	return result, nil
}

// ReconcileGenresProcessor creates a processor function for ReconcileGenresTask.
func ReconcileGenresProcessor(repairer GenreReferenceRepairer, audit MaintenanceLogger) backlite.QueueProcessor[ReconcileGenresTask] {
	return func(ctx context.Context, task ReconcileGenresTask) error {
		if repairer == nil {
			return fmt.Errorf("genre reference repairer not configured")
		}

		result, err := ReconcileGenres(ctx, repairer, task.DryRun)
		if audit != nil && (err != nil || result.Cleared > 0) {
			audit.LogMaintenance(ctx, "reconcile_genres",
				fmt.Sprintf("Cleared %d dangling genre references", result.Cleared), err)
		}
		if err != nil {
			return err
		}

		log.Info().
			Int("dangling", len(result.BookIDs)).
			Int64("cleared", result.Cleared).
			Bool("dry_run", task.DryRun).
			Msg("reconciled genre references")
		return nil
	}
}

// NewReconcileGenresQueue creates a backlite queue for reconcile tasks.
func NewReconcileGenresQueue(repairer GenreReferenceRepairer, audit MaintenanceLogger) backlite.Queue {
	return backlite.NewQueue(ReconcileGenresProcessor(repairer, audit))
}
