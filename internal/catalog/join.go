package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/database"
)

// join runs two independent lookups concurrently and waits for both. The
// first error cancels the other lookup's context and is returned.
func join[A, B any](
	ctx context.Context,
	first func(context.Context) (A, error),
	second func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := first(gctx)
		if err != nil {
			return err
		}
		a = v
		return nil
	})
	g.Go(func() error {
		v, err := second(gctx)
		if err != nil {
			return err
		}
		b = v
		return nil
	})
	err := g.Wait()
	return a, b, err
}

// optional adapts a single-record lookup so that a missing record yields
// nil instead of an error.
func optional[T any](lookup func(context.Context) (*T, error)) func(context.Context) (*T, error) {
	return func(ctx context.Context) (*T, error) {
		v, err := lookup(ctx)
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return v, err
	}
}
