package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapFunc transforms one item. It receives the item's index in the input.
type MapFunc[T, R any] func(ctx context.Context, index int, item T) R

// MapOrdered runs fn for every item with at most limit calls in flight and
// returns the results in input order. A limit <= 0 means one goroutine per item.
// Failures belong in R: fn cannot abort its siblings.
func MapOrdered[T, R any](ctx context.Context, items []T, limit int, fn MapFunc[T, R]) []R {
	if len(items) == 0 {
		return nil
	}

	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			// each goroutine owns exactly one slot, so no locking is needed
			results[i] = fn(ctx, i, item)
			return nil
		})
	}

	_ = g.Wait()

	return results
}
