package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// settleAll runs n tasks concurrently and waits for every one of them. A task
// that fails is replaced by fallback(i, err); no failure cancels the others.
// Results are in index order regardless of completion order. A positive limit
// bounds the number of tasks in flight.
func settleAll[T any](ctx context.Context, limit, n int, run func(ctx context.Context, i int) (T, error), fallback func(i int, err error) T) []T {
	out := make([]T, n)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range n {
		g.Go(func() error {
			v, err := run(ctx, i)
			if err != nil {
				v = fallback(i, err)
			}
			out[i] = v
			return nil
		})
	}
	_ = g.Wait()

	return out
}
