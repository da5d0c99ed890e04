package train

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// BestOf runs n restarts of run concurrently and returns the model whose History
// has the lowest Score. Runs with a NaN score lose to any finite one; if
// every score is NaN the first restart wins.
//
// Each run must build its own model: instances share no mutable state. The
// first error cancels ctx for the remaining runs and is returned.
func BestOf[M any](ctx context.Context, n int, run func(ctx context.Context, restart int) (M, *History, error)) (M, *History, error) {
	var zero M
	if n < 1 {
		return zero, nil, fmt.Errorf("best of: restarts must be positive, got %d", n)
	}

	models := make([]M, n)
	histories := make([]*History, n)

	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, h, err := run(ctx, i)
			if err != nil {
				return fmt.Errorf("restart %d: %w", i, err)
			}
			models[i], histories[i] = m, h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, nil, err
	}

	best := 0
	for i := 1; i < n; i++ {
		if better(score(histories[i]), score(histories[best])) {
			best = i
		}
	}
	return models[best], histories[best], nil
}

func score(h *History) float64 {
	if h == nil {
		return math.NaN()
	}
	return h.Score()
}

func better(candidate, current float64) bool {
	if math.IsNaN(candidate) {
		return false
	}
	return math.IsNaN(current) || candidate < current
}
