package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Outcome is one entry of a batch: exactly one of Result or Err is set.
type Outcome struct {
	Result *Result
	Err    error
}

// AnalyzeBatch analyzes every request concurrently, at most Concurrency at a
// time, and returns outcomes in input order. A failing document does not
// cancel the others. A positive timeout bounds the whole batch; requests
// still running when it expires fail with the deadline error.
func (c *Client) AnalyzeBatch(ctx context.Context, reqs []Request, timeout time.Duration) []Outcome {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := make([]Outcome, len(reqs))

	// Plain Group, not WithContext: per-document errors are recorded in out
	// and never returned, so siblings keep running.
	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)

	for i := range reqs {
		g.Go(func() error {
			res, err := c.Analyze(ctx, reqs[i])
			out[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range out {
		if o.Err != nil {
			failed++
		}
	}
	c.logger.InfoContext(ctx, "analysis batch complete", "documents", len(reqs), "failed", failed)
	return out
}
