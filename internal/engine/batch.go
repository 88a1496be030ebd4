package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/clauseguard/internal/schema"
)

// BatchResult is one entry of AnalyzeBatch. Err is set only for failures
// that prevent any report, such as validation errors or cancellation.
type BatchResult struct {
	Report *schema.Report
	Err    error
}

// AnalyzeBatch analyzes reqs with bounded concurrency and returns results in
// input order. One document's failure never affects another. A positive
// timeout bounds the batch; documents whose external analysis has not
// finished by then receive degraded reports.
func (e *Engine) AnalyzeBatch(ctx context.Context, reqs []Request, timeout time.Duration) []BatchResult {
	actx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := make([]BatchResult, len(reqs))
	var g errgroup.Group
	g.SetLimit(e.opts.Concurrency)
	for i := range reqs {
		g.Go(func() error {
			r, err := e.Analyze(actx, reqs[i])
			out[i] = BatchResult{Report: r, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	degraded, failed := 0, 0
	for _, r := range out {
		switch {
		case r.Err != nil:
			failed++
		case r.Report.Degraded():
			degraded++
		}
	}
	e.logger.InfoContext(ctx, "batch complete", "documents", len(reqs), "degraded", degraded, "failed", failed)
	return out
}
