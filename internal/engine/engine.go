// Package engine orchestrates a compliance analysis: it runs the external
// analysis and the framework checklists side by side, merges their output,
// scores the result, plans mitigation and stores the finished report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/clauseguard/internal/analysis"
	"github.com/dshills/clauseguard/internal/document"
	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/framework"
	"github.com/dshills/clauseguard/internal/schema"
	"github.com/dshills/clauseguard/internal/store"
)

// DefaultFrameworks is used when a request names none.
var DefaultFrameworks = []string{"general", "gdpr"}

// Analyzer is the external analysis contract the engine depends on.
// *analysis.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

// Options configures an Engine.
type Options struct {
	Frameworks  []string
	Depth       schema.Depth
	Concurrency int
	Clock       clockwork.Clock
	Logger      *slog.Logger
	// NewID generates report IDs. Defaults to uuid.NewString.
	NewID func() string
}

// Request is one document to analyze.
type Request struct {
	DocumentID string
	Text       string
	Frameworks []string
	Depth      schema.Depth
	References []document.Reference
}

// Engine produces compliance reports. It is safe for concurrent use.
type Engine struct {
	client   Analyzer
	registry *framework.Registry
	store    store.ReportStore
	opts     Options
	logger   *slog.Logger
}

// New returns an Engine. A nil registry uses the built-in frameworks and a
// nil store an unbounded in-memory one.
func New(client Analyzer, registry *framework.Registry, st store.ReportStore, opts Options) *Engine {
	if registry == nil {
		registry = framework.NewRegistry(nil)
	}
	if st == nil {
		st = store.NewMemory(0, 0)
	}
	if len(opts.Frameworks) == 0 {
		opts.Frameworks = DefaultFrameworks
	}
	if opts.Depth == "" {
		opts.Depth = schema.DepthStandard
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{client: client, registry: registry, store: st, opts: opts, logger: logger}
}

// Analyze assesses one document and returns the stored report. Empty text
// is valid input. If the external analysis fails for any reason other than
// caller cancellation, the report is built from the framework checklists
// alone and flagged as degraded.
func (e *Engine) Analyze(ctx context.Context, req Request) (*schema.Report, error) {
	names := req.Frameworks
	if len(names) == 0 {
		names = e.opts.Frameworks
	}
	analyzers, err := e.registry.Resolve(names)
	if err != nil {
		return nil, err
	}
	depth := req.Depth
	if depth == "" {
		depth = e.opts.Depth
	}
	if !depth.IsValid() {
		return nil, fmt.Errorf("%w: unknown depth %q", errs.ErrValidation, depth)
	}
	if !utf8.ValidString(req.Text) {
		return nil, fmt.Errorf("%w: document is not valid UTF-8 text", errs.ErrValidation)
	}

	fws := make([]*framework.Framework, len(analyzers))
	for i, a := range analyzers {
		fws[i] = a.Framework()
	}

	var (
		g           errgroup.Group
		result      *analysis.Result
		externalErr error
		assessments = make([]*framework.Assessment, len(analyzers))
	)
	g.Go(func() error {
		result, externalErr = e.client.Analyze(ctx, analysis.Request{
			Text:       req.Text,
			Frameworks: fws,
			Depth:      depth,
			References: req.References,
		})
		return nil
	})
	for i, a := range analyzers {
		g.Go(func() error {
			as, err := a.Analyze(req.Text)
			assessments[i] = as
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if externalErr != nil && errors.Is(externalErr, context.Canceled) {
		return nil, externalErr
	}

	in := buildInput{
		documentID:  req.DocumentID,
		text:        req.Text,
		depth:       depth,
		assessments: assessments,
		result:      result,
		externalErr: externalErr,
	}
	report := e.build(in)

	if err := e.store.Put(ctx, report); err != nil {
		return nil, fmt.Errorf("storing report: %w", err)
	}

	if report.Degraded() {
		e.logger.WarnContext(ctx, "degraded report issued",
			"report_id", report.ReportID, "document_id", report.DocumentID, "reason", externalErr)
	}
	e.logger.InfoContext(ctx, "report issued",
		"report_id", report.ReportID,
		"document_id", report.DocumentID,
		"status", report.OverallStatus,
		"risk_score", report.RiskScore,
		"issues", len(report.Issues))
	return report, nil
}

// GetReport returns a previously issued report or an error wrapping
// errs.ErrNotFound.
func (e *Engine) GetReport(ctx context.Context, id string) (*schema.Report, error) {
	return e.store.Get(ctx, id)
}
