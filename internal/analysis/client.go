// Package analysis calls the external structured-analysis service. It adds
// content-keyed caching, exponential-backoff retry for transient failures,
// a one-shot repair request for malformed output, and bounded batching.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"

	"github.com/dshills/clauseguard/internal/analysis/validate"
	"github.com/dshills/clauseguard/internal/document"
	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/framework"
	"github.com/dshills/clauseguard/internal/llm"
	"github.com/dshills/clauseguard/internal/redact"
	"github.com/dshills/clauseguard/internal/schema"
)

// Options configures a Client. Unset MaxTokens, Concurrency, CallTimeout
// and Retry fall back to DefaultOptions.
type Options struct {
	Temperature float64
	MaxTokens   int
	Retry       RetryPolicy
	Concurrency int
	CacheSize   int           // 0 = unbounded
	CacheTTL    time.Duration // 0 = no expiry
	// CallTimeout bounds a shared service call, including retries. It runs
	// detached from any single caller's context.
	CallTimeout time.Duration
	Logger      *slog.Logger
}

// DefaultOptions returns the options used for unset fields.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.2,
		MaxTokens:   4096,
		Retry:       DefaultRetryPolicy(),
		Concurrency: 4,
		CacheSize:   256,
		CallTimeout: 5 * time.Minute,
	}
}

// Request is one document to analyze.
type Request struct {
	Text       string
	Frameworks []*framework.Framework
	Depth      schema.Depth
	References []document.Reference
}

// Result is the service's validated contribution for one document.
type Result struct {
	validate.Findings
	Model       string
	ParseFailed bool
	CacheHit    bool
	Redactions  int
}

// Client invokes the external analysis service.
type Client struct {
	provider llm.Provider
	opts     Options
	cache    *cache
	logger   *slog.Logger
}

// New returns a Client over p.
func New(p llm.Provider, opts Options) *Client {
	def := DefaultOptions()
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = def.MaxTokens
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = def.Concurrency
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = def.CallTimeout
	}
	if opts.Retry == (RetryPolicy{}) {
		opts.Retry = def.Retry
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		provider: p,
		opts:     opts,
		cache:    newCache(opts.CacheSize, opts.CacheTTL),
		logger:   logger,
	}
}

// Analyze returns the service's findings for req. A cached result for the
// same normalized content, frameworks, depth and references is returned
// without calling the service. Concurrent misses for one key share a call;
// a caller whose ctx ends stops waiting without failing the others.
// Validation failures are returned immediately; transient failures are
// retried and, once exhausted, wrapped in errs.ErrTransient.
func (c *Client) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := checkRequest(&req); err != nil {
		return nil, err
	}

	names := frameworkNames(req.Frameworks)
	key := document.Fingerprint(req.Text, names, string(req.Depth), document.Digest(req.References))

	if res, ok := c.cache.get(key); ok {
		c.logger.DebugContext(ctx, "analysis cache hit", "key", key[:12])
		return withCacheHit(res, true), nil
	}
	c.logger.DebugContext(ctx, "analysis cache miss", "key", key[:12])

	res, err := c.cache.fill(ctx, key, c.opts.CallTimeout, func(callCtx context.Context) (*Result, error) {
		return c.call(callCtx, req, names)
	})
	if err != nil {
		return nil, err
	}
	return withCacheHit(res, false), nil
}

func checkRequest(req *Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: document text is empty", errs.ErrValidation)
	}
	if !utf8.ValidString(req.Text) {
		return fmt.Errorf("%w: document is not valid UTF-8 text", errs.ErrValidation)
	}
	if len(req.Frameworks) == 0 {
		return fmt.Errorf("%w: at least one framework is required", errs.ErrValidation)
	}
	if req.Depth == "" {
		req.Depth = schema.DepthStandard
	}
	if !req.Depth.IsValid() {
		return fmt.Errorf("%w: unknown depth %q", errs.ErrValidation, req.Depth)
	}
	return nil
}

func frameworkNames(fws []*framework.Framework) []string {
	names := make([]string, 0, len(fws))
	for _, f := range fws {
		names = append(names, f.Name)
	}
	return names
}

func withCacheHit(res *Result, hit bool) *Result {
	r := *res
	r.CacheHit = hit
	return &r
}

// call performs the service request, one repair request if the first
// response fails validation, and falls back to empty findings if the
// repair also fails.
func (c *Client) call(ctx context.Context, req Request, names []string) (*Result, error) {
	text, redactions := redact.RedactCount(req.Text)
	refs := make([]document.Reference, len(req.References))
	for i, r := range req.References {
		refs[i] = document.Reference{Path: r.Path, Content: redact.Redact(r.Content)}
	}

	llmReq := &llm.Request{
		SystemPrompt: llm.BuildSystemPrompt(req.Frameworks, req.Depth),
		UserPrompt:   llm.BuildUserPrompt(text, names, refs),
		Temperature:  c.opts.Temperature,
		MaxTokens:    c.opts.MaxTokens,
	}

	resp, err := c.complete(ctx, llmReq)
	if err != nil {
		return nil, err
	}

	findings, parseErr := validate.Parse(resp.Content, names...)
	if parseErr != nil {
		c.logger.WarnContext(ctx, "analysis response failed validation, requesting repair", "category", validate.Category(parseErr))

		repair := *llmReq
		repair.UserPrompt = llmReq.UserPrompt + fmt.Sprintf(
			"\n\nYour previous response failed schema validation (error category: %q). Return only valid JSON matching the schema above.",
			validate.Category(parseErr),
		)
		resp, err = c.complete(ctx, &repair)
		if err != nil {
			return nil, err
		}
		findings, parseErr = validate.Parse(resp.Content, names...)
	}

	if parseErr != nil {
		c.logger.WarnContext(ctx, "analysis response unparseable after repair, treating as zero issues", "error", parseErr)
		return &Result{
			Findings: validate.Findings{
				Issues:          []schema.Issue{},
				MissingClauses:  []string{},
				Recommendations: []string{},
			},
			Model:       resp.Model,
			ParseFailed: true,
			Redactions:  redactions,
		}, nil
	}

	return &Result{
		Findings:   *findings,
		Model:      resp.Model,
		Redactions: redactions,
	}, nil
}

// complete calls the provider under the retry policy. Only transient
// failures are retried.
func (c *Client) complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	var resp *llm.Response
	attempts := 0

	err := retry.Do(ctx, c.opts.Retry.backoff(), func(ctx context.Context) error {
		attempts++
		r, err := c.provider.Complete(ctx, req)
		if err != nil {
			if llm.IsTransient(err) {
				c.logger.WarnContext(ctx, "analysis call failed, will retry", "attempt", attempts, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if llm.IsTransient(err) {
			return nil, fmt.Errorf("%w: %d attempt(s): %w", errs.ErrTransient, attempts, err)
		}
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}
	return resp, nil
}
