package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dshills/clauseguard/internal/analysis"
	"github.com/dshills/clauseguard/internal/config"
	"github.com/dshills/clauseguard/internal/engine"
	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/framework"
	"github.com/dshills/clauseguard/internal/llm"
	"github.com/dshills/clauseguard/internal/schema"
	"github.com/dshills/clauseguard/internal/store"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes.
const (
	exitFailOn   = 2
	exitInput    = 3
	exitProvider = 4
	exitAnalysis = 5
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		code := reportError(os.Stderr, err)
		stop()
		os.Exit(code)
	}
}

// reportError prints err once and returns the process exit code for it.
func reportError(w io.Writer, err error) int {
	fmt.Fprintln(w, "Error:", err)
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "clauseguard",
		Short:         "Assess documents for regulatory compliance",
		Long:          "ClauseGuard checks contracts and policies against regulatory frameworks and produces a scored compliance report with a mitigation plan.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML config file (default "+config.DefaultPath+" if present)")
	root.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "Log processing steps to stderr")

	root.AddCommand(newAnalyzeCmd(&g), newBatchCmd(&g), newFrameworksCmd())
	return root
}

// loadConfig reads --config, or the default path when the flag is unset.
func loadConfig(g *globalFlags) (config.Config, error) {
	path, explicit := g.configPath, true
	if path == "" {
		path, explicit = config.DefaultPath, false
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return config.Config{}, codeError(exitInput, "loading config: %s", err)
	}
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newEngine wires the provider, analysis client, report store and
// framework registry from cfg.
func newEngine(cfg config.Config, logger *slog.Logger) (*engine.Engine, error) {
	provider, err := llm.NewProvider(cfg.Model)
	if err != nil {
		return nil, codeError(exitProvider, "creating LLM provider: %s", err)
	}

	client := analysis.New(provider, analysis.Options{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Retry: analysis.RetryPolicy{
			MaxRetries:    cfg.Retry.MaxRetries,
			BaseDelay:     cfg.Retry.BaseDelay.Std(),
			MaxDelay:      cfg.Retry.MaxDelay.Std(),
			BackoffFactor: cfg.Retry.BackoffFactor,
		},
		Concurrency: cfg.Batch.Concurrency,
		CacheSize:   cfg.Cache.AnalysisSize,
		CacheTTL:    cfg.Cache.AnalysisTTL.Std(),
		Logger:      logger,
	})

	return engine.New(client, framework.NewRegistry(nil), store.NewMemory(cfg.Cache.ReportSize, cfg.Cache.ReportTTL.Std()), engine.Options{
		Frameworks:  cfg.Frameworks,
		Depth:       cfg.Depth,
		Concurrency: cfg.Batch.Concurrency,
		Logger:      logger,
	}), nil
}

// validateCommon checks the flags shared by analyze and batch.
func validateCommon(format, depth, failOn, threshold string) error {
	switch format {
	case "json", "md", "audit":
	default:
		return fmt.Errorf("--format must be json, md or audit, got %q", format)
	}

	if depth != "" && !schema.Depth(depth).IsValid() {
		return fmt.Errorf("--depth must be quick, standard or comprehensive, got %q", depth)
	}

	if failOn != "" {
		switch schema.Status(failOn) {
		case schema.StatusRequiresReview, schema.StatusPartiallyCompliant, schema.StatusNonCompliant:
		default:
			return fmt.Errorf("--fail-on must be requires_review, partially_compliant or non_compliant, got %q", failOn)
		}
	}

	if !schema.Severity(threshold).IsValid() {
		return fmt.Errorf("--severity-threshold must be low, medium, high or critical, got %q", threshold)
	}
	return nil
}

// checkFailOn returns an exit-2 error when status meets or exceeds failOn.
func checkFailOn(status schema.Status, failOn string) error {
	if failOn == "" {
		return nil
	}
	threshold := schema.Status(failOn)
	if schema.StatusOrdinal(status) >= schema.StatusOrdinal(threshold) {
		return codeError(exitFailOn, "status %s meets or exceeds --fail-on threshold %s", status, threshold)
	}
	return nil
}

// analysisError maps an engine error to an exit code.
func analysisError(err error) error {
	if errors.Is(err, errs.ErrValidation) {
		return codeError(exitInput, "%s", err)
	}
	return codeError(exitAnalysis, "%s", err)
}
