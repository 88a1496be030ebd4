package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/clauseguard/internal/config"
	"github.com/dshills/clauseguard/internal/document"
	"github.com/dshills/clauseguard/internal/engine"
	"github.com/dshills/clauseguard/internal/redline"
	"github.com/dshills/clauseguard/internal/render"
	"github.com/dshills/clauseguard/internal/review"
	"github.com/dshills/clauseguard/internal/schema"
)

// analyzeFlags holds the parsed flags for the analyze command.
type analyzeFlags struct {
	frameworks        []string
	depth             string
	format            string
	out               string
	references        []string
	redlineOut        string
	failOn            string
	severityThreshold string
	offline           bool
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	var flags analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze <document>",
		Short: "Assess one document and produce a compliance report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], g, flags)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&flags.frameworks, "framework", nil, "Framework to assess against (may be repeated; default from config)")
	f.StringVar(&flags.depth, "depth", "", "Analysis depth: quick, standard or comprehensive (default from config)")
	f.StringVar(&flags.format, "format", "json", "Output format: json, md or audit")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.StringArrayVar(&flags.references, "reference", nil, "Reference document paths for grounding (may be repeated)")
	f.StringVar(&flags.redlineOut, "redline-out", "", "Write suggested redlines in diff-match-patch format to this file")
	f.StringVar(&flags.failOn, "fail-on", "", "Exit 2 if status >= this level (requires_review, partially_compliant, non_compliant)")
	f.StringVar(&flags.severityThreshold, "severity-threshold", "low", "Minimum issue severity to emit: low, medium, high or critical")
	f.BoolVar(&flags.offline, "offline", false, "Exit 3 if "+config.EnvModel+" is not set; use to enforce explicit model config in CI")
	return cmd
}

func runAnalyze(ctx context.Context, path string, g *globalFlags, flags analyzeFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Step 1: Validate flags ---
	if err := validateCommon(flags.format, flags.depth, flags.failOn, flags.severityThreshold); err != nil {
		return codeError(exitInput, "invalid flags: %s", err)
	}
	if flags.offline && os.Getenv(config.EnvModel) == "" {
		return codeError(exitInput, "%s environment variable not set (required with --offline)", config.EnvModel)
	}

	// --- Step 2: Config and logger ---
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := newLogger(g.verbose)

	// --- Step 3: Load document and references ---
	logger.Debug("loading document", "path", path)
	doc, err := document.Load(path)
	if err != nil {
		return codeError(exitInput, "loading document: %s", err)
	}
	refs, err := document.LoadReferences(flags.references)
	if err != nil {
		return codeError(exitInput, "loading references: %s", err)
	}
	logger.Debug("loaded references", "count", len(refs))

	// --- Step 4: Build engine ---
	eng, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	// --- Step 5: Analyze ---
	logger.Debug("analyzing", "model", cfg.Model, "document", doc.ID)
	report, err := eng.Analyze(ctx, engine.Request{
		DocumentID: doc.ID,
		Text:       doc.Text,
		Frameworks: flags.frameworks,
		Depth:      schema.Depth(flags.depth),
		References: refs,
	})
	if err != nil {
		return analysisError(err)
	}

	// --- Step 6: Write redlines ---
	if flags.redlineOut != "" {
		writeRedlines(logger, flags.redlineOut, doc.Text, report.Redlines)
	}

	// --- Step 7: Render, filtered by severity (status and risk use all issues) ---
	out := review.FilterReport(report, schema.Severity(flags.severityThreshold))
	if err := writeReport(out, flags.format, flags.out); err != nil {
		return err
	}

	// --- Step 8: Evaluate --fail-on ---
	return checkFailOn(report.OverallStatus, flags.failOn)
}

func writeRedlines(logger *slog.Logger, path, text string, redlines []schema.Redline) {
	logger.Debug("generating redlines", "path", path, "count", len(redlines))
	diffText := redline.GenerateDiff(text, redlines, os.Stderr)
	if err := os.WriteFile(path, []byte(diffText), 0o644); err != nil {
		// redlines are advisory
		logger.Warn("redline write failed", "error", err)
	}
}

func writeReport(report *schema.Report, format, path string) error {
	renderer, err := render.NewRenderer(format)
	if err != nil {
		return codeError(exitInput, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(report)
	if err != nil {
		return codeError(exitInput, "rendering output: %s", err)
	}

	if path != "" {
		if err := os.WriteFile(path, outputBytes, 0o644); err != nil {
			return codeError(exitInput, "writing output file: %s", err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(outputBytes); err != nil {
		return codeError(exitInput, "writing output: %s", err)
	}
	// Ensure output ends with a newline for terminal friendliness.
	if len(outputBytes) > 0 && outputBytes[len(outputBytes)-1] != '\n' {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
