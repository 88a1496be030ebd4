package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/clauseguard/internal/clause"
	"github.com/dshills/clauseguard/internal/document"
	"github.com/dshills/clauseguard/internal/engine"
	"github.com/dshills/clauseguard/internal/framework"
	"github.com/dshills/clauseguard/internal/review"
	"github.com/dshills/clauseguard/internal/schema"
)

// batchFlags holds the parsed flags for the batch command.
type batchFlags struct {
	frameworks        []string
	depth             string
	format            string
	outDir            string
	failOn            string
	severityThreshold string
	timeout           time.Duration
}

var extensions = map[string]string{"json": ".json", "md": ".md", "audit": ".audit.md"}

func newBatchCmd(g *globalFlags) *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "batch <document>...",
		Short: "Assess several documents concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args, g, flags, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&flags.frameworks, "framework", nil, "Framework to assess against (may be repeated; default from config)")
	f.StringVar(&flags.depth, "depth", "", "Analysis depth: quick, standard or comprehensive (default from config)")
	f.StringVar(&flags.format, "format", "json", "Output format: json, md or audit")
	f.StringVar(&flags.outDir, "out-dir", "", "Write one report per document into this directory")
	f.StringVar(&flags.failOn, "fail-on", "", "Exit 2 if any status >= this level")
	f.StringVar(&flags.severityThreshold, "severity-threshold", "low", "Minimum issue severity to emit")
	f.DurationVar(&flags.timeout, "timeout", 0, "Batch deadline (default from config)")
	return cmd
}

func runBatch(ctx context.Context, paths []string, g *globalFlags, flags batchFlags, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateCommon(flags.format, flags.depth, flags.failOn, flags.severityThreshold); err != nil {
		return codeError(exitInput, "invalid flags: %s", err)
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := newLogger(g.verbose)

	reqs := make([]engine.Request, 0, len(paths))
	for _, p := range paths {
		doc, err := document.Load(p)
		if err != nil {
			return codeError(exitInput, "loading document: %s", err)
		}
		reqs = append(reqs, engine.Request{
			DocumentID: doc.ID,
			Text:       doc.Text,
			Frameworks: flags.frameworks,
			Depth:      schema.Depth(flags.depth),
		})
	}

	eng, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	timeout := flags.timeout
	if timeout == 0 {
		timeout = cfg.Batch.Timeout.Std()
	}
	results := eng.AnalyzeBatch(ctx, reqs, timeout)

	if flags.outDir != "" {
		if err := os.MkdirAll(flags.outDir, 0o755); err != nil {
			return codeError(exitInput, "creating output directory: %s", err)
		}
	}

	worst := schema.StatusCompliant
	var failures []string
	for i, res := range results {
		if res.Err != nil {
			failures = append(failures, fmt.Sprintf("%s: %s", paths[i], res.Err))
			continue
		}
		if schema.StatusOrdinal(res.Report.OverallStatus) > schema.StatusOrdinal(worst) {
			worst = res.Report.OverallStatus
		}

		out := review.FilterReport(res.Report, schema.Severity(flags.severityThreshold))
		if flags.outDir == "" {
			if err := writeReport(out, flags.format, ""); err != nil {
				return err
			}
			continue
		}
		name := strings.TrimSuffix(res.Report.DocumentID, filepath.Ext(res.Report.DocumentID))
		dest := filepath.Join(flags.outDir, fmt.Sprintf("%02d-%s%s", i+1, name, extensions[flags.format]))
		if err := writeReport(out, flags.format, dest); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\t%.2f\n", dest, res.Report.OverallStatus, res.Report.RiskLevel, res.Report.RiskScore)
	}

	if len(failures) > 0 {
		return codeError(exitAnalysis, "%d of %d document(s) failed:\n  %s", len(failures), len(paths), strings.Join(failures, "\n  "))
	}
	return checkFailOn(worst, flags.failOn)
}

func newFrameworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List the supported frameworks and their checklist elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listFrameworks(cmd.OutOrStdout(), framework.NewRegistry(nil))
		},
	}
}

func listFrameworks(w io.Writer, reg *framework.Registry) error {
	for _, name := range reg.Names() {
		a, err := reg.Get(name)
		if err != nil {
			return err
		}
		f := a.Framework()
		fmt.Fprintf(w, "%s\t%s\n", f.Name, f.Title)
		for _, e := range f.Elements {
			marker := ""
			if e.Critical {
				marker = " (critical)"
			}
			fmt.Fprintf(w, "  - %s: %s%s\n", e.Key, e.Label, marker)
		}
		fmt.Fprintf(w, "  clauses: %s\n", strings.Join(clause.For(f.Name).Names(), ", "))
	}
	return nil
}
