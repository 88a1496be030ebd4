package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/clauseguard/internal/analysis"
	"github.com/dshills/clauseguard/internal/document"
	"github.com/dshills/clauseguard/internal/framework"
	"github.com/dshills/clauseguard/internal/mitigation"
	"github.com/dshills/clauseguard/internal/review"
	"github.com/dshills/clauseguard/internal/schema"
)

// synthesizedConfidence is assigned to issues raised by checklist elements.
const synthesizedConfidence = 0.7

type buildInput struct {
	documentID  string
	text        string
	depth       schema.Depth
	assessments []*framework.Assessment
	result      *analysis.Result
	externalErr error
}

func (in buildInput) degraded() bool { return in.externalErr != nil || in.result == nil }

// findings is the merged, not yet numbered content of a report.
type findings struct {
	issues          []schema.Issue
	missing         []string
	recommendations []string
	redlines        []schema.Redline
	riskScore       float64
}

func (e *Engine) build(in buildInput) *schema.Report {
	var f findings
	if in.degraded() {
		f = mergeDegraded(in.assessments)
	} else {
		f = mergeFull(in.result, in.assessments)
	}

	for i := range f.issues {
		f.issues[i].IssueID = fmt.Sprintf("ISSUE-%04d", i+1)
	}

	critical, high, _, _ := review.Counts(f.issues)
	status := review.Status(critical, high, len(f.missing), f.riskScore)
	level := review.RiskLevel(f.riskScore)
	now := e.opts.Clock.Now().UTC()

	names := make([]string, len(in.assessments))
	for i, a := range in.assessments {
		names[i] = a.Framework
	}

	r := &schema.Report{
		ReportID:           e.opts.NewID(),
		DocumentID:         in.documentID,
		GeneratedAt:        now,
		OverallStatus:      status,
		RiskLevel:          level,
		RiskScore:          f.riskScore,
		FrameworksAnalyzed: names,
		Issues:             f.issues,
		MissingClauses:     f.missing,
		MitigationActions:  mitigation.Plan(f.issues, now),
		Recommendations:    f.recommendations,
		Redlines:           f.redlines,
		Metadata:           metadata(in),
	}
	r.Summary = summarize(r)
	return r
}

// mergeFull keeps the external issues as returned and adds an issue for each
// critical checklist element that is absent and whose category the external
// analysis did not report.
func mergeFull(res *analysis.Result, assessments []*framework.Assessment) findings {
	f := findings{
		issues:          append([]schema.Issue{}, res.Issues...),
		missing:         append([]string{}, res.MissingClauses...),
		recommendations: append([]string{}, res.Recommendations...),
	}

	reported := make(map[string]bool, len(f.issues))
	for _, iss := range f.issues {
		reported[strings.ToLower(iss.Category)] = true
	}
	external := len(f.issues)

	for _, a := range assessments {
		for _, el := range a.Missing {
			if !el.Critical {
				continue
			}
			key := strings.ToLower(el.Category)
			if reported[key] {
				continue
			}
			reported[key] = true
			f.issues = append(f.issues, synthesize(a.Framework, el, el.Severity))
		}
	}

	f.redlines = mapRedlines(res.Redlines, external)

	if res.RiskScore != nil {
		f.riskScore = review.Clamp(*res.RiskScore)
	} else {
		f.riskScore = review.RiskScore(f.issues, len(f.missing))
	}
	return f
}

// mergeDegraded builds findings from the checklists alone. Every absent
// element becomes an issue (critical ones at their own severity, others at
// medium) and absent critical elements are listed as missing clauses.
func mergeDegraded(assessments []*framework.Assessment) findings {
	f := findings{
		issues:          []schema.Issue{},
		missing:         []string{},
		recommendations: []string{},
	}
	seen := map[string]bool{}
	seenMissing := map[string]bool{}
	scores := make([]float64, 0, len(assessments))

	for _, a := range assessments {
		scores = append(scores, a.ComplianceScore)
		for _, el := range a.Missing {
			key := strings.ToLower(el.Category)
			if seen[key] {
				continue
			}
			seen[key] = true

			sev := schema.SeverityMedium
			if el.Critical {
				sev = el.Severity
				if !seenMissing[key] {
					seenMissing[key] = true
					f.missing = append(f.missing, el.Category)
				}
			}
			f.issues = append(f.issues, synthesize(a.Framework, el, sev))
			if el.Recommendation != "" {
				f.recommendations = append(f.recommendations, el.Recommendation)
			}
		}
	}
	f.riskScore = review.DegradedRiskScore(scores)
	return f
}

func synthesize(fw string, el framework.Element, sev schema.Severity) schema.Issue {
	return schema.Issue{
		Severity:       sev,
		Category:       el.Category,
		Description:    fmt.Sprintf("Required element not found: %s.", el.Label),
		Recommendation: el.Recommendation,
		Framework:      fw,
		Confidence:     synthesizedConfidence,
	}
}

// mapRedlines rewrites the service's 1-based issue positions into report
// issue IDs. External issues are numbered first, so position n is
// ISSUE-000n. Unrecognised references are kept verbatim.
func mapRedlines(in []schema.Redline, external int) []schema.Redline {
	if len(in) == 0 {
		return nil
	}
	out := make([]schema.Redline, 0, len(in))
	for _, rl := range in {
		if n, err := strconv.Atoi(strings.TrimSpace(rl.IssueID)); err == nil && n >= 1 && n <= external {
			rl.IssueID = fmt.Sprintf("ISSUE-%04d", n)
		}
		out = append(out, rl)
	}
	return out
}

func metadata(in buildInput) map[string]any {
	md := map[string]any{
		schema.MetaDepth:        string(in.depth),
		schema.MetaDocumentHash: document.Hash(in.text),
	}

	fws := make(map[string]any, len(in.assessments))
	for _, a := range in.assessments {
		detected := make([]string, 0, len(a.Coverage.DetectedClauses))
		for _, m := range a.Coverage.DetectedClauses {
			detected = append(detected, m.ClauseType)
		}
		sort.Strings(detected)
		fws[a.Framework] = map[string]any{
			"compliance_score": a.ComplianceScore,
			"risk_level":       string(a.RiskLevel),
			"elements":         a.Elements,
			"coverage_score":   a.Coverage.CoverageScore,
			"detected_clauses": detected,
		}
	}
	md[schema.MetaFrameworks] = fws

	if in.degraded() {
		md[schema.MetaAnalysisMode] = schema.ModeDegraded
		md[schema.MetaDegraded] = true
		reason := "external analysis unavailable"
		if in.externalErr != nil {
			reason = in.externalErr.Error()
		}
		md[schema.MetaDegradedReason] = reason
		return md
	}

	md[schema.MetaAnalysisMode] = schema.ModeFull
	md[schema.MetaDegraded] = false
	md[schema.MetaModel] = in.result.Model
	md[schema.MetaCacheHit] = in.result.CacheHit
	md[schema.MetaParseFailed] = in.result.ParseFailed
	md[schema.MetaRedactions] = in.result.Redactions
	return md
}

func summarize(r *schema.Report) string {
	critical, high, medium, low := review.Counts(r.Issues)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Assessed against %s: %d issue(s) (%d critical, %d high, %d medium, %d low) and %d missing clause(s). ",
		strings.Join(r.FrameworksAnalyzed, ", "), len(r.Issues), critical, high, medium, low, len(r.MissingClauses))
	fmt.Fprintf(&sb, "Overall status %s with %s risk (%.2f).", r.OverallStatus, r.RiskLevel, r.RiskScore)
	if r.Degraded() {
		sb.WriteString(" External analysis was unavailable; findings come from deterministic checklist checks only.")
	}
	return sb.String()
}
