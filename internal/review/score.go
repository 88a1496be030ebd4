// Package review holds the pure aggregation functions the engine applies to
// merged findings: risk score, risk level, overall status and severity
// filtering.
package review

import "github.com/dshills/clauseguard/internal/schema"

// Per-finding weights used when the external service supplies no risk score.
const (
	weightCritical = 0.35
	weightHigh     = 0.2
	weightMedium   = 0.1
	weightLow      = 0.03
	weightMissing  = 0.05
)

// Status computes the overall verdict. It depends only on its arguments:
// non_compliant on any critical issue or more than three missing clauses,
// partially_compliant on any high issue or more than one missing clause,
// requires_review when risk exceeds 0.5, compliant otherwise.
func Status(critical, high, missing int, riskScore float64) schema.Status {
	switch {
	case critical > 0 || missing > 3:
		return schema.StatusNonCompliant
	case high > 0 || missing > 1:
		return schema.StatusPartiallyCompliant
	case riskScore > 0.5:
		return schema.StatusRequiresReview
	default:
		return schema.StatusCompliant
	}
}

// RiskLevel bands a risk score: critical >= 0.8, high >= 0.6, medium >= 0.3.
func RiskLevel(score float64) schema.RiskLevel {
	switch {
	case score >= 0.8:
		return schema.RiskCritical
	case score >= 0.6:
		return schema.RiskHigh
	case score >= 0.3:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// RiskScore derives a score in [0,1] from issue severities and the number
// of missing clauses.
func RiskScore(issues []schema.Issue, missing int) float64 {
	score := float64(missing) * weightMissing
	for _, issue := range issues {
		switch issue.Severity {
		case schema.SeverityCritical:
			score += weightCritical
		case schema.SeverityHigh:
			score += weightHigh
		case schema.SeverityMedium:
			score += weightMedium
		case schema.SeverityLow:
			score += weightLow
		}
	}
	return Clamp(score)
}

// DegradedRiskScore is 1 minus the mean framework compliance score. With no
// scores the document is treated as entirely unassessed.
func DegradedRiskScore(complianceScores []float64) float64 {
	if len(complianceScores) == 0 {
		return 1
	}
	sum := 0.0
	for _, s := range complianceScores {
		sum += s
	}
	return Clamp(1 - sum/float64(len(complianceScores)))
}

// Clamp bounds f to [0,1].
func Clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Counts returns the critical, high, medium and low counts from all issues.
func Counts(issues []schema.Issue) (critical, high, medium, low int) {
	for _, issue := range issues {
		switch issue.Severity {
		case schema.SeverityCritical:
			critical++
		case schema.SeverityHigh:
			high++
		case schema.SeverityMedium:
			medium++
		case schema.SeverityLow:
			low++
		}
	}
	return
}

// FilterBySeverity returns only issues at or above the given threshold severity.
func FilterBySeverity(issues []schema.Issue, threshold schema.Severity) []schema.Issue {
	if threshold == schema.SeverityLow {
		return issues
	}
	out := make([]schema.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.Ordinal() >= threshold.Ordinal() {
			out = append(out, issue)
		}
	}
	return out
}

// FilterReport returns a copy of r whose issues, mitigation actions and
// redlines are limited to threshold and above. Status, risk and summary are
// left as computed over all issues.
func FilterReport(r *schema.Report, threshold schema.Severity) *schema.Report {
	out := *r
	out.Issues = FilterBySeverity(r.Issues, threshold)
	if len(out.Issues) == len(r.Issues) {
		return &out
	}

	kept := make(map[string]bool, len(out.Issues))
	for _, issue := range out.Issues {
		kept[issue.IssueID] = true
	}
	out.MitigationActions = make([]schema.MitigationAction, 0, len(out.Issues))
	for _, a := range r.MitigationActions {
		if kept[a.IssueID] {
			out.MitigationActions = append(out.MitigationActions, a)
		}
	}
	if r.Redlines != nil {
		out.Redlines = make([]schema.Redline, 0, len(r.Redlines))
		for _, rl := range r.Redlines {
			if kept[rl.IssueID] {
				out.Redlines = append(out.Redlines, rl)
			}
		}
	}
	return &out
}
