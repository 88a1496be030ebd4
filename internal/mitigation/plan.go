// Package mitigation derives remediation actions from compliance issues.
package mitigation

import (
	"fmt"
	"time"

	"github.com/dshills/clauseguard/internal/schema"
)

type terms struct {
	effortHours int
	due         time.Duration
}

const day = 24 * time.Hour

var table = map[schema.Severity]terms{
	schema.SeverityCritical: {effortHours: 32, due: 3 * day},
	schema.SeverityHigh:     {effortHours: 16, due: 7 * day},
	schema.SeverityMedium:   {effortHours: 8, due: 14 * day},
	schema.SeverityLow:      {effortHours: 2, due: 30 * day},
}

// Terms returns the effort estimate and due offset for a severity. Unknown
// severities are planned as low.
func Terms(s schema.Severity) (effortHours int, due time.Duration) {
	t, ok := table[s]
	if !ok {
		t = table[schema.SeverityLow]
	}
	return t.effortHours, t.due
}

// Plan returns one action per issue, in issue order. Action IDs mirror the
// issue sequence; dependencies are always empty.
func Plan(issues []schema.Issue, now time.Time) []schema.MitigationAction {
	out := make([]schema.MitigationAction, 0, len(issues))
	for i, issue := range issues {
		effort, due := Terms(issue.Severity)
		out = append(out, schema.MitigationAction{
			ActionID:             fmt.Sprintf("ACT-%04d", i+1),
			IssueID:              issue.IssueID,
			Title:                title(issue),
			Description:          description(issue),
			Priority:             issue.Severity,
			EstimatedEffortHours: effort,
			DueDate:              now.Add(due).UTC(),
			Dependencies:         []string{},
		})
	}
	return out
}

func title(issue schema.Issue) string {
	if issue.Category == "" {
		return "Address compliance issue " + issue.IssueID
	}
	return "Address " + issue.Category
}

func description(issue schema.Issue) string {
	if issue.Recommendation != "" {
		return issue.Recommendation
	}
	return issue.Description
}
