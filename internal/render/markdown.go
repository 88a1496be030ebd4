package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dshills/clauseguard/internal/schema"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("report").Funcs(funcs).Parse(`# Compliance Report: {{ .DocumentID }}

**Status:** {{ .OverallStatus }}
**Risk:** {{ .RiskLevel }} ({{ score .RiskScore }})
**Frameworks:** {{ range $i, $f := .FrameworksAnalyzed }}{{ if $i }}, {{ end }}{{ $f }}{{ end }}
{{ if .Degraded }}> Degraded analysis: external findings unavailable, results are from checklist checks only.
{{ end }}
{{ .Summary }}
{{ if .Issues }}
---

## Issues
{{ range .Issues }}
### {{ .IssueID }} · {{ .Severity }} · {{ .Category }}
{{ .Description }}
{{ with .Location }}
> Location: {{ deref . }}
{{ end }}
**Framework:** {{ .Framework }} | **Confidence:** {{ pct .Confidence }}
{{ if .Recommendation }}**Recommendation:** {{ .Recommendation }}
{{ end }}{{ end }}{{ end }}{{ if .MissingClauses }}
---

## Missing Clauses
{{ range .MissingClauses }}
- {{ . }}{{ end }}
{{ end }}{{ if .Recommendations }}
---

## Recommendations
{{ range .Recommendations }}
- {{ . }}{{ end }}
{{ end }}{{ if .MitigationActions }}
---

## Mitigation Plan
{{ range .MitigationActions }}
- **{{ .ActionID }}** ({{ .Priority }}, {{ .EstimatedEffortHours }}h, due {{ date .DueDate }}): {{ .Title }} [{{ .IssueID }}]{{ end }}
{{ end }}{{ if .Redlines }}
---

## Suggested Redlines
{{ range .Redlines }}
**{{ .IssueID }}** (see --redline-out for the diff)

Before:
` + "```" + `
{{ .Before }}
` + "```" + `
After:
` + "```" + `
{{ .After }}
` + "```" + `
{{ end }}{{ end }}
---
*Report {{ .ReportID }} | Generated {{ stamp .GeneratedAt }}*
`))

func (r *markdownRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
