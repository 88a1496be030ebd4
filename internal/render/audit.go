package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dshills/clauseguard/internal/schema"
)

type auditRenderer struct{}

// The audit entry always emits every heading, in this order, so entries can
// be diffed and parsed by downstream tooling.
var auditTemplate = template.Must(template.New("audit").Funcs(funcs).Parse(`# Compliance Audit Entry

> **{{ upper .OverallStatus }}** | Risk {{ upper .RiskLevel }} ({{ score .RiskScore }}) | Report {{ .ReportID }}

## Executive Summary

- Document: {{ .DocumentID }}
- Generated: {{ stamp .GeneratedAt }}
- Frameworks: {{ range $i, $f := .FrameworksAnalyzed }}{{ if $i }}, {{ end }}{{ $f }}{{ end }}

{{ .Summary }}

## Issues
{{ if .Issues }}
| ID | Severity | Framework | Category | Confidence | Location |
|----|----------|-----------|----------|------------|----------|
{{ range .Issues }}| {{ .IssueID }} | {{ .Severity }} | {{ .Framework }} | {{ cell .Category }} | {{ score .Confidence }} | {{ cell (orNone .Location) }} |
{{ end }}{{ else }}
None.
{{ end }}
## Missing Clauses
{{ if .MissingClauses }}
{{ range .MissingClauses }}- {{ . }}
{{ end }}{{ else }}
None.
{{ end }}
## Mitigation Actions
{{ if .MitigationActions }}
| Action | Issue | Priority | Effort (h) | Due | Title |
|--------|-------|----------|------------|-----|-------|
{{ range .MitigationActions }}| {{ .ActionID }} | {{ .IssueID }} | {{ .Priority }} | {{ .EstimatedEffortHours }} | {{ date .DueDate }} | {{ cell .Title }} |
{{ end }}{{ else }}
None.
{{ end }}
## Metadata

{{ range meta .Metadata }}- {{ .Key }}: {{ .Value }}
{{ end }}`))

func (r *auditRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := auditTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering audit entry: %w", err)
	}
	return buf.Bytes(), nil
}
