package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dshills/clauseguard/internal/schema"
)

func sampleReport() *schema.Report {
	loc := "Section 4 | Storage"
	generated := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	return &schema.Report{
		ReportID:           "2f1c7d0e-2a0b-4c43-9f5e-0d6c3b1b8a11",
		DocumentID:         "privacy-policy.md",
		GeneratedAt:        generated,
		OverallStatus:      schema.StatusPartiallyCompliant,
		RiskLevel:          schema.RiskMedium,
		RiskScore:          0.45,
		FrameworksAnalyzed: []string{"gdpr", "general"},
		Summary:            "Assessed against gdpr, general: 1 issue(s).",
		Issues: []schema.Issue{
			{
				IssueID:        "ISSUE-0001",
				Severity:       schema.SeverityHigh,
				Category:       "Data Retention",
				Description:    "No retention period is stated.",
				Location:       &loc,
				Recommendation: "State a concrete retention period.",
				Framework:      "gdpr",
				Confidence:     0.8,
			},
		},
		MissingClauses: []string{"Breach Notification"},
		MitigationActions: []schema.MitigationAction{
			{
				ActionID: "ACT-0001", IssueID: "ISSUE-0001", Title: "Address Data Retention",
				Priority: schema.SeverityHigh, EstimatedEffortHours: 16,
				DueDate: generated.AddDate(0, 0, 7), Dependencies: []string{},
			},
		},
		Recommendations: []string{"Add a breach notification clause."},
		Metadata: map[string]any{
			schema.MetaModel:        "anthropic:claude-sonnet-4-6",
			schema.MetaDegraded:     false,
			schema.MetaAnalysisMode: schema.ModeFull,
			schema.MetaFrameworks: map[string]any{
				"gdpr": map[string]any{"risk_level": "medium", "compliance_score": 0.5},
			},
		},
	}
}

func TestNewRenderer_JSON(t *testing.T) {
	r, err := NewRenderer("json")
	if err != nil {
		t.Fatalf("NewRenderer json: %v", err)
	}
	out, err := r.Render(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var decoded schema.Report
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, out)
	}
	if decoded.OverallStatus != schema.StatusPartiallyCompliant {
		t.Errorf("status mismatch: got %q", decoded.OverallStatus)
	}
	if decoded.Issues[0].Location == nil || *decoded.Issues[0].Location != "Section 4 | Storage" {
		t.Errorf("location lost in round trip")
	}
	if !decoded.GeneratedAt.Equal(sampleReport().GeneratedAt) {
		t.Errorf("generated_at changed: %v", decoded.GeneratedAt)
	}
}

func TestJSON_NullLocationAndNoRedlines(t *testing.T) {
	rep := sampleReport()
	rep.Issues[0].Location = nil
	out, err := JSON(rep)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"location": null`) {
		t.Errorf("expected null location: %s", out)
	}
	if strings.Contains(out, `"redlines"`) {
		t.Errorf("empty redlines should be omitted: %s", out)
	}
}

func TestNewRenderer_Markdown(t *testing.T) {
	out, err := Markdown(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"# Compliance Report: privacy-policy.md",
		"**Status:** partially_compliant",
		"**Risk:** medium (0.45)",
		"### ISSUE-0001 · high · Data Retention",
		"> Location: Section 4 | Storage",
		"**Confidence:** 80%",
		"## Missing Clauses",
		"- Breach Notification",
		"**ACT-0001** (high, 16h, due 2025-06-09)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Degraded analysis") {
		t.Error("full report rendered degraded banner")
	}
}

func TestMarkdown_DegradedBanner(t *testing.T) {
	rep := sampleReport()
	rep.Metadata[schema.MetaDegraded] = true
	out, err := Markdown(rep)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Degraded analysis") {
		t.Errorf("degraded banner missing:\n%s", out)
	}
}

func TestAuditEntry_HeadingOrder(t *testing.T) {
	out, err := AuditEntry(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	headings := []string{
		"> **PARTIALLY_COMPLIANT** | Risk MEDIUM (0.45)",
		"## Executive Summary",
		"## Issues",
		"## Missing Clauses",
		"## Mitigation Actions",
		"## Metadata",
	}
	last := -1
	for _, h := range headings {
		i := strings.Index(out, h)
		if i < 0 {
			t.Fatalf("audit entry missing %q\n%s", h, out)
		}
		if i < last {
			t.Errorf("%q out of order", h)
		}
		last = i
	}
	if !strings.Contains(out, `Section 4 \| Storage`) {
		t.Errorf("table cell not escaped:\n%s", out)
	}
}

func TestAuditEntry_EmptySectionsStillPresent(t *testing.T) {
	rep := sampleReport()
	rep.Issues = []schema.Issue{}
	rep.MissingClauses = []string{}
	rep.MitigationActions = []schema.MitigationAction{}
	out, err := AuditEntry(rep)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "None."); n != 3 {
		t.Errorf("expected 3 empty-section markers, got %d\n%s", n, out)
	}
}

func TestAuditEntry_MetadataSorted(t *testing.T) {
	out, err := AuditEntry(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	meta := out[strings.Index(out, "## Metadata"):]
	order := []string{"- analysis_mode: full", "- degraded: false", `- frameworks: {"gdpr":{"compliance_score":0.5,"risk_level":"medium"}}`, "- model: anthropic:claude-sonnet-4-6"}
	last := -1
	for _, line := range order {
		i := strings.Index(meta, line)
		if i < 0 {
			t.Fatalf("metadata missing %q\n%s", line, meta)
		}
		if i < last {
			t.Errorf("metadata %q out of order", line)
		}
		last = i
	}
}

func TestRenderers_Deterministic(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			r, err := NewRenderer(format)
			if err != nil {
				t.Fatal(err)
			}
			first, err := r.Render(sampleReport())
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 5; i++ {
				again, _ := r.Render(sampleReport())
				if string(again) != string(first) {
					t.Fatalf("%s output differs between renders", format)
				}
			}
		})
	}
}

func TestNewRenderer_Unknown(t *testing.T) {
	_, err := NewRenderer("xml")
	if err == nil {
		t.Error("expected error for unknown format")
	}
}
