package validate

import (
	"strings"
	"testing"
)

const validJSON = `{
  "issues": [
    {
      "severity": "HIGH",
      "category": "Data Retention",
      "description": "No retention period",
      "location": "Section 4",
      "recommendation": "State a period",
      "framework": "GDPR",
      "confidence": 0.9
    }
  ],
  "missing_clauses": ["Breach Notification", " ", "Breach Notification"],
  "recommendations": ["Add a breach clause"],
  "risk_score": 1.7
}`

func TestParse_ValidResponse(t *testing.T) {
	f, err := Parse(validJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(f.Issues))
	}
	iss := f.Issues[0]
	if iss.Severity != "high" || iss.Framework != "gdpr" {
		t.Errorf("severity/framework not normalized: %+v", iss)
	}
	if iss.Location == nil || *iss.Location != "Section 4" {
		t.Errorf("location = %v", iss.Location)
	}
	if len(f.MissingClauses) != 1 {
		t.Errorf("missing clauses not compacted: %v", f.MissingClauses)
	}
	if f.RiskScore == nil || *f.RiskScore != 1 {
		t.Errorf("risk score not clamped: %v", f.RiskScore)
	}
}

func TestParse_MissingFrameworkDefaults(t *testing.T) {
	noFramework := strings.Replace(validJSON, `"framework": "GDPR",`, "", 1)
	cases := []struct {
		name       string
		frameworks []string
		want       string
	}{
		{"single framework", []string{"gdpr"}, "gdpr"},
		{"several frameworks", []string{"general", "gdpr"}, UnspecifiedFramework},
		{"none given", nil, UnspecifiedFramework},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse(noFramework, tc.frameworks...)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := f.Issues[0].Framework; got != tc.want {
				t.Errorf("framework = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParse_ExplicitFrameworkKept(t *testing.T) {
	f, err := Parse(validJSON, "sox")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := f.Issues[0].Framework; got != "gdpr" {
		t.Errorf("framework = %q, want gdpr", got)
	}
}

func TestParse_StripsFences(t *testing.T) {
	fenced := "Here you go:\n```json\n" + validJSON + "\n```"
	if _, err := Parse(fenced); err != nil {
		t.Fatalf("Parse with fences: %v", err)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse("{not valid json}")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if Category(err) != "JSON syntax error" {
		t.Errorf("Category = %q", Category(err))
	}
}

func TestParse_InvalidSeverity(t *testing.T) {
	_, err := Parse(strings.Replace(validJSON, `"HIGH"`, `"BLOCKER"`, 1))
	if err == nil {
		t.Fatal("expected error for invalid severity")
	}
	if !strings.Contains(Category(err), "invalid enum") {
		t.Errorf("Category = %q", Category(err))
	}
}

func TestParse_MissingCategory(t *testing.T) {
	_, err := Parse(strings.Replace(validJSON, `"Data Retention"`, `""`, 1))
	if err == nil {
		t.Fatal("expected error for missing category")
	}
	if Category(err) != "missing required field" {
		t.Errorf("Category = %q", Category(err))
	}
}

func TestParse_DefaultsConfidenceAndNullLocation(t *testing.T) {
	f, err := Parse(`{"issues":[{"severity":"low","category":"Style","description":"vague wording","location":null}]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Issues[0].Confidence != 0.5 {
		t.Errorf("Confidence = %g, want 0.5", f.Issues[0].Confidence)
	}
	if f.Issues[0].Location != nil {
		t.Errorf("Location = %v, want nil", f.Issues[0].Location)
	}
	if f.RiskScore != nil {
		t.Errorf("RiskScore = %v, want nil when absent", *f.RiskScore)
	}
	if f.MissingClauses == nil || f.Recommendations == nil {
		t.Error("absent lists should decode to empty slices")
	}
}
