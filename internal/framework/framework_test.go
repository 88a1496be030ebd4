package framework

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/schema"
)

const privacyPolicy = `We process personal data on the legal basis of consent.
Data subjects may exercise the right of access and erasure.
Records are subject to a retention schedule and deleted after 24 months.
We apply encryption and access control as security measures.
No transfer to a third country takes place without standard contractual clauses.`

func TestRegistry_AllBuiltins(t *testing.T) {
	r := NewRegistry(nil)
	for _, name := range []string{"general", "gdpr", "sox", "ccpa", "hipaa", "licensing"} {
		t.Run(name, func(t *testing.T) {
			a, err := r.Get(name)
			if err != nil {
				t.Fatalf("Get(%q): %v", name, err)
			}
			f := a.Framework()
			if f.Name != name {
				t.Errorf("Name = %q", f.Name)
			}
			if len(f.Elements) == 0 {
				t.Errorf("%s has no checklist elements", name)
			}
			if f.LowAt <= f.MediumAt {
				t.Errorf("%s thresholds not ordered: low=%g medium=%g", name, f.LowAt, f.MediumAt)
			}
			for _, e := range f.Elements {
				if !e.Severity.IsValid() {
					t.Errorf("%s.%s invalid severity %q", name, e.Key, e.Severity)
				}
			}
		})
	}
}

func TestRegistry_UnknownFramework(t *testing.T) {
	_, err := NewRegistry(nil).Get("basel-iii")
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestRegistry_ResolveDedupesAndNormalizes(t *testing.T) {
	got, err := NewRegistry(nil).Resolve([]string{"GDPR", "sox", " gdpr "})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 || got[0].Framework().Name != "gdpr" || got[1].Framework().Name != "sox" {
		t.Errorf("unexpected resolution: %d analyzers", len(got))
	}
}

func TestAnalyze_GDPRFullyCompliant(t *testing.T) {
	a, _ := NewRegistry(nil).Get("gdpr")
	res, err := a.Analyze(privacyPolicy)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.ComplianceScore != 1 {
		t.Errorf("ComplianceScore = %g, want 1; elements %v", res.ComplianceScore, res.Elements)
	}
	if res.RiskLevel != schema.RiskLow {
		t.Errorf("RiskLevel = %q, want low", res.RiskLevel)
	}
	if len(res.Missing) != 0 {
		t.Errorf("unexpected missing elements: %+v", res.Missing)
	}
	if res.Coverage == nil || res.Coverage.Framework != "gdpr" {
		t.Errorf("coverage not attached: %+v", res.Coverage)
	}
}

func TestAnalyze_EmptyDocumentHighRisk(t *testing.T) {
	a, _ := NewRegistry(nil).Get("gdpr")
	res, err := a.Analyze("")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.ComplianceScore != 0 {
		t.Errorf("ComplianceScore = %g, want 0", res.ComplianceScore)
	}
	if res.RiskLevel != schema.RiskHigh {
		t.Errorf("RiskLevel = %q, want high", res.RiskLevel)
	}
	if len(res.Missing) != len(a.Framework().Elements) {
		t.Errorf("expected every element missing, got %d", len(res.Missing))
	}
	for k, v := range res.Elements {
		if v {
			t.Errorf("element %s should be false", k)
		}
	}
}

func TestRisk_Thresholds(t *testing.T) {
	f := &Framework{LowAt: 0.7, MediumAt: 0.4}
	cases := []struct {
		score float64
		want  schema.RiskLevel
	}{
		{1, schema.RiskLow},
		{0.7, schema.RiskLow},
		{0.69, schema.RiskMedium},
		{0.4, schema.RiskMedium},
		{0.39, schema.RiskHigh},
		{0, schema.RiskHigh},
	}
	for _, c := range cases {
		if got := f.Risk(c.score); got != c.want {
			t.Errorf("Risk(%g) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestFormatRulesForPrompt_ListsCriticalElements(t *testing.T) {
	a, _ := NewRegistry(nil).Get("gdpr")
	rules := a.Framework().FormatRulesForPrompt()
	if !strings.Contains(rules, "Lawful basis for processing [critical]") {
		t.Errorf("critical element not marked: %q", rules)
	}
	if !strings.Contains(rules, "72 hours") {
		t.Errorf("focus rules missing: %q", rules)
	}
}

func TestNames_Sorted(t *testing.T) {
	names := NewRegistry(nil).Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
