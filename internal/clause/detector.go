package clause

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/schema"
)

// DetectionThreshold is the confidence at or above which a category counts
// as detected. Anything above zero but below it is reported as potential.
const DetectionThreshold = 0.3

// Matcher reports whether an indicator is present in lower-cased text.
type Matcher interface {
	Match(text, indicator string) bool
}

// SubstringMatcher matches by plain substring containment. It does not
// tokenize, so "terminate" also matches "terminated".
type SubstringMatcher struct{}

func (SubstringMatcher) Match(text, indicator string) bool {
	return strings.Contains(text, strings.ToLower(indicator))
}

// Detector scores documents against a taxonomy.
type Detector struct {
	taxonomy Taxonomy
	matcher  Matcher
}

// NewDetector returns a Detector over t. A nil matcher uses SubstringMatcher.
func NewDetector(t Taxonomy, m Matcher) *Detector {
	if m == nil {
		m = SubstringMatcher{}
	}
	return &Detector{taxonomy: t, matcher: m}
}

// Taxonomy returns the catalog the detector scores against.
func (d *Detector) Taxonomy() Taxonomy { return d.taxonomy }

// Analyze scores text against the detector's taxonomy and tags every match
// with framework. Text that is not valid UTF-8 is rejected as non-text input.
func (d *Detector) Analyze(text, framework string) (*schema.CoverageAnalysis, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: document is not valid UTF-8 text", errs.ErrValidation)
	}

	lower := strings.ToLower(text)
	out := &schema.CoverageAnalysis{
		ContractLength:   len(text),
		DetectedClauses:  []schema.ClauseMatch{},
		PotentialClauses: []schema.ClauseMatch{},
		Framework:        framework,
	}

	for _, cat := range d.taxonomy {
		total := len(cat.Indicators)
		if total == 0 {
			continue
		}
		found := 0
		for _, ind := range cat.Indicators {
			if d.matcher.Match(lower, ind) {
				found++
			}
		}
		if found == 0 {
			continue
		}
		m := schema.ClauseMatch{
			ClauseType:     cat.Name,
			Confidence:     float64(found) / float64(total),
			KeywordMatches: found,
			TotalKeywords:  total,
			Framework:      framework,
		}
		if m.Confidence >= DetectionThreshold {
			out.DetectedClauses = append(out.DetectedClauses, m)
		} else {
			out.PotentialClauses = append(out.PotentialClauses, m)
		}
	}

	if len(d.taxonomy) > 0 {
		out.CoverageScore = float64(len(out.DetectedClauses)) / float64(len(d.taxonomy))
	}
	return out, nil
}
