package framework

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/clauseguard/internal/clause"
	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/schema"
)

// Element is one checklist predicate of a framework. It holds when any of
// its keywords appears in the document.
type Element struct {
	Key            string
	Label          string
	Keywords       []string
	Critical       bool
	Severity       schema.Severity // severity of the issue synthesized when absent
	Category       string
	Recommendation string
}

// Framework defines the checklist and risk cut points of a regulatory regime.
type Framework struct {
	Name     string
	Title    string
	Elements []Element
	// LowAt and MediumAt are compliance-score cut points: score >= LowAt is
	// low risk, score >= MediumAt is medium risk, anything else is high.
	LowAt    float64
	MediumAt float64
	// Focus lists regime-specific instructions for the external analysis prompt.
	Focus []string
}

// Assessment is the result of checking one document against one framework.
type Assessment struct {
	Framework       string                   `json:"framework"`
	ComplianceScore float64                  `json:"compliance_score"`
	RiskLevel       schema.RiskLevel         `json:"risk_level"`
	Elements        map[string]bool          `json:"elements"`
	Coverage        *schema.CoverageAnalysis `json:"coverage"`
	Missing         []Element                `json:"-"`
}

// Risk maps a compliance score to the framework's risk band.
func (f *Framework) Risk(score float64) schema.RiskLevel {
	switch {
	case score >= f.LowAt:
		return schema.RiskLow
	case score >= f.MediumAt:
		return schema.RiskMedium
	default:
		return schema.RiskHigh
	}
}

// FormatRulesForPrompt returns the framework's checklist and focus rules for
// injection into the external analysis system prompt.
func (f *Framework) FormatRulesForPrompt() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Framework: %s (%s)\n", f.Name, f.Title))

	if len(f.Elements) > 0 {
		sb.WriteString("\nRequired elements (report a missing clause if absent):\n")
		for _, e := range f.Elements {
			marker := ""
			if e.Critical {
				marker = " [critical]"
			}
			sb.WriteString(fmt.Sprintf("- %s%s\n", e.Label, marker))
		}
	}

	if len(f.Focus) > 0 {
		sb.WriteString("\nReview focus:\n")
		for _, r := range f.Focus {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
	}

	return sb.String()
}

// Analyzer checks documents against one framework. It wraps the clause
// detector for the framework's specialized taxonomy.
type Analyzer struct {
	fw       *Framework
	detector *clause.Detector
	matcher  clause.Matcher
}

// NewAnalyzer returns an Analyzer for f. A nil matcher uses substring matching.
func NewAnalyzer(f *Framework, m clause.Matcher) *Analyzer {
	if m == nil {
		m = clause.SubstringMatcher{}
	}
	return &Analyzer{
		fw:       f,
		detector: clause.NewDetector(clause.For(f.Name), m),
		matcher:  m,
	}
}

// Framework returns the framework definition.
func (a *Analyzer) Framework() *Framework { return a.fw }

// Analyze evaluates every checklist element and the clause coverage of text.
func (a *Analyzer) Analyze(text string) (*Assessment, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: document is not valid UTF-8 text", errs.ErrValidation)
	}

	cov, err := a.detector.Analyze(text, a.fw.Name)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	out := &Assessment{
		Framework: a.fw.Name,
		Elements:  make(map[string]bool, len(a.fw.Elements)),
		Coverage:  cov,
	}

	present := 0
	for _, e := range a.fw.Elements {
		ok := a.anyKeyword(lower, e.Keywords)
		out.Elements[e.Key] = ok
		if ok {
			present++
		} else {
			out.Missing = append(out.Missing, e)
		}
	}
	if n := len(a.fw.Elements); n > 0 {
		out.ComplianceScore = float64(present) / float64(n)
	}
	out.RiskLevel = a.fw.Risk(out.ComplianceScore)
	return out, nil
}

func (a *Analyzer) anyKeyword(lower string, keywords []string) bool {
	for _, k := range keywords {
		if a.matcher.Match(lower, k) {
			return true
		}
	}
	return false
}

// Registry resolves framework names to analyzers. It is built once at
// configuration time and is safe for concurrent readers.
type Registry struct {
	analyzers map[string]*Analyzer
}

// Builtin returns the built-in framework definitions.
func Builtin() []*Framework {
	return []*Framework{general(), gdpr(), sox(), ccpa(), hipaa(), licensing()}
}

// NewRegistry registers the given frameworks, or the built-ins when none
// are given, with analyzers sharing m.
func NewRegistry(m clause.Matcher, frameworks ...*Framework) *Registry {
	if len(frameworks) == 0 {
		frameworks = Builtin()
	}
	r := &Registry{analyzers: make(map[string]*Analyzer, len(frameworks))}
	for _, f := range frameworks {
		r.analyzers[f.Name] = NewAnalyzer(f, m)
	}
	return r
}

// Get returns the analyzer for name.
func (r *Registry) Get(name string) (*Analyzer, error) {
	a, ok := r.analyzers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown framework %q: valid frameworks are %s", errs.ErrValidation, name, strings.Join(r.Names(), ", "))
	}
	return a, nil
}

// Resolve returns analyzers for names in order, dropping duplicates.
func (r *Registry) Resolve(names []string) ([]*Analyzer, error) {
	seen := make(map[string]bool, len(names))
	out := make([]*Analyzer, 0, len(names))
	for _, n := range names {
		a, err := r.Get(n)
		if err != nil {
			return nil, err
		}
		if seen[a.fw.Name] {
			continue
		}
		seen[a.fw.Name] = true
		out = append(out, a)
	}
	return out, nil
}

// Names returns the registered framework names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.analyzers))
	for n := range r.analyzers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
