package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/clauseguard/internal/schema"
)

// defaultConfidence applies when the service omits an issue's confidence.
const defaultConfidence = 0.5

// Findings is the validated, normalized content of a service response.
type Findings struct {
	Issues          []schema.Issue   `json:"issues"`
	MissingClauses  []string         `json:"missing_clauses"`
	Recommendations []string         `json:"recommendations"`
	RiskScore       *float64         `json:"risk_score,omitempty"`
	Redlines        []schema.Redline `json:"redlines,omitempty"`
}

type rawIssue struct {
	Severity       string   `json:"severity"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Location       *string  `json:"location"`
	Recommendation string   `json:"recommendation"`
	Framework      string   `json:"framework"`
	Confidence     *float64 `json:"confidence"`
}

type rawPayload struct {
	Issues          []rawIssue       `json:"issues"`
	MissingClauses  []string         `json:"missing_clauses"`
	Recommendations []string         `json:"recommendations"`
	RiskScore       *float64         `json:"risk_score"`
	Redlines        []schema.Redline `json:"redlines"`
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// UnspecifiedFramework labels an issue that names no framework when the
// request covered more than one.
const UnspecifiedFramework = "unspecified"

// Parse extracts the JSON object from a service response (bare, or inside a
// markdown fence), validates each issue, and normalizes values. An issue
// without a framework is attributed to the only requested framework, or to
// UnspecifiedFramework otherwise.
func Parse(raw string, frameworks ...string) (*Findings, error) {
	var p rawPayload
	if err := unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("JSON parse failed: %w", err)
	}

	out := &Findings{
		Issues:          make([]schema.Issue, 0, len(p.Issues)),
		MissingClauses:  compact(p.MissingClauses),
		Recommendations: compact(p.Recommendations),
		Redlines:        p.Redlines,
	}

	for i, ri := range p.Issues {
		iss, err := validateIssue(ri, i)
		if err != nil {
			return nil, err
		}
		if iss.Framework == "" {
			iss.Framework = defaultFramework(frameworks)
		}
		out.Issues = append(out.Issues, iss)
	}

	if p.RiskScore != nil {
		r := clamp(*p.RiskScore)
		out.RiskScore = &r
	}
	return out, nil
}

func unmarshal(raw string, v any) error {
	s := strings.TrimSpace(raw)
	err := json.Unmarshal([]byte(s), v)
	if err == nil {
		return nil
	}
	if m := fencedBlock.FindStringSubmatch(s); len(m) >= 2 {
		if ferr := json.Unmarshal([]byte(strings.TrimSpace(m[1])), v); ferr == nil {
			return nil
		}
	}
	return err
}

func validateIssue(ri rawIssue, idx int) (schema.Issue, error) {
	prefix := fmt.Sprintf("issue[%d]", idx)

	sev := schema.Severity(strings.ToLower(strings.TrimSpace(ri.Severity)))
	if !sev.IsValid() {
		return schema.Issue{}, fmt.Errorf("%s: invalid severity %q (must be low, medium, high, or critical)", prefix, ri.Severity)
	}
	if strings.TrimSpace(ri.Category) == "" {
		return schema.Issue{}, fmt.Errorf("%s: category is required", prefix)
	}
	if strings.TrimSpace(ri.Description) == "" {
		return schema.Issue{}, fmt.Errorf("%s: description is required", prefix)
	}

	conf := defaultConfidence
	if ri.Confidence != nil {
		conf = clamp(*ri.Confidence)
	}

	var loc *string
	if ri.Location != nil && strings.TrimSpace(*ri.Location) != "" {
		l := strings.TrimSpace(*ri.Location)
		loc = &l
	}

	return schema.Issue{
		Severity:       sev,
		Category:       strings.TrimSpace(ri.Category),
		Description:    strings.TrimSpace(ri.Description),
		Location:       loc,
		Recommendation: strings.TrimSpace(ri.Recommendation),
		Framework:      strings.ToLower(strings.TrimSpace(ri.Framework)),
		Confidence:     conf,
	}, nil
}

func defaultFramework(frameworks []string) string {
	if len(frameworks) == 1 {
		return strings.ToLower(frameworks[0])
	}
	return UnspecifiedFramework
}

// compact trims entries and drops blanks and exact duplicates.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Category classifies a parse error into a fixed string without echoing
// any model-generated content back into a repair prompt.
func Category(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "JSON parse failed"):
		return "JSON syntax error"
	case strings.Contains(msg, "invalid severity"):
		return "invalid enum value (severity must be low, medium, high, or critical)"
	case strings.Contains(msg, "is required"):
		return "missing required field"
	default:
		return "schema validation error"
	}
}
