package schema

import "time"

// Report is the root aggregate produced by one analysis call.
// It is never mutated after it has been stored.
type Report struct {
	ReportID           string             `json:"report_id"`
	DocumentID         string             `json:"document_id"`
	GeneratedAt        time.Time          `json:"generated_at"`
	OverallStatus      Status             `json:"overall_status"`
	RiskLevel          RiskLevel          `json:"risk_level"`
	RiskScore          float64            `json:"risk_score"`
	FrameworksAnalyzed []string           `json:"frameworks_analyzed"`
	Summary            string             `json:"summary"`
	Issues             []Issue            `json:"issues"`
	MissingClauses     []string           `json:"missing_clauses"`
	MitigationActions  []MitigationAction `json:"mitigation_actions"`
	Recommendations    []string           `json:"recommendations"`
	Redlines           []Redline          `json:"redlines,omitempty"`
	Metadata           map[string]any     `json:"metadata"`
}

// Degraded reports whether the report was built without the external
// analysis service's contribution.
func (r *Report) Degraded() bool {
	d, _ := r.Metadata[MetaDegraded].(bool)
	return d
}

// Metadata keys written by the engine.
const (
	MetaAnalysisMode   = "analysis_mode"
	MetaDegraded       = "degraded"
	MetaDegradedReason = "degraded_reason"
	MetaDepth          = "depth"
	MetaModel          = "model"
	MetaCacheHit       = "cache_hit"
	MetaParseFailed    = "parse_failed"
	MetaRedactions     = "redactions"
	MetaDocumentHash   = "document_hash"
	MetaFrameworks     = "frameworks"
)

// Analysis modes recorded under MetaAnalysisMode.
const (
	ModeFull     = "full"
	ModeDegraded = "degraded"
)

// Severity of a compliance issue. Mitigation priority mirrors it.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid reports whether s is one of the four defined severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Ordinal returns low(0) < medium(1) < high(2) < critical(3), or -1.
func (s Severity) Ordinal() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return -1
}

// Status is the overall compliance verdict of a report.
type Status string

const (
	StatusCompliant          Status = "compliant"
	StatusPartiallyCompliant Status = "partially_compliant"
	StatusNonCompliant       Status = "non_compliant"
	StatusRequiresReview     Status = "requires_review"
)

// StatusOrdinal orders statuses by how far they are from compliant, used by
// --fail-on comparison. compliant(0) < requires_review(1) <
// partially_compliant(2) < non_compliant(3). Returns -1 when unrecognised.
func StatusOrdinal(s Status) int {
	switch s {
	case StatusCompliant:
		return 0
	case StatusRequiresReview:
		return 1
	case StatusPartiallyCompliant:
		return 2
	case StatusNonCompliant:
		return 3
	default:
		return -1
	}
}

// RiskLevel is the band a risk score falls into.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ClauseMatch is one taxonomy category scored against a document.
type ClauseMatch struct {
	ClauseType     string  `json:"clause_type"`
	Confidence     float64 `json:"confidence"`
	KeywordMatches int     `json:"keyword_matches"`
	TotalKeywords  int     `json:"total_keywords"`
	Framework      string  `json:"framework"`
}

// CoverageAnalysis is the clause detector's output for one (document, framework) pair.
type CoverageAnalysis struct {
	ContractLength   int           `json:"contract_length"`
	DetectedClauses  []ClauseMatch `json:"detected_clauses"`
	PotentialClauses []ClauseMatch `json:"potential_clauses"`
	CoverageScore    float64       `json:"coverage_score"`
	Framework        string        `json:"framework"`
}

// Issue is a single compliance finding.
type Issue struct {
	IssueID        string   `json:"issue_id"`
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Location       *string  `json:"location"`
	Recommendation string   `json:"recommendation"`
	Framework      string   `json:"framework"`
	Confidence     float64  `json:"confidence"`
}

// MitigationAction is a remediation task derived from exactly one issue.
type MitigationAction struct {
	ActionID             string    `json:"action_id"`
	IssueID              string    `json:"issue_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Priority             Severity  `json:"priority"`
	EstimatedEffortHours int       `json:"estimated_effort_hours"`
	ResponsibleParty     *string   `json:"responsible_party"`
	DueDate              time.Time `json:"due_date"`
	Dependencies         []string  `json:"dependencies"`
}

// Redline is a suggested rewrite of document text returned by the
// external analysis service. internal/redline turns these into diffs.
type Redline struct {
	IssueID string `json:"issue_id"`
	Before  string `json:"before"`
	After   string `json:"after"`
}

// Depth controls how exhaustive the external analysis is asked to be.
type Depth string

const (
	DepthQuick         Depth = "quick"
	DepthStandard      Depth = "standard"
	DepthComprehensive Depth = "comprehensive"
)

// IsValid reports whether d is a defined depth.
func (d Depth) IsValid() bool {
	switch d {
	case DepthQuick, DepthStandard, DepthComprehensive:
		return true
	}
	return false
}
