package llm

import (
	"fmt"
	"strings"

	"github.com/dshills/clauseguard/internal/document"
	"github.com/dshills/clauseguard/internal/framework"
	"github.com/dshills/clauseguard/internal/schema"
)

const systemPromptBase = `You are a compliance analyst. Your job is to assess legal and business documents against named regulatory frameworks.

For each framework, identify:
- issues: provisions that are absent, ambiguous, or conflict with the framework
- missing_clauses: required clauses that do not appear in the document at all
- recommendations: concrete drafting changes that would close the gaps

Severity rules:
- critical: exposes the organization to regulatory sanction as written
- high: a required element is missing or materially deficient
- medium: an element is present but vague or incomplete
- low: drafting quality issue with no direct regulatory exposure

Anti-hallucination rules:
- Only quote text that appears in the provided document
- Do not invent obligations that the framework does not impose
- Location must reference a section heading or quote from the document, or be null
- Confidence is a number between 0 and 1

Output rules:
- Return JSON only: no prose, no markdown fences, no explanation
- JSON must match the provided schema exactly
- Do not include report status or mitigation plans; those are computed externally
- redlines[].issue_id is the 1-based position of the related issue in the issues array`

const schemaExample = `{
  "issues": [
    {
      "severity": "high",
      "category": "Data Retention",
      "description": "The policy does not state how long personal data is kept",
      "location": "Section 4 Storage",
      "recommendation": "State a concrete retention period for each data category",
      "framework": "gdpr",
      "confidence": 0.8
    }
  ],
  "missing_clauses": ["Breach Notification"],
  "recommendations": ["Add a breach notification clause with a 72-hour deadline"],
  "risk_score": 0.45,
  "redlines": [
    {
      "issue_id": "1",
      "before": "exact text from the document to be replaced",
      "after": "corrected replacement text"
    }
  ]
}`

// depthInstructions holds the per-depth addendum to the system prompt.
var depthInstructions = map[schema.Depth]string{
	schema.DepthQuick: `
QUICK REVIEW: Report only critical and high severity issues. Omit redlines.`,
	schema.DepthStandard: "",
	schema.DepthComprehensive: `
COMPREHENSIVE REVIEW: Report every issue including low severity drafting issues.
Provide a redline for each issue where a textual fix is possible.`,
}

// BuildSystemPrompt constructs the system prompt with the rules of every
// requested framework and the depth addendum.
func BuildSystemPrompt(frameworks []*framework.Framework, depth schema.Depth) string {
	var sb strings.Builder
	sb.WriteString(systemPromptBase)
	sb.WriteString(depthInstructions[depth])

	for _, f := range frameworks {
		if f == nil {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(f.FormatRulesForPrompt())
	}

	return sb.String()
}

// BuildUserPrompt constructs the user prompt with the document, optional
// reference files, and the JSON schema example.
func BuildUserPrompt(text string, frameworks []string, refs []document.Reference) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Assess the following document for compliance with: %s.\n\n", strings.Join(frameworks, ", ")))

	sb.WriteString("<document>\n")
	sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("</document>\n")

	if len(refs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(document.FormatForPrompt(refs))
	}

	sb.WriteString("\nReturn your findings as JSON with this structure:\n")
	sb.WriteString(schemaExample)

	return sb.String()
}
