package framework

import "github.com/dshills/clauseguard/internal/schema"

func sox() *Framework {
	return &Framework{
		Name:     "sox",
		Title:    "Sarbanes-Oxley Act financial reporting controls",
		LowAt:    0.6,
		MediumAt: 0.3,
		Elements: []Element{
			{
				Key: "has_internal_controls", Label: "Internal control over financial reporting",
				Keywords: []string{"internal control", "control environment", "segregation of duties"},
				Critical: true, Severity: schema.SeverityCritical, Category: "Internal Controls",
				Recommendation: "Describe the internal control framework over financial reporting (Section 404).",
			},
			{
				Key: "has_audit_requirements", Label: "Independent audit requirements",
				Keywords: []string{"audit", "auditor", "audit committee"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Audit",
				Recommendation: "Specify audit committee oversight and independent auditor access.",
			},
			{
				Key: "has_record_retention", Label: "Financial record retention",
				Keywords: []string{"record retention", "retain records", "seven years", "7 years"},
				Severity: schema.SeverityMedium, Category: "Record Retention",
				Recommendation: "Require retention of audit work papers and financial records for seven years.",
			},
			{
				Key: "has_officer_certification", Label: "Officer certification of reports",
				Keywords: []string{"certify", "certification", "chief financial officer", "chief executive officer"},
				Severity: schema.SeverityMedium, Category: "Officer Certification",
				Recommendation: "Require CEO and CFO certification of periodic financial reports (Section 302).",
			},
			{
				Key: "has_whistleblower", Label: "Whistleblower protection",
				Keywords: []string{"whistleblower", "retaliation", "anonymous"},
				Severity: schema.SeverityMedium, Category: "Whistleblower Protection",
				Recommendation: "Provide an anonymous reporting channel and anti-retaliation protection.",
			},
		},
		Focus: []string{
			"Material weaknesses in internal control must be disclosed",
			"Financial statements must be certified by principal officers",
			"Destruction or alteration of financial records must be prohibited",
		},
	}
}
