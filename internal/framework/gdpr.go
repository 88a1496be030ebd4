package framework

import "github.com/dshills/clauseguard/internal/schema"

func gdpr() *Framework {
	return &Framework{
		Name:     "gdpr",
		Title:    "EU General Data Protection Regulation",
		LowAt:    0.7,
		MediumAt: 0.4,
		Elements: []Element{
			{
				Key: "has_legal_basis", Label: "Lawful basis for processing",
				Keywords: []string{"legal basis", "lawful basis", "consent", "legitimate interest"},
				Critical: true, Severity: schema.SeverityCritical, Category: "Lawful Basis",
				Recommendation: "State the lawful basis (Art. 6) for each processing purpose.",
			},
			{
				Key: "mentions_data_subjects", Label: "Identification of data subjects",
				Keywords: []string{"data subject", "individual", "user", "customer"},
				Severity: schema.SeverityMedium, Category: "Data Subjects",
				Recommendation: "Identify the categories of data subjects whose data is processed.",
			},
			{
				Key: "has_retention_policy", Label: "Data retention policy",
				Keywords: []string{"retention", "retain", "delete", "storage period"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Data Retention",
				Recommendation: "Define concrete retention periods and deletion procedures.",
			},
			{
				Key: "mentions_transfers", Label: "International transfer safeguards",
				Keywords: []string{"transfer", "third country", "adequacy", "standard contractual clauses"},
				Severity: schema.SeverityMedium, Category: "International Transfers",
				Recommendation: "Describe transfer mechanisms for data leaving the EEA.",
			},
			{
				Key: "has_security_measures", Label: "Technical and organisational security measures",
				Keywords: []string{"security", "encryption", "safeguard", "access control"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Security Measures",
				Recommendation: "Document technical and organisational measures (Art. 32).",
			},
			{
				Key: "mentions_rights", Label: "Data subject rights",
				Keywords: []string{"right to access", "right of access", "erasure", "rectification", "portability", "object"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Data Subject Rights",
				Recommendation: "Describe how data subjects exercise access, erasure, rectification and portability rights.",
			},
		},
		Focus: []string{
			"Every processing purpose must have a stated lawful basis",
			"Retention periods must be concrete durations, not 'as long as necessary'",
			"Breach notification to the supervisory authority within 72 hours must be addressed",
			"Processor and sub-processor obligations must be contractually bound",
		},
	}
}
