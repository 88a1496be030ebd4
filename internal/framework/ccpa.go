package framework

import "github.com/dshills/clauseguard/internal/schema"

func ccpa() *Framework {
	return &Framework{
		Name:     "ccpa",
		Title:    "California Consumer Privacy Act",
		LowAt:    0.7,
		MediumAt: 0.4,
		Elements: []Element{
			{
				Key: "has_notice_at_collection", Label: "Notice at collection",
				Keywords: []string{"categories of personal information", "notice at collection", "we collect"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Right to Know",
				Recommendation: "Disclose the categories of personal information collected and their purposes.",
			},
			{
				Key: "has_deletion_right", Label: "Right to delete",
				Keywords: []string{"right to delete", "deletion", "delete personal information"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Right to Delete",
				Recommendation: "Describe how consumers submit verifiable deletion requests.",
			},
			{
				Key: "has_opt_out", Label: "Opt-out of sale or sharing",
				Keywords: []string{"do not sell", "opt-out", "opt out"},
				Critical: true, Severity: schema.SeverityCritical, Category: "Opt-Out of Sale",
				Recommendation: "Provide a 'Do Not Sell or Share My Personal Information' mechanism.",
			},
			{
				Key: "has_non_discrimination", Label: "Non-discrimination",
				Keywords: []string{"non-discrimination", "discriminate"},
				Severity: schema.SeverityMedium, Category: "Non-Discrimination",
				Recommendation: "State that consumers exercising rights will not be discriminated against.",
			},
		},
		Focus: []string{
			"Sale or sharing of personal information must offer an opt-out",
			"Consumer requests must be answered within 45 days",
		},
	}
}
