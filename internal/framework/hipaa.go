package framework

import "github.com/dshills/clauseguard/internal/schema"

func hipaa() *Framework {
	return &Framework{
		Name:     "hipaa",
		Title:    "Health Insurance Portability and Accountability Act",
		LowAt:    0.7,
		MediumAt: 0.4,
		Elements: []Element{
			{
				Key: "mentions_phi", Label: "Protected health information scope",
				Keywords: []string{"protected health information", "phi", "health information"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Protected Health Information",
				Recommendation: "Define what protected health information is covered.",
			},
			{
				Key: "has_safeguards", Label: "Administrative, physical and technical safeguards",
				Keywords: []string{"safeguard", "encryption", "access control"},
				Critical: true, Severity: schema.SeverityCritical, Category: "Safeguards",
				Recommendation: "Specify the safeguards required by the Security Rule.",
			},
			{
				Key: "has_breach_notification", Label: "Breach notification",
				Keywords: []string{"breach notification", "notify", "unsecured"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Breach Notification",
				Recommendation: "Require notification of breaches of unsecured PHI within 60 days.",
			},
			{
				Key: "has_business_associate", Label: "Business associate obligations",
				Keywords: []string{"business associate", "covered entity"},
				Severity: schema.SeverityMedium, Category: "Business Associate",
				Recommendation: "Bind business associates to HIPAA obligations through a BAA.",
			},
			{
				Key: "has_minimum_necessary", Label: "Minimum necessary standard",
				Keywords: []string{"minimum necessary", "need to know"},
				Severity: schema.SeverityLow, Category: "Minimum Necessary",
				Recommendation: "Limit uses and disclosures of PHI to the minimum necessary.",
			},
		},
		Focus: []string{
			"Uses and disclosures of PHI must be limited to permitted purposes",
			"Business associate agreements must flow obligations to subcontractors",
		},
	}
}
