package framework

import "github.com/dshills/clauseguard/internal/schema"

func general() *Framework {
	return &Framework{
		Name:     "general",
		Title:    "General contract hygiene",
		LowAt:    0.6,
		MediumAt: 0.3,
		Elements: []Element{
			{
				Key: "has_termination", Label: "Termination clause",
				Keywords: []string{"terminate", "termination"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Termination",
				Recommendation: "Add termination rights, notice periods and effects of termination.",
			},
			{
				Key: "has_liability_cap", Label: "Limitation of liability",
				Keywords: []string{"limitation of liability", "limited liability", "liable"},
				Critical: true, Severity: schema.SeverityHigh, Category: "Limitation of Liability",
				Recommendation: "Cap aggregate liability and exclude consequential damages.",
			},
			{
				Key: "has_governing_law", Label: "Governing law",
				Keywords: []string{"governing law", "governed by", "laws of"},
				Severity: schema.SeverityMedium, Category: "Governing Law",
				Recommendation: "Name the governing law and jurisdiction.",
			},
			{
				Key: "has_confidentiality", Label: "Confidentiality",
				Keywords: []string{"confidential", "non-disclosure"},
				Severity: schema.SeverityMedium, Category: "Confidentiality",
				Recommendation: "Define confidential information and the duration of the obligation.",
			},
			{
				Key: "has_dispute_resolution", Label: "Dispute resolution",
				Keywords: []string{"dispute", "arbitration", "mediation"},
				Severity: schema.SeverityLow, Category: "Dispute Resolution",
				Recommendation: "Specify escalation, mediation or arbitration steps.",
			},
		},
		Focus: []string{
			"Obligations must name the responsible party",
			"Deadlines must be concrete dates or durations",
		},
	}
}
