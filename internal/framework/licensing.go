package framework

import "github.com/dshills/clauseguard/internal/schema"

func licensing() *Framework {
	return &Framework{
		Name:     "licensing",
		Title:    "Software and IP licensing",
		LowAt:    0.6,
		MediumAt: 0.3,
		Elements: []Element{
			{
				Key: "has_license_grant", Label: "License grant and scope",
				Keywords: []string{"grants", "license grant", "licence", "license"},
				Critical: true, Severity: schema.SeverityCritical, Category: "License Grant",
				Recommendation: "State the licensed rights, exclusivity and territory.",
			},
			{
				Key: "has_restrictions", Label: "Usage restrictions",
				Keywords: []string{"shall not", "reverse engineer", "restriction", "sublicense"},
				Severity: schema.SeverityMedium, Category: "Restrictions",
				Recommendation: "Enumerate prohibited uses such as sublicensing and reverse engineering.",
			},
			{
				Key: "has_fees", Label: "Royalties or license fees",
				Keywords: []string{"royalt", "license fee", "fees"},
				Severity: schema.SeverityMedium, Category: "Royalties",
				Recommendation: "Define fee amounts, payment schedule and reporting.",
			},
			{
				Key: "has_ip_ownership", Label: "Ownership of intellectual property",
				Keywords: []string{"ownership", "owns", "title and interest", "intellectual property"},
				Critical: true, Severity: schema.SeverityHigh, Category: "IP Ownership",
				Recommendation: "Clarify ownership of the licensed IP and of derivative works.",
			},
			{
				Key: "has_term", Label: "Term and termination",
				Keywords: []string{"term", "terminat"},
				Severity: schema.SeverityMedium, Category: "Term and Renewal",
				Recommendation: "Define the license term, renewal and termination triggers.",
			},
		},
		Focus: []string{
			"Scope of the grant must not exceed the licensor's own rights",
			"Post-termination obligations (return, destruction of copies) must be stated",
		},
	}
}
