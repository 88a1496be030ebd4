package clause

// Category is a named clause type with the lexical indicators that signal it.
type Category struct {
	Name       string
	Indicators []string
}

// Taxonomy is an ordered catalog of clause categories.
type Taxonomy []Category

// Names returns the category names in catalog order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// General is the framework-independent contract clause catalog.
var General = Taxonomy{
	{Name: "Termination", Indicators: []string{"terminate", "termination", "notice of termination", "expiry", "expiration"}},
	{Name: "Limitation of Liability", Indicators: []string{"limitation of liability", "limited liability", "liable", "consequential damages", "aggregate liability"}},
	{Name: "Governing Law", Indicators: []string{"governing law", "governed by", "laws of", "jurisdiction"}},
	{Name: "Confidentiality", Indicators: []string{"confidential", "non-disclosure", "proprietary information", "trade secret"}},
	{Name: "Indemnification", Indicators: []string{"indemnify", "indemnification", "hold harmless", "defend"}},
	{Name: "Intellectual Property", Indicators: []string{"intellectual property", "copyright", "patent", "trademark", "work product"}},
	{Name: "Payment Terms", Indicators: []string{"payment", "invoice", "fees", "net 30", "late charge"}},
	{Name: "Warranty", Indicators: []string{"warrant", "warranty", "as is", "merchantability", "fitness for a particular purpose"}},
	{Name: "Force Majeure", Indicators: []string{"force majeure", "act of god", "beyond its reasonable control", "natural disaster"}},
	{Name: "Dispute Resolution", Indicators: []string{"dispute", "arbitration", "mediation", "venue"}},
	{Name: "Assignment", Indicators: []string{"assign", "assignment", "successors", "change of control"}},
	{Name: "Data Protection", Indicators: []string{"personal data", "data protection", "privacy", "data processing"}},
}

// GDPR specializes the catalog for the EU data-protection regime.
var GDPR = Taxonomy{
	{Name: "Lawful Basis", Indicators: []string{"lawful basis", "legal basis", "consent", "legitimate interest", "contractual necessity"}},
	{Name: "Data Subject Rights", Indicators: []string{"right of access", "right to erasure", "rectification", "data portability", "right to object"}},
	{Name: "Data Retention", Indicators: []string{"retention", "retain", "storage limitation", "deleted after"}},
	{Name: "International Transfers", Indicators: []string{"international transfer", "third country", "standard contractual clauses", "adequacy decision"}},
	{Name: "Security Measures", Indicators: []string{"encryption", "pseudonymisation", "technical and organisational measures", "access control"}},
	{Name: "Breach Notification", Indicators: []string{"personal data breach", "72 hours", "notify the supervisory authority", "breach notification"}},
	{Name: "Data Protection Officer", Indicators: []string{"data protection officer", "dpo"}},
	{Name: "Processor Obligations", Indicators: []string{"processor", "sub-processor", "data processing agreement", "article 28"}},
}

// SOX specializes the catalog for financial-reporting controls.
var SOX = Taxonomy{
	{Name: "Internal Controls", Indicators: []string{"internal control", "control environment", "segregation of duties", "icfr"}},
	{Name: "Financial Reporting", Indicators: []string{"financial statement", "financial reporting", "disclosure controls", "material misstatement"}},
	{Name: "Audit", Indicators: []string{"audit", "auditor", "audit committee", "independent auditor"}},
	{Name: "Record Retention", Indicators: []string{"record retention", "retain records", "seven years", "7 years"}},
	{Name: "Whistleblower Protection", Indicators: []string{"whistleblower", "retaliation", "anonymous reporting", "hotline"}},
	{Name: "Officer Certification", Indicators: []string{"certify", "certification", "chief executive officer", "chief financial officer"}},
}

// CCPA specializes the catalog for the California consumer privacy regime.
var CCPA = Taxonomy{
	{Name: "Right to Know", Indicators: []string{"right to know", "categories of personal information", "disclose"}},
	{Name: "Right to Delete", Indicators: []string{"right to delete", "deletion request", "delete personal information"}},
	{Name: "Opt-Out of Sale", Indicators: []string{"do not sell", "opt-out", "opt out", "sale of personal information"}},
	{Name: "Non-Discrimination", Indicators: []string{"non-discrimination", "discriminate", "financial incentive"}},
	{Name: "Service Provider Terms", Indicators: []string{"service provider", "business purpose", "contractor"}},
}

// HIPAA specializes the catalog for protected health information.
var HIPAA = Taxonomy{
	{Name: "Protected Health Information", Indicators: []string{"protected health information", "phi", "health information"}},
	{Name: "Business Associate", Indicators: []string{"business associate", "baa", "covered entity"}},
	{Name: "Safeguards", Indicators: []string{"administrative safeguards", "physical safeguards", "technical safeguards", "safeguard"}},
	{Name: "Breach Notification", Indicators: []string{"breach notification", "unsecured phi", "notify", "60 days"}},
	{Name: "Minimum Necessary", Indicators: []string{"minimum necessary", "need to know"}},
}

// Licensing specializes the catalog for software and IP license agreements.
var Licensing = Taxonomy{
	{Name: "License Grant", Indicators: []string{"grants", "license grant", "non-exclusive", "exclusive license", "perpetual"}},
	{Name: "Restrictions", Indicators: []string{"shall not", "reverse engineer", "sublicense", "restriction"}},
	{Name: "Royalties", Indicators: []string{"royalty", "royalties", "license fee", "revenue share"}},
	{Name: "Term and Renewal", Indicators: []string{"term", "renewal", "renew", "initial term"}},
	{Name: "IP Ownership", Indicators: []string{"ownership", "owns", "title and interest", "intellectual property"}},
	{Name: "Audit Rights", Indicators: []string{"audit", "inspect", "records"}},
}

var byFramework = map[string]Taxonomy{
	"general":   General,
	"gdpr":      GDPR,
	"sox":       SOX,
	"ccpa":      CCPA,
	"hipaa":     HIPAA,
	"licensing": Licensing,
}

// For returns the taxonomy specialized for a framework, falling back to
// the general catalog when the framework has no specialization.
func For(framework string) Taxonomy {
	if t, ok := byFramework[framework]; ok {
		return t
	}
	return General
}
