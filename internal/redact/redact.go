package redact

import (
	"os"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// pemPattern matches PEM key blocks across multiple lines.
var pemPattern = regexp.MustCompile(`(?s)-----BEGIN [A-Z ]+KEY-----.*?-----END [A-Z ]+KEY-----`)

type rule struct {
	name string
	re   *regexp.Regexp
}

// rules hold single-line detectors in priority order. Credentials first,
// then identifiers that commonly appear in contracts and policies.
var rules = []rule{
	{"aws_key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"api_key", regexp.MustCompile(`(?:^|\s|["'])sk-[a-zA-Z0-9]{20,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)},
	{"bearer", regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]{20,}=*`)},
	{"password", regexp.MustCompile(`(?i)password\s*[:=]\s*\S+`)},
	{"us_ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"iban", regexp.MustCompile(`\b[A-Z]{2}\d{2}(?: ?[A-Z0-9]{4}){3,7}\b`)},
	{"card_number", regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`)},
}

// Redact replaces known secrets and account identifiers in input with
// [REDACTED]. The number of newlines is preserved.
func Redact(input string) string {
	out, _ := RedactCount(input)
	return out
}

// RedactCount is Redact that also reports how many replacements were made.
func RedactCount(input string) (string, int) {
	n := 0

	// PEM blocks are replaced line by line so that line count is preserved.
	input = pemPattern.ReplaceAllStringFunc(input, func(match string) string {
		n++
		lines := strings.Split(match, "\n")
		for i := range lines {
			lines[i] = redacted
		}
		return strings.Join(lines, "\n")
	})

	for _, r := range rules {
		input = r.re.ReplaceAllStringFunc(input, func(string) string {
			n++
			return redacted
		})
	}
	return input, n
}

// RedactFile reads a file, redacts its content, and returns the result.
func RedactFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Redact(string(data)), nil
}
