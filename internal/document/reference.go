package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/clauseguard/internal/redact"
)

// Reference is a grounding document (internal policy, prior agreement)
// supplied alongside the document under review, after redaction.
type Reference struct {
	Path    string
	Content string
}

// LoadReferences reads and redacts each reference file.
func LoadReferences(paths []string) ([]Reference, error) {
	refs := make([]Reference, 0, len(paths))
	for _, p := range paths {
		content, err := redact.RedactFile(p)
		if err != nil {
			return nil, fmt.Errorf("loading reference file %q: %w", p, err)
		}
		refs = append(refs, Reference{Path: p, Content: content})
	}
	return refs, nil
}

// FormatForPrompt wraps each reference in XML-style tags for prompt insertion.
func FormatForPrompt(refs []Reference) string {
	if len(refs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, r := range refs {
		sb.WriteString(fmt.Sprintf("<reference file=%q>\n", filepath.Base(r.Path)))
		sb.WriteString(r.Content)
		if !strings.HasSuffix(r.Content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("</reference>\n")
	}
	return sb.String()
}

// Digest returns a stable string covering reference contents, used as part
// of the analysis cache key.
func Digest(refs []Reference) string {
	if len(refs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, r := range refs {
		sb.WriteString(filepath.Base(r.Path))
		sb.WriteString("=")
		sb.WriteString(Hash(r.Content))
		sb.WriteString(";")
	}
	return sb.String()
}
