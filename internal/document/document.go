package document

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document holds a loaded document with derived metadata.
type Document struct {
	ID   string
	Path string
	Hash string // "sha256:<hex>" of the raw bytes
	Text string
}

// Load reads a document from disk and hashes its content.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return &Document{
		ID:   filepath.Base(path),
		Path: path,
		Hash: Hash(string(data)),
		Text: string(data),
	}, nil
}

// Hash returns "sha256:<hex>" of text.
func Hash(text string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(text)))
}

// Normalize converts CRLF to LF, collapses runs of whitespace within each
// line, drops blank lines and trims the result. Two documents that differ
// only in layout normalize identically.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Fingerprint identifies an analysis request by normalized content. The
// framework list is order-insensitive; extra parts (depth, reference
// content) are included verbatim.
func Fingerprint(text string, frameworks []string, extra ...string) string {
	fw := make([]string, len(frameworks))
	for i, f := range frameworks {
		fw[i] = strings.ToLower(strings.TrimSpace(f))
	}
	sort.Strings(fw)

	h := sha256.New()
	h.Write([]byte(Normalize(text)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(fw, ",")))
	for _, e := range extra {
		h.Write([]byte{0})
		h.Write([]byte(e))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
