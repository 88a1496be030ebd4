// Package redline turns suggested clause rewrites into diff-match-patch
// text that can be reviewed against the original document.
package redline

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/clauseguard/internal/schema"
)

// located is a redline whose before text was found in the document.
type located struct {
	issueID string
	before  string // exact document text being replaced
	after   string
}

// GenerateDiff renders every redline whose before text can be located in
// text. Redlines that cannot be located are skipped with a warning written
// to w (may be nil).
func GenerateDiff(text string, redlines []schema.Redline, w io.Writer) string {
	if len(redlines) == 0 {
		return ""
	}

	normText := normalize(text)
	dmp := diffmatchpatch.New()
	var out strings.Builder

	for _, rl := range redlines {
		loc, ok := locate(rl, text, normText)
		if !ok {
			if w != nil {
				fmt.Fprintf(w, "WARN: redline for %s could not be located in document (before text not matched)\n", label(rl.IssueID))
			}
			continue
		}

		diffs := dmp.DiffMain(loc.before, loc.after, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		patchText := dmp.PatchToText(dmp.PatchMake(loc.before, diffs))
		if patchText == "" {
			continue
		}

		fmt.Fprintf(&out, "# redline for %s\n", label(loc.issueID))
		out.WriteString(patchText)
		out.WriteString("\n")
	}

	return out.String()
}

// locate finds rl.Before in text: first verbatim, then after trimming
// trailing whitespace and CRLF, then with any run of whitespace treated as
// equal so clauses re-wrapped across lines still match.
func locate(rl schema.Redline, text, normText string) (located, bool) {
	if strings.TrimSpace(rl.Before) == "" {
		return located{}, false
	}

	if strings.Contains(text, rl.Before) {
		return located{issueID: rl.IssueID, before: rl.Before, after: rl.After}, true
	}

	normBefore := normalize(rl.Before)
	if strings.Contains(normText, normBefore) {
		return located{issueID: rl.IssueID, before: normBefore, after: normalize(rl.After)}, true
	}

	if m := flexible(rl.Before).FindString(text); m != "" {
		return located{issueID: rl.IssueID, before: m, after: rl.After}, true
	}

	return located{}, false
}

// flexible compiles before into a pattern where each whitespace run matches
// any whitespace run.
func flexible(before string) *regexp.Regexp {
	words := strings.Fields(before)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(strings.Join(words, `\s+`))
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func label(issueID string) string {
	if issueID == "" {
		return "unlinked issue"
	}
	return issueID
}
