// Package render serializes compliance reports. Every renderer is a pure
// function of the report: output contains no timestamps beyond those the
// report already carries, and map-valued metadata is emitted in sorted key
// order.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/dshills/clauseguard/internal/schema"
)

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(report *schema.Report) ([]byte, error)
}

// Formats lists the supported format names.
var Formats = []string{"json", "md", "audit"}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md", "audit".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "audit":
		return &auditRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are %s", format, strings.Join(Formats, ", "))
	}
}

// JSON renders r as indented JSON.
func JSON(r *schema.Report) (string, error) { return renderString(&jsonRenderer{}, r) }

// Markdown renders r as a Markdown report.
func Markdown(r *schema.Report) (string, error) { return renderString(&markdownRenderer{}, r) }

// AuditEntry renders r as an audit-trail entry.
func AuditEntry(r *schema.Report) (string, error) { return renderString(&auditRenderer{}, r) }

func renderString(rn Renderer, r *schema.Report) (string, error) {
	b, err := rn.Render(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type metaEntry struct {
	Key   string
	Value string
}

var funcs = template.FuncMap{
	"upper": func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
	"score": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"pct":   func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
	"date":  func(t time.Time) string { return t.UTC().Format("2006-01-02") },
	"stamp": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"orNone": func(s *string) string {
		if s == nil || *s == "" {
			return "-"
		}
		return *s
	},
	"cell": func(s string) string {
		return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
	},
	"meta": metaEntries,
}

// metaEntries flattens metadata into sorted key/value lines. Scalars print
// as-is; structured values print as compact JSON, which sorts map keys.
func metaEntries(md map[string]any) []metaEntry {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]metaEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, metaEntry{Key: k, Value: metaValue(md[k])})
	}
	return out
}

func metaValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool, int, int64, float64:
		return fmt.Sprint(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
