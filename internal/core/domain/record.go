package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is one flat row of a dataset.
// Values are strings, nil, or JSON scalars passed through from the source.
type Record map[string]any

// Text returns the display string for field.
// Missing and null fields read as the empty string.
func (r Record) Text(field string) string {
	return valueText(r[field])
}

// Has reports whether field holds a non-empty value.
func (r Record) Has(field string) bool {
	return r.Text(field) != ""
}

// Fields returns the record's field names in sorted order.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Trimmed returns a copy with leading and trailing whitespace removed
// from every string value. Non-string values pass through unchanged.
func (r Record) Trimmed() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if s, ok := v.(string); ok {
			out[k] = strings.TrimSpace(s)
			continue
		}
		out[k] = v
	}
	return out
}

// ResolveAliases sets each target field to the first non-empty value among
// its source fields, e.g. {"Category": {"Category", "MainCategory"}}.
// The receiver is modified in place.
func (r Record) ResolveAliases(aliases map[string][]string) {
	for target, sources := range aliases {
		for _, src := range sources {
			if v, ok := r[src]; ok && valueText(v) != "" {
				r[target] = v
				break
			}
		}
	}
}

func valueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
