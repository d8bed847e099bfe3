package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// AllCategory is the default label of the category constraint that
// matches every record.
const AllCategory = "All"

// Schema tells the engine how to read a dataset's records.
type Schema struct {
	// CategoryField is the field used for tab filtering and colour coding.
	// Empty disables category filtering.
	CategoryField string

	// AllLabel is the category value meaning "no constraint".
	// Defaults to AllCategory.
	AllLabel string

	// Combined maps a user-facing field name to the schema fields it spans.
	// Their values are joined with a single space before matching.
	Combined map[string][]string
}

// All returns the effective all-label.
func (s Schema) All() string {
	if s.AllLabel == "" {
		return AllCategory
	}
	return s.AllLabel
}

// FieldText returns the searchable text of field, expanding combined fields.
func (s Schema) FieldText(r Record, field string) string {
	parts, ok := s.Combined[field]
	if !ok {
		return r.Text(field)
	}
	values := make([]string, len(parts))
	for i, p := range parts {
		values[i] = r.Text(p)
	}
	return strings.Join(values, " ")
}

// FilterState is the user's current filter selection.
// It is a value: the With methods return modified copies.
type FilterState struct {
	// Category is the active category, or the schema's all-label.
	Category string

	// Query is the raw query as typed.
	Query string

	// Fields are the enabled search fields. Empty means full-record matching.
	Fields []string

	// Where is an optional record predicate expression.
	Where string
}

// NewFilterState returns a state with no constraints for schema.
func NewFilterState(schema Schema, fields ...string) FilterState {
	return FilterState{Category: schema.All(), Fields: fields}
}

// WithCategory returns a copy with the category replaced.
func (f FilterState) WithCategory(category string) FilterState {
	f.Category = category
	return f
}

// WithQuery returns a copy with the query replaced.
func (f FilterState) WithQuery(query string) FilterState {
	f.Query = query
	return f
}

// WithFields returns a copy with the enabled fields replaced.
func (f FilterState) WithFields(fields ...string) FilterState {
	f.Fields = append([]string(nil), fields...)
	return f
}

// WithWhere returns a copy with the predicate expression replaced.
func (f FilterState) WithWhere(expr string) FilterState {
	f.Where = expr
	return f
}

// HasQuery reports whether the query survives normalisation.
func (f FilterState) HasQuery() bool {
	return Normalize(f.Query) != ""
}

// Equal reports whether two states select the same records.
func (f FilterState) Equal(o FilterState) bool {
	if f.Category != o.Category || f.Query != o.Query || f.Where != o.Where || len(f.Fields) != len(o.Fields) {
		return false
	}
	for i := range f.Fields {
		if f.Fields[i] != o.Fields[i] {
			return false
		}
	}
	return true
}

// Normalize lower-cases s and removes every whitespace character.
// Query and candidate values are compared in this form.
func Normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Filter returns the records matching state, preserving their order.
func Filter(records []Record, schema Schema, state FilterState) []Record {
	idx := FilterIndices(records, schema, state)
	out := make([]Record, len(idx))
	for i, n := range idx {
		out[i] = records[n]
	}
	return out
}

// FilterIndices returns the positions of the records matching state.
//
// The category constraint applies first as exact equality on the category
// field. A query that normalises to the empty string applies no text filter.
// With enabled fields a record matches if any field contains the query;
// without them any value of the record may match.
func FilterIndices(records []Record, schema Schema, state FilterState) []int {
	out, _ := FilterIndicesWhere(records, schema, state, nil)
	return out
}

// FilterIndicesWhere is FilterIndices with an additional predicate applied
// after the category constraint and before the text query. A nil predicate
// accepts every record. The first predicate error stops filtering.
func FilterIndicesWhere(records []Record, schema Schema, state FilterState, pred Predicate) ([]int, error) {
	query := Normalize(state.Query)
	constrain := schema.CategoryField != "" && state.Category != "" && state.Category != schema.All()

	out := make([]int, 0, len(records))
	for i, r := range records {
		if constrain && r.Text(schema.CategoryField) != state.Category {
			continue
		}
		if pred != nil {
			ok, err := pred(r)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			if !ok {
				continue
			}
		}
		if query != "" && !matches(r, schema, state.Fields, query) {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

func matches(r Record, schema Schema, fields []string, query string) bool {
	if len(fields) == 0 {
		for _, v := range r {
			if strings.Contains(Normalize(valueText(v)), query) {
				return true
			}
		}
		return false
	}
	for _, f := range fields {
		if strings.Contains(Normalize(schema.FieldText(r, f)), query) {
			return true
		}
	}
	return false
}

// Predicate reports whether a record satisfies a compiled where expression.
type Predicate func(Record) (bool, error)
