package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// Markup wrapped around each highlighted match.
const (
	HighlightOpen  = `<span class="highlight">`
	HighlightClose = `</span>`
)

// gap matches any run of whitespace between fuzzy query characters.
const gap = `[\s\p{Z}]*`

// HighlightMode selects how query matches are located in display text.
type HighlightMode string

const (
	// HighlightLiteral matches the trimmed query verbatim, ignoring case.
	HighlightLiteral HighlightMode = "literal"

	// HighlightFuzzy ignores whitespace in the query and tolerates any
	// whitespace between its characters in the text.
	HighlightFuzzy HighlightMode = "fuzzy"
)

// IsValid returns true if the mode is recognised.
func (m HighlightMode) IsValid() bool {
	return m == HighlightLiteral || m == HighlightFuzzy
}

// Spans splits text into matched and unmatched spans for this mode.
func (m HighlightMode) Spans(text, query string) []Span {
	if m == HighlightFuzzy {
		return FuzzyHighlightSpans(text, query)
	}
	return HighlightSpans(text, query)
}

// Markup renders text with matches wrapped for this mode.
func (m HighlightMode) Markup(text, query string) string {
	return Markup(m.Spans(text, query))
}

// Span is a contiguous piece of display text.
type Span struct {
	Text  string
	Match bool
}

// Highlight wraps every case-insensitive literal occurrence of query in text.
func Highlight(text, query string) string {
	return Markup(HighlightSpans(text, query))
}

// FuzzyHighlight wraps every whitespace-tolerant occurrence of query in text.
func FuzzyHighlight(text, query string) string {
	return Markup(FuzzyHighlightSpans(text, query))
}

// HighlightSpans returns text split around literal, case-insensitive matches.
// An empty query or text yields the text as a single unmatched span.
func HighlightSpans(text, query string) []Span {
	query = strings.TrimSpace(query)
	if text == "" || query == "" {
		return plain(text)
	}
	return split(text, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(query)))
}

// FuzzyHighlightSpans strips whitespace from query and matches its
// characters in order with arbitrary whitespace between them.
func FuzzyHighlightSpans(text, query string) []Span {
	chars := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, query))
	if text == "" || len(chars) == 0 {
		return plain(text)
	}

	parts := make([]string, len(chars))
	for i, r := range chars {
		parts[i] = regexp.QuoteMeta(string(r))
	}
	return split(text, regexp.MustCompile(`(?i)`+strings.Join(parts, gap)))
}

// Markup joins spans, wrapping matched spans in highlight markup.
// Unmatched text is emitted verbatim.
func Markup(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Match {
			b.WriteString(HighlightOpen)
			b.WriteString(s.Text)
			b.WriteString(HighlightClose)
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// HasMatch reports whether any span is a match.
func HasMatch(spans []Span) bool {
	for _, s := range spans {
		if s.Match {
			return true
		}
	}
	return false
}

func plain(text string) []Span {
	if text == "" {
		return nil
	}
	return []Span{{Text: text}}
}

func split(text string, re *regexp.Regexp) []Span {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return plain(text)
	}

	spans := make([]Span, 0, len(locs)*2+1)
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
