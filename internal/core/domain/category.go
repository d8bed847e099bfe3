package domain

// Colour tokens used when a value has no assigned colour.
const (
	DefaultColor        = "var(--icloud-text-primary)"
	DetailFallbackColor = "var(--apple-text-primary)"
)

// Palette is an ordered list of colour tokens assigned by first-seen index.
type Palette []string

// Built-in palettes for the guide dataset's colour-coded fields.
var (
	SubCategoryPalette = Palette{
		"#6a89cc", "#38ada9", "#b8e994", "#f6b93b", "#e55039",
		"#4a69bd", "#60a3bc", "#78e08f", "#fa983a", "#eb2f06",
	}
	ItemPalette = Palette{
		"#4a69bd", "#60a3bc", "#78e08f", "#b8e994",
		"#f6b93b", "#fa983a", "#e55039", "#eb2f06",
	}
	SubItemPalette = Palette{
		"#38ada9", "#78e08f", "#b8e994", "#f6b93b",
		"#fa983a", "#e55039", "#eb2f06",
	}
)

// ColorMap assigns a stable colour to each distinct value of one field.
// It is built once from the full dataset and never from a filtered subset.
type ColorMap struct {
	field  string
	order  []string
	colors map[string]string
}

// BuildColorMap assigns palette[i mod len(palette)] to the i-th distinct
// non-empty value of field, in record order.
func BuildColorMap(records []Record, field string, palette Palette) ColorMap {
	m := ColorMap{field: field, colors: make(map[string]string)}
	for _, r := range records {
		v := r.Text(field)
		if v == "" {
			continue
		}
		if _, seen := m.colors[v]; seen {
			continue
		}
		color := DefaultColor
		if len(palette) > 0 {
			color = palette[len(m.order)%len(palette)]
		}
		m.colors[v] = color
		m.order = append(m.order, v)
	}
	return m
}

// Field returns the field the map was built over.
func (m ColorMap) Field() string {
	return m.field
}

// Color returns the colour for value, or DefaultColor when unassigned.
func (m ColorMap) Color(value string) string {
	if c, ok := m.colors[value]; ok {
		return c
	}
	return DefaultColor
}

// RecordColor looks up the colour of r's value for the map's field.
func (m ColorMap) RecordColor(r Record) string {
	return m.Color(r.Text(m.field))
}

// Values returns the distinct values in first-seen order.
func (m ColorMap) Values() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of distinct values.
func (m ColorMap) Len() int {
	return len(m.order)
}

// ColorMaps holds one ColorMap per colour-coded field.
type ColorMaps map[string]ColorMap

// Color returns the colour of r's value for field, or DefaultColor.
func (c ColorMaps) Color(field string, r Record) string {
	m, ok := c[field]
	if !ok {
		return DefaultColor
	}
	return m.RecordColor(r)
}

// ListCategories returns allLabel followed by the distinct non-empty values
// of field in first-seen order. An empty allLabel defaults to AllCategory.
func ListCategories(records []Record, field, allLabel string) []string {
	if allLabel == "" {
		allLabel = AllCategory
	}
	out := []string{allLabel}
	if field == "" {
		return out
	}
	seen := make(map[string]struct{})
	for _, r := range records {
		v := r.Text(field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
