package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DetailKey is the session key under which the selected record is stored.
const DetailKey = "hioderDetailData"

// Handoff property names added next to the record's own fields.
const (
	subCategoryColorKey = "subCategoryColor"
	itemColorKey        = "itemColor"
)

// Detail is a selected record handed from a list view to the detail view,
// together with the colours it was displayed with.
type Detail struct {
	Record           Record
	SubCategoryColor string
	ItemColor        string
}

// NewDetail captures r with its colours from maps.
func NewDetail(r Record, maps ColorMaps) Detail {
	return Detail{
		Record:           r.Clone(),
		SubCategoryColor: maps.Color("Sub Category", r),
		ItemColor:        maps.Color("Item", r),
	}
}

// MarshalJSON encodes the record's fields alongside the two colour properties.
func (d Detail) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Record)+2)
	for k, v := range d.Record {
		out[k] = v
	}
	out[subCategoryColorKey] = d.SubCategoryColor
	out[itemColorKey] = d.ItemColor
	return json.Marshal(out)
}

// ParseDetail decodes a stored handoff blob.
// Anything other than a JSON object fails with ErrCorruptDetail.
func ParseDetail(blob []byte) (*Detail, error) {
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDetail, err)
	}
	if raw == nil {
		return nil, ErrCorruptDetail
	}

	d := &Detail{
		SubCategoryColor: valueText(raw[subCategoryColorKey]),
		ItemColor:        valueText(raw[itemColorKey]),
	}
	delete(raw, subCategoryColorKey)
	delete(raw, itemColorKey)
	d.Record = Record(raw)
	return d, nil
}

// SubCategoryColorOrDefault returns the stored colour or the detail fallback.
func (d Detail) SubCategoryColorOrDefault() string {
	if d.SubCategoryColor == "" {
		return DetailFallbackColor
	}
	return d.SubCategoryColor
}

// ItemColorOrDefault returns the stored colour or the detail fallback.
func (d Detail) ItemColorOrDefault() string {
	if d.ItemColor == "" {
		return DetailFallbackColor
	}
	return d.ItemColor
}

// Path returns the record's path with each ">" separator spaced.
func (d Detail) Path() string {
	return DisplayPath(d.Record.Text("Path"))
}

// DisplayPath spaces every ">" separator in a guide path.
func DisplayPath(path string) string {
	return strings.ReplaceAll(path, ">", " > ")
}
