package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// VOCMonthField is the record field carrying a VOC entry's month label.
const VOCMonthField = "month"

var monthLabel = regexp.MustCompile(`^\s*(\d{4})\s*년\s*(\d{1,2})\s*월`)

// VOCMonth is one month of VOC entries with its derived presentation.
type VOCMonth struct {
	// Key sorts months, e.g. "2025-07".
	Key string

	// Name is the short tab label, e.g. "07월".
	Name string

	// Label is the group label as it appears in the data, e.g. "2025년 7월".
	Label string

	PodcastTitle string
	PodcastSrc   string
	VOCTitle     string

	// Items are the month's entries in document order.
	Items []Record
}

// NewVOCMonth derives a month's presentation from its label.
// Labels that are not of the form "YYYY년 M월" use the label as key and name.
func NewVOCMonth(label string) VOCMonth {
	m := VOCMonth{Label: label, Key: label, Name: label, VOCTitle: label + " 주요 VOC 내역"}

	parts := monthLabel.FindStringSubmatch(label)
	if parts == nil {
		return m
	}
	year := parts[1]
	month := parts[2]
	if len(month) == 1 {
		month = "0" + month
	}

	m.Key = year + "-" + month
	m.Name = month + "월"
	m.PodcastTitle = month + "월 VOC 분석 팟캐스트 🎧"
	m.PodcastSrc = "podcast/voc" + year + month + ".m4a"
	return m
}

// GroupVOCMonths groups flattened VOC records by month label, newest first.
func GroupVOCMonths(records []Record) []VOCMonth {
	index := make(map[string]int)
	var months []VOCMonth
	for _, r := range records {
		label := r.Text(VOCMonthField)
		i, ok := index[label]
		if !ok {
			i = len(months)
			index[label] = i
			months = append(months, NewVOCMonth(label))
		}
		months[i].Items = append(months[i].Items, r)
	}
	sort.SliceStable(months, func(i, j int) bool {
		return months[i].Key > months[j].Key
	})
	return months
}

// FlattenGroups extracts the leaf records of a grouped document.
// Every leaf receives the group's label under g.LabelField.
func FlattenGroups(doc map[string]any, g Grouping) ([]Record, error) {
	raw, ok := doc[g.Key]
	if !ok {
		return nil, fmt.Errorf("missing %q: %w", g.Key, ErrInvalidInput)
	}
	groups, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is not an array: %w", g.Key, ErrInvalidInput)
	}

	var out []Record
	for _, gv := range groups {
		group, ok := gv.(map[string]any)
		if !ok {
			continue
		}
		label := valueText(group[g.LabelField])
		items, _ := group[g.ItemsField].([]any)
		for _, iv := range items {
			item, ok := iv.(map[string]any)
			if !ok {
				continue
			}
			r := Record(item).Trimmed()
			r[g.LabelField] = strings.TrimSpace(label)
			out = append(out, r)
		}
	}
	return out, nil
}
