package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guideSchema() Schema {
	return Schema{
		CategoryField: "Sub Category",
		Combined:      map[string][]string{"Item": {"Item", "Sub item"}},
	}
}

func guideRecords() []Record {
	return []Record{
		{"Sub Category": "계약", "Item": "신규", "Sub item": "개통 절차", "Field": "가입 신청서"},
		{"Sub Category": "요금", "Item": "할인", "Sub item": "결합", "Field": "요금 할인 조건"},
		{"Sub Category": "계약", "Item": "해지", "Sub item": "위약금", "Field": "해지 절차 안내"},
		{"Item": "기타", "Field": "분류 없음"},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Apple", "apple"},
		{" a p p l e ", "apple"},
		{"Tab\tand\nnewline", "tabandnewline"},
		{"개통 절차", "개통절차"},
		{"　wide space", "widespace"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in))
		})
	}
}

func TestFilter_ScenarioA(t *testing.T) {
	records := []Record{
		{"Category": "A", "Title": "Apple pie"},
		{"Category": "B", "Title": "Banana split"},
	}
	schema := Schema{CategoryField: "Category"}

	got := Filter(records, schema, NewFilterState(schema).WithQuery("apple"))

	require.Len(t, got, 1)
	assert.Equal(t, "Apple pie", got[0].Text("Title"))
}

func TestFilter_ScenarioB_SpacedQuery(t *testing.T) {
	records := []Record{{"Title": "Apple"}}
	schema := Schema{}

	got := Filter(records, schema, NewFilterState(schema, "Title").WithQuery(" a p p l e "))

	assert.Len(t, got, 1)
}

func TestFilter_ScenarioD_EmptyCategory(t *testing.T) {
	schema := guideSchema()

	got := Filter(guideRecords(), schema, NewFilterState(schema).WithCategory("없는 분류"))

	assert.Empty(t, got)
}

func TestFilter_EmptyQueryReturnsCategorySubset(t *testing.T) {
	schema := guideSchema()
	records := guideRecords()

	for _, q := range []string{"", "   ", "\t\n"} {
		got := FilterIndices(records, schema, NewFilterState(schema).WithCategory("계약").WithQuery(q))
		assert.Equal(t, []int{0, 2}, got, "query %q", q)
	}

	all := FilterIndices(records, schema, NewFilterState(schema))
	assert.Equal(t, []int{0, 1, 2, 3}, all)
}

func TestFilter_CategoryIsExactAndCaseSensitive(t *testing.T) {
	schema := Schema{CategoryField: "c"}
	records := []Record{{"c": "Plan"}, {"c": "plan"}, {"c": "Plan "}}

	got := FilterIndices(records, schema, NewFilterState(schema).WithCategory("Plan"))

	assert.Equal(t, []int{0}, got)
}

func TestFilter_CustomAllLabel(t *testing.T) {
	schema := Schema{CategoryField: "Category", AllLabel: "전체"}
	records := []Record{{"Category": "A"}, {"Category": "B"}}

	assert.Len(t, Filter(records, schema, NewFilterState(schema)), 2)
	assert.Equal(t, "전체", NewFilterState(schema).Category)
	assert.Empty(t, Filter(records, schema, FilterState{Category: "All"}))
}

func TestFilter_AnyEnabledField(t *testing.T) {
	schema := guideSchema()
	records := guideRecords()

	t.Run("matches second field", func(t *testing.T) {
		got := FilterIndices(records, schema, NewFilterState(schema, "Sub Category", "Field").WithQuery("할인조건"))
		assert.Equal(t, []int{1}, got)
	})

	t.Run("field not enabled does not match", func(t *testing.T) {
		got := FilterIndices(records, schema, NewFilterState(schema, "Sub Category").WithQuery("할인조건"))
		assert.Empty(t, got)
	})
}

func TestFilter_CombinedItemField(t *testing.T) {
	schema := guideSchema()
	records := guideRecords()

	t.Run("matches sub item through item", func(t *testing.T) {
		got := FilterIndices(records, schema, NewFilterState(schema, "Item").WithQuery("위약금"))
		assert.Equal(t, []int{2}, got)
	})

	t.Run("spans the joining space", func(t *testing.T) {
		got := FilterIndices(records, schema, NewFilterState(schema, "Item").WithQuery("신규개통"))
		assert.Equal(t, []int{0}, got)
	})

	t.Run("missing sub item", func(t *testing.T) {
		got := FilterIndices(records, schema, NewFilterState(schema, "Item").WithQuery("기타"))
		assert.Equal(t, []int{3}, got)
	})
}

func TestFilter_FullRecordMode(t *testing.T) {
	schema := guideSchema()
	records := guideRecords()

	got := FilterIndices(records, schema, NewFilterState(schema).WithQuery("분류 없음"))
	assert.Equal(t, []int{3}, got)

	got = FilterIndices(records, schema, NewFilterState(schema).WithQuery("절차"))
	assert.Equal(t, []int{0, 2}, got)
}

func TestFilter_SubsetProperty(t *testing.T) {
	schema := guideSchema()
	records := guideRecords()
	fields := []string{"Item", "Field"}

	for _, q := range []string{"절차", "할 인", "x", "계약", "기"} {
		base := FilterIndices(records, schema, NewFilterState(schema, fields...))
		got := FilterIndices(records, schema, NewFilterState(schema, fields...).WithQuery(q))

		assert.Subset(t, base, got, "query %q", q)
		for _, i := range got {
			hit := false
			for _, f := range fields {
				if strings.Contains(Normalize(schema.FieldText(records[i], f)), Normalize(q)) {
					hit = true
				}
			}
			assert.True(t, hit, "record %d must contain %q", i, q)
		}
	}
}

func TestFilter_NonStringValues(t *testing.T) {
	schema := Schema{}
	records := []Record{{"No": float64(105), "Title": "x"}, {"No": nil, "Title": "y"}}

	got := FilterIndices(records, schema, NewFilterState(schema).WithQuery("105"))

	assert.Equal(t, []int{0}, got)
}

func TestFilterState_With(t *testing.T) {
	base := FilterState{Category: "All", Fields: []string{"a"}}

	changed := base.WithCategory("B").WithQuery("q").WithFields("x", "y").WithWhere("true")

	assert.Equal(t, "All", base.Category)
	assert.Equal(t, []string{"a"}, base.Fields)
	assert.Equal(t, "B", changed.Category)
	assert.Equal(t, "q", changed.Query)
	assert.Equal(t, []string{"x", "y"}, changed.Fields)
	assert.Equal(t, "true", changed.Where)
	assert.False(t, base.Equal(changed))
	assert.True(t, changed.Equal(changed.WithQuery("q")))
}

func TestFilterState_HasQuery(t *testing.T) {
	assert.False(t, FilterState{Query: " \t"}.HasQuery())
	assert.True(t, FilterState{Query: " a "}.HasQuery())
}

func TestFilterIndicesWhere(t *testing.T) {
	records := []Record{
		{"c": "A", "n": "1", "t": "apple"},
		{"c": "A", "n": "2", "t": "apricot"},
		{"c": "B", "n": "3", "t": "apple"},
	}
	schema := Schema{CategoryField: "c"}
	even := func(r Record) (bool, error) { return r.Text("n") == "2", nil }

	t.Run("predicate after category", func(t *testing.T) {
		got, err := FilterIndicesWhere(records, schema, FilterState{Category: "A"}, even)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, got)
	})

	t.Run("predicate before query", func(t *testing.T) {
		got, err := FilterIndicesWhere(records, schema, FilterState{Category: "All", Query: "apple"}, even)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("nil predicate matches FilterIndices", func(t *testing.T) {
		state := FilterState{Category: "All", Query: "ap"}
		got, err := FilterIndicesWhere(records, schema, state, nil)
		require.NoError(t, err)
		assert.Equal(t, FilterIndices(records, schema, state), got)
	})

	t.Run("predicate error stops filtering", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := FilterIndicesWhere(records, schema, FilterState{}, func(Record) (bool, error) { return false, boom })
		assert.ErrorIs(t, err, boom)
	})
}
