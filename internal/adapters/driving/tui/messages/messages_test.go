package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewBrowse, "browse"},
		{ViewDetail, "detail"},
		{ViewVOC, "voc"},
		{ViewIssues, "issues"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	views := []ViewType{ViewMenu, ViewBrowse, ViewDetail, ViewVOC, ViewIssues, ViewHelp}
	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view %s", v)
		seen[v] = true
	}
}

func TestBrowseCompleted(t *testing.T) {
	t.Run("with result", func(t *testing.T) {
		res := &domain.BrowseResult{Total: 3}
		msg := BrowseCompleted{Result: res}

		require.NotNil(t, msg.Result)
		assert.Equal(t, 3, msg.Result.Total)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := BrowseCompleted{Err: domain.ErrUnknownDataset}

		assert.Nil(t, msg.Result)
		assert.ErrorIs(t, msg.Err, domain.ErrUnknownDataset)
	})
}

func TestRecordSelected(t *testing.T) {
	msg := RecordSelected{Dataset: "guide", Index: 4}

	assert.Equal(t, "guide", msg.Dataset)
	assert.Equal(t, 4, msg.Index)
}

func TestDetailLoaded(t *testing.T) {
	d := &domain.Detail{Record: domain.Record{"Item": "요금"}, ItemColor: "#fff"}
	msg := DetailLoaded{Detail: d}

	assert.Equal(t, "요금", msg.Detail.Record.Text("Item"))
	assert.Equal(t, "#fff", msg.Detail.ItemColor)
}

func TestVOCLoaded(t *testing.T) {
	msg := VOCLoaded{Months: []domain.VOCMonth{domain.NewVOCMonth("2025년 7월")}}

	require.Len(t, msg.Months, 1)
	assert.Equal(t, "2025-07", msg.Months[0].Key)
}

func TestIssuesLoaded(t *testing.T) {
	msg := IssuesLoaded{Err: errors.New("boom")}

	assert.Nil(t, msg.Feed)
	assert.EqualError(t, msg.Err, "boom")
}

func TestCarouselMoved(t *testing.T) {
	assert.Equal(t, 2, CarouselMoved{Index: 2}.Index)
}
