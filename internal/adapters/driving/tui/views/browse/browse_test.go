package browse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/services"
)

type stubLoader struct {
	records map[string][]domain.Record
	err     error
}

func (l *stubLoader) Load(_ context.Context, src domain.Source) ([]domain.Record, error) {
	if l.err != nil {
		return nil, &domain.LoadError{URL: src.URL, Err: l.err}
	}
	out := make([]domain.Record, len(l.records[src.URL]))
	for i, r := range l.records[src.URL] {
		out[i] = r.Clone()
	}
	return out, nil
}

func testLoader() *stubLoader {
	manual := make([]domain.Record, 25)
	for i := range manual {
		manual[i] = domain.Record{
			"No":       fmt.Sprint(i + 1),
			"Title":    fmt.Sprintf("매뉴얼 %d", i+1),
			"text":     fmt.Sprintf("본문 %d 입니다. 설정 방법을 안내합니다.", i+1),
			"Category": "A",
		}
	}
	return &stubLoader{records: map[string][]domain.Record{
		"guide_data.json": {
			{"Sub Category": "결제", "Item": "카드", "Field": "카드 등록 방법", "Path": "설정>결제>카드"},
			{"Sub Category": "결제", "Item": "포인트", "Field": "포인트 적립", "Path": "설정>포인트"},
			{"Sub Category": "계정", "Item": "로그인", "Field": "비밀번호 재설정", "Path": "계정>로그인"},
		},
		"manualData.json": manual,
	}}
}

func newTestView(t *testing.T, loader *stubLoader) *View {
	t.Helper()
	svc := services.NewBrowseService(loader, domain.DefaultDatasets(""), 5)
	v := NewView(styles.DefaultStyles(), nil, svc)
	v.SetDimensions(100, 40)
	return v
}

// run executes cmd and feeds its message back into the view.
func run(t *testing.T, v *View, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	v.Update(msg)
	return msg
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Open_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := v.Open(domain.DatasetGuide)()

	assert.Equal(t, messages.ErrorOccurred{Err: ErrNoBrowseService}, msg)
}

func TestView_Open_UnknownDataset(t *testing.T) {
	v := newTestView(t, testLoader())

	msg := v.Open("nope")()

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, domain.ErrUnknownDataset)
}

func TestView_Open_Guide(t *testing.T) {
	v := newTestView(t, testLoader())

	msg := run(t, v, v.Open(domain.DatasetGuide))

	completed, ok := msg.(messages.BrowseCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, domain.AllCategory, v.Filter().Category)
	assert.Equal(t, 3, v.list.Count())
	assert.True(t, v.TabsVisible())

	out := v.View()
	assert.Contains(t, out, "가이드")
	assert.Contains(t, out, "결제")
	assert.Contains(t, out, "계정")
	assert.Contains(t, out, "카드")
}

func TestView_CategoryTabs(t *testing.T) {
	v := newTestView(t, testLoader())
	run(t, v, v.Open(domain.DatasetGuide))

	_, cmd := v.Update(key("tab"))
	run(t, v, cmd)
	assert.Equal(t, "결제", v.Filter().Category)
	assert.Equal(t, 2, v.list.Count())

	_, cmd = v.Update(key("shift+tab"))
	run(t, v, cmd)
	assert.Equal(t, domain.AllCategory, v.Filter().Category)

	_, cmd = v.Update(key("shift+tab"))
	run(t, v, cmd)
	assert.Equal(t, "계정", v.Filter().Category, "wraps to the last tab")
}

func TestView_QueryInput(t *testing.T) {
	v := newTestView(t, testLoader())
	run(t, v, v.Open(domain.DatasetGuide))

	v.Update(key("/"))
	require.True(t, v.InputFocused())

	v.Update(key("포인트"))
	_, cmd := v.Update(key("enter"))
	assert.False(t, v.InputFocused())
	run(t, v, cmd)

	assert.Equal(t, "포인트", v.Filter().Query)
	require.Equal(t, 1, v.list.Count())
	assert.True(t, v.Result().ListMode())

	items := v.list.Items()
	assert.Equal(t, 1, items[0].Index)
	assert.True(t, domain.HasMatch(items[0].Title))
}

func TestView_QueryInput_EscRestoresQuery(t *testing.T) {
	v := newTestView(t, testLoader())
	run(t, v, v.Open(domain.DatasetGuide))

	v.Update(key("/"))
	v.Update(key("abc"))
	_, cmd := v.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.False(t, v.InputFocused())
	assert.Equal(t, "", v.input.Value())
	assert.Equal(t, "", v.Filter().Query)
}

func TestView_Pagination(t *testing.T) {
	v := newTestView(t, testLoader())
	run(t, v, v.Open(domain.DatasetManual))

	require.Equal(t, 3, v.Result().TotalPages)
	assert.Equal(t, 10, v.list.Count())
	assert.Contains(t, v.View(), "[1]")

	_, cmd := v.Update(key("]"))
	run(t, v, cmd)
	assert.Equal(t, 2, v.Page().Page)

	_, cmd = v.Update(key("]"))
	run(t, v, cmd)
	assert.Equal(t, 3, v.Page().Page)
	assert.Equal(t, 5, v.list.Count())

	_, cmd = v.Update(key("]"))
	assert.Nil(t, cmd, "no page after the last")

	_, cmd = v.Update(key("["))
	run(t, v, cmd)
	assert.Equal(t, 2, v.Page().Page)
}

func TestView_QueryResetsPage(t *testing.T) {
	v := newTestView(t, testLoader())
	run(t, v, v.Open(domain.DatasetManual))
	_, cmd := v.Update(key("]"))
	run(t, v, cmd)

	v.Update(key("/"))
	v.Update(key("매뉴얼"))
	_, cmd = v.Update(key("enter"))
	run(t, v, cmd)

	assert.Equal(t, 1, v.Page().Page)
	assert.False(t, v.TabsVisible(), "manual hides tabs while querying")
}

func TestView_Select(t *testing.T) {
	v := newTestView(t, testLoader())
	run(t, v, v.Open(domain.DatasetManual))

	v.Update(key("down"))
	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	sel, ok := cmd().(messages.RecordSelected)
	require.True(t, ok)
	assert.Equal(t, domain.DatasetManual, sel.Dataset)
	assert.Equal(t, 1, sel.Index)
}

func TestView_SelectEmpty(t *testing.T) {
	v := newTestView(t, testLoader())

	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
}

func TestView_Back(t *testing.T) {
	v := newTestView(t, testLoader())

	_, cmd := v.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_LoadError(t *testing.T) {
	v := newTestView(t, &stubLoader{err: errors.New("404")})

	msg := run(t, v, v.Open(domain.DatasetManual))

	completed := msg.(messages.BrowseCompleted)
	assert.ErrorIs(t, completed.Err, domain.ErrLoad)
	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "매뉴얼 데이터를 불러오는 데 실패했습니다.")
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(t, testLoader())

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, v.Err(), "boom")
	assert.Contains(t, v.View(), "boom")
}

func TestItems(t *testing.T) {
	ds := domain.DefaultDatasets("")[0]
	rec := domain.Record{"Sub Category": "결제", "Item": "카드", "Field": "카드 등록 방법\n둘째 줄", "Path": "설정>결제"}
	colors := ds.BuildColors([]domain.Record{rec})

	t.Run("card mode", func(t *testing.T) {
		res := &domain.BrowseResult{
			Dataset: ds,
			Filter:  ds.InitialFilter(),
			Rows:    []domain.Row{{Index: 7, Record: rec}},
			Colors:  colors,
		}

		items := Items(res)

		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].Index)
		assert.Equal(t, "카드", items[0].Title[0].Text)
		assert.Equal(t, "카드 등록 방법", items[0].Subtitle)
		assert.Equal(t, domain.SubCategoryPalette[0], items[0].Color)
	})

	t.Run("list mode shows the path", func(t *testing.T) {
		res := &domain.BrowseResult{
			Dataset: ds,
			Filter:  ds.InitialFilter().WithQuery("결제"),
			Rows:    []domain.Row{{Index: 0, Record: rec}},
			Colors:  colors,
		}

		items := Items(res)

		require.Len(t, items, 1)
		assert.Equal(t, "설정 > 결제", joinSpans(items[0].Title))
	})

	t.Run("nil result", func(t *testing.T) {
		assert.Nil(t, Items(nil))
	})
}

func TestItems_Snippet(t *testing.T) {
	ds := domain.DefaultDatasets("")[1]
	rec := domain.Record{"Title": "요금 안내", "text": "첫 문장입니다. 연체 수수료가 부과됩니다. 끝."}
	res := &domain.BrowseResult{
		Dataset: ds,
		Filter:  ds.InitialFilter().WithQuery("연체"),
		Rows:    []domain.Row{{Record: rec}},
	}

	items := Items(res)

	require.Len(t, items, 1)
	assert.Contains(t, items[0].Subtitle, "연체")
	assert.Equal(t, "...", items[0].Subtitle[:3])
	assert.Empty(t, items[0].Color, "manual is not colour-coded")
}

func TestErrorText(t *testing.T) {
	ds := domain.DefaultDatasets("")[0]

	assert.Equal(t, ds.LoadErrorMessage, ErrorText(&domain.LoadError{URL: "x", Err: errors.New("404")}, ds))
	assert.Equal(t, "boom", ErrorText(errors.New("boom"), ds))
}

func joinSpans(spans []domain.Span) string {
	var s string
	for _, sp := range spans {
		s += sp.Text
	}
	return s
}
