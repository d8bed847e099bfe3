package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

func get(t *testing.T, s *Server, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("missing browse service", func(t *testing.T) {
		s, err := NewServer(&Ports{}, Config{})
		assert.Nil(t, s)
		assert.ErrorIs(t, err, ErrMissingBrowseService)
	})

	t.Run("defaults", func(t *testing.T) {
		s := newTestServer(t, &stubLoader{records: fixtures()})
		assert.Equal(t, ":8080", s.cfg.Addr)
		assert.Equal(t, int64(5000), s.cfg.CarouselInterval.Milliseconds())
	})
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGuidePage_CardMode(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/guide")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "results-grid")
	assert.Contains(t, body, "항목 설명")
	assert.Contains(t, body, "color: #6a89cc;")
	assert.Contains(t, body, ">All</a>")
	assert.Contains(t, body, "비밀번호 재설정")
}

func TestGuidePage_ListModeHighlights(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/guide?q="+url.QueryEscape("카드"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "results-list")
	assert.Contains(t, body, `<span class="highlight">카드</span>`)
	assert.NotContains(t, body, "항목 설명")
	assert.NotContains(t, body, "비밀번호 재설정")
}

func TestGuidePage_CategoryTab(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/guide?category="+url.QueryEscape("계정"))

	body := rec.Body.String()
	assert.Contains(t, body, "비밀번호 재설정")
	assert.NotContains(t, body, "포인트 적립")
}

func TestGuidePage_QueryKeepsCategory(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/guide?category="+url.QueryEscape("계정"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<input type="hidden" name="category" value="계정">`)

	// 설정 appears in records of both categories.
	rec = get(t, s, "/guide?category="+url.QueryEscape("계정")+"&q="+url.QueryEscape("설정"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "로그인")
	assert.NotContains(t, body, "카드")
	assert.NotContains(t, body, "포인트")
}

func TestGuidePage_FormSendsFieldMarker(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/guide")

	assert.Contains(t, rec.Body.String(), `<input type="hidden" name="fields" value="1">`)
}

func TestParseFilter_Fields(t *testing.T) {
	ds := domain.DefaultDatasets("data")[0]
	require.Equal(t, domain.DatasetGuide, ds.Name)

	tests := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{"no form state uses defaults", url.Values{}, ds.DefaultFields},
		{"checked fields", url.Values{"fields": {"1"}, "field": {"Item", "Path"}}, []string{"Item", "Path"}},
		{"every field unchecked", url.Values{"fields": {"1"}}, nil},
		{"field without marker", url.Values{"field": {"Item"}}, []string{"Item"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := parseFilter(tt.query, ds)
			if tt.want == nil {
				assert.Empty(t, f.Fields)
				return
			}
			assert.Equal(t, tt.want, f.Fields)
		})
	}
}

func TestGuidePage_NoResults(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/guide?q=zzz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.MsgNoResults)
}

func TestGuidePage_LoadError(t *testing.T) {
	s := newTestServer(t, &stubLoader{err: errors.New("boom")})

	rec := get(t, s, "/guide")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "가이드 데이터를 불러오는 데 실패했습니다. 파일을 확인해주세요.")
}

func TestGuidePage_WhereWithoutCompiler(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/guide?where="+url.QueryEscape(`r["Item"] == "카드"`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestManualPage_Pagination(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/manual?page=3")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "manualBoard")
	assert.Contains(t, body, "매뉴얼 1<")
	assert.NotContains(t, body, "매뉴얼 25<")
	assert.Contains(t, body, "<button disabled>다음</button>")
	assert.Contains(t, body, `class="active">3</a>`)
	assert.Contains(t, body, ">전체</a>")
}

func TestManualPage_QueryShowsSnippet(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/manual?q="+url.QueryEscape("설정 방법"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "result-snippet")
	assert.Contains(t, body, `<span class="highlight">설정 방법</span>`)
	assert.NotContains(t, body, "categoryTabs")
}

func TestSelectAndDetail(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	form := url.Values{"dataset": {"guide"}, "index": {"0"}}
	req := httptest.NewRequest(http.MethodPost, "/select", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/detail", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookie, cookies[0].Name)

	rec = get(t, s, "/detail", cookies[0])

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "카드 등록 방법")
	assert.Contains(t, body, "설정 &gt; 결제 &gt; 카드")
	assert.Contains(t, body, "color: #6a89cc;")
	assert.Contains(t, body, "사용 목적")
}

func TestSelect_InvalidIndex(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	for _, index := range []string{"x", "99"} {
		form := url.Values{"dataset": {"guide"}, "index": {index}}
		req := httptest.NewRequest(http.MethodPost, "/select", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.NotEqual(t, http.StatusSeeOther, rec.Code, index)
	}
}

func TestDetail_NothingSelected(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/detail")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.MsgNoDetail)
}

func TestVOCPage(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/voc")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "07월 VOC 분석 팟캐스트")
	assert.Contains(t, body, "podcast/voc202507.m4a")
	assert.Contains(t, body, "결제 오류")
	assert.NotContains(t, body, "배송 지연")

	rec = get(t, s, "/voc?month=2025-06")
	body = rec.Body.String()
	assert.Contains(t, body, "2025년 6월 주요 VOC 내역")
	assert.Contains(t, body, "배송 지연")
}

func TestIssuesPage(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "이달의 이슈")
	assert.Contains(t, body, `data-interval="5000"`)
	assert.Contains(t, body, "신규 요금제")
	assert.Contains(t, body, "이벤트 종료")
}

func TestIssuesPage_Empty(t *testing.T) {
	fx := fixtures()
	delete(fx, "data/issues_data.json")
	s := newTestServer(t, &stubLoader{records: fx})

	rec := get(t, s, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.MsgNoIssues)
}

func TestAPI_Browse(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/api/datasets/manual?page=2&category=A")

	require.Equal(t, http.StatusOK, rec.Code)
	var out browseJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "manual", out.Dataset)
	assert.Equal(t, "A", out.Category)
	assert.Equal(t, 13, out.Total)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 2, out.TotalPages)
	assert.Len(t, out.Rows, 3)
}

func TestAPI_UnknownDataset(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/api/datasets/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestAPI_DatasetsAndCategories(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})

	rec := get(t, s, "/api/datasets")
	var datasets []datasetJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &datasets))
	assert.Len(t, datasets, 4)

	rec = get(t, s, "/api/datasets/guide/categories")
	var cats []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Equal(t, []string{"All", "결제", "계정"}, cats)
}

func TestSessions_ReusesValidCookie(t *testing.T) {
	s := newTestServer(t, &stubLoader{records: fixtures()})
	cookie := &http.Cookie{Name: SessionCookie, Value: "5f0c6c1e-8d5e-4f4e-9a43-1a2b3c4d5e6f"}

	rec := get(t, s, "/healthz", cookie)
	assert.Empty(t, rec.Result().Cookies())

	rec = get(t, s, "/healthz", &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	assert.NotEmpty(t, rec.Result().Cookies())
}
