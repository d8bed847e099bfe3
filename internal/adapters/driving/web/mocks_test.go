package web

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hioder/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/services"
)

// stubLoader implements driven.DatasetLoader from fixed records.
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

func fixtures() map[string][]domain.Record {
	manual := make([]domain.Record, 25)
	for i := range manual {
		category := "A"
		if i%2 == 1 {
			category = "B"
		}
		manual[i] = domain.Record{
			"No":           fmt.Sprint(i + 1),
			"Title":        fmt.Sprintf("매뉴얼 %d", i+1),
			"text":         fmt.Sprintf("본문 %d 입니다. 설정 방법을 안내합니다.", i+1),
			"MainCategory": category,
			"link":         fmt.Sprintf("https://example.com/manual/%d", i+1),
		}
	}

	return map[string][]domain.Record{
		"data/guide_data.json": {
			{"Sub Category": "결제", "Item": "카드", "Sub item": "등록", "Field": "카드 등록 방법", "Purpose": "결제", "Path": "설정>결제>카드"},
			{"Sub Category": "결제", "Item": "포인트", "Field": "포인트 적립", "Purpose": "혜택", "Path": "설정>포인트"},
			{"Sub Category": "계정", "Item": "로그인", "Field": "비밀번호 재설정", "Purpose": "보안", "Path": "계정>로그인"},
		},
		"data/manualData.json": manual,
		"data/voc_summary.json": {
			{"month": "2025년 6월", "category": "배송", "title": "배송 지연", "content": "지연 문의", "solution": "안내 강화"},
			{"month": "2025년 7월", "category": "결제", "title": "결제 오류", "content": "카드 오류", "solution": "PG 점검"},
		},
		"data/issues_data.json": {
			{"title": "신규 요금제", "content": "7월 출시", "date": "2025-07-03", "image": "img/plan.png"},
			{"title": "이벤트 종료", "content": "6월 이벤트", "date": "2025-06-10"},
		},
	}
}

// newTestServer wires the real services over a stub loader.
func newTestServer(t *testing.T, loader *stubLoader) *Server {
	t.Helper()
	browse := services.NewBrowseService(loader, domain.DefaultDatasets("data"), 5)
	ports := &Ports{
		Browse: browse,
		Detail: services.NewDetailService(browse, memory.NewSessionStore()),
		VOC:    services.NewVOCService(browse),
		Issues: services.NewIssueService(browse),
	}
	s, err := NewServer(ports, Config{})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC) }
	return s
}
