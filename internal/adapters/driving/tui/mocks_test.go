package tui

import (
	"context"
	"fmt"
	"testing"

	"github.com/custodia-labs/hioder/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/services"
)

// stubLoader implements driven.DatasetLoader from fixed records.
type stubLoader struct {
	records map[string][]domain.Record
}

func (l *stubLoader) Load(_ context.Context, src domain.Source) ([]domain.Record, error) {
	out := make([]domain.Record, len(l.records[src.URL]))
	for i, r := range l.records[src.URL] {
		out[i] = r.Clone()
	}
	return out, nil
}

func fixtures() map[string][]domain.Record {
	manual := make([]domain.Record, 12)
	for i := range manual {
		manual[i] = domain.Record{
			"No":       fmt.Sprint(i + 1),
			"Title":    fmt.Sprintf("매뉴얼 %d", i+1),
			"text":     "본문입니다.",
			"Category": "A",
		}
	}
	return map[string][]domain.Record{
		"guide_data.json": {
			{"Sub Category": "결제", "Item": "카드", "Field": "카드 등록 방법", "Path": "설정>결제>카드"},
			{"Sub Category": "계정", "Item": "로그인", "Field": "비밀번호 재설정", "Path": "계정>로그인"},
		},
		"manualData.json": manual,
		"voc_summary.json": {
			{"month": "2025년 7월", "category": "결제", "title": "결제 오류", "content": "카드 오류", "solution": "PG 점검"},
		},
		"issues_data.json": {
			{"title": "요금제 개편", "content": "안내", "date": "2025-06-10"},
		},
	}
}

func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	browse := services.NewBrowseService(&stubLoader{records: fixtures()}, domain.DefaultDatasets(""), 5)
	return &Ports{
		Browse:    browse,
		Detail:    services.NewDetailService(browse, memory.NewSessionStore()),
		VOC:       services.NewVOCService(browse),
		Issues:    services.NewIssueService(browse),
		SessionID: "tui-test",
	}
}
