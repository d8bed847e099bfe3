package cli

import (
	"context"
	"fmt"
	"time"

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
		manual[i] = domain.Record{
			"No":       fmt.Sprint(i + 1),
			"Title":    fmt.Sprintf("매뉴얼 %d", i+1),
			"text":     "일반 안내입니다.",
			"Category": "A",
		}
	}
	manual[2]["text"] = "첫 문장입니다. 환불은 영업일 기준 3일 소요됩니다."
	return map[string][]domain.Record{
		"guide_data.json": {
			{"Sub Category": "결제", "Item": "카드", "Field": "카드 등록 방법", "Purpose": "결제 수단", "Path": "설정>결제>카드"},
			{"Sub Category": "계정", "Item": "로그인", "Field": "비밀번호 재설정", "Path": "계정>로그인"},
		},
		"manualData.json": manual,
		"voc_summary.json": {
			{"month": "2025년 6월", "category": "요금", "title": "요금 문의", "content": "청구 금액", "solution": "안내 강화"},
			{"month": "2025년 7월", "category": "결제", "title": "결제 오류", "content": "카드 오류", "solution": "PG 점검"},
		},
		"issues_data.json": {
			{"title": "요금제 개편", "content": "신규 요금제 안내", "date": "2025-07-10"},
			{"title": "앱 점검", "content": "정기 점검", "date": "2025-05-02"},
		},
	}
}

// setupTestServices installs services over fixture data and returns a
// function restoring the previous state.
func setupTestServices() func() {
	return setupServicesWith(&stubLoader{records: fixtures()})
}

func setupServicesWith(loader *stubLoader) func() {
	prev := Services{
		Settings: settingsService,
		Browse:   browseService,
		Detail:   detailService,
		VOC:      vocService,
		Issues:   issueService,
		Config:   configStore,
		Sessions: sessionStore,
	}
	prevNow := now

	config := memory.NewConfigStore()
	sessions := memory.NewSessionStore()
	browse := services.NewBrowseService(loader, domain.DefaultDatasets(""), 5)
	SetServices(&Services{
		Settings: services.NewSettingsService(config),
		Browse:   browse,
		Detail:   services.NewDetailService(browse, sessions),
		VOC:      services.NewVOCService(browse),
		Issues:   services.NewIssueService(browse),
		Config:   config,
		Sessions: sessions,
	})
	now = func() time.Time { return time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC) }

	return func() {
		SetServices(&prev)
		now = prevNow
		resetFlags()
	}
}

func resetFlags() {
	searchDataset = domain.DatasetGuide
	searchCategory = ""
	searchFields = nil
	searchPage = 1
	searchWhere = ""
	searchJSON = false
	categoriesDataset = domain.DatasetGuide
	categoriesJSON = false
	selectDataset = domain.DatasetGuide
	detailJSON = false
	vocMonth = ""
	vocJSON = false
	issuesJSON = false
	serveAddr = ""
	serveWatch = false
	mcpPort = 0
	mcpHost = "localhost"
}
