package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// mockLoader implements driven.DatasetLoader for testing.
type mockLoader struct {
	mu      sync.Mutex
	records map[string][]domain.Record
	errs    map[string]error
	calls   map[string]int
}

func newMockLoader() *mockLoader {
	return &mockLoader{
		records: make(map[string][]domain.Record),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (m *mockLoader) set(url string, records ...domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[url] = records
	delete(m.errs, url)
}

func (m *mockLoader) fail(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[url] = err
}

func (m *mockLoader) callCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}

func (m *mockLoader) Load(_ context.Context, src domain.Source) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[src.URL]++
	if err := m.errs[src.URL]; err != nil {
		return nil, &domain.LoadError{URL: src.URL, Err: err}
	}
	out := make([]domain.Record, len(m.records[src.URL]))
	for i, r := range m.records[src.URL] {
		out[i] = r.Clone()
	}
	return out, nil
}

// mockCompiler implements driven.PredicateCompiler for testing.
// It understands expressions of the form `field == value`.
type mockCompiler struct {
	err error
}

func (m *mockCompiler) Compile(expr string) (domain.Predicate, error) {
	if m.err != nil {
		return nil, m.err
	}
	field, value, ok := strings.Cut(expr, "==")
	if !ok {
		return nil, domain.ErrInvalidExpression
	}
	field, value = strings.TrimSpace(field), strings.TrimSpace(value)
	return func(r domain.Record) (bool, error) {
		return r.Text(field) == value, nil
	}, nil
}
