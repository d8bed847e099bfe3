package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionBackend(t *testing.T) {
	tests := []struct {
		backend     SessionBackend
		valid       bool
		description string
	}{
		{SessionBackendMemory, true, "In-memory (lost on exit)"},
		{SessionBackendSQLite, true, "SQLite (persisted)"},
		{SessionBackend("redis"), false, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.backend.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.backend.IsValid())
			assert.Equal(t, tt.description, tt.backend.Description())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "data", s.Data.BaseURL)
	assert.Equal(t, 10, s.UI.PageSize)
	assert.Equal(t, 5, s.UI.MaxPageButtons)
	assert.Equal(t, 5*time.Second, s.UI.CarouselInterval)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, SessionBackendSQLite, s.Session.Backend)
}

func TestAppSettings_Datasets(t *testing.T) {
	s := DefaultAppSettings()
	s.Data.BaseURL = "https://cdn.example.com/data"
	s.Data.URLs = map[string]string{DatasetVOC: "file:///srv/voc.yaml"}
	s.UI.PageSize = 20

	datasets := s.Datasets()
	require.Len(t, datasets, 4)

	byName := map[string]Dataset{}
	for _, d := range datasets {
		byName[d.Name] = d
	}
	assert.Equal(t, "https://cdn.example.com/data/guide_data.json", byName[DatasetGuide].Source.URL)
	assert.Equal(t, "file:///srv/voc.yaml", byName[DatasetVOC].Source.URL)
	assert.Equal(t, 20, byName[DatasetManual].PageSize)
	assert.Equal(t, 0, byName[DatasetGuide].PageSize)
}
