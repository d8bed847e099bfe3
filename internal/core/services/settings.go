package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataBaseURL      = "data.base_url"
	keyDatasetURLFmt    = "datasets.%s.url"
	keyUIPageSize       = "ui.page_size"
	keyUIMaxButtons     = "ui.max_page_buttons"
	keyUICarouselSecs   = "ui.carousel_interval_seconds"
	keyServerAddr       = "server.addr"
	keySessionStore     = "session.store"
	keySessionTTLMins   = "session.ttl_minutes"
	keyLoaderRateLimit  = "loader.rate_limit"
	keyLoaderTimeoutSec = "loader.timeout_seconds"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Data: domain.DataSettings{
			BaseURL: s.getString(keyDataBaseURL, defaults.Data.BaseURL),
			URLs:    s.datasetURLs(),
		},
		UI: domain.UISettings{
			PageSize:         s.getInt(keyUIPageSize, defaults.UI.PageSize),
			MaxPageButtons:   s.getInt(keyUIMaxButtons, defaults.UI.MaxPageButtons),
			CarouselInterval: s.getSeconds(keyUICarouselSecs, defaults.UI.CarouselInterval),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
		Session: domain.SessionSettings{
			Backend: s.getBackend(defaults.Session.Backend),
			TTL:     s.getMinutes(keySessionTTLMins, defaults.Session.TTL),
		},
		Loader: domain.LoaderSettings{
			RateLimit: s.getFloat(keyLoaderRateLimit, defaults.Loader.RateLimit),
			Timeout:   s.getSeconds(keyLoaderTimeoutSec, defaults.Loader.Timeout),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Session.Backend.IsValid() {
		return fmt.Errorf("%w: session store %q", domain.ErrInvalidInput, settings.Session.Backend)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyDataBaseURL, settings.Data.BaseURL},
		{keyUIPageSize, settings.UI.PageSize},
		{keyUIMaxButtons, settings.UI.MaxPageButtons},
		{keyUICarouselSecs, int(settings.UI.CarouselInterval / time.Second)},
		{keyServerAddr, settings.Server.Addr},
		{keySessionStore, settings.Session.Backend.String()},
		{keySessionTTLMins, int(settings.Session.TTL / time.Minute)},
		{keyLoaderRateLimit, settings.Loader.RateLimit},
		{keyLoaderTimeoutSec, int(settings.Loader.Timeout / time.Second)},
	}
	for name, url := range settings.Data.URLs {
		values = append(values, struct {
			key   string
			value any
		}{fmt.Sprintf(keyDatasetURLFmt, name), url})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) datasetURLs() map[string]string {
	urls := make(map[string]string)
	for _, d := range domain.DefaultDatasets("") {
		if u := s.configStore.GetString(fmt.Sprintf(keyDatasetURLFmt, d.Name)); u != "" {
			urls[d.Name] = u
		}
	}
	return urls
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getMinutes(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Minute
}

func (s *SettingsService) getBackend(defaultVal domain.SessionBackend) domain.SessionBackend {
	val := s.configStore.GetString(keySessionStore)
	if val == "" {
		return defaultVal
	}
	backend := domain.SessionBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
