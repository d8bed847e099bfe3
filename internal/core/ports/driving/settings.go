package driving

import "github.com/custodia-labs/hioder/internal/core/domain"

// SettingsService reads and writes AppSettings through the config store.
type SettingsService interface {
	// Get returns the stored settings layered over the defaults.
	Get() (*domain.AppSettings, error)

	// Save checks the session backend and writes every field back.
	Save(settings *domain.AppSettings) error

	GetDefaults() domain.AppSettings
}
