package domain

import "time"

const unknownDescription = "Unknown"

// SessionBackend selects where detail handoffs are stored.
type SessionBackend string

// Available session backends.
const (
	// SessionBackendMemory keeps sessions in process memory.
	SessionBackendMemory SessionBackend = "memory"

	// SessionBackendSQLite persists sessions in a local SQLite database.
	SessionBackendSQLite SessionBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b SessionBackend) IsValid() bool {
	return b == SessionBackendMemory || b == SessionBackendSQLite
}

// String returns the string representation.
func (b SessionBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b SessionBackend) Description() string {
	switch b {
	case SessionBackendMemory:
		return "In-memory (lost on exit)"
	case SessionBackendSQLite:
		return "SQLite (persisted)"
	default:
		return unknownDescription
	}
}

// DataSettings locates the dataset documents.
type DataSettings struct {
	// BaseURL is prefixed to each built-in dataset file name.
	BaseURL string

	// URLs overrides individual dataset locations by name.
	URLs map[string]string
}

// UISettings holds browsing presentation settings.
type UISettings struct {
	// PageSize applies to every paginated dataset.
	PageSize int

	// MaxPageButtons is the width of the pagination window.
	MaxPageButtons int

	// CarouselInterval is the auto-advance period of the issue carousel.
	CarouselInterval time.Duration
}

// ServerSettings holds web server settings.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// SessionSettings holds detail handoff storage settings.
type SessionSettings struct {
	Backend SessionBackend

	// TTL is how long an unused handoff is kept.
	TTL time.Duration
}

// LoaderSettings holds dataset fetch settings.
type LoaderSettings struct {
	// RateLimit is the maximum number of fetches per second.
	RateLimit float64

	// Timeout bounds a single fetch.
	Timeout time.Duration
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Data    DataSettings
	UI      UISettings
	Server  ServerSettings
	Session SessionSettings
	Loader  LoaderSettings
}

// DefaultAppSettings returns settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Data: DataSettings{BaseURL: "data"},
		UI: UISettings{
			PageSize:         DefaultPageSize,
			MaxPageButtons:   DefaultMaxPageButtons,
			CarouselInterval: 5 * time.Second,
		},
		Server:  ServerSettings{Addr: ":8080"},
		Session: SessionSettings{Backend: SessionBackendSQLite, TTL: time.Hour},
		Loader:  LoaderSettings{RateLimit: 5, Timeout: 10 * time.Second},
	}
}

// Datasets returns the built-in dataset profiles with configured locations
// and page size applied.
func (s AppSettings) Datasets() []Dataset {
	datasets := DefaultDatasets(s.Data.BaseURL)
	for i := range datasets {
		if u := s.Data.URLs[datasets[i].Name]; u != "" {
			datasets[i].Source.URL = u
		}
		if datasets[i].PageSize > 0 && s.UI.PageSize > 0 {
			datasets[i].PageSize = s.UI.PageSize
		}
	}
	return datasets
}
