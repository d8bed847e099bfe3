package driven

// ConfigStore is a flat view over the settings file. Keys are dotted
// paths such as "ui.page_size" or "data.urls.manual".
//
// The typed getters return the zero value when a key is missing or holds
// a value of another type. GetFloat also accepts integers.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Keys lists every leaf key, sorted.
	Keys() []string

	// Set writes value under key and persists the file.
	Set(key string, value any) error

	Save() error

	// Load rereads the file, discarding unsaved values.
	Load() error

	// Path is the file location, or ":memory:" for in-memory stores.
	Path() string
}
