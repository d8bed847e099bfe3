package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".hioder", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", ":9090"))
	require.NoError(t, store.Set("ui.page_size", int64(20)))
	require.NoError(t, store.Set("loader.rate_limit", 2.5))
	require.NoError(t, store.Set("ui.compact", true))
	require.NoError(t, store.Set("datasets.order", []string{"guide", "manual"}))

	assert.Equal(t, ":9090", store.GetString("server.addr"))
	assert.Equal(t, 20, store.GetInt("ui.page_size"))
	assert.InDelta(t, 2.5, store.GetFloat("loader.rate_limit"), 0.0001)
	assert.InDelta(t, 20.0, store.GetFloat("ui.page_size"), 0.0001)
	assert.True(t, store.GetBool("ui.compact"))
	assert.Equal(t, []string{"guide", "manual"}, store.GetStringSlice("datasets.order"))

	assert.Empty(t, store.GetString("ui.page_size"))
	assert.Zero(t, store.GetInt("server.addr"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Persistence_WritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("ui.page_size", int64(15)))
	require.NoError(t, store.Set("datasets.manual.url", "https://example.com/manual.json"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[ui]")
	assert.Contains(t, string(raw), "page_size = 15")
	assert.NotContains(t, string(raw), `"ui.page_size"`)

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 15, reloaded.GetInt("ui.page_size"))
	assert.Equal(t, "https://example.com/manual.json", reloaded.GetString("datasets.manual.url"))
	assert.Equal(t, []string{"datasets.manual.url", "ui.page_size"}, reloaded.Keys())
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[data]
base_url = "https://cdn.example.com/data"

[session]
store = "memory"
ttl_minutes = 30
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/data", store.GetString("data.base_url"))
	assert.Equal(t, "memory", store.GetString("session.store"))
	assert.Equal(t, 30, store.GetInt("session.ttl_minutes"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Set_RejectsConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("ui.page_size", int64(10)))

	assert.Error(t, store.Set("ui", "flat"))
	assert.Error(t, store.Set("ui.page_size.extra", 1))
	assert.Error(t, store.Set("", "v"))
}

func TestConfigStore_Set_UnmarshallableValueIsNotKept(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))
	assert.Error(t, err)

	_, ok := store.Get("channel")
	assert.False(t, ok)
	assert.NoError(t, store.Set("after", "ok"))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# comment\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("ui.page_size", int64(i))
			_ = store.GetInt("ui.page_size")
			_ = store.Keys()
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"ui.page_size"}, store.Keys())
}

func TestNestMap_FlattenMap_RoundTrip(t *testing.T) {
	flat := map[string]any{"a.b.c": 1, "a.d": "x", "e": true}

	assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
}
