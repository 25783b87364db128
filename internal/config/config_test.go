package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), FileName))
}

func TestProviderEmptyWhenNoFile(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Provider()
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.False(t, s.Exists())
}

func TestSetProviderRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetProvider("openai"))
	assert.True(t, s.Exists())

	// Re-open to force a read from disk rather than the cache.
	reopened := NewStoreAt(s.Path())
	name, err := reopened.Provider()
	require.NoError(t, err)
	assert.Equal(t, "openai", name)
}

func TestProviderSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetProviderSettings("ollama", map[string]string{
		"url":   "http://localhost:11434/api/generate",
		"model": "llama2",
	}))

	reopened := NewStoreAt(s.Path())
	settings, err := reopened.ProviderSettings("ollama")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434/api/generate", settings["url"])
	assert.Equal(t, "llama2", settings["model"])
}

func TestUnknownFieldsSurviveWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	original := `[general]
provider = "ollama"
future_flag = "keep-me"

[ollama]
url = "http://localhost:11434/api/generate"
model = "llama2"
keep_alive = "5m"

[sometool]
custom = "value"
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	s := NewStoreAt(path)
	require.NoError(t, s.SetProvider("openai"))
	require.NoError(t, s.SetProviderSettings("ollama", map[string]string{"model": "codellama"}))

	reopened := NewStoreAt(path)
	name, err := reopened.Provider()
	require.NoError(t, err)
	assert.Equal(t, "openai", name)

	settings, err := reopened.ProviderSettings("ollama")
	require.NoError(t, err)
	assert.Equal(t, "codellama", settings["model"])
	assert.Equal(t, "http://localhost:11434/api/generate", settings["url"], "untouched key in the same table must survive")
	assert.Equal(t, "5m", settings["keep_alive"])

	foreign, err := reopened.ProviderSettings("sometool")
	require.NoError(t, err)
	assert.Equal(t, "value", foreign["custom"], "foreign table must survive")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "future_flag")
}

func TestProviderSettingsMissingTable(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetProvider("openai"))

	settings, err := s.ProviderSettings("ollama")
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetProvider("openai"))
	require.True(t, s.Exists())

	require.NoError(t, s.Remove())
	assert.False(t, s.Exists())

	name, err := s.Provider()
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Remove())
}

func TestFailedWriteLeavesNoPhantomValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[general]\nprovider = \"ollama\"\n"), 0o600))

	s := NewStoreAt(path)
	name, err := s.Provider()
	require.NoError(t, err)
	require.Equal(t, "ollama", name)

	// A directory squatting on the temp file path makes the rewrite fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	require.Error(t, s.SetProvider("openai"))
	require.Error(t, s.SetProviderSettings("ollama", map[string]string{"model": "codellama"}))

	name, err = s.Provider()
	require.NoError(t, err)
	assert.Equal(t, "ollama", name, "a failed write must not leak into later reads")

	settings, err := s.ProviderSettings("ollama")
	require.NoError(t, err)
	assert.Empty(t, settings["model"])
}

func TestParseFailureIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o600))

	s := NewStoreAt(path)
	_, err := s.Provider()
	assert.Error(t, err)
}
