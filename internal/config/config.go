// Package config manages the persisted settings record: a small TOML file
// holding the selected provider and per-provider non-secret settings.
// Secrets never live here; they belong to the OS keyring.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const FileName = ".ai-cli.toml"

// Store reads and writes the settings file. The document is kept as a
// map[string]any so fields this tool does not know about round-trip
// untouched. The cache is valid for one process lifetime; writes are a
// full atomic rewrite.
type Store struct {
	path  string
	cache map[string]any
}

// NewStore returns a store over ~/.ai-cli.toml.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewStoreAt(filepath.Join(homeDir, FileName)), nil
}

// NewStoreAt returns a store over an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *Store) load() (map[string]any, error) {
	if s.cache != nil {
		return s.cache, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cache = map[string]any{}
			return s.cache, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}

	s.cache = doc
	return s.cache, nil
}

func (s *Store) save(doc map[string]any) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	s.cache = doc
	return nil
}

// mutate applies fn to a copy of the named table in a copy of the document
// and saves the result. The live cache only advances when the save
// succeeds, so a failed write leaves no phantom values behind.
func (s *Store) mutate(name string, fn func(table map[string]any)) error {
	cached, err := s.load()
	if err != nil {
		return err
	}

	doc := make(map[string]any, len(cached)+1)
	for key, value := range cached {
		doc[key] = value
	}

	table := map[string]any{}
	if existing, ok := cached[name].(map[string]any); ok {
		for key, value := range existing {
			table[key] = value
		}
	}
	fn(table)
	doc[name] = table

	return s.save(doc)
}

// Provider returns the selected provider from the general table, or ""
// when none is recorded.
func (s *Store) Provider() (string, error) {
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	general, ok := doc["general"].(map[string]any)
	if !ok {
		return "", nil
	}
	name, _ := general["provider"].(string)
	return name, nil
}

// SetProvider records the selected provider in the general table.
func (s *Store) SetProvider(name string) error {
	return s.mutate("general", func(table map[string]any) {
		table["provider"] = name
	})
}

// ProviderSettings returns the string-valued settings of the named
// provider's table. Missing table yields an empty map.
func (s *Store) ProviderSettings(name string) (map[string]string, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	table, ok := doc[name].(map[string]any)
	if !ok {
		return map[string]string{}, nil
	}

	settings := make(map[string]string, len(table))
	for key, value := range table {
		if str, ok := value.(string); ok {
			settings[key] = str
		}
	}
	return settings, nil
}

// SetProviderSettings merges the given settings into the provider's table,
// leaving keys not named in settings as they were.
func (s *Store) SetProviderSettings(name string, settings map[string]string) error {
	return s.mutate(name, func(table map[string]any) {
		for key, value := range settings {
			table[key] = value
		}
	})
}

// Remove deletes the settings file entirely. A missing file is not an
// error.
func (s *Store) Remove() error {
	s.cache = nil
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}
	return nil
}
