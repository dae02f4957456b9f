package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore persists settings to a YAML file. Writes go through a temp file
// and rename so a crash mid-write never truncates the prior settings.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted settings. A missing file is not an error; it
// just means nothing has been persisted yet.
func (f *FileStore) Load() (Settings, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, false, nil
		}
		return Settings{}, false, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, false, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, true, nil
}

// Save writes the settings atomically.
func (f *FileStore) Save(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close settings file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// MemoryStore keeps settings in memory. Used in tests and for ephemeral
// runs that should not leave state behind.
type MemoryStore struct {
	saved *Settings
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved settings, if any.
func (m *MemoryStore) Load() (Settings, bool, error) {
	if m.saved == nil {
		return Settings{}, false, nil
	}
	return *m.saved, true, nil
}

// Save stores the settings.
func (m *MemoryStore) Save(s Settings) error {
	copied := s
	m.saved = &copied
	return nil
}
