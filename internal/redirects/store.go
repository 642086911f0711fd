package redirects

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pythonwiki/wikimig/internal/fsops"
)

// ErrBadStore reports a redirect store that exists but cannot be parsed.
// Merging into an unreadable store would lose entries, so this is fatal.
var ErrBadStore = errors.New("redirect store is not valid JSON")

// Store loads and persists the redirect map.
type Store interface {
	// Load reads the persisted map. A missing file yields an empty map.
	Load() (*Map, error)

	// Save writes the map as key-sorted, indented JSON.
	Save(m *Map) error
}

// FileStore implements Store as a single JSON document on disk.
type FileStore struct {
	fs   fsops.FS
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(fs fsops.FS, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Load reads the persisted map. A missing file yields an empty map.
func (s *FileStore) Load() (*Map, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMap(), nil
		}
		return nil, fmt.Errorf("failed to read redirect store: %w", err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadStore, s.path, err)
	}
	return FromEntries(entries), nil
}

// Save writes the map as key-sorted, indented JSON with a trailing newline.
// HTML-significant characters stay literal so targets remain readable.
func (s *FileStore) Save(m *Map) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.entries); err != nil {
		return fmt.Errorf("failed to marshal redirect store: %w", err)
	}

	if err := s.fs.AtomicWrite(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write redirect store: %w", err)
	}
	return nil
}
