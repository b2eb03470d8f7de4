package settings

import (
	"os"
	"sync"
	"time"
)

// Store holds the current settings and the file they were read from. It is
// shared between the render loop and the HTTP API.
type Store struct {
	mu       sync.RWMutex
	path     string
	settings Settings

	modTime time.Time
	size    int64
}

// NewStore loads path (falling back to defaults) and returns a store for it.
// The returned error is informational: the store is always usable.
func NewStore(path string) (*Store, error) {
	s, err := Load(path)
	store := &Store{path: path, settings: s}
	store.stat()
	return store, err
}

// NewMemoryStore returns a store that is not backed by a file.
func NewMemoryStore(s Settings) *Store {
	return &Store{settings: s}
}

func (store *Store) Path() string {
	return store.path
}

func (store *Store) Snapshot() Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// Set replaces the settings in memory only. A later change to the backing
// file still wins on the next Refresh.
func (store *Store) Set(s Settings) {
	store.mu.Lock()
	store.settings = s
	store.mu.Unlock()
}

// Update replaces the settings and writes them to the backing file.
func (store *Store) Update(s Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.settings = s
	if store.path == "" {
		return nil
	}
	if err := Save(store.path, s); err != nil {
		return err
	}
	store.statLocked()
	return nil
}

// Refresh re-reads the backing file when its modification time or size
// changed since the last read. It reports whether the settings changed.
// A file that fails to parse keeps the previous settings.
func (store *Store) Refresh() (bool, error) {
	if store.path == "" {
		return false, nil
	}
	info, err := os.Stat(store.path)
	if err != nil {
		return false, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if info.ModTime().Equal(store.modTime) && info.Size() == store.size {
		return false, nil
	}
	store.modTime, store.size = info.ModTime(), info.Size()

	data, err := os.ReadFile(store.path)
	if err != nil {
		return false, err
	}
	s, err := Decode(data)
	if err != nil {
		return false, err
	}
	changed := s != store.settings
	store.settings = s
	return changed, nil
}

func (store *Store) stat() {
	store.mu.Lock()
	store.statLocked()
	store.mu.Unlock()
}

func (store *Store) statLocked() {
	if store.path == "" {
		return
	}
	if info, err := os.Stat(store.path); err == nil {
		store.modTime, store.size = info.ModTime(), info.Size()
	}
}
