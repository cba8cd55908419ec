package mockstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileBackend persists entries as a single JSON document on disk.
// Every mutation rewrites the file through a temp file and rename, so a crash
// never leaves a half-written document behind.
type FileBackend struct {
	path    string
	mu      sync.Mutex
	entries map[string]Entry
}

// NewFileBackend opens (or lazily creates) the JSON document at path.
func NewFileBackend(path string) (*FileBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("mockstore: file path cannot be empty")
	}

	b := &FileBackend{path: path, entries: make(map[string]Entry)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return b, nil
	case err != nil:
		return nil, fmt.Errorf("mockstore: read %s: %w", path, err)
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(raw, &b.entries); err != nil {
		return nil, errors.Join(ErrCorruptedEntry, fmt.Errorf("decode %s: %w", path, err))
	}
	return b, nil
}

// Path returns the backing file location.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Load(_ context.Context, key string) (Entry, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key]
	return e, ok, nil
}

func (b *FileBackend) Store(_ context.Context, key string, entry Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, existed := b.entries[key]
	b.entries[key] = entry
	if err := b.flush(); err != nil {
		if existed {
			b.entries[key] = prev
		} else {
			delete(b.entries, key)
		}
		return err
	}
	return nil
}

func (b *FileBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, existed := b.entries[key]
	if !existed {
		return nil
	}
	delete(b.entries, key)
	if err := b.flush(); err != nil {
		b.entries[key] = prev
		return err
	}
	return nil
}

func (b *FileBackend) DeleteAll(_ context.Context, prefix string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := maps.Clone(b.entries)
	maps.DeleteFunc(b.entries, func(k string, _ Entry) bool {
		return strings.HasPrefix(k, prefix)
	})
	if len(snapshot) == len(b.entries) {
		return nil
	}
	if err := b.flush(); err != nil {
		b.entries = snapshot
		return err
	}
	return nil
}

// flush must be called with b.mu held.
func (b *FileBackend) flush() error {
	raw, err := json.MarshalIndent(b.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("mockstore: encode overrides: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mockstore: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("mockstore: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("mockstore: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("mockstore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("mockstore: replace %s: %w", b.path, err)
	}
	return nil
}
