package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// FileKV persists the medium as a single JSON object on disk, surviving
// process restarts until explicitly cleared. Writes go through a temp file
// plus rename so a crash never leaves a half-written file behind.
type FileKV struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFileKV loads the file at path if it exists. A missing file is an empty
// medium; an unreadable or unparseable file starts empty too, since corrupt
// state is treated as no state.
func NewFileKV(path string) (*FileKV, error) {
	f := &FileKV{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.data = make(map[string]string)
	}
	return f, nil
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	return val, ok, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

func (f *FileKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return f.flush()
}

// flush writes the map to disk. Callers must hold f.mu.
func (f *FileKV) flush() error {
	encoded, err := json.Marshal(f.data)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
