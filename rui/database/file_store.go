package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps each collection in <dir>/<collection>.json.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

func (s *FileStore) Load(_ context.Context, c Collection) (Document, error) {
	start := time.Now()
	s.mu.RLock()
	data, err := os.ReadFile(s.path(c))
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", c, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNotFound
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("collection %s holds invalid json", c)
	}

	slog.Debug("Collection loaded",
		slog.String("type", "db"),
		slog.String("operation", "load"),
		slog.String("collection", string(c)),
		slog.String("backend", "file"),
		slog.Duration("took", time.Since(start)))
	return data, nil
}

// Save writes through a temp file and renames it so readers never see a torn document.
func (s *FileStore) Save(_ context.Context, c Collection, doc Document) error {
	var out bytes.Buffer
	if err := json.Indent(&out, doc, "", "  "); err != nil {
		return fmt.Errorf("failed to encode %s: %w", c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, string(c)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", c, err)
	}
	if err := os.Rename(tmp.Name(), s.path(c)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", c, err)
	}
	return nil
}
