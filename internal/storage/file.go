package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fileSnapshotter stores checkpoint blobs as files in a local directory. It is
// the default backend for single-machine deployments and development.
type fileSnapshotter struct {
	dir string
}

// NewFile creates a file-backed Snapshotter rooted at dir. The directory is
// created if missing.
func NewFile(dir string) (Snapshotter, error) {
	if dir == "" {
		return nil, fmt.Errorf("checkpoint directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint directory: %w", err)
	}
	return &fileSnapshotter{dir: dir}, nil
}

func (f *fileSnapshotter) path(key string) string {
	// Keys may use "/" separators (e.g. "library/state"); flatten them so a
	// key can never escape the checkpoint directory.
	name := strings.ReplaceAll(key, "/", "_") + ".json"
	return filepath.Join(f.dir, name)
}

// Save writes the blob to a temp file and renames it into place, so a crash
// mid-write never leaves a truncated checkpoint behind.
func (f *fileSnapshotter) Save(_ context.Context, key string, data []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit checkpoint: %w", err)
	}
	return nil
}

// Load reads the blob stored under key, or returns ErrNotExist.
func (f *fileSnapshotter) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	return data, nil
}

// Ping verifies the checkpoint directory still exists and is a directory.
func (f *fileSnapshotter) Ping(_ context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("stat checkpoint directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("checkpoint path %q is not a directory", f.dir)
	}
	return nil
}
