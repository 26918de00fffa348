package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage using local disk. It owns a root
// directory under which each operation gets its own work directory.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates a LocalStorage rooted at rootDir. If rootDir is
// empty, a directory under os.TempDir() is used. The root is created if it
// doesn't exist.
func NewLocalStorage(rootDir string) (*LocalStorage, error) {
	if rootDir == "" {
		rootDir = filepath.Join(os.TempDir(), "video-audio-mcp")
	}

	if err := os.MkdirAll(rootDir, 0750); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &LocalStorage{root: rootDir}, nil
}

// Root returns the storage root directory.
func (s *LocalStorage) Root() string {
	return s.root
}

// NewWorkDir creates a uniquely named directory for one operation's
// intermediates.
func (s *LocalStorage) NewWorkDir(ctx context.Context, op string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	dir, err := os.MkdirTemp(s.root, sanitizeOpName(op)+"-*")
	if err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}
	return dir, nil
}

// RemoveWorkDir deletes a work directory and its contents. It refuses to
// remove anything outside the storage root.
func (s *LocalStorage) RemoveWorkDir(_ context.Context, dir string) error {
	if dir == "" {
		return nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve work directory: %w", err)
	}
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return fmt.Errorf("resolve storage root: %w", err)
	}
	if !strings.HasPrefix(abs, rootAbs+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s: outside storage root %s", abs, rootAbs)
	}
	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("remove work directory: %w", err)
	}
	return nil
}

// Publish is not supported by local-only storage.
func (s *LocalStorage) Publish(_ context.Context, _, _ string) (string, error) {
	return "", ErrPublishNotConfigured
}

// sanitizeOpName keeps work directory names filesystem-friendly.
func sanitizeOpName(op string) string {
	if op == "" {
		return "op"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, op)
}
