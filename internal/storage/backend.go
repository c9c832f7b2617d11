// Package storage persists the user's custom templates. The whole
// custom list is stored as one JSON blob rewritten on every save: the
// data set is small and a full rewrite keeps the on-disk state
// consistent without partial-update bookkeeping.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptmaster/promptmaster/internal/models"
)

// Backend stores and retrieves the custom template list
type Backend interface {
	Load() ([]models.Template, error)
	Save(templates []models.Template) error
	Close() error
}

const (
	// DefaultDirName under the user's home directory
	DefaultDirName = ".promptmaster"
	// EnvDir overrides the storage directory when set
	EnvDir = "PROMPTMASTER_DIR"
)

// Dir resolves the storage directory: PROMPTMASTER_DIR if set,
// otherwise ~/.promptmaster.
func Dir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Open creates the storage directory and returns the best available
// backend: bbolt first, plain JSON file if the database cannot be
// opened (stale lock, unwritable file, network filesystem).
func Open(dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	bolt, err := NewBoltBackend(filepath.Join(dir, "templates.db"))
	if err == nil {
		return bolt, nil
	}
	fmt.Fprintf(os.Stderr, "Warning: database unavailable, using file storage: %v\n", err)

	file, ferr := NewFileBackend(filepath.Join(dir, "templates.json"))
	if ferr != nil {
		return nil, fmt.Errorf("failed to open storage: %w", ferr)
	}
	return file, nil
}
