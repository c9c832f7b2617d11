package storage

import (
	"encoding/json"
	"os"

	apperrors "github.com/promptmaster/promptmaster/internal/errors"
	"github.com/promptmaster/promptmaster/internal/models"
)

// FileBackend stores the custom template list as a plain JSON file.
// Fallback for environments where the database cannot be opened.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to path. The file is
// created on first save.
func NewFileBackend(path string) (*FileBackend, error) {
	return &FileBackend{path: path}, nil
}

// Load reads the custom template list. A missing file is an empty list.
func (f *FileBackend) Load() ([]models.Template, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []models.Template{}, nil
	}
	if err != nil {
		return nil, apperrors.StorageUnavailableError("load", err)
	}
	return decodeTemplates(raw)
}

// Save rewrites the whole custom set
func (f *FileBackend) Save(templates []models.Template) error {
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return apperrors.StorageUnavailableError("save", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return apperrors.StorageUnavailableError("save", err)
	}
	return nil
}

// Close is a no-op for file storage
func (f *FileBackend) Close() error {
	return nil
}
