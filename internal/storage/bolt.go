package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	apperrors "github.com/promptmaster/promptmaster/internal/errors"
	"github.com/promptmaster/promptmaster/internal/models"
)

const (
	templatesBucket = "templates"
	customSetKey    = "custom"
)

// BoltBackend stores the custom template list in a bbolt database,
// one bucket, one key.
type BoltBackend struct {
	db *bbolt.DB
}

// NewBoltBackend opens (or creates) the database at path
func NewBoltBackend(path string) (*BoltBackend, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(templatesBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltBackend{db: db}, nil
}

// Load reads the custom template list. A missing key is an empty list.
func (b *BoltBackend) Load() ([]models.Template, error) {
	var raw []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(templatesBucket))
		if bucket == nil {
			return nil
		}
		if data := bucket.Get([]byte(customSetKey)); data != nil {
			raw = make([]byte, len(data))
			copy(raw, data)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.StorageUnavailableError("load", err)
	}
	if raw == nil {
		return []models.Template{}, nil
	}

	templates, err := decodeTemplates(raw)
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// Save rewrites the whole custom set
func (b *BoltBackend) Save(templates []models.Template) error {
	data, err := json.Marshal(templates)
	if err != nil {
		return apperrors.StorageUnavailableError("save", err)
	}

	err = b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(templatesBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %q missing", templatesBucket)
		}
		return bucket.Put([]byte(customSetKey), data)
	})
	if err != nil {
		return apperrors.StorageUnavailableError("save", err)
	}
	return nil
}

// Close releases the database file lock
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

// decodeTemplates parses a stored JSON blob and applies legacy
// normalization. Unparseable data surfaces as corruption; it is never
// silently replaced with an empty list.
func decodeTemplates(raw []byte) ([]models.Template, error) {
	var templates []models.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, apperrors.DataCorruptionError(err)
	}
	for i := range templates {
		templates[i].Normalize()
	}
	return templates, nil
}
