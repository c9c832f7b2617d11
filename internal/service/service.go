// Package service provides business logic for template management:
// the merged catalog-plus-custom view, persistence of user templates,
// and the filter and search operations shared by the CLI and TUI.
package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/promptmaster/promptmaster/internal/catalog"
	apperrors "github.com/promptmaster/promptmaster/internal/errors"
	"github.com/promptmaster/promptmaster/internal/models"
	"github.com/promptmaster/promptmaster/internal/storage"
)

// Service provides template operations over a storage backend
type Service struct {
	backend storage.Backend
	mu      sync.Mutex // serializes load-modify-save cycles
}

// NewService opens storage in the configured directory and returns a
// service instance
func NewService() (*Service, error) {
	dir, err := storage.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	backend, err := storage.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return &Service{backend: backend}, nil
}

// NewServiceWithBackend wires an explicit backend, used by tests
func NewServiceWithBackend(backend storage.Backend) *Service {
	return &Service{backend: backend}
}

// Close releases the storage backend
func (s *Service) Close() error {
	return s.backend.Close()
}

// ListTemplates returns built-ins followed by custom templates, each
// set in its own stored order. Custom templates are loaded fresh on
// every call so external writes to the store are picked up.
func (s *Service) ListTemplates() ([]models.Template, error) {
	custom, err := s.backend.Load()
	if err != nil {
		return nil, err
	}
	return append(catalog.Templates(), custom...), nil
}

// ListCustomTemplates returns only the user-authored set
func (s *Service) ListCustomTemplates() ([]models.Template, error) {
	return s.backend.Load()
}

// GetTemplate returns the first template matching id in merged order,
// so a built-in shadows a custom template reusing its slug.
func (s *Service) GetTemplate(id string) (models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return models.Template{}, err
	}
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Template{}, apperrors.NotFoundError(fmt.Sprintf("Template %q", id))
}

// SaveTemplate upserts a template into the custom set. The stored
// copy is always marked custom regardless of the input; an existing
// template keeps its position, a new one is appended.
func (s *Service) SaveTemplate(t models.Template) error {
	if t.ID == "" {
		return apperrors.ValidationError("Template id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	custom, err := s.backend.Load()
	if err != nil {
		return err
	}

	saved := t.Clone()
	saved.IsCustom = true

	replaced := false
	for i := range custom {
		if custom[i].ID == saved.ID {
			custom[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		custom = append(custom, saved)
	}

	return s.backend.Save(custom)
}

// DeleteTemplate removes a custom template by id. Deleting an unknown
// or built-in id is a no-op; the catalog is never touched.
func (s *Service) DeleteTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	custom, err := s.backend.Load()
	if err != nil {
		return err
	}

	kept := custom[:0]
	for _, t := range custom {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(custom) {
		return nil
	}
	return s.backend.Save(kept)
}

// FilterByGoal returns the merged list narrowed to one goal
func (s *Service) FilterByGoal(goal models.Goal) ([]models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}

	var results []models.Template
	for _, t := range templates {
		if t.Goal == goal {
			results = append(results, t)
		}
	}
	return results, nil
}

// FilterByTitle returns templates whose title contains the query,
// case-insensitively. An empty query matches everything.
func (s *Service) FilterByTitle(query string) ([]models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return templates, nil
	}

	needle := strings.ToLower(query)
	var results []models.Template
	for _, t := range templates {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			results = append(results, t)
		}
	}
	return results, nil
}

// SearchTemplates performs a fuzzy search across title, description,
// goal and id, ranked by match quality
func (s *Service) SearchTemplates(query string) ([]models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return templates, nil
	}

	// Create searchable strings for each template
	var searchStrings []string
	for _, t := range templates {
		searchStr := fmt.Sprintf("%s %s %s %s",
			t.Title,
			t.Description,
			t.Goal,
			t.ID)
		searchStrings = append(searchStrings, searchStr)
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []models.Template
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}
	return results, nil
}

// NewTemplate builds an unsaved blank template under the given goal,
// seeded with a persona section and one fillable topic
func (s *Service) NewTemplate(goal models.Goal) models.Template {
	if !models.ValidGoal(goal) {
		goal = models.GoalGeneral
	}
	return models.Template{
		ID:    uuid.NewString(),
		Title: models.DefaultTitle,
		Goal:  goal,
		Sections: []models.Section{
			{
				ID:    uuid.NewString(),
				Kind:  models.KindStatic,
				Label: "System Persona",
				Value: "You are an expert AI assistant.",
			},
			{
				ID:          uuid.NewString(),
				Kind:        models.KindInput,
				Label:       "User Topic",
				Placeholder: "What do you need help with?",
			},
		},
		IsCustom: true,
	}
}

// ImportTemplates upserts a batch into the custom set, in input order
func (s *Service) ImportTemplates(templates []models.Template) error {
	for _, t := range templates {
		if err := s.SaveTemplate(t); err != nil {
			return err
		}
	}
	return nil
}
