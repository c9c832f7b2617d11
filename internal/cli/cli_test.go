package cli

import (
	"path/filepath"
	"testing"

	"github.com/promptmaster/promptmaster/internal/models"
	"github.com/promptmaster/promptmaster/internal/service"
	"github.com/promptmaster/promptmaster/internal/storage"
)

func newTestCLI(t *testing.T) (*CLI, *service.Service) {
	t.Helper()
	backend, err := storage.NewFileBackend(filepath.Join(t.TempDir(), "templates.json"))
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}
	svc := service.NewServiceWithBackend(backend)
	t.Cleanup(func() { svc.Close() })
	return NewCLI(svc), svc
}

func TestCreateEditDelete(t *testing.T) {
	c, svc := newTestCLI(t)

	if err := c.ExecuteCommand([]string{"new", "--title", "Standup Notes", "--goal", "Business"}); err != nil {
		t.Fatalf("Failed to create: %v", err)
	}

	custom, err := svc.ListCustomTemplates()
	if err != nil {
		t.Fatalf("Failed to list customs: %v", err)
	}
	if len(custom) != 1 {
		t.Fatalf("Expected 1 custom template, got %d", len(custom))
	}
	if custom[0].Title != "Standup Notes" || custom[0].Goal != models.GoalBusiness {
		t.Errorf("Unexpected created template: %+v", custom[0])
	}

	id := custom[0].ID
	if err := c.ExecuteCommand([]string{"edit", id, "--title", "Daily Standup"}); err != nil {
		t.Fatalf("Failed to edit: %v", err)
	}
	updated, err := svc.GetTemplate(id)
	if err != nil {
		t.Fatalf("Failed to get edited template: %v", err)
	}
	if updated.Title != "Daily Standup" {
		t.Errorf("Expected edited title, got %q", updated.Title)
	}

	if err := c.ExecuteCommand([]string{"delete", id}); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	custom, _ = svc.ListCustomTemplates()
	if len(custom) != 0 {
		t.Errorf("Expected empty custom set after delete, got %d", len(custom))
	}
}

func TestEditRejectsUnknownGoal(t *testing.T) {
	c, _ := newTestCLI(t)
	err := c.ExecuteCommand([]string{"edit", "general-role", "--goal", "Cooking"})
	if err == nil {
		t.Fatal("Expected error for unknown goal")
	}
}

func TestEditRequiresAChange(t *testing.T) {
	c, _ := newTestCLI(t)
	if err := c.ExecuteCommand([]string{"edit", "general-role"}); err == nil {
		t.Fatal("Expected error when no field flags are given")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	c, svc := newTestCLI(t)

	tmpl := svc.NewTemplate(models.GoalCoding)
	tmpl.Title = "Round Trip"
	if err := svc.SaveTemplate(tmpl); err != nil {
		t.Fatalf("Failed to seed template: %v", err)
	}

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := c.ExecuteCommand([]string{"export", path}); err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	if err := c.ExecuteCommand([]string{"delete", tmpl.ID}); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if err := c.ExecuteCommand([]string{"import", path}); err != nil {
		t.Fatalf("Failed to import: %v", err)
	}

	restored, err := svc.GetTemplate(tmpl.ID)
	if err != nil {
		t.Fatalf("Failed to get restored template: %v", err)
	}
	if restored.Title != "Round Trip" {
		t.Errorf("Expected restored title, got %q", restored.Title)
	}
	if !restored.IsCustom {
		t.Error("Expected imported template marked custom")
	}
}

func TestUnknownCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	if err := c.ExecuteCommand([]string{"frobnicate"}); err == nil {
		t.Fatal("Expected error for unknown command")
	}
}
