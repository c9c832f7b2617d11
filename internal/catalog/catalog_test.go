package catalog

import (
	"testing"

	"github.com/promptmaster/promptmaster/internal/models"
)

func TestTemplatesComplete(t *testing.T) {
	templates := Templates()

	if len(templates) != 8 {
		t.Fatalf("Expected 8 built-in templates, got %d", len(templates))
	}

	want := []string{
		"learn-subject",
		"code-refactor",
		"email-writer",
		"short-story",
		"research-assistant",
		"subreddit-finder",
		"pain-point-researcher",
		"general-role",
	}
	for i, id := range want {
		if templates[i].ID != id {
			t.Errorf("Template %d: expected id %q, got %q", i, id, templates[i].ID)
		}
	}
}

func TestTemplatesAreNormalized(t *testing.T) {
	for _, tmpl := range Templates() {
		if tmpl.IsCustom {
			t.Errorf("Built-in %q is marked custom", tmpl.ID)
		}
		if !models.ValidGoal(tmpl.Goal) {
			t.Errorf("Built-in %q has unknown goal %q", tmpl.ID, tmpl.Goal)
		}
		if tmpl.Title == "" {
			t.Errorf("Built-in %q has no title", tmpl.ID)
		}
		seen := make(map[string]bool)
		for _, s := range tmpl.Sections {
			if s.Kind == "" {
				t.Errorf("Built-in %q section %q has empty kind", tmpl.ID, s.ID)
			}
			if seen[s.ID] {
				t.Errorf("Built-in %q has duplicate section id %q", tmpl.ID, s.ID)
			}
			seen[s.ID] = true
		}
	}
}

func TestTemplatesReturnsCopies(t *testing.T) {
	first := Templates()
	first[0].Title = "mutated"
	first[0].Sections[0].Value = "mutated"

	second := Templates()
	if second[0].Title == "mutated" {
		t.Error("Mutating a returned template changed the catalog title")
	}
	if second[0].Sections[0].Value == "mutated" {
		t.Error("Mutating a returned section changed the catalog")
	}
}

func TestGet(t *testing.T) {
	tmpl, ok := Get("general-role")
	if !ok {
		t.Fatal("Expected to find general-role")
	}
	if tmpl.Goal != models.GoalGeneral {
		t.Errorf("Expected goal %q, got %q", models.GoalGeneral, tmpl.Goal)
	}

	if _, ok := Get("no-such-template"); ok {
		t.Error("Expected lookup miss for unknown id")
	}
}
