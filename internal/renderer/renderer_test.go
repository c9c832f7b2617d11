package renderer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/promptmaster/promptmaster/internal/models"
)

func TestAssemble(t *testing.T) {
	tmpl := models.Template{
		Sections: []models.Section{
			{ID: "a", Kind: models.KindStatic, Value: "You are a tutor."},
			{ID: "b", Kind: models.KindInput, Value: "Explain recursion"},
			{ID: "c", Kind: models.KindStatic, Value: "Keep it short."},
		},
	}

	got := Assemble(tmpl)
	want := "You are a tutor.\n\nExplain recursion\n\nKeep it short."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestAssembleKeepsEmptyValues(t *testing.T) {
	tmpl := models.Template{
		Sections: []models.Section{
			{ID: "a", Value: "first"},
			{ID: "b", Value: ""},
			{ID: "c", Value: "last"},
		},
	}

	got := Assemble(tmpl)
	want := "first\n\n\n\nlast"
	if got != want {
		t.Errorf("Expected empty segment preserved, got %q", got)
	}
}

func TestAssembleNoSections(t *testing.T) {
	if got := Assemble(models.Template{}); got != "" {
		t.Errorf("Expected empty string for sectionless template, got %q", got)
	}
}

func TestRenderJSON(t *testing.T) {
	tmpl := models.Template{
		Sections: []models.Section{
			{ID: "a", Value: "hello"},
			{ID: "b", Value: "world"},
		},
	}

	out, err := RenderJSON(tmpl)
	if err != nil {
		t.Fatalf("Failed to render JSON: %v", err)
	}

	var messages []Message
	if err := json.Unmarshal([]byte(out), &messages); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].Role != "user" {
		t.Errorf("Expected role user, got %q", messages[0].Role)
	}
	if messages[0].Content != "hello\n\nworld" {
		t.Errorf("Unexpected content: %q", messages[0].Content)
	}
}

func TestRenderMarkdown(t *testing.T) {
	tmpl := models.Template{
		Title:       "Email",
		Goal:        models.GoalBusiness,
		Description: "Draft an email",
		Sections: []models.Section{
			{ID: "a", Value: "Write an email."},
		},
	}

	md := RenderMarkdown(tmpl)
	if !strings.Contains(md, "# Email") {
		t.Error("Expected title heading in markdown")
	}
	if !strings.Contains(md, "Write an email.") {
		t.Error("Expected assembled prompt in markdown")
	}

	empty := RenderMarkdown(models.Template{Title: "Blank"})
	if !strings.Contains(empty, "(empty)") {
		t.Error("Expected empty marker for blank template")
	}
}
