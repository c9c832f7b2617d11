package editor

import (
	"testing"

	apperrors "github.com/promptmaster/promptmaster/internal/errors"
	"github.com/promptmaster/promptmaster/internal/models"
)

func threeSections() models.Template {
	return models.Template{
		ID:    "t1",
		Title: "Test",
		Sections: []models.Section{
			{ID: "a", Kind: models.KindStatic, Label: "A", Value: "first"},
			{ID: "b", Kind: models.KindInput, Label: "B", Value: "second"},
			{ID: "c", Kind: models.KindStatic, Label: "C", Value: "third"},
		},
	}
}

func sectionIDs(t models.Template) []string {
	ids := make([]string, len(t.Sections))
	for i, s := range t.Sections {
		ids[i] = s.ID
	}
	return ids
}

func TestAddSection(t *testing.T) {
	original := threeSections()
	updated := AddSection(original)

	if len(original.Sections) != 3 {
		t.Error("AddSection mutated its input")
	}
	if len(updated.Sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d", len(updated.Sections))
	}

	added := updated.Sections[3]
	if added.Kind != models.KindInput {
		t.Errorf("Expected input kind, got %q", added.Kind)
	}
	if added.Label != "New Variable" || added.Placeholder != "..." {
		t.Errorf("Unexpected seed values: %+v", added)
	}
	if added.ID == "" {
		t.Error("Expected a generated section id")
	}

	again := AddSection(updated)
	if again.Sections[4].ID == added.ID {
		t.Error("Expected distinct ids for successive adds")
	}
}

func TestRemoveSection(t *testing.T) {
	updated, err := RemoveSection(threeSections(), 1)
	if err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	got := sectionIDs(updated)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Expected [a c], got %v", got)
	}

	_, err = RemoveSection(threeSections(), 3)
	if !apperrors.IsCode(err, apperrors.ErrCodeIndexOutOfRange) {
		t.Errorf("Expected INDEX_OUT_OF_RANGE, got %v", err)
	}
	_, err = RemoveSection(threeSections(), -1)
	if !apperrors.IsCode(err, apperrors.ErrCodeIndexOutOfRange) {
		t.Errorf("Expected INDEX_OUT_OF_RANGE for negative index, got %v", err)
	}
}

func TestMoveSection(t *testing.T) {
	up, err := MoveSection(threeSections(), 1, Up)
	if err != nil {
		t.Fatalf("Failed to move up: %v", err)
	}
	if got := sectionIDs(up); got[0] != "b" || got[1] != "a" {
		t.Errorf("Expected [b a c], got %v", got)
	}

	down, err := MoveSection(threeSections(), 1, Down)
	if err != nil {
		t.Fatalf("Failed to move down: %v", err)
	}
	if got := sectionIDs(down); got[1] != "c" || got[2] != "b" {
		t.Errorf("Expected [a c b], got %v", got)
	}
}

func TestMoveSectionBoundaryIsNoOp(t *testing.T) {
	top, err := MoveSection(threeSections(), 0, Up)
	if err != nil {
		t.Fatalf("Unexpected error at top boundary: %v", err)
	}
	if got := sectionIDs(top); got[0] != "a" {
		t.Errorf("Expected order unchanged at top, got %v", got)
	}

	bottom, err := MoveSection(threeSections(), 2, Down)
	if err != nil {
		t.Fatalf("Unexpected error at bottom boundary: %v", err)
	}
	if got := sectionIDs(bottom); got[2] != "c" {
		t.Errorf("Expected order unchanged at bottom, got %v", got)
	}

	_, err = MoveSection(threeSections(), 5, Up)
	if !apperrors.IsCode(err, apperrors.ErrCodeIndexOutOfRange) {
		t.Errorf("Expected INDEX_OUT_OF_RANGE, got %v", err)
	}
}

func TestUpdateSectionField(t *testing.T) {
	original := threeSections()

	updated, err := UpdateSectionField(original, 0, FieldLabel, "Renamed")
	if err != nil {
		t.Fatalf("Failed to update label: %v", err)
	}
	if updated.Sections[0].Label != "Renamed" {
		t.Errorf("Expected label Renamed, got %q", updated.Sections[0].Label)
	}
	if original.Sections[0].Label != "A" {
		t.Error("UpdateSectionField mutated its input")
	}

	updated, err = UpdateSectionField(original, 1, FieldValue, "filled in")
	if err != nil {
		t.Fatalf("Failed to update value: %v", err)
	}
	if updated.Sections[1].Value != "filled in" {
		t.Errorf("Expected updated value, got %q", updated.Sections[1].Value)
	}

	updated, err = UpdateSectionField(original, 0, FieldKind, "input")
	if err != nil {
		t.Fatalf("Failed to update kind: %v", err)
	}
	if updated.Sections[0].Kind != models.KindInput {
		t.Errorf("Expected input kind, got %q", updated.Sections[0].Kind)
	}

	_, err = UpdateSectionField(original, 0, FieldKind, "select")
	if !apperrors.IsCode(err, apperrors.ErrCodeValidation) {
		t.Errorf("Expected validation error for select kind, got %v", err)
	}

	_, err = UpdateSectionField(original, 0, "color", "red")
	if !apperrors.IsCode(err, apperrors.ErrCodeValidation) {
		t.Errorf("Expected validation error for unknown field, got %v", err)
	}

	_, err = UpdateSectionField(original, 9, FieldLabel, "x")
	if !apperrors.IsCode(err, apperrors.ErrCodeIndexOutOfRange) {
		t.Errorf("Expected INDEX_OUT_OF_RANGE, got %v", err)
	}
}

func TestToggleKind(t *testing.T) {
	tmpl := threeSections()

	toggled, err := ToggleKind(tmpl, 0)
	if err != nil {
		t.Fatalf("Failed to toggle: %v", err)
	}
	if toggled.Sections[0].Kind != models.KindInput {
		t.Errorf("Expected static to toggle to input, got %q", toggled.Sections[0].Kind)
	}

	back, err := ToggleKind(toggled, 0)
	if err != nil {
		t.Fatalf("Failed to toggle back: %v", err)
	}
	if back.Sections[0].Kind != models.KindStatic {
		t.Errorf("Expected input to toggle to static, got %q", back.Sections[0].Kind)
	}

	tmpl.Sections[2].Kind = models.KindSelect
	kept, err := ToggleKind(tmpl, 2)
	if err != nil {
		t.Fatalf("Unexpected error toggling select: %v", err)
	}
	if kept.Sections[2].Kind != models.KindSelect {
		t.Errorf("Expected select kind to stay, got %q", kept.Sections[2].Kind)
	}
}
