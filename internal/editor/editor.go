// Package editor implements structural edits on a template's section
// list. Every operation takes a template by value and returns a new
// one; callers decide when the result is persisted.
package editor

import (
	"github.com/google/uuid"

	apperrors "github.com/promptmaster/promptmaster/internal/errors"
	"github.com/promptmaster/promptmaster/internal/models"
)

// Direction of a section move
type Direction int

const (
	Up Direction = iota
	Down
)

// SectionField names an editable section attribute
type SectionField string

const (
	FieldLabel       SectionField = "label"
	FieldValue       SectionField = "value"
	FieldPlaceholder SectionField = "placeholder"
	FieldKind        SectionField = "kind"
)

// AddSection appends a fresh input section ready to be renamed
func AddSection(t models.Template) models.Template {
	out := t.Clone()
	out.Sections = append(out.Sections, models.Section{
		ID:          uuid.NewString(),
		Kind:        models.KindInput,
		Label:       "New Variable",
		Placeholder: "...",
	})
	return out
}

// RemoveSection deletes the section at index i
func RemoveSection(t models.Template, i int) (models.Template, error) {
	if i < 0 || i >= len(t.Sections) {
		return t, apperrors.IndexOutOfRangeError(i, len(t.Sections))
	}
	out := t.Clone()
	out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
	return out, nil
}

// MoveSection swaps the section at index i with its neighbor in the
// given direction. Moving past either end returns the template
// unchanged.
func MoveSection(t models.Template, i int, dir Direction) (models.Template, error) {
	if i < 0 || i >= len(t.Sections) {
		return t, apperrors.IndexOutOfRangeError(i, len(t.Sections))
	}

	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(t.Sections) {
		return t, nil
	}

	out := t.Clone()
	out.Sections[i], out.Sections[j] = out.Sections[j], out.Sections[i]
	return out, nil
}

// UpdateSectionField sets one attribute of the section at index i.
// Unknown fields and unknown kinds are rejected as validation errors.
func UpdateSectionField(t models.Template, i int, field SectionField, value string) (models.Template, error) {
	if i < 0 || i >= len(t.Sections) {
		return t, apperrors.IndexOutOfRangeError(i, len(t.Sections))
	}

	out := t.Clone()
	section := &out.Sections[i]

	switch field {
	case FieldLabel:
		section.Label = value
	case FieldValue:
		section.Value = value
	case FieldPlaceholder:
		section.Placeholder = value
	case FieldKind:
		kind := models.SectionKind(value)
		if kind != models.KindStatic && kind != models.KindInput {
			return t, apperrors.ValidationError("Section kind must be static or input")
		}
		section.Kind = kind
	default:
		return t, apperrors.ValidationError("Unknown section field: " + string(field))
	}
	return out, nil
}

// ToggleKind flips a section between static and input. Select sections
// stay as they are; the editor does not produce new ones.
func ToggleKind(t models.Template, i int) (models.Template, error) {
	if i < 0 || i >= len(t.Sections) {
		return t, apperrors.IndexOutOfRangeError(i, len(t.Sections))
	}
	if t.Sections[i].Kind == models.KindSelect {
		return t, nil
	}

	next := models.KindInput
	if t.Sections[i].Kind == models.KindInput {
		next = models.KindStatic
	}
	return UpdateSectionField(t, i, FieldKind, string(next))
}
