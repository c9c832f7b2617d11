package ui

import "github.com/promptmaster/promptmaster/internal/models"

// templateItem adapts a template to the bubbles list delegate, which
// wants Title and Description methods the model type cannot provide
// without clashing with its fields.
type templateItem struct {
	template models.Template
}

func (i templateItem) Title() string       { return i.template.ListTitle() }
func (i templateItem) Description() string { return i.template.ListDescription() }
func (i templateItem) FilterValue() string { return i.template.FilterValue() }
