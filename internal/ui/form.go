package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptmaster/promptmaster/internal/editor"
	"github.com/promptmaster/promptmaster/internal/models"
)

// EditorMode selects what the template editor edits
type EditorMode int

const (
	// ModeUsage fills variable sections before copying
	ModeUsage EditorMode = iota
	// ModeDesign edits the template structure itself
	ModeDesign
)

// EditorForm holds the working copy of a template being filled or
// redesigned. Nothing is persisted until the model asks for the
// template and saves it.
type EditorForm struct {
	template models.Template
	mode     EditorMode
	focused  int
	dirty    bool
	width    int

	// Usage mode: one textarea per fillable section
	fillable []int
	areas    []textarea.Model

	// Design mode: title and description inputs, then per section a
	// label input, a placeholder input, and a value textarea
	inputs     []textinput.Model
	valueAreas []textarea.Model
}

// Design form field layout: title, description, then three fields per
// section (label, placeholder, value)
const (
	designFixedFields   = 2
	designSectionStride = 3
)

// NewEditorForm creates an editor over a copy of t
func NewEditorForm(t models.Template, mode EditorMode) *EditorForm {
	f := &EditorForm{
		template: t.Clone(),
		mode:     mode,
		width:    60,
	}
	f.rebuild()
	return f
}

// rebuild regenerates the input components from the working template.
// Called after every structural change.
func (f *EditorForm) rebuild() {
	f.fillable = nil
	f.areas = nil
	for i, s := range f.template.Sections {
		if s.Kind == models.KindStatic {
			continue
		}
		ta := textarea.New()
		ta.CharLimit = 0
		ta.ShowLineNumbers = false
		ta.SetWidth(f.width)
		ta.SetHeight(3)
		ta.Placeholder = s.Placeholder
		ta.SetValue(s.Value)
		f.fillable = append(f.fillable, i)
		f.areas = append(f.areas, ta)
	}

	f.inputs = make([]textinput.Model, designFixedFields+2*len(f.template.Sections))
	f.valueAreas = make([]textarea.Model, len(f.template.Sections))

	title := textinput.New()
	title.CharLimit = 100
	title.Width = 40
	title.SetValue(f.template.Title)
	f.inputs[0] = title

	desc := textinput.New()
	desc.CharLimit = 255
	desc.Width = 60
	desc.SetValue(f.template.Description)
	f.inputs[1] = desc

	for i, s := range f.template.Sections {
		label := textinput.New()
		label.CharLimit = 100
		label.Width = 40
		label.SetValue(s.Label)
		f.inputs[designFixedFields+2*i] = label

		placeholder := textinput.New()
		placeholder.CharLimit = 200
		placeholder.Width = 60
		placeholder.SetValue(s.Placeholder)
		f.inputs[designFixedFields+2*i+1] = placeholder

		value := textarea.New()
		value.CharLimit = 0
		value.ShowLineNumbers = false
		value.SetWidth(f.width)
		value.SetHeight(2)
		value.SetValue(s.Value)
		f.valueAreas[i] = value
	}

	if f.focused >= f.fieldCount() {
		f.focused = 0
	}
	f.applyFocus()
}

func (f *EditorForm) fieldCount() int {
	if f.mode == ModeUsage {
		return len(f.areas)
	}
	return designFixedFields + designSectionStride*len(f.template.Sections)
}

// designOffset returns the field slot within the focused section:
// 0 label, 1 placeholder, 2 value. Negative for title/description.
func (f *EditorForm) designOffset() int {
	if f.focused < designFixedFields {
		return -1
	}
	return (f.focused - designFixedFields) % designSectionStride
}

// designInputIndex maps the focus position to its slot in f.inputs,
// or -1 when the focus is on a value textarea
func (f *EditorForm) designInputIndex() int {
	if f.focused < designFixedFields {
		return f.focused
	}
	section := (f.focused - designFixedFields) / designSectionStride
	switch f.designOffset() {
	case 0:
		return designFixedFields + 2*section
	case 1:
		return designFixedFields + 2*section + 1
	default:
		return -1
	}
}

func (f *EditorForm) applyFocus() {
	for i := range f.areas {
		f.areas[i].Blur()
	}
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	for i := range f.valueAreas {
		f.valueAreas[i].Blur()
	}

	if f.mode == ModeUsage {
		if f.focused < len(f.areas) {
			f.areas[f.focused].Focus()
		}
		return
	}

	if idx := f.designInputIndex(); idx >= 0 {
		f.inputs[idx].Focus()
	} else if i := f.currentSection(); i >= 0 && i < len(f.valueAreas) {
		f.valueAreas[i].Focus()
	}
}

// Template returns the current working copy
func (f *EditorForm) Template() models.Template {
	return f.template.Clone()
}

// Mode returns the current editor mode
func (f *EditorForm) Mode() EditorMode {
	return f.mode
}

// ToggleMode switches between usage and design editing
func (f *EditorForm) ToggleMode() {
	if f.mode == ModeUsage {
		f.mode = ModeDesign
	} else {
		f.mode = ModeUsage
	}
	f.focused = 0
	f.applyFocus()
}

// Dirty reports whether there are unsaved edits
func (f *EditorForm) Dirty() bool {
	return f.dirty
}

// MarkSaved clears the dirty flag after a successful save
func (f *EditorForm) MarkSaved() {
	f.dirty = false
}

// Resize adjusts input widths to the window
func (f *EditorForm) Resize(width, height int) {
	if width < 20 {
		width = 20
	}
	f.width = width
	for i := range f.areas {
		f.areas[i].SetWidth(width)
	}
	for i := range f.valueAreas {
		f.valueAreas[i].SetWidth(width)
	}
}

// currentSection returns the section index the focus is on, or -1 for
// the title and description rows
func (f *EditorForm) currentSection() int {
	if f.mode == ModeUsage {
		if f.focused < len(f.fillable) {
			return f.fillable[f.focused]
		}
		return -1
	}
	if f.focused < designFixedFields {
		return -1
	}
	return (f.focused - designFixedFields) / designSectionStride
}

func (f *EditorForm) nextField() {
	if n := f.fieldCount(); n > 0 {
		f.focused = (f.focused + 1) % n
	}
	f.applyFocus()
}

func (f *EditorForm) prevField() {
	if n := f.fieldCount(); n > 0 {
		f.focused = (f.focused - 1 + n) % n
	}
	f.applyFocus()
}

// AddSection appends a new variable section and moves focus to it
func (f *EditorForm) AddSection() {
	f.template = editor.AddSection(f.template)
	f.dirty = true
	f.rebuild()
	if f.mode == ModeDesign {
		f.focused = designFixedFields + designSectionStride*(len(f.template.Sections)-1)
	} else if len(f.areas) > 0 {
		f.focused = len(f.areas) - 1
	}
	f.applyFocus()
}

// RemoveSection deletes the focused section
func (f *EditorForm) RemoveSection() {
	i := f.currentSection()
	if i < 0 {
		return
	}
	updated, err := editor.RemoveSection(f.template, i)
	if err != nil {
		return
	}
	f.template = updated
	f.dirty = true
	f.focused = 0
	f.rebuild()
}

// MoveSection shifts the focused section up or down
func (f *EditorForm) MoveSection(dir editor.Direction) {
	i := f.currentSection()
	if i < 0 {
		return
	}
	updated, err := editor.MoveSection(f.template, i, dir)
	if err != nil {
		return
	}
	f.template = updated
	f.dirty = true

	// Follow the section to its new position
	j := i - 1
	if dir == editor.Down {
		j = i + 1
	}
	if j >= 0 && j < len(f.template.Sections) && f.mode == ModeDesign {
		offset := f.focused - (designFixedFields + designSectionStride*i)
		f.focused = designFixedFields + designSectionStride*j + offset
	}
	f.rebuild()
}

// ToggleKind flips the focused section between static and input
func (f *EditorForm) ToggleKind() {
	i := f.currentSection()
	if i < 0 {
		return
	}
	updated, err := editor.ToggleKind(f.template, i)
	if err != nil {
		return
	}
	f.template = updated
	f.dirty = true
	f.rebuild()
}

// Update routes key input to the focused field
func (f *EditorForm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	inValueArea := f.mode == ModeDesign && f.designOffset() == designSectionStride-1

	switch keyMsg.String() {
	case "tab":
		f.nextField()
		return nil
	case "shift+tab":
		f.prevField()
		return nil
	case "enter", "down":
		// Single-line design fields treat enter/down as navigation;
		// textareas take both keys themselves.
		if f.mode == ModeDesign && !inValueArea {
			f.nextField()
			return nil
		}
	case "up":
		if f.mode == ModeDesign && !inValueArea {
			f.prevField()
			return nil
		}
	}

	if f.mode == ModeUsage {
		if f.focused >= len(f.areas) {
			return nil
		}
		var cmd tea.Cmd
		f.areas[f.focused], cmd = f.areas[f.focused].Update(msg)
		f.syncUsageValue()
		return cmd
	}

	if inValueArea {
		i := f.currentSection()
		if i < 0 || i >= len(f.valueAreas) {
			return nil
		}
		var cmd tea.Cmd
		f.valueAreas[i], cmd = f.valueAreas[i].Update(msg)
		f.syncDesignValue(i)
		return cmd
	}

	idx := f.designInputIndex()
	if idx < 0 || idx >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[idx], cmd = f.inputs[idx].Update(msg)
	f.syncDesignField(idx)
	return cmd
}

func (f *EditorForm) syncUsageValue() {
	i := f.currentSection()
	if i < 0 {
		return
	}
	value := f.areas[f.focused].Value()
	if f.template.Sections[i].Value == value {
		return
	}
	updated, err := editor.UpdateSectionField(f.template, i, editor.FieldValue, value)
	if err != nil {
		return
	}
	f.template = updated
	f.dirty = true
}

func (f *EditorForm) syncDesignField(idx int) {
	value := f.inputs[idx].Value()

	switch idx {
	case 0:
		if f.template.Title != value {
			f.template.Title = value
			f.dirty = true
		}
		return
	case 1:
		if f.template.Description != value {
			f.template.Description = value
			f.dirty = true
		}
		return
	}

	i := f.currentSection()
	if i < 0 {
		return
	}
	field := editor.FieldLabel
	old := f.template.Sections[i].Label
	if f.designOffset() == 1 {
		field = editor.FieldPlaceholder
		old = f.template.Sections[i].Placeholder
	}
	if old == value {
		return
	}
	updated, err := editor.UpdateSectionField(f.template, i, field, value)
	if err != nil {
		return
	}
	f.template = updated
	f.dirty = true
}

func (f *EditorForm) syncDesignValue(i int) {
	value := f.valueAreas[i].Value()
	if f.template.Sections[i].Value == value {
		return
	}
	updated, err := editor.UpdateSectionField(f.template, i, editor.FieldValue, value)
	if err != nil {
		return
	}
	f.template = updated
	f.dirty = true
}

// View renders the form for the current mode
func (f *EditorForm) View() string {
	if f.mode == ModeUsage {
		return f.viewUsage()
	}
	return f.viewDesign()
}

func (f *EditorForm) viewUsage() string {
	var b strings.Builder

	if len(f.fillable) == 0 {
		b.WriteString(styleMuted().Render("This template has no variables to fill."))
		b.WriteString("\n")
	}

	area := 0
	for _, s := range f.template.Sections {
		if s.Kind == models.KindStatic {
			b.WriteString(styleMuted().Render(truncate(s.Value, f.width)))
			b.WriteString("\n\n")
			continue
		}

		label := styleFieldLabel().Render(s.Label)
		if area == f.focused {
			label = styleSelected().Render("▸ " + s.Label)
		}
		b.WriteString(label)
		if len(s.Options) > 0 {
			b.WriteString(styleMuted().Render("  (one of: " + strings.Join(s.Options, ", ") + ")"))
		}
		b.WriteString("\n")
		b.WriteString(f.areas[area].View())
		b.WriteString("\n\n")
		area++
	}

	return b.String()
}

func (f *EditorForm) viewDesign() string {
	var b strings.Builder

	b.WriteString(f.designRow(0, "Title", f.inputs[0].View()))
	b.WriteString(f.designRow(1, "Description", f.inputs[1].View()))
	b.WriteString("\n")

	for i, s := range f.template.Sections {
		header := fmt.Sprintf("Section %d · %s", i+1, s.Kind)
		if f.currentSection() == i {
			header = "▸ " + header
			b.WriteString(styleSelected().Render(header))
		} else {
			b.WriteString(styleSubtitle().Render(header))
		}
		b.WriteString("\n")
		base := designFixedFields + designSectionStride*i
		b.WriteString(f.designRow(base, "Label", f.inputs[designFixedFields+2*i].View()))
		b.WriteString(f.designRow(base+1, "Placeholder", f.inputs[designFixedFields+2*i+1].View()))

		valueLabel := styleFieldLabel().Render("Value")
		if f.focused == base+2 {
			valueLabel = styleSelected().Render("Value")
		}
		b.WriteString("  " + valueLabel + "\n")
		b.WriteString(f.valueAreas[i].View())
		b.WriteString("\n\n")
	}

	return b.String()
}

func (f *EditorForm) designRow(idx int, label, input string) string {
	rendered := styleFieldLabel().Render(fmt.Sprintf("%-12s", label))
	if idx == f.focused {
		rendered = styleSelected().Render(fmt.Sprintf("%-12s", label))
	}
	return fmt.Sprintf("  %s %s\n", rendered, input)
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if max > 3 && len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
