// Package ui implements the interactive terminal interface: a goal
// picker, a filterable template list, and a template editor with
// usage and design modes.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/promptmaster/promptmaster/internal/clipboard"
	"github.com/promptmaster/promptmaster/internal/editor"
	apperrors "github.com/promptmaster/promptmaster/internal/errors"
	"github.com/promptmaster/promptmaster/internal/models"
	"github.com/promptmaster/promptmaster/internal/renderer"
	"github.com/promptmaster/promptmaster/internal/service"
)

// createGlamourRenderer picks a glamour style matching the terminal
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()
	var styleOption glamour.TermRendererOption
	if profile == termenv.TrueColor || profile == termenv.ANSI256 {
		if lipgloss.HasDarkBackground() {
			styleOption = glamour.WithStandardStyle("dark")
		} else {
			styleOption = glamour.WithStandardStyle("light")
		}
	} else {
		styleOption = glamour.WithAutoStyle()
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewGoals ViewMode = iota
	ViewList
	ViewEditor
	ViewPreview
)

// loadCompleteMsg carries the template list for the current goal
type loadCompleteMsg struct {
	templates []models.Template
	err       error
}

// loadTemplatesCmd loads the merged template list, optionally filtered
// by goal
func loadTemplatesCmd(svc *service.Service, goal *models.Goal) tea.Cmd {
	return func() tea.Msg {
		var templates []models.Template
		var err error
		if goal != nil {
			templates, err = svc.FilterByGoal(*goal)
		} else {
			templates, err = svc.ListTemplates()
		}
		return loadCompleteMsg{templates: templates, err: err}
	}
}

// tickMsg clears the transient status message
type tickMsg time.Time

// statusVisible is how long transient status messages stay on screen
const statusVisible = 2 * time.Second

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusVisible, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Quit       key.Binding
	New        key.Binding
	Delete     key.Binding
	Copy       key.Binding
	Preview    key.Binding
	Save       key.Binding
	ToggleMode key.Binding
	AddSect    key.Binding
	RemoveSect key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	ToggleKind key.Binding
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new template"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete custom"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("Ctrl+y", "copy prompt"),
	),
	Preview: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("Ctrl+p", "preview"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "save"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("Ctrl+e", "design mode"),
	),
	AddSect: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("Ctrl+a", "add section"),
	),
	RemoveSect: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("Ctrl+x", "remove section"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("Ctrl+k", "move section up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("ctrl+j"),
		key.WithHelp("Ctrl+j", "move section down"),
	),
	ToggleKind: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("Ctrl+t", "toggle kind"),
	),
}

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode
	keys     KeyMap

	// Goal picker
	goalCursor   int
	selectedGoal *models.Goal // nil means all goals

	// Template list
	templateList list.Model
	templates    []models.Template
	loading      bool

	// Editor
	form *EditorForm

	// Preview
	viewport        viewport.Model
	glamourRenderer *glamour.TermRenderer

	width  int
	height int

	statusMsg  string
	err        error
	errHandler *apperrors.TUIErrorHandler
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	gr, err := createGlamourRenderer(60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	return &Model{
		service:         svc,
		viewMode:        ViewGoals,
		keys:            keys,
		templateList:    l,
		viewport:        vp,
		glamourRenderer: gr,
		loading:         true,
		errHandler:      apperrors.NewTUIErrorHandler(false),
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return loadTemplatesCmd(m.service, nil)
}

// goalRows lists the picker entries: all templates plus each goal
func goalRows() []string {
	rows := []string{"All Templates"}
	for _, g := range models.AllGoals() {
		rows = append(rows, string(g))
	}
	return rows
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.statusMsg = ""
		return m, nil

	case loadCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.templates = msg.templates
		items := make([]list.Item, len(m.templates))
		for i, t := range m.templates {
			items[i] = templateItem{template: t}
		}
		m.templateList.SetItems(items)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.templateList.SetSize(msg.Width-4, msg.Height-6)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		if m.form != nil {
			m.form.Resize(msg.Width-8, msg.Height-8)
		}
		if gr, err := createGlamourRenderer(min(msg.Width-8, 100)); err == nil {
			m.glamourRenderer = gr
		}
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ViewGoals:
			return m.updateGoals(msg)
		case ViewList:
			return m.updateList(msg)
		case ViewEditor:
			return m.updateEditor(msg)
		case ViewPreview:
			return m.updatePreview(msg)
		}
	}

	return m, nil
}

func (m Model) updateGoals(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := goalRows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.goalCursor > 0 {
			m.goalCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.goalCursor < len(rows)-1 {
			m.goalCursor++
		}
	case key.Matches(msg, m.keys.New):
		return m.openNewTemplate()
	case key.Matches(msg, m.keys.Enter):
		if m.goalCursor == 0 {
			m.selectedGoal = nil
		} else {
			goal := models.AllGoals()[m.goalCursor-1]
			m.selectedGoal = &goal
		}
		m.viewMode = ViewList
		m.loading = true
		m.templateList.ResetFilter()
		return m, loadTemplatesCmd(m.service, m.selectedGoal)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter input is open, it owns the keyboard
	if m.templateList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewGoals
		return m, nil
	case key.Matches(msg, m.keys.New):
		return m.openNewTemplate()
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.templateList.SelectedItem().(templateItem); ok {
			m.form = NewEditorForm(item.template, ModeUsage)
			m.form.Resize(m.width-8, m.height-8)
			m.viewMode = ViewEditor
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		item, ok := m.templateList.SelectedItem().(templateItem)
		if !ok {
			return m, nil
		}
		if !item.template.IsCustom {
			m.statusMsg = "Built-in templates cannot be deleted"
			return m, clearStatusCmd()
		}
		if err := m.service.DeleteTemplate(item.template.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted %q", item.template.Title)
		return m, tea.Batch(clearStatusCmd(), loadTemplatesCmd(m.service, m.selectedGoal))
	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.templateList.SelectedItem().(templateItem); ok {
			return m.copyTemplate(item.template)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.form = nil
		m.viewMode = ViewList
		m.loading = true
		return m, loadTemplatesCmd(m.service, m.selectedGoal)
	case key.Matches(msg, m.keys.Copy):
		return m.copyTemplate(m.form.Template())
	case key.Matches(msg, m.keys.Save):
		if err := m.service.SaveTemplate(m.form.Template()); err != nil {
			m.err = err
			return m, nil
		}
		m.form.MarkSaved()
		m.statusMsg = "Template saved"
		return m, clearStatusCmd()
	case key.Matches(msg, m.keys.Preview):
		md := renderer.RenderMarkdown(m.form.Template())
		rendered, err := m.glamourRenderer.Render(md)
		if err != nil {
			rendered = md
		}
		m.viewport.SetContent(rendered)
		m.viewport.GotoTop()
		m.viewMode = ViewPreview
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		m.form.ToggleMode()
		return m, nil
	case key.Matches(msg, m.keys.AddSect):
		if m.form.Mode() == ModeDesign {
			m.form.AddSection()
		}
		return m, nil
	case key.Matches(msg, m.keys.RemoveSect):
		if m.form.Mode() == ModeDesign {
			m.form.RemoveSection()
		}
		return m, nil
	case key.Matches(msg, m.keys.MoveUp):
		if m.form.Mode() == ModeDesign {
			m.form.MoveSection(editor.Up)
		}
		return m, nil
	case key.Matches(msg, m.keys.MoveDown):
		if m.form.Mode() == ModeDesign {
			m.form.MoveSection(editor.Down)
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleKind):
		if m.form.Mode() == ModeDesign {
			m.form.ToggleKind()
		}
		return m, nil
	}

	return m, m.form.Update(msg)
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Preview):
		m.viewMode = ViewEditor
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Copy):
		return m.copyTemplate(m.form.Template())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// openNewTemplate starts the design editor on a blank custom template
func (m Model) openNewTemplate() (tea.Model, tea.Cmd) {
	goal := models.GoalGeneral
	if m.selectedGoal != nil {
		goal = *m.selectedGoal
	}
	m.form = NewEditorForm(m.service.NewTemplate(goal), ModeDesign)
	m.form.Resize(m.width-8, m.height-8)
	m.viewMode = ViewEditor
	return m, nil
}

// copyTemplate assembles and copies a prompt, setting the transient
// status. A later copy supersedes the running timer naturally: the
// stale tick clears the message a moment early at worst.
func (m Model) copyTemplate(t models.Template) (tea.Model, tea.Cmd) {
	statusMsg, err := clipboard.CopyWithFallback(renderer.Assemble(t))
	if err != nil {
		m.statusMsg = apperrors.GetAppError(err).Message
	} else {
		m.statusMsg = statusMsg
	}
	return m, clearStatusCmd()
}

// View renders the current view
func (m Model) View() string {
	var content string
	switch m.viewMode {
	case ViewGoals:
		content = m.viewGoals()
	case ViewList:
		content = m.viewList()
	case ViewEditor:
		content = m.viewEditor()
	case ViewPreview:
		content = m.viewPreview()
	}

	footer := ""
	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.errHandler.ErrorColor(m.err))).
			Bold(true)
		footer = errStyle.Render(m.errHandler.FormatError(m.err))
	} else if m.statusMsg != "" {
		footer = styleStatus().Render(m.statusMsg)
	}
	if footer != "" {
		content += "\n" + footer
	}
	return content
}

func (m Model) viewGoals() string {
	s := styleTitle().Render("PromptMaster") + "\n\n"
	s += styleSubtitle().Render("What do you want to do?") + "\n\n"

	for i, row := range goalRows() {
		cursor := "  "
		line := row
		if i == m.goalCursor {
			cursor = styleSelected().Render("▸ ")
			line = styleSelected().Render(row)
		}
		s += cursor + line + "\n"
	}

	s += "\n" + styleMuted().Render("Enter select · n new template · q quit")
	return s
}

func (m Model) viewList() string {
	title := "All Templates"
	if m.selectedGoal != nil {
		title = string(*m.selectedGoal)
	}
	s := styleTitle().Render(title) + "\n"

	if m.loading {
		s += styleMuted().Render("Loading templates...") + "\n"
		return s
	}

	s += m.templateList.View() + "\n"
	s += styleMuted().Render("Enter open · / filter · Ctrl+y copy · n new · d delete · Esc back")
	return s
}

func (m Model) viewEditor() string {
	t := m.form.Template()

	title := t.Title
	if m.form.Dirty() {
		title += " *"
	}
	s := styleTitle().Render(title) + "\n"

	var hint string
	if m.form.Mode() == ModeUsage {
		s += styleMuted().Render("Usage mode · fill the variables, then copy") + "\n\n"
		hint = "Tab next field · Ctrl+y copy · Ctrl+p preview · Ctrl+s save · Ctrl+e design · Esc back"
	} else {
		s += styleMuted().Render("Design mode · edit the template structure") + "\n\n"
		hint = "Tab next field · Ctrl+a add · Ctrl+x remove · Ctrl+k/j move · Ctrl+t kind · Ctrl+s save · Ctrl+e usage · Esc back"
	}

	s += m.form.View()
	s += styleMuted().Render(hint)
	return s
}

func (m Model) viewPreview() string {
	s := styleTitle().Render("Preview") + "\n"
	s += styleBox().Render(m.viewport.View()) + "\n"
	s += styleMuted().Render("↑/↓ scroll · Ctrl+y copy · Esc back")
	return s
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
