package models

import "strings"

// SectionKind identifies how a section behaves when the template is used
type SectionKind string

const (
	// KindStatic is fixed text emitted verbatim into the assembled prompt
	KindStatic SectionKind = "static"
	// KindInput is a value the user fills in before copying
	KindInput SectionKind = "input"
	// KindSelect is a legacy variant with a fixed option list. Older
	// saved templates may still carry it; it is readable but the editor
	// does not create new sections of this kind.
	KindSelect SectionKind = "select"
)

// Goal is a fixed topical category used to group and filter templates
type Goal string

const (
	GoalGeneral  Goal = "General"
	GoalLearning Goal = "Learning"
	GoalCoding   Goal = "Coding"
	GoalCreative Goal = "Creative Writing"
	GoalBusiness Goal = "Business"
	GoalAcademic Goal = "Academic"
)

// AllGoals lists every goal in display order
func AllGoals() []Goal {
	return []Goal{GoalGeneral, GoalLearning, GoalCoding, GoalCreative, GoalBusiness, GoalAcademic}
}

// ValidGoal reports whether g is one of the known goals
func ValidGoal(g Goal) bool {
	for _, known := range AllGoals() {
		if g == known {
			return true
		}
	}
	return false
}

// Section is one labeled field inside a template. Ordering is the
// slice position; there is no explicit sequence number.
type Section struct {
	ID          string      `json:"id" yaml:"id"`
	Kind        SectionKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label       string      `json:"label" yaml:"label"`
	Value       string      `json:"value" yaml:"value"`
	Placeholder string      `json:"placeholder" yaml:"placeholder"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
}

// Template is a named, ordered collection of sections under one goal
type Template struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Goal        Goal      `json:"goal" yaml:"goal"`
	Description string    `json:"description" yaml:"description"`
	Sections    []Section `json:"sections" yaml:"sections"`
	// IsCustom marks user-authored templates. Set by the store on every
	// save; built-ins never carry it.
	IsCustom bool `json:"isCustom,omitempty" yaml:"isCustom,omitempty"`
}

// DefaultTitle is assigned to freshly created templates
const DefaultTitle = "Untitled Prompt"

// Normalize applies legacy defaults in place: sections saved without an
// explicit kind are treated as static text. Applied once at the
// deserialization boundary, not scattered through business logic.
func (t *Template) Normalize() {
	for i := range t.Sections {
		if t.Sections[i].Kind == "" {
			t.Sections[i].Kind = KindStatic
		}
	}
	if t.Goal == "" {
		t.Goal = GoalGeneral
	}
}

// Clone returns a deep copy. Sections and option lists are copied so
// mutating the clone never touches the original.
func (t Template) Clone() Template {
	out := t
	out.Sections = make([]Section, len(t.Sections))
	for i, s := range t.Sections {
		cs := s
		if s.Options != nil {
			cs.Options = append([]string(nil), s.Options...)
		}
		out.Sections[i] = cs
	}
	return out
}

// Implement list.Item for the bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return cleanString(t.Title)
}

// ListTitle is the primary line shown in the template list; falls back
// to the ID when a template has no title.
func (t Template) ListTitle() string {
	if t.Title != "" {
		return cleanString(t.Title)
	}
	return cleanString(t.ID)
}

// ListDescription is the secondary line shown under the title
func (t Template) ListDescription() string {
	var parts []string

	if t.Description != "" {
		desc := cleanString(t.Description)
		maxDescLength := 60
		if len(desc) > maxDescLength {
			desc = desc[:maxDescLength-3] + "..."
		}
		parts = append(parts, desc)
	}

	if t.Goal != "" {
		parts = append(parts, string(t.Goal))
	}

	if t.IsCustom {
		parts = append(parts, "custom")
	}

	result := strings.Join(parts, " • ")

	// Final truncation so long descriptions don't overflow the list row
	maxTotalLength := 100
	if len(result) > maxTotalLength {
		result = result[:maxTotalLength-3] + "..."
	}

	return cleanString(result)
}

// cleanString removes control characters that could break list rendering
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	cleaned := ""
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			cleaned += " "
		} else if r >= 32 && r != 127 {
			cleaned += string(r)
		}
	}

	for cleaned != strings.ReplaceAll(cleaned, "  ", " ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
