// Package renderer turns a template into its output forms: the
// assembled prompt text, a JSON message array for LLM APIs, and a
// markdown document for the TUI preview.
package renderer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/promptmaster/promptmaster/internal/models"
)

// Assemble joins the section values in order with a blank line between
// them. Empty values are kept, so two adjacent empty sections still
// widen the gap; trimming is the author's job, not the assembler's.
func Assemble(t models.Template) string {
	values := make([]string, len(t.Sections))
	for i, s := range t.Sections {
		values[i] = s.Value
	}
	return strings.Join(values, "\n\n")
}

// Message represents a chat message for LLM APIs
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RenderJSON renders the assembled prompt as a single-user-message
// JSON array
func RenderJSON(t models.Template) (string, error) {
	messages := []Message{
		{Role: "user", Content: Assemble(t)},
	}

	jsonBytes, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// RenderMarkdown produces a markdown document describing the template
// and its assembled output. The TUI feeds this through glamour for
// the preview pane.
func RenderMarkdown(t models.Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, "_%s_\n\n", t.Description)
	}
	fmt.Fprintf(&b, "**Goal:** %s\n\n", t.Goal)

	fmt.Fprintf(&b, "## Assembled Prompt\n\n")
	assembled := Assemble(t)
	if strings.TrimSpace(assembled) == "" {
		b.WriteString("_(empty)_\n")
	} else {
		fmt.Fprintf(&b, "```\n%s\n```\n", assembled)
	}

	return b.String()
}
