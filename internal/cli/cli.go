// Package cli provides the headless command-line surface over the
// template service.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/promptmaster/promptmaster/internal/clipboard"
	"github.com/promptmaster/promptmaster/internal/models"
	"github.com/promptmaster/promptmaster/internal/renderer"
	"github.com/promptmaster/promptmaster/internal/service"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "list", "ls":
		return c.listTemplates(commandArgs)
	case "goals":
		return c.listGoals()
	case "get", "show":
		return c.showTemplate(commandArgs)
	case "copy":
		return c.copyTemplate(commandArgs)
	case "render":
		return c.renderTemplate(commandArgs)
	case "create", "new":
		return c.createTemplate(commandArgs)
	case "edit":
		return c.editTemplate(commandArgs)
	case "delete", "rm":
		return c.deleteTemplate(commandArgs)
	case "search":
		return c.searchTemplates(commandArgs)
	case "export":
		return c.exportTemplates(commandArgs)
	case "import":
		return c.importTemplates(commandArgs)
	case "help":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// listTemplates lists the merged template set
func (c *CLI) listTemplates(args []string) error {
	var format string
	var goal string
	var filter string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--goal", "-g":
			if i+1 < len(args) {
				goal = args[i+1]
				i++
			}
		case "--filter":
			if i+1 < len(args) {
				filter = args[i+1]
				i++
			}
		}
	}

	var templates []models.Template
	var err error

	if goal != "" {
		templates, err = c.service.FilterByGoal(models.Goal(goal))
	} else if filter != "" {
		templates, err = c.service.FilterByTitle(filter)
	} else {
		templates, err = c.service.ListTemplates()
	}
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	return c.formatOutput(templates, format)
}

// listGoals prints the known goals in display order
func (c *CLI) listGoals() error {
	for _, g := range models.AllGoals() {
		fmt.Println(g)
	}
	return nil
}

// showTemplate displays a specific template
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a template ID")
	}

	tmpl, err := c.service.GetTemplate(args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	if len(args) > 1 && (args[1] == "--format" || args[1] == "-f") && len(args) > 2 && args[2] == "json" {
		return json.NewEncoder(os.Stdout).Encode(tmpl)
	}

	fmt.Printf("%s - %s\n", tmpl.ID, tmpl.Title)
	if tmpl.Description != "" {
		fmt.Printf("  %s\n", tmpl.Description)
	}
	fmt.Printf("  Goal: %s\n", tmpl.Goal)
	if tmpl.IsCustom {
		fmt.Println("  Custom template")
	}
	fmt.Println()
	for i, s := range tmpl.Sections {
		marker := " "
		if s.Kind == models.KindInput {
			marker = "*"
		}
		fmt.Printf("%s [%d] %s (%s)\n", marker, i, s.Label, s.Kind)
		if s.Value != "" {
			for _, line := range strings.Split(s.Value, "\n") {
				fmt.Printf("      %s\n", line)
			}
		} else if s.Placeholder != "" {
			fmt.Printf("      <%s>\n", s.Placeholder)
		}
	}
	return nil
}

// copyTemplate assembles a template and copies it to the clipboard
func (c *CLI) copyTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("copy requires a template ID")
	}

	content, err := c.renderContent(args[0], hasFlag(args[1:], "--json"))
	if err != nil {
		return err
	}

	if statusMsg, err := clipboard.CopyWithFallback(content); err != nil {
		fmt.Printf("Warning: %v\n", err)
		fmt.Println("Content rendered but not copied to clipboard.")
		fmt.Println(content)
	} else {
		fmt.Println(statusMsg)
	}
	return nil
}

// renderTemplate prints the assembled prompt to stdout
func (c *CLI) renderTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("render requires a template ID")
	}

	content, err := c.renderContent(args[0], hasFlag(args[1:], "--json"))
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}

func (c *CLI) renderContent(id string, asJSON bool) (string, error) {
	tmpl, err := c.service.GetTemplate(id)
	if err != nil {
		return "", fmt.Errorf("failed to get template: %w", err)
	}
	if asJSON {
		content, err := renderer.RenderJSON(tmpl)
		if err != nil {
			return "", fmt.Errorf("failed to render template: %w", err)
		}
		return content, nil
	}
	return renderer.Assemble(tmpl), nil
}

// createTemplate saves a new blank custom template and prints its id
func (c *CLI) createTemplate(args []string) error {
	goal := models.GoalGeneral
	title := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--goal", "-g":
			if i+1 < len(args) {
				goal = models.Goal(args[i+1])
				i++
			}
		case "--title", "-t":
			if i+1 < len(args) {
				title = args[i+1]
				i++
			}
		}
	}

	tmpl := c.service.NewTemplate(goal)
	if title != "" {
		tmpl.Title = title
	}
	if err := c.service.SaveTemplate(tmpl); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	fmt.Printf("Created template %s\n", tmpl.ID)
	return nil
}

// editTemplate updates template metadata and saves it as a custom
// template. Editing a built-in id creates a custom copy under the
// same id; the catalog entry is untouched.
func (c *CLI) editTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("edit requires a template ID")
	}

	tmpl, err := c.service.GetTemplate(args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	changed := false
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--title", "-t":
			if i+1 < len(args) {
				tmpl.Title = args[i+1]
				changed = true
				i++
			}
		case "--description", "-d":
			if i+1 < len(args) {
				tmpl.Description = args[i+1]
				changed = true
				i++
			}
		case "--goal", "-g":
			if i+1 < len(args) {
				goal := models.Goal(args[i+1])
				if !models.ValidGoal(goal) {
					return fmt.Errorf("unknown goal: %s (see 'goals')", args[i+1])
				}
				tmpl.Goal = goal
				changed = true
				i++
			}
		}
	}
	if !changed {
		return fmt.Errorf("edit requires at least one of --title, --description, --goal")
	}

	if err := c.service.SaveTemplate(tmpl); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	fmt.Printf("Updated template %s\n", tmpl.ID)
	return nil
}

// deleteTemplate removes a custom template
func (c *CLI) deleteTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete requires a template ID")
	}

	if err := c.service.DeleteTemplate(args[0]); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	fmt.Printf("Deleted template %s\n", args[0])
	return nil
}

// searchTemplates runs a fuzzy search over the merged set
func (c *CLI) searchTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}

	var format string
	var queryParts []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		default:
			queryParts = append(queryParts, args[i])
		}
	}

	templates, err := c.service.SearchTemplates(strings.Join(queryParts, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return c.formatOutput(templates, format)
}

// exportTemplates writes the custom set to a JSON file
func (c *CLI) exportTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("export requires an output file")
	}

	custom, err := c.service.ListCustomTemplates()
	if err != nil {
		return fmt.Errorf("failed to load custom templates: %w", err)
	}

	data, err := json.MarshalIndent(custom, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize templates: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Printf("Exported %d templates to %s\n", len(custom), args[0])
	return nil
}

// importTemplates merges a JSON export into the custom set
func (c *CLI) importTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires an input file")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var templates []models.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}
	for i := range templates {
		templates[i].Normalize()
	}

	if err := c.service.ImportTemplates(templates); err != nil {
		return fmt.Errorf("failed to import templates: %w", err)
	}

	fmt.Printf("Imported %d templates from %s\n", len(templates), args[0])
	return nil
}

func (c *CLI) formatOutput(templates []models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(templates)
	case "ids":
		for _, t := range templates {
			fmt.Println(t.ID)
		}
	case "table":
		fmt.Printf("%-24s %-30s %-16s %s\n", "ID", "Title", "Goal", "Source")
		fmt.Println(strings.Repeat("-", 80))
		for _, t := range templates {
			title := t.Title
			if len(title) > 30 {
				title = title[:27] + "..."
			}
			source := "built-in"
			if t.IsCustom {
				source = "custom"
			}
			fmt.Printf("%-24s %-30s %-16s %s\n", t.ID, title, t.Goal, source)
		}
	default:
		for _, t := range templates {
			fmt.Printf("%s - %s\n", t.ID, t.Title)
			if t.Description != "" {
				fmt.Printf("  %s\n", t.Description)
			}
			fmt.Printf("  Goal: %s\n", t.Goal)
			fmt.Println()
		}
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

func (c *CLI) printUsage() error {
	fmt.Println(`promptmaster - Headless CLI mode

Usage: promptmaster <command> [options]

Commands:
  list, ls              List templates (--goal <goal>, --filter <text>, --format json|ids|table)
  goals                 List template goals
  get, show <id>        Show a specific template
  copy <id>             Copy the assembled prompt to the clipboard (--json)
  render <id>           Print the assembled prompt (--json for an LLM message array)
  create, new           Create a blank custom template (--goal <goal>, --title <title>)
  edit <id>             Update a template's title, description, or goal
  delete, rm <id>       Delete a custom template
  search <query>        Fuzzy-search templates
  export <file>         Export custom templates to a JSON file
  import <file>         Import custom templates from a JSON file
  help                  Show help

Run without arguments to open the interactive interface.`)
	return nil
}
