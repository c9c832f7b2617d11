package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptmaster/promptmaster/internal/cli"
	apperrors "github.com/promptmaster/promptmaster/internal/errors"
	"github.com/promptmaster/promptmaster/internal/service"
	"github.com/promptmaster/promptmaster/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`promptmaster - Terminal-based prompt template composer

USAGE:
    promptmaster [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --verbose       Log error details

COMMANDS:
    (no command)       Start interactive TUI mode
    list, ls           List templates
    goals              List template goals
    get, show <id>     Show a specific template
    copy <id>          Copy the assembled prompt to the clipboard
    render <id>        Print the assembled prompt
    create, new        Create a blank custom template
    edit <id>          Update a template's title, description, or goal
    delete, rm <id>    Delete a custom template
    search <query>     Fuzzy-search templates
    export <file>      Export custom templates to JSON
    import <file>      Import custom templates from JSON
    help               Show CLI command help

EXAMPLES:
    promptmaster                          # Start interactive mode
    promptmaster list --goal Coding       # List coding templates
    promptmaster copy email-writer        # Copy assembled email prompt
    promptmaster render code-refactor --json
    promptmaster new --goal Business --title "Outreach"
    promptmaster export backup.json       # Back up custom templates

STORAGE:
    Default directory: ~/.promptmaster
    Override with: PROMPTMASTER_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var showHelp bool
	var verbose bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&verbose, "verbose", false, "Log error details")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("promptmaster version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	// CLI mode - execute command and exit
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		errHandler := apperrors.NewCLIErrorHandler(verbose)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintln(os.Stderr, errHandler.HandleError(err))
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
