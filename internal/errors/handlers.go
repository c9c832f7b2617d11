package errors

import (
	"fmt"
	"log"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler formats errors for terminal output
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{Verbose: verbose}
}

// HandleError logs the error when verbose and returns a display version
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	if h.Verbose {
		log.Printf("[%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			log.Printf("Caused by: %v", appErr.Cause)
		}
	}

	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("CRITICAL: %s", appErr.Message)
	case SeverityError:
		return fmt.Sprintf("ERROR: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("WARNING: %s", appErr.Message)
	case SeverityInfo:
		return fmt.Sprintf("INFO: %s", appErr.Message)
	default:
		return appErr.Message
	}
}

// TUIErrorHandler formats errors for bubbletea status display
type TUIErrorHandler struct {
	ShowDetails bool
}

// NewTUIErrorHandler creates a new TUI error handler
func NewTUIErrorHandler(showDetails bool) *TUIErrorHandler {
	return &TUIErrorHandler{ShowDetails: showDetails}
}

// HandleError returns the structured error for the model to display
func (h *TUIErrorHandler) HandleError(err error) error {
	return GetAppError(err)
}

// FormatError formats an error for TUI display
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s\nDetails: %s", message, appErr.Details)
	}

	return message
}

// ErrorColor returns a hex color for TUI styling based on severity
func (h *TUIErrorHandler) ErrorColor(err error) string {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return "#ff0000"
	case SeverityError:
		return "#ff6b6b"
	case SeverityWarning:
		return "#feca57"
	case SeverityInfo:
		return "#48cae4"
	default:
		return "#ff6b6b"
	}
}
