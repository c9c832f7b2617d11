// Package clipboard writes text to the system clipboard by piping it
// through the platform's clipboard utility.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	apperrors "github.com/promptmaster/promptmaster/internal/errors"
)

type tool struct {
	name string
	args []string
}

// candidates lists the clipboard writers tried in order for the
// current platform
func candidates() []tool {
	switch runtime.GOOS {
	case "darwin":
		return []tool{{name: "pbcopy"}}
	case "windows":
		return []tool{{name: "clip"}}
	default:
		return []tool{
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "wl-copy"},
		}
	}
}

// Copy writes text to the system clipboard using the first available
// utility
func Copy(text string) error {
	var lastErr error
	found := false

	for _, t := range candidates() {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		found = true

		cmd := exec.Command(t.name, t.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", t.name, err)
			continue
		}
		return nil
	}

	if !found {
		return apperrors.ClipboardError(fmt.Errorf("no clipboard utility found for %s: %s", runtime.GOOS, InstallHint()))
	}
	return apperrors.ClipboardError(lastErr)
}

// CopyWithFallback copies text and returns the status message shown
// in the UI
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		return "", err
	}
	return "Copied to clipboard!", nil
}

// Available reports whether a clipboard utility can be found in PATH
func Available() bool {
	for _, t := range candidates() {
		if _, err := exec.LookPath(t.name); err == nil {
			return true
		}
	}
	return false
}

// InstallHint names the clipboard utility to install for the current
// platform
func InstallHint() string {
	switch runtime.GOOS {
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return "install xclip, xsel, or wl-clipboard (Wayland)"
	}
}
