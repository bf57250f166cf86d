// Package style centralizes terminal styling for macprefs output.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Status indicators
const (
	ChangedIndicator = "→"
	OKIndicator      = "✓"
	ErrorIndicator   = "✗"
	WarnIndicator    = "!"
)

var (
	boldStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)

	changedStyle = pterm.NewStyle(pterm.FgYellow)
	okStyle      = pterm.NewStyle(pterm.FgGreen)
	errorStyle   = pterm.NewStyle(pterm.FgRed)
	warnStyle    = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	dryRunStyle  = pterm.NewStyle(pterm.FgCyan)
)

// AutoDetect disables colored output when stdout is not a terminal
func AutoDetect() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Bold renders s in bold
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Muted renders s dimmed
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Changed renders s in the pending-change color
func Changed(s string) string {
	return changedStyle.Sprint(s)
}

// OK renders s in the no-op/success color
func OK(s string) string {
	return okStyle.Sprint(s)
}

// Error renders s in the error color
func Error(s string) string {
	return errorStyle.Sprint(s)
}

// Warn renders s in the warning color
func Warn(s string) string {
	return warnStyle.Sprint(s)
}

// DryRun renders the dry-run marker
func DryRun(s string) string {
	return dryRunStyle.Sprint(s)
}
