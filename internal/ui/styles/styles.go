package styles

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolBusy    = "…"
	SymbolArrow   = "→"
	SymbolSortAsc = "↑"
	SymbolSortDsc = "↓"
)

var noColorOverride bool

// SetNoColor forces colors off regardless of environment.
func SetNoColor(v bool) {
	noColorOverride = v
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return noColorOverride || os.Getenv("NO_COLOR") != "" || os.Getenv("MSTCTL_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no animations, no spinner, simplified output
func IsAccessible() bool {
	return os.Getenv("MSTCTL_ACCESSIBLE") == "1" || os.Getenv("MSTCTL_ACCESSIBLE") == "true"
}

// Base text styles
var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Foreground(Muted)
)

// Semantic styles - use these instead of raw colors
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	IDStyle  = lipgloss.NewStyle().Foreground(ColorID)
	YesStyle = lipgloss.NewStyle().Foreground(ColorYes)
	NoStyle  = lipgloss.NewStyle().Foreground(ColorNo)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)

	// Help bar
	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
	HelpValue = lipgloss.NewStyle().Foreground(Muted)

	// Diff display
	DiffAddLine    = lipgloss.NewStyle().Foreground(ColorDiffAdd)
	DiffRemoveLine = lipgloss.NewStyle().Foreground(ColorDiffRemove)
)

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// ID formats an entity identifier.
func ID(id string) string {
	return render(IDStyle, id)
}

// Side formats a YES/NO market side.
func Side(side string) string {
	switch strings.ToUpper(side) {
	case "YES":
		return render(YesStyle, side)
	case "NO":
		return render(NoStyle, side)
	default:
		return side
	}
}

// Status colors a row status (order, market, or pending-action) by its
// lifecycle meaning.
func Status(status string) string {
	switch status {
	case "open":
		return render(SuccessStyle, status)
	case "partial", "pending", "closed":
		return render(WarningStyle, status)
	case "filled", "resolved", "approved":
		return render(InfoStyle, status)
	case "cancelled", "expired":
		return render(MutedStyle, status)
	case "rejected":
		return render(ErrorStyle, status)
	default:
		return status
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return render(Bold, title)
}

// HelpLine formats a help line (key description)
func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", render(HelpKey, key), render(MutedStyle, description))
}

// ═══════════════════════════════════════════════════════════════════════════
// Color functions - simple string coloring
// ═══════════════════════════════════════════════════════════════════════════

func Green(s string) string       { return render(SuccessStyle, s) }
func Red(s string) string         { return render(ErrorStyle, s) }
func Yellow(s string) string      { return render(WarningStyle, s) }
func Cyan(s string) string        { return render(InfoStyle, s) }
func Mute(s string) string        { return render(MutedStyle, s) }
func SuccessText(s string) string { return render(SuccessStyle, s) }
func ErrorText(s string) string   { return render(ErrorStyle, s) }
func WarningText(s string) string { return render(WarningStyle, s) }

// Printf-style color functions
func Mutef(format string, a ...any) string    { return Mute(fmt.Sprintf(format, a...)) }
func Boldf(format string, a ...any) string    { return Bold.Render(fmt.Sprintf(format, a...)) }
func Errorf(format string, a ...any) string   { return ErrorText(fmt.Sprintf(format, a...)) }
func Successf(format string, a ...any) string { return SuccessText(fmt.Sprintf(format, a...)) }
func Warningf(format string, a ...any) string { return WarningText(fmt.Sprintf(format, a...)) }
