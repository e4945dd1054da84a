package styles

import "github.com/charmbracelet/lipgloss"

// Dark mode optimized, semantic colors
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success, YES side
	Warning = lipgloss.Color("#F59E0B") // amber-500 - warnings, pending
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, NO side
	Info    = lipgloss.Color("#3B82F6") // blue-500 - info, identifiers
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB") // gray-50 - main text
	TextSecondary = lipgloss.Color("#9CA3AF") // gray-400 - descriptions

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected items
	BgBorder    = lipgloss.Color("#374151") // gray-700 - borders
)

// Semantic color aliases for clarity
var (
	// Row status colors
	ColorOpen      = Success // open orders and markets
	ColorPartial   = Warning // partially filled orders
	ColorFilled    = Info    // filled orders
	ColorCancelled = Muted   // cancelled orders
	ColorPending   = Warning // actions awaiting review
	ColorApproved  = Success // approved actions
	ColorRejected  = Error   // rejected actions
	ColorExpired   = Muted   // expired actions
	ColorResolved  = Info    // resolved markets

	// Market sides
	ColorYes = Success
	ColorNo  = Error

	// Identifiers and diffs
	ColorID         = Info
	ColorDiffAdd    = Success
	ColorDiffRemove = Error
)
