package output

import "github.com/charmbracelet/lipgloss"

// Color constants using the ANSI 256-color palette. These provide a
// consistent color scheme across the formatters.
const (
	// ColorPrimary is used for primary elements like headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorSuccess is used for executed changes (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorWarning is used for skipped or dry-run changes (orange/yellow).
	ColorWarning = lipgloss.Color("214")

	// ColorDanger is used for failed changes (red).
	ColorDanger = lipgloss.Color("196")

	// ColorMuted is used for less important or secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

// Box styles for containing grouped content.
var (
	// HeaderBox is the style for the header section with run info.
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	// FooterBox is the style for the footer section with summary totals.
	FooterBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			MarginTop(1)
)

// Text styles for various content types.
var (
	// TitleStyle is used for major section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is used for field labels (e.g., "Targets:").
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// SuccessStyle is used for executed change markers.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// WarningStyle is used for skipped change markers.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// ErrorStyle is used for failed change markers.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// MutedStyle is used for less important text.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
