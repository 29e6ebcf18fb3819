package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/ccqe/internal/classifier"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Label styles
	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style

	// Message styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Rule      lipgloss.Style
	Separator lipgloss.Style
	Quote     lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconHigh    string
	IconMedium  string
	IconLow     string
	IconWarning string
	IconSuccess string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.High = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))   // Green
		s.Medium = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Low = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red

		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))    // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Rule = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Quote = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")) // Gray italic

		s.IconHigh = "✓"    // check mark
		s.IconMedium = "○"  // circle
		s.IconLow = "✗"     // ballot x
		s.IconWarning = "⚠" // warning sign
		s.IconSuccess = "✓" // check mark
	} else {
		// No-op styles for non-TTY (plain text output)
		s.High = lipgloss.NewStyle()
		s.Medium = lipgloss.NewStyle()
		s.Low = lipgloss.NewStyle()

		s.Error = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Rule = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()
		s.Quote = lipgloss.NewStyle()

		// ASCII fallback icons
		s.IconHigh = "HIGH:"
		s.IconMedium = "MEDIUM:"
		s.IconLow = "LOW:"
		s.IconWarning = "WARN:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Label returns the style and icon for a quality label
func (s *Styles) Label(l classifier.Label) (lipgloss.Style, string) {
	switch l {
	case classifier.High:
		return s.High, s.IconHigh
	case classifier.Medium:
		return s.Medium, s.IconMedium
	default:
		return s.Low, s.IconLow
	}
}
