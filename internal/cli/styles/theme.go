// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/bnema/dragframe/internal/ui/canvas"
)

// ColorPalette holds the base colors as hex strings.
type ColorPalette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
}

// Theme holds lipgloss colors and styles derived from a palette.
type Theme struct {
	// Base colors
	Background     lipgloss.Color
	Surface        lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color

	// Additional semantic colors
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	// Pre-built styles
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	StatusBar lipgloss.Style

	// Frame cell styles
	FrameBorder lipgloss.Style
	FrameActive lipgloss.Style
	FrameTitle  lipgloss.Style
	FrameText   lipgloss.Style
	FrameMuted  lipgloss.Style
}

// DefaultDarkPalette returns hardcoded dark theme colors.
func DefaultDarkPalette() ColorPalette {
	return ColorPalette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#555555",
	}
}

// NewTheme creates a Theme from the dark palette.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a ColorPalette.
func NewThemeFromPalette(p ColorPalette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		Surface:        lipgloss.Color(p.Surface),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),

		// Semantic colors (not in the palette)
		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color(p.Accent),
	}

	t.buildStyles()
	return t
}

// buildStyles creates all derived lipgloss styles.
func (t *Theme) buildStyles() {
	// Text styles
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	// Help styles
	t.HelpKey = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Surface)

	// Frame styles
	t.FrameBorder = lipgloss.NewStyle().
		Foreground(t.Border)

	t.FrameActive = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.FrameTitle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.FrameText = lipgloss.NewStyle().
		Foreground(t.Text)

	t.FrameMuted = lipgloss.NewStyle().
		Foreground(t.Muted)
}

// RoleStyle returns the lipgloss style for a canvas cell role.
func (t *Theme) RoleStyle(role canvas.Role) lipgloss.Style {
	switch role {
	case canvas.RoleBorder:
		return t.FrameBorder
	case canvas.RoleActive:
		return t.FrameActive
	case canvas.RoleTitle:
		return t.FrameTitle
	case canvas.RoleText:
		return t.FrameText
	case canvas.RoleMuted:
		return t.FrameMuted
	default:
		return lipgloss.NewStyle()
	}
}

// CellStyle returns the tcell style for a canvas cell role.
func (t *Theme) CellStyle(role canvas.Role) tcell.Style {
	base := tcell.StyleDefault
	switch role {
	case canvas.RoleBorder:
		return base.Foreground(tcell.GetColor(string(t.Border)))
	case canvas.RoleActive:
		return base.Foreground(tcell.GetColor(string(t.Accent))).Bold(true)
	case canvas.RoleTitle:
		return base.Foreground(tcell.GetColor(string(t.Text))).Bold(true)
	case canvas.RoleText:
		return base.Foreground(tcell.GetColor(string(t.Text)))
	case canvas.RoleMuted:
		return base.Foreground(tcell.GetColor(string(t.Muted)))
	default:
		return base
	}
}

// StatusCellStyle returns the tcell style of the status line.
func (t *Theme) StatusCellStyle() tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.GetColor(string(t.Muted))).
		Background(tcell.GetColor(string(t.Surface)))
}
