package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// FramesKeyMap defines keybindings for the frames demo.
type FramesKeyMap struct {
	Reset  key.Binding
	Anchor key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k FramesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Anchor, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k FramesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reset, k.Anchor},
		{k.Help, k.Quit},
	}
}

// DefaultFramesKeyMap returns the default demo keybindings.
func DefaultFramesKeyMap() FramesKeyMap {
	return FramesKeyMap{
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset positions"),
		),
		Anchor: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle anchoring"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewHelp creates a themed help model.
func NewHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = theme.Subtle
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc
	h.Styles.FullSeparator = theme.Subtle
	h.Styles.Ellipsis = lipgloss.NewStyle().Foreground(theme.Muted)
	return h
}
