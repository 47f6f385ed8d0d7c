// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/cli/styles"
	"github.com/bnema/dragframe/internal/logging"
	"github.com/bnema/dragframe/internal/ui/canvas"
	"github.com/bnema/dragframe/internal/ui/demo"
	"github.com/bnema/dragframe/internal/ui/input"
)

const (
	frameInterval = 16 * time.Millisecond
	statusRows    = 1
)

// ReloadMsg carries frame specs from a config reload.
type ReloadMsg struct {
	Specs []demo.FrameSpec
}

type tickMsg time.Time

// FramesModel is the Bubble Tea model for the draggable frames demo.
type FramesModel struct {
	// UI components
	help help.Model
	keys styles.FramesKeyMap

	// State
	width   int
	height  int
	ticking bool
	err     error

	// Dependencies
	ctx     context.Context
	scene   *demo.Scene
	adapter *input.TeaAdapter
	clock   port.Clock
	theme   *styles.Theme
}

// NewFramesModel creates the demo model for scene.
func NewFramesModel(ctx context.Context, theme *styles.Theme, scene *demo.Scene, clock port.Clock) FramesModel {
	if clock == nil {
		clock = port.SystemClock{}
	}
	return FramesModel{
		help:    styles.NewHelp(theme),
		keys:    styles.DefaultFramesKeyMap(),
		ctx:     ctx,
		scene:   scene,
		adapter: input.NewTeaAdapter(scene.Host(), statusRows),
		clock:   clock,
		theme:   theme,
	}
}

// ProgramOptions returns the options the model needs from tea.NewProgram.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// Init implements tea.Model.
func (m FramesModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m FramesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.err = m.scene.ResetAll(m.ctx)
		case key.Matches(msg, m.keys.Anchor):
			m.err = m.scene.ToggleAnchored(m.ctx)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case ReloadMsg:
		m.err = m.scene.ApplySpecs(m.ctx, msg.Specs)

	case tickMsg:
		m.ticking = false

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.adapter.Handle(m.ctx, msg)

	default:
		m.adapter.Handle(m.ctx, msg)
	}

	if m.err != nil {
		logging.FromContext(m.ctx).Warn().Err(m.err).Msg("demo action failed")
	}
	return m, m.scheduleTick()
}

// scheduleTick keeps redrawing while a frame is settling.
func (m *FramesModel) scheduleTick() tea.Cmd {
	if m.ticking || !m.scene.Animating(m.clock.Now()) {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View implements tea.Model.
func (m FramesModel) View() string {
	grid := m.scene.Render(m.clock.Now())

	lines := make([]string, 0, grid.Height()+statusRows)
	for y := 0; y < grid.Height(); y++ {
		var sb strings.Builder
		grid.Runs(y, func(text string, role canvas.Role) {
			sb.WriteString(m.theme.RoleStyle(role).Render(text))
		})
		lines = append(lines, sb.String())
	}

	footer := strings.Split(m.footer(), "\n")
	if extra := len(footer) - statusRows; extra > 0 && extra < len(lines) {
		lines = lines[:len(lines)-extra]
	}
	return strings.Join(append(lines, footer...), "\n")
}

func (m FramesModel) footer() string {
	status := m.scene.Status()
	if m.err != nil {
		status = m.theme.ErrorStyle.Render(m.err.Error())
	} else if status != "" {
		status = m.theme.Subtle.Render(status)
	}

	helpView := m.help.View(m.keys)
	if status == "" {
		return helpView
	}
	if m.help.ShowAll {
		return helpView + "\n" + status
	}
	return helpView + "  " + status
}
