package input

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/dragframe/internal/logging"
	"github.com/bnema/dragframe/internal/ui/component"
)

// TeaAdapter feeds bubbletea mouse and window messages to a Target. The
// program must enable cell or all motion mouse reporting.
type TeaAdapter struct {
	target   Target
	reserved int
}

// NewTeaAdapter creates an adapter for target. reservedRows are taken off the
// bottom of the window before it is reported as the viewport.
func NewTeaAdapter(target Target, reservedRows int) *TeaAdapter {
	return &TeaAdapter{target: target, reserved: reservedRows}
}

// Handle translates msg and reports whether it was consumed.
func (a *TeaAdapter) Handle(ctx context.Context, msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.target.Resize(ctx, viewport(msg.Width, msg.Height, a.reserved))
		return true
	case tea.MouseMsg:
		return a.handleMouse(ctx, tea.MouseEvent(msg))
	}
	return false
}

func (a *TeaAdapter) handleMouse(ctx context.Context, ev tea.MouseEvent) bool {
	if ev.IsWheel() {
		return false
	}

	pe := component.PointerEvent{Position: cell(ev.X, ev.Y), Button: teaButton(ev.Button)}
	switch ev.Action {
	case tea.MouseActionPress:
		if _, ok := a.target.PointerDown(ctx, pe); ok {
			logging.FromContext(ctx).Trace().Int("x", ev.X).Int("y", ev.Y).Msg("press routed to frame")
		}
	case tea.MouseActionMotion:
		a.target.PointerMove(ctx, pe)
	case tea.MouseActionRelease:
		a.target.PointerUp(ctx, pe)
	default:
		return false
	}
	return true
}

func teaButton(b tea.MouseButton) component.PointerButton {
	switch b {
	case tea.MouseButtonLeft:
		return component.ButtonPrimary
	case tea.MouseButtonRight:
		return component.ButtonSecondary
	case tea.MouseButtonMiddle:
		return component.ButtonMiddle
	default:
		return component.ButtonNone
	}
}
