package input

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/ui/component"
)

const pointerButtons = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// TcellAdapter feeds tcell events to a Target. tcell reports the set of held
// buttons on every mouse event, so presses and releases are derived by
// diffing it against the previous event.
type TcellAdapter struct {
	target   Target
	reserved int
	buttons  tcell.ButtonMask
	last    entity.Position
	seen    bool
}

// NewTcellAdapter creates an adapter for target. reservedRows are taken off
// the bottom of the screen before it is reported as the viewport.
func NewTcellAdapter(target Target, reservedRows int) *TcellAdapter {
	return &TcellAdapter{target: target, reserved: reservedRows}
}

// Handle translates ev and reports whether it was consumed.
func (a *TcellAdapter) Handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.target.Resize(ctx, viewport(w, h, a.reserved))
		return true
	case *tcell.EventMouse:
		a.handleMouse(ctx, ev)
		return true
	}
	return false
}

func (a *TcellAdapter) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := cell(x, y)

	held := ev.Buttons() & pointerButtons
	pressed := held &^ a.buttons
	released := a.buttons &^ held
	moved := !a.seen || pos != a.last

	a.buttons = held
	a.last = pos
	a.seen = true

	if moved && released == 0 {
		a.target.PointerMove(ctx, component.PointerEvent{Position: pos, Button: tcellButton(held)})
	}
	if released != 0 {
		a.target.PointerUp(ctx, component.PointerEvent{Position: pos, Button: tcellButton(released)})
	}
	if pressed != 0 {
		a.target.PointerDown(ctx, component.PointerEvent{Position: pos, Button: tcellButton(pressed)})
	}
}

func tcellButton(mask tcell.ButtonMask) component.PointerButton {
	switch {
	case mask&tcell.ButtonPrimary != 0:
		return component.ButtonPrimary
	case mask&tcell.ButtonSecondary != 0:
		return component.ButtonSecondary
	case mask&tcell.ButtonMiddle != 0:
		return component.ButtonMiddle
	default:
		return component.ButtonNone
	}
}
