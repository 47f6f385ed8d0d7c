// Package input translates terminal mouse and resize events into frame host
// calls. Terminal cells map one to one onto viewport units.
package input

import (
	"context"

	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/ui/component"
)

// Target receives translated events. *component.FrameHost implements it.
type Target interface {
	Resize(ctx context.Context, size entity.Size)
	PointerDown(ctx context.Context, ev component.PointerEvent) (*component.DragFrame, bool)
	PointerMove(ctx context.Context, ev component.PointerEvent)
	PointerUp(ctx context.Context, ev component.PointerEvent)
}

var _ Target = (*component.FrameHost)(nil)

func cell(x, y int) entity.Position {
	return entity.Position{X: float64(x), Y: float64(y)}
}

// viewport converts a terminal size to the frame viewport, leaving reserved
// rows at the bottom for a status line.
func viewport(width, height, reserved int) entity.Size {
	return entity.Size{Width: float64(max(width, 0)), Height: float64(max(height-reserved, 0))}
}
