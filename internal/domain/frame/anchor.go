package frame

import "github.com/bnema/dragframe/internal/domain/entity"

// DecideSide picks the edge for a release at pointerX. The mid-line itself
// belongs to the right half.
func DecideSide(pointerX, viewportWidth float64) entity.AnchorSide {
	if pointerX < viewportWidth/2 {
		return entity.AnchorLeft
	}
	return entity.AnchorRight
}

// RestingX is the x coordinate of a frame resting against side.
func RestingX(side entity.AnchorSide, frameWidth, viewportWidth, margin float64) float64 {
	if side == entity.AnchorLeft {
		return margin
	}
	return viewportWidth - frameWidth - margin
}

// SideForPosition infers the edge from where the frame's center sits. Used when
// a restored record carries no side.
func SideForPosition(pos entity.Position, frame entity.Size, viewportWidth float64) entity.AnchorSide {
	return DecideSide(pos.X+frame.Width/2, viewportWidth)
}

// AnchorEngine snaps anchored frames to the nearest horizontal edge.
type AnchorEngine struct {
	margin float64
}

// NewAnchorEngine creates an engine that keeps margin pixels from the edge.
func NewAnchorEngine(margin float64) *AnchorEngine {
	return &AnchorEngine{margin: margin}
}

// Settle computes the resting position after a drag released at pointerX.
// The side comes from the pointer, not from the frame's left edge; y is kept.
func (e *AnchorEngine) Settle(pointerX float64, pos entity.Position, frame, viewport entity.Size) (entity.Position, entity.AnchorSide) {
	side := DecideSide(pointerX, viewport.Width)
	return e.Reflow(side, pos, frame, viewport), side
}

// Reflow recomputes the resting position for an already chosen side, e.g.
// after the viewport was resized.
func (e *AnchorEngine) Reflow(side entity.AnchorSide, pos entity.Position, frame, viewport entity.Size) entity.Position {
	target := entity.Position{
		X: RestingX(side, frame.Width, viewport.Width, e.margin),
		Y: pos.Y,
	}
	return entity.ClampPosition(target, frame, viewport)
}
