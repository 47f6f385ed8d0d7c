// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "math"

// Position is a point in viewport pixels, origin at the top-left corner.
type Position struct {
	X, Y float64
}

// Add returns p translated by o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the vector from o to p.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Empty reports whether the size has no area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents a frame's screen position and size.
type Rect struct {
	X, Y          float64 // Top-left position relative to the viewport
	Width, Height float64
}

// RectAt builds a rectangle from a top-left corner and a size.
func RectAt(p Position, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// TopLeft returns the rectangle's origin.
func (r Rect) TopLeft() Position {
	return Position{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive
// so adjacent rectangles never both claim a point.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// ClampPosition keeps a frame of the given size fully inside the viewport.
// When the frame is larger than the viewport on an axis, the lower bound wins
// and the coordinate is pinned to 0.
func ClampPosition(candidate Position, frame Size, viewport Size) Position {
	return Position{
		X: clampAxis(candidate.X, viewport.Width-frame.Width),
		Y: clampAxis(candidate.Y, viewport.Height-frame.Height),
	}
}

func clampAxis(v, upper float64) float64 {
	return math.Max(0, math.Min(v, upper))
}
