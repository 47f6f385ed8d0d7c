package port

import (
	"time"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// Viewport reports the size of the visible area frames are constrained to.
// A zero size means the viewport is not known yet.
type Viewport interface {
	ViewportSize() entity.Size
}

// Panel is the rendered content of a frame. Measure returns false until the
// panel has a bounding box.
type Panel interface {
	Measure() (entity.Size, bool)
}

// Clock abstracts time for the input lock and settle transitions.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// StaticPanel is a Panel with a fixed size.
type StaticPanel entity.Size

// Measure returns the fixed size; an empty size counts as unmeasured.
func (p StaticPanel) Measure() (entity.Size, bool) {
	s := entity.Size(p)
	return s, !s.Empty()
}
