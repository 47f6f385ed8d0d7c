package frame

import (
	"math"
	"time"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// Transition interpolates a frame between two resting positions.
// The zero value is a finished transition at the origin.
type Transition struct {
	from     entity.Position
	to       entity.Position
	start    time.Time
	duration time.Duration
}

// NewTransition starts an eased move from -> to at start.
func NewTransition(from, to entity.Position, start time.Time, duration time.Duration) Transition {
	return Transition{from: from, to: to, start: start, duration: duration}
}

// Settled returns a transition already at p.
func Settled(p entity.Position) Transition {
	return Transition{from: p, to: p}
}

// Target returns the final position.
func (t Transition) Target() entity.Position {
	return t.to
}

// At samples the transition. done is true once the target is reached.
func (t Transition) At(now time.Time) (entity.Position, bool) {
	if t.duration <= 0 || t.from == t.to {
		return t.to, true
	}
	elapsed := now.Sub(t.start)
	if elapsed >= t.duration {
		return t.to, true
	}
	if elapsed <= 0 {
		return t.from, false
	}

	k := EaseOutCubic(float64(elapsed) / float64(t.duration))
	return entity.Position{
		X: t.from.X + (t.to.X-t.from.X)*k,
		Y: t.from.Y + (t.to.Y-t.from.Y)*k,
	}, false
}

// EaseOutCubic decelerates towards the end: fast start, soft landing.
func EaseOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - math.Pow(1-t, 3)
}
