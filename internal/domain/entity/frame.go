package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FrameID identifies a draggable frame. It doubles as the persistence key and
// the drag registry key, so co-mounted frames must not share one.
type FrameID string

// AnchorSide is the horizontal edge an anchored frame rests against.
type AnchorSide string

const (
	AnchorNone  AnchorSide = ""
	AnchorLeft  AnchorSide = "left"
	AnchorRight AnchorSide = "right"
)

// Valid reports whether s is one of the two edges.
func (s AnchorSide) Valid() bool {
	return s == AnchorLeft || s == AnchorRight
}

// AnchoredDragStart selects when an anchored frame turns a press into a drag.
type AnchoredDragStart string

const (
	// AnchoredDragImmediate starts dragging on the first move after the press.
	AnchoredDragImmediate AnchoredDragStart = "immediate"
	// AnchoredDragThreshold applies the regular pixel threshold.
	AnchoredDragThreshold AnchoredDragStart = "threshold"
)

// Frame option defaults.
const (
	DefaultInitialX           = 20.0
	DefaultInitialY           = 20.0
	DefaultDragThreshold      = 5.0
	DefaultAnchorMargin       = 10.0
	DefaultTransitionDuration = 250 * time.Millisecond
	DefaultLayer              = 1000
	DefaultTouchDebounce      = 150 * time.Millisecond
)

// ErrFrameIDRequired is returned when a frame is configured without an identifier.
var ErrFrameIDRequired = errors.New("frame id is required")

// FrameOptions is the configuration surface of a single frame.
// Nil pointers and zero values of Layer and AnchoredDragStart are replaced by
// defaults in WithDefaults. An explicit zero threshold, margin, transition or
// debounce is kept.
type FrameOptions struct {
	ID                 FrameID
	InitialPosition    *Position
	DragThreshold      *float64
	AnchorMargin       *float64
	TransitionDuration *time.Duration
	Layer              int
	Anchored           bool
	AnchoredDragStart  AnchoredDragStart
	TouchDebounce      *time.Duration
}

// Ptr returns a pointer to v, for filling optional fields inline.
func Ptr[T any](v T) *T {
	return &v
}

// DefaultFrameOptions returns the defaults for a frame with the given id.
func DefaultFrameOptions(id FrameID) FrameOptions {
	return FrameOptions{ID: id}.WithDefaults()
}

// WithDefaults returns a copy with every unset field filled in. Pointer
// fields of the result never alias the receiver's.
func (o FrameOptions) WithDefaults() FrameOptions {
	o.ID = FrameID(strings.TrimSpace(string(o.ID)))
	o.InitialPosition = Ptr(o.Initial())
	o.DragThreshold = Ptr(o.Threshold())
	o.AnchorMargin = Ptr(o.Margin())
	o.TransitionDuration = Ptr(o.Transition())
	o.TouchDebounce = Ptr(o.Debounce())
	if o.Layer == 0 {
		o.Layer = DefaultLayer
	}
	if o.AnchoredDragStart == "" {
		o.AnchoredDragStart = AnchoredDragImmediate
	}
	return o
}

// Threshold returns the drag threshold, or DefaultDragThreshold when unset.
func (o FrameOptions) Threshold() float64 {
	if o.DragThreshold == nil {
		return DefaultDragThreshold
	}
	return *o.DragThreshold
}

// Margin returns the anchor margin, or DefaultAnchorMargin when unset.
func (o FrameOptions) Margin() float64 {
	if o.AnchorMargin == nil {
		return DefaultAnchorMargin
	}
	return *o.AnchorMargin
}

// Transition returns the settle duration, or DefaultTransitionDuration when unset.
func (o FrameOptions) Transition() time.Duration {
	if o.TransitionDuration == nil {
		return DefaultTransitionDuration
	}
	return *o.TransitionDuration
}

// Debounce returns the post-touch mouse lockout, or DefaultTouchDebounce when unset.
func (o FrameOptions) Debounce() time.Duration {
	if o.TouchDebounce == nil {
		return DefaultTouchDebounce
	}
	return *o.TouchDebounce
}

// Validate checks the options after defaults were applied.
func (o FrameOptions) Validate() error {
	if o.ID == "" {
		return ErrFrameIDRequired
	}

	var problems []string
	if o.Threshold() < 0 {
		problems = append(problems, "drag threshold must be non-negative")
	}
	if o.Margin() < 0 {
		problems = append(problems, "anchor margin must be non-negative")
	}
	if o.Transition() < 0 {
		problems = append(problems, "transition duration must be non-negative")
	}
	if o.Debounce() < 0 {
		problems = append(problems, "touch debounce must be non-negative")
	}
	switch o.AnchoredDragStart {
	case AnchoredDragImmediate, AnchoredDragThreshold:
	default:
		problems = append(problems, fmt.Sprintf("unknown anchored drag start %q", o.AnchoredDragStart))
	}

	if len(problems) > 0 {
		return fmt.Errorf("frame %s: %s", o.ID, strings.Join(problems, "; "))
	}
	return nil
}

// Initial returns the configured initial position.
func (o FrameOptions) Initial() Position {
	if o.InitialPosition == nil {
		return Position{X: DefaultInitialX, Y: DefaultInitialY}
	}
	return *o.InitialPosition
}

// ImmediateDrag reports whether a press starts dragging without a threshold.
func (o FrameOptions) ImmediateDrag() bool {
	return o.Anchored && o.AnchoredDragStart != AnchoredDragThreshold
}
