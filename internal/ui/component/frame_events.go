package component

import (
	"context"
	"time"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// PointerButton identifies the mouse button of a pointer event.
type PointerButton uint8

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
	ButtonMiddle
	ButtonNone
)

// PointerEvent is a mouse sample in viewport coordinates.
type PointerEvent struct {
	Position entity.Position
	Button   PointerButton
}

// TouchPoint is one contact of a touch event.
type TouchPoint struct {
	ID       int64
	Position entity.Position
}

// TouchEvent carries the changed touch points of a touch signal.
type TouchEvent struct {
	Touches []TouchPoint
}

// Find returns the touch point with the given identifier.
func (e TouchEvent) Find(id int64) (TouchPoint, bool) {
	for _, t := range e.Touches {
		if t.ID == id {
			return t, true
		}
	}
	return TouchPoint{}, false
}

// ContentEventKind distinguishes events delivered to frame content.
type ContentEventKind uint8

const (
	ContentClick ContentEventKind = iota
	ContentTouchEnd
)

// String returns human-readable kind name
func (k ContentEventKind) String() string {
	if k == ContentTouchEnd {
		return "touch-end"
	}
	return "click"
}

// ContentEvent is an interaction event bubbling from a frame's content.
type ContentEvent struct {
	Kind     ContentEventKind
	Position entity.Position

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event as handled.
func (e *ContentEvent) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation stops the event from reaching outer handlers.
func (e *ContentEvent) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *ContentEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether StopPropagation was called.
func (e *ContentEvent) PropagationStopped() bool {
	return e.propagationStopped
}

// ContentHandler receives content events of a frame.
type ContentHandler func(ctx context.Context, ev *ContentEvent)

// RenderHints tell the renderer how to draw a frame right now.
type RenderHints struct {
	Dragging              bool
	PointerEventsDisabled bool
	Layer                 int
	TransitionDuration    time.Duration
}
