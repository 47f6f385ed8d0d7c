package frame

import (
	"math"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// Phase is the drag controller state.
type Phase uint8

const (
	// PhaseIdle: no press in progress.
	PhaseIdle Phase = iota
	// PhasePending: pressed, movement still under the drag threshold.
	PhasePending
	// PhaseDragging: the frame follows the pointer and owns the registry.
	PhaseDragging
)

// String returns human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// DragState is the per-frame drag session. The zero value is Idle.
type DragState struct {
	Phase         Phase
	StartPointer  entity.Position
	PointerOffset entity.Position // pointer minus frame top-left at press time
	LastPointer   entity.Position
}

// Active reports whether a session (pending or dragging) exists.
func (s DragState) Active() bool {
	return s.Phase != PhaseIdle
}

// EventKind discriminates drag input events.
type EventKind uint8

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
)

// DragEvent is one input sample together with the environment the transition
// needs. Measured is false while the panel has no bounding box yet.
type DragEvent struct {
	Kind         EventKind
	Pointer      entity.Position
	Bounds       entity.Rect
	Measured     bool
	Viewport     entity.Size
	OwnedByOther bool
}

// DragPolicy holds the knobs that decide when a press becomes a drag.
type DragPolicy struct {
	Threshold float64
	Immediate bool
}

// PolicyFor derives the drag policy from frame options.
func PolicyFor(opts entity.FrameOptions) DragPolicy {
	return DragPolicy{Threshold: opts.Threshold(), Immediate: opts.ImmediateDrag()}
}

// EffectKind enumerates the side effects a transition asks for.
type EffectKind uint8

const (
	// EffectClaim asks to acquire the registry.
	EffectClaim EffectKind = iota
	// EffectMove sets the frame position (already clamped).
	EffectMove
	// EffectSettle finalizes the drag at the release pointer.
	EffectSettle
	// EffectRelease frees the registry if this frame owns it.
	EffectRelease
)

// Effect is a side effect produced by Step, applied in order by the caller.
type Effect struct {
	Kind     EffectKind
	Position entity.Position
	Pointer  entity.Position
}

// Step is the drag transition function. It is total and pure: unknown or
// inapplicable events return the state unchanged with no effects.
func Step(state DragState, ev DragEvent, policy DragPolicy) (DragState, []Effect) {
	switch ev.Kind {
	case EventPointerDown:
		return stepDown(state, ev)
	case EventPointerMove:
		return stepMove(state, ev, policy)
	case EventPointerUp:
		return stepUp(state, ev)
	default:
		return state, nil
	}
}

func stepDown(state DragState, ev DragEvent) (DragState, []Effect) {
	if state.Active() || ev.OwnedByOther || !ev.Measured {
		return state, nil
	}
	return DragState{
		Phase:         PhasePending,
		StartPointer:  ev.Pointer,
		PointerOffset: ev.Pointer.Sub(ev.Bounds.TopLeft()),
		LastPointer:   ev.Pointer,
	}, nil
}

func stepMove(state DragState, ev DragEvent, policy DragPolicy) (DragState, []Effect) {
	if !state.Active() || ev.OwnedByOther || !ev.Measured {
		return state, nil
	}

	next := state
	next.LastPointer = ev.Pointer
	target := entity.ClampPosition(ev.Pointer.Sub(state.PointerOffset), ev.Bounds.Size(), ev.Viewport)

	if state.Phase == PhaseDragging {
		return next, []Effect{{Kind: EffectMove, Position: target, Pointer: ev.Pointer}}
	}

	if !policy.Immediate && !exceedsThreshold(state.StartPointer, ev.Pointer, policy.Threshold) {
		return next, nil
	}
	next.Phase = PhaseDragging
	return next, []Effect{
		{Kind: EffectClaim, Pointer: ev.Pointer},
		{Kind: EffectMove, Position: target, Pointer: ev.Pointer},
	}
}

// stepUp ends the session even when another frame owns the registry; the
// release effect is a no-op for a non-owner.
func stepUp(state DragState, ev DragEvent) (DragState, []Effect) {
	switch state.Phase {
	case PhaseDragging:
		return DragState{}, []Effect{
			{Kind: EffectSettle, Pointer: ev.Pointer},
			{Kind: EffectRelease, Pointer: ev.Pointer},
		}
	case PhasePending:
		return DragState{}, []Effect{{Kind: EffectRelease, Pointer: ev.Pointer}}
	default:
		return state, nil
	}
}

func exceedsThreshold(start, current entity.Position, threshold float64) bool {
	d := current.Sub(start)
	return math.Max(math.Abs(d.X), math.Abs(d.Y)) > threshold
}
