package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/application/usecase"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/frame"
	"github.com/bnema/dragframe/internal/logging"
)

// ErrFrameIDChanged is returned by SetOptions when the new options carry a different id.
var ErrFrameIDChanged = errors.New("frame id cannot change after creation")

// FrameSnapshot is a read-only view of a frame's state.
type FrameSnapshot struct {
	ID       entity.FrameID
	Position entity.Position
	Size     entity.Size
	Measured bool
	Side     entity.AnchorSide
	Anchored bool
	Phase    frame.Phase
	Layer    int
	Restored bool
}

// Bounds returns the frame rectangle at its logical position.
func (s FrameSnapshot) Bounds() entity.Rect {
	return entity.RectAt(s.Position, s.Size)
}

// DragFrame is a movable panel that follows pointer and touch input, stays
// inside the viewport, optionally rests against a horizontal edge, and
// persists where it settled.
type DragFrame struct {
	panel     port.Panel
	positions *usecase.FramePositionsUseCase
	registry  *frame.Registry
	clock     port.Clock

	mu           sync.RWMutex
	opts         entity.FrameOptions
	policy       frame.DragPolicy
	anchor       *frame.AnchorEngine
	lock         *frame.InputLock
	state        frame.DragState
	source       frame.InputSource
	touchID      int64
	tracking     bool
	position     entity.Position
	size         entity.Size
	side         entity.AnchorSide
	transition   frame.Transition
	mounted      bool
	restored     bool
	swallowClick bool
	listeners    []func(FrameSnapshot)
}

// settleResult is work left for after the lock is released.
type settleResult struct {
	persist  bool
	position entity.Position
	side     entity.AnchorSide
	notify   bool
	snapshot FrameSnapshot
}

// NewDragFrame creates a frame. The registry must be shared by every frame
// that can be dragged in the same viewport.
func NewDragFrame(
	opts entity.FrameOptions,
	panel port.Panel,
	positions *usecase.FramePositionsUseCase,
	registry *frame.Registry,
	clock port.Clock,
) (*DragFrame, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if panel == nil || positions == nil || registry == nil {
		return nil, fmt.Errorf("frame %s: panel, positions and registry are required", opts.ID)
	}
	if clock == nil {
		clock = port.SystemClock{}
	}

	initial := opts.Initial()
	return &DragFrame{
		panel:      panel,
		positions:  positions,
		registry:   registry,
		clock:      clock,
		opts:       opts,
		policy:     frame.PolicyFor(opts),
		anchor:     frame.NewAnchorEngine(opts.Margin()),
		lock:       frame.NewInputLock(opts.Debounce()),
		position:   initial,
		transition: frame.Settled(initial),
	}, nil
}

// ID returns the frame identifier.
func (f *DragFrame) ID() entity.FrameID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.ID
}

// Options returns a copy of the current options.
func (f *DragFrame) Options() entity.FrameOptions {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.WithDefaults()
}

// OnChange registers a callback invoked after the frame moved or changed phase.
func (f *DragFrame) OnChange(fn func(FrameSnapshot)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

// Mount activates the frame and restores its persisted position. When the
// viewport is still unknown the restore is deferred to the first resize.
func (f *DragFrame) Mount(ctx context.Context) {
	f.mu.Lock()
	f.mounted = true
	res := f.restoreLocked(ctx)
	f.mu.Unlock()

	f.finish(ctx, res)
}

// Unmount deactivates the frame, dropping any session and registry claim.
func (f *DragFrame) Unmount(ctx context.Context) {
	f.mu.Lock()
	if f.state.Active() {
		f.registry.Release(f.opts.ID)
	}
	f.state = frame.DragState{}
	f.source = frame.SourceNone
	f.tracking = false
	f.swallowClick = false
	f.lock.Reset()
	f.mounted = false
	res := settleResult{notify: true, snapshot: f.snapshotLocked()}
	f.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("frame_id", string(res.snapshot.ID)).Msg("frame unmounted")
	f.finish(ctx, res)
}

// Reset forgets the persisted position and returns to the initial one.
func (f *DragFrame) Reset(ctx context.Context) error {
	f.mu.RLock()
	id := f.opts.ID
	f.mu.RUnlock()

	if err := f.positions.Forget(ctx, id); err != nil {
		return err
	}

	f.mu.Lock()
	if f.state.Active() {
		f.registry.Release(id)
		f.state = frame.DragState{}
		f.lock.End(f.source, f.clock.Now())
		f.source = frame.SourceNone
		f.tracking = false
	}
	from := f.displayLocked(f.clock.Now())
	f.side = entity.AnchorNone
	f.position = f.opts.Initial()
	res := f.placeLocked(from)
	res.persist = false
	f.mu.Unlock()

	f.finish(ctx, res)
	return nil
}

// SetOptions applies new options to a live frame. Toggling anchoring moves the
// frame to its resting position (or drops the side) and persists the result.
func (f *DragFrame) SetOptions(ctx context.Context, opts entity.FrameOptions) error {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	if opts.ID != f.opts.ID {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrFrameIDChanged, f.opts.ID, opts.ID)
	}

	wasAnchored := f.opts.Anchored
	f.opts = opts
	f.policy = frame.PolicyFor(opts)
	f.anchor = frame.NewAnchorEngine(opts.Margin())
	f.lock.SetWindow(opts.Debounce())

	var res settleResult
	if f.restored && !f.state.Active() {
		if wasAnchored != opts.Anchored {
			f.side = entity.AnchorNone
		}
		res = f.placeLocked(f.displayLocked(f.clock.Now()))
		res.persist = res.persist && (wasAnchored != opts.Anchored || opts.Anchored)
	} else {
		res = settleResult{notify: true, snapshot: f.snapshotLocked()}
	}
	f.mu.Unlock()

	f.finish(ctx, res)
	return nil
}

// Snapshot returns the current state.
func (f *DragFrame) Snapshot() FrameSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshotLocked()
}

// Bounds returns the rectangle the frame currently occupies on screen. ok is
// false while the panel is unmeasured.
func (f *DragFrame) Bounds() (entity.Rect, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	size, ok := f.panel.Measure()
	if !ok {
		return entity.Rect{}, false
	}
	return entity.RectAt(f.displayLocked(f.clock.Now()), size), true
}

// DisplayPosition is where the frame should be drawn at now: the pointer-driven
// position while dragging, the eased settle transition otherwise.
func (f *DragFrame) DisplayPosition(now time.Time) entity.Position {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.displayLocked(now)
}

// Animating reports whether a settle transition is still running at now.
func (f *DragFrame) Animating(now time.Time) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.state.Phase == frame.PhaseDragging {
		return false
	}
	_, done := f.transition.At(now)
	return !done
}

// Hints returns the render hints for the current phase.
func (f *DragFrame) Hints() RenderHints {
	f.mu.RLock()
	defer f.mu.RUnlock()

	dragging := f.state.Phase == frame.PhaseDragging
	hints := RenderHints{
		Dragging:              dragging,
		PointerEventsDisabled: dragging,
		Layer:                 f.opts.Layer,
		TransitionDuration:    f.opts.Transition(),
	}
	if dragging {
		hints.TransitionDuration = 0
	}
	return hints
}

// WrapContent wraps a content handler so that events arriving while the frame
// is being dragged, and the click that ends a drag, never reach it.
func (f *DragFrame) WrapContent(handler ContentHandler) ContentHandler {
	return func(ctx context.Context, ev *ContentEvent) {
		if ev == nil {
			return
		}
		if f.suppressContent() {
			ev.PreventDefault()
			ev.StopPropagation()
			logging.FromContext(ctx).Debug().
				Str("frame_id", string(f.ID())).
				Str("event", ev.Kind.String()).
				Msg("content event suppressed")
			return
		}
		if handler != nil {
			handler(ctx, ev)
		}
	}
}

func (f *DragFrame) suppressContent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Phase == frame.PhaseDragging {
		return true
	}
	if f.swallowClick {
		f.swallowClick = false
		return true
	}
	return false
}

// OnPointerDown starts a session for the primary button.
func (f *DragFrame) OnPointerDown(ctx context.Context, ev PointerEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	f.dispatch(ctx, frame.SourceMouse, frame.EventPointerDown, ev.Position)
}

// OnPointerMove feeds a mouse move.
func (f *DragFrame) OnPointerMove(ctx context.Context, ev PointerEvent) {
	f.dispatch(ctx, frame.SourceMouse, frame.EventPointerMove, ev.Position)
}

// OnPointerUp ends a mouse session.
func (f *DragFrame) OnPointerUp(ctx context.Context, ev PointerEvent) {
	f.dispatch(ctx, frame.SourceMouse, frame.EventPointerUp, ev.Position)
}

// OnTouchStart starts a session with the first touch point. Further touches
// are ignored until that one ends.
func (f *DragFrame) OnTouchStart(ctx context.Context, ev TouchEvent) {
	if len(ev.Touches) == 0 {
		return
	}
	f.mu.RLock()
	busy := f.tracking
	f.mu.RUnlock()
	if busy {
		return
	}

	t := ev.Touches[0]
	if f.dispatch(ctx, frame.SourceTouch, frame.EventPointerDown, t.Position) {
		f.mu.Lock()
		f.touchID = t.ID
		f.tracking = true
		f.mu.Unlock()
	}
}

// OnTouchMove follows the tracked touch point.
func (f *DragFrame) OnTouchMove(ctx context.Context, ev TouchEvent) {
	if t, ok := f.trackedTouch(ev); ok {
		f.dispatch(ctx, frame.SourceTouch, frame.EventPointerMove, t.Position)
	}
}

// OnTouchEnd ends the session of the tracked touch point.
func (f *DragFrame) OnTouchEnd(ctx context.Context, ev TouchEvent) {
	t, ok := f.trackedTouch(ev)
	if !ok {
		return
	}
	f.mu.Lock()
	f.tracking = false
	f.mu.Unlock()
	f.dispatch(ctx, frame.SourceTouch, frame.EventPointerUp, t.Position)
}

// OnTouchCancel finalizes like OnTouchEnd; there is no revert.
func (f *DragFrame) OnTouchCancel(ctx context.Context, ev TouchEvent) {
	f.OnTouchEnd(ctx, ev)
}

func (f *DragFrame) trackedTouch(ev TouchEvent) (TouchPoint, bool) {
	f.mu.RLock()
	tracking, id := f.tracking, f.touchID
	f.mu.RUnlock()
	if !tracking {
		return TouchPoint{}, false
	}
	return ev.Find(id)
}

// OnResize reacts to a viewport change: a deferred restore runs now, an
// anchored frame keeps its side and moves to the new resting x, a free frame
// is pulled back inside the viewport. Ignored while dragging.
func (f *DragFrame) OnResize(ctx context.Context) {
	f.mu.Lock()
	if !f.mounted || f.state.Phase == frame.PhaseDragging {
		f.mu.Unlock()
		return
	}

	var res settleResult
	if !f.restored {
		res = f.restoreLocked(ctx)
	} else {
		before := f.position
		res = f.placeLocked(f.displayLocked(f.clock.Now()))
		res.persist = res.persist && (f.opts.Anchored || f.position != before)
	}
	f.mu.Unlock()

	f.finish(ctx, res)
}

// dispatch runs one event through the drag state machine and applies the
// resulting effects. It reports whether a new session started.
func (f *DragFrame) dispatch(ctx context.Context, src frame.InputSource, kind frame.EventKind, pointer entity.Position) bool {
	log := logging.FromContext(ctx)

	f.mu.Lock()
	if !f.mounted {
		f.mu.Unlock()
		return false
	}

	now := f.clock.Now()
	id := f.opts.ID
	wasActive := f.state.Active()

	if kind == frame.EventPointerDown {
		if !f.lock.Allows(src, now) {
			f.mu.Unlock()
			log.Debug().Str("frame_id", string(id)).Str("source", src.String()).Msg("input source locked, press ignored")
			return false
		}
	} else if wasActive && f.source != src {
		f.mu.Unlock()
		return false
	}

	size, measured := f.panel.Measure()
	if measured {
		f.size = size
	}
	viewport := f.positions.Viewport()

	prevPhase := f.state.Phase
	next, effects := frame.Step(f.state, frame.DragEvent{
		Kind:         kind,
		Pointer:      pointer,
		Bounds:       entity.RectAt(f.displayLocked(now), f.size),
		Measured:     measured,
		Viewport:     viewport,
		OwnedByOther: f.registry.OwnedByOther(id),
	}, f.policy)
	f.state = next

	started := !wasActive && next.Active()
	if started {
		f.source = src
		f.lock.Begin(src)
		f.swallowClick = false
	}

	var res settleResult
	for _, eff := range effects {
		switch eff.Kind {
		case frame.EffectClaim:
			if !f.registry.TryAcquire(id) {
				f.state = frame.DragState{}
				f.endSessionLocked(now)
				f.mu.Unlock()
				log.Debug().Str("frame_id", string(id)).Msg("registry owned by another frame, drag not started")
				return false
			}
			log.Debug().Str("frame_id", string(id)).Msg("drag started")
		case frame.EffectMove:
			f.position = eff.Position
			f.transition = frame.Settled(eff.Position)
		case frame.EffectSettle:
			res = f.settleLocked(eff.Pointer, viewport, now)
			f.swallowClick = true
		case frame.EffectRelease:
			f.registry.Release(id)
		}
	}

	if wasActive && !f.state.Active() {
		f.endSessionLocked(now)
	}

	if f.state.Phase != prevPhase || len(effects) > 0 {
		res.notify = true
		res.snapshot = f.snapshotLocked()
	}
	f.mu.Unlock()

	f.finish(ctx, res)
	return started
}

func (f *DragFrame) endSessionLocked(now time.Time) {
	f.lock.End(f.source, now)
	f.source = frame.SourceNone
}

// settleLocked computes the resting position once a drag ended at pointer.
func (f *DragFrame) settleLocked(pointer entity.Position, viewport entity.Size, now time.Time) settleResult {
	from := f.position
	final := f.positions.Clamp(from, f.size)
	side := entity.AnchorNone

	if f.opts.Anchored {
		final, side = f.anchor.Settle(pointer.X, from, f.size, viewport)
	}

	f.position = final
	f.side = side
	f.transition = frame.NewTransition(from, final, now, f.opts.Transition())

	return settleResult{persist: true, position: final, side: side}
}

// restoreLocked loads the persisted state once the viewport is known.
func (f *DragFrame) restoreLocked(ctx context.Context) settleResult {
	if f.restored || f.positions.Viewport().Empty() {
		return settleResult{notify: true, snapshot: f.snapshotLocked()}
	}

	pos, side := f.positions.LoadState(ctx, f.opts.ID, f.opts.Initial())
	f.position = pos
	f.side = side
	f.restored = true

	res := f.placeLocked(pos)
	res.persist = false
	f.transition = frame.Settled(f.position)
	return res
}

// placeLocked constrains the current position to the viewport, applying the
// anchor when enabled, and animates from the given display position.
func (f *DragFrame) placeLocked(from entity.Position) settleResult {
	viewport := f.positions.Viewport()
	if size, ok := f.panel.Measure(); ok {
		f.size = size
	}

	if !viewport.Empty() {
		if f.opts.Anchored {
			if !f.side.Valid() {
				f.side = frame.SideForPosition(f.position, f.size, viewport.Width)
			}
			f.position = f.anchor.Reflow(f.side, f.position, f.size, viewport)
		} else {
			f.side = entity.AnchorNone
			f.position = f.positions.Clamp(f.position, f.size)
		}
	}
	f.transition = frame.NewTransition(from, f.position, f.clock.Now(), f.opts.Transition())

	return settleResult{
		persist:  f.restored && !viewport.Empty(),
		position: f.position,
		side:     f.side,
		notify:   true,
		snapshot: f.snapshotLocked(),
	}
}

func (f *DragFrame) displayLocked(now time.Time) entity.Position {
	if f.state.Phase == frame.PhaseDragging {
		return f.position
	}
	pos, _ := f.transition.At(now)
	return pos
}

func (f *DragFrame) snapshotLocked() FrameSnapshot {
	size, measured := f.panel.Measure()
	if !measured {
		size = f.size
	}
	return FrameSnapshot{
		ID:       f.opts.ID,
		Position: f.position,
		Size:     size,
		Measured: measured,
		Side:     f.side,
		Anchored: f.opts.Anchored,
		Phase:    f.state.Phase,
		Layer:    f.opts.Layer,
		Restored: f.restored,
	}
}

// finish persists and notifies outside the lock.
func (f *DragFrame) finish(ctx context.Context, res settleResult) {
	if res.persist {
		id := f.ID()
		if err := f.positions.Persist(ctx, id, res.position, res.side); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("frame_id", string(id)).Msg("failed to persist frame position")
		}
	}
	if !res.notify {
		return
	}

	f.mu.RLock()
	listeners := append([]func(FrameSnapshot){}, f.listeners...)
	f.mu.RUnlock()
	if res.snapshot.ID == "" {
		res.snapshot = f.Snapshot()
	}
	for _, fn := range listeners {
		fn(res.snapshot)
	}
}
