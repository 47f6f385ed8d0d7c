package component

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/frame"
	"github.com/bnema/dragframe/internal/logging"
)

// ErrDuplicateFrame is returned by Add when a frame with the same id is already hosted.
var ErrDuplicateFrame = errors.New("frame already hosted")

type hostedFrame struct {
	id      entity.FrameID
	frame   *DragFrame
	content ContentHandler
	order   int
}

// FrameHost owns the viewport and the drag registry shared by its frames, and
// routes window-level input to them: presses go to the topmost frame under the
// pointer, moves and releases go to every frame.
type FrameHost struct {
	registry *frame.Registry

	mu       sync.RWMutex
	viewport entity.Size
	frames   []*hostedFrame
	added    int
	pressed  *hostedFrame
	touched  *hostedFrame
}

var _ port.Viewport = (*FrameHost)(nil)

// NewFrameHost creates a host with an unknown viewport.
func NewFrameHost() *FrameHost {
	return &FrameHost{registry: frame.NewRegistry()}
}

// Registry returns the registry frames of this host must share.
func (h *FrameHost) Registry() *frame.Registry {
	return h.registry
}

// ViewportSize implements port.Viewport.
func (h *FrameHost) ViewportSize() entity.Size {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.viewport
}

// Add hosts f with its content handler and mounts it.
func (h *FrameHost) Add(ctx context.Context, f *DragFrame, content ContentHandler) error {
	if f == nil {
		return fmt.Errorf("frame is nil")
	}

	// Frames lock themselves and call back into ViewportSize, so frame
	// methods are never called while h.mu is held.
	id := f.ID()
	wrapped := f.WrapContent(content)

	h.mu.Lock()
	for _, hf := range h.frames {
		if hf.id == id {
			h.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrDuplicateFrame, id)
		}
	}
	h.added++
	h.frames = append(h.frames, &hostedFrame{
		id:      id,
		frame:   f,
		content: wrapped,
		order:   h.added,
	})
	h.mu.Unlock()

	f.Mount(ctx)
	return nil
}

// Close unmounts every frame.
func (h *FrameHost) Close(ctx context.Context) {
	for _, f := range h.Frames() {
		f.Unmount(ctx)
	}
}

// Frames returns the hosted frames from bottom to top. Frames on the same
// layer stack in the order they were added.
func (h *FrameHost) Frames() []*DragFrame {
	hosted := h.sorted()
	out := make([]*DragFrame, len(hosted))
	for i, hf := range hosted {
		out[i] = hf.frame
	}
	return out
}

// Frame returns the hosted frame with the given id.
func (h *FrameHost) Frame(id entity.FrameID) (*DragFrame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hf := range h.frames {
		if hf.id == id {
			return hf.frame, true
		}
	}
	return nil, false
}

// FrameAt returns the topmost frame whose bounds contain p.
func (h *FrameHost) FrameAt(p entity.Position) (*DragFrame, bool) {
	if hf := h.hostedAt(p); hf != nil {
		return hf.frame, true
	}
	return nil, false
}

func (h *FrameHost) hostedAt(p entity.Position) *hostedFrame {
	hosted := h.sorted()
	for i := len(hosted) - 1; i >= 0; i-- {
		if r, ok := hosted[i].frame.Bounds(); ok && r.Contains(p) {
			return hosted[i]
		}
	}
	return nil
}

func (h *FrameHost) sorted() []*hostedFrame {
	h.mu.RLock()
	hosted := append([]*hostedFrame{}, h.frames...)
	h.mu.RUnlock()

	layers := make(map[*hostedFrame]int, len(hosted))
	for _, hf := range hosted {
		layers[hf] = hf.frame.Hints().Layer
	}
	sort.SliceStable(hosted, func(i, j int) bool {
		if layers[hosted[i]] != layers[hosted[j]] {
			return layers[hosted[i]] < layers[hosted[j]]
		}
		return hosted[i].order < hosted[j].order
	})
	return hosted
}

// Resize records the new viewport and lets every frame react to it.
func (h *FrameHost) Resize(ctx context.Context, size entity.Size) {
	h.mu.Lock()
	changed := h.viewport != size
	h.viewport = size
	h.mu.Unlock()

	if !changed {
		return
	}
	logging.FromContext(ctx).Debug().
		Float64("width", size.Width).
		Float64("height", size.Height).
		Msg("viewport resized")

	for _, f := range h.Frames() {
		f.OnResize(ctx)
	}
}

// ApplyOptions rewrites the options of every frame through fn.
func (h *FrameHost) ApplyOptions(ctx context.Context, fn func(entity.FrameOptions) entity.FrameOptions) error {
	var errs []error
	for _, f := range h.Frames() {
		if err := f.SetOptions(ctx, fn(f.Options())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PointerDown routes a press to the topmost frame under the pointer.
func (h *FrameHost) PointerDown(ctx context.Context, ev PointerEvent) (*DragFrame, bool) {
	target := h.hostedAt(ev.Position)

	h.mu.Lock()
	h.pressed = target
	h.mu.Unlock()

	if target == nil {
		return nil, false
	}
	target.frame.OnPointerDown(ctx, ev)
	return target.frame, true
}

// PointerMove broadcasts a move to every frame.
func (h *FrameHost) PointerMove(ctx context.Context, ev PointerEvent) {
	for _, f := range h.Frames() {
		f.OnPointerMove(ctx, ev)
	}
}

// PointerUp broadcasts a release, then delivers a click to the content of the
// frame that was pressed when the release happens over it.
func (h *FrameHost) PointerUp(ctx context.Context, ev PointerEvent) {
	for _, f := range h.Frames() {
		f.OnPointerUp(ctx, ev)
	}

	h.mu.Lock()
	pressed := h.pressed
	h.pressed = nil
	h.mu.Unlock()

	if pressed == nil || h.hostedAt(ev.Position) != pressed {
		return
	}
	pressed.content(ctx, &ContentEvent{Kind: ContentClick, Position: ev.Position})
}

// TouchStart routes a touch to the topmost frame under its first point.
func (h *FrameHost) TouchStart(ctx context.Context, ev TouchEvent) (*DragFrame, bool) {
	if len(ev.Touches) == 0 {
		return nil, false
	}
	target := h.hostedAt(ev.Touches[0].Position)

	h.mu.Lock()
	if h.touched == nil {
		h.touched = target
	}
	h.mu.Unlock()

	if target == nil {
		return nil, false
	}
	target.frame.OnTouchStart(ctx, ev)
	return target.frame, true
}

// TouchMove broadcasts a touch move.
func (h *FrameHost) TouchMove(ctx context.Context, ev TouchEvent) {
	for _, f := range h.Frames() {
		f.OnTouchMove(ctx, ev)
	}
}

// TouchEnd broadcasts a touch end and delivers a touch-end content event to
// the frame the gesture started on.
func (h *FrameHost) TouchEnd(ctx context.Context, ev TouchEvent) {
	for _, f := range h.Frames() {
		f.OnTouchEnd(ctx, ev)
	}
	h.endTouch(ctx, ev)
}

// TouchCancel broadcasts a touch cancel; frames finalize as on touch end.
func (h *FrameHost) TouchCancel(ctx context.Context, ev TouchEvent) {
	for _, f := range h.Frames() {
		f.OnTouchCancel(ctx, ev)
	}
	h.mu.Lock()
	h.touched = nil
	h.mu.Unlock()
}

func (h *FrameHost) endTouch(ctx context.Context, ev TouchEvent) {
	h.mu.Lock()
	touched := h.touched
	h.touched = nil
	h.mu.Unlock()

	if touched == nil || len(ev.Touches) == 0 {
		return
	}
	touched.content(ctx, &ContentEvent{Kind: ContentTouchEnd, Position: ev.Touches[0].Position})
}
