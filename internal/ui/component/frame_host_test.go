package component

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/frame"
)

func TestFrameHost_RoutesPressToTopmostFrame(t *testing.T) {
	h := newFrameHarness(t)
	low := h.addFrame(t, entity.FrameOptions{ID: "low"}, nil)
	high := h.addFrame(t, entity.FrameOptions{ID: "high", Layer: 2000, InitialPosition: &entity.Position{X: 100, Y: 50}}, nil)
	same := h.addFrame(t, entity.FrameOptions{ID: "same", InitialPosition: &entity.Position{X: 600, Y: 500}}, nil)

	ids := make([]entity.FrameID, 0, 3)
	for _, f := range h.host.Frames() {
		ids = append(ids, f.ID())
	}
	assert.Equal(t, []entity.FrameID{"low", "same", "high"}, ids)

	got, ok := h.host.FrameAt(entity.Position{X: 150, Y: 80})
	require.True(t, ok)
	assert.Equal(t, entity.FrameID("high"), got.ID())

	target, ok := h.host.PointerDown(h.ctx, pointerAt(150, 80))
	require.True(t, ok)
	assert.Same(t, high, target)
	assert.Equal(t, frame.PhasePending, high.Snapshot().Phase)
	assert.Equal(t, frame.PhaseIdle, low.Snapshot().Phase)
	assert.Equal(t, frame.PhaseIdle, same.Snapshot().Phase)

	h.host.PointerMove(h.ctx, pointerAt(250, 180))
	assert.Equal(t, frame.PhaseDragging, high.Snapshot().Phase)
	assert.Equal(t, entity.Position{X: 20, Y: 20}, low.Snapshot().Position)

	h.host.PointerUp(h.ctx, pointerAt(250, 180))
	assert.Equal(t, frame.PhaseIdle, high.Snapshot().Phase)
	assert.Equal(t, entity.Position{X: 200, Y: 150}, high.Snapshot().Position)

	_, ok = h.host.PointerDown(h.ctx, pointerAt(5, 5))
	assert.False(t, ok)
}

func TestFrameHost_SameLayerStacksByInsertion(t *testing.T) {
	h := newFrameHarness(t)
	h.addFrame(t, entity.FrameOptions{ID: "first"}, nil)
	h.addFrame(t, entity.FrameOptions{ID: "second", InitialPosition: &entity.Position{X: 50, Y: 50}}, nil)

	got, ok := h.host.FrameAt(entity.Position{X: 60, Y: 60})
	require.True(t, ok)
	assert.Equal(t, entity.FrameID("second"), got.ID())
}

func TestFrameHost_RejectsDuplicateID(t *testing.T) {
	h := newFrameHarness(t)
	h.addFrame(t, entity.FrameOptions{ID: "dup"}, nil)

	f := h.newFrame(t, entity.FrameOptions{ID: "dup"}, port.StaticPanel{Width: 10, Height: 10})
	assert.ErrorIs(t, h.host.Add(h.ctx, f, nil), ErrDuplicateFrame)
}

func TestFrameHost_LookupsDuringDragAndResize(t *testing.T) {
	h := newFrameHarness(t)
	a := h.addFrame(t, entity.FrameOptions{ID: "a"}, nil)
	h.addFrame(t, entity.FrameOptions{ID: "b", InitialPosition: &entity.Position{X: 400, Y: 20}}, nil)

	a.OnPointerDown(h.ctx, pointerAt(30, 30))

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			h.host.PointerMove(h.ctx, pointerAt(float64(40+i), 40))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, ok := h.host.Frame("b")
			assert.True(t, ok)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			h.host.Resize(h.ctx, entity.Size{Width: float64(1000 + i%2), Height: 800})
		}
	}()
	wg.Wait()

	h.host.PointerUp(h.ctx, pointerAt(240, 40))
	assert.Equal(t, frame.PhaseIdle, a.Snapshot().Phase)
}

func TestFrameHost_ClickAfterDragIsSuppressed(t *testing.T) {
	h := newFrameHarness(t)

	var clicks []entity.Position
	h.addFrame(t, entity.FrameOptions{ID: "btn"}, func(_ context.Context, ev *ContentEvent) {
		clicks = append(clicks, ev.Position)
	})

	h.host.PointerDown(h.ctx, pointerAt(30, 30))
	h.host.PointerUp(h.ctx, pointerAt(31, 31))
	require.Len(t, clicks, 1)

	h.host.PointerDown(h.ctx, pointerAt(30, 30))
	h.host.PointerMove(h.ctx, pointerAt(130, 130))
	h.host.PointerUp(h.ctx, pointerAt(130, 130))
	assert.Len(t, clicks, 1, "the release ending a drag must not click")

	h.host.PointerDown(h.ctx, pointerAt(130, 130))
	h.host.PointerUp(h.ctx, pointerAt(130, 130))
	assert.Len(t, clicks, 2)
}

func TestFrameHost_ReleaseOutsidePressedFrameDoesNotClick(t *testing.T) {
	h := newFrameHarness(t)

	clicks := 0
	h.addFrame(t, entity.FrameOptions{ID: "btn"}, func(context.Context, *ContentEvent) { clicks++ })

	h.host.PointerDown(h.ctx, pointerAt(600, 600))
	h.host.PointerUp(h.ctx, pointerAt(30, 30))
	assert.Zero(t, clicks)
}

func TestFrameHost_TouchDragSuppressesTouchEnd(t *testing.T) {
	h := newFrameHarness(t)

	var kinds []ContentEventKind
	f := h.addFrame(t, entity.FrameOptions{ID: "tap"}, func(_ context.Context, ev *ContentEvent) {
		kinds = append(kinds, ev.Kind)
	})

	h.host.TouchStart(h.ctx, touchAt(3, 30, 30))
	h.host.TouchEnd(h.ctx, touchAt(3, 30, 30))
	assert.Equal(t, []ContentEventKind{ContentTouchEnd}, kinds)

	h.host.TouchStart(h.ctx, touchAt(4, 30, 30))
	h.host.TouchMove(h.ctx, touchAt(4, 230, 230))
	assert.Equal(t, frame.PhaseDragging, f.Snapshot().Phase)
	h.host.TouchEnd(h.ctx, touchAt(4, 230, 230))

	assert.Len(t, kinds, 1)
	assert.Equal(t, entity.Position{X: 220, Y: 220}, f.Snapshot().Position)
}

func TestFrameHost_ApplyOptions(t *testing.T) {
	h := newFrameHarness(t)
	a := h.addFrame(t, entity.FrameOptions{ID: "a"}, nil)
	b := h.addFrame(t, entity.FrameOptions{ID: "b", InitialPosition: &entity.Position{X: 700, Y: 300}}, nil)

	err := h.host.ApplyOptions(h.ctx, func(o entity.FrameOptions) entity.FrameOptions {
		o.Anchored = true
		o.AnchorMargin = entity.Ptr(4.0)
		return o
	})
	require.NoError(t, err)

	assert.Equal(t, entity.Position{X: 4, Y: 20}, a.Snapshot().Position)
	assert.Equal(t, entity.AnchorLeft, a.Snapshot().Side)
	assert.Equal(t, entity.Position{X: 796, Y: 300}, b.Snapshot().Position)
	assert.Equal(t, entity.AnchorRight, b.Snapshot().Side)

	err = h.host.ApplyOptions(h.ctx, func(o entity.FrameOptions) entity.FrameOptions {
		o.DragThreshold = entity.Ptr(-1.0)
		return o
	})
	assert.Error(t, err)
}

func TestFrameHost_CloseUnmountsFrames(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "a"}, nil)

	h.host.PointerDown(h.ctx, pointerAt(30, 30))
	h.host.PointerMove(h.ctx, pointerAt(130, 130))
	h.host.Close(h.ctx)

	_, owned := h.host.Registry().Owner()
	assert.False(t, owned)
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)
}
