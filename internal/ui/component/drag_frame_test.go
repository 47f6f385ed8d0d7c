package component

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/dragframe/internal/application/port"
	mock_port "github.com/bnema/dragframe/internal/application/port/gomocks"
	"github.com/bnema/dragframe/internal/application/usecase"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/frame"
	"github.com/bnema/dragframe/internal/infrastructure/persistence/memory"
	"github.com/bnema/dragframe/internal/logging"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type frameHarness struct {
	ctx       context.Context
	host      *FrameHost
	store     *memory.KeyValueStore
	positions *usecase.FramePositionsUseCase
	clock     *fakeClock
}

func newFrameHarness(t *testing.T) *frameHarness {
	t.Helper()

	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
	host := NewFrameHost()
	store := memory.NewKeyValueStore()
	h := &frameHarness{
		ctx:       ctx,
		host:      host,
		store:     store,
		positions: usecase.NewFramePositionsUseCase(store, host, ""),
		clock:     &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	host.Resize(ctx, entity.Size{Width: 1000, Height: 800})
	return h
}

func (h *frameHarness) newFrame(t *testing.T, opts entity.FrameOptions, panel port.Panel) *DragFrame {
	t.Helper()
	f, err := NewDragFrame(opts, panel, h.positions, h.host.Registry(), h.clock)
	require.NoError(t, err)
	return f
}

func (h *frameHarness) addFrame(t *testing.T, opts entity.FrameOptions, content ContentHandler) *DragFrame {
	t.Helper()
	f := h.newFrame(t, opts, port.StaticPanel{Width: 200, Height: 100})
	require.NoError(t, h.host.Add(h.ctx, f, content))
	return f
}

func (h *frameHarness) persisted(t *testing.T, id entity.FrameID) (entity.Position, entity.AnchorSide) {
	t.Helper()
	_, found, err := h.store.Get(h.ctx, h.positions.StorageKey(id))
	require.NoError(t, err)
	require.True(t, found, "expected a persisted record for %s", id)
	return h.positions.LoadState(h.ctx, id, entity.Position{X: -1, Y: -1})
}

func pointerAt(x, y float64) PointerEvent {
	return PointerEvent{Position: entity.Position{X: x, Y: y}, Button: ButtonPrimary}
}

func touchAt(id int64, x, y float64) TouchEvent {
	return TouchEvent{Touches: []TouchPoint{{ID: id, Position: entity.Position{X: x, Y: y}}}}
}

func TestNewDragFrame_RequiresID(t *testing.T) {
	h := newFrameHarness(t)
	_, err := NewDragFrame(entity.FrameOptions{ID: "  "}, port.StaticPanel{Width: 1, Height: 1}, h.positions, h.host.Registry(), h.clock)
	assert.ErrorIs(t, err, entity.ErrFrameIDRequired)
}

func TestDragFrame_BasicDragPersistsSettledPosition(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "basic"}, nil)

	assert.Equal(t, entity.Position{X: 20, Y: 20}, f.Snapshot().Position)

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	assert.Equal(t, frame.PhasePending, f.Snapshot().Phase)

	f.OnPointerMove(h.ctx, pointerAt(130, 130))
	snap := f.Snapshot()
	assert.Equal(t, frame.PhaseDragging, snap.Phase)
	assert.Equal(t, entity.Position{X: 120, Y: 120}, snap.Position)

	_, found, err := h.store.Get(h.ctx, h.positions.StorageKey("basic"))
	require.NoError(t, err)
	assert.False(t, found, "nothing is persisted while dragging")

	f.OnPointerUp(h.ctx, pointerAt(130, 130))
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)

	pos, side := h.persisted(t, "basic")
	assert.InDelta(t, 120, pos.X, 1e-9)
	assert.InDelta(t, 120, pos.Y, 1e-9)
	assert.Equal(t, entity.AnchorNone, side)

	_, owned := h.host.Registry().Owner()
	assert.False(t, owned)
}

func TestDragFrame_BelowThresholdIsAClick(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "click"}, nil)

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnPointerMove(h.ctx, pointerAt(33, 35))
	assert.Equal(t, frame.PhasePending, f.Snapshot().Phase)
	assert.Equal(t, entity.Position{X: 20, Y: 20}, f.Snapshot().Position)

	_, owned := h.host.Registry().Owner()
	assert.False(t, owned, "a press below the threshold must not claim the registry")

	f.OnPointerUp(h.ctx, pointerAt(33, 35))
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)

	_, found, err := h.store.Get(h.ctx, h.positions.StorageKey("click"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDragFrame_SecondaryButtonIgnored(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "rmb"}, nil)

	f.OnPointerDown(h.ctx, PointerEvent{Position: entity.Position{X: 30, Y: 30}, Button: ButtonSecondary})
	f.OnPointerMove(h.ctx, pointerAt(130, 130))

	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)
	assert.Equal(t, entity.Position{X: 20, Y: 20}, f.Snapshot().Position)
}

func TestDragFrame_AnchorSnap(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "dock", Anchored: true}, nil)

	// Mounting an anchored frame rests it against the nearest edge.
	assert.Equal(t, entity.Position{X: 10, Y: 20}, f.Snapshot().Position)
	assert.Equal(t, entity.AnchorLeft, f.Snapshot().Side)

	f.OnPointerDown(h.ctx, pointerAt(20, 30))
	f.OnPointerMove(h.ctx, pointerAt(200, 50))
	assert.Equal(t, frame.PhaseDragging, f.Snapshot().Phase)
	f.OnPointerUp(h.ctx, pointerAt(200, 50))

	snap := f.Snapshot()
	assert.Equal(t, entity.AnchorLeft, snap.Side)
	assert.Equal(t, entity.Position{X: 10, Y: 40}, snap.Position)

	h.clock.Advance(time.Second)

	f.OnPointerDown(h.ctx, pointerAt(20, 50))
	f.OnPointerMove(h.ctx, pointerAt(900, 50))
	f.OnPointerUp(h.ctx, pointerAt(900, 50))

	snap = f.Snapshot()
	assert.Equal(t, entity.AnchorRight, snap.Side)
	assert.Equal(t, entity.Position{X: 790, Y: 40}, snap.Position)

	pos, side := h.persisted(t, "dock")
	assert.InDelta(t, 790, pos.X, 1e-9)
	assert.InDelta(t, 40, pos.Y, 1e-9)
	assert.Equal(t, entity.AnchorRight, side)
}

func TestDragFrame_AnchoredThresholdPolicy(t *testing.T) {
	h := newFrameHarness(t)

	immediate := h.addFrame(t, entity.FrameOptions{ID: "imm", Anchored: true}, nil)
	immediate.OnPointerDown(h.ctx, pointerAt(20, 30))
	immediate.OnPointerMove(h.ctx, pointerAt(21, 30))
	assert.Equal(t, frame.PhaseDragging, immediate.Snapshot().Phase)
	immediate.OnPointerUp(h.ctx, pointerAt(21, 30))

	h.clock.Advance(time.Second)

	thresholded := h.addFrame(t, entity.FrameOptions{
		ID:                "thr",
		Anchored:          true,
		AnchoredDragStart: entity.AnchoredDragThreshold,
		InitialPosition:   &entity.Position{X: 20, Y: 300},
	}, nil)
	thresholded.OnPointerDown(h.ctx, pointerAt(20, 310))
	thresholded.OnPointerMove(h.ctx, pointerAt(21, 310))
	assert.Equal(t, frame.PhasePending, thresholded.Snapshot().Phase)
}

func TestDragFrame_ExplicitZeroOptions(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{
		ID:                 "zero",
		Anchored:           true,
		AnchoredDragStart:  entity.AnchoredDragThreshold,
		InitialPosition:    &entity.Position{X: 20, Y: 300},
		DragThreshold:      entity.Ptr(0.0),
		AnchorMargin:       entity.Ptr(0.0),
		TransitionDuration: entity.Ptr(time.Duration(0)),
		TouchDebounce:      entity.Ptr(time.Duration(0)),
	}, nil)

	// A zero margin rests the frame flush against the edge.
	assert.Equal(t, entity.Position{X: 0, Y: 300}, f.Snapshot().Position)

	// A zero threshold turns any movement into a drag.
	f.OnPointerDown(h.ctx, pointerAt(5, 310))
	f.OnPointerMove(h.ctx, pointerAt(8, 310))
	assert.Equal(t, frame.PhaseDragging, f.Snapshot().Phase)

	f.OnPointerUp(h.ctx, pointerAt(8, 310))
	now := h.clock.Now()
	assert.Equal(t, entity.Position{X: 0, Y: 300}, f.Snapshot().Position)
	assert.False(t, f.Animating(now))
	assert.Equal(t, entity.Position{X: 0, Y: 300}, f.DisplayPosition(now))
	assert.Zero(t, f.Hints().TransitionDuration)

	// A zero debounce lets the mouse in right after a touch ends.
	f.OnTouchStart(h.ctx, touchAt(1, 5, 310))
	f.OnTouchEnd(h.ctx, touchAt(1, 5, 310))
	f.OnPointerDown(h.ctx, pointerAt(5, 310))
	assert.Equal(t, frame.PhasePending, f.Snapshot().Phase)
	f.OnPointerUp(h.ctx, pointerAt(5, 310))
}

func TestDragFrame_ResizeKeepsAnchorSide(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{
		ID:              "right",
		Anchored:        true,
		InitialPosition: &entity.Position{X: 790, Y: 100},
	}, nil)

	require.Equal(t, entity.AnchorRight, f.Snapshot().Side)
	require.Equal(t, 790.0, f.Snapshot().Position.X)

	h.host.Resize(h.ctx, entity.Size{Width: 1200, Height: 800})

	snap := f.Snapshot()
	assert.Equal(t, entity.AnchorRight, snap.Side)
	assert.Equal(t, entity.Position{X: 990, Y: 100}, snap.Position)

	pos, side := h.persisted(t, "right")
	assert.InDelta(t, 990, pos.X, 1e-9)
	assert.Equal(t, entity.AnchorRight, side)
}

func TestDragFrame_ResizeClampsFreeFrame(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "free", InitialPosition: &entity.Position{X: 700, Y: 600}}, nil)

	h.host.Resize(h.ctx, entity.Size{Width: 600, Height: 400})
	assert.Equal(t, entity.Position{X: 400, Y: 300}, f.Snapshot().Position)
}

func TestDragFrame_ReleaseClampsFreeFrame(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "edge"}, nil)

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnPointerMove(h.ctx, pointerAt(1500, 1500))
	f.OnPointerUp(h.ctx, pointerAt(1500, 1500))

	want := h.positions.Clamp(entity.Position{X: 1490, Y: 1490}, entity.Size{Width: 200, Height: 100})
	assert.Equal(t, entity.Position{X: 800, Y: 700}, want)
	assert.Equal(t, want, f.Snapshot().Position)

	pos, _ := h.persisted(t, "edge")
	assert.InDelta(t, want.X, pos.X, 1e-9)
	assert.InDelta(t, want.Y, pos.Y, 1e-9)
}

func TestDragFrame_ResizeIgnoredWhileDragging(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "busy", Anchored: true}, nil)

	f.OnPointerDown(h.ctx, pointerAt(20, 30))
	f.OnPointerMove(h.ctx, pointerAt(400, 300))
	before := f.Snapshot()

	h.host.Resize(h.ctx, entity.Size{Width: 1200, Height: 900})
	assert.Equal(t, before.Position, f.Snapshot().Position)
	assert.Equal(t, frame.PhaseDragging, f.Snapshot().Phase)
}

func TestDragFrame_MutualExclusion(t *testing.T) {
	h := newFrameHarness(t)
	a := h.addFrame(t, entity.FrameOptions{ID: "a"}, nil)
	b := h.addFrame(t, entity.FrameOptions{ID: "b", InitialPosition: &entity.Position{X: 400, Y: 20}}, nil)

	a.OnPointerDown(h.ctx, pointerAt(30, 30))
	a.OnPointerMove(h.ctx, pointerAt(130, 130))
	owner, ok := h.host.Registry().Owner()
	require.True(t, ok)
	assert.Equal(t, entity.FrameID("a"), owner)

	b.OnPointerDown(h.ctx, pointerAt(410, 30))
	b.OnPointerMove(h.ctx, pointerAt(510, 130))
	assert.Equal(t, frame.PhaseIdle, b.Snapshot().Phase)
	assert.Equal(t, entity.Position{X: 400, Y: 20}, b.Snapshot().Position)

	a.OnPointerUp(h.ctx, pointerAt(130, 130))
	_, ok = h.host.Registry().Owner()
	assert.False(t, ok)

	b.OnPointerDown(h.ctx, pointerAt(410, 30))
	b.OnPointerMove(h.ctx, pointerAt(510, 130))
	assert.Equal(t, frame.PhaseDragging, b.Snapshot().Phase)
}

func TestDragFrame_ClaimLostDuringPending(t *testing.T) {
	h := newFrameHarness(t)
	a := h.addFrame(t, entity.FrameOptions{ID: "a"}, nil)
	b := h.addFrame(t, entity.FrameOptions{ID: "b", InitialPosition: &entity.Position{X: 400, Y: 20}}, nil)

	b.OnPointerDown(h.ctx, pointerAt(410, 30))
	a.OnPointerDown(h.ctx, pointerAt(30, 30))
	a.OnPointerMove(h.ctx, pointerAt(130, 130))

	b.OnPointerMove(h.ctx, pointerAt(510, 130))
	assert.Equal(t, frame.PhasePending, b.Snapshot().Phase)
	assert.Equal(t, entity.Position{X: 400, Y: 20}, b.Snapshot().Position)

	b.OnPointerUp(h.ctx, pointerAt(510, 130))
	owner, ok := h.host.Registry().Owner()
	require.True(t, ok, "a release from another frame must not free the registry")
	assert.Equal(t, entity.FrameID("a"), owner)
}

func TestDragFrame_UnmeasuredPanelIsNoop(t *testing.T) {
	h := newFrameHarness(t)
	ctrl := gomock.NewController(t)

	panel := mock_port.NewMockPanel(ctrl)
	panel.EXPECT().Measure().Return(entity.Size{}, false).AnyTimes()

	f := h.newFrame(t, entity.FrameOptions{ID: "ghost"}, panel)
	require.NoError(t, h.host.Add(h.ctx, f, nil))

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnPointerMove(h.ctx, pointerAt(130, 130))
	f.OnPointerUp(h.ctx, pointerAt(130, 130))

	snap := f.Snapshot()
	assert.Equal(t, frame.PhaseIdle, snap.Phase)
	assert.False(t, snap.Measured)
	assert.Equal(t, entity.Position{X: 20, Y: 20}, snap.Position)

	_, ok := f.Bounds()
	assert.False(t, ok)
}

func TestDragFrame_TouchCancelFinalizesLikeEnd(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "touch"}, nil)

	f.OnTouchStart(h.ctx, touchAt(7, 30, 30))
	f.OnTouchMove(h.ctx, touchAt(8, 500, 500))
	assert.Equal(t, frame.PhasePending, f.Snapshot().Phase, "other touch identifiers are ignored")

	f.OnTouchMove(h.ctx, touchAt(7, 130, 130))
	assert.Equal(t, frame.PhaseDragging, f.Snapshot().Phase)

	f.OnTouchEnd(h.ctx, touchAt(8, 130, 130))
	assert.Equal(t, frame.PhaseDragging, f.Snapshot().Phase)

	f.OnTouchCancel(h.ctx, touchAt(7, 130, 130))
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)

	pos, _ := h.persisted(t, "touch")
	assert.InDelta(t, 120, pos.X, 1e-9)
	assert.InDelta(t, 120, pos.Y, 1e-9)
}

func TestDragFrame_PhantomMouseAfterTouchIsBlocked(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "phantom"}, nil)

	f.OnTouchStart(h.ctx, touchAt(1, 30, 30))
	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnTouchEnd(h.ctx, touchAt(1, 30, 30))
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)

	h.clock.Advance(50 * time.Millisecond)
	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase, "compatibility mouse press inside the window")

	h.clock.Advance(200 * time.Millisecond)
	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	assert.Equal(t, frame.PhasePending, f.Snapshot().Phase)
}

func TestDragFrame_UnmountReleasesRegistry(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "gone"}, nil)

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnPointerMove(h.ctx, pointerAt(130, 130))
	f.Unmount(h.ctx)

	_, owned := h.host.Registry().Owner()
	assert.False(t, owned)
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)

	f.OnPointerDown(h.ctx, pointerAt(130, 130))
	assert.Equal(t, frame.PhaseIdle, f.Snapshot().Phase)
}

func TestDragFrame_WrapContentSuppressesDuringDrag(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "content"}, nil)

	calls := 0
	wrapped := f.WrapContent(func(_ context.Context, _ *ContentEvent) { calls++ })

	ev := &ContentEvent{Kind: ContentClick}
	wrapped(h.ctx, ev)
	assert.Equal(t, 1, calls)
	assert.False(t, ev.DefaultPrevented())

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnPointerMove(h.ctx, pointerAt(130, 130))
	assert.True(t, f.Hints().PointerEventsDisabled)
	assert.Zero(t, f.Hints().TransitionDuration)

	ev = &ContentEvent{Kind: ContentTouchEnd}
	wrapped(h.ctx, ev)
	assert.Equal(t, 1, calls)
	assert.True(t, ev.DefaultPrevented())
	assert.True(t, ev.PropagationStopped())

	f.OnPointerUp(h.ctx, pointerAt(130, 130))
	hints := f.Hints()
	assert.False(t, hints.PointerEventsDisabled)
	assert.Equal(t, entity.DefaultTransitionDuration, hints.TransitionDuration)
	assert.Equal(t, entity.DefaultLayer, hints.Layer)

	// The click generated by the release is swallowed once.
	wrapped(h.ctx, &ContentEvent{Kind: ContentClick})
	assert.Equal(t, 1, calls)
	wrapped(h.ctx, &ContentEvent{Kind: ContentClick})
	assert.Equal(t, 2, calls)
}

func TestDragFrame_SettleTransition(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "ease", Anchored: true}, nil)

	f.OnPointerDown(h.ctx, pointerAt(20, 30))
	f.OnPointerMove(h.ctx, pointerAt(400, 30))
	assert.Equal(t, entity.Position{X: 390, Y: 20}, f.DisplayPosition(h.clock.Now()))

	f.OnPointerUp(h.ctx, pointerAt(400, 30))
	start := h.clock.Now()

	assert.Equal(t, entity.Position{X: 390, Y: 20}, f.DisplayPosition(start))
	assert.True(t, f.Animating(start))

	mid := f.DisplayPosition(start.Add(125 * time.Millisecond))
	assert.Less(t, mid.X, 390.0)
	assert.Greater(t, mid.X, 10.0)

	end := start.Add(entity.DefaultTransitionDuration)
	assert.Equal(t, entity.Position{X: 10, Y: 20}, f.DisplayPosition(end))
	assert.False(t, f.Animating(end))
}

func TestDragFrame_MountRestoresPersistedState(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want entity.Position
	}{
		{name: "fractional", raw: `{"version":2,"x":0.5,"y":0.5,"percentage":true}`, want: entity.Position{X: 500, Y: 400}},
		{name: "legacy pixels", raw: `{"x":300,"y":200}`, want: entity.Position{X: 300, Y: 200}},
		{name: "legacy pixels clamped", raw: `{"x":3000,"y":-5}`, want: entity.Position{X: 800, Y: 0}},
		{name: "malformed", raw: "not-json", want: entity.Position{X: 20, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFrameHarness(t)
			require.NoError(t, h.store.Set(h.ctx, h.positions.StorageKey("r"), tt.raw))

			f := h.addFrame(t, entity.FrameOptions{ID: "r"}, nil)
			assert.Equal(t, tt.want, f.Snapshot().Position)
			assert.True(t, f.Snapshot().Restored)
		})
	}
}

func TestDragFrame_MountBeforeViewportDefersRestore(t *testing.T) {
	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
	host := NewFrameHost()
	store := memory.NewKeyValueStore()
	positions := usecase.NewFramePositionsUseCase(store, host, "")
	require.NoError(t, store.Set(ctx, positions.StorageKey("late"), `{"version":2,"x":0.5,"y":0.25,"percentage":true}`))

	f, err := NewDragFrame(entity.FrameOptions{ID: "late"}, port.StaticPanel{Width: 100, Height: 50}, positions, host.Registry(), &fakeClock{})
	require.NoError(t, err)
	require.NoError(t, host.Add(ctx, f, nil))
	assert.False(t, f.Snapshot().Restored)

	host.Resize(ctx, entity.Size{Width: 800, Height: 400})
	assert.True(t, f.Snapshot().Restored)
	assert.Equal(t, entity.Position{X: 400, Y: 100}, f.Snapshot().Position)
}

func TestDragFrame_ResetForgetsPosition(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "reset"}, nil)

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnPointerMove(h.ctx, pointerAt(330, 230))
	f.OnPointerUp(h.ctx, pointerAt(330, 230))
	require.Equal(t, 1, h.store.Len())

	require.NoError(t, f.Reset(h.ctx))
	assert.Equal(t, entity.Position{X: 20, Y: 20}, f.Snapshot().Position)
	assert.Equal(t, 0, h.store.Len())
}

func TestDragFrame_SetOptions(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "opts", InitialPosition: &entity.Position{X: 700, Y: 50}}, nil)

	err := f.SetOptions(h.ctx, entity.FrameOptions{ID: "other"})
	assert.ErrorIs(t, err, ErrFrameIDChanged)

	opts := f.Options()
	opts.Anchored = true
	require.NoError(t, f.SetOptions(h.ctx, opts))

	snap := f.Snapshot()
	assert.Equal(t, entity.AnchorRight, snap.Side)
	assert.Equal(t, entity.Position{X: 790, Y: 50}, snap.Position)
	_, side := h.persisted(t, "opts")
	assert.Equal(t, entity.AnchorRight, side)

	opts.Anchored = false
	require.NoError(t, f.SetOptions(h.ctx, opts))
	assert.Equal(t, entity.AnchorNone, f.Snapshot().Side)
	assert.Equal(t, entity.Position{X: 790, Y: 50}, f.Snapshot().Position)
}

func TestDragFrame_OnChangeReportsMoves(t *testing.T) {
	h := newFrameHarness(t)
	f := h.addFrame(t, entity.FrameOptions{ID: "watch"}, nil)

	var seen []frame.Phase
	f.OnChange(func(s FrameSnapshot) { seen = append(seen, s.Phase) })

	f.OnPointerDown(h.ctx, pointerAt(30, 30))
	f.OnPointerMove(h.ctx, pointerAt(130, 130))
	f.OnPointerMove(h.ctx, pointerAt(140, 130))
	f.OnPointerUp(h.ctx, pointerAt(140, 130))

	assert.Equal(t, []frame.Phase{
		frame.PhasePending,
		frame.PhaseDragging,
		frame.PhaseDragging,
		frame.PhaseIdle,
	}, seen)
}
