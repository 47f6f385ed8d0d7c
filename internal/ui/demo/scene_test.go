package demo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragframe/internal/application/usecase"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/infrastructure/persistence/memory"
	"github.com/bnema/dragframe/internal/ui/canvas"
	"github.com/bnema/dragframe/internal/ui/component"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type sceneHarness struct {
	ctx   context.Context
	clock *stepClock
	store *memory.KeyValueStore
	scene *Scene
}

func newSceneHarness(t *testing.T, specs ...FrameSpec) *sceneHarness {
	t.Helper()
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := memory.NewKeyValueStore()

	host := component.NewFrameHost()
	host.Resize(ctx, entity.Size{Width: 60, Height: 20})
	positions := usecase.NewFramePositionsUseCase(store, host, "")

	scene, err := NewScene(ctx, host, positions, clock, specs)
	require.NoError(t, err)
	return &sceneHarness{ctx: ctx, clock: clock, store: store, scene: scene}
}

func notesSpec() FrameSpec {
	return FrameSpec{
		Options: entity.FrameOptions{ID: "notes", InitialPosition: &entity.Position{X: 2, Y: 1}, AnchorMargin: entity.Ptr(1.0)},
		Title:   "Notes",
		Body:    "hello",
		Size:    entity.Size{Width: 24, Height: 5},
	}
}

func press(x, y float64) component.PointerEvent {
	return component.PointerEvent{Position: entity.Position{X: x, Y: y}, Button: component.ButtonPrimary}
}

func TestScene_RendersFrames(t *testing.T) {
	h := newSceneHarness(t, notesSpec())

	g := h.scene.Render(h.clock.now)
	require.Equal(t, 60, g.Width())
	require.Equal(t, 20, g.Height())

	assert.True(t, strings.HasPrefix(g.Line(1), "  ╭─ Notes ──"))
	assert.Contains(t, g.Line(2), "│ hello")
	assert.Contains(t, g.Line(4), "clicks: 0")
	assert.Equal(t, canvas.RoleBorder, g.At(2, 1).Role)
	assert.Equal(t, canvas.RoleMuted, g.At(4, 4).Role)
}

func TestScene_ClickReachesContent(t *testing.T) {
	h := newSceneHarness(t, notesSpec())
	host := h.scene.Host()

	host.PointerDown(h.ctx, press(5, 3))
	host.PointerUp(h.ctx, press(5, 3))

	assert.Equal(t, 1, h.scene.Clicks("notes"))
	assert.Equal(t, "notes: click", h.scene.Status())
	assert.Contains(t, h.scene.Render(h.clock.now).Line(4), "clicks: 1")
}

func TestScene_DragMovesFrameAndPersists(t *testing.T) {
	h := newSceneHarness(t, notesSpec())
	host := h.scene.Host()

	host.PointerDown(h.ctx, press(5, 3))
	host.PointerMove(h.ctx, press(25, 10))

	g := h.scene.Render(h.clock.now)
	assert.Equal(t, canvas.RoleActive, g.At(22, 8).Role, "dragging frame uses the active border")

	host.PointerUp(h.ctx, press(25, 10))
	h.clock.advance(time.Second)

	assert.False(t, h.scene.Animating(h.clock.now))
	g = h.scene.Render(h.clock.now)
	assert.True(t, strings.HasPrefix(g.Line(8)[22:], "╭─ Notes"))
	assert.Equal(t, 0, h.scene.Clicks("notes"))
	assert.Equal(t, 1, h.store.Len())
}

func TestScene_ToggleAnchoredAndReset(t *testing.T) {
	h := newSceneHarness(t, notesSpec())
	f, ok := h.scene.Host().Frame("notes")
	require.True(t, ok)

	require.NoError(t, h.scene.ToggleAnchored(h.ctx))
	assert.Equal(t, "anchoring on", h.scene.Status())
	snap := f.Snapshot()
	assert.True(t, snap.Anchored)
	assert.Equal(t, entity.AnchorLeft, snap.Side)
	assert.Equal(t, entity.Position{X: 1, Y: 1}, snap.Position)

	h.clock.advance(time.Second)
	assert.Contains(t, h.scene.Render(h.clock.now).Line(1), "Notes ⇢ left")

	require.NoError(t, h.scene.ToggleAnchored(h.ctx))
	assert.Equal(t, "anchoring off", h.scene.Status())
	assert.False(t, f.Snapshot().Anchored)

	require.NoError(t, h.scene.ResetAll(h.ctx))
	assert.Equal(t, entity.Position{X: 2, Y: 1}, f.Snapshot().Position)
	assert.Equal(t, "positions reset", h.scene.Status())
}

func TestScene_ApplySpecs(t *testing.T) {
	h := newSceneHarness(t, notesSpec())

	next := notesSpec()
	next.Title = "Renamed"
	next.Options.Layer = 5000
	require.NoError(t, h.scene.ApplySpecs(h.ctx, []FrameSpec{next}))

	f, ok := h.scene.Host().Frame("notes")
	require.True(t, ok)
	assert.Equal(t, 5000, f.Hints().Layer)
	assert.Contains(t, h.scene.Render(h.clock.now).Line(1), "Renamed")
	assert.Equal(t, "config reloaded", h.scene.Status())
}

func TestScene_StacksByLayer(t *testing.T) {
	top := notesSpec()
	top.Options.ID = "top"
	top.Options.Layer = 2000
	top.Title = "Top"

	h := newSceneHarness(t, top, notesSpec())
	assert.Contains(t, h.scene.Render(h.clock.now).Line(1), "Top")
}

func TestNewScene_RejectsInvalidSpec(t *testing.T) {
	host := component.NewFrameHost()
	positions := usecase.NewFramePositionsUseCase(memory.NewKeyValueStore(), host, "")
	_, err := NewScene(context.Background(), host, positions, nil, []FrameSpec{{Size: entity.Size{Width: 4, Height: 4}}})
	assert.Error(t, err)
}
