// Package demo hosts a set of draggable frames and renders them into a
// canvas grid for the terminal backends.
package demo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/application/usecase"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/logging"
	"github.com/bnema/dragframe/internal/ui/canvas"
	"github.com/bnema/dragframe/internal/ui/component"
)

// FrameSpec describes one demo frame.
type FrameSpec struct {
	Options entity.FrameOptions
	Title   string
	Body    string
	Size    entity.Size
}

type panel struct {
	spec   FrameSpec
	clicks int
}

// Scene owns a frame host and the content of the frames it hosts.
type Scene struct {
	host  *component.FrameHost
	clock port.Clock

	mu     sync.RWMutex
	panels map[entity.FrameID]*panel
	grid   *canvas.Grid
	status string
}

// NewScene creates a frame for each spec and adds it to host.
func NewScene(
	ctx context.Context,
	host *component.FrameHost,
	positions *usecase.FramePositionsUseCase,
	clock port.Clock,
	specs []FrameSpec,
) (*Scene, error) {
	if clock == nil {
		clock = port.SystemClock{}
	}
	s := &Scene{
		host:   host,
		clock:  clock,
		panels: make(map[entity.FrameID]*panel, len(specs)),
		grid:   canvas.New(0, 0),
	}

	for _, spec := range specs {
		f, err := component.NewDragFrame(spec.Options, port.StaticPanel(spec.Size), positions, host.Registry(), clock)
		if err != nil {
			return nil, fmt.Errorf("create frame: %w", err)
		}
		s.panels[f.ID()] = &panel{spec: spec}
		if err := host.Add(ctx, f, s.contentHandler(f.ID())); err != nil {
			return nil, err
		}
	}

	logging.FromContext(ctx).Debug().Int("frames", len(specs)).Msg("demo scene ready")
	return s, nil
}

// Host returns the frame host input adapters feed.
func (s *Scene) Host() *component.FrameHost {
	return s.host
}

func (s *Scene) contentHandler(id entity.FrameID) component.ContentHandler {
	return func(ctx context.Context, ev *component.ContentEvent) {
		s.mu.Lock()
		p := s.panels[id]
		if p != nil {
			p.clicks++
			s.status = fmt.Sprintf("%s: %s", id, ev.Kind)
		}
		s.mu.Unlock()

		logging.FromContext(ctx).Debug().
			Str("frame_id", string(id)).
			Str("event", ev.Kind.String()).
			Msg("content event")
	}
}

// Clicks returns the number of content events the frame has received.
func (s *Scene) Clicks(id entity.FrameID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.panels[id]; p != nil {
		return p.clicks
	}
	return 0
}

// Status returns the last status message.
func (s *Scene) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scene) setStatus(msg string) {
	s.mu.Lock()
	s.status = msg
	s.mu.Unlock()
}

// Animating reports whether any frame is still settling at now.
func (s *Scene) Animating(now time.Time) bool {
	for _, f := range s.host.Frames() {
		if f.Animating(now) {
			return true
		}
	}
	return false
}

// ResetAll moves every frame back to its initial position and forgets the
// stored positions.
func (s *Scene) ResetAll(ctx context.Context) error {
	var errs []error
	for _, f := range s.host.Frames() {
		if err := f.Reset(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.setStatus("positions reset")
	return errors.Join(errs...)
}

// ToggleAnchored flips edge anchoring on every frame.
func (s *Scene) ToggleAnchored(ctx context.Context) error {
	var anchored bool
	err := s.host.ApplyOptions(ctx, func(o entity.FrameOptions) entity.FrameOptions {
		o.Anchored = !o.Anchored
		anchored = o.Anchored
		return o
	})
	if anchored {
		s.setStatus("anchoring on")
	} else {
		s.setStatus("anchoring off")
	}
	return err
}

// ApplySpecs replaces the options of hosted frames with those of the specs
// sharing their id. Frames without a spec keep their options.
func (s *Scene) ApplySpecs(ctx context.Context, specs []FrameSpec) error {
	byID := make(map[entity.FrameID]FrameSpec, len(specs))
	for _, spec := range specs {
		byID[spec.Options.WithDefaults().ID] = spec
	}

	s.mu.Lock()
	for id, spec := range byID {
		if p := s.panels[id]; p != nil {
			p.spec.Title = spec.Title
			p.spec.Body = spec.Body
		}
	}
	s.mu.Unlock()

	err := s.host.ApplyOptions(ctx, func(o entity.FrameOptions) entity.FrameOptions {
		if spec, ok := byID[o.ID]; ok {
			next := spec.Options
			next.ID = o.ID
			return next
		}
		return o
	})
	s.setStatus("config reloaded")
	return err
}

// Render draws every frame, bottom to top, at its display position for now.
// The returned grid is reused by later calls.
func (s *Scene) Render(now time.Time) *canvas.Grid {
	vp := s.host.ViewportSize()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := int(vp.Width), int(vp.Height)
	if s.grid.Width() != w || s.grid.Height() != h {
		s.grid.Resize(w, h)
	} else {
		s.grid.Clear()
	}

	for _, f := range s.host.Frames() {
		p := s.panels[f.ID()]
		if p == nil {
			continue
		}
		s.drawFrame(f, p, now)
	}
	return s.grid
}

func (s *Scene) drawFrame(f *component.DragFrame, p *panel, now time.Time) {
	pos := f.DisplayPosition(now)
	x, y := int(math.Round(pos.X)), int(math.Round(pos.Y))
	w, h := int(p.spec.Size.Width), int(p.spec.Size.Height)

	border := canvas.RoleBorder
	if f.Hints().Dragging {
		border = canvas.RoleActive
	}

	title := p.spec.Title
	if title == "" {
		title = string(f.ID())
	}
	if snap := f.Snapshot(); snap.Anchored && snap.Side != entity.AnchorNone {
		title += " ⇢ " + string(snap.Side)
	}
	s.grid.Box(x, y, w, h, title, border)

	inner := w - 4
	rows := h - 2
	if inner < 1 || rows < 1 {
		return
	}
	lines := strings.Split(p.spec.Body, "\n")
	for i := 0; i < rows-1 && i < len(lines); i++ {
		s.grid.Text(x+2, y+1+i, lines[i], canvas.RoleText, inner)
	}
	s.grid.Text(x+2, y+h-2, fmt.Sprintf("clicks: %d", p.clicks), canvas.RoleMuted, inner)
}
