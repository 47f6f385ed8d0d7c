// Package screen runs the frames demo directly on a tcell screen.
package screen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/cli/styles"
	"github.com/bnema/dragframe/internal/logging"
	"github.com/bnema/dragframe/internal/ui/demo"
	"github.com/bnema/dragframe/internal/ui/input"
)

const (
	frameInterval = 16 * time.Millisecond
	statusRows    = 1
	statusHint    = " r reset · a anchor · q quit "
)

// ReloadEvent carries new frame specs into the event loop.
type ReloadEvent struct {
	tcell.EventTime
	Specs []demo.FrameSpec
}

// PostReload queues new frame specs for the running loop.
func PostReload(s tcell.Screen, specs []demo.FrameSpec) error {
	ev := &ReloadEvent{Specs: specs}
	ev.SetEventNow()
	return s.PostEvent(ev)
}

type runner struct {
	screen  tcell.Screen
	scene   *demo.Scene
	theme   *styles.Theme
	clock   port.Clock
	adapter *input.TcellAdapter
}

// Run draws the scene on the initialized screen s and feeds it input until
// the user quits or ctx is canceled. The screen is finalized on return.
func Run(ctx context.Context, s tcell.Screen, scene *demo.Scene, theme *styles.Theme, clock port.Clock) error {
	if clock == nil {
		clock = port.SystemClock{}
	}
	defer s.Fini()

	s.SetStyle(tcell.StyleDefault)
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()

	r := &runner{
		screen:  s,
		scene:   scene,
		theme:   theme,
		clock:   clock,
		adapter: input.NewTcellAdapter(scene.Host(), statusRows),
	}
	return r.loop(ctx)
}

func (r *runner) loop(ctx context.Context) error {
	log := logging.FromContext(ctx)

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	w, h := r.screen.Size()
	r.adapter.Handle(ctx, tcell.NewEventResize(w, h))
	r.draw()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			quit, err := r.handle(ctx, ev)
			if err != nil {
				log.Warn().Err(err).Msg("demo action failed")
			}
			if quit {
				log.Debug().Msg("tcell demo quit")
				return nil
			}
			r.draw()
		case <-ticker.C:
			if r.scene.Animating(r.clock.Now()) {
				r.draw()
			}
		}
	}
}

func (r *runner) handle(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ctx, ev)
	case *tcell.EventResize:
		r.screen.Sync()
	case *ReloadEvent:
		return false, r.scene.ApplySpecs(ctx, ev.Specs)
	}
	r.adapter.Handle(ctx, ev)
	return false, nil
}

func (r *runner) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyRune:
	default:
		return false, nil
	}

	switch ev.Rune() {
	case 'q':
		return true, nil
	case 'r':
		return false, r.scene.ResetAll(ctx)
	case 'a':
		return false, r.scene.ToggleAnchored(ctx)
	}
	return false, nil
}

func (r *runner) draw() {
	r.screen.Clear()

	grid := r.scene.Render(r.clock.Now())
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := grid.At(x, y)
			if c.Continuation {
				continue
			}
			r.screen.SetContent(x, y, c.Rune, nil, r.theme.CellStyle(c.Role))
		}
	}
	r.drawStatus()
	r.screen.Show()
}

func (r *runner) drawStatus() {
	w, h := r.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1
	style := r.theme.StatusCellStyle()

	line := []rune(statusHint + r.scene.Status())
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(line) {
			ch = line[x]
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// ErrNoTerminal is returned when no terminal screen can be created.
var ErrNoTerminal = errors.New("no terminal available")

// NewScreen creates and initializes the terminal screen for Run.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTerminal, err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return s, nil
}
