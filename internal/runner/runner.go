// Package runner drives a breathing session without the TUI, printing
// each phase as a line. It backs `breathe start --no-ui`.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/breathe/internal/audio"
	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
	"github.com/balkashynov/breathe/internal/cue"
	"github.com/balkashynov/breathe/internal/session"
)

// Config holds the runner settings. Zero values get sensible defaults.
type Config struct {
	Clock  clock.Clock
	Out    io.Writer
	Logger *zap.Logger

	Cues    cue.Config // Audio, Clock and Logger are filled in
	Lengths map[string]time.Duration
	Volume  float64
	Voice   catalog.Voice
	TrackID int // ambient loop, 0 is silence

	// Cycles stops the run after this many full cycles; 0 runs until the
	// context is cancelled
	Cycles int
}

// Result summarizes a finished run
type Result struct {
	Cycles  int
	Elapsed time.Duration
}

type eventKind int

const (
	phaseEvent eventKind = iota
	clipEvent
	trackEvent
)

type event struct {
	kind      eventKind
	phase     catalog.Phase
	remaining int
	clip      string
}

// Runner owns one controller and prints what it does
type Runner struct {
	cfg    Config
	events chan event
	deck   *audio.Deck
	ctrl   *session.Controller
}

// New wires a controller, dispatcher and deck together
func New(cfg Config) *Runner {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := &Runner{cfg: cfg, events: make(chan event, 64)}

	r.deck = audio.NewDeck(cfg.Clock, cfg.Lengths, cfg.Volume, cfg.Logger.Named("audio"), r.onClip)
	cc := cfg.Cues
	if cc.CueLevel == 0 && cc.StoryLevel == 0 {
		cc = cue.DefaultConfig()
	}
	cc.Audio = r.deck
	cc.Clock = cfg.Clock
	cc.Logger = cfg.Logger.Named("cue")

	r.ctrl = session.New(session.Config{
		Clock:       cfg.Clock,
		Cues:        cue.New(cc),
		Presenter:   r,
		Logger:      cfg.Logger.Named("session"),
		Preferences: session.Preferences{ModeID: catalog.DefaultModeID, Voice: cfg.Voice},
	})
	return r
}

// PhaseChanged is called with the controller lock held; it never blocks.
// The cycle count is read when the event is handled, not here.
func (r *Runner) PhaseChanged(phase catalog.Phase, remaining int) {
	r.send(event{kind: phaseEvent, phase: phase, remaining: remaining})
}

// ScaleChanged has nothing to draw in a terminal log
func (r *Runner) ScaleChanged(float64, time.Duration) {}

// Countdown is not printed; one line per phase is enough
func (r *Runner) Countdown(catalog.Phase, int) {}

func (r *Runner) onClip(e audio.Event) {
	switch e.Kind {
	case audio.ClipStarted:
		r.send(event{kind: clipEvent, clip: e.Clip})
	case audio.TrackChanged:
		if e.Clip != "" {
			r.send(event{kind: trackEvent, clip: e.Clip})
		}
	}
}

func (r *Runner) send(e event) {
	select {
	case r.events <- e:
	default:
		r.cfg.Logger.Warn("Runner event dropped", zap.String("phase", e.phase.String()))
	}
}

// Run breathes mode until the cycle limit or ctx ends. Cancellation is a
// normal way to finish and is not reported as an error.
func (r *Runner) Run(ctx context.Context, mode catalog.Mode) (Result, error) {
	start := r.cfg.Clock.Now()
	if err := mode.Validate(); err != nil {
		return Result{}, err
	}
	if track, ok := catalog.TrackByID(r.cfg.TrackID); ok {
		r.deck.PlayBackground(track)
	}
	defer r.deck.StopBackground()

	if err := r.ctrl.Start(mode); err != nil {
		return Result{}, err
	}
	defer r.ctrl.Stop()

	fmt.Fprintf(r.cfg.Out, "🌬️  %s · %s\n", mode.Name, mode.Pattern())
	if r.cfg.Cycles > 0 {
		fmt.Fprintf(r.cfg.Out, "   %d cycles · Ctrl+C to finish early\n\n", r.cfg.Cycles)
	} else {
		fmt.Fprintf(r.cfg.Out, "   Ctrl+C to finish\n\n")
	}

	finish := func() Result {
		res := Result{Cycles: r.ctrl.State().Cycles, Elapsed: r.cfg.Clock.Now().Sub(start)}
		fmt.Fprintf(r.cfg.Out, "\n✅ %d cycles in %s\n", res.Cycles, res.Elapsed.Round(time.Second))
		return res
	}

	for {
		select {
		case <-ctx.Done():
			return finish(), nil

		case e := <-r.events:
			switch e.kind {
			case clipEvent:
				fmt.Fprintf(r.cfg.Out, "     ♪ %s\n", e.clip)

			case trackEvent:
				fmt.Fprintf(r.cfg.Out, "   ♫ %s\n", e.clip)

			case phaseEvent:
				if r.cfg.Cycles > 0 && r.ctrl.State().Cycles >= r.cfg.Cycles {
					return finish(), nil
				}
				fmt.Fprintf(r.cfg.Out, "  %-12s %2ds\n", e.phase.Label(), e.remaining)
			}
		}
	}
}
