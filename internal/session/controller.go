// Package session runs the breathing cycle: it owns the current mode,
// phase and countdown and advances them once a second.
package session

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
	"github.com/balkashynov/breathe/internal/cue"
)

const (
	// ScaleRest is the circle size while idle or exhaling
	ScaleRest = 0.5
	// ScaleFull is the circle size while inhaling
	ScaleFull = 0.8

	tick = time.Second
)

// Cues receives phase entries and controls narration. cue.Dispatcher
// implements it.
type Cues interface {
	OnPhaseEntered(phase catalog.Phase, voice catalog.Voice)
	PlayStory(voice catalog.Voice, onComplete func()) error
	StopAllStories()
}

// Presenter drives whatever renders the session. Calls are made with the
// controller locked, so implementations must not block or call back in.
type Presenter interface {
	PhaseChanged(phase catalog.Phase, remaining int)
	ScaleChanged(target float64, over time.Duration)
	Countdown(phase catalog.Phase, remaining int)
}

// Preferences is the persisted selection read at construction
type Preferences struct {
	ModeID int
	Voice  catalog.Voice
}

// Config holds the controller collaborators. Cues and Presenter may be nil.
type Config struct {
	Clock       clock.Clock
	Cues        Cues
	Presenter   Presenter
	Logger      *zap.Logger
	Preferences Preferences

	// OnStoryComplete runs after a story started through PlayStory ends
	OnStoryComplete func(voice catalog.Voice)
}

// State is a snapshot of the session
type State struct {
	Active       bool
	Phase        catalog.Phase
	Mode         catalog.Mode
	Remaining    int
	Scale        float64
	Voice        catalog.Voice
	StoryPlaying bool
	Cycles       int
}

// Label is "idle" or the running phase
func (s State) Label() string {
	if !s.Active {
		return "idle"
	}
	return s.Phase.String()
}

// Controller advances one breathing session
type Controller struct {
	clock     clock.Clock
	cues      Cues
	presenter Presenter
	logger    *zap.Logger
	onStory   func(catalog.Voice)

	mu      sync.Mutex
	state   State
	pending *catalog.Mode
	timer   clock.Timer
	run     uint64 // bumped on every Start/Stop; stale ticks compare against it
}

// New creates an idle controller from the saved preferences. A saved
// story voice comes back as no guidance, and an unknown mode id falls back
// to the default mode.
func New(cfg Config) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	mode, ok := catalog.ModeByID(cfg.Preferences.ModeID)
	if !ok {
		cfg.Logger.Debug("Saved mode not found, using default",
			zap.Int("mode", cfg.Preferences.ModeID))
		mode, _ = catalog.ModeByID(catalog.DefaultModeID)
	}

	return &Controller{
		clock:     cfg.Clock,
		cues:      cfg.Cues,
		presenter: cfg.Presenter,
		logger:    cfg.Logger,
		onStory:   cfg.OnStoryComplete,
		state: State{
			Phase: catalog.Inhale,
			Mode:  mode,
			Scale: ScaleRest,
			Voice: cfg.Preferences.Voice.OnLaunch(),
		},
	}
}

// State returns a snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the mode Restart would use
func (c *Controller) Mode() catalog.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return *c.pending
	}
	return c.state.Mode
}

// SetMode records the selected mode. A running cycle keeps its timing
// until the next Start.
func (c *Controller) SetMode(mode catalog.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Active {
		c.pending = &mode
		return nil
	}
	c.state.Mode = mode
	return nil
}

// SetVoice changes the cue voice from the next phase onward
func (c *Controller) SetVoice(v catalog.Voice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Voice = v
}

// Start begins a cycle of mode at Inhale. A running cycle is replaced.
func (c *Controller) Start(mode catalog.Mode) error {
	if err := mode.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.pending = nil
	c.state.Active = true
	c.state.Mode = mode
	c.state.Cycles = 0

	c.logger.Info("Breathing started",
		zap.Int("mode", mode.ID),
		zap.String("pattern", mode.Pattern()),
		zap.String("voice", c.state.Voice.Key()))

	c.enterLocked(catalog.Inhale, true)
	c.armLocked()
	return nil
}

// Restart starts the current (or pending) mode again
func (c *Controller) Restart() error {
	c.mu.Lock()
	mode := c.state.Mode
	if c.pending != nil {
		mode = *c.pending
	}
	c.mu.Unlock()
	return c.Start(mode)
}

// Stop returns to Idle. No tick of the stopped run fires after Stop
// returns. In-flight narration is stopped too. Calling Stop twice is the
// same as calling it once.
func (c *Controller) Stop() {
	c.mu.Lock()
	wasActive := c.state.Active
	c.cancelLocked()
	c.state.Active = false
	c.state.Phase = catalog.Inhale
	c.state.Remaining = 0
	c.state.Scale = ScaleRest
	if c.pending != nil {
		c.state.Mode = *c.pending
		c.pending = nil
	}
	cycles := c.state.Cycles
	c.mu.Unlock()

	if wasActive {
		c.logger.Info("Breathing stopped", zap.Int("cycles", cycles))
	}
	if c.cues != nil {
		c.cues.StopAllStories()
	}
}

// PlayStory starts a narrated story in the given voice. When it ends the
// voice resets to no guidance.
func (c *Controller) PlayStory(v catalog.Voice) error {
	if v.Guidance() != catalog.GuidanceStory {
		return fmt.Errorf("play %s: %w", v, cue.ErrNotStory)
	}
	if c.cues == nil {
		return nil
	}

	c.mu.Lock()
	if c.state.StoryPlaying {
		c.mu.Unlock()
		return fmt.Errorf("play %s: %w", v, cue.ErrStoryInFlight)
	}
	prev := c.state.Voice
	c.state.Voice = v
	c.state.StoryPlaying = true
	c.mu.Unlock()

	err := c.cues.PlayStory(v, func() {
		c.mu.Lock()
		c.state.StoryPlaying = false
		c.state.Voice = catalog.VoiceNone
		c.mu.Unlock()
		if c.onStory != nil {
			c.onStory(v)
		}
	})
	if err != nil {
		c.mu.Lock()
		c.state.StoryPlaying = false
		c.state.Voice = prev
		c.mu.Unlock()
		return err
	}
	return nil
}

// onTick is the one-second timer callback for run
func (c *Controller) onTick(run uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Active || run != c.run {
		return
	}

	c.state.Remaining--
	if c.state.Remaining <= 0 {
		c.enterLocked(c.state.Mode.Next(c.state.Phase), false)
	} else if c.presenter != nil {
		c.presenter.Countdown(c.state.Phase, c.state.Remaining)
	}
	c.armLocked()
}

// enterLocked moves to the first phase from p with a positive duration and
// emits exactly one phase entry for it.
func (c *Controller) enterLocked(p catalog.Phase, first bool) {
	phase, d := c.state.Mode.Resolve(p)
	if p == catalog.Inhale && !first {
		c.state.Cycles++
	}
	if d <= 0 {
		// only reachable for a degenerate mode, which Start rejects
		d = 1
	}
	c.state.Phase = phase
	c.state.Remaining = d
	c.state.Scale = targetScale(phase)

	c.logger.Debug("Phase entered",
		zap.String("phase", phase.String()),
		zap.Int("seconds", d))

	if c.cues != nil && c.state.Voice.Guidance() == catalog.GuidanceBreathingCues {
		c.cues.OnPhaseEntered(phase, c.state.Voice)
	}
	if c.presenter != nil {
		c.presenter.PhaseChanged(phase, d)
		c.presenter.ScaleChanged(c.state.Scale, time.Duration(d)*time.Second)
	}
}

func (c *Controller) armLocked() {
	run := c.run
	c.timer = c.clock.AfterFunc(tick, func() { c.onTick(run) })
}

func (c *Controller) cancelLocked() {
	c.run++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func targetScale(p catalog.Phase) float64 {
	if p == catalog.Inhale || p == catalog.InhaleHold {
		return ScaleFull
	}
	return ScaleRest
}
