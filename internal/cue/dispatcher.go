// Package cue turns phase changes into voice cues and plays narrated
// stories, ducking the background track while either is audible.
package cue

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
)

var (
	ErrMissingAsset  = errors.New("audio clip not available")
	ErrStoryInFlight = errors.New("a story is already playing")
	ErrNotStory      = errors.New("voice is not a story")
)

// Audio is the playback collaborator. Play starts a clip from the
// beginning and returns its length; onFinish is called when it ends on
// its own, never from inside Play. Volume and SetVolume address the
// background track.
type Audio interface {
	Play(clip string, onFinish func()) (time.Duration, error)
	Stop(clip string)
	Volume() float64
	SetVolume(level float64)
}

// Config holds the dispatcher collaborators and levels
type Config struct {
	Audio  Audio
	Clock  clock.Clock
	Logger *zap.Logger

	CueLevel       float64       // background level under a cue
	StoryLevel     float64       // background level under a story
	FallbackDelay  time.Duration // restore delay when a cue clip is missing
	RestorePadding time.Duration // added to the cue length before restoring
	StoryGrace     time.Duration // how long past its length a story may run
}

// DefaultConfig returns the levels used by the app
func DefaultConfig() Config {
	return Config{
		CueLevel:       0.3,
		StoryLevel:     0.2,
		FallbackDelay:  2 * time.Second,
		RestorePadding: 100 * time.Millisecond,
		StoryGrace:     5 * time.Second,
	}
}

// Dispatcher plays cues and stories against one Audio
type Dispatcher struct {
	cfg    Config
	audio  Audio
	clock  clock.Clock
	logger *zap.Logger

	mu sync.Mutex

	// ducking
	captured   float64
	cueHeld    bool
	storyHeld  bool
	cueRestore clock.Timer
	cueGen     uint64

	// in-flight story
	story *story
}

type story struct {
	voice      catalog.Voice
	clip       string
	onComplete func()
	watchdog   clock.Timer
}

// New creates a dispatcher. Zero levels and delays fall back to DefaultConfig.
func New(cfg Config) *Dispatcher {
	def := DefaultConfig()
	if cfg.CueLevel <= 0 {
		cfg.CueLevel = def.CueLevel
	}
	if cfg.StoryLevel <= 0 {
		cfg.StoryLevel = def.StoryLevel
	}
	if cfg.FallbackDelay <= 0 {
		cfg.FallbackDelay = def.FallbackDelay
	}
	if cfg.RestorePadding < 0 {
		cfg.RestorePadding = 0
	}
	if cfg.StoryGrace <= 0 {
		cfg.StoryGrace = def.StoryGrace
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Dispatcher{
		cfg:    cfg,
		audio:  cfg.Audio,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}
}

// OnPhaseEntered plays the cue for phase in the given voice. Only
// breathing-cue voices speak; everything else is ignored.
func (d *Dispatcher) OnPhaseEntered(phase catalog.Phase, voice catalog.Voice) {
	if voice == catalog.VoiceNone || voice.Guidance() != catalog.GuidanceBreathingCues {
		return
	}
	clip := catalog.CueClip(voice, catalog.ActionFor(phase))

	d.mu.Lock()
	defer d.mu.Unlock()

	d.duckLocked(false)

	hold := d.cfg.FallbackDelay
	length, err := d.audio.Play(clip, nil)
	if err != nil {
		d.logger.Warn("Cue clip unavailable",
			zap.String("clip", clip),
			zap.Error(fmt.Errorf("%w: %v", ErrMissingAsset, err)))
	} else {
		hold = length + d.cfg.RestorePadding
	}

	if d.cueRestore != nil {
		d.cueRestore.Stop()
	}
	d.cueGen++
	gen := d.cueGen
	d.cueRestore = d.clock.AfterFunc(hold, func() { d.releaseCue(gen) })

	d.logger.Debug("Cue played",
		zap.String("clip", clip),
		zap.String("phase", phase.String()),
		zap.Duration("hold", hold))
}

// PlayStory narrates a story once. onComplete runs exactly once, when the
// narration ends, is cut short by StopAllStories, or cannot be played.
func (d *Dispatcher) PlayStory(voice catalog.Voice, onComplete func()) error {
	if voice.Guidance() != catalog.GuidanceStory {
		return fmt.Errorf("%s: %w", voice, ErrNotStory)
	}
	clip := catalog.StoryClip(voice)

	d.mu.Lock()
	if d.story != nil {
		inFlight := d.story.voice
		d.mu.Unlock()
		d.logger.Info("Story request dropped",
			zap.String("requested", voice.Key()),
			zap.String("playing", inFlight.Key()))
		return fmt.Errorf("%s requested while %s plays: %w", voice, inFlight, ErrStoryInFlight)
	}

	s := &story{voice: voice, clip: clip, onComplete: onComplete}
	d.story = s
	d.duckLocked(true)

	length, err := d.audio.Play(clip, func() { d.finishStory(s, "finished") })
	if err != nil {
		d.story = nil
		d.storyHeld = false
		d.releaseLocked()
		d.mu.Unlock()

		d.logger.Warn("Story clip unavailable",
			zap.String("clip", clip),
			zap.Error(fmt.Errorf("%w: %v", ErrMissingAsset, err)))
		if onComplete != nil {
			onComplete()
		}
		return nil
	}
	if length <= 0 {
		length = voice.StoryLength()
	}
	s.watchdog = d.clock.AfterFunc(length+d.cfg.StoryGrace, func() { d.finishStory(s, "timed out") })
	d.mu.Unlock()

	d.logger.Info("Story started", zap.String("clip", clip), zap.Duration("length", length))
	return nil
}

// StopAllStories halts the narration in flight, if any
func (d *Dispatcher) StopAllStories() {
	d.mu.Lock()
	s := d.story
	if s != nil {
		d.audio.Stop(s.clip)
	}
	d.mu.Unlock()

	if s != nil {
		d.finishStory(s, "stopped")
	}
}

// StoryPlaying reports whether a narration is in flight
func (d *Dispatcher) StoryPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.story != nil
}

// Ducked reports whether the background track is currently lowered
func (d *Dispatcher) Ducked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cueHeld || d.storyHeld
}

// finishStory completes s once; later calls for the same story are ignored
func (d *Dispatcher) finishStory(s *story, reason string) {
	d.mu.Lock()
	if d.story != s {
		d.mu.Unlock()
		return
	}
	d.story = nil
	if s.watchdog != nil {
		s.watchdog.Stop()
	}
	d.storyHeld = false
	d.releaseLocked()
	d.mu.Unlock()

	d.logger.Info("Story ended", zap.String("clip", s.clip), zap.String("reason", reason))
	if s.onComplete != nil {
		s.onComplete()
	}
}

func (d *Dispatcher) releaseCue(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.cueGen {
		return
	}
	d.cueHeld = false
	d.cueRestore = nil
	d.releaseLocked()
}

// duckLocked lowers the background for a cue or a story. The level is
// captured only on the transition from not ducked to ducked.
func (d *Dispatcher) duckLocked(forStory bool) {
	if !d.cueHeld && !d.storyHeld {
		d.captured = d.audio.Volume()
	}
	if forStory {
		d.storyHeld = true
	} else {
		d.cueHeld = true
	}
	d.applyLocked()
}

// releaseLocked restores the captured level once nothing holds the duck
func (d *Dispatcher) releaseLocked() {
	if !d.cueHeld && !d.storyHeld {
		d.audio.SetVolume(d.captured)
		return
	}
	d.applyLocked()
}

// applyLocked sets the lowest level among the current holders
func (d *Dispatcher) applyLocked() {
	level := d.cfg.CueLevel
	if d.storyHeld && (!d.cueHeld || d.cfg.StoryLevel < level) {
		level = d.cfg.StoryLevel
	}
	d.audio.SetVolume(level)
}
