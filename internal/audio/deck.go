// Package audio provides a clip deck for terminals without a sound
// device: clips "play" for their manifest length and report what is
// audible so the UI can caption it.
package audio

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
)

var ErrUnknownClip = errors.New("clip not in manifest")

// DefaultCueLength is used for cue clips when no manifest is configured
const DefaultCueLength = 1200 * time.Millisecond

// EventKind says what happened on the deck
type EventKind int

const (
	ClipStarted EventKind = iota
	ClipFinished
	ClipStopped
	VolumeChanged
	TrackChanged
)

// Event is published for every playback or volume change
type Event struct {
	Kind   EventKind
	Clip   string
	Volume float64
	Track  int // TrackChanged only
}

// Manifest maps clip ids to their lengths
type Manifest struct {
	Clips map[string]string `yaml:"clips"`
}

// DefaultLengths covers every catalog clip
func DefaultLengths() map[string]time.Duration {
	lengths := make(map[string]time.Duration)
	for _, c := range catalog.CueClips() {
		lengths[c] = DefaultCueLength
	}
	for _, v := range catalog.StoryVoices() {
		lengths[catalog.StoryClip(v)] = v.StoryLength()
	}
	return lengths
}

// LoadManifest reads clip lengths from a YAML file, e.g.
//
//	clips:
//	  Kai_BreatheIn: 1.4s
//	  Luma_OneMinute: 62s
func LoadManifest(path string) (map[string]time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	lengths := make(map[string]time.Duration, len(m.Clips))
	for clip, s := range m.Clips {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("clip %s: %w", clip, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("clip %s: length must be positive", clip)
		}
		lengths[clip] = d
	}
	return lengths, nil
}

// Deck plays clips against a clock and holds the background volume
type Deck struct {
	clock   clock.Clock
	logger  *zap.Logger
	onEvent func(Event)

	mu      sync.Mutex
	lengths map[string]time.Duration
	playing map[string]*playback
	volume  float64

	// looping ambient track; volume applies to it
	background    catalog.Track
	hasBackground bool
}

type playback struct {
	timer    clock.Timer
	onFinish func()
}

// NewDeck creates a deck. onEvent may be nil; it is called outside the
// deck lock and must not block.
func NewDeck(clk clock.Clock, lengths map[string]time.Duration, volume float64, logger *zap.Logger, onEvent func(Event)) *Deck {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if lengths == nil {
		lengths = DefaultLengths()
	}
	return &Deck{
		clock:   clk,
		logger:  logger,
		onEvent: onEvent,
		lengths: lengths,
		playing: make(map[string]*playback),
		volume:  clamp(volume),
	}
}

// Play starts clip from the beginning, replacing a playback of the same clip
func (d *Deck) Play(clip string, onFinish func()) (time.Duration, error) {
	d.mu.Lock()
	length, ok := d.lengths[clip]
	if !ok {
		d.mu.Unlock()
		return 0, fmt.Errorf("%s: %w", clip, ErrUnknownClip)
	}
	if prev, ok := d.playing[clip]; ok {
		prev.timer.Stop()
	}
	pb := &playback{onFinish: onFinish}
	pb.timer = d.clock.AfterFunc(length, func() { d.finish(clip, pb) })
	d.playing[clip] = pb
	d.mu.Unlock()

	d.logger.Debug("Clip started", zap.String("clip", clip), zap.Duration("length", length))
	d.publish(Event{Kind: ClipStarted, Clip: clip})
	return length, nil
}

// SetLengths replaces the manifest. Clips already playing keep their length.
func (d *Deck) SetLengths(lengths map[string]time.Duration) {
	d.mu.Lock()
	d.lengths = lengths
	d.mu.Unlock()
}

// Stop halts clip without running its finish callback
func (d *Deck) Stop(clip string) {
	d.mu.Lock()
	pb, ok := d.playing[clip]
	if ok {
		pb.timer.Stop()
		delete(d.playing, clip)
	}
	d.mu.Unlock()

	if ok {
		d.publish(Event{Kind: ClipStopped, Clip: clip})
	}
}

// Playing reports whether clip is audible
func (d *Deck) Playing(clip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.playing[clip]
	return ok
}

// Volume returns the background level
func (d *Deck) Volume() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.volume
}

// PlayBackground loops track under cues and stories. The level is left
// alone, so a track picked while ducked comes in at the ducked level.
// Silence stops the background.
func (d *Deck) PlayBackground(track catalog.Track) {
	if track.Silent() {
		d.StopBackground()
		return
	}
	d.mu.Lock()
	changed := !d.hasBackground || d.background.ID != track.ID
	d.background = track
	d.hasBackground = true
	d.mu.Unlock()

	if changed {
		d.logger.Debug("Background track", zap.String("track", track.Name))
		d.publish(Event{Kind: TrackChanged, Clip: track.Clip(), Track: track.ID})
	}
}

// StopBackground silences the ambient track
func (d *Deck) StopBackground() {
	d.mu.Lock()
	had := d.hasBackground
	d.background = catalog.Track{}
	d.hasBackground = false
	d.mu.Unlock()

	if had {
		d.publish(Event{Kind: TrackChanged, Track: catalog.SilenceTrackID})
	}
}

// Background returns the looping track, if any
func (d *Deck) Background() (catalog.Track, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.background, d.hasBackground
}

// SetVolume sets the background level, clamped to [0, 1]
func (d *Deck) SetVolume(level float64) {
	level = clamp(level)
	d.mu.Lock()
	changed := level != d.volume
	d.volume = level
	d.mu.Unlock()

	if changed {
		d.publish(Event{Kind: VolumeChanged, Volume: level})
	}
}

func (d *Deck) finish(clip string, pb *playback) {
	d.mu.Lock()
	if d.playing[clip] != pb {
		d.mu.Unlock()
		return
	}
	delete(d.playing, clip)
	d.mu.Unlock()

	d.publish(Event{Kind: ClipFinished, Clip: clip})
	if pb.onFinish != nil {
		pb.onFinish()
	}
}

func (d *Deck) publish(e Event) {
	if d.onEvent != nil {
		d.onEvent(e)
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
