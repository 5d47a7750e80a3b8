package audio_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/breathe/internal/audio"
	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
	"github.com/balkashynov/breathe/internal/cue"
)

func TestDefaultLengthsCoverCatalog(t *testing.T) {
	lengths := audio.DefaultLengths()
	for _, c := range append(catalog.CueClips(), catalog.StoryClips()...) {
		assert.Contains(t, lengths, c)
	}
	assert.Equal(t, 2*time.Minute, lengths["Kai_TwoMinute"])
}

func TestPlayFinishes(t *testing.T) {
	clk := clock.NewFake()
	var events []audio.Event
	deck := audio.NewDeck(clk, nil, 0.7, nil, func(e audio.Event) { events = append(events, e) })

	finished := 0
	length, err := deck.Play("Zen_Hold", func() { finished++ })
	require.NoError(t, err)
	assert.Equal(t, audio.DefaultCueLength, length)
	assert.True(t, deck.Playing("Zen_Hold"))

	clk.Advance(length)
	assert.Equal(t, 1, finished)
	assert.False(t, deck.Playing("Zen_Hold"))
	assert.Equal(t, []audio.Event{
		{Kind: audio.ClipStarted, Clip: "Zen_Hold"},
		{Kind: audio.ClipFinished, Clip: "Zen_Hold"},
	}, events)
}

func TestReplayRestartsClip(t *testing.T) {
	clk := clock.NewFake()
	deck := audio.NewDeck(clk, map[string]time.Duration{"a": time.Second}, 0.5, nil, nil)

	finished := 0
	_, err := deck.Play("a", func() { finished++ })
	require.NoError(t, err)
	clk.Advance(600 * time.Millisecond)
	_, err = deck.Play("a", func() { finished++ })
	require.NoError(t, err)

	clk.Advance(600 * time.Millisecond)
	assert.Zero(t, finished)
	clk.Advance(400 * time.Millisecond)
	assert.Equal(t, 1, finished)
}

func TestStopSkipsFinishCallback(t *testing.T) {
	clk := clock.NewFake()
	deck := audio.NewDeck(clk, nil, 0.5, nil, nil)

	finished := false
	_, err := deck.Play("Luma_OneMinute", func() { finished = true })
	require.NoError(t, err)
	deck.Stop("Luma_OneMinute")
	deck.Stop("Luma_OneMinute")

	clk.Advance(2 * time.Minute)
	assert.False(t, finished)
}

func TestUnknownClip(t *testing.T) {
	deck := audio.NewDeck(clock.NewFake(), map[string]time.Duration{}, 0.5, nil, nil)
	_, err := deck.Play("Kai_BreatheIn", nil)
	assert.ErrorIs(t, err, audio.ErrUnknownClip)
}

func TestVolumeClampAndEvents(t *testing.T) {
	var events []audio.Event
	deck := audio.NewDeck(clock.NewFake(), nil, 2, nil, func(e audio.Event) { events = append(events, e) })
	assert.Equal(t, 1.0, deck.Volume())

	deck.SetVolume(-1)
	assert.Equal(t, 0.0, deck.Volume())
	deck.SetVolume(0)
	assert.Len(t, events, 1, "unchanged level is not published")
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clips.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clips:\n  Kai_BreatheIn: 1.4s\n  Kai_OneMinute: 62s\n"), 0644))

	lengths, err := audio.LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, 1400*time.Millisecond, lengths["Kai_BreatheIn"])
	assert.Equal(t, 62*time.Second, lengths["Kai_OneMinute"])

	require.NoError(t, os.WriteFile(path, []byte("clips:\n  Kai_Hold: -1s\n"), 0644))
	_, err = audio.LoadManifest(path)
	assert.Error(t, err)

	_, err = audio.LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDeckDrivesDispatcher(t *testing.T) {
	clk := clock.NewFake()
	deck := audio.NewDeck(clk, nil, 0.7, nil, nil)
	cfg := cue.DefaultConfig()
	cfg.Audio = deck
	cfg.Clock = clk
	d := cue.New(cfg)

	done := 0
	require.NoError(t, d.PlayStory(catalog.VoiceLumaOneMinute, func() { done++ }))
	assert.Equal(t, 0.2, deck.Volume())

	clk.Advance(time.Minute)
	assert.Equal(t, 1, done)
	assert.Equal(t, 0.7, deck.Volume())
	assert.False(t, d.StoryPlaying())
}

func TestBackgroundTrack(t *testing.T) {
	var events []audio.Event
	deck := audio.NewDeck(clock.NewFake(), nil, 0.7, nil, func(e audio.Event) { events = append(events, e) })

	_, ok := deck.Background()
	assert.False(t, ok)

	rain, _ := catalog.TrackByID(5)
	deck.PlayBackground(rain)
	deck.PlayBackground(rain)

	got, ok := deck.Background()
	require.True(t, ok)
	assert.Equal(t, "Rain", got.Name)

	silence, _ := catalog.TrackByID(catalog.SilenceTrackID)
	deck.PlayBackground(silence)
	_, ok = deck.Background()
	assert.False(t, ok)
	deck.StopBackground()

	assert.Equal(t, []audio.Event{
		{Kind: audio.TrackChanged, Clip: "Track_rain", Track: 5},
		{Kind: audio.TrackChanged, Track: catalog.SilenceTrackID},
	}, events)
	assert.Equal(t, 0.7, deck.Volume(), "track changes leave the level alone")
}

func TestTrackChangeWhileDucked(t *testing.T) {
	clk := clock.NewFake()
	deck := audio.NewDeck(clk, nil, 0.7, nil, nil)
	forest, _ := catalog.TrackByID(3)
	deck.PlayBackground(forest)

	cfg := cue.DefaultConfig()
	cfg.Audio = deck
	cfg.Clock = clk
	d := cue.New(cfg)

	d.OnPhaseEntered(catalog.Inhale, catalog.VoiceKai)
	assert.Equal(t, 0.3, deck.Volume())

	waves, _ := catalog.TrackByID(6)
	deck.PlayBackground(waves)
	assert.Equal(t, 0.3, deck.Volume(), "new track comes in under the cue")

	clk.Advance(audio.DefaultCueLength + 100*time.Millisecond)
	assert.Equal(t, 0.7, deck.Volume())
	got, _ := deck.Background()
	assert.Equal(t, 6, got.ID)
}

func TestStoryDucksBackgroundTrack(t *testing.T) {
	clk := clock.NewFake()
	deck := audio.NewDeck(clk, nil, 0.5, nil, nil)
	piano, _ := catalog.TrackByID(11)
	deck.PlayBackground(piano)

	cfg := cue.DefaultConfig()
	cfg.Audio = deck
	cfg.Clock = clk
	d := cue.New(cfg)

	require.NoError(t, d.PlayStory(catalog.VoiceKaiOneMinute, nil))
	assert.Equal(t, 0.2, deck.Volume())

	// a cue under the story does not raise the level
	d.OnPhaseEntered(catalog.Exhale, catalog.VoiceZen)
	assert.Equal(t, 0.2, deck.Volume())

	clk.Advance(time.Minute)
	assert.Equal(t, 0.5, deck.Volume())
	_, ok := deck.Background()
	assert.True(t, ok)
}
