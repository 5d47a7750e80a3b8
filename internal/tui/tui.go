package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/balkashynov/breathe/internal/audio"
	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/clock"
	"github.com/balkashynov/breathe/internal/config"
	"github.com/balkashynov/breathe/internal/cue"
	"github.com/balkashynov/breathe/internal/db"
	"github.com/balkashynov/breathe/internal/models"
	"github.com/balkashynov/breathe/internal/session"
)

// Options carry what every screen needs
type Options struct {
	Config      *config.Config
	Logger      *zap.Logger
	Preferences session.Preferences
	Volume      float64
	TrackID     int         // ambient loop, 0 is silence
	Clock       clock.Clock // nil means the wall clock
}

// rig is one controller wired to the deck and the UI
type rig struct {
	clock  clock.Clock
	bridge *bridge
	deck   *audio.Deck
	cues   *cue.Dispatcher
	ctrl   *session.Controller

	watcher *audio.ManifestWatcher // nil without a manifest
}

func newRig(opts Options) (*rig, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig("")
	}

	lengths := audio.DefaultLengths()
	if cfg.Audio.Manifest != "" {
		var err error
		if lengths, err = audio.LoadManifest(cfg.Audio.Manifest); err != nil {
			return nil, err
		}
	}

	b := newBridge(clk, logger)
	deck := audio.NewDeck(clk, lengths, opts.Volume, logger.Named("audio"), b.clip)
	if track, ok := catalog.TrackByID(opts.TrackID); ok {
		deck.PlayBackground(track)
	} else {
		logger.Warn("Saved track not found", zap.Int("track", opts.TrackID))
	}

	cc := cfg.CueConfig()
	cc.Audio = deck
	cc.Clock = clk
	cc.Logger = logger.Named("cue")
	cues := cue.New(cc)

	ctrl := session.New(session.Config{
		Clock:           clk,
		Cues:            cues,
		Presenter:       b,
		Logger:          logger.Named("session"),
		Preferences:     opts.Preferences,
		OnStoryComplete: b.storyDone,
	})

	r := &rig{clock: clk, bridge: b, deck: deck, cues: cues, ctrl: ctrl}
	if cfg.Audio.Manifest != "" {
		mw, err := audio.NewManifestWatcher(cfg.Audio.Manifest, deck, logger.Named("manifest"))
		if err == nil {
			err = mw.Start(context.Background())
		}
		if err != nil {
			logger.Warn("Manifest changes will not be picked up", zap.Error(err))
		}
		r.watcher = mw
	}
	return r, nil
}

// close stops the session and the manifest watch
func (r *rig) close() {
	r.ctrl.Stop()
	r.deck.StopBackground()
	if r.watcher != nil {
		r.watcher.Stop()
	}
}

// RunBreathing opens the breathing screen on mode and tracks the practice
func RunBreathing(opts Options, mode catalog.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	r, err := newRig(opts)
	if err != nil {
		return err
	}
	defer r.close()

	if _, err := db.StartPractice(models.KindBreathing, mode.ID, r.ctrl.State().Voice.Key()); err != nil {
		return err
	}
	if err := r.ctrl.Start(mode); err != nil {
		_, _ = db.StopActivePractice(0)
		return err
	}

	finalModel, err := tea.NewProgram(NewBreathingModel(r), tea.WithAltScreen()).Run()
	r.close()
	state := r.ctrl.State()

	practice, stopErr := db.StopActivePractice(state.Cycles)
	if err != nil {
		return err
	}
	if stopErr != nil {
		return fmt.Errorf("failed to stop practice: %w", stopErr)
	}

	if m, ok := finalModel.(BreathingModel); ok {
		if m.modeChanged {
			if err := db.SaveMode(r.ctrl.Mode().ID); err != nil {
				return err
			}
		}
		if m.voiceChanged {
			if err := db.SaveVoice(state.Voice); err != nil {
				return err
			}
		}
		if m.trackChanged {
			if err := db.SaveTrack(m.track.ID); err != nil {
				return err
			}
		}
	}

	fmt.Printf("🌬️  Finished %s: %d cycles in %s\n", state.Mode.Name, practice.Cycles, formatDuration(time.Duration(practice.DurationSeconds)*time.Second))
	return nil
}

// RunGrounding opens the 5-4-3-2-1 exercise followed by panic breathing
func RunGrounding(opts Options) error {
	r, err := newRig(opts)
	if err != nil {
		return err
	}
	defer r.close()

	if _, err := db.StartPractice(models.KindPanic, catalog.PanicModeID, r.ctrl.State().Voice.Key()); err != nil {
		return err
	}

	finalModel, err := tea.NewProgram(NewGroundingModel(r), tea.WithAltScreen()).Run()
	r.close()

	practice, stopErr := db.StopActivePractice(r.ctrl.State().Cycles)
	if err != nil {
		return err
	}
	if stopErr != nil {
		return fmt.Errorf("failed to stop practice: %w", stopErr)
	}

	if m, ok := finalModel.(GroundingModel); ok && m.finished {
		fmt.Printf("💚 Well done. You stayed with it for %s.\n", formatDuration(time.Duration(practice.DurationSeconds)*time.Second))
	} else {
		fmt.Println("Take care. Run 'breathe panic' again whenever you need it.")
	}
	return nil
}

// RunStory plays one narrated story and tracks it
func RunStory(opts Options, v catalog.Voice) error {
	if v.Guidance() != catalog.GuidanceStory {
		return fmt.Errorf("%s: %w", v, cue.ErrNotStory)
	}
	r, err := newRig(opts)
	if err != nil {
		return err
	}
	defer r.close()

	if _, err := db.StartPractice(models.KindStory, r.ctrl.Mode().ID, v.Key()); err != nil {
		return err
	}
	model, err := NewStoryModel(r, v).Play()
	if err != nil {
		_, _ = db.StopActivePractice(0)
		return err
	}

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	r.close()

	practice, stopErr := db.StopActivePractice(0)
	if err != nil {
		return err
	}
	if stopErr != nil {
		return fmt.Errorf("failed to stop practice: %w", stopErr)
	}

	if m, ok := finalModel.(StoryModel); ok && m.finished {
		fmt.Printf("📖 %s finished.\n", m.voice)
	} else {
		fmt.Printf("⏹️  Story stopped after %s.\n", formatDuration(time.Duration(practice.DurationSeconds)*time.Second))
	}
	return nil
}

// RunModePicker lets the user choose a mode; ok is false when cancelled
func RunModePicker(currentID int) (catalog.Mode, bool, error) {
	item, ok, err := runPicker("🌬️  Breathing modes", ModeItems(), strconv.Itoa(currentID))
	if err != nil || !ok {
		return catalog.Mode{}, false, err
	}
	id, err := strconv.Atoi(item.Key)
	if err != nil {
		return catalog.Mode{}, false, err
	}
	mode, ok := catalog.ModeByID(id)
	return mode, ok, nil
}

// RunStoryPicker lets the user choose a story
func RunStoryPicker() (catalog.Voice, bool, error) {
	item, ok, err := runPicker("📖 Stories", StoryItems(), "")
	if err != nil || !ok {
		return catalog.VoiceNone, false, err
	}
	v, err := catalog.ParseVoice(item.Key)
	if err != nil {
		return catalog.VoiceNone, false, err
	}
	return v, true, nil
}

func runPicker(heading string, items []PickerItem, current string) (PickerItem, bool, error) {
	finalModel, err := tea.NewProgram(NewPickerModel(heading, items, current), tea.WithAltScreen()).Run()
	if err != nil {
		return PickerItem{}, false, err
	}
	item, ok := finalModel.(PickerModel).Selected()
	return item, ok, nil
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
