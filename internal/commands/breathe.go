package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/breathe/internal/audio"
	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/db"
	"github.com/balkashynov/breathe/internal/models"
	"github.com/balkashynov/breathe/internal/runner"
	"github.com/balkashynov/breathe/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [mode-id]",
	Short: "Start a breathing session",
	Long: `Start a breathing session. Uses your saved mode when no id is given.
Opens the interactive screen by default, use --no-ui for plain output.

Examples:
  breathe start             # Saved mode, interactive
  breathe start 4           # Sleep (4-7-8)
  breathe start --pick      # Choose from a list
  breathe start 10 --voice kai --no-ui --cycles 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  withDB(runBreathing),
}

var panicCmd = &cobra.Command{
	Use:   "panic",
	Short: "Grounding exercise for a panic attack",
	Long: `Walks through the 5-4-3-2-1 grounding exercise, then paces calming
breaths (4s in, 2s hold, 6s out, 1s hold) until you are ready to stop.`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		opts, err := screenOptions()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			if err := runHeadless(opts, catalog.PanicMode(), models.KindPanic, 0); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		if err := tui.RunGrounding(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

var storyCmd = &cobra.Command{
	Use:   "story [voice]",
	Short: "Play a narrated breathing story",
	Long: `Play a narrated story. Background audio lowers while it plays and your
guide goes back to none afterwards.

Examples:
  breathe story             # Choose from a list
  breathe story luma-2m     # Luma, two minutes`,
	Args: cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		opts, err := screenOptions()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var voice catalog.Voice
		if len(args) == 0 {
			var ok bool
			voice, ok, err = tui.RunStoryPicker()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if !ok {
				return
			}
		} else {
			voice, err = catalog.ParseVoice(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		if err := tui.RunStory(opts, voice); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func runBreathing(cmd *cobra.Command, args []string) {
	opts, err := screenOptions()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	mode, ok := catalog.ModeByID(opts.Preferences.ModeID)
	if !ok {
		mode, _ = catalog.ModeByID(catalog.DefaultModeID)
	}
	if len(args) > 0 {
		if mode, err = parseMode(args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	if pick, _ := cmd.Flags().GetBool("pick"); pick {
		picked, ok, err := tui.RunModePicker(mode.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !ok {
			return
		}
		mode = picked
	}

	if key, _ := cmd.Flags().GetString("voice"); key != "" {
		voice, err := catalog.ParseVoice(key)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if voice.Guidance() == catalog.GuidanceStory {
			fmt.Printf("Error: %s is a story. Use 'breathe story %s' instead\n", voice, voice.Key())
			return
		}
		opts.Preferences.Voice = voice
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	cycles, _ := cmd.Flags().GetInt("cycles")
	if noUI {
		if err := runHeadless(opts, mode, models.KindBreathing, cycles); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	if err := tui.RunBreathing(opts, mode); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

// parseMode accepts the id of a selectable mode
func parseMode(arg string) (catalog.Mode, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return catalog.Mode{}, fmt.Errorf("invalid mode id '%s'", arg)
	}
	mode, ok := catalog.ModeByID(id)
	if !ok || id == catalog.PanicModeID {
		return catalog.Mode{}, fmt.Errorf("unknown mode %d. Run 'breathe modes' to list them", id)
	}
	return mode, nil
}

// runHeadless breathes without the TUI until --cycles or Ctrl+C
func runHeadless(opts tui.Options, mode catalog.Mode, kind string, cycles int) error {
	lengths := audio.DefaultLengths()
	if cfg.Audio.Manifest != "" {
		var err error
		if lengths, err = audio.LoadManifest(cfg.Audio.Manifest); err != nil {
			return err
		}
	}

	r := runner.New(runner.Config{
		Out:     os.Stdout,
		Logger:  logger,
		Cues:    cfg.CueConfig(),
		Lengths: lengths,
		Volume:  opts.Volume,
		Voice:   opts.Preferences.Voice.OnLaunch(),
		TrackID: opts.TrackID,
		Cycles:  cycles,
	})

	if _, err := db.StartPractice(kind, mode.ID, opts.Preferences.Voice.Key()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := r.Run(ctx, mode)
	if _, stopErr := db.StopActivePractice(res.Cycles); stopErr != nil {
		logger.Warn("Failed to stop practice", zap.Error(stopErr))
	}
	if err != nil {
		return err
	}

	logger.Info("Headless run finished",
		zap.Int("cycles", res.Cycles),
		zap.Duration("elapsed", res.Elapsed.Round(time.Second)))
	return nil
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Print phases instead of opening the interactive screen")
	startCmd.Flags().Bool("pick", false, "Choose the mode from a list")
	startCmd.Flags().String("voice", "", "Voice guide for this session: none, kai, zen, luma, amara")
	startCmd.Flags().Int("cycles", 0, "With --no-ui, stop after this many cycles")

	panicCmd.Flags().Bool("no-ui", false, "Skip grounding and print calming breaths")
}
