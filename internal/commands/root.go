package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/config"
	"github.com/balkashynov/breathe/internal/db"
	"github.com/balkashynov/breathe/internal/session"
	"github.com/balkashynov/breathe/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Guided breathing in your terminal",
	Long: `breathe paces your breathing with timed inhale, hold and exhale phases.
Pick a pattern, add a voice guide or a narrated story, and keep track of
how often you practice, all from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		home, err := config.DefaultHome()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		if configPath == "" {
			configPath = filepath.Join(home, "config.yaml")
		}
		cfg, err = config.Load(home, configPath)
		if err != nil {
			return err
		}

		logger, err = buildLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
		_ = db.Close()
	},
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runBreathing(cmd, nil)
	}),
}

// buildLogger writes to the log file so the alt screen stays clean
func buildLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	if lc.Level != "" {
		if err := level.Set(lc.Level); err != nil {
			return nil, err
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if lc.File != "" {
		if err := os.MkdirAll(filepath.Dir(lc.File), 0755); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

// initDB opens the database from the loaded configuration. A first run
// starts at the configured background volume.
func initDB() error {
	db.SetDefaultVolume(cfg.Audio.BackgroundVolume)
	return db.Initialize(cfg.DatabasePath)
}

// withDB wraps a command function to initialize the database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := initDB(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fn(cmd, args)
	}
}

// screenOptions loads the saved preferences for a TUI screen
func screenOptions() (tui.Options, error) {
	pref, err := db.LoadPreferences()
	if err != nil {
		return tui.Options{}, err
	}
	voice, err := catalog.ParseVoice(pref.Voice)
	if err != nil {
		logger.Warn("Unknown saved voice", zap.String("voice", pref.Voice))
		voice = catalog.VoiceNone
	}
	return tui.Options{
		Config:      cfg,
		Logger:      logger,
		Preferences: session.Preferences{ModeID: pref.ModeID, Voice: voice},
		Volume:      pref.BackgroundVolume,
		TrackID:     pref.TrackID,
	}, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("breathe %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.breathe/config.yaml)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(panicCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
