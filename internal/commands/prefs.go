package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/db"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change saved preferences",
}

var setModeCmd = &cobra.Command{
	Use:   "mode <id>",
	Short: "Set the default breathing mode",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		mode, err := parseMode(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.SaveMode(mode.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Default mode set to %s (%s)\n", mode.Name, mode.Pattern())
	}),
}

var setVoiceCmd = &cobra.Command{
	Use:   "voice <key>",
	Short: "Set the voice guide",
	Long: `Set the voice guide used for breathing cues: none, kai, zen, luma or amara.
Stories can be saved too, but are reset to none the next time breathe starts.`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		voice, err := catalog.ParseVoice(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.SaveVoice(voice); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Voice set to %s\n", voice)
	}),
}

var setVolumeCmd = &cobra.Command{
	Use:   "volume <0-100>",
	Short: "Set the background volume",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		percent, err := strconv.Atoi(args[0])
		if err != nil || percent < 0 || percent > 100 {
			fmt.Printf("Error: volume must be a number between 0 and 100\n")
			return
		}
		if err := db.SaveVolume(float64(percent) / 100); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Background volume set to %d%%\n", percent)
	}),
}

var setTrackCmd = &cobra.Command{
	Use:   "track <id>",
	Short: "Set the ambient background track",
	Long:  `Set the ambient track that loops under your sessions. Run 'breathe tracks' to list them; 0 is silence.`,
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		track, err := parseTrack(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.SaveTrack(track.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Background track set to %s\n", track.Name)
	}),
}

// parseTrack accepts a track id
func parseTrack(arg string) (catalog.Track, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return catalog.Track{}, fmt.Errorf("invalid track id '%s'", arg)
	}
	track, ok := catalog.TrackByID(id)
	if !ok {
		return catalog.Track{}, fmt.Errorf("unknown track %d. Run 'breathe tracks' to list them", id)
	}
	return track, nil
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show saved preferences",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		pref, err := db.LoadPreferences()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		modeName := "unknown"
		if mode, ok := catalog.ModeByID(pref.ModeID); ok {
			modeName = fmt.Sprintf("%s (%s)", mode.Name, mode.Pattern())
		}
		voiceName := pref.Voice
		if voice, err := catalog.ParseVoice(pref.Voice); err == nil {
			voiceName = voice.String()
		}

		fmt.Printf("Mode:    #%d %s\n", pref.ModeID, modeName)
		fmt.Printf("Voice:   %s\n", voiceName)
		trackName := "unknown"
		if track, ok := catalog.TrackByID(pref.TrackID); ok {
			trackName = track.Name
		}
		fmt.Printf("Track:   #%d %s\n", pref.TrackID, trackName)
		fmt.Printf("Volume:  %d%%\n", int(pref.BackgroundVolume*100+0.5))
		fmt.Printf("Config:  %s\n", configPath)
		fmt.Printf("Data:    %s\n", cfg.DatabasePath)
	}),
}

func init() {
	setCmd.AddCommand(setModeCmd)
	setCmd.AddCommand(setVoiceCmd)
	setCmd.AddCommand(setVolumeCmd)
	setCmd.AddCommand(setTrackCmd)
}
