package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/db"
	"github.com/balkashynov/breathe/internal/tui"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List breathing modes",
	Long: `List the breathing modes. With --pick, choose one in the interactive list
and save it as your default. With --details, show a longer description of each.`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		pref, err := db.LoadPreferences()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if pick, _ := cmd.Flags().GetBool("pick"); pick {
			mode, ok, err := tui.RunModePicker(pref.ModeID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if !ok {
				return
			}
			if err := db.SaveMode(mode.ID); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("✅ Default mode set to %s (%s)\n", mode.Name, mode.Pattern())
			return
		}

		if details, _ := cmd.Flags().GetBool("details"); details {
			out, err := renderMarkdown(modesMarkdown(pref.ModeID))
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Print(out)
			return
		}

		printModes(pref.ModeID)
	}),
}

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List voice guides and stories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-10s %-20s %-16s %s\n", "KEY", "NAME", "GUIDANCE", "LENGTH")
		fmt.Println(strings.Repeat("-", 60))
		for _, v := range catalog.Voices() {
			length := "-"
			if v.Guidance() == catalog.GuidanceStory {
				length = v.StoryLength().String()
			}
			fmt.Printf("%-10s %-20s %-16s %s\n", v.Key(), v, v.Guidance(), length)
		}
	},
}

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List ambient background tracks",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		pref, err := db.LoadPreferences()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		writeTracks(os.Stdout, pref.TrackID)
	}),
}

// writeTracks lists the tracks, marking the saved one
func writeTracks(w io.Writer, current int) {
	fmt.Fprintf(w, "   %-4s %-12s %s\n", "ID", "NAME", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, track := range catalog.Tracks() {
		marker := " "
		if track.ID == current {
			marker = "▶"
		}
		fmt.Fprintf(w, " %s %-4d %-12s %s\n", marker, track.ID, track.Name, track.Description)
	}
}

func printModes(current int) {
	fmt.Printf("   %-4s %-18s %-30s %s\n", "ID", "NAME", "PATTERN", "CYCLE")
	fmt.Println(strings.Repeat("-", 64))
	for _, mode := range catalog.Modes() {
		marker := " "
		if mode.ID == current {
			marker = "▶"
		}
		fmt.Printf(" %s %-4d %-18s %-30s %ds\n", marker, mode.ID, mode.Name, mode.Pattern(), mode.Total())
	}
}

// modesMarkdown describes every mode with its phase timings
func modesMarkdown(current int) string {
	var b strings.Builder
	b.WriteString("# Breathing modes\n\n")
	for _, mode := range catalog.Modes() {
		fmt.Fprintf(&b, "## %d. %s", mode.ID, mode.Name)
		if mode.ID == current {
			b.WriteString(" (default)")
		}
		fmt.Fprintf(&b, "\n\n%s.\n\n", mode.Description)

		b.WriteString("| Phase | Seconds |\n|---|---|\n")
		for _, p := range []catalog.Phase{catalog.Inhale, catalog.InhaleHold, catalog.Exhale, catalog.ExhaleHold} {
			if d := mode.Duration(p); d > 0 {
				fmt.Fprintf(&b, "| %s | %d |\n", phaseName(p), d)
			}
		}
		fmt.Fprintf(&b, "\nOne cycle takes **%ds**. Start it with `breathe start %d`.\n\n", mode.Total(), mode.ID)
	}
	return b.String()
}

func phaseName(p catalog.Phase) string {
	switch p {
	case catalog.InhaleHold:
		return "Hold after inhale"
	case catalog.ExhaleHold:
		return "Hold after exhale"
	default:
		return p.Label()
	}
}

func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	return renderer.Render(md)
}

func init() {
	modesCmd.Flags().Bool("pick", false, "Choose and save the default mode interactively")
	modesCmd.Flags().Bool("details", false, "Describe each mode in full")
}
