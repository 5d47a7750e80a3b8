package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for breathe",
	Long:  `Display detailed help for all breathe commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██████╗ ██████╗ ███████╗ █████╗ ████████╗██╗  ██╗███████╗
██╔══██╗██╔══██╗██╔════╝██╔══██╗╚══██╔══╝██║  ██║██╔════╝
██████╔╝██████╔╝█████╗  ███████║   ██║   ███████║█████╗
██╔══██╗██╔══██╗██╔══╝  ██╔══██║   ██║   ██╔══██║██╔══╝
██████╔╝██║  ██║███████╗██║  ██║   ██║   ██║  ██║███████╗
╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚══════╝

breathe - Guided breathing in your terminal

COMMANDS:

  start [mode-id]         Start a breathing session (saved mode by default)
    --pick                Choose the mode from a list
    --voice               Voice guide: none, kai, zen, luma, amara
    --no-ui               Print phases instead of the interactive screen
    --cycles              With --no-ui, stop after N cycles

    Interactive keys:
      space         Pause / resume
      r             Restart from inhale
      [ / ]         Previous / next mode (applies next round)
      v             Cycle the voice guide
      q/esc         Finish

    Example:
      breathe start 4 --voice luma

  panic                   5-4-3-2-1 grounding, then calming breaths
    --no-ui               Skip grounding, just breathe

  story [voice]           Play a narrated story (list when no voice given)
                          luma-1m, luma-2m, luma-5m, kai-1m, kai-2m, kai-5m

  modes                   List breathing modes
    --pick                Choose and save the default interactively
  voices                  List voice guides and stories
  tracks                  List ambient background tracks

  set mode <id>           Save the default mode
  set voice <key>         Save the voice guide
  set volume <0-100>      Save the background volume
  set track <id>          Save the ambient track (0 is silence)
  prefs                   Show saved preferences

  history                 Show past practice
    --since               dd/mm/yyyy, today, 7d, 24h, 2w
    --limit               How many sessions (default 10)
  week                    Minutes per mode and day this week
  status                  Show the practice in progress
  stop                    Stop a practice left running

  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:
  -v, --verbose           Debug logging (written to ~/.breathe/breathe.log)
  --config                Config file (default ~/.breathe/config.yaml)

`)
}
