package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/db"
	"github.com/balkashynov/breathe/internal/models"
	"github.com/balkashynov/breathe/internal/parser"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past practice",
	Long: `Show finished practice, most recent first.

Examples:
  breathe history               # Last 10
  breathe history --since 7d    # Everything from the last week
  breathe history --since 01/03/2024`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		now := time.Now()
		var practices []models.Practice
		var err error

		if since, _ := cmd.Flags().GetString("since"); since != "" {
			from, perr := parser.ParseSince(since, now)
			if perr != nil {
				fmt.Printf("Error: %v\n", perr)
				return
			}
			practices, err = db.GetPracticesInRange(from, now)
			// newest first, like the default listing
			sort.SliceStable(practices, func(i, j int) bool {
				return practices[i].StartedAt.After(practices[j].StartedAt)
			})
		} else {
			limit, _ := cmd.Flags().GetInt("limit")
			practices, err = db.RecentPractices(limit)
		}
		if err != nil {
			fmt.Printf("Error fetching history: %v\n", err)
			return
		}

		writeHistory(os.Stdout, practices, now)
	}),
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show this week's practice by day",
	Long: `Show minutes practiced per day for the current calendar week, grouped
by mode.

Example output:
  Mode                  Mon  Tue  Wed  Thu  Fri  Total
  Sleep                   4    -    8    -    -     12
  Box Breathing           -    3    -    2    -      5
  Total                   4    3    8    2    0     17`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		weekStart := getWeekStart(time.Now())
		weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Second)

		practices, err := db.GetPracticesInRange(weekStart, weekEnd)
		if err != nil {
			fmt.Printf("Error: failed to get practice: %v\n", err)
			return
		}
		writeWeekSheet(os.Stdout, practices, weekStart)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the practice being tracked",
	Args:  cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		practice, err := db.GetActivePractice()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if practice == nil {
			fmt.Println("No practice in progress")
			return
		}

		fmt.Printf("🌬️  Practicing: %s\n", describePractice(*practice))
		fmt.Printf("Started at: %s\n", practice.StartedAt.Format("15:04:05"))
		fmt.Printf("Elapsed time: %s\n", formatDuration(time.Since(practice.StartedAt)))
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a practice left running",
	Long: `Stop tracking a practice that was left open, for example after the
terminal was closed mid-session.`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		practice, err := db.StopActivePractice(0)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏹️  Stopped %s\n", describePractice(*practice))
		fmt.Printf("Duration: %s\n", formatDuration(time.Duration(practice.DurationSeconds)*time.Second))
	}),
}

// describePractice names what was practiced, e.g. "Sleep with Kai"
func describePractice(p models.Practice) string {
	name := modeName(p.ModeID)
	switch p.Kind {
	case models.KindPanic:
		name = "Panic support"
	case models.KindStory:
		if v, err := catalog.ParseVoice(p.Voice); err == nil {
			return "Story: " + v.String()
		}
		return "Story"
	}
	if v, err := catalog.ParseVoice(p.Voice); err == nil && v != catalog.VoiceNone {
		name += " with " + v.String()
	}
	return name
}

func modeName(id int) string {
	if id == catalog.PanicModeID {
		return catalog.PanicMode().Name
	}
	if mode, ok := catalog.ModeByID(id); ok {
		return mode.Name
	}
	return fmt.Sprintf("Mode #%d", id)
}

// writeHistory prints one line per practice
func writeHistory(w io.Writer, practices []models.Practice, now time.Time) {
	if len(practices) == 0 {
		fmt.Fprintln(w, "No practice yet. Run 'breathe start' to begin.")
		return
	}

	fmt.Fprintf(w, "%-18s %-32s %-8s %s\n", "WHEN", "PRACTICE", "TIME", "CYCLES")
	fmt.Fprintln(w, strings.Repeat("-", 68))

	total := 0
	for _, p := range practices {
		what := describePractice(p)
		if len(what) > 30 {
			what = what[:27] + "..."
		}
		cycles := "-"
		if p.Kind != models.KindStory {
			cycles = fmt.Sprintf("%d", p.Cycles)
		}
		fmt.Fprintf(w, "%-18s %-32s %-8s %s\n",
			parser.FormatAgo(p.StartedAt, now),
			what,
			formatDuration(time.Duration(p.DurationSeconds)*time.Second),
			cycles)
		total += p.DurationSeconds
	}

	fmt.Fprintf(w, "\n%d sessions · %s total\n", len(practices), formatDuration(time.Duration(total)*time.Second))
}

// getWeekStart returns the start of the calendar week (Monday) for the given time
func getWeekStart(t time.Time) time.Time {
	weekday := t.Weekday()
	daysFromMonday := int(weekday - time.Monday)
	if weekday == time.Sunday {
		daysFromMonday = 6 // Sunday is 6 days from Monday
	}

	weekStart := t.AddDate(0, 0, -daysFromMonday)
	return time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
}

// writeWeekSheet prints minutes per mode and weekday. Minutes are rounded
// up per mode and day so a short session still shows.
func writeWeekSheet(w io.Writer, practices []models.Practice, weekStart time.Time) {
	if len(practices) == 0 {
		fmt.Fprintln(w, "No practice this week.")
		return
	}

	// Seconds per mode and day
	modeDaySeconds := make(map[int]map[time.Weekday]int)
	activeDays := make(map[time.Weekday]bool)
	for _, p := range practices {
		day := p.StartedAt.In(weekStart.Location()).Weekday()
		if modeDaySeconds[p.ModeID] == nil {
			modeDaySeconds[p.ModeID] = make(map[time.Weekday]int)
		}
		modeDaySeconds[p.ModeID][day] += p.DurationSeconds
		activeDays[day] = true
	}

	var modeIDs []int
	for id := range modeDaySeconds {
		modeIDs = append(modeIDs, id)
	}
	sort.Ints(modeIDs)

	// Weekdays always show, weekend days only when practiced
	dayNames := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
	var daysToShow []time.Weekday
	var namesToShow []string
	for i, day := range weekdays {
		if i < 5 || activeDays[day] {
			daysToShow = append(daysToShow, day)
			namesToShow = append(namesToShow, dayNames[i])
		}
	}

	nameWidth := 20
	for _, id := range modeIDs {
		nameWidth = max(nameWidth, len(modeName(id)))
	}
	nameWidth = min(nameWidth, 32)

	separator := func() {
		fmt.Fprint(w, strings.Repeat("-", nameWidth))
		for range daysToShow {
			fmt.Fprint(w, "  ---")
		}
		fmt.Fprintln(w, "  -----")
	}

	fmt.Fprintf(w, "%-*s", nameWidth, "Mode")
	for _, name := range namesToShow {
		fmt.Fprintf(w, "  %3s", name)
	}
	fmt.Fprintf(w, "  %5s\n", "Total")
	separator()

	dayTotals := make(map[time.Weekday]int)
	grandTotal := 0
	for _, id := range modeIDs {
		name := modeName(id)
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		fmt.Fprintf(w, "%-*s", nameWidth, name)

		rowTotal := 0
		for _, day := range daysToShow {
			secs := modeDaySeconds[id][day]
			if secs == 0 {
				fmt.Fprintf(w, "  %3s", "-")
				continue
			}
			minutes := (secs + 59) / 60
			fmt.Fprintf(w, "  %3d", minutes)
			dayTotals[day] += minutes
			rowTotal += minutes
		}
		fmt.Fprintf(w, "  %5d\n", rowTotal)
		grandTotal += rowTotal
	}

	separator()
	fmt.Fprintf(w, "%-*s", nameWidth, "Total")
	for _, day := range daysToShow {
		fmt.Fprintf(w, "  %3d", dayTotals[day])
	}
	fmt.Fprintf(w, "  %5d\n", grandTotal)

	fmt.Fprintf(w, "\nWeek of %s to %s\n",
		weekStart.Format("Jan 2"),
		weekStart.AddDate(0, 0, 6).Format("Jan 2, 2006"))
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

func init() {
	historyCmd.Flags().String("since", "", "Only practice since: dd/mm/yyyy, today, X days, X hours, X weeks")
	historyCmd.Flags().Int("limit", 10, "How many recent sessions to show")
}
