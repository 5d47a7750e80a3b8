package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRegex     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(h|hour|hours|d|day|days|w|week|weeks)$`)
)

// ParseSince parses the start of a history range relative to now
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2024"), from the start of that day
// - X days (e.g., "3 days", "7d"), from the start of the day X days ago
// - X hours (e.g., "24 hours", "6h")
// - X weeks (e.g., "2 weeks", "1w")
// - "today"
func ParseSince(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty range")
	}
	if input == "today" {
		return startOfDay(now), nil
	}

	if since, err := parseDateFormat(input, now.Location()); err == nil {
		return since, nil
	}

	if since, err := parseRelativeTime(input, now); err == nil {
		return since, nil
	}

	return time.Time{}, fmt.Errorf("invalid range %q. Use: dd/mm/yyyy, today, X days, X hours, or X weeks", input)
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string, loc *time.Location) (time.Time, error) {
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	since := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if since.Day() != day || since.Month() != time.Month(month) || since.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return since, nil
}

// parseRelativeTime parses "3 days", "24 hours", "2w" and friends
func parseRelativeTime(input string, now time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "h", "hour", "hours":
		if amount > 8760 { // Max 1 year in hours
			return time.Time{}, fmt.Errorf("hours must be between 1 and 8760")
		}
		return now.Add(-time.Duration(amount) * time.Hour), nil

	case "d", "day", "days":
		if amount > 365 {
			return time.Time{}, fmt.Errorf("days must be between 1 and 365")
		}
		return startOfDay(now).AddDate(0, 0, -amount), nil

	default:
		if amount > 52 {
			return time.Time{}, fmt.Errorf("weeks must be between 1 and 52")
		}
		return startOfDay(now).AddDate(0, 0, -amount*7), nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatAgo describes how long ago t was, relative to now
func FormatAgo(t, now time.Time) string {
	t = t.In(now.Location())
	days := int(startOfDay(now).Sub(startOfDay(t)).Hours() / 24)
	switch {
	case days <= 0:
		return "today " + t.Format("15:04")
	case days == 1:
		return "yesterday " + t.Format("15:04")
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("02/01/2006")
	}
}
