package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNegativeDuration = errors.New("phase duration must not be negative")
	ErrDegenerateMode   = errors.New("mode has no positive phase duration")
)

// Phase is one stage of a breathing cycle
type Phase int

const (
	Inhale Phase = iota
	InhaleHold
	Exhale
	ExhaleHold
)

// String returns the phase identifier
func (p Phase) String() string {
	switch p {
	case Inhale:
		return "inhale"
	case InhaleHold:
		return "inhale-hold"
	case Exhale:
		return "exhale"
	case ExhaleHold:
		return "exhale-hold"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Label returns the text shown to the user while the phase runs
func (p Phase) Label() string {
	switch p {
	case Inhale:
		return "Inhale"
	case Exhale:
		return "Exhale"
	default:
		return "Hold"
	}
}

// Mode is a named breathing pattern. Durations are whole seconds.
type Mode struct {
	ID          int
	Name        string
	Description string
	Icon        string

	Inhale     int
	InhaleHold int
	Exhale     int
	ExhaleHold int
}

// Duration returns the length of a phase in seconds
func (m Mode) Duration(p Phase) int {
	switch p {
	case Inhale:
		return m.Inhale
	case InhaleHold:
		return m.InhaleHold
	case Exhale:
		return m.Exhale
	case ExhaleHold:
		return m.ExhaleHold
	}
	return 0
}

// Total returns the length of one full cycle in seconds
func (m Mode) Total() int {
	return m.Inhale + m.InhaleHold + m.Exhale + m.ExhaleHold
}

// Pattern renders the timing, e.g. "4s in • 7s hold • 8s out"
func (m Mode) Pattern() string {
	parts := []string{fmt.Sprintf("%ds in", m.Inhale)}
	if m.InhaleHold > 0 {
		parts = append(parts, fmt.Sprintf("%ds hold", m.InhaleHold))
	}
	parts = append(parts, fmt.Sprintf("%ds out", m.Exhale))
	if m.ExhaleHold > 0 {
		parts = append(parts, fmt.Sprintf("%ds hold", m.ExhaleHold))
	}
	return strings.Join(parts, " • ")
}

// Validate rejects negative durations and all-zero modes
func (m Mode) Validate() error {
	for _, p := range []Phase{Inhale, InhaleHold, Exhale, ExhaleHold} {
		if m.Duration(p) < 0 {
			return fmt.Errorf("mode %d %s: %w", m.ID, p, ErrNegativeDuration)
		}
	}
	if m.Total() == 0 {
		return fmt.Errorf("mode %d: %w", m.ID, ErrDegenerateMode)
	}
	return nil
}

// Next returns the phase following p. Hold phases with zero duration are skipped.
func (m Mode) Next(p Phase) Phase {
	switch p {
	case Inhale:
		if m.InhaleHold > 0 {
			return InhaleHold
		}
		return Exhale
	case InhaleHold:
		return Exhale
	case Exhale:
		if m.ExhaleHold > 0 {
			return ExhaleHold
		}
		return Inhale
	default:
		return Inhale
	}
}

// Resolve walks forward from p (inclusive) to the first phase with a
// positive duration. The walk is capped at one cycle; a degenerate mode
// resolves to Inhale with its nominal duration.
func (m Mode) Resolve(p Phase) (Phase, int) {
	for i := 0; i < 4; i++ {
		if d := m.Duration(p); d > 0 {
			return p, d
		}
		p = m.Next(p)
	}
	return Inhale, m.Inhale
}
