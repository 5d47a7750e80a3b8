package catalog

import "fmt"

// DefaultModeID is the Standard 4-0-4-0 pattern
const DefaultModeID = 2

// PanicModeID identifies the grounding exercise pattern. It is kept out of
// the selectable list.
const PanicModeID = 100

var modes = []Mode{
	{ID: 0, Name: "Quick", Description: "A short reset between tasks", Icon: "bolt", Inhale: 2, Exhale: 2},
	{ID: 1, Name: "Shallow", Description: "Light, easy breaths", Icon: "wind", Inhale: 3, Exhale: 3},
	{ID: 2, Name: "Standard", Description: "Even breathing to settle in", Icon: "wind", Inhale: 4, Exhale: 4},
	{ID: 3, Name: "Calm", Description: "Slow square breathing", Icon: "leaf", Inhale: 4, InhaleHold: 4, Exhale: 4, ExhaleHold: 4},
	{ID: 4, Name: "Sleep", Description: "Long exhales to wind down", Icon: "night", Inhale: 4, InhaleHold: 7, Exhale: 8},
	{ID: 5, Name: "Focus", Description: "Steady rhythm for concentration", Icon: "wind", Inhale: 5, Exhale: 5},
	{ID: 6, Name: "Deep Zen", Description: "Deep breaths with pauses", Icon: "leaf", Inhale: 8, InhaleHold: 4, Exhale: 8, ExhaleHold: 4},
	{ID: 7, Name: "Monk", Description: "Very slow meditative breathing", Icon: "peaceful", Inhale: 10, InhaleHold: 5, Exhale: 8, ExhaleHold: 5},
	{ID: 8, Name: "Alternate Nostril", Description: "Short breaths, long holds", Icon: "wind", Inhale: 2, InhaleHold: 5, Exhale: 2, ExhaleHold: 5},
	{ID: 9, Name: "Calming", Description: "Extended exhale to slow the heart", Icon: "water", Inhale: 7, Exhale: 11},
	{ID: 10, Name: "Box Breathing", Description: "Four equal sides", Icon: "wind", Inhale: 4, InhaleHold: 4, Exhale: 4, ExhaleHold: 4},
	{ID: 11, Name: "Relaxing", Description: "The 4-7-8 technique", Icon: "night", Inhale: 4, InhaleHold: 7, Exhale: 8},
	{ID: 12, Name: "Energizing", Description: "Quick rhythm to wake up", Icon: "bolt", Inhale: 3, Exhale: 2},
	{ID: 13, Name: "Ocean Breath", Description: "Waves with short pauses", Icon: "water", Inhale: 5, InhaleHold: 2, Exhale: 5, ExhaleHold: 2},
}

var panicMode = Mode{
	ID:          PanicModeID,
	Name:        "Calm Panic",
	Description: "Breathe in for 4, hold for 2, out for 6",
	Icon:        "wind",
	Inhale:      4,
	InhaleHold:  2,
	Exhale:      6,
	ExhaleHold:  1,
}

// Modes returns a copy of the selectable modes, ordered by id
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// PanicMode returns the pattern used after the grounding sequence
func PanicMode() Mode {
	return panicMode
}

// ModeByID looks up a mode, including the panic mode
func ModeByID(id int) (Mode, bool) {
	if id == PanicModeID {
		return panicMode, true
	}
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// ValidateAll checks every table entry and rejects duplicate ids
func ValidateAll() error {
	seen := make(map[int]bool, len(modes)+1)
	for _, m := range append(Modes(), panicMode) {
		if seen[m.ID] {
			return fmt.Errorf("duplicate mode id %d", m.ID)
		}
		seen[m.ID] = true
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
