package catalog

// GroundingStep is one stage of the 5-4-3-2-1 panic exercise. The last
// step hands over to PanicMode breathing.
type GroundingStep int

const (
	StepIntroduction GroundingStep = iota
	StepSee5
	StepTouch4
	StepHear3
	StepSmell2
	StepTaste1
	StepBreathing
)

var groundingSteps = []struct {
	title       string
	instruction string
	button      string
	prompts     int
}{
	StepIntroduction: {"Panic Attack Support", "We're going to walk through a grounding exercise to help you through this moment. Press enter when you're ready.", "Begin", 0},
	StepSee5:         {"5 Things You Can See", "Look around you. Name 5 things you can see right now.", "Continue", 5},
	StepTouch4:       {"4 Things You Can Touch", "Find 4 things you can physically touch or feel.", "Continue", 4},
	StepHear3:        {"3 Things You Can Hear", "Listen carefully. What are 3 sounds you can hear?", "Continue", 3},
	StepSmell2:       {"2 Things You Can Smell", "Try to notice 2 things you can smell right now.", "Continue", 2},
	StepTaste1:       {"1 Thing You Can Taste", "Focus on 1 thing you can taste or imagine tasting.", "Continue", 1},
	StepBreathing:    {"Calming Breaths", "Now let's focus on your breathing. Breathe in for 4, hold for 2, out for 6.", "I'm Feeling Better", 0},
}

// GroundingSteps returns the steps in order
func GroundingSteps() []GroundingStep {
	out := make([]GroundingStep, len(groundingSteps))
	for i := range groundingSteps {
		out[i] = GroundingStep(i)
	}
	return out
}

func (s GroundingStep) Title() string       { return groundingSteps[s.clamp()].title }
func (s GroundingStep) Instruction() string { return groundingSteps[s.clamp()].instruction }
func (s GroundingStep) Button() string      { return groundingSteps[s.clamp()].button }

// Prompts is how many things the user is asked to name
func (s GroundingStep) Prompts() int { return groundingSteps[s.clamp()].prompts }

// Next advances one step, stopping at StepBreathing
func (s GroundingStep) Next() GroundingStep {
	if s >= StepBreathing {
		return StepBreathing
	}
	return s + 1
}

// Prev goes back one step, stopping at StepIntroduction
func (s GroundingStep) Prev() GroundingStep {
	if s <= StepIntroduction {
		return StepIntroduction
	}
	return s - 1
}

func (s GroundingStep) clamp() GroundingStep {
	if s < StepIntroduction {
		return StepIntroduction
	}
	if s > StepBreathing {
		return StepBreathing
	}
	return s
}
