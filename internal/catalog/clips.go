package catalog

// CueAction is what a short voice clip says
type CueAction int

const (
	BreatheIn CueAction = iota
	Hold
	BreatheOut
)

func (a CueAction) String() string {
	switch a {
	case BreatheIn:
		return "BreatheIn"
	case Hold:
		return "Hold"
	default:
		return "BreatheOut"
	}
}

// ActionFor maps a phase to its cue. Both holds share one clip.
func ActionFor(p Phase) CueAction {
	switch p {
	case Inhale:
		return BreatheIn
	case Exhale:
		return BreatheOut
	default:
		return Hold
	}
}

// CueClip returns the clip id for a cue voice, e.g. "Kai_BreatheIn".
// Non-cue voices have no clips.
func CueClip(v Voice, a CueAction) string {
	if v.Guidance() != GuidanceBreathingCues {
		return ""
	}
	return v.Narrator() + "_" + a.String()
}

// StoryClip returns the narration clip id for a story voice
func StoryClip(v Voice) string {
	return voiceTable[v].clip
}

// CueClips lists every short clip that should be preloaded
func CueClips() []string {
	var clips []string
	for _, v := range CueVoices() {
		for _, a := range []CueAction{BreatheIn, Hold, BreatheOut} {
			clips = append(clips, CueClip(v, a))
		}
	}
	return clips
}

// StoryClips lists every narration clip
func StoryClips() []string {
	var clips []string
	for _, v := range StoryVoices() {
		clips = append(clips, StoryClip(v))
	}
	return clips
}
