package catalog

import (
	"fmt"
	"strings"
	"time"
)

// GuidanceType classifies what a voice option plays
type GuidanceType int

const (
	GuidanceNone GuidanceType = iota
	GuidanceBreathingCues
	GuidanceStory
)

func (g GuidanceType) String() string {
	switch g {
	case GuidanceBreathingCues:
		return "Breathing Cues"
	case GuidanceStory:
		return "Relaxation Story"
	default:
		return "No Guidance"
	}
}

// Voice is a selectable guidance option
type Voice int

const (
	VoiceNone Voice = iota

	// Breathing cue voices
	VoiceKai
	VoiceZen
	VoiceLuma
	VoiceAmara

	// Timed narrated stories
	VoiceLumaOneMinute
	VoiceLumaTwoMinutes
	VoiceLumaFiveMinutes
	VoiceKaiOneMinute
	VoiceKaiTwoMinutes
	VoiceKaiFiveMinutes
)

type voiceInfo struct {
	key      string
	name     string
	guidance GuidanceType
	narrator string
	length   time.Duration
	clip     string
}

var voiceTable = map[Voice]voiceInfo{
	VoiceNone:            {key: "none", name: "No Guide", guidance: GuidanceNone},
	VoiceKai:             {key: "kai", name: "Kai", guidance: GuidanceBreathingCues, narrator: "Kai"},
	VoiceZen:             {key: "zen", name: "Zen", guidance: GuidanceBreathingCues, narrator: "Zen"},
	VoiceLuma:            {key: "luma", name: "Luma", guidance: GuidanceBreathingCues, narrator: "Luma"},
	VoiceAmara:           {key: "amara", name: "Amara", guidance: GuidanceBreathingCues, narrator: "Amara"},
	VoiceLumaOneMinute:   {key: "luma-1m", name: "Luma One Minute", guidance: GuidanceStory, narrator: "Luma", length: time.Minute, clip: "Luma_OneMinute"},
	VoiceLumaTwoMinutes:  {key: "luma-2m", name: "Luma Two Minutes", guidance: GuidanceStory, narrator: "Luma", length: 2 * time.Minute, clip: "Luma_TwoMinute"},
	VoiceLumaFiveMinutes: {key: "luma-5m", name: "Luma Five Minutes", guidance: GuidanceStory, narrator: "Luma", length: 5 * time.Minute, clip: "Luma_FiveMinute"},
	VoiceKaiOneMinute:    {key: "kai-1m", name: "Kai One Minute", guidance: GuidanceStory, narrator: "Kai", length: time.Minute, clip: "Kai_OneMinute"},
	VoiceKaiTwoMinutes:   {key: "kai-2m", name: "Kai Two Minutes", guidance: GuidanceStory, narrator: "Kai", length: 2 * time.Minute, clip: "Kai_TwoMinute"},
	VoiceKaiFiveMinutes:  {key: "kai-5m", name: "Kai Five Minutes", guidance: GuidanceStory, narrator: "Kai", length: 5 * time.Minute, clip: "Kai_FiveMinute"},
}

// Voices returns all options in display order
func Voices() []Voice {
	return append([]Voice{VoiceNone}, append(CueVoices(), StoryVoices()...)...)
}

// CueVoices returns the voices that announce each phase
func CueVoices() []Voice {
	return []Voice{VoiceKai, VoiceZen, VoiceLuma, VoiceAmara}
}

// StoryVoices returns the narrated sessions
func StoryVoices() []Voice {
	return []Voice{
		VoiceLumaOneMinute, VoiceLumaTwoMinutes, VoiceLumaFiveMinutes,
		VoiceKaiOneMinute, VoiceKaiTwoMinutes, VoiceKaiFiveMinutes,
	}
}

// String returns the display name
func (v Voice) String() string {
	if info, ok := voiceTable[v]; ok {
		return info.name
	}
	return fmt.Sprintf("voice(%d)", int(v))
}

// Key returns the stable identifier used in flags and storage
func (v Voice) Key() string {
	return voiceTable[v].key
}

// Guidance returns what kind of audio the voice plays
func (v Voice) Guidance() GuidanceType {
	return voiceTable[v].guidance
}

// Narrator is the speaker behind a cue voice or story
func (v Voice) Narrator() string {
	return voiceTable[v].narrator
}

// StoryLength is the nominal length of a story, zero for other voices
func (v Voice) StoryLength() time.Duration {
	return voiceTable[v].length
}

// OnLaunch applies the relaunch rule: a saved story is never resumed, so
// story selections come back as VoiceNone.
func (v Voice) OnLaunch() Voice {
	if v.Guidance() == GuidanceStory {
		return VoiceNone
	}
	return v
}

// ParseVoice accepts a key ("kai-2m") or a display name ("Kai Two Minutes")
func ParseVoice(s string) (Voice, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return VoiceNone, nil
	}
	for _, v := range Voices() {
		info := voiceTable[v]
		if strings.EqualFold(s, info.key) || strings.EqualFold(s, info.name) {
			return v, nil
		}
	}
	return VoiceNone, fmt.Errorf("unknown voice %q", s)
}
