package catalog_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/breathe/internal/catalog"
)

func TestTablesAreValid(t *testing.T) {
	require.NoError(t, catalog.ValidateAll())
	assert.Len(t, catalog.Modes(), 14)
	assert.Len(t, catalog.Voices(), 11)
	assert.Len(t, catalog.CueVoices(), 4)
	assert.Len(t, catalog.StoryVoices(), 6)
}

func TestModeByID(t *testing.T) {
	m, ok := catalog.ModeByID(catalog.DefaultModeID)
	require.True(t, ok)
	assert.Equal(t, "Standard", m.Name)
	assert.Equal(t, "4s in • 4s out", m.Pattern())

	p, ok := catalog.ModeByID(catalog.PanicModeID)
	require.True(t, ok)
	assert.Equal(t, catalog.PanicMode(), p)
	assert.Equal(t, 13, p.Total())

	_, ok = catalog.ModeByID(42)
	assert.False(t, ok)
}

func TestModesReturnsCopy(t *testing.T) {
	ms := catalog.Modes()
	ms[0].Inhale = 99
	m, _ := catalog.ModeByID(0)
	assert.Equal(t, 2, m.Inhale)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, catalog.Mode{}.Validate(), catalog.ErrDegenerateMode)
	assert.ErrorIs(t, catalog.Mode{Inhale: 4, Exhale: -1}.Validate(), catalog.ErrNegativeDuration)
	assert.NoError(t, catalog.Mode{ExhaleHold: 1}.Validate())
}

func TestNextSkipsEmptyHolds(t *testing.T) {
	m := catalog.Mode{Inhale: 4, Exhale: 4}
	assert.Equal(t, catalog.Exhale, m.Next(catalog.Inhale))
	assert.Equal(t, catalog.Inhale, m.Next(catalog.Exhale))

	full := catalog.Mode{Inhale: 4, InhaleHold: 2, Exhale: 6, ExhaleHold: 1}
	assert.Equal(t, catalog.InhaleHold, full.Next(catalog.Inhale))
	assert.Equal(t, catalog.Exhale, full.Next(catalog.InhaleHold))
	assert.Equal(t, catalog.ExhaleHold, full.Next(catalog.Exhale))
	assert.Equal(t, catalog.Inhale, full.Next(catalog.ExhaleHold))
}

func TestCycleOrder(t *testing.T) {
	tests := []struct {
		name string
		mode catalog.Mode
		want []catalog.Phase
	}{
		{"two phase", catalog.Mode{Inhale: 4, Exhale: 4}, []catalog.Phase{catalog.Inhale, catalog.Exhale}},
		{"inhale hold only", catalog.Mode{Inhale: 4, InhaleHold: 7, Exhale: 8}, []catalog.Phase{catalog.Inhale, catalog.InhaleHold, catalog.Exhale}},
		{"square", catalog.Mode{Inhale: 4, InhaleHold: 4, Exhale: 4, ExhaleHold: 4}, []catalog.Phase{catalog.Inhale, catalog.InhaleHold, catalog.Exhale, catalog.ExhaleHold}},
		{"exhale hold only", catalog.Mode{Inhale: 2, Exhale: 2, ExhaleHold: 3}, []catalog.Phase{catalog.Inhale, catalog.Exhale, catalog.ExhaleHold}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []catalog.Phase
			p := catalog.Inhale
			for {
				got = append(got, p)
				p = tt.mode.Next(p)
				if p == catalog.Inhale {
					break
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("cycle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	m := catalog.Mode{Inhale: 0, InhaleHold: 3, Exhale: 0, ExhaleHold: 0}
	p, d := m.Resolve(catalog.Inhale)
	assert.Equal(t, catalog.InhaleHold, p)
	assert.Equal(t, 3, d)

	m = catalog.Mode{Inhale: 0, Exhale: 5}
	p, d = m.Resolve(catalog.Inhale)
	assert.Equal(t, catalog.Exhale, p)
	assert.Equal(t, 5, d)

	p, d = catalog.Mode{}.Resolve(catalog.ExhaleHold)
	assert.Equal(t, catalog.Inhale, p)
	assert.Equal(t, 0, d)
}

func TestVoiceGuidance(t *testing.T) {
	assert.Equal(t, catalog.GuidanceNone, catalog.VoiceNone.Guidance())
	for _, v := range catalog.CueVoices() {
		assert.Equal(t, catalog.GuidanceBreathingCues, v.Guidance(), v.String())
		assert.Zero(t, v.StoryLength())
	}
	for _, v := range catalog.StoryVoices() {
		assert.Equal(t, catalog.GuidanceStory, v.Guidance(), v.String())
		assert.NotEmpty(t, catalog.StoryClip(v))
	}
	assert.Equal(t, 5*time.Minute, catalog.VoiceKaiFiveMinutes.StoryLength())
}

func TestOnLaunchResetsStories(t *testing.T) {
	assert.Equal(t, catalog.VoiceNone, catalog.VoiceLumaTwoMinutes.OnLaunch())
	assert.Equal(t, catalog.VoiceZen, catalog.VoiceZen.OnLaunch())
	assert.Equal(t, catalog.VoiceNone, catalog.VoiceNone.OnLaunch())
}

func TestParseVoice(t *testing.T) {
	for _, v := range catalog.Voices() {
		got, err := catalog.ParseVoice(v.Key())
		require.NoError(t, err)
		assert.Equal(t, v, got)

		got, err = catalog.ParseVoice(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	v, err := catalog.ParseVoice("  ")
	require.NoError(t, err)
	assert.Equal(t, catalog.VoiceNone, v)

	_, err = catalog.ParseVoice("bob")
	assert.Error(t, err)
}

func TestClips(t *testing.T) {
	assert.Equal(t, "Kai_BreatheIn", catalog.CueClip(catalog.VoiceKai, catalog.ActionFor(catalog.Inhale)))
	assert.Equal(t, "Amara_Hold", catalog.CueClip(catalog.VoiceAmara, catalog.ActionFor(catalog.ExhaleHold)))
	assert.Equal(t, "Zen_Hold", catalog.CueClip(catalog.VoiceZen, catalog.ActionFor(catalog.InhaleHold)))
	assert.Equal(t, "Luma_BreatheOut", catalog.CueClip(catalog.VoiceLuma, catalog.ActionFor(catalog.Exhale)))
	assert.Empty(t, catalog.CueClip(catalog.VoiceKaiOneMinute, catalog.BreatheIn))
	assert.Len(t, catalog.CueClips(), 12)
	assert.Len(t, catalog.StoryClips(), 6)
	assert.Equal(t, "Luma_OneMinute", catalog.StoryClip(catalog.VoiceLumaOneMinute))
}

func TestGroundingSteps(t *testing.T) {
	steps := catalog.GroundingSteps()
	require.Len(t, steps, 7)
	assert.Equal(t, catalog.StepIntroduction, steps[0])
	assert.Equal(t, catalog.StepBreathing, steps[6])

	prompts := 0
	for _, s := range steps {
		prompts += s.Prompts()
	}
	assert.Equal(t, 15, prompts)

	assert.Equal(t, catalog.StepBreathing, catalog.StepBreathing.Next())
	assert.Equal(t, catalog.StepIntroduction, catalog.StepIntroduction.Prev())
	assert.Equal(t, catalog.StepTouch4, catalog.StepSee5.Next())
	assert.Equal(t, "I'm Feeling Better", catalog.StepBreathing.Button())
}

func TestTracks(t *testing.T) {
	all := catalog.Tracks()
	require.Len(t, all, 16)
	for i, tr := range all {
		assert.Equal(t, i, tr.ID)
	}

	silence, ok := catalog.TrackByID(catalog.SilenceTrackID)
	require.True(t, ok)
	assert.True(t, silence.Silent())
	assert.Empty(t, silence.Clip())

	rain, ok := catalog.TrackByID(5)
	require.True(t, ok)
	assert.False(t, rain.Silent())
	assert.Equal(t, "Track_rain", rain.Clip())

	_, ok = catalog.TrackByID(16)
	assert.False(t, ok)

	all[0].Name = "changed"
	silence, _ = catalog.TrackByID(0)
	assert.Equal(t, "Silence", silence.Name)
}
