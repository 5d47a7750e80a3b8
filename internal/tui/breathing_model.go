package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/breathe/internal/audio"
	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/session"
)

const frameInterval = 100 * time.Millisecond

// frameMsg drives the breath bar and the shimmer
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// breathAnimation eases the scale from one target to the next
type breathAnimation struct {
	from, to float64
	start    time.Time
	over     time.Duration
}

func (a breathAnimation) at(t time.Time) float64 {
	if a.over <= 0 || !t.After(a.start) {
		return a.from
	}
	x := float64(t.Sub(a.start)) / float64(a.over)
	if x >= 1 {
		return a.to
	}
	eased := 0.5 - 0.5*math.Cos(math.Pi*x)
	return a.from + (a.to-a.from)*eased
}

// BreathingModel is the main breathing screen
type BreathingModel struct {
	width  int
	height int
	rig    *rig

	// Session view, fed by bridge messages
	state     session.State
	phase     catalog.Phase
	remaining int
	anim      breathAnimation
	now       time.Time

	bar     progress.Model
	shimmer *ShimmerState
	caption string
	volume  float64
	track   catalog.Track
	err     error

	// What to persist on exit
	voiceChanged bool
	modeChanged  bool
	trackChanged bool

	quitting bool
}

// NewBreathingModel creates the screen for an assembled rig
func NewBreathingModel(r *rig) BreathingModel {
	state := r.ctrl.State()
	track, ok := r.deck.Background()
	if !ok {
		track, _ = catalog.TrackByID(catalog.SilenceTrackID)
	}
	return BreathingModel{
		rig:       r,
		state:     state,
		phase:     state.Phase,
		remaining: state.Remaining,
		anim:      breathAnimation{from: state.Scale, to: state.Scale},
		bar: progress.New(
			progress.WithGradient(ColorAccentMain, ColorAccentBright),
			progress.WithoutPercentage(),
			progress.WithWidth(40),
		),
		shimmer: NewShimmerState(DefaultShimmerConfig()),
		volume:  r.deck.Volume(),
		track:   track,
	}
}

// Init starts listening to the session and the frame clock
func (m BreathingModel) Init() tea.Cmd {
	return tea.Batch(m.rig.bridge.wait(), frameTick())
}

// Update handles messages
func (m BreathingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m BreathingModel) update(msg tea.Msg) (BreathingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case phaseMsg:
		m.phase = msg.phase
		m.remaining = msg.remaining
		m.state = m.rig.ctrl.State()
		m.shimmer.Reset()
		return m, m.rig.bridge.wait()

	case countdownMsg:
		m.remaining = msg.remaining
		return m, m.rig.bridge.wait()

	case scaleMsg:
		m.anim = breathAnimation{
			from:  m.anim.at(msg.at),
			to:    msg.target,
			start: msg.at,
			over:  msg.over,
		}
		return m, m.rig.bridge.wait()

	case clipMsg:
		m.applyClip(audio.Event(msg))
		return m, m.rig.bridge.wait()

	case storyDoneMsg:
		m.caption = ""
		m.state = m.rig.ctrl.State()
		return m, m.rig.bridge.wait()

	case frameMsg:
		m.now = time.Time(msg)
		m.shimmer.Advance(m.now, len(m.phaseText()))
		if m.quitting {
			return m, nil
		}
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(m.width-16, 10), 60)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BreathingModel) handleKey(msg tea.KeyMsg) (BreathingModel, tea.Cmd) {
	ctrl := m.rig.ctrl
	m.err = nil

	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.quitting = true
		ctrl.Stop()
		m.state = ctrl.State()
		return m, tea.Quit

	case " ", "space", "p":
		if ctrl.State().Active {
			ctrl.Stop()
		} else {
			m.err = ctrl.Start(ctrl.Mode())
		}

	case "r":
		m.err = ctrl.Restart()

	case "v":
		ctrl.SetVoice(nextCueVoice(ctrl.State().Voice))
		m.voiceChanged = true

	case "t":
		m.track = nextTrack(m.track)
		m.rig.deck.PlayBackground(m.track)
		m.trackChanged = true

	case "]", "right", "l":
		m.err = m.stepMode(1)

	case "[", "left", "h":
		m.err = m.stepMode(-1)
	}

	m.state = ctrl.State()
	if !m.state.Active {
		m.phase = m.state.Phase
		m.remaining = 0
		m.anim = breathAnimation{from: m.anim.at(m.now), to: session.ScaleRest, start: m.now, over: time.Second}
	}
	return m, nil
}

func (m *BreathingModel) stepMode(delta int) error {
	modes := catalog.Modes()
	current := m.rig.ctrl.Mode().ID
	idx := 0
	for i, mode := range modes {
		if mode.ID == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(modes)) % len(modes)
	if err := m.rig.ctrl.SetMode(modes[idx]); err != nil {
		return err
	}
	m.modeChanged = true
	return nil
}

func (m *BreathingModel) applyClip(e audio.Event) {
	switch e.Kind {
	case audio.ClipStarted:
		m.caption = clipCaption(e.Clip)
	case audio.ClipFinished, audio.ClipStopped:
		if m.caption == clipCaption(e.Clip) {
			m.caption = ""
		}
	case audio.VolumeChanged:
		m.volume = e.Volume
	case audio.TrackChanged:
		if t, ok := catalog.TrackByID(e.Track); ok {
			m.track = t
		}
	}
}

// nextTrack cycles through the ambient tracks, silence included
func nextTrack(t catalog.Track) catalog.Track {
	tracks := catalog.Tracks()
	for i, o := range tracks {
		if o.ID == t.ID {
			return tracks[(i+1)%len(tracks)]
		}
	}
	return tracks[0]
}

// nextCueVoice cycles no guide → cue voices → no guide
func nextCueVoice(v catalog.Voice) catalog.Voice {
	order := append([]catalog.Voice{catalog.VoiceNone}, catalog.CueVoices()...)
	for i, o := range order {
		if o == v {
			return order[(i+1)%len(order)]
		}
	}
	return catalog.VoiceNone
}

// clipCaption turns "Kai_BreatheIn" into "♪ Kai · breathe in"
func clipCaption(clip string) string {
	narrator, name, ok := strings.Cut(clip, "_")
	if !ok {
		return "♪ " + clip
	}
	var words []string
	start := 0
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, strings.ToLower(name[start:i]))
			start = i
		}
	}
	words = append(words, strings.ToLower(name[start:]))
	return fmt.Sprintf("♪ %s · %s", narrator, strings.Join(words, " "))
}

func (m BreathingModel) phaseText() string {
	if !m.state.Active {
		return "Paused"
	}
	return m.phase.Label()
}

// View renders the breathing screen
func (m BreathingModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	panel := m.renderBreathPanel(m.width, m.height-2)
	return lipgloss.JoinVertical(lipgloss.Left, panel, m.renderHelpBar())
}

// renderBreathPanel renders the centered breathing column
func (m BreathingModel) renderBreathPanel(width, height int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
	var components []string

	mode := m.rig.ctrl.Mode()
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	components = append(components, center.Render(header.Render(fmt.Sprintf("%s  %s", modeIcon(mode.Icon), mode.Name))))

	pattern := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
	patternText := mode.Pattern()
	if m.state.Active && mode.ID != m.state.Mode.ID {
		patternText += " (next round)"
	}
	components = append(components, center.Render(pattern.Render(patternText)))

	// Phase label and countdown
	components = append(components, center.Render(m.shimmer.Render(strings.ToUpper(m.phaseText()))))
	if m.state.Active {
		digits := lipgloss.NewStyle().
			Foreground(lipgloss.Color(phaseColor(m.phase))).
			Bold(true).
			Render(renderBigNumber(m.remaining))
		components = append(components, center.Render(digits))
	}

	// Breath bar
	scale := m.anim.at(m.now)
	pct := (scale - session.ScaleRest) / (session.ScaleFull - session.ScaleRest)
	components = append(components, center.Render(m.bar.ViewAs(math.Min(1, math.Max(0, pct)))))

	// Guide and caption
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	guide := fmt.Sprintf("Guide: %s · Track: %s · Cycles: %d · Volume: %d%%",
		m.state.Voice, m.track.Name, m.state.Cycles, int(math.Round(m.volume*100)))
	components = append(components, center.Render(muted.Render(guide)))
	if m.caption != "" {
		caption := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Italic(true)
		components = append(components, center.Render(caption.Render(m.caption)))
	}
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		components = append(components, center.Render(errStyle.Render("❌ "+m.err.Error())))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

func phaseColor(p catalog.Phase) string {
	switch p {
	case catalog.Inhale:
		return ColorInhale
	case catalog.Exhale:
		return ColorExhale
	default:
		return ColorHold
	}
}

// renderBigNumber renders n in 5-line block digits
func renderBigNumber(n int) string {
	digits := map[rune][5]string{
		'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
		'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
		'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
		'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
		'4': {"█   █", "█   █", "█████", "    █", "    █"},
		'5': {"█████", "█    ", "████ ", "    █", "████ "},
		'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
		'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
		'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
		'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	}

	var lines [5]strings.Builder
	for i, ch := range fmt.Sprintf("%d", max(n, 0)) {
		for row := 0; row < 5; row++ {
			if i > 0 {
				lines[row].WriteString(" ")
			}
			lines[row].WriteString(digits[ch][row])
		}
	}

	out := make([]string, 5)
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}

// renderHelpBar renders the help bar at the bottom
func (m BreathingModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("space pause/resume · r restart · [/] mode · v guide · t track · q/esc finish")
}
