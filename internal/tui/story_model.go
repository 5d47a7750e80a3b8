package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/breathe/internal/audio"
	"github.com/balkashynov/breathe/internal/catalog"
)

// StoryModel shows a narrated story while it plays
type StoryModel struct {
	width  int
	height int
	rig    *rig

	voice   catalog.Voice
	started time.Time
	now     time.Time

	bar     progress.Model
	caption string
	err     error

	finished bool // played to the end
	stopped  bool // user left early
}

// NewStoryModel creates the screen; the story is started by Play
func NewStoryModel(r *rig, v catalog.Voice) StoryModel {
	return StoryModel{
		rig:   r,
		voice: v,
		bar: progress.New(
			progress.WithGradient(ColorAccentMain, ColorAccentBright),
			progress.WithWidth(40),
		),
	}
}

// Play starts the story on the controller
func (m StoryModel) Play() (StoryModel, error) {
	if err := m.rig.ctrl.PlayStory(m.voice); err != nil {
		return m, err
	}
	m.started = m.rig.clock.Now()
	m.now = m.started
	return m, nil
}

// Init initializes the model
func (m StoryModel) Init() tea.Cmd {
	return tea.Batch(m.rig.bridge.wait(), frameTick())
}

// Update handles messages
func (m StoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storyDoneMsg:
		if msg.voice == m.voice {
			m.finished = true
			return m, tea.Quit
		}
		return m, m.rig.bridge.wait()

	case clipMsg:
		switch msg.Kind {
		case audio.ClipStarted:
			m.caption = clipCaption(msg.Clip)
		case audio.ClipFinished, audio.ClipStopped:
			m.caption = ""
		}
		return m, m.rig.bridge.wait()

	case phaseMsg, countdownMsg, scaleMsg:
		return m, m.rig.bridge.wait()

	case frameMsg:
		m.now = m.rig.clock.Now()
		if m.finished || m.stopped {
			return m, nil
		}
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(m.width-16, 10), 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.stopped = true
			m.rig.ctrl.Stop()
			return m, tea.Quit

		case "n":
			// Switching stories stops the one playing first
			m.rig.ctrl.Stop()
			m.voice = nextStory(m.voice)
			var err error
			m, err = m.Play()
			m.err = err
			return m, nil
		}
	}

	return m, nil
}

func nextStory(v catalog.Voice) catalog.Voice {
	stories := catalog.StoryVoices()
	for i, s := range stories {
		if s == v {
			return stories[(i+1)%len(stories)]
		}
	}
	return stories[0]
}

// Elapsed is how long the current story has played
func (m StoryModel) Elapsed() time.Duration {
	return min(max(m.now.Sub(m.started), 0), m.voice.StoryLength())
}

// View renders the TUI
func (m StoryModel) View() string {
	if m.finished || m.stopped {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)
	var components []string

	title := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	components = append(components, center.Render(title.Render("📖  "+m.voice.String())))

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
	components = append(components, center.Render(muted.Render("Narrated by "+m.voice.Narrator())))

	length := m.voice.StoryLength()
	pct := 0.0
	if length > 0 {
		pct = float64(m.Elapsed()) / float64(length)
	}
	components = append(components, center.Render(m.bar.ViewAs(pct)))
	components = append(components, center.Render(muted.Render(fmt.Sprintf("%s / %s", formatClock(m.Elapsed()), formatClock(length)))))

	if m.caption != "" {
		caption := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
		components = append(components, center.Render(caption.Render(m.caption)))
	}
	if m.err != nil {
		components = append(components, center.Render(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("❌ "+m.err.Error())))
	}

	body := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, components...))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("n next story · q/esc stop")

	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

// formatClock renders d as m:ss
func formatClock(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
