package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/breathe/internal/catalog"
)

// GroundingModel walks through 5-4-3-2-1 grounding and then hands over to
// panic-mode breathing
type GroundingModel struct {
	width  int
	height int

	step    catalog.GroundingStep
	inputs  []textinput.Model
	focus   int
	answers map[catalog.GroundingStep][]string

	breath BreathingModel

	// State
	err       error
	finished  bool // "I'm Feeling Better"
	cancelled bool
}

// NewGroundingModel creates the grounding screen on top of a rig
func NewGroundingModel(r *rig) GroundingModel {
	return GroundingModel{
		step:    catalog.StepIntroduction,
		answers: make(map[catalog.GroundingStep][]string),
		breath:  NewBreathingModel(r),
	}
}

// Init initializes the model
func (m GroundingModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.breath.Init())
}

// Update handles messages
func (m GroundingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = min(max(m.width/2, 30), 60)
		}
		var cmd tea.Cmd
		m.breath, cmd = m.breath.update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		// Session, deck and frame messages belong to the breathing view
		var cmd tea.Cmd
		m.breath, cmd = m.breath.update(msg)
		return m, cmd
	}
}

func (m GroundingModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		m.breath.rig.ctrl.Stop()
		return m, tea.Quit

	case "esc":
		if m.step == catalog.StepIntroduction {
			m.cancelled = true
			return m, tea.Quit
		}
		return m.goTo(m.step.Prev())

	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m.moveFocus(1), nil
		}
		if m.step == catalog.StepBreathing {
			m.finished = true
			m.breath.rig.ctrl.Stop()
			return m, tea.Quit
		}
		return m.goTo(m.step.Next())

	case "tab", "down":
		return m.moveFocus(1), nil

	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	}

	if m.step == catalog.StepBreathing {
		// voice and pause keys still work while breathing
		switch msg.String() {
		case "v", " ", "p", "r":
			var cmd tea.Cmd
			m.breath, cmd = m.breath.handleKey(msg)
			return m, cmd
		}
		return m, nil
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// goTo saves the current answers and enters step
func (m GroundingModel) goTo(step catalog.GroundingStep) (tea.Model, tea.Cmd) {
	m.saveAnswers()
	m.err = nil

	leaving := m.step
	m.step = step
	m.inputs = m.newInputs(step)
	m.focus = 0

	ctrl := m.breath.rig.ctrl
	switch {
	case step == catalog.StepBreathing && leaving != catalog.StepBreathing:
		m.err = ctrl.Start(catalog.PanicMode())
	case leaving == catalog.StepBreathing && step != catalog.StepBreathing:
		ctrl.Stop()
	}
	m.breath.state = ctrl.State()

	if len(m.inputs) > 0 {
		return m, textinput.Blink
	}
	return m, nil
}

func (m GroundingModel) moveFocus(delta int) GroundingModel {
	if len(m.inputs) == 0 {
		return m
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m *GroundingModel) saveAnswers() {
	if len(m.inputs) == 0 {
		return
	}
	var answers []string
	for _, in := range m.inputs {
		answers = append(answers, strings.TrimSpace(in.Value()))
	}
	m.answers[m.step] = answers
}

// newInputs builds one field per prompt, restoring earlier answers
func (m GroundingModel) newInputs(step catalog.GroundingStep) []textinput.Model {
	inputs := make([]textinput.Model, step.Prompts())
	saved := m.answers[step]
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = min(max(m.width/2, 30), 60)
		inputs[i].CharLimit = 80
		inputs[i].Placeholder = fmt.Sprintf("%d. (Enter to skip)", i+1)
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		if i < len(saved) {
			inputs[i].SetValue(saved[i])
		}
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return inputs
}

// Answered counts the non-empty answers given so far
func (m GroundingModel) Answered() int {
	n := 0
	for _, answers := range m.answers {
		for _, a := range answers {
			if a != "" {
				n++
			}
		}
	}
	return n
}

// View renders the TUI
func (m GroundingModel) View() string {
	if m.cancelled || m.finished {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.step == catalog.StepBreathing {
		m.breath.width = m.width
		panel := m.breath.renderBreathPanel(m.width, m.height-4)
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(m.width), panel, m.renderHelpBar())
	}

	stepsWidth := 28
	mainWidth := max(m.width-stepsWidth-6, 30)

	steps := lipgloss.NewStyle().
		Width(stepsWidth).
		Height(m.height - 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1).
		Render(m.renderSteps())

	main := lipgloss.NewStyle().
		Width(mainWidth).
		Height(m.height - 4).
		Padding(1, 2).
		Render(m.renderStep(mainWidth - 4))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, steps, " ", main),
		m.renderHelpBar(),
	)
}

// renderSteps renders the step list with the current one marked
func (m GroundingModel) renderSteps() string {
	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	future := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	var b strings.Builder
	for _, step := range catalog.GroundingSteps() {
		switch {
		case step == m.step:
			b.WriteString(current.Render("▶ " + step.Title()))
		case step < m.step:
			b.WriteString(done.Render("✓ " + step.Title()))
		default:
			b.WriteString(future.Render("  " + step.Title()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m GroundingModel) renderTitle(width int) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Align(lipgloss.Center).
		Width(width).
		Render(m.step.Title())
}

// renderStep renders the instruction and the prompt fields
func (m GroundingModel) renderStep(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Render(m.step.Title()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Width(width).
		Render(m.step.Instruction()))
	b.WriteString("\n\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Padding(0, 2).
		MarginTop(1)
	b.WriteString(button.Render(m.step.Button()))

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true).Render("❌ " + m.err.Error()))
	}
	return b.String()
}

func (m GroundingModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	help := "enter next · tab/↓ next field · shift+tab/↑ previous field · esc back · ctrl+c quit"
	if m.step == catalog.StepBreathing {
		help = "enter " + strings.ToLower(m.step.Button()) + " · space pause/resume · v guide · esc back"
	}
	return helpStyle.Render(help)
}
