package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/breathe/internal/catalog"
)

// PickerItem is one row of a picker
type PickerItem struct {
	Key      string
	Icon     string
	Title    string
	Subtitle string
	Details  []string
}

// PickerModel is a paged list with a details panel, used to choose a
// breathing mode or a story
type PickerModel struct {
	width  int
	height int

	heading  string
	items    []PickerItem
	selected int

	// Pagination
	currentPage  int
	itemsPerPage int

	// Shimmer effect for the selected title
	shimmer *ShimmerState

	chosen    bool
	cancelled bool
}

// NewPickerModel creates a picker with the item whose Key is current preselected
func NewPickerModel(heading string, items []PickerItem, current string) PickerModel {
	m := PickerModel{
		heading:      heading,
		items:        items,
		shimmer:      NewShimmerState(DefaultShimmerConfig()),
		itemsPerPage: max(len(items), 1),
	}
	for i, item := range items {
		if item.Key == current {
			m.selected = i
		}
	}
	return m
}

// ModeItems lists the breathing modes
func ModeItems() []PickerItem {
	var items []PickerItem
	for _, mode := range catalog.Modes() {
		items = append(items, PickerItem{
			Key:      fmt.Sprintf("%d", mode.ID),
			Icon:     modeIcon(mode.Icon),
			Title:    mode.Name,
			Subtitle: mode.Pattern(),
			Details: []string{
				mode.Description,
				fmt.Sprintf("One cycle takes %ds", mode.Total()),
			},
		})
	}
	return items
}

// modeIcon maps catalog icon names to glyphs
func modeIcon(name string) string {
	switch name {
	case "bolt":
		return "⚡"
	case "wind":
		return "🌬️"
	case "leaf":
		return "🍃"
	case "night":
		return "🌙"
	case "peaceful":
		return "🧘"
	case "water":
		return "🌊"
	}
	return name
}

// StoryItems lists the narrated stories
func StoryItems() []PickerItem {
	var items []PickerItem
	for _, v := range catalog.StoryVoices() {
		items = append(items, PickerItem{
			Key:      v.Key(),
			Icon:     "📖",
			Title:    v.String(),
			Subtitle: formatDuration(v.StoryLength()),
			Details: []string{
				fmt.Sprintf("Narrated by %s", v.Narrator()),
				"Background audio lowers while the story plays.",
			},
		})
	}
	return items
}

// Selected returns the chosen item, if any
func (m PickerModel) Selected() (PickerItem, bool) {
	if !m.chosen || len(m.items) == 0 {
		return PickerItem{}, false
	}
	return m.items[m.selected], true
}

// Init initializes the model
func (m PickerModel) Init() tea.Cmd {
	if !m.shimmer.Active() {
		return nil
	}
	return frameTick()
}

// Update handles messages
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.chosen || m.cancelled {
			return m, nil
		}
		if len(m.items) > 0 {
			m.shimmer.Advance(time.Time(msg), len([]rune(m.items[m.selected].Title)))
		}
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - heading(2) - pagination(2) - help(1) - borders(4) - margins(3) = rows
		m.itemsPerPage = max(m.height-12, 3)
		m.currentPage = m.selected / m.itemsPerPage
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if len(m.items) > 0 {
				m.chosen = true
			}
			return m, tea.Quit

		case "up", "k":
			return m.moveSelection(-1), nil

		case "down", "j":
			return m.moveSelection(1), nil

		case "left", "h":
			return m.turnPage(-1), nil

		case "right", "l":
			return m.turnPage(1), nil
		}
	}

	return m, nil
}

// moveSelection moves the selection and follows it across pages
func (m PickerModel) moveSelection(delta int) PickerModel {
	next := m.selected + delta
	if next < 0 || next >= len(m.items) {
		return m
	}
	m.selected = next
	m.currentPage = m.selected / m.itemsPerPage
	m.shimmer.Reset()
	return m
}

// turnPage changes page and keeps the selection on it
func (m PickerModel) turnPage(delta int) PickerModel {
	pages := (len(m.items) + m.itemsPerPage - 1) / m.itemsPerPage
	page := m.currentPage + delta
	if page < 0 || page >= pages {
		return m
	}
	m.currentPage = page
	first := page * m.itemsPerPage
	last := min(first+m.itemsPerPage, len(m.items)) - 1
	m.selected = min(max(m.selected, first), last)
	m.shimmer.Reset()
	return m
}

// View renders the TUI
func (m PickerModel) View() string {
	if m.chosen || m.cancelled {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 4

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTable(leftWidth),
		" ",
		m.renderDetails(rightWidth),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"", // Small top margin to show border
		content,
		"",
		m.renderHelpBar(),
	)
}

// renderTable renders the left panel
func (m PickerModel) renderTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render(m.heading))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("Nothing to choose from"))
		return b.String()
	}

	titleWidth := max(width-30, 16)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	start := m.currentPage * m.itemsPerPage
	end := min(start+m.itemsPerPage, len(m.items))
	for i := start; i < end; i++ {
		item := m.items[i]

		title := item.Title
		if len([]rune(title)) > titleWidth {
			title = string([]rune(title)[:titleWidth-3]) + "..."
		}
		padded := fmt.Sprintf("%-*s", titleWidth, title)

		if i == m.selected {
			row := fmt.Sprintf("%s %s %s", item.Icon, m.shimmer.Render(padded), subtitleStyle.Render(item.Subtitle))
			selectedStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1)
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s %s", item.Icon, padded, subtitleStyle.Render(item.Subtitle)))
		}
		b.WriteString("\n")
	}

	if m.itemsPerPage < len(m.items) {
		pages := (len(m.items) + m.itemsPerPage - 1) / m.itemsPerPage
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(fmt.Sprintf("Page %d/%d (%d items)", m.currentPage+1, pages, len(m.items))))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

// renderDetails renders the right panel for the selected item
func (m PickerModel) renderDetails(width int) string {
	var b strings.Builder

	if len(m.items) == 0 {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("breathe"))
	} else {
		item := m.items[m.selected]

		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(width)
		b.WriteString(titleStyle.Render(item.Icon + " " + item.Title))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(item.Subtitle))
		b.WriteString("\n\n")

		detailStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Width(width - 2)
		for _, line := range item.Details {
			b.WriteString(detailStyle.Render(line))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

// renderHelpBar renders the help bar with hotkey hints
func (m PickerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("↑/↓ nav · ←/→ page · enter choose · q/esc cancel")
}
