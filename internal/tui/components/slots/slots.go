package slots

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/schedule"
)

// ToggleMsg asks the parent model to flip the completion state of a slot.
type ToggleMsg struct {
	Slot string
	Done bool
}

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	upNextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type Item struct {
	Slot   string
	Done   bool
	UpNext bool
}

func (i Item) Title() string {
	mark := "○"
	if i.Done {
		mark = doneStyle.Render("✓")
	}
	title := fmt.Sprintf("%s %s", mark, i.Slot)
	if i.UpNext {
		title = upNextStyle.Render(title + "  ← up next")
	}
	return title
}

func (i Item) Description() string {
	if i.Done {
		return "logged"
	}
	return "not yet"
}

func (i Item) FilterValue() string { return i.Slot }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle drink"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(slotTimes []string, completed map[string]bool, width, height int) Model {
	l := list.New(buildItems(slotTimes, completed), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is handled globally in the main model
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

// SetSlots rebuilds the list from the configured slots and today's record.
func (m *Model) SetSlots(slotTimes []string, completed map[string]bool) {
	m.list.SetItems(buildItems(slotTimes, completed))
}

func buildItems(slotTimes []string, completed map[string]bool) []list.Item {
	upNext, _ := schedule.Upcoming(slotTimes, time.Now())
	items := make([]list.Item, len(slotTimes))
	for i, slot := range slotTimes {
		items[i] = Item{
			Slot:   slot,
			Done:   completed[slot],
			UpNext: slot == upNext,
		}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleMsg{Slot: i.Slot, Done: !i.Done} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No reminder slots configured.\n  Press 'tab' to set up a schedule."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// PercentLine formats the completion footer shown under the list.
func PercentLine(percent int, now time.Time) string {
	return fmt.Sprintf("%s  %d%% of today's goal", now.Format(constants.DateFormat), percent)
}
