package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quenchapp/quench/internal/tui/components/slots"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateSchedule:
		content = m.viewSchedule()
	case StateEditing:
		content = m.form.View()
	case StateConfirmClear:
		content = m.viewConfirmClear()
	}

	sections := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		sections = append(sections, dangerStyle.Render("  "+m.errMsg))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Schedule"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	percent := m.tracker.PercentComplete(m.config.Slots)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		docStyle.Render(m.slotList.View()),
		footerStyle.Render(slots.PercentLine(percent, time.Now())),
	)
}

func (m Model) viewSchedule() string {
	lines := []string{
		fmt.Sprintf("Interval:  every %d hour(s)", m.config.IntervalHours),
		fmt.Sprintf("Window:    %s - %s", m.config.StartTime, m.config.EndTime),
		fmt.Sprintf("Reminders: %s", strings.Join(m.config.Slots, ", ")),
		"",
		"Press 'e' to edit. Saving resets today's progress.",
	}
	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewConfirmClear() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Clear today's hydration record?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
