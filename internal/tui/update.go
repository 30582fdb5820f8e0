package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/quenchapp/quench/internal/errors"
	"github.com/quenchapp/quench/internal/tui/components/slots"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.slotList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case slots.ToggleMsg:
		var err error
		if msg.Done {
			err = m.tracker.AddStat(msg.Slot)
		} else {
			err = m.tracker.RemoveStat(msg.Slot)
		}
		if err != nil {
			m.errMsg = apperrors.Format(err)
		} else {
			m.errMsg = ""
		}
		m.refreshSlots()
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateEditing(msg)
	case StateConfirmClear:
		return m.updateConfirmClear(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % 2
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + 1) % 2
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if m.state == StateToday {
				m.previousState = m.state
				m.state = StateConfirmClear
				return m, nil
			}
		case key.Matches(msg, m.keys.Edit):
			if m.state == StateSchedule {
				m.scheduleForm = &ScheduleFormModel{
					Interval: strconv.Itoa(m.config.IntervalHours),
					Start:    m.config.StartTime,
					End:      m.config.EndTime,
				}
				m.form = newScheduleForm(m.scheduleForm)
				m.previousState = m.state
				m.state = StateEditing
				return m, m.form.Init()
			}
		}
	}

	if m.state == StateToday {
		var cmd tea.Cmd
		m.slotList, cmd = m.slotList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.state = m.previousState
		m.applyScheduleForm()
		m.form = nil
	}
	return m, cmd
}

// applyScheduleForm validates and saves the edited schedule. Validation
// failures surface inline instead of crashing the session.
func (m *Model) applyScheduleForm() {
	interval, err := strconv.Atoi(m.scheduleForm.Interval)
	if err != nil {
		m.errMsg = "interval must be a number"
		return
	}

	config, err := m.schedule.Save(context.Background(), interval, m.scheduleForm.Start, m.scheduleForm.End)
	if err != nil {
		m.errMsg = apperrors.Format(err)
		return
	}

	m.errMsg = ""
	m.config = config
	m.refreshSlots()
}

func (m Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if err := m.tracker.ClearToday(); err != nil {
				m.errMsg = apperrors.Format(err)
			} else {
				m.errMsg = ""
			}
			m.refreshSlots()
			m.state = m.previousState
		case "n", "esc", "q":
			m.state = m.previousState
		}
	}
	return m, nil
}
