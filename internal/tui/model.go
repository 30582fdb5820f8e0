package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/hydration"
	"github.com/quenchapp/quench/internal/models"
	"github.com/quenchapp/quench/internal/schedule"
	"github.com/quenchapp/quench/internal/tui/components/slots"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateSchedule
	StateEditing
	StateConfirmClear
)

// ScheduleFormModel holds the raw text the schedule form edits.
type ScheduleFormModel struct {
	Interval string
	Start    string
	End      string
}

type Model struct {
	schedule      *schedule.Store
	tracker       *hydration.Tracker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	slotList      slots.Model
	form          *huh.Form
	scheduleForm  *ScheduleFormModel
	config        models.ReminderConfig
	errMsg        string
	quitting      bool
	width         int
	height        int
}

func NewModel(sched *schedule.Store, tracker *hydration.Tracker) Model {
	config, err := sched.Config()
	if err != nil {
		config = schedule.DefaultConfig()
	}

	m := Model{
		schedule: sched,
		tracker:  tracker,
		state:    StateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		slotList: slots.New(config.Slots, tracker.Today(), 0, 0),
		config:   config,
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Enter, m.keys.Clear)
	case StateSchedule:
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Clear}
	case StateSchedule:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshSlots re-reads today's record so the list reflects committed state.
func (m *Model) refreshSlots() {
	m.slotList.SetSlots(m.config.Slots, m.tracker.Today())
}

// newScheduleForm builds the huh form for editing the reminder schedule,
// seeded from the current configuration.
func newScheduleForm(fm *ScheduleFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Interval (hours)").
				Value(&fm.Interval).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("interval must be a number")
					}
					if i < constants.MinIntervalHours || i > constants.MaxIntervalHours {
						return fmt.Errorf("interval must be %d-%d hours", constants.MinIntervalHours, constants.MaxIntervalHours)
					}
					return nil
				}),
			huh.NewInput().
				Title("First reminder (HH:MM)").
				Value(&fm.Start).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.TimeFormat, s); err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Last reminder (HH:MM)").
				Value(&fm.End).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.TimeFormat, s); err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
