// Package tui is the interactive dashboard. It reads through the registry
// and projector and re-queries after every mutation.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/tracker"
	"github.com/julianstephens/elevate/internal/tui/components/habits"
	"github.com/julianstephens/elevate/internal/tui/components/stats"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateStats
	StateAddHabit
	StateConfirmDelete
)

var tabTitles = []string{"Habits", "Stats"}

type Model struct {
	registry  *tracker.Registry
	projector *analytics.Projector

	state       SessionState
	keys        KeyMap
	help        help.Model
	habitsModel habits.Model
	statsModel  stats.Model

	form      *huh.Form
	habitForm *HabitFormModel
	formError string

	deleteID   string
	deleteName string

	status   string
	err      string
	quitting bool
	width    int
	height   int
}

func NewModel(registry *tracker.Registry, projector *analytics.Projector) Model {
	m := Model{
		registry:  registry,
		projector: projector,
		state:     StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	m.habitsModel = habits.New(registry.Habits(), m.today, 0, 0)
	m.statsModel = stats.New(0)
	m.refresh()
	return m
}

func (m Model) State() SessionState {
	return m.state
}

// today reports whether h is done today and the value recorded so far.
func (m Model) today(h models.Habit) (bool, int) {
	now := m.registry.Now()
	return h.IsCompletedToday(now), h.TotalValueOn(now)
}

// refresh re-reads everything the views show.
func (m *Model) refresh() {
	m.habitsModel.SetHabits(m.registry.Habits(), m.today)

	s := stats.Summary{
		Completed:  m.registry.CompletedTodayCount(),
		Active:     m.registry.ActiveCount(),
		TodayRate:  m.registry.TodayCompletionRate(),
		BestStreak: m.registry.CurrentBestStreak(),
		Longest:    m.registry.LongestStreak(),
		Attention:  m.registry.HabitsNeedingAttention(),
		Top:        m.registry.TopHabits(constants.DefaultTopHabits),
		Categories: m.projector.CategoryProgress(),
	}
	if h, ok := m.habitsModel.Selected(); ok {
		s.Focus = &h
		s.Week = m.projector.WeeklySeries(h)
		if h.MotivationalQuote != nil {
			s.Quote = *h.MotivationalQuote
		}
	}
	m.statsModel.SetSummary(s)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	hk := habits.DefaultKeyMap()
	actions := []key.Binding{hk.Add, hk.Complete, hk.Undo, hk.Toggle, hk.Delete, hk.Quote}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
