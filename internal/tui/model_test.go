package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/quotes"
	"github.com/julianstephens/elevate/internal/tracker"
	"github.com/julianstephens/elevate/internal/tui/components/habits"
)

type memStore struct {
	habits []models.Habit
}

func (s *memStore) LoadHabits(string) ([]models.Habit, error) { return s.habits, nil }

func (s *memStore) SaveHabits(_ string, habits []models.Habit) error {
	s.habits = habits
	return nil
}

func newTestModel(t *testing.T) (Model, *tracker.Registry) {
	t.Helper()
	now := time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	reg := tracker.New(&memStore{}, tracker.WithClock(clock), tracker.WithQuotes(quotes.Fixed("Onward")))
	reg.Load()
	reg.Add(models.Habit{Name: "Read", Category: models.CategoryLearning, TargetValue: 20, Unit: "pages", IsActive: true})
	proj := analytics.New(reg, analytics.WithClock(clock))
	return NewModel(reg, proj), reg
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCompleteAndUndo(t *testing.T) {
	m, reg := newTestModel(t)
	h, _ := reg.FindByName("Read")

	m = update(t, m, habits.CompleteHabitMsg{ID: h.ID})
	got, _ := reg.Get(h.ID)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 1, got.TotalValueOn(reg.Now()))
	assert.Contains(t, m.View(), "Completed Read")

	m = update(t, m, habits.UndoHabitMsg{ID: h.ID})
	got, _ = reg.Get(h.ID)
	assert.Equal(t, 0, got.Streak)
	assert.Empty(t, got.Completions)
}

func TestToggleAndQuote(t *testing.T) {
	m, reg := newTestModel(t)
	h, _ := reg.FindByName("Read")

	m = update(t, m, habits.ToggleHabitMsg{ID: h.ID})
	got, _ := reg.Get(h.ID)
	assert.False(t, got.IsActive)

	_ = update(t, m, habits.RefreshQuoteMsg{ID: h.ID})
	got, _ = reg.Get(h.ID)
	require.NotNil(t, got.MotivationalQuote)
	assert.Equal(t, "Onward", *got.MotivationalQuote)
}

func TestUnknownHabitShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, habits.ToggleHabitMsg{ID: "missing"})
	assert.Contains(t, m.View(), "habit not found")
}

func TestDeleteConfirmation(t *testing.T) {
	m, reg := newTestModel(t)
	h, _ := reg.FindByName("Read")

	m = update(t, m, habits.DeleteHabitMsg{ID: h.ID, Name: h.Name})
	assert.Equal(t, StateConfirmDelete, m.State())
	assert.Contains(t, m.View(), "Delete Read")

	m = update(t, m, runes("n"))
	assert.Equal(t, StateHabits, m.State())
	assert.Len(t, reg.Habits(), 1)

	m = update(t, m, habits.DeleteHabitMsg{ID: h.ID, Name: h.Name})
	m = update(t, m, runes("y"))
	assert.Equal(t, StateHabits, m.State())
	assert.Empty(t, reg.Habits())
}

func TestTabSwitchesViews(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, StateStats, m.State())
	assert.Contains(t, m.View(), "Top streaks")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, StateHabits, m.State())
}

func TestAddHabitFlow(t *testing.T) {
	m, reg := newTestModel(t)

	m = update(t, m, habits.AddHabitMsg{})
	assert.Equal(t, StateAddHabit, m.State())
	require.NotNil(t, m.habitForm)

	m.habitForm.Name = "Stretch"
	m.habitForm.Target = "10"
	m.habitForm.Unit = "minutes"
	require.NoError(t, m.addFromForm())
	added, ok := reg.FindByName("Stretch")
	require.True(t, ok)
	assert.Equal(t, 10, added.TargetValue)
	assert.True(t, added.IsActive)

	m.habitForm.Name = "read"
	assert.Error(t, m.addFromForm(), "duplicate names are rejected")

	m.habitForm.Name = "Other"
	m.habitForm.Target = "lots"
	assert.Error(t, m.addFromForm())
}

func TestEscLeavesForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, habits.AddHabitMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateHabits, m.State())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
