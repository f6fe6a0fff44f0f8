package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/elevate/internal/models"
)

type AddHabitMsg struct{}

type CompleteHabitMsg struct {
	ID string
}

type UndoHabitMsg struct {
	ID string
}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID   string
	Name string
}

type RefreshQuoteMsg struct {
	ID string
}

type Item struct {
	Habit          models.Habit
	CompletedToday bool
	TodayValue     int
}

func (i Item) Title() string {
	switch {
	case !i.Habit.IsActive:
		return "⏸ " + i.Habit.Name
	case i.CompletedToday:
		return "✓ " + i.Habit.Name
	default:
		return "○ " + i.Habit.Name
	}
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d/%d %s · 🔥 %d · %s",
		i.TodayValue, i.Habit.TargetValue, i.Habit.Unit, i.Habit.Streak, i.Habit.Category.Label())
	if !i.Habit.IsActive {
		desc += " · paused"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add      key.Binding
	Complete key.Binding
	Undo     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Quote    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Complete: key.NewBinding(
			key.WithKeys(" ", "c"),
			key.WithHelp("space", "complete"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo today"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause/resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Quote: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new quote"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func items(habits []models.Habit, today func(models.Habit) (bool, int)) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		done, value := today(h)
		out[i] = Item{Habit: h, CompletedToday: done, TodayValue: value}
	}
	return out
}

// New builds the list. today reports whether a habit is done today and the
// value recorded so far.
func New(habits []models.Habit, today func(models.Habit) (bool, int), width, height int) Model {
	l := list.New(items(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	bindings := func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Undo, keys.Toggle, keys.Delete, keys.Quote}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	return Model{list: l, keys: keys}
}

func (m *Model) SetHabits(habits []models.Habit, today func(models.Habit) (bool, int)) {
	m.list.SetItems(items(habits, today))
}

// Selected returns the highlighted habit.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return i.Habit, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
		if i, ok := m.list.SelectedItem().(Item); ok {
			id := i.Habit.ID
			switch {
			case key.Matches(msg, m.keys.Complete):
				if i.Habit.IsActive {
					return m, func() tea.Msg { return CompleteHabitMsg{ID: id} }
				}
			case key.Matches(msg, m.keys.Undo):
				if i.CompletedToday {
					return m, func() tea.Msg { return UndoHabitMsg{ID: id} }
				}
			case key.Matches(msg, m.keys.Toggle):
				return m, func() tea.Msg { return ToggleHabitMsg{ID: id} }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteHabitMsg{ID: id, Name: i.Habit.Name} }
			case key.Matches(msg, m.keys.Quote):
				return m, func() tea.Msg { return RefreshQuoteMsg{ID: id} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
