package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.statsModel.SetWidth(msg.Width - h)
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == StateHabits {
				m.state = StateStats
			} else {
				m.state = StateHabits
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setResult(status string, err error) {
	if err != nil {
		m.err = err.Error()
		m.status = ""
		return
	}
	m.err = ""
	m.status = status
	m.refresh()
}

// handleHabitMessages applies the actions emitted by the habits list.
func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = NewHabitFormModel()
		m.formError = ""
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return true, m.form.Init()

	case habits.CompleteHabitMsg:
		updated, err := m.registry.Complete(msg.ID, constants.DefaultCompletionValue, nil)
		m.setResult(fmt.Sprintf("Completed %s · streak %d", updated.Name, updated.Streak), err)
		return true, nil

	case habits.UndoHabitMsg:
		updated, err := m.registry.UndoCompletion(msg.ID)
		m.setResult(fmt.Sprintf("Undid today's %s", updated.Name), err)
		return true, nil

	case habits.ToggleHabitMsg:
		updated, err := m.registry.ToggleActive(msg.ID)
		verb := "Paused"
		if updated.IsActive {
			verb = "Resumed"
		}
		m.setResult(fmt.Sprintf("%s %s", verb, updated.Name), err)
		return true, nil

	case habits.RefreshQuoteMsg:
		updated, err := m.registry.RefreshQuote(msg.ID)
		m.setResult(fmt.Sprintf("New quote for %s", updated.Name), err)
		return true, nil

	case habits.DeleteHabitMsg:
		m.deleteID = msg.ID
		m.deleteName = msg.Name
		m.state = StateConfirmDelete
		return true, nil
	}
	return false, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.registry.Delete(m.deleteID)
		m.setResult("Deleted "+m.deleteName, nil)
		m.deleteID, m.deleteName = "", ""
		m.state = StateHabits
	case key.Matches(keyMsg, m.keys.No):
		m.deleteID, m.deleteName = "", ""
		m.state = StateHabits
	}
	return m, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.addFromForm(); err != nil {
			// Keep the entered values and let the user fix them.
			m.formError = err.Error()
			m.form = NewHabitForm(m.habitForm)
			return m, m.form.Init()
		}
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, cmd
}

func (m *Model) addFromForm() error {
	in, err := m.habitForm.Input()
	if err != nil {
		return err
	}
	h, err := in.Habit()
	if err != nil {
		return err
	}
	if _, exists := m.registry.FindByName(h.Name); exists {
		return fmt.Errorf("habit with name %q already exists", h.Name)
	}
	added := m.registry.Add(h)
	m.formError = ""
	m.setResult("Added "+added.Name, nil)
	return nil
}
