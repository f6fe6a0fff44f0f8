package tui

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/elevate/internal/models"
)

func TestHabitFormModelDefaults(t *testing.T) {
	fm := NewHabitFormModel()
	assert.Equal(t, string(models.CategoryHealth), fm.Category)
	assert.Equal(t, string(models.FrequencyDaily), fm.Frequency)
	assert.Equal(t, "1", fm.Target)
	assert.Equal(t, "times", fm.Unit)
}

func TestHabitFormModelInput(t *testing.T) {
	fm := NewHabitFormModel()
	fm.Name = "Drink Water"
	fm.Target = " 8 "
	fm.Unit = "glasses"
	fm.Reminder = "07:30"

	in, err := fm.Input()
	require.NoError(t, err)
	assert.Equal(t, 8, in.TargetValue)

	h, err := in.Habit()
	require.NoError(t, err)
	require.NotNil(t, h.ReminderTime)
	assert.Equal(t, "07:30", *h.ReminderTime)

	fm.Target = "eight"
	_, err = fm.Input()
	assert.Error(t, err)
}

func TestNewHabitFormBuilds(t *testing.T) {
	form := NewHabitForm(NewHabitFormModel())
	require.NotNil(t, form)
	assert.Equal(t, huh.StateNormal, form.State)
}
