package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
	"github.com/julianstephens/elevate/internal/validation"
)

// HabitFormModel backs the add-habit form. Numbers are edited as text.
type HabitFormModel struct {
	Name        string
	Description string
	Category    string
	Frequency   string
	Target      string
	Unit        string
	Reminder    string
}

// NewHabitFormModel pre-fills the form with the usual defaults.
func NewHabitFormModel() *HabitFormModel {
	in := validation.DefaultHabitInput()
	return &HabitFormModel{
		Category:  in.Category,
		Frequency: in.Frequency,
		Target:    strconv.Itoa(in.TargetValue),
		Unit:      in.Unit,
	}
}

// Input converts the form into a validation.HabitInput.
func (fm *HabitFormModel) Input() (validation.HabitInput, error) {
	target, err := strconv.Atoi(strings.TrimSpace(fm.Target))
	if err != nil {
		return validation.HabitInput{}, errors.New("target must be a whole number")
	}
	return validation.HabitInput{
		Name:         fm.Name,
		Description:  fm.Description,
		Category:     fm.Category,
		Frequency:    fm.Frequency,
		TargetValue:  target,
		Unit:         fm.Unit,
		ReminderTime: strings.TrimSpace(fm.Reminder),
	}, nil
}

func categoryOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, c := range models.AllHabitCategories() {
		opts = append(opts, huh.NewOption(c.Label(), string(c)))
	}
	return opts
}

func frequencyOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, f := range []models.HabitFrequency{models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyCustom} {
		opts = append(opts, huh.NewOption(f.Description(), string(f)))
	}
	return opts
}

// NewHabitForm creates the form for adding a habit.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&fm.Category),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(frequencyOptions()...).
				Value(&fm.Frequency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Daily target").
				Value(&fm.Target).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return errors.New("target must be a positive whole number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Placeholder("times").
				Value(&fm.Unit),
			huh.NewInput().
				Title("Reminder (HH:MM)").
				Description("Leave empty for no reminder").
				Value(&fm.Reminder).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s != "" && !utils.ValidateTimeFormat(s) {
						return errors.New("reminder must be HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
