package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/tui"
	"github.com/julianstephens/elevate/internal/utils"
	"github.com/julianstephens/elevate/internal/validation"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Show      HabitShowCmd      `cmd:"" help:"Show details for one habit."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit a habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit and its history."`
	Done      HabitDoneCmd      `cmd:"" help:"Record a completion for today."`
	Undo      HabitUndoCmd      `cmd:"" help:"Remove today's completions."`
	Toggle    HabitToggleCmd    `cmd:"" help:"Pause or resume a habit."`
	Reminder  HabitReminderCmd  `cmd:"" help:"Set or clear a habit's reminder time."`
	Reminders HabitRemindersCmd `cmd:"" help:"List active habits with reminders."`
	Quote     HabitQuoteCmd     `cmd:"" help:"Pick a new motivational quote."`
	Log       HabitLogCmd       `cmd:"" help:"Show habit log (ASCII history)."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `help:"What the habit is about."`
	Category    string `help:"Category (health, mindfulness, productivity, learning, social, creativity, self_care, nutrition)." default:"health"`
	Frequency   string `help:"Frequency (daily, weekly, custom)." default:"daily"`
	Target      int    `help:"Daily target value." default:"1"`
	Unit        string `help:"Unit of the target value." default:"times"`
	Reminder    string `help:"Reminder time in HH:MM format."`
	Interactive bool   `short:"i" help:"Fill in the habit with an interactive form."`
}

func (c *HabitAddCmd) input() (validation.HabitInput, error) {
	if c.Interactive {
		fm := tui.NewHabitFormModel()
		fm.Name = c.Name
		if err := tui.NewHabitForm(fm).Run(); err != nil {
			return validation.HabitInput{}, err
		}
		return fm.Input()
	}
	return validation.HabitInput{
		Name:         c.Name,
		Description:  c.Description,
		Category:     c.Category,
		Frequency:    c.Frequency,
		TargetValue:  c.Target,
		Unit:         c.Unit,
		ReminderTime: c.Reminder,
	}, nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	in, err := c.input()
	if err != nil {
		return err
	}
	habit, err := in.Habit()
	if err != nil {
		return fmt.Errorf("invalid habit: %w", err)
	}

	if _, ok := ctx.Registry.FindByName(habit.Name); ok {
		return fmt.Errorf("habit with name %q already exists", habit.Name)
	}

	added := ctx.Registry.Add(habit)
	ctx.Printf("Added habit: %s (%s, %d %s %s)\n",
		added.Name, added.Category.Label(), added.TargetValue, added.Unit, strings.ToLower(added.Frequency.Description()))
	if added.MotivationalQuote != nil {
		ctx.Printf("  %q\n", *added.MotivationalQuote)
	}
	return nil
}

type HabitListCmd struct {
	Category  string `help:"Only show habits in this category."`
	Frequency string `help:"Only show habits with this frequency."`
	Search    string `help:"Match name, description or category."`
	Inactive  bool   `help:"Include paused habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Registry.Search(c.Search)

	if c.Category != "" {
		cat, err := models.ParseHabitCategory(c.Category)
		if err != nil {
			return err
		}
		habits = keep(habits, func(h models.Habit) bool { return h.Category == cat })
	}
	if c.Frequency != "" {
		freq, err := models.ParseFrequency(c.Frequency)
		if err != nil {
			return err
		}
		habits = keep(habits, func(h models.Habit) bool { return h.Frequency == freq })
	}
	if !c.Inactive {
		habits = keep(habits, func(h models.Habit) bool { return h.IsActive })
	}

	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	now := ctx.Registry.Now()
	for _, h := range habits {
		status := "[ ]"
		if h.IsCompletedToday(now) {
			status = "[x]"
		}
		suffix := ""
		if !h.IsActive {
			suffix = " [PAUSED]"
		}
		ctx.Printf("%s %-24s %3d day streak  %s%s\n", status, h.Name, h.Streak, h.Category.Label(), suffix)
	}
	return nil
}

func keep(habits []models.Habit, fn func(models.Habit) bool) []models.Habit {
	out := habits[:0]
	for _, h := range habits {
		if fn(h) {
			out = append(out, h)
		}
	}
	return out
}

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}
	now := ctx.Registry.Now()

	ctx.Printf("%s\n", h.Name)
	if h.Description != "" {
		ctx.Printf("  %s\n", h.Description)
	}
	ctx.Printf("  Category:        %s\n", h.Category.Label())
	ctx.Printf("  Frequency:       %s\n", h.Frequency.Description())
	ctx.Printf("  Target:          %d %s\n", h.TargetValue, h.Unit)
	ctx.Printf("  Active:          %v\n", h.IsActive)
	if h.ReminderTime != nil {
		ctx.Printf("  Reminder:        %s\n", *h.ReminderTime)
	}
	ctx.Printf("  Created:         %s\n", humanize.Time(h.CreatedAt))
	ctx.Printf("  Streak:          %d (longest %d)\n", h.Streak, h.LongestStreak)
	ctx.Printf("  Today:           %d/%d %s\n", h.TotalValueOn(now), h.TargetValue, h.Unit)
	ctx.Printf("  Completions:     %s\n", humanize.Comma(int64(len(h.Completions))))
	if n := len(h.Completions); n > 0 {
		latest := h.Completions[0].Date
		for _, comp := range h.Completions[1:] {
			if comp.Date.After(latest) {
				latest = comp.Date
			}
		}
		ctx.Printf("  Last completed:  %s\n", humanize.Time(latest))
	}

	ctx.Println("\n  Completion rate:")
	for _, p := range models.AllTimePeriods() {
		rate, err := ctx.Registry.CompletionRate(h.ID, p)
		if err != nil {
			return err
		}
		ctx.Printf("    this %-6s %s\n", p, cli.FormatRate(rate))
	}

	if h.MotivationalQuote != nil {
		ctx.Printf("\n  %q\n", *h.MotivationalQuote)
	}
	return nil
}

type HabitEditCmd struct {
	Name        string  `arg:"" help:"Habit name or ID."`
	Rename      *string `help:"New name."`
	Description *string `help:"New description."`
	Category    *string `help:"New category."`
	Frequency   *string `help:"New frequency."`
	Target      *int    `help:"New daily target."`
	Unit        *string `help:"New unit."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}

	in := validation.HabitInput{
		Name:        h.Name,
		Description: h.Description,
		Category:    string(h.Category),
		Frequency:   string(h.Frequency),
		TargetValue: h.TargetValue,
		Unit:        h.Unit,
	}
	if h.ReminderTime != nil {
		in.ReminderTime = *h.ReminderTime
	}

	updated := false
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
			updated = true
		}
	}
	set(&in.Name, c.Rename)
	set(&in.Description, c.Description)
	set(&in.Category, c.Category)
	set(&in.Frequency, c.Frequency)
	set(&in.Unit, c.Unit)
	if c.Target != nil {
		in.TargetValue = *c.Target
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified.")
		return nil
	}

	edited, err := in.Habit()
	if err != nil {
		return fmt.Errorf("invalid habit: %w", err)
	}
	if c.Rename != nil {
		if other, ok := ctx.Registry.FindByName(edited.Name); ok && other.ID != h.ID {
			return fmt.Errorf("habit with name %q already exists", edited.Name)
		}
	}

	h.Name = edited.Name
	h.Description = edited.Description
	h.Category = edited.Category
	h.Frequency = edited.Frequency
	h.TargetValue = edited.TargetValue
	h.Unit = edited.Unit
	ctx.Registry.Update(h)

	ctx.Printf("Updated habit: %s\n", h.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or ID to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}
	ctx.Registry.Delete(h.ID)
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitDoneCmd struct {
	Name  string `arg:"" help:"Habit name or ID."`
	Value int    `help:"Amount achieved." default:"1"`
	Note  string `help:"Optional note for this completion."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}

	in := validation.CompletionInput{Value: c.Value, Note: c.Note}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid completion: %w", err)
	}

	var note *string
	if strings.TrimSpace(c.Note) != "" {
		n := strings.TrimSpace(c.Note)
		note = &n
	}

	updated, err := ctx.Registry.Complete(h.ID, in.Value, note)
	if err != nil {
		return err
	}

	now := ctx.Registry.Now()
	ctx.Printf("Completed %s: %d/%d %s today\n", updated.Name, updated.TotalValueOn(now), updated.TargetValue, updated.Unit)
	ctx.Printf("Streak: %d day(s) (longest %d)\n", updated.Streak, updated.LongestStreak)
	return nil
}

type HabitUndoCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitUndoCmd) Run(ctx *cli.Context) error {
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}
	if !h.IsCompletedToday(ctx.Registry.Now()) {
		ctx.Printf("%s has no completions today.\n", h.Name)
		return nil
	}

	updated, err := ctx.Registry.UndoCompletion(h.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Removed today's completions for %s. Streak: %d\n", updated.Name, updated.Streak)
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}
	updated, err := ctx.Registry.ToggleActive(h.ID)
	if err != nil {
		return err
	}
	if updated.IsActive {
		ctx.Printf("Resumed habit: %s\n", updated.Name)
	} else {
		ctx.Printf("Paused habit: %s\n", updated.Name)
	}
	return nil
}

type HabitReminderCmd struct {
	Name  string `arg:"" help:"Habit name or ID."`
	At    string `help:"Reminder time in HH:MM format." xor:"reminder"`
	Clear bool   `help:"Remove the reminder." xor:"reminder"`
}

func (c *HabitReminderCmd) Run(ctx *cli.Context) error {
	if c.At == "" && !c.Clear {
		return errors.New("specify --at HH:MM or --clear")
	}
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}

	var at *string
	if !c.Clear {
		if !utils.ValidateTimeFormat(c.At) {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM)", c.At)
		}
		at = &c.At
	}

	updated, err := ctx.Registry.SetReminder(h.ID, at)
	if err != nil {
		return err
	}
	if updated.ReminderTime == nil {
		ctx.Printf("Cleared reminder for %s\n", updated.Name)
	} else {
		ctx.Printf("Reminder for %s set to %s\n", updated.Name, *updated.ReminderTime)
	}
	return nil
}

type HabitRemindersCmd struct{}

func (c *HabitRemindersCmd) Run(ctx *cli.Context) error {
	habits := ctx.Registry.WithReminders()
	if len(habits) == 0 {
		ctx.Println("No reminders set.")
		return nil
	}
	for _, h := range habits {
		ctx.Printf("%s  %s\n", *h.ReminderTime, h.Name)
	}
	return nil
}

type HabitQuoteCmd struct {
	Name string `arg:"" optional:"" help:"Habit to assign a new quote to. Without it, print a random quote."`
}

func (c *HabitQuoteCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		ctx.Println(ctx.Registry.RandomQuote())
		return nil
	}
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}
	updated, err := ctx.Registry.RefreshQuote(h.ID)
	if err != nil {
		return err
	}
	if updated.MotivationalQuote == nil {
		ctx.Println("Motivational quotes are turned off.")
		return nil
	}
	ctx.Printf("%s: %q\n", updated.Name, *updated.MotivationalQuote)
	return nil
}
