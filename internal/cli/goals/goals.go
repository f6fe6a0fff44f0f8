package goals

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/validation"
)

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Add a goal."`
	List   GoalListCmd   `cmd:"" help:"List goals."`
	Show   GoalShowCmd   `cmd:"" help:"Show one goal."`
	Edit   GoalEditCmd   `cmd:"" help:"Edit a goal."`
	Done   GoalDoneCmd   `cmd:"" help:"Mark a goal completed, or reopen it."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a goal."`
	Stats  GoalStatsCmd  `cmd:"" help:"Show goal progress, overdue and upcoming goals."`
}

func findGoal(ctx *cli.Context, name string) (models.Goal, error) {
	g, ok := ctx.Goals.Find(name)
	if !ok {
		return models.Goal{}, fmt.Errorf("goal %q not found", name)
	}
	return g, nil
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Description string `help:"What achieving it looks like."`
	Category    string `help:"Category (${goal_categories})." default:"personal"`
	Priority    string `help:"Priority (low, medium, high)." default:"medium"`
	Target      string `help:"Target date (YYYY-MM-DD)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	in := validation.GoalInput{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    c.Priority,
		TargetDate:  c.Target,
	}
	g, err := in.Goal(ctx.Prefs.Location())
	if err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}
	if _, ok := ctx.Goals.Find(g.Title); ok {
		return fmt.Errorf("goal with title %q already exists", g.Title)
	}

	added := ctx.Goals.Add(g)
	ctx.Printf("Added goal: %s (%s, %s priority)\n", added.Title, added.Category.Label(), added.Priority.Label())
	return nil
}

type GoalListCmd struct {
	Category string `help:"Only show goals in this category."`
	Priority string `help:"Only show open goals with this priority."`
	Search   string `help:"Match title, description or reflection notes."`
	Open     bool   `help:"Hide completed goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals := ctx.Goals.Search(c.Search)
	if c.Category != "" {
		cat, err := models.ParseGoalCategory(c.Category)
		if err != nil {
			return err
		}
		goals = keep(goals, func(g models.Goal) bool { return g.Category == cat })
	}
	if c.Priority != "" {
		pr, err := models.ParseGoalPriority(c.Priority)
		if err != nil {
			return err
		}
		goals = keep(goals, func(g models.Goal) bool { return !g.IsCompleted && g.Priority == pr })
	}
	if c.Open {
		goals = keep(goals, func(g models.Goal) bool { return !g.IsCompleted })
	}

	if len(goals) == 0 {
		ctx.Println("No goals found.")
		return nil
	}
	now := ctx.Now()
	for _, g := range goals {
		status := "[ ]"
		if g.IsCompleted {
			status = "[x]"
		}
		ctx.Printf("%s %-28s %-6s  %s%s\n", status, g.Title, g.Priority.Label(), g.Category.Label(), dueLabel(g, now))
	}
	return nil
}

func keep(goals []models.Goal, fn func(models.Goal) bool) []models.Goal {
	out := goals[:0]
	for _, g := range goals {
		if fn(g) {
			out = append(out, g)
		}
	}
	return out
}

// dueLabel describes the target date relative to now.
func dueLabel(g models.Goal, now time.Time) string {
	days, ok := g.DaysUntilTarget(now)
	switch {
	case !ok:
		return ""
	case g.IsCompleted:
		return ""
	case days < 0:
		return fmt.Sprintf("  (overdue by %d day(s))", -days)
	case days == 0:
		return "  (due today)"
	default:
		return fmt.Sprintf("  (due in %d day(s))", days)
	}
}

type GoalShowCmd struct {
	Title string `arg:"" help:"Goal title or ID."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	g, err := findGoal(ctx, c.Title)
	if err != nil {
		return err
	}
	now := ctx.Now()

	ctx.Printf("%s\n", g.Title)
	if g.Description != "" {
		ctx.Printf("  %s\n", g.Description)
	}
	ctx.Printf("  Category:   %s\n", g.Category.Label())
	ctx.Printf("  Priority:   %s\n", g.Priority.Label())
	if g.TargetDate != nil {
		ctx.Printf("  Target:     %s%s\n", g.TargetDate.Format(constants.DateFormat), dueLabel(g, now))
	}
	ctx.Printf("  Created:    %s\n", humanize.Time(g.CreatedAt))
	if g.IsCompleted && g.CompletedAt != nil {
		ctx.Printf("  Completed:  %s\n", humanize.Time(*g.CompletedAt))
	} else {
		ctx.Println("  Completed:  no")
	}
	if g.ReflectionNotes != "" {
		ctx.Printf("\n  Reflection: %s\n", g.ReflectionNotes)
	}
	return nil
}

type GoalEditCmd struct {
	Title       string  `arg:"" help:"Goal title or ID."`
	Rename      *string `help:"New title."`
	Description *string `help:"New description."`
	Category    *string `help:"New category."`
	Priority    *string `help:"New priority."`
	Target      *string `help:"New target date (YYYY-MM-DD); empty clears it."`
	Reflection  *string `help:"Reflection notes."`
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	g, err := findGoal(ctx, c.Title)
	if err != nil {
		return err
	}

	in := validation.GoalInput{
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		Priority:    string(g.Priority),
		Reflection:  g.ReflectionNotes,
	}
	if g.TargetDate != nil {
		in.TargetDate = g.TargetDate.In(ctx.Prefs.Location()).Format(constants.DateFormat)
	}
	changed := false
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}
	set(&in.Title, c.Rename)
	set(&in.Description, c.Description)
	set(&in.Category, c.Category)
	set(&in.Priority, c.Priority)
	set(&in.TargetDate, c.Target)
	set(&in.Reflection, c.Reflection)
	if !changed {
		ctx.Println("No changes specified.")
		return nil
	}

	edited, err := in.Goal(ctx.Prefs.Location())
	if err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}
	if other, ok := ctx.Goals.Find(edited.Title); ok && other.ID != g.ID {
		return fmt.Errorf("goal with title %q already exists", edited.Title)
	}

	g.Title = edited.Title
	g.Description = edited.Description
	g.Category = edited.Category
	g.Priority = edited.Priority
	g.TargetDate = edited.TargetDate
	g.ReflectionNotes = edited.ReflectionNotes
	ctx.Goals.Update(g)
	ctx.Printf("Updated goal: %s\n", g.Title)
	return nil
}

type GoalDoneCmd struct {
	Title string `arg:"" help:"Goal title or ID."`
}

func (c *GoalDoneCmd) Run(ctx *cli.Context) error {
	g, err := findGoal(ctx, c.Title)
	if err != nil {
		return err
	}
	updated, err := ctx.Goals.ToggleCompletion(g.ID)
	if err != nil {
		return err
	}
	if updated.IsCompleted {
		ctx.Printf("Completed goal: %s\n", updated.Title)
	} else {
		ctx.Printf("Reopened goal: %s\n", updated.Title)
	}
	return nil
}

type GoalDeleteCmd struct {
	Title string `arg:"" help:"Goal title or ID."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	g, err := findGoal(ctx, c.Title)
	if err != nil {
		return err
	}
	ctx.Goals.Delete(g.ID)
	ctx.Printf("Deleted goal: %s\n", g.Title)
	return nil
}

type GoalStatsCmd struct {
	Days int `help:"Window for upcoming goals, in days." default:"7"`
}

func (c *GoalStatsCmd) Run(ctx *cli.Context) error {
	total := len(ctx.Goals.Goals())
	if total == 0 {
		ctx.Println("No goals yet. Add one with 'elevate goal add'.")
		return nil
	}
	now := ctx.Now()

	ctx.Printf("Goals: %d total, %d completed, %d open (%s done)\n",
		total, ctx.Goals.CompletedCount(), ctx.Goals.ActiveCount(), cli.FormatRate(ctx.Goals.CompletionRate()))

	if overdue := ctx.Goals.Overdue(); len(overdue) > 0 {
		ctx.Println("\nOverdue:")
		for _, g := range overdue {
			ctx.Printf("  %s%s\n", g.Title, dueLabel(g, now))
		}
	}
	if upcoming := ctx.Goals.Upcoming(c.Days); len(upcoming) > 0 {
		ctx.Printf("\nDue in the next %d day(s):\n", c.Days)
		for _, g := range upcoming {
			ctx.Printf("  %s  %s\n", g.TargetDate.Format(constants.DateFormat), g.Title)
		}
	}
	if high := ctx.Goals.ByPriority(models.PriorityHigh); len(high) > 0 {
		ctx.Println("\nHigh priority:")
		for _, g := range high {
			ctx.Printf("  %s\n", g.Title)
		}
	}
	if recent := ctx.Goals.RecentlyCompleted(constants.DefaultRecentLimit); len(recent) > 0 {
		ctx.Println("\nRecently completed:")
		for _, g := range recent {
			ctx.Printf("  %s  (%s)\n", g.Title, humanize.Time(*g.CompletedAt))
		}
	}

	ctx.Println("\nBy category:")
	for _, cc := range ctx.Goals.CountByCategory() {
		ctx.Printf("  %-28s %d/%d\n", cc.Category.Label(), cc.Done, cc.Total)
	}
	return nil
}
