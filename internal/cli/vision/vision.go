package vision

import (
	"fmt"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

type VisionCmd struct {
	Show    VisionShowCmd    `cmd:"" help:"Show today's board, or another day's." default:"1"`
	Add     VisionAddCmd     `cmd:"" help:"Pin an item to today's board."`
	Remove  VisionRemoveCmd  `cmd:"" help:"Remove an item from today's board."`
	Reflect VisionReflectCmd `cmd:"" help:"Write today's reflection."`
	Mood    VisionMoodCmd    `cmd:"" help:"Record today's mood."`
	Week    VisionWeekCmd    `cmd:"" help:"Summarize this week's boards and your board streak."`
}

func printBoard(ctx *cli.Context, b models.VisionBoard) {
	ctx.Printf("Vision board for %s\n", b.Date.Format(constants.DateFormat))
	if b.Mood != nil {
		ctx.Printf("  Mood: %s\n", b.Mood.Label())
	}
	if len(b.Items) == 0 {
		ctx.Println("  No items yet. Add one with 'elevate vision add'.")
	}
	for _, it := range b.Items {
		ctx.Printf("  * %s\n", it.Title)
		if it.Description != "" {
			ctx.Printf("      %s\n", it.Description)
		}
	}
	if b.Reflection != "" {
		ctx.Printf("\n  Reflection: %s\n", b.Reflection)
	}
}

type VisionShowCmd struct {
	Date string `help:"Day to show (YYYY-MM-DD)."`
}

func (c *VisionShowCmd) Run(ctx *cli.Context) error {
	if c.Date == "" {
		printBoard(ctx, ctx.Vision.Today())
		return nil
	}
	day, err := utils.ParseDateInLocation(c.Date, ctx.Prefs.Location())
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", c.Date, err)
	}
	b, ok := ctx.Vision.On(day)
	if !ok {
		ctx.Printf("No vision board for %s.\n", c.Date)
		return nil
	}
	printBoard(ctx, b)
	return nil
}

type VisionAddCmd struct {
	Title       string `arg:"" help:"What you want to see in your life."`
	Description string `help:"More detail."`
}

func (c *VisionAddCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Vision.AddItem(c.Title, c.Description)
	if err != nil {
		return err
	}
	ctx.Printf("Pinned %q to today's board. Board streak: %d day(s)\n", item.Title, ctx.Vision.Streak())
	return nil
}

type VisionRemoveCmd struct {
	Item string `arg:"" help:"Item title or ID."`
}

func (c *VisionRemoveCmd) Run(ctx *cli.Context) error {
	item, err := ctx.Vision.RemoveItem(c.Item)
	if err != nil {
		return fmt.Errorf("%w: %q", err, c.Item)
	}
	ctx.Printf("Removed %q from today's board.\n", item.Title)
	return nil
}

type VisionReflectCmd struct {
	Text string `arg:"" help:"Reflection text."`
}

func (c *VisionReflectCmd) Run(ctx *cli.Context) error {
	ctx.Vision.SetReflection(c.Text)
	ctx.Println("Saved today's reflection.")
	return nil
}

type VisionMoodCmd struct {
	Mood string `arg:"" help:"Mood (${moods})."`
}

func (c *VisionMoodCmd) Run(ctx *cli.Context) error {
	m, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}
	ctx.Vision.SetMood(m)
	ctx.Printf("Today's mood: %s\n", m.Label())
	return nil
}

type VisionWeekCmd struct{}

func (c *VisionWeekCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Board streak: %d day(s)\n", ctx.Vision.Streak())
	if m, ok := ctx.Vision.MostUsedMood(); ok {
		ctx.Printf("Most frequent mood: %s\n", m.Label())
	}

	week := ctx.Vision.ThisWeek()
	if len(week) == 0 {
		ctx.Println("No boards this week.")
		return nil
	}
	ctx.Println("\nThis week:")
	for _, b := range week {
		mood := ""
		if b.Mood != nil {
			mood = "  " + b.Mood.Label()
		}
		ctx.Printf("  %s  %d item(s)%s\n", b.Date.Format("Mon 2006-01-02"), len(b.Items), mood)
	}
	return nil
}
