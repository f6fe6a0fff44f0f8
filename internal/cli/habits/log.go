package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

const logNameWidth = 20

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
	End   string `help:"Last day shown (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		c.Days = 1
	}

	var selected []models.Habit
	if c.Habit != "" {
		h, err := ctx.FindHabit(c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{h}
	} else {
		selected = keep(ctx.Registry.Habits(), func(h models.Habit) bool { return h.IsActive })
	}

	if len(selected) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	now := ctx.Registry.Now()
	end := utils.StartOfDay(now)
	if c.End != "" {
		var err error
		if end, err = utils.ParseDateInLocation(c.End, now.Location()); err != nil {
			return fmt.Errorf("invalid --end date %q (expected YYYY-MM-DD)", c.End)
		}
	}
	start := utils.AddDays(end, -(c.Days - 1))

	ctx.Printf("Habit log (last %d days):\n\n", c.Days)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", logNameWidth))
	for i := 0; i < c.Days; i++ {
		b.WriteString(" " + utils.AddDays(start, i).Format("01/02"))
	}
	ctx.Println(b.String())
	ctx.Println(strings.Repeat("-", logNameWidth+6*c.Days))

	for _, h := range selected {
		b.Reset()
		b.WriteString(padName(h.Name, logNameWidth))
		for i := 0; i < c.Days; i++ {
			if len(h.CompletionsOn(utils.AddDays(start, i))) > 0 {
				b.WriteString("   x  ")
			} else {
				b.WriteString("   .  ")
			}
		}
		ctx.Println(strings.TrimRight(b.String(), " "))
	}
	return nil
}

// padName truncates or pads name to exactly width runes.
func padName(name string, width int) string {
	r := []rune(name)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return name + strings.Repeat(" ", width-len(r))
}
