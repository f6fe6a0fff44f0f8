package stats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/tui/components/chart"
	"github.com/julianstephens/elevate/internal/utils"
)

type StatsCmd struct {
	Top    int    `help:"Number of top habits to show." default:"5"`
	Period string `help:"Completion-rate period (week, month, year)." default:"week"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	period, err := models.ParseTimePeriod(c.Period)
	if err != nil {
		return err
	}
	reg := ctx.Registry

	ctx.Println("Today")
	ctx.Printf("  Completed:        %d/%d (%s)\n", reg.CompletedTodayCount(), reg.ActiveCount(), cli.FormatRate(reg.TodayCompletionRate()))
	ctx.Printf("  Best streak:      %d\n", reg.CurrentBestStreak())
	ctx.Printf("  Longest streak:   %d\n", reg.LongestStreak())

	if attention := reg.HabitsNeedingAttention(); len(attention) > 0 {
		ctx.Println("\nNeeds attention")
		for _, h := range attention {
			ctx.Printf("  %-24s %s on the line\n", h.Name, english.Plural(h.Streak, "day", "days"))
		}
	}

	top := reg.TopHabits(c.Top)
	if len(top) > 0 {
		ctx.Printf("\nTop habits (this %s)\n", period)
		for i, h := range top {
			rate, err := reg.CompletionRate(h.ID, period)
			if err != nil {
				return err
			}
			ctx.Printf("  %s %-24s streak %-4d rate %s\n", humanize.Ordinal(i+1), h.Name, h.Streak, cli.FormatRate(rate))
		}
	}

	progress := ctx.Projector.CategoryProgress()
	if len(progress) > 0 {
		ctx.Println("\nCategories")
		for _, p := range progress {
			ctx.Printf("  %-18s %s, %s, avg streak %d\n",
				p.Category.Label(),
				english.Plural(p.HabitCount, "habit", "habits"),
				english.Plural(p.TotalCompletions, "completion", "completions"),
				p.AverageStreak)
		}
	}
	return nil
}

type ChartCmd struct {
	Range string `arg:"" enum:"week,month" help:"Chart range: week or month."`
	Name  string `arg:"" help:"Habit name or ID."`
	Width int    `help:"Bar width in cells." default:"30"`
}

func (c *ChartCmd) Run(ctx *cli.Context) error {
	if c.Width < 1 {
		return errors.New("width must be at least 1")
	}
	h, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}

	var points []analytics.ChartPoint
	switch c.Range {
	case "week":
		points = ctx.Projector.WeeklySeries(h)
	case "month":
		points = ctx.Projector.MonthlySeries(h)
	default:
		return fmt.Errorf("unknown range %q", c.Range)
	}

	title := fmt.Sprintf("%s: this %s (target %d %s/day)", h.Name, c.Range, h.TargetValue, h.Unit)
	ctx.Println(title)
	ctx.Println(strings.Repeat("=", len([]rune(title))))
	ctx.Println(chart.Bars(points, c.Width))
	ctx.Printf("\nAverage: %s  %s\n", cli.FormatRate(analytics.Average(points)), chart.Sparkline(points))
	if c.Range == "month" && utils.DaysInMonth(ctx.Registry.Now()) > len(points) {
		ctx.Printf("(showing the first %d days)\n", len(points))
	}
	return nil
}
