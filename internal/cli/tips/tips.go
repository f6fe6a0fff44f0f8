package tips

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/tips"
	"github.com/julianstephens/elevate/internal/validation"
)

type TipCmd struct {
	List      TipListCmd      `cmd:"" help:"List tips."`
	Show      TipShowCmd      `cmd:"" help:"Read a tip."`
	Read      TipReadCmd      `cmd:"" help:"Mark a tip as read."`
	Favorite  TipFavoriteCmd  `cmd:"" help:"Toggle a tip as favorite."`
	Add       TipAddCmd       `cmd:"" help:"Add a tip of your own."`
	Delete    TipDeleteCmd    `cmd:"" help:"Delete a tip."`
	Daily     TipDailyCmd     `cmd:"" help:"Show a short tip for today."`
	Recommend TipRecommendCmd `cmd:"" help:"Suggest unread tips from the categories you read most."`
	Tags      TipTagsCmd      `cmd:"" help:"List the most used tags."`
	Stats     TipStatsCmd     `cmd:"" help:"Show reading progress."`
}

func findTip(ctx *cli.Context, name string) (models.Tip, error) {
	t, ok := ctx.Tips.Find(name)
	if !ok {
		return models.Tip{}, fmt.Errorf("tip %q not found", name)
	}
	return t, nil
}

func printTips(ctx *cli.Context, list []models.Tip) {
	for _, t := range list {
		mark := " "
		if t.IsRead {
			mark = "✓"
		}
		fav := ""
		if t.IsFavorite {
			fav = " ★"
		}
		ctx.Printf("%s %-40s %-16s %-12s %2d min%s\n", mark, t.Title, t.Category.Label(), t.Difficulty.Label(), t.ReadMinutes, fav)
	}
}

type TipListCmd struct {
	Category   string `help:"Only show tips in this category (${tip_categories})."`
	Difficulty string `help:"Only show tips of this difficulty (beginner, intermediate, advanced)."`
	Tag        string `help:"Only show tips with this tag."`
	Search     string `help:"Match title, content or tags."`
	Favorites  bool   `help:"Only show favorites."`
	Unread     bool   `help:"Only show unread tips."`
	Quick      bool   `help:"Only show quick reads."`
}

func (c *TipListCmd) Run(ctx *cli.Context) error {
	f := tips.Filter{Favorites: c.Favorites, Unread: c.Unread, Query: c.Search}
	if c.Category != "" {
		cat, err := models.ParseTipCategory(c.Category)
		if err != nil {
			return err
		}
		f.Category = cat
	}
	if c.Difficulty != "" {
		d, err := models.ParseTipDifficulty(c.Difficulty)
		if err != nil {
			return err
		}
		f.Difficulty = d
	}

	list := ctx.Tips.Filtered(f)
	var out []models.Tip
	for _, t := range list {
		if c.Tag != "" && !models.HasTag(t.Tags, c.Tag) {
			continue
		}
		if c.Quick && t.ReadMinutes > constants.QuickReadMinutes {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		ctx.Println("No tips found.")
		return nil
	}
	printTips(ctx, out)
	return nil
}

type TipShowCmd struct {
	Tip string `arg:"" help:"Tip title or ID."`
}

func (c *TipShowCmd) Run(ctx *cli.Context) error {
	t, err := findTip(ctx, c.Tip)
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", t.Title)
	ctx.Printf("%s · %s · %d min read", t.Category.Label(), t.Difficulty.Label(), t.ReadMinutes)
	if t.Author != "" {
		ctx.Printf(" · by %s", t.Author)
	}
	ctx.Println()
	ctx.Printf("\n%s\n", t.Content)
	if len(t.ActionItems) > 0 {
		ctx.Println("\nTry this:")
		for _, a := range t.ActionItems {
			ctx.Printf("  - %s\n", a)
		}
	}
	if len(t.Tags) > 0 {
		ctx.Printf("\nTags: %s\n", strings.Join(t.Tags, ", "))
	}
	if t.ReadAt != nil {
		ctx.Printf("Read %s\n", humanize.Time(*t.ReadAt))
	}
	return nil
}

type TipReadCmd struct {
	Tip string `arg:"" help:"Tip title or ID."`
}

func (c *TipReadCmd) Run(ctx *cli.Context) error {
	t, err := findTip(ctx, c.Tip)
	if err != nil {
		return err
	}
	if t.IsRead {
		ctx.Printf("Already read: %s\n", t.Title)
		return nil
	}
	if _, err := ctx.Tips.MarkRead(t.ID); err != nil {
		return err
	}
	ctx.Printf("Marked as read: %s (%s read)\n", t.Title, cli.FormatRate(ctx.Tips.ReadingProgress()))
	return nil
}

type TipFavoriteCmd struct {
	Tip string `arg:"" help:"Tip title or ID."`
}

func (c *TipFavoriteCmd) Run(ctx *cli.Context) error {
	t, err := findTip(ctx, c.Tip)
	if err != nil {
		return err
	}
	updated, err := ctx.Tips.ToggleFavorite(t.ID)
	if err != nil {
		return err
	}
	if updated.IsFavorite {
		ctx.Printf("Added to favorites: %s\n", updated.Title)
	} else {
		ctx.Printf("Removed from favorites: %s\n", updated.Title)
	}
	return nil
}

type TipAddCmd struct {
	Title      string   `arg:"" help:"Tip title."`
	Content    string   `arg:"" help:"Tip text."`
	Category   string   `help:"Category (${tip_categories})." default:"productivity"`
	Difficulty string   `help:"Difficulty (beginner, intermediate, advanced)." default:"beginner"`
	Minutes    int      `help:"Estimated read time in minutes." default:"3"`
	Tags       []string `help:"Tags." sep:","`
	Action     []string `help:"Action items." sep:","`
	Author     string   `help:"Author name."`
}

func (c *TipAddCmd) Run(ctx *cli.Context) error {
	in := validation.TipInput{
		Title:       c.Title,
		Content:     c.Content,
		Category:    c.Category,
		Difficulty:  c.Difficulty,
		ReadMinutes: c.Minutes,
		Tags:        c.Tags,
		Author:      c.Author,
		ActionItems: c.Action,
	}
	t, err := in.Tip()
	if err != nil {
		return fmt.Errorf("invalid tip: %w", err)
	}
	if _, ok := ctx.Tips.Find(t.Title); ok {
		return fmt.Errorf("tip with title %q already exists", t.Title)
	}
	added := ctx.Tips.Add(t)
	ctx.Printf("Added tip: %s\n", added.Title)
	return nil
}

type TipDeleteCmd struct {
	Tip string `arg:"" help:"Tip title or ID."`
}

func (c *TipDeleteCmd) Run(ctx *cli.Context) error {
	t, err := findTip(ctx, c.Tip)
	if err != nil {
		return err
	}
	ctx.Tips.Delete(t.ID)
	ctx.Printf("Deleted tip: %s\n", t.Title)
	return nil
}

type TipDailyCmd struct{}

func (c *TipDailyCmd) Run(ctx *cli.Context) error {
	t, ok := ctx.Tips.Daily()
	if !ok {
		ctx.Println("No tips yet. Run 'elevate data seed' to add some.")
		return nil
	}
	ctx.Printf("Tip of the day: %s (%d min read)\n\n%s\n", t.Title, t.ReadMinutes, t.Content)
	return nil
}

type TipRecommendCmd struct {
	Limit int `help:"How many to suggest." default:"5"`
}

func (c *TipRecommendCmd) Run(ctx *cli.Context) error {
	list := ctx.Tips.Recommended(c.Limit)
	if len(list) == 0 {
		ctx.Println("Nothing to recommend. You've read every tip.")
		return nil
	}
	printTips(ctx, list)
	return nil
}

type TipTagsCmd struct {
	Limit int `help:"How many tags to show." default:"10"`
}

func (c *TipTagsCmd) Run(ctx *cli.Context) error {
	tags := ctx.Tips.PopularTags(c.Limit)
	if len(tags) == 0 {
		ctx.Println("No tags yet.")
		return nil
	}
	for _, tc := range tags {
		ctx.Printf("  %-24s %d\n", tc.Tag, tc.Count)
	}
	return nil
}

type TipStatsCmd struct{}

func (c *TipStatsCmd) Run(ctx *cli.Context) error {
	all := ctx.Tips.Tips()
	if len(all) == 0 {
		ctx.Println("No tips yet. Run 'elevate data seed' to add some.")
		return nil
	}
	ctx.Printf("Read %d of %d tips (%s)\n", ctx.Tips.ReadCount(), len(all), cli.FormatRate(ctx.Tips.ReadingProgress()))
	ctx.Printf("Favorites: %d\n", len(ctx.Tips.Favorites()))
	ctx.Printf("Reading time: %d min total, %d min average\n", ctx.Tips.TotalReadMinutes(), ctx.Tips.AverageReadMinutes())

	counts := ctx.Tips.DifficultyCounts()
	ctx.Println("\nBy difficulty:")
	for _, d := range models.AllTipDifficulties() {
		ctx.Printf("  %-14s %d\n", d.Label(), counts[d])
	}

	ctx.Println("\nBy category:")
	for _, p := range ctx.Tips.ProgressByCategory() {
		ctx.Printf("  %-18s %d/%d  %s\n", p.Category.Label(), p.Read, p.Total, cli.FormatRate(p.Rate()))
	}
	return nil
}
