package stories

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/community"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/validation"
)

type StoryCmd struct {
	List      StoryListCmd      `cmd:"" help:"List community stories."`
	Show      StoryShowCmd      `cmd:"" help:"Read a story."`
	Add       StoryAddCmd       `cmd:"" help:"Share a story."`
	Like      StoryLikeCmd      `cmd:"" help:"Like or unlike a story."`
	Delete    StoryDeleteCmd    `cmd:"" help:"Delete a story."`
	Share     StoryShareCmd     `cmd:"" help:"Print a story as shareable text."`
	Templates StoryTemplatesCmd `cmd:"" help:"Show writing prompts for a new story."`
	Stats     StoryStatsCmd     `cmd:"" help:"Show community statistics."`
}

func findStory(ctx *cli.Context, name string) (models.Story, error) {
	s, ok := ctx.Stories.Find(name)
	if !ok {
		return models.Story{}, fmt.Errorf("story %q not found", name)
	}
	return s, nil
}

type StoryListCmd struct {
	Category string `help:"Only show stories in this category (${story_categories})."`
	Level    string `help:"Only show stories with this inspiration level (gentle, motivating, transformational)."`
	Search   string `help:"Match title, content, milestone or tags."`
	Liked    bool   `help:"Only show stories you liked."`
	Top      bool   `help:"Sort by likes."`
}

func (c *StoryListCmd) Run(ctx *cli.Context) error {
	f := community.Filter{Query: c.Search}
	if c.Category != "" {
		cat, err := models.ParseStoryCategory(c.Category)
		if err != nil {
			return err
		}
		f.Category = cat
	}
	if c.Level != "" {
		l, err := models.ParseInspirationLevel(c.Level)
		if err != nil {
			return err
		}
		f.Level = l
	}

	var list []models.Story
	if c.Top {
		list = ctx.Stories.MostLiked(-1)
	} else {
		list = ctx.Stories.Stories()
	}
	allowed := map[string]bool{}
	for _, s := range ctx.Stories.Filtered(f) {
		allowed[s.ID] = true
	}

	n := 0
	for _, s := range list {
		if !allowed[s.ID] || (c.Liked && !s.LikedByUser) {
			continue
		}
		heart := "♡"
		if s.LikedByUser {
			heart = "♥"
		}
		ctx.Printf("%s %3d  %-40s %-22s %s\n", heart, s.Likes, s.Title, s.Category.Label(), s.DisplayAuthor())
		n++
	}
	if n == 0 {
		ctx.Println("No stories found.")
	}
	return nil
}

type StoryShowCmd struct {
	Story string `arg:"" help:"Story title or ID."`
}

func (c *StoryShowCmd) Run(ctx *cli.Context) error {
	s, err := findStory(ctx, c.Story)
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", s.Title)
	ctx.Printf("by %s · %s · %s · %s\n", s.DisplayAuthor(), s.Category.Label(), s.InspirationLevel.Label(), humanize.Time(s.CreatedAt))
	ctx.Printf("\n%s\n", s.Content)
	if s.Milestone != "" {
		ctx.Printf("\nMilestone: %s\n", s.Milestone)
	}
	if len(s.Tags) > 0 {
		ctx.Printf("Tags: %s\n", strings.Join(s.Tags, ", "))
	}
	ctx.Printf("%d like(s)\n", s.Likes)
	return nil
}

type StoryAddCmd struct {
	Title     string   `arg:"" help:"Story title."`
	Content   string   `arg:"" help:"The story itself."`
	Category  string   `help:"Category (${story_categories})." default:"general"`
	Level     string   `help:"Inspiration level (gentle, motivating, transformational)." default:"motivating"`
	Author    string   `help:"Name to show. Leave empty to post anonymously."`
	Anonymous bool     `help:"Post anonymously even if a name is given."`
	Milestone string   `help:"A milestone you reached."`
	Tags      []string `help:"Tags." sep:","`
}

func (c *StoryAddCmd) Run(ctx *cli.Context) error {
	in := validation.StoryInput{
		Title:            c.Title,
		Content:          c.Content,
		Category:         c.Category,
		InspirationLevel: c.Level,
		Anonymous:        c.Anonymous,
		AuthorName:       c.Author,
		Milestone:        c.Milestone,
		Tags:             c.Tags,
	}
	s, err := in.Story()
	if err != nil {
		return fmt.Errorf("invalid story: %w", err)
	}
	added, err := ctx.Stories.Add(s)
	if err != nil {
		return fmt.Errorf("invalid story: %w", err)
	}
	ctx.Printf("Shared story: %s (by %s)\n", added.Title, added.DisplayAuthor())
	return nil
}

type StoryLikeCmd struct {
	Story string `arg:"" help:"Story title or ID."`
}

func (c *StoryLikeCmd) Run(ctx *cli.Context) error {
	s, err := findStory(ctx, c.Story)
	if err != nil {
		return err
	}
	updated, err := ctx.Stories.ToggleLike(s.ID)
	if err != nil {
		return err
	}
	if updated.LikedByUser {
		ctx.Printf("Liked: %s (%d like(s))\n", updated.Title, updated.Likes)
	} else {
		ctx.Printf("Unliked: %s (%d like(s))\n", updated.Title, updated.Likes)
	}
	return nil
}

type StoryDeleteCmd struct {
	Story string `arg:"" help:"Story title or ID."`
}

func (c *StoryDeleteCmd) Run(ctx *cli.Context) error {
	s, err := findStory(ctx, c.Story)
	if err != nil {
		return err
	}
	ctx.Stories.Delete(s.ID)
	ctx.Printf("Deleted story: %s\n", s.Title)
	return nil
}

type StoryShareCmd struct {
	Story string `arg:"" help:"Story title or ID."`
}

func (c *StoryShareCmd) Run(ctx *cli.Context) error {
	s, err := findStory(ctx, c.Story)
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.W(), community.ShareText(s))
	return nil
}

type StoryTemplatesCmd struct{}

func (c *StoryTemplatesCmd) Run(ctx *cli.Context) error {
	for _, t := range community.Templates() {
		ctx.Printf("%s (%s)\n", t.Title, t.Category.Label())
		ctx.Printf("  %s\n", t.Prompt)
		ctx.Printf("  Suggested tags: %s\n\n", strings.Join(t.SuggestedTags, ", "))
	}
	return nil
}

type StoryStatsCmd struct {
	Limit int `help:"How many tags to show." default:"5"`
}

func (c *StoryStatsCmd) Run(ctx *cli.Context) error {
	all := ctx.Stories.Stories()
	if len(all) == 0 {
		ctx.Println("No stories yet. Share one with 'elevate story add'.")
		return nil
	}
	ctx.Printf("Stories: %d, total likes: %d, average length: %d characters\n",
		len(all), ctx.Stories.TotalLikes(), ctx.Stories.AverageLength())
	ctx.Printf("With milestones: %d\n", len(ctx.Stories.WithMilestones()))

	ctx.Println("\nBy category:")
	for _, cc := range ctx.Stories.CountByCategory() {
		ctx.Printf("  %-22s %d\n", cc.Category.Label(), cc.Count)
	}
	ctx.Println("\nBy inspiration level:")
	for _, lc := range ctx.Stories.CountByLevel() {
		ctx.Printf("  %-18s %d\n", lc.Level.Label(), lc.Count)
	}
	if tags := ctx.Stories.PopularTags(c.Limit); len(tags) > 0 {
		ctx.Println("\nPopular tags:")
		for _, tc := range tags {
			ctx.Printf("  %-22s %d\n", tc.Tag, tc.Count)
		}
	}
	return nil
}
