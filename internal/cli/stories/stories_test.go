package stories

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
)

var testNow = time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)

const longContent = "I started with one push-up a day and kept going until it became part of who I am."

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "elevate.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	prefs := models.DefaultPreferences()
	prefs.Timezone = "UTC"
	if err := storage.NewRecordStore(store).SavePreferences(prefs); err != nil {
		t.Fatalf("failed to save preferences: %v", err)
	}
	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, Out: out, Clock: func() time.Time { return testNow }}
	ctx.Open()
	return ctx, out
}

func addStory(t *testing.T, ctx *cli.Context, cmd StoryAddCmd) {
	t.Helper()
	if cmd.Content == "" {
		cmd.Content = longContent
	}
	if cmd.Category == "" {
		cmd.Category = "general"
	}
	if cmd.Level == "" {
		cmd.Level = "motivating"
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("story add failed: %v", err)
	}
}

func TestStoryAddCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	addStory(t, ctx, StoryAddCmd{Title: "One Push-Up", Category: "health", Author: "Sam", Milestone: "100 days", Tags: []string{"fitness"}})
	if !strings.Contains(out.String(), "Shared story: One Push-Up (by Sam)") {
		t.Errorf("unexpected output: %s", out.String())
	}
	addStory(t, ctx, StoryAddCmd{Title: "Quiet Mornings", Author: "Sam", Anonymous: true})
	if !strings.Contains(out.String(), "Shared story: Quiet Mornings (by Anonymous)") {
		t.Errorf("unexpected output: %s", out.String())
	}

	s, ok := ctx.Stories.Find("quiet mornings")
	if !ok || !s.IsAnonymous || s.AuthorName != "" || !s.CreatedAt.Equal(testNow) {
		t.Errorf("unexpected story: %+v", s)
	}
	stored, err := ctx.Records.LoadStories()
	if err != nil || len(stored) != 2 || stored[0].Title != "Quiet Mornings" {
		t.Errorf("newest story should be stored first: %+v (%v)", stored, err)
	}
}

func TestStoryAddCmdRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  StoryAddCmd
		want string
	}{
		{"short", StoryAddCmd{Title: "Short", Content: "Too short.", Category: "general", Level: "gentle"}, "at least 50"},
		{"promo", StoryAddCmd{Title: "Buy now and change your life", Content: longContent, Category: "general", Level: "gentle"}, "promotional"},
		{"category", StoryAddCmd{Title: "X", Content: longContent, Category: "sports", Level: "gentle"}, "category"},
		{"level", StoryAddCmd{Title: "X", Content: longContent, Category: "general", Level: "epic"}, "inspirationlevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			err := tt.cmd.Run(ctx)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
			if n := len(ctx.Stories.Stories()); n != 0 {
				t.Errorf("expected no stories, got %d", n)
			}
		})
	}
}

func TestStoryListAndLike(t *testing.T) {
	ctx, out := setupTestContext(t)
	if n := ctx.Stories.Seed(); n != 4 {
		t.Fatalf("expected 4 sample stories, got %d", n)
	}

	if err := (&StoryLikeCmd{Story: "Climbing Out of Debt"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Liked: Climbing Out of Debt (1 like(s))") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&StoryListCmd{Top: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 || !strings.Contains(lines[0], "♥   1  Climbing Out of Debt") {
		t.Errorf("most liked story should lead:\n%s", out.String())
	}

	out.Reset()
	if err := (&StoryListCmd{Liked: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out.String(), "\n"); n != 1 {
		t.Errorf("expected 1 liked story:\n%s", out.String())
	}

	out.Reset()
	if err := (&StoryListCmd{Category: "career", Search: "overtime"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "Learning to Say No at Work") || strings.Count(got, "\n") != 1 {
		t.Errorf("filters not applied:\n%s", got)
	}

	out.Reset()
	if err := (&StoryListCmd{Level: "gentle"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No stories found.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&StoryLikeCmd{Story: "Climbing Out of Debt"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	s, _ := ctx.Stories.Find("Climbing Out of Debt")
	if s.Likes != 0 || s.LikedByUser {
		t.Errorf("second like should undo the first: %+v", s)
	}
}

func TestStoryShowShareDelete(t *testing.T) {
	ctx, out := setupTestContext(t)
	addStory(t, ctx, StoryAddCmd{Title: "One Push-Up", Author: "Sam", Milestone: "100 days"})

	if err := (&StoryShowCmd{Story: "one push-up"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "by Sam · General Growth · Motivating") || !strings.Contains(got, "Milestone: 100 days") {
		t.Errorf("unexpected output:\n%s", got)
	}

	out.Reset()
	if err := (&StoryShareCmd{Story: "One Push-Up"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "- Sam, shared on Elevate\n") {
		t.Errorf("unexpected share text:\n%s", out.String())
	}

	if err := (&StoryDeleteCmd{Story: "One Push-Up"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(ctx.Stories.Stories()); n != 0 {
		t.Errorf("expected no stories, got %d", n)
	}
	if err := (&StoryShowCmd{Story: "One Push-Up"}).Run(ctx); err == nil {
		t.Error("expected error for a deleted story")
	}
}

func TestStoryTemplatesAndStats(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&StoryTemplatesCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Overcoming a Challenge (General Growth)") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&StoryStatsCmd{Limit: 3}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No stories yet.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	ctx.Stories.Seed()
	out.Reset()
	if err := (&StoryStatsCmd{Limit: 3}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"Stories: 4, total likes: 0", "With milestones: 4", "Transformational", "Popular tags:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
