package goals

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

// Wednesday
var testNow = time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)

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

func addGoal(t *testing.T, ctx *cli.Context, cmd GoalAddCmd) {
	t.Helper()
	if cmd.Category == "" {
		cmd.Category = "personal"
	}
	if cmd.Priority == "" {
		cmd.Priority = "medium"
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("goal add failed: %v", err)
	}
}

func TestGoalAddCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	addGoal(t, ctx, GoalAddCmd{Title: "  Run a 10K ", Category: "Health", Priority: "high", Target: "2026-11-30"})
	if !strings.Contains(out.String(), "Added goal: Run a 10K (Health & Fitness, High priority)") {
		t.Errorf("unexpected output: %s", out.String())
	}
	g, ok := ctx.Goals.Find("run a 10k")
	if !ok {
		t.Fatal("goal not stored")
	}
	if g.Category != models.GoalHealth || g.Priority != models.PriorityHigh {
		t.Errorf("unexpected goal: %+v", g)
	}
	if g.TargetDate == nil || g.TargetDate.Format("2006-01-02") != "2026-11-30" {
		t.Errorf("target date = %v", g.TargetDate)
	}

	stored, err := ctx.Records.LoadGoals()
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected 1 stored goal, got %d (%v)", len(stored), err)
	}
}

func TestGoalAddCmdRejectsBadInput(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addGoal(t, ctx, GoalAddCmd{Title: "Read 12 books"})

	tests := []struct {
		name string
		cmd  GoalAddCmd
		want string
	}{
		{"duplicate", GoalAddCmd{Title: "READ 12 BOOKS", Category: "personal", Priority: "medium"}, "already exists"},
		{"blank title", GoalAddCmd{Title: "   ", Category: "personal", Priority: "medium"}, "title cannot be empty"},
		{"category", GoalAddCmd{Title: "X", Category: "hobbies", Priority: "medium"}, "category must be"},
		{"priority", GoalAddCmd{Title: "X", Category: "personal", Priority: "urgent"}, "priority must be"},
		{"date", GoalAddCmd{Title: "X", Category: "personal", Priority: "medium", Target: "30/11/2026"}, "YYYY-MM-DD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
	if n := len(ctx.Goals.Goals()); n != 1 {
		t.Errorf("expected 1 goal, got %d", n)
	}
}

func TestGoalListCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addGoal(t, ctx, GoalAddCmd{Title: "Run a 10K", Category: "health", Priority: "high", Target: "2026-10-19"})
	addGoal(t, ctx, GoalAddCmd{Title: "Save for a trip", Category: "financial", Target: "2026-10-21"})
	addGoal(t, ctx, GoalAddCmd{Title: "Learn Spanish", Category: "education", Target: "2026-10-24"})
	if err := (&GoalDoneCmd{Title: "Learn Spanish"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	if err := (&GoalListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"(overdue by 2 day(s))", "(due today)", "[x] Learn Spanish"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := (&GoalListCmd{Open: true, Category: "health"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "Run a 10K") || strings.Contains(got, "Save for a trip") {
		t.Errorf("filter not applied:\n%s", got)
	}

	out.Reset()
	if err := (&GoalListCmd{Search: "nothing"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No goals found.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&GoalListCmd{Category: "hobbies"}).Run(ctx); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestGoalDoneCmdToggles(t *testing.T) {
	ctx, out := setupTestContext(t)
	addGoal(t, ctx, GoalAddCmd{Title: "Meditate daily"})

	if err := (&GoalDoneCmd{Title: "Meditate daily"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	g, _ := ctx.Goals.Find("Meditate daily")
	if !g.IsCompleted || g.CompletedAt == nil || !g.CompletedAt.Equal(testNow) {
		t.Errorf("goal not completed: %+v", g)
	}

	if err := (&GoalDoneCmd{Title: "Meditate daily"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	g, _ = ctx.Goals.Find("Meditate daily")
	if g.IsCompleted || g.CompletedAt != nil {
		t.Errorf("goal not reopened: %+v", g)
	}
	if !strings.Contains(out.String(), "Completed goal: Meditate daily") || !strings.Contains(out.String(), "Reopened goal: Meditate daily") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&GoalDoneCmd{Title: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown goal")
	}
}

func TestGoalEditCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addGoal(t, ctx, GoalAddCmd{Title: "Write a novel", Target: "2027-01-01"})
	addGoal(t, ctx, GoalAddCmd{Title: "Other"})

	rename := "Write a short story"
	priority := "low"
	none := ""
	notes := "Switched to something smaller"
	if err := (&GoalEditCmd{Title: "Write a novel", Rename: &rename, Priority: &priority, Target: &none, Reflection: &notes}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	g, ok := ctx.Goals.Find(rename)
	if !ok {
		t.Fatal("renamed goal not found")
	}
	if g.Priority != models.PriorityLow || g.TargetDate != nil || g.ReflectionNotes != notes {
		t.Errorf("unexpected goal after edit: %+v", g)
	}

	out.Reset()
	if err := (&GoalEditCmd{Title: rename}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	taken := "other"
	if err := (&GoalEditCmd{Title: rename, Rename: &taken}).Run(ctx); err == nil {
		t.Error("expected error renaming onto an existing title")
	}
}

func TestGoalDeleteCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addGoal(t, ctx, GoalAddCmd{Title: "Temporary"})

	if err := (&GoalDeleteCmd{Title: "temporary"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(ctx.Goals.Goals()); n != 0 {
		t.Errorf("expected no goals, got %d", n)
	}
}

func TestGoalStatsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&GoalStatsCmd{Days: 7}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No goals yet.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	addGoal(t, ctx, GoalAddCmd{Title: "Late one", Category: "career", Target: "2026-10-20"})
	addGoal(t, ctx, GoalAddCmd{Title: "Soon one", Category: "career", Priority: "high", Target: "2026-10-25"})
	addGoal(t, ctx, GoalAddCmd{Title: "Finished", Category: "health"})
	if err := (&GoalDoneCmd{Title: "Finished"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	if err := (&GoalStatsCmd{Days: 7}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"Goals: 3 total, 1 completed, 2 open (33% done)",
		"Overdue:\n  Late one  (overdue by 1 day(s))",
		"2026-10-25  Soon one",
		"High priority:\n  Soon one",
		"Recently completed:\n  Finished",
		"Career",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDueLabel(t *testing.T) {
	day := func(s string) *time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return &d
	}
	tests := []struct {
		name string
		goal models.Goal
		want string
	}{
		{"no target", models.Goal{}, ""},
		{"overdue", models.Goal{TargetDate: day("2026-10-18")}, "  (overdue by 3 day(s))"},
		{"today", models.Goal{TargetDate: day("2026-10-21")}, "  (due today)"},
		{"future", models.Goal{TargetDate: day("2026-10-22")}, "  (due in 1 day(s))"},
		{"completed", models.Goal{TargetDate: day("2026-10-18"), IsCompleted: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dueLabel(tt.goal, testNow); got != tt.want {
				t.Errorf("dueLabel = %q, want %q", got, tt.want)
			}
		})
	}
}
