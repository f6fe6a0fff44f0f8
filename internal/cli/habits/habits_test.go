package habits

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
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
	ctx := &cli.Context{
		Store: store,
		Out:   out,
		Clock: func() time.Time { return testNow },
	}
	ctx.Open()
	return ctx, out
}

func addHabit(t *testing.T, ctx *cli.Context, name string, target int) models.Habit {
	t.Helper()
	cmd := &HabitAddCmd{Name: name, Category: "health", Frequency: "daily", Target: target, Unit: "times"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	h, ok := ctx.Registry.FindByName(name)
	if !ok {
		t.Fatalf("habit %q not stored", name)
	}
	return h
}

func TestHabitAddCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	cmd := &HabitAddCmd{
		Name:        "Drink Water",
		Description: "Stay hydrated",
		Category:    "Health & Fitness",
		Frequency:   "daily",
		Target:      8,
		Unit:        "glasses",
		Reminder:    "08:00",
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	h, ok := ctx.Registry.FindByName("drink water")
	if !ok {
		t.Fatal("habit not found after add")
	}
	if h.Category != models.CategoryHealth || h.TargetValue != 8 || h.Unit != "glasses" {
		t.Errorf("unexpected habit: %+v", h)
	}
	if h.ReminderTime == nil || *h.ReminderTime != "08:00" {
		t.Errorf("reminder not stored: %v", h.ReminderTime)
	}
	if !h.IsActive {
		t.Error("new habits should be active")
	}
	if !strings.Contains(out.String(), "Added habit: Drink Water") {
		t.Errorf("unexpected output: %s", out.String())
	}

	// Persisted through the record store
	stored, err := ctx.Records.LoadHabits(constants.HabitsKey)
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected 1 stored habit, got %d (%v)", len(stored), err)
	}
}

func TestHabitAddCmdRejectsInvalid(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addHabit(t, ctx, "Read", 1)

	tests := []struct {
		name string
		cmd  HabitAddCmd
	}{
		{"empty name", HabitAddCmd{Name: "  ", Category: "health", Frequency: "daily", Target: 1}},
		{"duplicate", HabitAddCmd{Name: "read", Category: "health", Frequency: "daily", Target: 1}},
		{"bad category", HabitAddCmd{Name: "X", Category: "sports", Frequency: "daily", Target: 1}},
		{"bad frequency", HabitAddCmd{Name: "X", Category: "health", Frequency: "hourly", Target: 1}},
		{"zero target", HabitAddCmd{Name: "X", Category: "health", Frequency: "daily", Target: 0}},
		{"bad reminder", HabitAddCmd{Name: "X", Category: "health", Frequency: "daily", Target: 1, Reminder: "25:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
	if n := len(ctx.Registry.Habits()); n != 1 {
		t.Errorf("expected 1 habit, got %d", n)
	}
}

func TestHabitDoneAndUndo(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Drink Water", 8)

	// kong fills the default of 1
	if err := (&HabitDoneCmd{Name: h.Name, Value: 1}).Run(ctx); err != nil {
		t.Fatalf("habit done failed: %v", err)
	}
	if err := (&HabitDoneCmd{Name: h.Name, Value: 5, Note: "afternoon"}).Run(ctx); err != nil {
		t.Fatalf("habit done failed: %v", err)
	}

	got, _ := ctx.Registry.Get(h.ID)
	if got.Streak != 1 {
		t.Errorf("two completions on one day should give streak 1, got %d", got.Streak)
	}
	if total := got.TotalValueOn(testNow); total != 6 {
		t.Errorf("expected total 6 today, got %d", total)
	}
	if got.Completions[1].Notes == nil || *got.Completions[1].Notes != "afternoon" {
		t.Error("note not stored")
	}
	if !strings.Contains(out.String(), "6/8 times today") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&HabitDoneCmd{Name: h.Name, Value: -1}).Run(ctx); err == nil {
		t.Error("expected error for negative value")
	}

	if err := (&HabitUndoCmd{Name: h.Name}).Run(ctx); err != nil {
		t.Fatalf("habit undo failed: %v", err)
	}
	got, _ = ctx.Registry.Get(h.ID)
	if len(got.Completions) != 0 || got.Streak != 0 {
		t.Errorf("undo left %d completions, streak %d", len(got.Completions), got.Streak)
	}
	if got.LongestStreak != 1 {
		t.Errorf("longest streak should be kept, got %d", got.LongestStreak)
	}

	out.Reset()
	if err := (&HabitUndoCmd{Name: h.Name}).Run(ctx); err != nil {
		t.Fatalf("second undo failed: %v", err)
	}
	if !strings.Contains(out.String(), "no completions today") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&HabitDoneCmd{Name: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
}

func TestHabitListCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addHabit(t, ctx, "Drink Water", 8)
	read := addHabit(t, ctx, "Read", 20)
	if err := (&HabitEditCmd{Name: "Read", Category: ptr("learning")}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	walk := addHabit(t, ctx, "Walk", 30)
	if _, err := ctx.Registry.ToggleActive(walk.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Registry.Complete(read.ID, 20, nil); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	listing := out.String()
	if strings.Contains(listing, "Walk") {
		t.Error("paused habits should be hidden by default")
	}
	if !strings.Contains(listing, "[x] Read") || !strings.Contains(listing, "[ ] Drink Water") {
		t.Errorf("unexpected listing:\n%s", listing)
	}

	out.Reset()
	if err := (&HabitListCmd{Inactive: true, Category: "health"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Walk") || strings.Contains(out.String(), "Read") {
		t.Errorf("category filter failed:\n%s", out.String())
	}

	out.Reset()
	if err := (&HabitListCmd{Search: "learn"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Read") || strings.Contains(out.String(), "Drink") {
		t.Errorf("search failed:\n%s", out.String())
	}

	out.Reset()
	if err := (&HabitListCmd{Frequency: "weekly"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No habits found.") {
		t.Errorf("frequency filter failed:\n%s", out.String())
	}

	if err := (&HabitListCmd{Category: "sports"}).Run(ctx); err == nil {
		t.Error("expected error for unknown category")
	}
}

func ptr[T any](v T) *T { return &v }

func TestHabitEditCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	h := addHabit(t, ctx, "Read", 10)
	addHabit(t, ctx, "Walk", 30)

	cmd := &HabitEditCmd{Name: "Read", Rename: ptr("Read Books"), Target: ptr(25), Unit: ptr("pages")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit edit failed: %v", err)
	}
	got, _ := ctx.Registry.Get(h.ID)
	if got.Name != "Read Books" || got.TargetValue != 25 || got.Unit != "pages" {
		t.Errorf("edit not applied: %+v", got)
	}
	if got.MotivationalQuote == nil {
		t.Error("edit should keep the quote")
	}

	if err := (&HabitEditCmd{Name: "Read Books", Rename: ptr("walk")}).Run(ctx); err == nil {
		t.Error("expected error renaming onto an existing habit")
	}
	if err := (&HabitEditCmd{Name: "Read Books", Target: ptr(0)}).Run(ctx); err == nil {
		t.Error("expected error for zero target")
	}
}

func TestHabitToggleReminderQuoteDelete(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Meditate", 10)

	if err := (&HabitToggleCmd{Name: h.Name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := ctx.Registry.Get(h.ID); got.IsActive {
		t.Error("toggle should pause the habit")
	}
	if err := (&HabitToggleCmd{Name: h.Name}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&HabitReminderCmd{Name: h.Name, At: "07:15"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&HabitRemindersCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "07:15  Meditate") {
		t.Errorf("unexpected reminders:\n%s", out.String())
	}
	if err := (&HabitReminderCmd{Name: h.Name, At: "7pm"}).Run(ctx); err == nil {
		t.Error("expected error for invalid time")
	}
	if err := (&HabitReminderCmd{Name: h.Name}).Run(ctx); err == nil {
		t.Error("expected error without --at or --clear")
	}
	if err := (&HabitReminderCmd{Name: h.Name, Clear: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := ctx.Registry.Get(h.ID); got.ReminderTime != nil {
		t.Error("reminder should be cleared")
	}

	out.Reset()
	if err := (&HabitQuoteCmd{Name: h.Name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Meditate:") {
		t.Errorf("unexpected quote output: %s", out.String())
	}
	out.Reset()
	if err := (&HabitQuoteCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("expected a random quote")
	}

	if err := (&HabitDeleteCmd{Name: h.Name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Registry.Habits()) != 0 {
		t.Error("habit not deleted")
	}
	if err := (&HabitDeleteCmd{Name: h.Name}).Run(ctx); err == nil {
		t.Error("expected error deleting a missing habit")
	}
}

func TestHabitShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Drink Water", 8)
	if _, err := ctx.Registry.Complete(h.ID, 5, nil); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&HabitShowCmd{Name: h.Name}).Run(ctx); err != nil {
		t.Fatalf("habit show failed: %v", err)
	}
	show := out.String()
	for _, want := range []string{"Drink Water", "Today:           5/8 times", "Streak:          1", "this week"} {
		if !strings.Contains(show, want) {
			t.Errorf("show output missing %q:\n%s", want, show)
		}
	}
}

func TestHabitLogCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "A very long habit name indeed", 1)
	if _, err := ctx.Registry.Complete(h.ID, 1, nil); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&HabitLogCmd{Days: 3}).Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "A very long habit...") {
		t.Errorf("name not truncated: %q", last)
	}
	if strings.Count(last, ".") != 3+2 || !strings.HasSuffix(last, "x") {
		t.Errorf("unexpected log row: %q", last)
	}
	if !strings.Contains(out.String(), "10/21") {
		t.Errorf("header missing today:\n%s", out.String())
	}

	if err := (&HabitLogCmd{Habit: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
}

func TestPadName(t *testing.T) {
	if got := padName("Read", 6); got != "Read  " {
		t.Errorf("padName() = %q", got)
	}
	if got := padName("Meditation", 6); got != "Med..." {
		t.Errorf("padName() = %q", got)
	}
}

func TestHabitLogCmdEndDate(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Read", 1)
	if _, err := ctx.Registry.Complete(h.ID, 1, nil); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&HabitLogCmd{Days: 2, End: "2026-10-20"}).Run(ctx); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "10/19") || !strings.Contains(got, "10/20") || strings.Contains(got, "10/21") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if strings.Contains(got, "x") {
		t.Errorf("today's completion should be outside the window:\n%s", got)
	}

	if err := (&HabitLogCmd{Days: 2, End: "20/10/2026"}).Run(ctx); err == nil {
		t.Error("expected error for a malformed date")
	}
}
