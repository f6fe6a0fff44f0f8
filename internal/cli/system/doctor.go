package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/utils"
	"github.com/julianstephens/elevate/internal/validation"
)

type check struct {
	name string
	// warn marks checks that report but never fail the run.
	warn bool
	// needsStore checks are skipped when storage is unreachable.
	needsStore bool
	run        func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Habits decode", needsStore: true, run: checkHabitsDecode},
	{name: "Habit integrity", needsStore: true, run: checkHabitsIntegrity},
	{name: "Collections decode", needsStore: true, run: checkCollectionsDecode},
	{name: "Preferences", needsStore: true, run: checkPreferences},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Log directory writable", run: checkLogDir},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := checkStoreReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var skipped skipError
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skipped):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skipped)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

// skipError marks a check that does not apply to the current setup.
type skipError string

func (e skipError) Error() string { return string(e) }

func skip(reason string) error { return skipError(reason) }

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return skip("backend has no schema")
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d; run 'elevate migrate'", current, latest)
	}
	return nil
}

func checkHabitsDecode(ctx *cli.Context) error {
	_, err := ctx.Records.LoadHabits(constants.HabitsKey)
	return err
}

func checkCollectionsDecode(ctx *cli.Context) error {
	var errs []error
	if _, err := ctx.Records.LoadGoals(); err != nil {
		errs = append(errs, fmt.Errorf("goals: %w", err))
	}
	if _, err := ctx.Records.LoadVisionBoards(); err != nil {
		errs = append(errs, fmt.Errorf("vision boards: %w", err))
	}
	if _, err := ctx.Records.LoadTips(); err != nil {
		errs = append(errs, fmt.Errorf("tips: %w", err))
	}
	if _, err := ctx.Records.LoadStories(); err != nil {
		errs = append(errs, fmt.Errorf("stories: %w", err))
	}
	return errors.Join(errs...)
}

// checkHabitsIntegrity inspects the stored record, not the session copy,
// since opening a session recomputes streaks.
func checkHabitsIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Records.LoadHabits(constants.HabitsKey)
	if err != nil {
		return skip("habits record does not decode")
	}
	seen := map[string]bool{}
	var problems []error
	for _, h := range habits {
		if seen[h.ID] {
			problems = append(problems, fmt.Errorf("duplicate habit id %s", h.ID))
		}
		seen[h.ID] = true
		if h.Name == "" {
			problems = append(problems, fmt.Errorf("habit %s has no name", h.ID))
		}
		if !h.Category.Valid() {
			problems = append(problems, fmt.Errorf("habit %q has unknown category %q", h.Name, h.Category))
		}
		if h.TargetValue < 1 {
			problems = append(problems, fmt.Errorf("habit %q has target %d", h.Name, h.TargetValue))
		}
		if h.LongestStreak < h.Streak {
			problems = append(problems, fmt.Errorf("habit %q longest streak %d is below current streak %d", h.Name, h.LongestStreak, h.Streak))
		}
		for _, c := range h.Completions {
			if c.Value < 0 {
				problems = append(problems, fmt.Errorf("habit %q has a negative completion value", h.Name))
				break
			}
		}
	}
	return errors.Join(problems...)
}

func checkPreferences(ctx *cli.Context) error {
	if _, err := utils.NowInTimezone(ctx.Prefs.Timezone); err != nil {
		return err
	}
	return validation.Preferences(ctx.Prefs)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return skip("backend is not sqlite")
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'elevate backup create'")
	}
	return nil
}

func checkLogDir(ctx *cli.Context) error {
	if ctx.ConfigDir == "" {
		return skip("no config directory")
	}
	dir := filepath.Join(ctx.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
