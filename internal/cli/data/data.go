package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/validation"
)

const exportVersion = 1

// Export is the file format written by `data export`.
type Export struct {
	Version     int                `json:"version"`
	ExportedAt  time.Time          `json:"exported_at"`
	Habits      []models.Habit     `json:"habits"`
	Preferences models.Preferences `json:"preferences"`

	// Absent collections are left untouched on import.
	Goals        []models.Goal        `json:"goals,omitempty"`
	VisionBoards []models.VisionBoard `json:"vision_boards,omitempty"`
	Tips         []models.Tip         `json:"tips,omitempty"`
	Stories      []models.Story       `json:"stories,omitempty"`
}

type ClearCmd struct {
	All bool `help:"Also reset preferences."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if c.All {
		if err := ctx.Records.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
		ctx.Prefs = models.DefaultPreferences()
	} else if err := ctx.Records.Clear(constants.HabitsKey); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	// Reload so the session matches the now-empty store.
	ctx.Open()
	if c.All {
		ctx.Println("Cleared all habits, goals, vision boards, tips, stories and preferences.")
	} else {
		ctx.Println("Cleared all habits.")
	}
	return nil
}

type ExportCmd struct {
	Output string `short:"o" help:"File to write (default: stdout)."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	out := Export{
		Version:     exportVersion,
		ExportedAt:  ctx.Registry.Now(),
		Habits:      ctx.Registry.Habits(),
		Preferences: ctx.Prefs,

		Goals:        ctx.Goals.Goals(),
		VisionBoards: ctx.Vision.Boards(),
		Tips:         ctx.Tips.Tips(),
		Stories:      ctx.Stories.Stories(),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	data = append(data, '\n')

	if c.Output == "" {
		_, err := ctx.W().Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("Exported %d habit(s) to %s\n", len(out.Habits), c.Output)
	return nil
}

type ImportCmd struct {
	File        string `arg:"" help:"Export file to import ('-' for stdin)."`
	Preferences bool   `help:"Also replace preferences."`
}

func readExport(r io.Reader) (Export, error) {
	var in Export
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Export{}, fmt.Errorf("failed to decode export: %w", err)
	}
	if in.Version != exportVersion {
		return Export{}, fmt.Errorf("unsupported export version %d", in.Version)
	}
	return in, nil
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	in, err := readExport(r)
	if err != nil {
		return err
	}

	if in.Habits == nil {
		return errors.New("import contains no habits list")
	}
	seen := map[string]bool{}
	for i, h := range in.Habits {
		if h.ID == "" {
			return fmt.Errorf("habit %q has no id", h.Name)
		}
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit id %s", h.ID)
		}
		seen[h.ID] = true
		if !h.Category.Valid() {
			return fmt.Errorf("habit %q has unknown category %q", h.Name, h.Category)
		}
		if h.Completions == nil {
			in.Habits[i].Completions = []models.Completion{}
		}
	}

	if err := checkIDs("goal", in.Goals, func(g models.Goal) string { return g.ID }); err != nil {
		return err
	}
	if err := checkIDs("vision board", in.VisionBoards, func(b models.VisionBoard) string { return b.ID }); err != nil {
		return err
	}
	if err := checkIDs("tip", in.Tips, func(t models.Tip) string { return t.ID }); err != nil {
		return err
	}
	if err := checkIDs("story", in.Stories, func(s models.Story) string { return s.ID }); err != nil {
		return err
	}

	if c.Preferences {
		models.ApplyDefaultPreferences(&in.Preferences)
		if err := validation.Preferences(in.Preferences); err != nil {
			return fmt.Errorf("invalid preferences in import: %w", err)
		}
		if err := ctx.SavePreferences(in.Preferences); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
	}

	ctx.Registry.Replace(in.Habits)
	if err := importCollections(ctx, in); err != nil {
		return err
	}
	ctx.Printf("Imported %d habit(s).\n", len(in.Habits))
	if n := len(in.Goals) + len(in.VisionBoards) + len(in.Tips) + len(in.Stories); n > 0 {
		ctx.Printf("Imported %d goal(s), %d vision board(s), %d tip(s) and %d story(ies).\n",
			len(in.Goals), len(in.VisionBoards), len(in.Tips), len(in.Stories))
	}
	return nil
}

func checkIDs[T any](kind string, items []T, id func(T) string) error {
	seen := map[string]bool{}
	for _, item := range items {
		k := id(item)
		if k == "" {
			return fmt.Errorf("%s has no id", kind)
		}
		if seen[k] {
			return fmt.Errorf("duplicate %s id %s", kind, k)
		}
		seen[k] = true
	}
	return nil
}

// importCollections stores each collection present in the export and
// reloads the session from the store.
func importCollections(ctx *cli.Context, in Export) error {
	if in.Goals == nil && in.VisionBoards == nil && in.Tips == nil && in.Stories == nil {
		return nil
	}
	if in.Goals != nil {
		if err := ctx.Records.SaveGoals(in.Goals); err != nil {
			return fmt.Errorf("failed to save goals: %w", err)
		}
	}
	if in.VisionBoards != nil {
		if err := ctx.Records.SaveVisionBoards(in.VisionBoards); err != nil {
			return fmt.Errorf("failed to save vision boards: %w", err)
		}
	}
	if in.Tips != nil {
		if err := ctx.Records.SaveTips(in.Tips); err != nil {
			return fmt.Errorf("failed to save tips: %w", err)
		}
	}
	if in.Stories != nil {
		if err := ctx.Records.SaveStories(in.Stories); err != nil {
			return fmt.Errorf("failed to save stories: %w", err)
		}
	}
	ctx.Open()
	return nil
}
