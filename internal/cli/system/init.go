package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/cli/data"
	"github.com/julianstephens/elevate/internal/config"
	"github.com/julianstephens/elevate/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete existing local storage before initializing."`
	Seed  bool `help:"Add starter habits, tips and stories."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized elevate storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.SettingsFile != "" {
		path := config.ExpandPath(ctx.SettingsFile)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := config.Save(path, ctx.Config); err != nil {
				return err
			}
			ctx.Printf("Wrote settings file: %s\n", path)
		}
	}

	ctx.Open()
	if c.Seed {
		ctx.Printf("Added %d starter habit(s).\n", data.SeedStarterHabits(ctx))
		data.SeedSamples(ctx)
	}
	return nil
}

// reset removes the storage file or directory so Init starts clean.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return errors.New("--force is not supported for PostgreSQL; drop the schema manually")
	}

	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing storage: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing storage: %w", err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete existing storage: %w", err)
	}
	ctx.Printf("Deleted existing storage at: %s\n", path)
	return nil
}
