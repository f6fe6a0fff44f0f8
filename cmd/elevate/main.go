package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/cli/backups"
	"github.com/julianstephens/elevate/internal/cli/data"
	"github.com/julianstephens/elevate/internal/cli/goals"
	"github.com/julianstephens/elevate/internal/cli/habits"
	"github.com/julianstephens/elevate/internal/cli/settings"
	"github.com/julianstephens/elevate/internal/cli/stats"
	"github.com/julianstephens/elevate/internal/cli/stories"
	"github.com/julianstephens/elevate/internal/cli/system"
	"github.com/julianstephens/elevate/internal/cli/tips"
	"github.com/julianstephens/elevate/internal/cli/vision"
	"github.com/julianstephens/elevate/internal/config"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Storage path, or a PostgreSQL connection string for the postgres backend. Connection strings must NOT embed a password; use the OS keyring or .pgpass." env:"ELEVATE_CONFIG"`
	Backend      string `help:"Storage backend: sqlite, json, badger or postgres." env:"ELEVATE_BACKEND"`
	Debug        bool   `help:"Enable debug logging to stderr." env:"ELEVATE_DEBUG"`
	SettingsFile string `help:"YAML settings file." type:"path" default:"~/.config/elevate/config.yaml"`

	Init     system.InitCmd       `cmd:"" help:"Initialize elevate storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits and record completions."`
	Stats    stats.StatsCmd       `cmd:"" help:"Show streaks, rates and category totals."`
	Chart    stats.ChartCmd       `cmd:"" help:"Chart a habit's progress for this week or month."`
	Goal     goals.GoalCmd        `cmd:"" help:"Set and track personal goals."`
	Vision   vision.VisionCmd     `cmd:"" help:"Keep a daily vision board."`
	Tip      tips.TipCmd          `cmd:"" help:"Browse and read personal growth tips."`
	Story    stories.StoryCmd     `cmd:"" help:"Read and share community stories."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage preferences."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage sqlite database backups."`
	Data struct {
		Clear  data.ClearCmd  `cmd:"" help:"Delete all habits (and with --all, every collection and preferences)."`
		Export data.ExportCmd `cmd:"" help:"Export every collection and preferences as JSON."`
		Import data.ImportCmd `cmd:"" help:"Replace collections from an export file."`
		Seed   data.SeedCmd   `cmd:"" help:"Add starter habits, tips and stories."`
	} `cmd:"" help:"Import, export and reset data."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a database password in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored password, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a stored password."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
}

// resolveStorage applies flag-over-file precedence to the backend and its target.
func resolveStorage(cfg config.Config) (backend, target string) {
	backend = CLI.Backend
	if backend == "" {
		backend = cfg.Backend
	}
	target = CLI.Config
	if target == "" {
		if backend == cfg.Backend && cfg.Path != "" {
			target = cfg.Path
		} else {
			target = cli.DefaultTarget(backend)
		}
	}
	return backend, target
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit streaks and completion analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          constants.Version,
			"goal_categories":  models.GoalCategoryKeys(),
			"tip_categories":   models.TipCategoryKeys(),
			"story_categories": models.StoryCategoryKeys(),
			"moods":            models.MoodKeys(),
		},
	)

	cfg, err := config.Load(CLI.SettingsFile)
	if err != nil {
		errors.Warn("Ignoring settings file", err)
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	configDir := config.ExpandPath(constants.DefaultConfigDir)
	if err := logger.Init(logger.Config{
		Debug:      cfg.Debug,
		ConfigDir:  configDir,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		errors.Warn("Logging disabled", err)
	}

	backend, target := resolveStorage(cfg)
	cfg.Backend = backend
	logger.Debug("Opening storage", "backend", backend)

	store, err := cli.NewProvider(backend, target, cfg)
	if err != nil {
		errors.Fatalf("failed to open %s storage: %v", backend, err)
	}

	appCtx := &cli.Context{
		Store:        store,
		Config:       cfg,
		SettingsFile: CLI.SettingsFile,
		ConfigDir:    configDir,
	}

	// init creates storage itself; everything else needs it loaded.
	if !strings.HasPrefix(ctx.Command(), "init") {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		appCtx.Open()
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	errors.Fatal(err)
}
