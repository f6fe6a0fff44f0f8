package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/backup"
	"github.com/julianstephens/elevate/internal/community"
	"github.com/julianstephens/elevate/internal/config"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/goals"
	"github.com/julianstephens/elevate/internal/keyring"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/storage/badger"
	"github.com/julianstephens/elevate/internal/storage/postgres"
	"github.com/julianstephens/elevate/internal/storage/sqlite"
	"github.com/julianstephens/elevate/internal/tips"
	"github.com/julianstephens/elevate/internal/tracker"
	"github.com/julianstephens/elevate/internal/vision"
)

// Context is shared by every command. Store is set before parsing; the
// remaining services are built by Open once the store has loaded.
type Context struct {
	Store        storage.Provider
	Config       config.Config
	SettingsFile string
	// ConfigDir holds logs and the settings file. Empty in tests.
	ConfigDir string

	Records   *storage.RecordStore
	Prefs     models.Preferences
	Registry  *tracker.Registry
	Projector *analytics.Projector
	Goals     *goals.Planner
	Vision    *vision.Journal
	Tips      *tips.Library
	Stories   *community.Feed

	// Clock overrides the wall clock. Its result is converted to the
	// preferred timezone.
	Clock func() time.Time
	Out   io.Writer
}

// Open wires the record store, registry, projector and the goal, vision,
// tip and story collections over Store.
func (c *Context) Open() {
	c.Records = storage.NewRecordStore(c.Store)
	c.Prefs = c.Records.LoadPreferences()
	// Drop any previous session so rebuild does not write it over the store.
	c.Registry = nil
	c.rebuild()
	c.Registry.Load()
	c.openCollections()
}

func (c *Context) openCollections() {
	c.Goals = goals.New(c.Records, goals.WithClock(c.Now))
	c.Goals.Load()
	c.Vision = vision.New(c.Records, vision.WithClock(c.Now), vision.WithWeekStart(c.Prefs.WeekStart()))
	c.Vision.Load()
	c.Tips = tips.New(c.Records, tips.WithClock(c.Now))
	c.Tips.Load()
	c.Stories = community.New(c.Records, community.WithClock(c.Now))
	c.Stories.Load()
}

// Now is the current time in the preferred timezone.
func (c *Context) Now() time.Time {
	base := c.Clock
	if base == nil {
		base = time.Now
	}
	return base().In(c.Prefs.Location())
}

// rebuild reconstructs the registry after preferences change, keeping the
// in-memory collection.
func (c *Context) rebuild() {
	loc := c.Prefs.Location()
	base := c.Clock
	if base == nil {
		base = time.Now
	}
	clock := func() time.Time { return base().In(loc) }

	opts := []tracker.Option{
		tracker.WithClock(clock),
		tracker.WithWeekStart(c.Prefs.WeekStart()),
	}
	if !c.Prefs.ShowMotivationalQuotes {
		opts = append(opts, tracker.WithQuotes(nil))
	}

	var current []models.Habit
	if c.Registry != nil {
		current = c.Registry.Habits()
	}
	c.Registry = tracker.New(c.Records, opts...)
	if current != nil {
		c.Registry.Replace(current)
	}
	c.Projector = analytics.New(c.Registry,
		analytics.WithClock(clock),
		analytics.WithWeekStart(c.Prefs.WeekStart()),
	)
}

// SavePreferences persists p and applies it to the running session.
func (c *Context) SavePreferences(p models.Preferences) error {
	if err := c.Records.SavePreferences(p); err != nil {
		return err
	}
	c.Prefs = p
	c.rebuild()
	c.openCollections()
	return nil
}

func (c *Context) W() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.W(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.W(), args...)
}

// FindHabit resolves a habit by name or ID.
func (c *Context) FindHabit(name string) (models.Habit, error) {
	h, ok := c.Registry.FindByName(name)
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	return h, nil
}

// BackupManager returns a backup manager when the store is a sqlite file.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, errors.New("backups are only supported for the sqlite backend")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackupEnabled() {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// IsPostgresConn reports whether target looks like a PostgreSQL connection string.
func IsPostgresConn(target string) bool {
	return strings.HasPrefix(target, "postgres://") ||
		strings.HasPrefix(target, "postgresql://") ||
		strings.Contains(target, "host=")
}

// NewProvider builds the storage backend named by backend. For postgres,
// target is the connection string; the password comes from the OS keyring
// when one is stored for the connection's user.
func NewProvider(backend, target string, cfg config.Config) (storage.Provider, error) {
	switch backend {
	case constants.BackendSQLite:
		return sqlite.NewStore(config.ExpandPath(target)), nil
	case constants.BackendJSON:
		return storage.NewJSONStore(config.ExpandPath(target)), nil
	case constants.BackendBadger:
		bc := badger.DefaultConfig(config.ExpandPath(target))
		bc.SyncWrites = cfg.BadgerSyncWrites()
		if cfg.Badger.GCDiscardRatio > 0 {
			bc.GCDiscardRatio = cfg.Badger.GCDiscardRatio
		}
		bc.Logger = logger.Slog()
		return badger.NewStore(bc), nil
	case constants.BackendPostgres:
		if target == "" || !IsPostgresConn(target) {
			target = os.Getenv(constants.EnvDBConnection)
		}
		if target == "" {
			return nil, fmt.Errorf("no PostgreSQL connection string: pass --config or set %s", constants.EnvDBConnection)
		}
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.New("PostgreSQL connection strings with embedded credentials are not allowed; store the password with 'elevate keyring set' or use .pgpass")
			}
			return nil, err
		}
		password, err := keyring.GetPassword(postgres.User(target))
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return postgres.New(target, password), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// DefaultTarget returns the conventional storage location for a backend.
func DefaultTarget(backend string) string {
	switch backend {
	case constants.BackendJSON:
		return constants.DefaultConfigDir + "/elevate.json"
	case constants.BackendBadger:
		return constants.DefaultConfigDir + "/badger"
	case constants.BackendPostgres:
		return ""
	default:
		return constants.DefaultConfigPath
	}
}

// FormatRate renders a completion rate as a percentage.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}
