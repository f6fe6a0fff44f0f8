package constants

import "time"

const (
	AppName             = "elevate"
	DefaultKeyringUser  = "database-connection"
	DefaultConfigDir    = "~/.config/elevate"
	DefaultConfigPath   = "~/.config/elevate/elevate.db"
	DefaultSettingsFile = "~/.config/elevate/config.yaml"
	Version             = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Day is the length of a calendar day ignoring DST transitions.
	Day = 24 * time.Hour

	// Record store collection keys
	HabitsKey       = "elevate_habits"
	PreferencesKey  = "elevate_user_preferences"
	GoalsKey        = "elevate_goals"
	VisionBoardsKey = "elevate_vision_boards"
	TipsKey         = "elevate_tips"
	StoriesKey      = "elevate_community_stories"

	// Habit defaults
	DefaultTargetValue = 1
	// DefaultCompletionValue is what a completion records when no value is given
	DefaultCompletionValue = 1
	DefaultUnit            = "times"
	DefaultTopHabits       = 5
	MaxHabitNameLen        = 100

	// Goal, tip and story defaults
	DefaultUpcomingDays   = 7
	DefaultRecentLimit    = 5
	DefaultTipReadMinutes = 3
	QuickReadMinutes      = 3
	DailyTipMaxMinutes    = 5
	MinStoryLength        = 50
	MaxStoryLength        = 2000

	// MonthlySeriesCap bounds the monthly chart for display stability
	MonthlySeriesCap = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "elevate-"
	BackupFileSuffix = ".db"

	// Logging constants
	LogDirName           = "logs"
	LogFileName          = "elevate.log"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28

	// Environment variables
	EnvDBConnection = "ELEVATE_DB_CONNECTION"
	EnvTestPostgres = "ELEVATE_TEST_POSTGRES"
)

// Backend names accepted by --backend
const (
	BackendSQLite   = "sqlite"
	BackendJSON     = "json"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

// CollectionKeys lists every record the application owns.
func CollectionKeys() []string {
	return []string{HabitsKey, GoalsKey, VisionBoardsKey, TipsKey, StoriesKey, PreferencesKey}
}
