package constants

const (
	// Preference keys, as accepted by `elevate settings`
	SettingNotificationsEnabled   = "notifications_enabled"
	SettingDailyReminderTime      = "daily_reminder_time"
	SettingPreferredCategories    = "preferred_categories"
	SettingWeekStartsOnMonday     = "week_starts_on_monday"
	SettingShowMotivationalQuotes = "show_motivational_quotes"
	SettingTimezone               = "timezone"

	// Default preference values
	DefaultNotificationsEnabled   = true
	DefaultDailyReminderTime      = "09:00"
	DefaultWeekStartsOnMonday     = true
	DefaultShowMotivationalQuotes = true
	DefaultTimezone               = "Local" // Use system local timezone by default
)
