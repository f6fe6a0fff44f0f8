package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/utils"
)

// Preferences holds user-facing settings persisted alongside the habits.
type Preferences struct {
	NotificationsEnabled   bool     `json:"notifications_enabled"`
	DailyReminderTime      string   `json:"daily_reminder_time"` // HH:MM format
	PreferredCategories    []string `json:"preferred_categories"`
	WeekStartsOnMonday     bool     `json:"week_starts_on_monday"`
	ShowMotivationalQuotes bool     `json:"show_motivational_quotes"`
	Timezone               string   `json:"timezone"` // IANA name or "Local"
}

// DefaultPreferences returns the preferences used when nothing is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		NotificationsEnabled:   constants.DefaultNotificationsEnabled,
		DailyReminderTime:      constants.DefaultDailyReminderTime,
		PreferredCategories:    []string{},
		WeekStartsOnMonday:     constants.DefaultWeekStartsOnMonday,
		ShowMotivationalQuotes: constants.DefaultShowMotivationalQuotes,
		Timezone:               constants.DefaultTimezone,
	}
}

// WeekStart returns the first day of the week under these preferences.
func (p Preferences) WeekStart() time.Weekday {
	return utils.WeekStart(p.WeekStartsOnMonday)
}

// Location resolves the configured timezone, falling back to the system zone.
func (p Preferences) Location() *time.Location {
	loc, err := utils.LoadLocation(p.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// PreferencesToMap converts preferences to a map of key-value pairs.
func PreferencesToMap(p Preferences) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled:   strconv.FormatBool(p.NotificationsEnabled),
		constants.SettingDailyReminderTime:      p.DailyReminderTime,
		constants.SettingPreferredCategories:    strings.Join(p.PreferredCategories, ","),
		constants.SettingWeekStartsOnMonday:     strconv.FormatBool(p.WeekStartsOnMonday),
		constants.SettingShowMotivationalQuotes: strconv.FormatBool(p.ShowMotivationalQuotes),
		constants.SettingTimezone:               p.Timezone,
	}
}

// ApplyPreference sets a single preference from its string form.
func ApplyPreference(p *Preferences, key, value string) error {
	switch key {
	case constants.SettingNotificationsEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		p.NotificationsEnabled = b
	case constants.SettingDailyReminderTime:
		if !utils.ValidateTimeFormat(value) {
			return fmt.Errorf("invalid time format for %s (expected HH:MM): %q", key, value)
		}
		p.DailyReminderTime = value
	case constants.SettingPreferredCategories:
		p.PreferredCategories = []string{}
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			c, err := ParseHabitCategory(part)
			if err != nil {
				return err
			}
			p.PreferredCategories = append(p.PreferredCategories, string(c))
		}
	case constants.SettingWeekStartsOnMonday:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		p.WeekStartsOnMonday = b
	case constants.SettingShowMotivationalQuotes:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		p.ShowMotivationalQuotes = b
	case constants.SettingTimezone:
		if !utils.ValidateTimezone(value) {
			return fmt.Errorf("invalid timezone: %q", value)
		}
		p.Timezone = value
	default:
		return fmt.Errorf("unknown setting: %q", key)
	}
	return nil
}

// ApplyDefaultPreferences fills values a partially written record left empty.
func ApplyDefaultPreferences(p *Preferences) {
	if p.DailyReminderTime == "" {
		p.DailyReminderTime = constants.DefaultDailyReminderTime
	}
	if p.Timezone == "" {
		p.Timezone = constants.DefaultTimezone
	}
	if p.PreferredCategories == nil {
		p.PreferredCategories = []string{}
	}
}
