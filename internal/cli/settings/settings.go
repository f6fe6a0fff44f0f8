package settings

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled   *bool   `help:"Enable or disable notifications."`
	DailyReminderTime      *string `help:"Daily reminder time (HH:MM)."`
	PreferredCategories    *string `help:"Comma-separated preferred categories."`
	WeekStartsOnMonday     *bool   `help:"Start weeks on Monday instead of Sunday."`
	ShowMotivationalQuotes *bool   `help:"Attach motivational quotes to habits."`
	Timezone               *string `help:"IANA timezone used to decide what \"today\" is, or Local."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	prefs := ctx.Prefs

	if c.List {
		values := models.PreferencesToMap(prefs)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		ctx.Println("Current Settings:")
		for _, k := range keys {
			v := values[k]
			if v == "" {
				v = "(none)"
			}
			ctx.Printf("  %-26s %s\n", k+":", v)
		}
		return nil
	}

	changes := map[string]string{}
	if c.NotificationsEnabled != nil {
		changes[constants.SettingNotificationsEnabled] = strconv.FormatBool(*c.NotificationsEnabled)
	}
	if c.DailyReminderTime != nil {
		changes[constants.SettingDailyReminderTime] = *c.DailyReminderTime
	}
	if c.PreferredCategories != nil {
		changes[constants.SettingPreferredCategories] = *c.PreferredCategories
	}
	if c.WeekStartsOnMonday != nil {
		changes[constants.SettingWeekStartsOnMonday] = strconv.FormatBool(*c.WeekStartsOnMonday)
	}
	if c.ShowMotivationalQuotes != nil {
		changes[constants.SettingShowMotivationalQuotes] = strconv.FormatBool(*c.ShowMotivationalQuotes)
	}
	if c.Timezone != nil {
		changes[constants.SettingTimezone] = *c.Timezone
	}

	if len(changes) == 0 {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	for key, value := range changes {
		if err := models.ApplyPreference(&prefs, key, value); err != nil {
			return err
		}
	}
	if err := validation.Preferences(prefs); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := ctx.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	ctx.Println("Settings updated successfully.")
	return nil
}
