package models

import (
	"fmt"
	"strings"
)

// HabitCategory groups habits for filtering and rollups.
type HabitCategory string

const (
	CategoryHealth       HabitCategory = "health"
	CategoryMindfulness  HabitCategory = "mindfulness"
	CategoryProductivity HabitCategory = "productivity"
	CategoryLearning     HabitCategory = "learning"
	CategorySocial       HabitCategory = "social"
	CategoryCreativity   HabitCategory = "creativity"
	CategorySelfCare     HabitCategory = "self_care"
	CategoryNutrition    HabitCategory = "nutrition"
)

var categoryLabels = map[HabitCategory]string{
	CategoryHealth:       "Health & Fitness",
	CategoryMindfulness:  "Mindfulness",
	CategoryProductivity: "Productivity",
	CategoryLearning:     "Learning",
	CategorySocial:       "Social",
	CategoryCreativity:   "Creativity",
	CategorySelfCare:     "Self Care",
	CategoryNutrition:    "Nutrition",
}

// AllHabitCategories returns every category in declaration order.
func AllHabitCategories() []HabitCategory {
	return []HabitCategory{
		CategoryHealth,
		CategoryMindfulness,
		CategoryProductivity,
		CategoryLearning,
		CategorySocial,
		CategoryCreativity,
		CategorySelfCare,
		CategoryNutrition,
	}
}

// Label returns the display name of the category.
func (c HabitCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c HabitCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseHabitCategory accepts either the key ("self_care") or the label ("Self Care").
func ParseHabitCategory(s string) (HabitCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllHabitCategories() {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown habit category: %q", s)
}

// HabitFrequency is the intended cadence of a habit. It is advisory only;
// streaks are always counted in consecutive days.
type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
	FrequencyCustom HabitFrequency = "custom"
)

// Description returns a human-readable cadence.
func (f HabitFrequency) Description() string {
	switch f {
	case FrequencyDaily:
		return "Every day"
	case FrequencyWeekly:
		return "Once a week"
	case FrequencyCustom:
		return "Custom schedule"
	default:
		return string(f)
	}
}

// ParseFrequency parses a frequency name case-insensitively.
func ParseFrequency(s string) (HabitFrequency, error) {
	switch HabitFrequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyCustom:
		return FrequencyCustom, nil
	}
	return "", fmt.Errorf("unknown frequency: %q", s)
}

// TimePeriod is an aggregation window anchored to the current date.
type TimePeriod string

const (
	PeriodWeek  TimePeriod = "week"
	PeriodMonth TimePeriod = "month"
	PeriodYear  TimePeriod = "year"
)

// AllTimePeriods returns the supported periods, shortest first.
func AllTimePeriods() []TimePeriod {
	return []TimePeriod{PeriodWeek, PeriodMonth, PeriodYear}
}

// ParseTimePeriod parses a period name case-insensitively.
func ParseTimePeriod(s string) (TimePeriod, error) {
	switch TimePeriod(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	}
	return "", fmt.Errorf("unknown period: %q", s)
}
