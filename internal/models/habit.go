package models

import (
	"time"

	"github.com/julianstephens/elevate/internal/utils"
)

// Habit represents a recurring behavior tracked day by day.
//
// Streak and LongestStreak are persisted for convenience but are always
// re-derived from Completions by RecomputeStreak. LongestStreak is a
// high-water mark: it never decreases, even when old completions are removed.
type Habit struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Category          HabitCategory  `json:"category"`
	Frequency         HabitFrequency `json:"frequency"`
	TargetValue       int            `json:"target_value"`
	Unit              string         `json:"unit"`
	ReminderTime      *string        `json:"reminder_time,omitempty"` // HH:MM format
	IsActive          bool           `json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	Streak            int            `json:"streak"`
	LongestStreak     int            `json:"longest_streak"`
	Completions       []Completion   `json:"completions"`
	MotivationalQuote *string        `json:"motivational_quote,omitempty"`
}

// Completion is one recorded instance of performing a habit.
type Completion struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
	Notes *string   `json:"notes,omitempty"`
}

// RecomputeStreak derives the current streak from the completion history,
// counting consecutive calendar days ending today in now's location.
// Multiple completions on the same day count once. It updates and returns
// (Streak, LongestStreak).
func (h *Habit) RecomputeStreak(now time.Time) (int, int) {
	dates := make([]time.Time, len(h.Completions))
	for i, c := range h.Completions {
		dates[i] = c.Date
	}
	current := utils.ConsecutiveDays(dates, now)

	h.Streak = current
	if current > h.LongestStreak {
		h.LongestStreak = current
	}
	return h.Streak, h.LongestStreak
}

// IsCompletedToday reports whether at least one completion falls on now's calendar day.
func (h Habit) IsCompletedToday(now time.Time) bool {
	return len(h.CompletionsOn(now)) > 0
}

// CompletionsOn returns the completions recorded on day's calendar day.
func (h Habit) CompletionsOn(day time.Time) []Completion {
	var out []Completion
	for _, c := range h.Completions {
		if utils.SameDay(c.Date, day, day.Location()) {
			out = append(out, c)
		}
	}
	return out
}

// TotalValueOn sums the achieved values recorded on day's calendar day.
func (h Habit) TotalValueOn(day time.Time) int {
	total := 0
	for _, c := range h.CompletionsOn(day) {
		total += c.Value
	}
	return total
}

// PeriodStart returns the first instant of the period containing now.
func PeriodStart(period TimePeriod, now time.Time, weekStart time.Weekday) time.Time {
	switch period {
	case PeriodMonth:
		return utils.StartOfMonth(now)
	case PeriodYear:
		return utils.StartOfYear(now)
	default:
		return utils.StartOfWeek(now, weekStart)
	}
}

// CompletionRate sums the values achieved since the start of the period and
// divides by the number of days elapsed plus one. The result is not capped:
// overachievement yields a rate above 1.0. It returns 0 on the first day of a
// period and whenever the clock sits before the period start.
func (h Habit) CompletionRate(period TimePeriod, now time.Time, weekStart time.Weekday) float64 {
	start := PeriodStart(period, now, weekStart)
	elapsed := utils.DaysBetween(start, now)
	if elapsed <= 0 {
		return 0.0
	}

	total := 0
	for _, c := range h.Completions {
		if !c.Date.Before(start) {
			total += c.Value
		}
	}
	return float64(total) / float64(elapsed+1)
}

// Clone returns a deep copy that shares no slices or pointers with h.
func (h Habit) Clone() Habit {
	out := h
	out.ReminderTime = cloneString(h.ReminderTime)
	out.MotivationalQuote = cloneString(h.MotivationalQuote)
	if h.Completions != nil {
		out.Completions = make([]Completion, len(h.Completions))
		for i, c := range h.Completions {
			c.Notes = cloneString(c.Notes)
			out.Completions[i] = c
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
