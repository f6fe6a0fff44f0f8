package models

// CategoryRollup summarizes the active habits of one category.
type CategoryRollup struct {
	Category         HabitCategory `json:"category"`
	HabitCount       int           `json:"habit_count"`
	TotalCompletions int           `json:"total_completions"`
	AverageStreak    int           `json:"average_streak"` // truncated
}

// RollupByCategory groups active habits by category in declaration order,
// skipping categories with no active habit.
func RollupByCategory(habits []Habit) []CategoryRollup {
	var out []CategoryRollup
	for _, category := range AllHabitCategories() {
		r := CategoryRollup{Category: category}
		streakSum := 0
		for _, h := range habits {
			if !h.IsActive || h.Category != category {
				continue
			}
			r.HabitCount++
			r.TotalCompletions += len(h.Completions)
			streakSum += h.Streak
		}
		if r.HabitCount == 0 {
			continue
		}
		r.AverageStreak = streakSum / r.HabitCount
		out = append(out, r)
	}
	return out
}
