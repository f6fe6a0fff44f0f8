package data

import (
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/models"
)

// starterHabits are offered to new users.
var starterHabits = []models.Habit{
	{Name: "Drink Water", Description: "Stay hydrated through the day", Category: models.CategoryHealth, TargetValue: 8, Unit: "glasses"},
	{Name: "Meditate", Description: "A few quiet minutes", Category: models.CategoryMindfulness, TargetValue: 10, Unit: "minutes"},
	{Name: "Read", Description: "Read something worthwhile", Category: models.CategoryLearning, TargetValue: 20, Unit: "pages"},
	{Name: "Walk", Description: "Get outside and move", Category: models.CategoryHealth, TargetValue: 30, Unit: "minutes"},
	{Name: "Plan Tomorrow", Description: "Write down the three most important tasks", Category: models.CategoryProductivity, TargetValue: 1, Unit: "times"},
}

// SeedStarterHabits adds the starter habits not already present by name
// and returns how many were added.
func SeedStarterHabits(ctx *cli.Context) int {
	added := 0
	for _, h := range starterHabits {
		if _, ok := ctx.Registry.FindByName(h.Name); ok {
			continue
		}
		h.Frequency = models.FrequencyDaily
		h.IsActive = true
		ctx.Registry.Add(h)
		added++
	}
	return added
}

// SeedSamples adds the sample tips and stories not already present and
// reports what was added.
func SeedSamples(ctx *cli.Context) {
	if n := ctx.Tips.Seed(); n > 0 {
		ctx.Printf("Added %d sample tip(s).\n", n)
	}
	if n := ctx.Stories.Seed(); n > 0 {
		ctx.Printf("Added %d sample story(ies).\n", n)
	}
}

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *cli.Context) error {
	if added := SeedStarterHabits(ctx); added == 0 {
		ctx.Println("Starter habits are already present.")
	} else {
		ctx.Printf("Added %d starter habit(s). Run 'elevate habit list' to see them.\n", added)
	}
	SeedSamples(ctx)
	return nil
}
