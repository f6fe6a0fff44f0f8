package tips

import "github.com/julianstephens/elevate/internal/models"

const sampleAuthor = "Elevate Team"

// Samples are the tips a new library starts with.
func Samples() []models.Tip {
	return []models.Tip{
		{
			Title: "A Five-Minute Morning Sit",
			Content: "Before the phone, before the news, sit somewhere quiet for five minutes and follow your breath. " +
				"When a thought pulls you away, notice it and come back to the next breath. " +
				"The goal is not an empty mind but a calmer start to the day.",
			Category:    models.TipMindfulness,
			Difficulty:  models.DifficultyBeginner,
			ReadMinutes: 2,
			Tags:        []string{"meditation", "morning routine", "stress relief"},
			Author:      sampleAuthor,
			ActionItems: []string{
				"Set aside five minutes after waking",
				"Sit comfortably somewhere quiet",
				"Return to the breath whenever you drift",
				"Keep it up for one week",
			},
		},
		{
			Title: "Work in Focused Sprints",
			Content: "Pick one task, set a timer for 25 minutes and work on nothing else until it rings. " +
				"Take a five-minute break, then go again. After four sprints take a longer rest. " +
				"The timer turns a vague intention into a small, finishable commitment.",
			Category:    models.TipProductivity,
			Difficulty:  models.DifficultyBeginner,
			ReadMinutes: 3,
			Tags:        []string{"time management", "focus", "work efficiency"},
			Author:      sampleAuthor,
			ActionItems: []string{
				"Choose the most important task",
				"Run a 25-minute timer",
				"Silence notifications until it rings",
				"Rest five minutes and repeat",
			},
		},
		{
			Title: "Listen to Understand",
			Content: "Strong relationships grow from attention. When someone talks, put the phone away and listen " +
				"to understand rather than to reply. Ask one follow-up question and remember what you heard " +
				"for next time. Keep the small promises you make.",
			Category:    models.TipRelationships,
			Difficulty:  models.DifficultyIntermediate,
			ReadMinutes: 4,
			Tags:        []string{"communication", "empathy", "connection"},
			Author:      sampleAuthor,
			ActionItems: []string{
				"Give one conversation a day your full attention",
				"Ask a thoughtful follow-up question",
				"Follow through on what you offered to do",
			},
		},
	}
}

// Seed adds the sample tips whose titles are not already present and
// returns how many were added.
func (l *Library) Seed() int {
	added := 0
	for _, t := range Samples() {
		if _, ok := l.Find(t.Title); ok {
			continue
		}
		l.Add(t)
		added++
	}
	return added
}
