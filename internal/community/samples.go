package community

import "github.com/julianstephens/elevate/internal/models"

// Samples are the stories a new feed starts with.
func Samples() []models.Story {
	return []models.Story{
		{
			Title: "From the Couch to My First 5K",
			Content: "Half a year ago I could not jog for a minute without stopping. I started by walking ten minutes a day, " +
				"then added short running intervals each week. The hardest part was believing I could be a runner at all. " +
				"Last Saturday I crossed the finish line of my first 5K. Be patient with yourself: consistency beats perfection.",
			Category:         models.StoryHealth,
			IsAnonymous:      true,
			Milestone:        "Completed first 5K",
			InspirationLevel: models.InspirationTransformational,
			Tags:             []string{"running", "fitness", "perseverance", "beginner"},
		},
		{
			Title: "Learning to Say No at Work",
			Content: "I used to accept every request, hoping it would make me indispensable. Instead my work suffered and I was " +
				"exhausted. Now I check each request against my priorities and answer with 'let me check my capacity' " +
				"instead of an automatic yes. My work is better and my colleagues respect the boundaries.",
			Category:         models.StoryCareer,
			IsAnonymous:      true,
			Milestone:        "Cut overtime in half",
			InspirationLevel: models.InspirationMotivating,
			Tags:             []string{"boundaries", "workplace", "stress management", "communication"},
		},
		{
			Title: "Three Minutes of Quiet a Day",
			Content: "Anxiety made small decisions feel enormous. A friend suggested meditation and I committed to three " +
				"minutes of breathing a day for thirty days. Slowly I learned to pause before reacting and sleep came easier. " +
				"Eight months later it is the part of my routine I protect the most.",
			Category:         models.StoryMentalHealth,
			IsAnonymous:      true,
			Milestone:        "8 months of daily meditation",
			InspirationLevel: models.InspirationTransformational,
			Tags:             []string{"meditation", "anxiety", "mindfulness", "mental health"},
		},
		{
			Title: "Climbing Out of Debt",
			Content: "Two years ago I had almost nothing in the bank and maxed-out cards. I wrote a simple budget, tracked every " +
				"expense and took a weekend job, sending every spare dollar to the debt. Progress was slow but steady. " +
				"Today I have an emergency fund and no debt besides the mortgage.",
			Category:         models.StoryFinancial,
			IsAnonymous:      true,
			Milestone:        "Debt-free in 18 months",
			InspirationLevel: models.InspirationTransformational,
			Tags:             []string{"debt", "budgeting", "financial planning", "discipline"},
		},
	}
}

// Seed adds the sample stories whose titles are not already present and
// returns how many were added. Later samples end up on top, so they are
// added in reverse to keep the list order.
func (f *Feed) Seed() int {
	samples := Samples()
	added := 0
	for i := len(samples) - 1; i >= 0; i-- {
		if _, ok := f.Find(samples[i].Title); ok {
			continue
		}
		if _, err := f.Add(samples[i]); err != nil {
			continue
		}
		added++
	}
	return added
}

// Template is a writing prompt for a new story.
type Template struct {
	Title         string
	Prompt        string
	Category      models.StoryCategory
	SuggestedTags []string
}

func Templates() []Template {
	return []Template{
		{
			Title:         "Overcoming a Challenge",
			Prompt:        "Describe a challenge you faced and how you got through it. What worked, and what would you tell someone facing the same thing?",
			Category:      models.StoryGeneral,
			SuggestedTags: []string{"challenge", "growth", "perseverance"},
		},
		{
			Title:         "Building a New Habit",
			Prompt:        "Tell us about a habit you built. How did you start, what kept you going and what changed?",
			Category:      models.StoryHealth,
			SuggestedTags: []string{"habits", "routine", "consistency"},
		},
		{
			Title:         "Career Breakthrough",
			Prompt:        "Share a moment that changed your career. What did you learn from it?",
			Category:      models.StoryCareer,
			SuggestedTags: []string{"career", "professional growth", "breakthrough"},
		},
		{
			Title:         "Mindfulness Journey",
			Prompt:        "Which meditation or mindfulness practices helped you find calm and clarity?",
			Category:      models.StoryMentalHealth,
			SuggestedTags: []string{"mindfulness", "meditation", "mental health"},
		},
	}
}
