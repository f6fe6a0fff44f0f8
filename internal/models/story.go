package models

import "time"

// Story is a community success story. Anonymous stories never carry an
// author name.
type Story struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Content          string           `json:"content"`
	Category         StoryCategory    `json:"category"`
	IsAnonymous      bool             `json:"is_anonymous"`
	AuthorName       string           `json:"author_name,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	Likes            int              `json:"likes"`
	LikedByUser      bool             `json:"liked_by_user"`
	Tags             []string         `json:"tags"`
	Milestone        string           `json:"milestone,omitempty"`
	InspirationLevel InspirationLevel `json:"inspiration_level"`
}

const anonymousAuthor = "Anonymous"

// DisplayAuthor is the byline shown with the story.
func (s Story) DisplayAuthor() string {
	if s.IsAnonymous || s.AuthorName == "" {
		return anonymousAuthor
	}
	return s.AuthorName
}

// ToggleLike flips the user's like and adjusts the count to match.
func (s *Story) ToggleLike() {
	if s.LikedByUser {
		s.Likes--
	} else {
		s.Likes++
	}
	s.LikedByUser = !s.LikedByUser
}

func (s Story) Clone() Story {
	s.Tags = append([]string{}, s.Tags...)
	return s
}

type StoryCategory string

const (
	StoryHealth        StoryCategory = "health"
	StoryMentalHealth  StoryCategory = "mental_health"
	StoryCareer        StoryCategory = "career"
	StoryRelationships StoryCategory = "relationships"
	StoryAddiction     StoryCategory = "addiction"
	StoryEducation     StoryCategory = "education"
	StoryCreative      StoryCategory = "creative"
	StorySpiritual     StoryCategory = "spiritual"
	StoryFinancial     StoryCategory = "financial"
	StoryGeneral       StoryCategory = "general"
)

var storyCategories = newEnum("story category",
	enumPair[StoryCategory]{StoryHealth, "Health & Fitness"},
	enumPair[StoryCategory]{StoryMentalHealth, "Mental Health"},
	enumPair[StoryCategory]{StoryCareer, "Career Growth"},
	enumPair[StoryCategory]{StoryRelationships, "Relationships"},
	enumPair[StoryCategory]{StoryAddiction, "Overcoming Addiction"},
	enumPair[StoryCategory]{StoryEducation, "Education & Learning"},
	enumPair[StoryCategory]{StoryCreative, "Creative Journey"},
	enumPair[StoryCategory]{StorySpiritual, "Spiritual Growth"},
	enumPair[StoryCategory]{StoryFinancial, "Financial Freedom"},
	enumPair[StoryCategory]{StoryGeneral, "General Growth"},
)

func AllStoryCategories() []StoryCategory                { return storyCategories.all() }
func (c StoryCategory) Label() string                    { return storyCategories.label(c) }
func (c StoryCategory) Valid() bool                      { return storyCategories.valid(c) }
func ParseStoryCategory(s string) (StoryCategory, error) { return storyCategories.parse(s) }
func StoryCategoryKeys() string                          { return storyCategories.keys() }

type InspirationLevel string

const (
	InspirationGentle           InspirationLevel = "gentle"
	InspirationMotivating       InspirationLevel = "motivating"
	InspirationTransformational InspirationLevel = "transformational"
)

var inspirationLevels = newEnum("inspiration level",
	enumPair[InspirationLevel]{InspirationGentle, "Gentle"},
	enumPair[InspirationLevel]{InspirationMotivating, "Motivating"},
	enumPair[InspirationLevel]{InspirationTransformational, "Transformational"},
)

var inspirationDescriptions = map[InspirationLevel]string{
	InspirationGentle:           "Small steps, big impact",
	InspirationMotivating:       "Inspiring progress",
	InspirationTransformational: "Life-changing journey",
}

func AllInspirationLevels() []InspirationLevel { return inspirationLevels.all() }
func (l InspirationLevel) Label() string       { return inspirationLevels.label(l) }
func (l InspirationLevel) Valid() bool         { return inspirationLevels.valid(l) }
func (l InspirationLevel) Description() string { return inspirationDescriptions[l] }
func ParseInspirationLevel(s string) (InspirationLevel, error) {
	return inspirationLevels.parse(s)
}
