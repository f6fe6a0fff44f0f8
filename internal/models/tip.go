package models

import "time"

// Tip is a short article in the tips library.
type Tip struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Category    TipCategory   `json:"category"`
	Difficulty  TipDifficulty `json:"difficulty"`
	ReadMinutes int           `json:"read_minutes"`
	Tags        []string      `json:"tags"`
	IsFavorite  bool          `json:"is_favorite"`
	IsRead      bool          `json:"is_read"`
	ReadAt      *time.Time    `json:"read_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	Author      string        `json:"author,omitempty"`
	ActionItems []string      `json:"action_items"`
}

func (t Tip) Clone() Tip {
	t.Tags = append([]string{}, t.Tags...)
	t.ActionItems = append([]string{}, t.ActionItems...)
	if t.ReadAt != nil {
		r := *t.ReadAt
		t.ReadAt = &r
	}
	return t
}

type TipCategory string

const (
	TipMindfulness    TipCategory = "mindfulness"
	TipProductivity   TipCategory = "productivity"
	TipWellness       TipCategory = "wellness"
	TipRelationships  TipCategory = "relationships"
	TipCareer         TipCategory = "career"
	TipFinance        TipCategory = "finance"
	TipCreativity     TipCategory = "creativity"
	TipLeadership     TipCategory = "leadership"
	TipCommunication  TipCategory = "communication"
	TipTimeManagement TipCategory = "time_management"
)

var tipCategories = newEnum("tip category",
	enumPair[TipCategory]{TipMindfulness, "Mindfulness"},
	enumPair[TipCategory]{TipProductivity, "Productivity"},
	enumPair[TipCategory]{TipWellness, "Wellness"},
	enumPair[TipCategory]{TipRelationships, "Relationships"},
	enumPair[TipCategory]{TipCareer, "Career Development"},
	enumPair[TipCategory]{TipFinance, "Financial Wellness"},
	enumPair[TipCategory]{TipCreativity, "Creativity"},
	enumPair[TipCategory]{TipLeadership, "Leadership"},
	enumPair[TipCategory]{TipCommunication, "Communication"},
	enumPair[TipCategory]{TipTimeManagement, "Time Management"},
)

var tipCategoryDescriptions = map[TipCategory]string{
	TipMindfulness:    "Present-moment awareness and inner calm",
	TipProductivity:   "Getting the important things done",
	TipWellness:       "Body and mind in balance",
	TipRelationships:  "Building meaningful connections",
	TipCareer:         "Growing at work",
	TipFinance:        "Money habits and security",
	TipCreativity:     "Making room for new ideas",
	TipLeadership:     "Guiding and supporting others",
	TipCommunication:  "Saying what you mean, hearing what others mean",
	TipTimeManagement: "Spending hours on purpose",
}

func AllTipCategories() []TipCategory                { return tipCategories.all() }
func (c TipCategory) Label() string                  { return tipCategories.label(c) }
func (c TipCategory) Valid() bool                    { return tipCategories.valid(c) }
func (c TipCategory) Description() string            { return tipCategoryDescriptions[c] }
func ParseTipCategory(s string) (TipCategory, error) { return tipCategories.parse(s) }
func TipCategoryKeys() string                        { return tipCategories.keys() }

type TipDifficulty string

const (
	DifficultyBeginner     TipDifficulty = "beginner"
	DifficultyIntermediate TipDifficulty = "intermediate"
	DifficultyAdvanced     TipDifficulty = "advanced"
)

var tipDifficulties = newEnum("difficulty",
	enumPair[TipDifficulty]{DifficultyBeginner, "Beginner"},
	enumPair[TipDifficulty]{DifficultyIntermediate, "Intermediate"},
	enumPair[TipDifficulty]{DifficultyAdvanced, "Advanced"},
)

func AllTipDifficulties() []TipDifficulty                { return tipDifficulties.all() }
func (d TipDifficulty) Label() string                    { return tipDifficulties.label(d) }
func (d TipDifficulty) Valid() bool                      { return tipDifficulties.valid(d) }
func ParseTipDifficulty(s string) (TipDifficulty, error) { return tipDifficulties.parse(s) }
