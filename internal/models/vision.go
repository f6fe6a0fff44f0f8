package models

import "time"

// VisionBoard collects the intentions a user pinned for one calendar day.
type VisionBoard struct {
	ID         string       `json:"id"`
	Date       time.Time    `json:"date"` // midnight of the board's day
	Items      []VisionItem `json:"items"`
	Reflection string       `json:"reflection"`
	Mood       *Mood        `json:"mood,omitempty"`
}

// VisionItem is one card on a board. X and Y place it on the canvas.
type VisionItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultItemPosition is where new items are placed.
const DefaultItemPosition = 100

func (b VisionBoard) Clone() VisionBoard {
	items := make([]VisionItem, len(b.Items))
	copy(items, b.Items)
	b.Items = items
	if b.Mood != nil {
		m := *b.Mood
		b.Mood = &m
	}
	return b
}

type Mood string

const (
	MoodExcited   Mood = "excited"
	MoodMotivated Mood = "motivated"
	MoodPeaceful  Mood = "peaceful"
	MoodFocused   Mood = "focused"
	MoodGrateful  Mood = "grateful"
	MoodConfident Mood = "confident"
)

var moods = newEnum("mood",
	enumPair[Mood]{MoodExcited, "Excited"},
	enumPair[Mood]{MoodMotivated, "Motivated"},
	enumPair[Mood]{MoodPeaceful, "Peaceful"},
	enumPair[Mood]{MoodFocused, "Focused"},
	enumPair[Mood]{MoodGrateful, "Grateful"},
	enumPair[Mood]{MoodConfident, "Confident"},
)

func AllMoods() []Mood                 { return moods.all() }
func (m Mood) Label() string           { return moods.label(m) }
func (m Mood) Valid() bool             { return moods.valid(m) }
func ParseMood(s string) (Mood, error) { return moods.parse(s) }
func MoodKeys() string                 { return moods.keys() }
