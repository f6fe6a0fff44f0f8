package models

import (
	"time"

	"github.com/julianstephens/elevate/internal/utils"
)

// Goal is a one-off objective with an optional target date.
type Goal struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Category        GoalCategory `json:"category"`
	Priority        GoalPriority `json:"priority"`
	TargetDate      *time.Time   `json:"target_date,omitempty"`
	IsCompleted     bool         `json:"is_completed"`
	CreatedAt       time.Time    `json:"created_at"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	ReflectionNotes string       `json:"reflection_notes"`
}

// Clone returns a deep copy of g.
func (g Goal) Clone() Goal {
	if g.TargetDate != nil {
		t := *g.TargetDate
		g.TargetDate = &t
	}
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		g.CompletedAt = &t
	}
	return g
}

// IsOverdue reports whether an open goal's target date has passed.
func (g Goal) IsOverdue(now time.Time) bool {
	days, ok := g.DaysUntilTarget(now)
	return !g.IsCompleted && ok && days < 0
}

// DaysUntilTarget returns the calendar days from now to the target date,
// negative when overdue. ok is false without a target date.
func (g Goal) DaysUntilTarget(now time.Time) (days int, ok bool) {
	if g.TargetDate == nil {
		return 0, false
	}
	return utils.DaysBetween(now, g.TargetDate.In(now.Location())), true
}

type GoalCategory string

const (
	GoalHealth        GoalCategory = "health"
	GoalCareer        GoalCategory = "career"
	GoalRelationships GoalCategory = "relationships"
	GoalPersonal      GoalCategory = "personal"
	GoalFinancial     GoalCategory = "financial"
	GoalEducation     GoalCategory = "education"
	GoalCreativity    GoalCategory = "creativity"
	GoalSpirituality  GoalCategory = "spirituality"
)

var goalCategories = newEnum("goal category",
	enumPair[GoalCategory]{GoalHealth, "Health & Fitness"},
	enumPair[GoalCategory]{GoalCareer, "Career & Professional"},
	enumPair[GoalCategory]{GoalRelationships, "Relationships"},
	enumPair[GoalCategory]{GoalPersonal, "Personal Growth"},
	enumPair[GoalCategory]{GoalFinancial, "Financial"},
	enumPair[GoalCategory]{GoalEducation, "Education & Learning"},
	enumPair[GoalCategory]{GoalCreativity, "Creativity & Hobbies"},
	enumPair[GoalCategory]{GoalSpirituality, "Spirituality & Mindfulness"},
)

func AllGoalCategories() []GoalCategory                { return goalCategories.all() }
func (c GoalCategory) Label() string                   { return goalCategories.label(c) }
func (c GoalCategory) Valid() bool                     { return goalCategories.valid(c) }
func ParseGoalCategory(s string) (GoalCategory, error) { return goalCategories.parse(s) }

// GoalCategoryKeys lists the accepted keys for help text.
func GoalCategoryKeys() string { return goalCategories.keys() }

// GoalPriority orders open goals. The zero value is not valid; new goals
// default to medium.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

var goalPriorities = newEnum("priority",
	enumPair[GoalPriority]{PriorityLow, "Low"},
	enumPair[GoalPriority]{PriorityMedium, "Medium"},
	enumPair[GoalPriority]{PriorityHigh, "High"},
)

func AllGoalPriorities() []GoalPriority                { return goalPriorities.all() }
func (p GoalPriority) Label() string                   { return goalPriorities.label(p) }
func (p GoalPriority) Valid() bool                     { return goalPriorities.valid(p) }
func ParseGoalPriority(s string) (GoalPriority, error) { return goalPriorities.parse(s) }

// Rank is higher for more urgent priorities.
func (p GoalPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}
