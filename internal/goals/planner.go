// Package goals keeps the user's one-off goals and answers the dashboard
// queries over them: overdue, upcoming, by priority and completion counts.
package goals

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
)

var ErrGoalNotFound = errors.New("goal not found")

type Store interface {
	LoadGoals() ([]models.Goal, error)
	SaveGoals(goals []models.Goal) error
}

type Planner struct {
	store Store
	clock func() time.Time
	goals []models.Goal
}

type Option func(*Planner)

func WithClock(clock func() time.Time) Option {
	return func(p *Planner) { p.clock = clock }
}

func New(store Store, opts ...Option) *Planner {
	p := &Planner{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load replaces the in-memory goals with the stored ones. A read failure
// starts empty without touching the stored record.
func (p *Planner) Load() {
	goals, err := p.store.LoadGoals()
	if err != nil {
		logger.Warn("Failed to load goals, starting empty", "error", err)
		goals = []models.Goal{}
	}
	p.goals = goals
}

func (p *Planner) persist() {
	if err := p.store.SaveGoals(p.goals); err != nil {
		logger.Warn("Failed to save goals", "error", err)
	}
}

func (p *Planner) indexOf(id string) int {
	for i := range p.goals {
		if p.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// Add stores g with an ID, creation time and medium priority filled in
// when missing.
func (p *Planner) Add(g models.Goal) models.Goal {
	g = g.Clone()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = p.clock()
	}
	if g.Priority == "" {
		g.Priority = models.PriorityMedium
	}
	p.goals = append(p.goals, g)
	p.persist()
	return g.Clone()
}

// Update replaces the goal with g's ID. Unknown IDs are ignored but still persist.
func (p *Planner) Update(g models.Goal) {
	if i := p.indexOf(g.ID); i >= 0 {
		p.goals[i] = g.Clone()
	}
	p.persist()
}

func (p *Planner) Delete(id string) {
	if i := p.indexOf(id); i >= 0 {
		p.goals = append(p.goals[:i], p.goals[i+1:]...)
	}
	p.persist()
}

// ToggleCompletion flips a goal between open and completed, stamping or
// clearing the completion time.
func (p *Planner) ToggleCompletion(id string) (models.Goal, error) {
	i := p.indexOf(id)
	if i < 0 {
		return models.Goal{}, ErrGoalNotFound
	}
	g := &p.goals[i]
	g.IsCompleted = !g.IsCompleted
	if g.IsCompleted {
		now := p.clock()
		g.CompletedAt = &now
	} else {
		g.CompletedAt = nil
	}
	p.persist()
	return g.Clone(), nil
}

func (p *Planner) Get(id string) (models.Goal, bool) {
	if i := p.indexOf(id); i >= 0 {
		return p.goals[i].Clone(), true
	}
	return models.Goal{}, false
}

// Find matches a title case-insensitively or an exact ID.
func (p *Planner) Find(titleOrID string) (models.Goal, bool) {
	for _, g := range p.goals {
		if strings.EqualFold(g.Title, titleOrID) || g.ID == titleOrID {
			return g.Clone(), true
		}
	}
	return models.Goal{}, false
}

func (p *Planner) filter(keep func(g models.Goal) bool) []models.Goal {
	out := []models.Goal{}
	for _, g := range p.goals {
		if keep(g) {
			out = append(out, g.Clone())
		}
	}
	return out
}

// Goals returns every goal in insertion order.
func (p *Planner) Goals() []models.Goal {
	return p.filter(func(models.Goal) bool { return true })
}

// Search matches title, description and reflection notes. An empty query
// returns everything.
func (p *Planner) Search(query string) []models.Goal {
	if query == "" {
		return p.Goals()
	}
	q := strings.ToLower(query)
	return p.filter(func(g models.Goal) bool {
		return strings.Contains(strings.ToLower(g.Title), q) ||
			strings.Contains(strings.ToLower(g.Description), q) ||
			strings.Contains(strings.ToLower(g.ReflectionNotes), q)
	})
}

func (p *Planner) ByCategory(c models.GoalCategory) []models.Goal {
	return p.filter(func(g models.Goal) bool { return g.Category == c })
}

// ByPriority lists open goals with priority pr.
func (p *Planner) ByPriority(pr models.GoalPriority) []models.Goal {
	return p.filter(func(g models.Goal) bool { return !g.IsCompleted && g.Priority == pr })
}

// Overdue lists open goals whose target date has passed.
func (p *Planner) Overdue() []models.Goal {
	now := p.clock()
	return p.filter(func(g models.Goal) bool { return g.IsOverdue(now) })
}

// Upcoming lists open goals due today or within the next days days,
// soonest first.
func (p *Planner) Upcoming(days int) []models.Goal {
	now := p.clock()
	out := p.filter(func(g models.Goal) bool {
		d, ok := g.DaysUntilTarget(now)
		return !g.IsCompleted && ok && d >= 0 && d <= days
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].TargetDate.Before(*out[j].TargetDate) })
	return out
}

// RecentlyCompleted returns up to limit completed goals, newest completion first.
func (p *Planner) RecentlyCompleted(limit int) []models.Goal {
	out := p.filter(func(g models.Goal) bool { return g.IsCompleted && g.CompletedAt != nil })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(*out[j].CompletedAt) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (p *Planner) CompletedCount() int {
	return len(p.filter(func(g models.Goal) bool { return g.IsCompleted }))
}

func (p *Planner) ActiveCount() int {
	return len(p.goals) - p.CompletedCount()
}

// CompletionRate is completed over total, 0 with no goals.
func (p *Planner) CompletionRate() float64 {
	if len(p.goals) == 0 {
		return 0
	}
	return float64(p.CompletedCount()) / float64(len(p.goals))
}

// CategoryCount is the number of goals in one category.
type CategoryCount struct {
	Category models.GoalCategory
	Total    int
	Done     int
}

// CountByCategory reports categories that hold at least one goal, in
// declaration order.
func (p *Planner) CountByCategory() []CategoryCount {
	var out []CategoryCount
	for _, c := range models.AllGoalCategories() {
		cc := CategoryCount{Category: c}
		for _, g := range p.goals {
			if g.Category != c {
				continue
			}
			cc.Total++
			if g.IsCompleted {
				cc.Done++
			}
		}
		if cc.Total > 0 {
			out = append(out, cc)
		}
	}
	return out
}
