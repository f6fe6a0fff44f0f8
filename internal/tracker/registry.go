// Package tracker owns the in-memory habit collection: it applies every
// mutation, keeps streaks current and writes the whole collection back to
// the record store after each change.
//
// Callers always receive deep copies. Mutating a returned habit has no
// effect until it is passed back through Update.
package tracker

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/quotes"
	"github.com/julianstephens/elevate/internal/utils"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidValue  = errors.New("completion value must not be negative")
)

// Store is the persistence the registry needs.
type Store interface {
	LoadHabits(key string) ([]models.Habit, error)
	SaveHabits(key string, habits []models.Habit) error
}

type Registry struct {
	store     Store
	key       string
	clock     func() time.Time
	weekStart time.Weekday
	quotes    quotes.Picker
	habits    []models.Habit
}

type Option func(*Registry)

// WithClock replaces time.Now. The returned time's location defines "today".
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) { r.clock = clock }
}

func WithWeekStart(day time.Weekday) Option {
	return func(r *Registry) { r.weekStart = day }
}

func WithQuotes(p quotes.Picker) Option {
	return func(r *Registry) { r.quotes = p }
}

func WithCollectionKey(key string) Option {
	return func(r *Registry) { r.key = key }
}

func New(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:     store,
		key:       constants.HabitsKey,
		clock:     time.Now,
		weekStart: time.Monday,
		quotes:    quotes.NewRandom(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the registry's current time.
func (r *Registry) Now() time.Time {
	return r.clock()
}

func (r *Registry) WeekStart() time.Weekday {
	return r.weekStart
}

// Load replaces the in-memory collection with the stored one, recomputes
// every streak and writes the result back. A read failure starts the
// session empty and leaves the stored record untouched.
func (r *Registry) Load() {
	habits, err := r.store.LoadHabits(r.key)
	if err != nil {
		logger.Warn("Failed to load habits, starting empty", "error", err)
		r.habits = []models.Habit{}
		return
	}

	r.habits = make([]models.Habit, 0, len(habits))
	now := r.clock()
	for _, h := range habits {
		h.RecomputeStreak(now)
		r.habits = append(r.habits, h)
	}
	r.persist()
}

func (r *Registry) persist() {
	if err := r.store.SaveHabits(r.key, r.habits); err != nil {
		logger.Warn("Failed to save habits", "error", err)
	}
}

func (r *Registry) indexOf(id string) int {
	for i := range r.habits {
		if r.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) pickQuote() *string {
	if r.quotes == nil {
		return nil
	}
	q := r.quotes.Pick()
	return &q
}

// Add stores a new habit and returns it with its ID, creation time,
// defaults and quote filled in.
func (r *Registry) Add(h models.Habit) models.Habit {
	h = h.Clone()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = r.clock()
	}
	if h.TargetValue <= 0 {
		h.TargetValue = constants.DefaultTargetValue
	}
	if h.Unit == "" {
		h.Unit = constants.DefaultUnit
	}
	if h.Frequency == "" {
		h.Frequency = models.FrequencyDaily
	}
	if h.Completions == nil {
		h.Completions = []models.Completion{}
	}
	h.MotivationalQuote = r.pickQuote()
	h.RecomputeStreak(r.clock())

	r.habits = append(r.habits, h)
	r.persist()
	return h.Clone()
}

// Update replaces the stored habit with the same ID. Unknown IDs are
// ignored but still persist.
func (r *Registry) Update(h models.Habit) {
	if i := r.indexOf(h.ID); i >= 0 {
		r.habits[i] = h.Clone()
	}
	r.persist()
}

// Delete removes a habit. Unknown IDs are ignored but still persist.
func (r *Registry) Delete(id string) {
	if i := r.indexOf(id); i >= 0 {
		r.habits = append(r.habits[:i], r.habits[i+1:]...)
	}
	r.persist()
}

// mutate applies fn to the stored habit and persists the collection.
func (r *Registry) mutate(id string, fn func(h *models.Habit)) (models.Habit, error) {
	i := r.indexOf(id)
	if i < 0 {
		return models.Habit{}, ErrHabitNotFound
	}
	fn(&r.habits[i])
	r.persist()
	return r.habits[i].Clone(), nil
}

// Complete records value against the habit at the current time. Values
// above the target are allowed.
func (r *Registry) Complete(id string, value int, notes *string) (models.Habit, error) {
	if value < 0 {
		return models.Habit{}, ErrInvalidValue
	}
	now := r.clock()
	return r.mutate(id, func(h *models.Habit) {
		h.Completions = append(h.Completions, models.Completion{
			ID:    uuid.NewString(),
			Date:  now,
			Value: value,
			Notes: notes,
		})
		h.RecomputeStreak(now)
	})
}

// UndoCompletion removes every completion recorded today. It does nothing
// when the habit was not completed today.
func (r *Registry) UndoCompletion(id string) (models.Habit, error) {
	i := r.indexOf(id)
	if i < 0 {
		return models.Habit{}, ErrHabitNotFound
	}
	now := r.clock()
	if !r.habits[i].IsCompletedToday(now) {
		return r.habits[i].Clone(), nil
	}

	return r.mutate(id, func(h *models.Habit) {
		kept := h.Completions[:0:0]
		for _, c := range h.Completions {
			if !utils.SameDay(c.Date, now, now.Location()) {
				kept = append(kept, c)
			}
		}
		h.Completions = kept
		h.RecomputeStreak(now)
	})
}

func (r *Registry) ToggleActive(id string) (models.Habit, error) {
	return r.mutate(id, func(h *models.Habit) {
		h.IsActive = !h.IsActive
	})
}

// SetReminder sets or, with nil, clears the reminder time.
func (r *Registry) SetReminder(id string, at *string) (models.Habit, error) {
	return r.mutate(id, func(h *models.Habit) {
		if at == nil {
			h.ReminderTime = nil
			return
		}
		v := *at
		h.ReminderTime = &v
	})
}

// RefreshQuote assigns a newly picked quote.
func (r *Registry) RefreshQuote(id string) (models.Habit, error) {
	return r.mutate(id, func(h *models.Habit) {
		h.MotivationalQuote = r.pickQuote()
	})
}

// RandomQuote returns a quote without attaching it to a habit.
func (r *Registry) RandomQuote() string {
	if r.quotes == nil {
		return quotes.Fallback
	}
	return r.quotes.Pick()
}

// Get returns a copy of one habit.
func (r *Registry) Get(id string) (models.Habit, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return r.habits[i].Clone(), true
}

// FindByName matches case-insensitively; an exact ID match also counts.
func (r *Registry) FindByName(name string) (models.Habit, bool) {
	for _, h := range r.habits {
		if strings.EqualFold(h.Name, name) || h.ID == name {
			return h.Clone(), true
		}
	}
	return models.Habit{}, false
}

func (r *Registry) filter(keep func(h models.Habit) bool) []models.Habit {
	out := []models.Habit{}
	for _, h := range r.habits {
		if keep(h) {
			out = append(out, h.Clone())
		}
	}
	return out
}

// Habits returns a snapshot of the whole collection in insertion order.
func (r *Registry) Habits() []models.Habit {
	return r.filter(func(models.Habit) bool { return true })
}

// Search matches name, description and category case-insensitively.
// An empty query returns everything.
func (r *Registry) Search(query string) []models.Habit {
	if query == "" {
		return r.Habits()
	}
	q := strings.ToLower(query)
	return r.filter(func(h models.Habit) bool {
		return strings.Contains(strings.ToLower(h.Name), q) ||
			strings.Contains(strings.ToLower(h.Description), q) ||
			strings.Contains(strings.ToLower(string(h.Category)), q) ||
			strings.Contains(strings.ToLower(h.Category.Label()), q)
	})
}

func (r *Registry) ByCategory(c models.HabitCategory) []models.Habit {
	return r.filter(func(h models.Habit) bool { return h.Category == c })
}

func (r *Registry) ByFrequency(f models.HabitFrequency) []models.Habit {
	return r.filter(func(h models.Habit) bool { return h.Frequency == f })
}

// WithReminders lists active habits that have a reminder time.
func (r *Registry) WithReminders() []models.Habit {
	return r.filter(func(h models.Habit) bool { return h.IsActive && h.ReminderTime != nil })
}

// CompletionRate computes the habit's rate for period using the registry's week start.
func (r *Registry) CompletionRate(id string, period models.TimePeriod) (float64, error) {
	i := r.indexOf(id)
	if i < 0 {
		return 0, ErrHabitNotFound
	}
	return r.habits[i].CompletionRate(period, r.clock(), r.weekStart), nil
}

func (r *Registry) ActiveCount() int {
	n := 0
	for _, h := range r.habits {
		if h.IsActive {
			n++
		}
	}
	return n
}

// CompletedTodayCount counts active habits completed today.
func (r *Registry) CompletedTodayCount() int {
	now := r.clock()
	n := 0
	for _, h := range r.habits {
		if h.IsActive && h.IsCompletedToday(now) {
			n++
		}
	}
	return n
}

// TodayCompletionRate is completed-today over active, 0 with no active habits.
func (r *Registry) TodayCompletionRate() float64 {
	active := r.ActiveCount()
	if active == 0 {
		return 0
	}
	return float64(r.CompletedTodayCount()) / float64(active)
}

// CurrentBestStreak is the highest current streak among active habits.
func (r *Registry) CurrentBestStreak() int {
	best := 0
	for _, h := range r.habits {
		if h.IsActive && h.Streak > best {
			best = h.Streak
		}
	}
	return best
}

// LongestStreak is the all-time high across every habit, active or not.
func (r *Registry) LongestStreak() int {
	best := 0
	for _, h := range r.habits {
		if h.LongestStreak > best {
			best = h.LongestStreak
		}
	}
	return best
}

// HabitsNeedingAttention lists active habits with a streak at risk: not yet
// completed today.
func (r *Registry) HabitsNeedingAttention() []models.Habit {
	now := r.clock()
	return r.filter(func(h models.Habit) bool {
		return h.IsActive && h.Streak > 0 && !h.IsCompletedToday(now)
	})
}

// TopHabits returns up to n active habits by current streak, ties kept in
// insertion order.
func (r *Registry) TopHabits(n int) []models.Habit {
	active := r.filter(func(h models.Habit) bool { return h.IsActive })
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Streak > active[j].Streak
	})
	if n >= 0 && len(active) > n {
		active = active[:n]
	}
	return active
}

// CategoryRollups summarizes active habits per category in declaration order.
func (r *Registry) CategoryRollups() []models.CategoryRollup {
	return models.RollupByCategory(r.habits)
}

// Replace swaps in a whole collection, as after an import, recomputing streaks.
func (r *Registry) Replace(habits []models.Habit) {
	now := r.clock()
	r.habits = make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		h = h.Clone()
		h.RecomputeStreak(now)
		r.habits = append(r.habits, h)
	}
	r.persist()
}
