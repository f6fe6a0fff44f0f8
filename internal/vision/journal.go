// Package vision keeps one vision board per calendar day and derives the
// board streak and weekly views from them.
package vision

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

var (
	ErrItemNotFound = errors.New("vision item not found")
	ErrEmptyTitle   = errors.New("item title is required")
)

type Store interface {
	LoadVisionBoards() ([]models.VisionBoard, error)
	SaveVisionBoards(boards []models.VisionBoard) error
}

type Journal struct {
	store     Store
	clock     func() time.Time
	weekStart time.Weekday
	boards    []models.VisionBoard
}

type Option func(*Journal)

// WithClock replaces time.Now. The returned time's location defines "today".
func WithClock(clock func() time.Time) Option {
	return func(j *Journal) { j.clock = clock }
}

func WithWeekStart(day time.Weekday) Option {
	return func(j *Journal) { j.weekStart = day }
}

func New(store Store, opts ...Option) *Journal {
	j := &Journal{store: store, clock: time.Now, weekStart: time.Monday}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) WeekStart() time.Weekday {
	return j.weekStart
}

// Load replaces the in-memory boards with the stored ones. A read failure
// starts empty without touching the stored record.
func (j *Journal) Load() {
	boards, err := j.store.LoadVisionBoards()
	if err != nil {
		logger.Warn("Failed to load vision boards, starting empty", "error", err)
		boards = []models.VisionBoard{}
	}
	j.boards = boards
}

func (j *Journal) persist() {
	if err := j.store.SaveVisionBoards(j.boards); err != nil {
		logger.Warn("Failed to save vision boards", "error", err)
	}
}

func (j *Journal) indexOn(day time.Time) int {
	loc := day.Location()
	for i := range j.boards {
		if utils.SameDay(j.boards[i].Date, day, loc) {
			return i
		}
	}
	return -1
}

// today returns the index of today's board, creating and saving an empty
// one when none exists.
func (j *Journal) today() int {
	now := j.clock()
	if i := j.indexOn(now); i >= 0 {
		return i
	}
	j.boards = append(j.boards, models.VisionBoard{
		ID:    uuid.NewString(),
		Date:  utils.StartOfDay(now),
		Items: []models.VisionItem{},
	})
	j.persist()
	return len(j.boards) - 1
}

// Today returns today's board, creating it on first use.
func (j *Journal) Today() models.VisionBoard {
	return j.boards[j.today()].Clone()
}

// On returns the board for day's calendar day.
func (j *Journal) On(day time.Time) (models.VisionBoard, bool) {
	if i := j.indexOn(day.In(j.clock().Location())); i >= 0 {
		return j.boards[i].Clone(), true
	}
	return models.VisionBoard{}, false
}

// Save upserts b by ID.
func (j *Journal) Save(b models.VisionBoard) {
	b = b.Clone()
	for i := range j.boards {
		if j.boards[i].ID == b.ID {
			j.boards[i] = b
			j.persist()
			return
		}
	}
	j.boards = append(j.boards, b)
	j.persist()
}

// AddItem pins a new item to today's board at the default position.
func (j *Journal) AddItem(title, description string) (models.VisionItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.VisionItem{}, ErrEmptyTitle
	}
	i := j.today()
	item := models.VisionItem{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		X:           models.DefaultItemPosition,
		Y:           models.DefaultItemPosition,
		CreatedAt:   j.clock(),
	}
	j.boards[i].Items = append(j.boards[i].Items, item)
	j.persist()
	return item, nil
}

// RemoveItem deletes an item from today's board by ID or title.
func (j *Journal) RemoveItem(idOrTitle string) (models.VisionItem, error) {
	i := j.today()
	items := j.boards[i].Items
	for k, it := range items {
		if it.ID == idOrTitle || strings.EqualFold(it.Title, idOrTitle) {
			j.boards[i].Items = append(items[:k:k], items[k+1:]...)
			j.persist()
			return it, nil
		}
	}
	return models.VisionItem{}, ErrItemNotFound
}

func (j *Journal) SetReflection(text string) models.VisionBoard {
	i := j.today()
	j.boards[i].Reflection = strings.TrimSpace(text)
	j.persist()
	return j.boards[i].Clone()
}

func (j *Journal) SetMood(m models.Mood) models.VisionBoard {
	i := j.today()
	j.boards[i].Mood = &m
	j.persist()
	return j.boards[i].Clone()
}

// Boards returns every board, newest day first.
func (j *Journal) Boards() []models.VisionBoard {
	out := make([]models.VisionBoard, 0, len(j.boards))
	for _, b := range j.boards {
		out = append(out, b.Clone())
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return out
}

// Streak counts consecutive days, ending today, whose board holds at least
// one item. An empty board breaks the run.
func (j *Journal) Streak() int {
	var days []time.Time
	for _, b := range j.boards {
		if len(b.Items) > 0 {
			days = append(days, b.Date)
		}
	}
	return utils.ConsecutiveDays(days, j.clock())
}

// ThisWeek returns the boards dated in the current week, newest first.
func (j *Journal) ThisWeek() []models.VisionBoard {
	start := utils.StartOfWeek(j.clock(), j.weekStart)
	out := []models.VisionBoard{}
	for _, b := range j.Boards() {
		if !b.Date.Before(start) {
			out = append(out, b)
		}
	}
	return out
}

// MostUsedMood returns the mood recorded on the most boards. Ties go to the
// mood declared first.
func (j *Journal) MostUsedMood() (models.Mood, bool) {
	counts := map[models.Mood]int{}
	for _, b := range j.boards {
		if b.Mood != nil {
			counts[*b.Mood]++
		}
	}
	var best models.Mood
	bestCount := 0
	for _, m := range models.AllMoods() {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	return best, bestCount > 0
}
