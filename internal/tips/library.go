// Package tips holds the self-improvement tips library: reading progress,
// favorites and recommendations based on what the user already reads.
package tips

import (
	"errors"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
)

var ErrTipNotFound = errors.New("tip not found")

type Store interface {
	LoadTips() ([]models.Tip, error)
	SaveTips(tips []models.Tip) error
}

type Library struct {
	store Store
	clock func() time.Time
	rng   *rand.Rand
	tips  []models.Tip
}

type Option func(*Library)

func WithClock(clock func() time.Time) Option {
	return func(l *Library) { l.clock = clock }
}

// WithRand fixes the source used by Daily. Nil uses the global source.
func WithRand(rng *rand.Rand) Option {
	return func(l *Library) { l.rng = rng }
}

func New(store Store, opts ...Option) *Library {
	l := &Library{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the in-memory tips with the stored ones. A read failure
// starts empty without touching the stored record.
func (l *Library) Load() {
	tips, err := l.store.LoadTips()
	if err != nil {
		logger.Warn("Failed to load tips, starting empty", "error", err)
		tips = []models.Tip{}
	}
	l.tips = tips
}

func (l *Library) persist() {
	if err := l.store.SaveTips(l.tips); err != nil {
		logger.Warn("Failed to save tips", "error", err)
	}
}

func (l *Library) indexOf(id string) int {
	for i := range l.tips {
		if l.tips[i].ID == id {
			return i
		}
	}
	return -1
}

// Add stores t, filling in the ID, creation time, beginner difficulty and
// the default read time when missing.
func (l *Library) Add(t models.Tip) models.Tip {
	t = t.Clone()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = l.clock()
	}
	if t.Difficulty == "" {
		t.Difficulty = models.DifficultyBeginner
	}
	if t.ReadMinutes <= 0 {
		t.ReadMinutes = constants.DefaultTipReadMinutes
	}
	l.tips = append(l.tips, t)
	l.persist()
	return t.Clone()
}

// Update replaces the tip with t's ID. Unknown IDs are ignored but still persist.
func (l *Library) Update(t models.Tip) {
	if i := l.indexOf(t.ID); i >= 0 {
		l.tips[i] = t.Clone()
	}
	l.persist()
}

func (l *Library) Delete(id string) {
	if i := l.indexOf(id); i >= 0 {
		l.tips = append(l.tips[:i], l.tips[i+1:]...)
	}
	l.persist()
}

func (l *Library) mutate(id string, fn func(t *models.Tip)) (models.Tip, error) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Tip{}, ErrTipNotFound
	}
	fn(&l.tips[i])
	l.persist()
	return l.tips[i].Clone(), nil
}

// MarkRead marks a tip read and stamps the read time.
func (l *Library) MarkRead(id string) (models.Tip, error) {
	now := l.clock()
	return l.mutate(id, func(t *models.Tip) {
		t.IsRead = true
		t.ReadAt = &now
	})
}

func (l *Library) ToggleFavorite(id string) (models.Tip, error) {
	return l.mutate(id, func(t *models.Tip) { t.IsFavorite = !t.IsFavorite })
}

func (l *Library) Get(id string) (models.Tip, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.tips[i].Clone(), true
	}
	return models.Tip{}, false
}

// Find matches a title case-insensitively or an exact ID.
func (l *Library) Find(titleOrID string) (models.Tip, bool) {
	for _, t := range l.tips {
		if strings.EqualFold(t.Title, titleOrID) || t.ID == titleOrID {
			return t.Clone(), true
		}
	}
	return models.Tip{}, false
}

func (l *Library) filter(keep func(t models.Tip) bool) []models.Tip {
	out := []models.Tip{}
	for _, t := range l.tips {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (l *Library) Tips() []models.Tip {
	return l.filter(func(models.Tip) bool { return true })
}

// Filter narrows the library. Zero fields do not filter.
type Filter struct {
	Category   models.TipCategory
	Difficulty models.TipDifficulty
	Favorites  bool
	Unread     bool
	Query      string
}

func matches(t models.Tip, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Content), q) ||
		strings.Contains(strings.ToLower(t.Category.Label()), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filtered returns the tips matching f, favorites first, then newest first.
func (l *Library) Filtered(f Filter) []models.Tip {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := l.filter(func(t models.Tip) bool {
		switch {
		case f.Category != "" && t.Category != f.Category:
			return false
		case f.Difficulty != "" && t.Difficulty != f.Difficulty:
			return false
		case f.Favorites && !t.IsFavorite:
			return false
		case f.Unread && t.IsRead:
			return false
		case q != "" && !matches(t, q):
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (l *Library) Favorites() []models.Tip {
	return l.filter(func(t models.Tip) bool { return t.IsFavorite })
}

func (l *Library) Unread() []models.Tip {
	return l.filter(func(t models.Tip) bool { return !t.IsRead })
}

// RecentlyRead returns up to limit read tips, most recently read first.
func (l *Library) RecentlyRead(limit int) []models.Tip {
	out := l.filter(func(t models.Tip) bool { return t.IsRead && t.ReadAt != nil })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReadAt.After(*out[j].ReadAt) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (l *Library) ReadCount() int {
	return len(l.filter(func(t models.Tip) bool { return t.IsRead }))
}

// ReadingProgress is read over total, 0 with an empty library.
func (l *Library) ReadingProgress() float64 {
	if len(l.tips) == 0 {
		return 0
	}
	return float64(l.ReadCount()) / float64(len(l.tips))
}

// CategoryProgress is the reading progress within one category.
type CategoryProgress struct {
	Category models.TipCategory
	Read     int
	Total    int
}

func (c CategoryProgress) Rate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Read) / float64(c.Total)
}

// ProgressByCategory covers categories that hold tips, best progress first,
// ties in declaration order.
func (l *Library) ProgressByCategory() []CategoryProgress {
	var out []CategoryProgress
	for _, c := range models.AllTipCategories() {
		cp := CategoryProgress{Category: c}
		for _, t := range l.tips {
			if t.Category != c {
				continue
			}
			cp.Total++
			if t.IsRead {
				cp.Read++
			}
		}
		if cp.Total > 0 {
			out = append(out, cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate() > out[j].Rate() })
	return out
}

// DifficultyCounts maps each difficulty to its number of tips.
func (l *Library) DifficultyCounts() map[models.TipDifficulty]int {
	out := map[models.TipDifficulty]int{}
	for _, t := range l.tips {
		out[t.Difficulty]++
	}
	return out
}

// TotalReadMinutes sums the estimated read time of every tip.
func (l *Library) TotalReadMinutes() int {
	total := 0
	for _, t := range l.tips {
		total += t.ReadMinutes
	}
	return total
}

// AverageReadMinutes is truncated; 0 with an empty library.
func (l *Library) AverageReadMinutes() int {
	if len(l.tips) == 0 {
		return 0
	}
	return l.TotalReadMinutes() / len(l.tips)
}

// Recommended returns up to limit unread tips, drawing first from the three
// categories the user has read most and then from the rest.
func (l *Library) Recommended(limit int) []models.Tip {
	readPerCategory := map[models.TipCategory]int{}
	for _, t := range l.tips {
		if t.IsRead {
			readPerCategory[t.Category]++
		}
	}
	var favored []models.TipCategory
	for _, c := range models.AllTipCategories() {
		if readPerCategory[c] > 0 {
			favored = append(favored, c)
		}
	}
	sort.SliceStable(favored, func(i, j int) bool {
		return readPerCategory[favored[i]] > readPerCategory[favored[j]]
	})
	if len(favored) > 3 {
		favored = favored[:3]
	}
	isFavored := func(c models.TipCategory) bool {
		for _, f := range favored {
			if f == c {
				return true
			}
		}
		return false
	}

	out := l.filter(func(t models.Tip) bool { return !t.IsRead && isFavored(t.Category) })
	out = append(out, l.filter(func(t models.Tip) bool { return !t.IsRead && !isFavored(t.Category) })...)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// QuickReads lists tips that take at most the quick-read time.
func (l *Library) QuickReads() []models.Tip {
	return l.filter(func(t models.Tip) bool { return t.ReadMinutes <= constants.QuickReadMinutes })
}

func (l *Library) BeginnerFriendly() []models.Tip {
	return l.filter(func(t models.Tip) bool { return t.Difficulty == models.DifficultyBeginner })
}

// Daily picks a random short unread tip, falling back to any tip once
// those run out.
func (l *Library) Daily() (models.Tip, bool) {
	pool := l.filter(func(t models.Tip) bool {
		return !t.IsRead && t.ReadMinutes <= constants.DailyTipMaxMinutes
	})
	if len(pool) == 0 {
		pool = l.Tips()
	}
	if len(pool) == 0 {
		return models.Tip{}, false
	}
	if l.rng == nil {
		return pool[rand.IntN(len(pool))], true
	}
	return pool[l.rng.IntN(len(pool))], true
}

// Tags returns every distinct tag, sorted case-insensitively.
func (l *Library) Tags() []string {
	ranked := models.RankTags(l.tagLists(), -1)
	out := make([]string, len(ranked))
	for i, tc := range ranked {
		out[i] = tc.Tag
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

func (l *Library) ByTag(tag string) []models.Tip {
	return l.filter(func(t models.Tip) bool { return models.HasTag(t.Tags, tag) })
}

func (l *Library) PopularTags(limit int) []models.TagCount {
	return models.RankTags(l.tagLists(), limit)
}

func (l *Library) tagLists() [][]string {
	lists := make([][]string, len(l.tips))
	for i, t := range l.tips {
		lists[i] = t.Tags
	}
	return lists
}
