// Package community keeps the locally stored success stories and the
// likes and rankings over them.
package community

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/validation"
)

var ErrStoryNotFound = errors.New("story not found")

type Store interface {
	LoadStories() ([]models.Story, error)
	SaveStories(stories []models.Story) error
}

// Feed holds stories newest first.
type Feed struct {
	store   Store
	clock   func() time.Time
	stories []models.Story
}

type Option func(*Feed)

func WithClock(clock func() time.Time) Option {
	return func(f *Feed) { f.clock = clock }
}

func New(store Store, opts ...Option) *Feed {
	f := &Feed{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load replaces the in-memory stories with the stored ones, newest first.
// A read failure starts empty without touching the stored record.
func (f *Feed) Load() {
	stories, err := f.store.LoadStories()
	if err != nil {
		logger.Warn("Failed to load stories, starting empty", "error", err)
		stories = []models.Story{}
	}
	sort.SliceStable(stories, func(i, j int) bool { return stories[i].CreatedAt.After(stories[j].CreatedAt) })
	f.stories = stories
}

func (f *Feed) persist() {
	if err := f.store.SaveStories(f.stories); err != nil {
		logger.Warn("Failed to save stories", "error", err)
	}
}

func (f *Feed) indexOf(id string) int {
	for i := range f.stories {
		if f.stories[i].ID == id {
			return i
		}
	}
	return -1
}

// Add checks s against the submission rules, stamps it with the current
// time and puts it at the top of the feed.
func (f *Feed) Add(s models.Story) (models.Story, error) {
	s = s.Clone()
	if s.InspirationLevel == "" {
		s.InspirationLevel = models.InspirationMotivating
	}
	if err := validation.StoryFrom(s).Validate(); err != nil {
		return models.Story{}, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.IsAnonymous {
		s.AuthorName = ""
	}
	s.CreatedAt = f.clock()
	f.stories = append([]models.Story{s}, f.stories...)
	f.persist()
	return s.Clone(), nil
}

func (f *Feed) ToggleLike(id string) (models.Story, error) {
	i := f.indexOf(id)
	if i < 0 {
		return models.Story{}, ErrStoryNotFound
	}
	f.stories[i].ToggleLike()
	f.persist()
	return f.stories[i].Clone(), nil
}

// Delete removes a story. Unknown IDs are ignored but still persist.
func (f *Feed) Delete(id string) {
	if i := f.indexOf(id); i >= 0 {
		f.stories = append(f.stories[:i], f.stories[i+1:]...)
	}
	f.persist()
}

func (f *Feed) Get(id string) (models.Story, bool) {
	if i := f.indexOf(id); i >= 0 {
		return f.stories[i].Clone(), true
	}
	return models.Story{}, false
}

// Find matches a title case-insensitively or an exact ID.
func (f *Feed) Find(titleOrID string) (models.Story, bool) {
	for _, s := range f.stories {
		if strings.EqualFold(s.Title, titleOrID) || s.ID == titleOrID {
			return s.Clone(), true
		}
	}
	return models.Story{}, false
}

func (f *Feed) filter(keep func(s models.Story) bool) []models.Story {
	out := []models.Story{}
	for _, s := range f.stories {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	return out
}

func (f *Feed) Stories() []models.Story {
	return f.filter(func(models.Story) bool { return true })
}

// Filter narrows the feed. Zero fields do not filter.
type Filter struct {
	Category models.StoryCategory
	Level    models.InspirationLevel
	Query    string
}

func matches(s models.Story, q string) bool {
	if strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Content), q) ||
		strings.Contains(strings.ToLower(s.Milestone), q) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filtered returns matching stories, newest first.
func (f *Feed) Filtered(flt Filter) []models.Story {
	q := strings.ToLower(strings.TrimSpace(flt.Query))
	return f.filter(func(s models.Story) bool {
		switch {
		case flt.Category != "" && s.Category != flt.Category:
			return false
		case flt.Level != "" && s.InspirationLevel != flt.Level:
			return false
		case q != "" && !matches(s, q):
			return false
		}
		return true
	})
}

func limitTo(out []models.Story, limit int) []models.Story {
	if limit >= 0 && len(out) > limit {
		return out[:limit]
	}
	return out
}

// MostLiked returns up to limit stories by likes, ties newest first.
func (f *Feed) MostLiked(limit int) []models.Story {
	out := f.Stories()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	return limitTo(out, limit)
}

func (f *Feed) Recent(limit int) []models.Story {
	return limitTo(f.Stories(), limit)
}

func (f *Feed) TotalLikes() int {
	total := 0
	for _, s := range f.stories {
		total += s.Likes
	}
	return total
}

// AverageLength is the mean content length in characters, truncated.
func (f *Feed) AverageLength() int {
	if len(f.stories) == 0 {
		return 0
	}
	total := 0
	for _, s := range f.stories {
		total += utf8.RuneCountInString(s.Content)
	}
	return total / len(f.stories)
}

type CategoryCount struct {
	Category models.StoryCategory
	Count    int
}

// CountByCategory covers categories with stories, largest first, ties in
// declaration order.
func (f *Feed) CountByCategory() []CategoryCount {
	var out []CategoryCount
	for _, c := range models.AllStoryCategories() {
		n := len(f.filter(func(s models.Story) bool { return s.Category == c }))
		if n > 0 {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

type LevelCount struct {
	Level models.InspirationLevel
	Count int
}

func (f *Feed) CountByLevel() []LevelCount {
	var out []LevelCount
	for _, l := range models.AllInspirationLevels() {
		n := len(f.filter(func(s models.Story) bool { return s.InspirationLevel == l }))
		if n > 0 {
			out = append(out, LevelCount{Level: l, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func (f *Feed) PopularTags(limit int) []models.TagCount {
	lists := make([][]string, len(f.stories))
	for i, s := range f.stories {
		lists[i] = s.Tags
	}
	return models.RankTags(lists, limit)
}

// Inspirational lists transformational stories, most liked first.
func (f *Feed) Inspirational() []models.Story {
	out := f.filter(func(s models.Story) bool { return s.InspirationLevel == models.InspirationTransformational })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	return out
}

func (f *Feed) WithMilestones() []models.Story {
	return f.filter(func(s models.Story) bool { return s.Milestone != "" })
}

func (f *Feed) Liked() []models.Story {
	return f.filter(func(s models.Story) bool { return s.LikedByUser })
}

// ShareText renders a story as plain text for copying elsewhere.
func ShareText(s models.Story) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n", s.Title, s.Content)
	if s.Milestone != "" {
		fmt.Fprintf(&b, "\nMilestone: %s\n", s.Milestone)
	}
	fmt.Fprintf(&b, "\n- %s, shared on Elevate\n", s.DisplayAuthor())
	return b.String()
}
