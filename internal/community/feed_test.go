package community

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/elevate/internal/models"
)

type memStore struct {
	stories []models.Story
	loadErr error
	saves   int
}

func (m *memStore) LoadStories() ([]models.Story, error) {
	if m.loadErr != nil {
		return []models.Story{}, m.loadErr
	}
	return append([]models.Story{}, m.stories...), nil
}

func (m *memStore) SaveStories(stories []models.Story) error {
	m.saves++
	m.stories = append([]models.Story{}, stories...)
	return nil
}

var testNow = time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)

var body = strings.Repeat("I kept showing up even on the hard days. ", 2)

func newFeed(t *testing.T) (*Feed, *memStore, *time.Time) {
	t.Helper()
	clock := testNow
	store := &memStore{}
	f := New(store, WithClock(func() time.Time { return clock }))
	f.Load()
	return f, store, &clock
}

func story(title string, c models.StoryCategory, level models.InspirationLevel, tags ...string) models.Story {
	return models.Story{Title: title, Content: body, Category: c, IsAnonymous: true, InspirationLevel: level, Tags: tags}
}

func TestAddValidatesAndPrepends(t *testing.T) {
	f, store, clock := newFeed(t)

	first, err := f.Add(story("First", models.StoryHealth, ""))
	require.NoError(t, err)
	assert.Equal(t, models.InspirationMotivating, first.InspirationLevel)
	assert.Equal(t, testNow, first.CreatedAt)

	*clock = clock.Add(time.Hour)
	second, err := f.Add(models.Story{Title: "Second", Content: body, Category: models.StoryCareer, IsAnonymous: true, AuthorName: "Hidden"})
	require.NoError(t, err)
	assert.Empty(t, second.AuthorName)
	assert.Equal(t, "Anonymous", second.DisplayAuthor())

	all := f.Stories()
	require.Len(t, all, 2)
	assert.Equal(t, "Second", all[0].Title)
	assert.Equal(t, 2, store.saves)

	_, err = f.Add(story("Third", models.StoryHealth, "", "x"))
	require.NoError(t, err)
	bad := story("Too short", models.StoryHealth, "")
	bad.Content = "Only a line."
	_, err = f.Add(bad)
	assert.ErrorContains(t, err, "at least 50")
	promo := story("Click here for results", models.StoryHealth, "")
	_, err = f.Add(promo)
	assert.ErrorContains(t, err, "promotional")
	assert.Len(t, f.Stories(), 3)
}

func TestToggleLike(t *testing.T) {
	f, _, _ := newFeed(t)
	s, err := f.Add(story("Likeable", models.StoryGeneral, ""))
	require.NoError(t, err)

	liked, err := f.ToggleLike(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.True(t, liked.LikedByUser)
	assert.Len(t, f.Liked(), 1)

	unliked, err := f.ToggleLike(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)
	assert.False(t, unliked.LikedByUser)

	_, err = f.ToggleLike("missing")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestRankingsAndDistributions(t *testing.T) {
	f, _, clock := newFeed(t)
	a, _ := f.Add(story("A", models.StoryHealth, models.InspirationTransformational, "running", "Fitness"))
	*clock = clock.Add(time.Minute)
	b, _ := f.Add(story("B", models.StoryHealth, models.InspirationTransformational, "fitness"))
	*clock = clock.Add(time.Minute)
	c, _ := f.Add(story("C", models.StoryCareer, models.InspirationGentle))

	for _, id := range []string{a.ID, b.ID} {
		_, err := f.ToggleLike(id)
		require.NoError(t, err)
	}
	st, _ := f.Get(a.ID)
	st.Likes = 5
	f.stories[f.indexOf(a.ID)] = st

	liked := f.MostLiked(2)
	require.Len(t, liked, 2)
	assert.Equal(t, a.ID, liked[0].ID)
	assert.Equal(t, b.ID, liked[1].ID)

	recent := f.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, c.ID, recent[0].ID)

	assert.Equal(t, 6, f.TotalLikes())
	assert.Equal(t, len(body), f.AverageLength())

	cats := f.CountByCategory()
	require.Len(t, cats, 2)
	assert.Equal(t, CategoryCount{Category: models.StoryHealth, Count: 2}, cats[0])

	levels := f.CountByLevel()
	require.Len(t, levels, 2)
	assert.Equal(t, models.InspirationTransformational, levels[0].Level)

	inspiring := f.Inspirational()
	require.Len(t, inspiring, 2)
	assert.Equal(t, a.ID, inspiring[0].ID)

	tags := f.PopularTags(1)
	require.Len(t, tags, 1)
	assert.Equal(t, 2, tags[0].Count)
}

func TestFiltered(t *testing.T) {
	f, _, _ := newFeed(t)
	s := story("Milestone run", models.StoryHealth, models.InspirationGentle, "Running")
	s.Milestone = "First marathon"
	_, err := f.Add(s)
	require.NoError(t, err)
	_, err = f.Add(story("Budget", models.StoryFinancial, models.InspirationMotivating))
	require.NoError(t, err)

	assert.Len(t, f.Filtered(Filter{}), 2)
	assert.Len(t, f.Filtered(Filter{Category: models.StoryFinancial}), 1)
	assert.Len(t, f.Filtered(Filter{Level: models.InspirationGentle}), 1)
	assert.Len(t, f.Filtered(Filter{Query: "marathon"}), 1, "milestones are searched")
	assert.Len(t, f.Filtered(Filter{Query: "RUNNING"}), 1, "tags are searched")
	assert.Len(t, f.WithMilestones(), 1)
}

func TestShareText(t *testing.T) {
	s := models.Story{Title: "Ran it", Content: body, Milestone: "5K", AuthorName: "Sam"}
	text := ShareText(s)
	assert.True(t, strings.HasPrefix(text, "Ran it\n\n"))
	assert.Contains(t, text, "Milestone: 5K")
	assert.Contains(t, text, "Sam, shared on Elevate")
}

func TestSeedAndTemplates(t *testing.T) {
	f, _, _ := newFeed(t)

	assert.Equal(t, len(Samples()), f.Seed())
	assert.Equal(t, 0, f.Seed())
	assert.Equal(t, Samples()[0].Title, f.Stories()[0].Title)

	for _, tmpl := range Templates() {
		assert.True(t, tmpl.Category.Valid(), tmpl.Title)
	}
}

func TestDeleteAndLoadFailure(t *testing.T) {
	f, store, _ := newFeed(t)
	s, err := f.Add(story("Gone", models.StoryGeneral, ""))
	require.NoError(t, err)

	f.Delete(s.ID)
	assert.Empty(t, f.Stories())
	saves := store.saves
	f.Delete("missing")
	assert.Equal(t, saves+1, store.saves)

	broken := &memStore{stories: []models.Story{{ID: "s"}}, loadErr: errors.New("corrupt")}
	feed := New(broken)
	feed.Load()
	assert.Empty(t, feed.Stories())
	assert.Equal(t, 0, broken.saves)
}

func TestLoadSortsNewestFirst(t *testing.T) {
	store := &memStore{stories: []models.Story{
		{ID: "old", CreatedAt: testNow.Add(-time.Hour)},
		{ID: "new", CreatedAt: testNow},
	}}
	f := New(store)
	f.Load()

	all := f.Stories()
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID)
}
