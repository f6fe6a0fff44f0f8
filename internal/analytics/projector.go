// Package analytics derives chart series and category summaries from the
// current habit collection. Nothing it produces is persisted.
package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/utils"
)

// HabitSource supplies a snapshot of all habits.
type HabitSource interface {
	Habits() []models.Habit
}

// ChartPoint is one day's progress toward the habit's target, in [0, 1].
type ChartPoint struct {
	Label string    `json:"label"`
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
}

type CategoryProgress = models.CategoryRollup

type Projector struct {
	source    HabitSource
	clock     func() time.Time
	weekStart time.Weekday
}

type Option func(*Projector)

func WithClock(clock func() time.Time) Option {
	return func(p *Projector) { p.clock = clock }
}

func WithWeekStart(day time.Weekday) Option {
	return func(p *Projector) { p.weekStart = day }
}

func New(source HabitSource, opts ...Option) *Projector {
	p := &Projector{
		source:    source,
		clock:     time.Now,
		weekStart: time.Monday,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func dayRatio(h models.Habit, day time.Time) float64 {
	target := h.TargetValue
	if target <= 0 {
		target = 1
	}
	ratio := float64(h.TotalValueOn(day)) / float64(target)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// WeeklySeries returns seven points starting at the current week's first day.
func (p *Projector) WeeklySeries(h models.Habit) []ChartPoint {
	start := utils.StartOfWeek(p.clock(), p.weekStart)
	points := make([]ChartPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := utils.AddDays(start, i)
		points = append(points, ChartPoint{
			Label: day.Weekday().String()[:3],
			Value: dayRatio(h, day),
			Date:  day,
		})
	}
	return points
}

// MonthlySeries returns one point per day of the current month, stopping
// after 30 points. Day 31 is never charted.
func (p *Projector) MonthlySeries(h models.Habit) []ChartPoint {
	now := p.clock()
	start := utils.StartOfMonth(now)
	n := min(utils.DaysInMonth(now), constants.MonthlySeriesCap)

	points := make([]ChartPoint, 0, n)
	for i := 0; i < n; i++ {
		day := utils.AddDays(start, i)
		points = append(points, ChartPoint{
			Label: strconv.Itoa(day.Day()),
			Value: dayRatio(h, day),
			Date:  day,
		})
	}
	return points
}

// CategoryProgress summarizes active habits per category, most completed first.
func (p *Projector) CategoryProgress() []CategoryProgress {
	out := models.RollupByCategory(p.source.Habits())
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCompletions > out[j].TotalCompletions
	})
	return out
}

// Average returns the mean value of a series, 0 when empty.
func Average(points []ChartPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, pt := range points {
		sum += pt.Value
	}
	return sum / float64(len(points))
}
