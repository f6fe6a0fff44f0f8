// Package stats renders the dashboard summary panel.
package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/elevate/internal/analytics"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/tui/components/chart"
)

// Summary is everything the panel shows, computed by the caller.
type Summary struct {
	Completed  int
	Active     int
	TodayRate  float64
	BestStreak int
	Longest    int
	Attention  []models.Habit
	Top        []models.Habit
	Categories []analytics.CategoryProgress
	Focus      *models.Habit
	Week       []analytics.ChartPoint
	Quote      string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

type Model struct {
	summary Summary
	width   int
}

func New(width int) Model {
	return Model{width: width}
}

func (m *Model) SetSummary(s Summary) {
	m.summary = s
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) barWidth() int {
	w := m.width/2 - 12
	return max(10, min(w, 40))
}

func (m Model) today() string {
	s := m.summary
	lines := []string{
		headerStyle.Render("Today"),
		fmt.Sprintf("Completed  %s", valueStyle.Render(fmt.Sprintf("%d/%d", s.Completed, s.Active))),
		fmt.Sprintf("Rate       %s", valueStyle.Render(fmt.Sprintf("%.0f%%", s.TodayRate*100))),
		fmt.Sprintf("Best       %s", valueStyle.Render(fmt.Sprintf("%d days", s.BestStreak))),
		fmt.Sprintf("Longest    %s", valueStyle.Render(fmt.Sprintf("%d days", s.Longest))),
	}
	if len(s.Attention) > 0 {
		lines = append(lines, "", warnStyle.Render("Needs attention"))
		for _, h := range s.Attention {
			lines = append(lines, fmt.Sprintf("  %s (%d)", h.Name, h.Streak))
		}
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) top() string {
	lines := []string{headerStyle.Render("Top streaks")}
	if len(m.summary.Top) == 0 {
		lines = append(lines, mutedStyle.Render("nothing yet"))
	}
	for i, h := range m.summary.Top {
		lines = append(lines, fmt.Sprintf("%d. %-18s 🔥 %d", i+1, h.Name, h.Streak))
	}
	if len(m.summary.Categories) > 0 {
		lines = append(lines, "", headerStyle.Render("Categories"))
		for _, c := range m.summary.Categories {
			lines = append(lines, fmt.Sprintf("%-16s %3d done", c.Category.Label(), c.TotalCompletions))
		}
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) week() string {
	s := m.summary
	if s.Focus == nil {
		return ""
	}
	title := headerStyle.Render("This week: " + s.Focus.Name)
	return panelStyle.Render(title + "\n" + chart.Bars(s.Week, m.barWidth()))
}

func (m Model) View() string {
	row := lipgloss.JoinHorizontal(lipgloss.Top, m.today(), " ", m.top())
	parts := []string{row}
	if w := m.week(); w != "" {
		parts = append(parts, w)
	}
	if m.summary.Quote != "" {
		parts = append(parts, mutedStyle.Render("“"+m.summary.Quote+"”"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
