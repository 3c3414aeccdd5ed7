package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/model"
	"github.com/five82/fitlog/internal/state"
	"github.com/five82/fitlog/internal/timeline"
)

// DayView is everything needed to draw one day.
type DayView struct {
	Date        time.Time
	Timeline    timeline.Timeline
	Stats       timeline.DailyStats
	HasData     bool
	Skipped     []error
	LastError   error
	LastUpdated time.Time
}

// ViewFromSnapshot adapts a store snapshot for rendering.
func ViewFromSnapshot(s state.Snapshot) DayView {
	return DayView{
		Date:        s.Date,
		Timeline:    s.Timeline,
		Stats:       s.Stats,
		HasData:     s.HasData,
		Skipped:     s.Skipped,
		LastError:   s.LastError,
		LastUpdated: s.LastUpdated,
	}
}

const barWidth = 20

// RenderStats draws the four macro rows plus burned and net calories.
func RenderStats(st timeline.DailyStats, s Styles) string {
	rows := []string{
		macroRow("热量", st.Calories, "%.0f", s),
		macroRow("蛋白质", st.Protein, "%.1f", s),
		macroRow("碳水", st.Carbs, "%.1f", s),
		macroRow("脂肪", st.Fat, "%.1f", s),
	}
	rows = append(rows, fmt.Sprintf("%s %s   %s %s",
		s.MutedText.Render(padRight("消耗", 6)),
		s.WarningText.Render(fmt.Sprintf("%.0f kcal", st.Burned)),
		s.MutedText.Render("净摄入"),
		s.Text.Render(fmt.Sprintf("%.0f kcal", st.Net())),
	))
	return strings.Join(rows, "\n")
}

func macroRow(label string, m timeline.Macro, format string, s Styles) string {
	current := fmt.Sprintf(format, m.Current)
	if m.Target <= 0 {
		return fmt.Sprintf("%s %s %s", s.MutedText.Render(padRight(label, 6)), s.Text.Render(current), s.MutedText.Render(m.Unit))
	}
	target := fmt.Sprintf(format, m.Target)
	return fmt.Sprintf("%s %s %s / %s %s",
		s.MutedText.Render(padRight(label, 6)),
		progressBar(m.Progress(), s),
		s.Text.Render(current),
		s.MutedText.Render(target),
		s.MutedText.Render(m.Unit),
	)
}

func progressBar(ratio float64, s Styles) string {
	filled := int(ratio*barWidth + 0.5)
	style := s.SuccessText
	if ratio > 1 {
		style = s.DangerText
	}
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(strings.Repeat("█", filled)) + s.FaintText.Render(strings.Repeat("░", barWidth-filled))
}

// RenderTimeline draws each group with its members indented below it.
func RenderTimeline(tl timeline.Timeline, s Styles) string {
	if len(tl) == 0 {
		return s.MutedText.Render("今天还没有记录")
	}
	var b strings.Builder
	for i, e := range tl {
		if i > 0 {
			b.WriteString("\n")
		}
		switch {
		case e.Meal != nil:
			renderMeal(&b, *e.Meal, s)
		case e.Workout != nil:
			renderWorkout(&b, *e.Workout, s)
		}
	}
	return b.String()
}

func renderMeal(b *strings.Builder, g timeline.MealGroup, s Styles) {
	t := g.Totals()
	fmt.Fprintf(b, "%s  %s  %s  %s\n",
		s.AccentText.Render(g.Time.Format("15:04")),
		s.MealStyle(g.Meal).Render(padRight(g.Meal.Label(), 4)),
		s.Text.Render(fmt.Sprintf("%.0f kcal", t.Calories)),
		s.MutedText.Render(fmt.Sprintf("P %.1f  C %.1f  F %.1f", t.Protein, t.Carbs, t.Fat)),
	)
	for _, f := range g.Foods {
		fmt.Fprintf(b, "       %s %s  %s\n",
			s.Text.Render(f.Name),
			s.FaintText.Render(amount(f)),
			s.MutedText.Render(fmt.Sprintf("%.0f kcal", f.Nutrition.Calories)),
		)
	}
}

func renderWorkout(b *strings.Builder, g timeline.WorkoutGroup, s Styles) {
	t := g.Totals()
	fmt.Fprintf(b, "%s  %s  %s  %s\n",
		s.AccentText.Render(g.Time.Format("15:04")),
		s.WorkoutStyle().Render(padRight("运动", 4)),
		s.WarningText.Render(fmt.Sprintf("-%.0f kcal", t.CaloriesBurned)),
		s.MutedText.Render(minutes(t.Duration)),
	)
	for _, e := range g.Exercises {
		fmt.Fprintf(b, "       %s %s  %s  %s\n",
			s.Text.Render(e.Name),
			s.FaintText.Render(categoryLabel(e.Category)),
			s.MutedText.Render(minutes(e.Duration)),
			s.MutedText.Render(fmt.Sprintf("%.0f kcal", e.CaloriesBurned)),
		)
	}
}

// RenderNotices reports skipped records and the last refresh error.
func RenderNotices(v DayView, s Styles) string {
	var lines []string
	if v.LastError != nil {
		lines = append(lines, s.DangerText.Render(api.UserMessage(v.LastError)))
	}
	if n := len(v.Skipped); n > 0 {
		lines = append(lines, s.WarningText.Render(fmt.Sprintf("%d 条记录无法解析，已跳过", n)))
		for _, err := range v.Skipped {
			lines = append(lines, s.FaintText.Render("  "+err.Error()))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderDay draws the full day view: date, stats, timeline and notices.
func RenderDay(v DayView, s Styles) string {
	parts := []string{
		s.Logo.Render("fitlog") + "  " + s.Text.Render(v.Date.Format("2006-01-02 Mon")),
		s.Panel.Render(RenderStats(v.Stats, s)),
		RenderTimeline(v.Timeline, s),
	}
	if notices := RenderNotices(v, s); notices != "" {
		parts = append(parts, notices)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func amount(f model.FoodRecord) string {
	if f.Amount == 0 {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%g%s", f.Amount, f.Unit))
}

func minutes(d time.Duration) string {
	return fmt.Sprintf("%dm", int(d.Round(time.Minute)/time.Minute))
}

func categoryLabel(c model.ExerciseCategory) string {
	if c == model.ExerciseUnspecified {
		return ""
	}
	return c.Label()
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
