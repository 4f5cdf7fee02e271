package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
)

const (
	barWidth   = 30
	chartWidth = 28
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	labelStyle  = lipgloss.NewStyle().Width(14)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	metStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// renderGoal draws the goal card: headline, progress bar and detail line.
func renderGoal(v viewstate.GoalView) string {
	if !v.HasGoal {
		return cardStyle.Render(titleStyle.Render(v.Headline) + "\n" + mutedStyle.Render(v.Detail))
	}
	style := barStyle
	if v.Met {
		style = metStyle
	}
	lines := []string{
		titleStyle.Render(v.Headline),
		style.Render(progressBar(v.Bar, barWidth)),
		v.Detail,
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// progressBar renders percent (0..100) as a fixed width bar.
func progressBar(percent, width int) string {
	filled := percent * width / 100
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// renderWeek draws one horizontal bar per day scaled to the busiest day.
func renderWeek(days []viewstate.DayTotal) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Calories)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Last 7 days"))
	for _, d := range days {
		n := 0
		if peak > 0 {
			n = d.Calories * chartWidth / peak
		}
		fmt.Fprintf(&b, "\n%s %s %s",
			labelStyle.Render(d.Date.Format("Mon 02 Jan")),
			barStyle.Render(strings.Repeat("▇", n)),
			mutedStyle.Render(strconv.Itoa(d.Calories)+" kcal"),
		)
	}
	return b.String()
}

// renderHistory lists records as they came from the backend.
func renderHistory(records []models.ActivityRecord) string {
	if len(records) == 0 {
		return mutedStyle.Render("No activities found.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Activities (%d)", len(records))))
	for _, r := range records {
		fmt.Fprintf(&b, "\n%s %5s  %s  %d min  %d kcal",
			labelStyle.Render(r.DisplayDate()),
			r.DisplayTime(),
			labelStyle.Render(r.Type.Label()),
			r.DurationMin,
			r.Calories,
		)
		if r.LocationName != nil && *r.LocationName != "" {
			b.WriteString(mutedStyle.Render("  @ " + *r.LocationName))
		}
	}
	return b.String()
}

// renderProfile shows the profile fields, "-" for absent ones.
func renderProfile(p *models.Profile) string {
	rows := [][2]string{
		{"Username", p.Username},
		{"Email", p.Email},
		{"Phone", optString(p.Phone)},
		{"Height", optFloat(p.Height, "cm")},
		{"Weight", optFloat(p.Weight, "kg")},
		{"Date of birth", optString(p.DateOfBirth)},
		{"Age", optInt(p.Age)},
		{"Gender", optString(p.Gender)},
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render("Profile"))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r[0])+r[1])
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderActivityMenu(types []models.ActivityType) string {
	var b strings.Builder
	b.WriteString("Activity types:")
	for i, t := range types {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, t.Label())
	}
	return b.String()
}

func optString(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func optFloat(f *float64, unit string) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64) + " " + unit
}

func optInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
