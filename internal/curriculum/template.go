package curriculum

import (
	"fmt"
	"strconv"
	"strings"
)

// Draft is a daily-log payload prefilled from a curriculum day.
type Draft struct {
	Title           string  `json:"title"`
	Notes           string  `json:"notes"`
	PlannedHours    float64 `json:"planned_hours"`
	LogDate         string  `json:"log_date"`
	CurriculumDayID string  `json:"curriculum_day_id"`
}

// BuildDailyLogDraft renders the day's plan into a log title and notes.
func BuildDailyLogDraft(day Day) Draft {
	return Draft{
		Title:           fmt.Sprintf("%s - %s", day.ID, day.Title),
		Notes:           renderNotes(day),
		PlannedHours:    day.TimeboxHours,
		LogDate:         day.SuggestedDate,
		CurriculumDayID: day.ID,
	}
}

func renderNotes(day Day) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Focus:** %s\n\n", day.Focus)
	fmt.Fprintf(&b, "**Timebox:** %sh\n", formatHours(day.TimeboxHours))

	if len(day.Videos) > 0 {
		b.WriteString("\n**Videos:**\n")
		for _, v := range day.Videos {
			fmt.Fprintf(&b, "- [%s](%s)\n", v.Title, v.URL)
		}
	}
	writeList(&b, "Build", day.BuildSteps)
	writeList(&b, "Definition of done", day.DefinitionOfDone)

	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", heading)
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
