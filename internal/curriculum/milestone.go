package curriculum

import (
	"fmt"
	"strings"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

// MilestonePhase is the phase label given to week milestones.
const MilestonePhase = "Curriculum"

// MilestoneTitlePrefix is how week milestones are recognised, e.g. "Week 2 -".
func MilestoneTitlePrefix(week int) string {
	return fmt.Sprintf("Week %d -", week)
}

// FindWeekMilestone returns the roadmap item standing for week, if any.
func FindWeekMilestone(items []db.RoadmapItem, week int) (db.RoadmapItem, bool) {
	prefix := MilestoneTitlePrefix(week)
	for _, item := range items {
		if strings.HasPrefix(strings.TrimSpace(item.Title), prefix) {
			return item, true
		}
	}
	return db.RoadmapItem{}, false
}

// BuildWeekMilestone synthesizes the roadmap item for a week. The first week
// starts in progress.
func BuildWeekMilestone(week Week) db.RoadmapItem {
	var planned float64
	for _, day := range week.Days {
		planned += day.TimeboxHours
	}

	status := db.StatusPlanned
	if week.Number == 1 {
		status = db.StatusInProgress
	}

	item := db.RoadmapItem{
		Title:        fmt.Sprintf("%s %s", MilestoneTitlePrefix(week.Number), week.Title),
		Summary:      fmt.Sprintf("%d sessions, %sh planned.", len(week.Days), formatHours(planned)),
		Phase:        MilestonePhase,
		Status:       status,
		PlannedHours: &planned,
		SortOrder:    week.Number * 10,
	}
	if len(week.Days) > 0 {
		item.StartDate = week.Days[0].SuggestedDate
		end := week.Days[len(week.Days)-1].SuggestedDate
		item.EndDate = &end
	}
	return item
}
