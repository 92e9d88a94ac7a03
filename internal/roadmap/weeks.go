package roadmap

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

// WeekItem is one roadmap item's share of a single ISO week.
type WeekItem struct {
	db.RoadmapItem
	ProgressPercent int           `json:"progress_percent"`
	DailyLogs       []db.DailyLog `json:"daily_logs"`
	Artifacts       []db.Artifact `json:"artifacts"`
	PlannedHours    float64       `json:"week_planned_hours"`
	ActualHours     float64       `json:"week_actual_hours"`
}

// WeekGroup collects the activity of one Monday–Sunday ISO week.
type WeekGroup struct {
	Key               string     `json:"key"`
	Label             string     `json:"label"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Items             []WeekItem `json:"items"`
	TotalPlannedHours float64    `json:"total_planned_hours"`
	TotalActualHours  float64    `json:"total_actual_hours"`
}

// ParseDate parses a YYYY-MM-DD date at UTC midnight.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(db.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WeekStart returns the Monday that opens the week containing t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekKey formats the ISO-8601 week of t as YYYY-Www.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

type weekBucket struct {
	start time.Time
	items []WeekItem
}

// BuildWeekGroups spreads items over the ISO weeks in which they were logged.
// An item without logs lands in the week of its start date. Rows with
// unparseable dates are skipped.
func BuildWeekGroups(items []Item) []WeekGroup {
	buckets := make(map[string]*weekBucket)
	bucketFor := func(start time.Time) *weekBucket {
		key := WeekKey(start)
		b, ok := buckets[key]
		if !ok {
			b = &weekBucket{start: start}
			buckets[key] = b
		}
		return b
	}

	for _, item := range items {
		for _, week := range splitByWeek(item) {
			b := bucketFor(week.start)
			b.items = append(b.items, week.item)
		}
	}

	groups := make([]WeekGroup, 0, len(buckets))
	for key, b := range buckets {
		slices.SortFunc(b.items, func(x, y WeekItem) int {
			return compareRecords(x.RoadmapItem, y.RoadmapItem)
		})

		end := b.start.AddDate(0, 0, 6)
		group := WeekGroup{
			Key:       key,
			Label:     fmt.Sprintf("%s - %s", b.start.Format(db.DateLayout), end.Format(db.DateLayout)),
			StartDate: b.start.Format(db.DateLayout),
			EndDate:   end.Format(db.DateLayout),
			Items:     b.items,
		}
		for _, wi := range b.items {
			group.TotalPlannedHours += wi.PlannedHours
			group.TotalActualHours += wi.ActualHours
		}
		groups = append(groups, group)
	}

	slices.SortFunc(groups, func(a, b WeekGroup) int {
		return cmp.Compare(b.StartDate, a.StartDate)
	})

	return groups
}

type itemWeek struct {
	start time.Time
	item  WeekItem
}

func splitByWeek(item Item) []itemWeek {
	logsByWeek := make(map[time.Time][]db.DailyLog)
	var order []time.Time
	for _, log := range item.DailyLogs {
		date, ok := ParseDate(log.LogDate)
		if !ok {
			continue
		}
		start := WeekStart(date)
		if _, exists := logsByWeek[start]; !exists {
			order = append(order, start)
		}
		logsByWeek[start] = append(logsByWeek[start], log)
	}

	if len(order) == 0 {
		date, ok := ParseDate(item.StartDate)
		if !ok {
			return nil
		}
		start := WeekStart(date)
		order = append(order, start)
		logsByWeek[start] = []db.DailyLog{}
	}

	weeks := make([]itemWeek, 0, len(order))
	for _, start := range order {
		weekLogs := logsByWeek[start]

		logIDs := make(map[string]struct{}, len(weekLogs))
		var planned, actual float64
		for _, log := range weekLogs {
			logIDs[log.ID] = struct{}{}
			planned += Hours(log.PlannedHours)
			actual += Hours(log.ActualHours)
		}
		if planned == 0 {
			planned = Hours(item.PlannedHours)
		}
		if actual == 0 {
			actual = Hours(item.ActualHours)
		}

		weeks = append(weeks, itemWeek{
			start: start,
			item: WeekItem{
				RoadmapItem:     item.RoadmapItem,
				ProgressPercent: item.ProgressPercent,
				DailyLogs:       weekLogs,
				Artifacts:       artifactsInWeek(item.Artifacts, logIDs, start),
				PlannedHours:    planned,
				ActualHours:     actual,
			},
		})
	}
	return weeks
}

// artifactsInWeek keeps artifacts tied to one of the week's logs, or, when
// they reference no log, created during the week.
func artifactsInWeek(artifacts []db.Artifact, logIDs map[string]struct{}, start time.Time) []db.Artifact {
	selected := []db.Artifact{}
	for _, artifact := range artifacts {
		if artifact.DailyLogID != nil && *artifact.DailyLogID != "" {
			if _, ok := logIDs[*artifact.DailyLogID]; ok {
				selected = append(selected, artifact)
			}
			continue
		}
		if artifact.CreatedAt.IsZero() {
			continue
		}
		if WeekStart(artifact.CreatedAt).Equal(start) {
			selected = append(selected, artifact)
		}
	}
	return selected
}
