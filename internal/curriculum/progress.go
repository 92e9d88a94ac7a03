package curriculum

import (
	"math"
	"regexp"
	"strings"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

// Day states. A day moves from pending to logged once a log refers to it.
const (
	StatePending = "pending"
	StateLogged  = "logged"
)

var dayToken = regexp.MustCompile(`(?i)W[1-4]D[1-6]`)

// Progress summarizes completion of the plan.
type Progress struct {
	CompletedDays int `json:"completed_days"`
	TotalDays     int `json:"total_days"`
	Percent       int `json:"percent"`
}

// MatchDayIDs returns every W<week>D<day> token found in title, upper-cased.
func MatchDayIDs(title string) []string {
	matches := dayToken.FindAllString(title, -1)
	for i, m := range matches {
		matches[i] = strings.ToUpper(m)
	}
	return matches
}

// CompletedFromTitles collects the day ids mentioned in titles.
func CompletedFromTitles(titles []string) map[string]struct{} {
	completed := make(map[string]struct{})
	for _, title := range titles {
		for _, id := range MatchDayIDs(title) {
			completed[id] = struct{}{}
		}
	}
	return completed
}

// CompletedDayIDs collects completed days from log titles and from the
// explicit curriculum link when a log carries one.
func CompletedDayIDs(logs []db.DailyLog) map[string]struct{} {
	titles := make([]string, 0, len(logs))
	for _, log := range logs {
		titles = append(titles, log.Title)
	}
	completed := CompletedFromTitles(titles)

	for _, log := range logs {
		if log.CurriculumDayID == nil {
			continue
		}
		id := strings.ToUpper(strings.TrimSpace(*log.CurriculumDayID))
		if id != "" {
			completed[id] = struct{}{}
		}
	}
	return completed
}

// StateOf reports whether day has been logged.
func StateOf(day Day, completed map[string]struct{}) string {
	if _, ok := completed[day.ID]; ok {
		return StateLogged
	}
	return StatePending
}

// ComputeProgress counts the curriculum days present in completed.
func ComputeProgress(days []Day, completed map[string]struct{}) Progress {
	progress := Progress{TotalDays: len(days)}
	for _, day := range days {
		if _, ok := completed[day.ID]; ok {
			progress.CompletedDays++
		}
	}
	if progress.TotalDays == 0 {
		return progress
	}
	progress.Percent = int(math.Round(float64(progress.CompletedDays) / float64(progress.TotalDays) * 100))
	return progress
}

// NextIncompleteDay returns the first pending day, or nil once every day is
// logged.
func NextIncompleteDay(days []Day, completed map[string]struct{}) *Day {
	for _, day := range days {
		if _, ok := completed[day.ID]; !ok {
			next := day
			return &next
		}
	}
	return nil
}
