package curriculum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

func TestBuildDailyLogDraft(t *testing.T) {
	day := Day{
		Week:             3,
		Day:              2,
		ID:               "W3D2",
		Title:            "Pandas basics",
		Focus:            "DataFrames",
		SuggestedDate:    "2026-03-03",
		TimeboxHours:     1.5,
		Videos:           []Link{{Title: "10 minutes to pandas", URL: "https://pandas.pydata.org/docs/user_guide/10min.html"}},
		BuildSteps:       []string{"Load a CSV"},
		DefinitionOfDone: []string{"Notebook committed"},
	}

	draft := BuildDailyLogDraft(day)

	assert.Equal(t, "W3D2 - Pandas basics", draft.Title)
	assert.Equal(t, 1.5, draft.PlannedHours)
	assert.Equal(t, "2026-03-03", draft.LogDate)
	assert.Equal(t, "W3D2", draft.CurriculumDayID)

	assert.Equal(t, strings.Join([]string{
		"**Focus:** DataFrames",
		"",
		"**Timebox:** 1.5h",
		"",
		"**Videos:**",
		"- [10 minutes to pandas](https://pandas.pydata.org/docs/user_guide/10min.html)",
		"",
		"**Build:**",
		"- Load a CSV",
		"",
		"**Definition of done:**",
		"- Notebook committed",
	}, "\n"), draft.Notes)

	assert.Equal(t, []string{"W3D2"}, MatchDayIDs(draft.Title))
}

func TestBuildDailyLogDraftSkipsEmptySections(t *testing.T) {
	draft := BuildDailyLogDraft(Day{ID: "W1D1", Title: "Setup", Focus: "Tools", TimeboxHours: 2})
	assert.Equal(t, "**Focus:** Tools\n\n**Timebox:** 2h", draft.Notes)
}

func TestWeekMilestone(t *testing.T) {
	c := Default()

	week1, ok := c.Week(1)
	require.True(t, ok)
	milestone := BuildWeekMilestone(week1)

	assert.True(t, strings.HasPrefix(milestone.Title, "Week 1 -"))
	assert.Equal(t, db.StatusInProgress, milestone.Status)
	require.NotNil(t, milestone.PlannedHours)
	assert.Equal(t, 9.0, *milestone.PlannedHours)
	assert.Equal(t, "2026-02-16", milestone.StartDate)
	require.NotNil(t, milestone.EndDate)
	assert.Equal(t, "2026-02-21", *milestone.EndDate)
	assert.Equal(t, 10, milestone.SortOrder)

	week3, _ := c.Week(3)
	assert.Equal(t, db.StatusPlanned, BuildWeekMilestone(week3).Status)
}

func TestFindWeekMilestone(t *testing.T) {
	items := []db.RoadmapItem{
		{ID: "10", Title: "Week 10 - Something else"},
		{ID: "1", Title: "Week 1 - Python Foundations"},
	}

	found, ok := FindWeekMilestone(items, 1)
	require.True(t, ok)
	assert.Equal(t, "1", found.ID)

	_, ok = FindWeekMilestone(items, 2)
	assert.False(t, ok)
}
