package roadmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{date: "2025-12-29", want: "2026-W01"},
		{date: "2026-01-02", want: "2026-W01"},
		{date: "2021-01-01", want: "2020-W53"},
		{date: "2027-01-01", want: "2026-W53"},
		{date: "2026-02-16", want: "2026-W08"},
		{date: "2026-02-22", want: "2026-W08"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, ok := ParseDate(tt.date)
			require.True(t, ok)
			assert.Equal(t, tt.want, WeekKey(date))
		})
	}
}

func TestWeekStart(t *testing.T) {
	sunday, _ := ParseDate("2026-02-22")
	monday, _ := ParseDate("2026-02-16")

	assert.Equal(t, monday, WeekStart(sunday))
	assert.Equal(t, monday, WeekStart(monday))
}

func TestBuildWeekGroupsYearBoundary(t *testing.T) {
	items := MapRoadmapItems(
		[]db.RoadmapItem{{ID: "a", StartDate: "2025-12-29"}},
		[]db.DailyLog{
			{ID: "mon", RoadmapItemID: "a", LogDate: "2025-12-29"},
			{ID: "fri", RoadmapItemID: "a", LogDate: "2026-01-02"},
		},
		nil,
	)

	groups := BuildWeekGroups(items)
	require.Len(t, groups, 1)
	assert.Equal(t, "2026-W01", groups[0].Key)
	assert.Equal(t, "2025-12-29 - 2026-01-04", groups[0].Label)
	require.Len(t, groups[0].Items, 1)
	assert.Len(t, groups[0].Items[0].DailyLogs, 2)
}

func TestBuildWeekGroupsSplitsItemAcrossWeeks(t *testing.T) {
	items := MapRoadmapItems(
		[]db.RoadmapItem{
			{ID: "a", SortOrder: 2, StartDate: "2026-02-16", PlannedHours: ptr(20.0), ActualHours: ptr(6.0)},
			{ID: "b", SortOrder: 1, StartDate: "2026-02-24", PlannedHours: ptr(4.0)},
		},
		[]db.DailyLog{
			{ID: "w1", RoadmapItemID: "a", LogDate: "2026-02-17", PlannedHours: ptr(2.0), ActualHours: ptr(1.0)},
			{ID: "w2a", RoadmapItemID: "a", LogDate: "2026-02-23", PlannedHours: ptr(1.5), ActualHours: ptr(2.0)},
			{ID: "w2b", RoadmapItemID: "a", LogDate: "2026-02-25", PlannedHours: ptr(1.5), ActualHours: ptr(1.0)},
		},
		nil,
	)

	groups := BuildWeekGroups(items)
	require.Len(t, groups, 2)

	latest := groups[0]
	assert.Equal(t, "2026-W09", latest.Key)
	require.Len(t, latest.Items, 2)
	assert.Equal(t, "b", latest.Items[0].ID)
	assert.Empty(t, latest.Items[0].DailyLogs)
	assert.Equal(t, 4.0, latest.Items[0].PlannedHours)
	assert.Equal(t, 0.0, latest.Items[0].ActualHours)
	assert.Equal(t, "a", latest.Items[1].ID)
	assert.Len(t, latest.Items[1].DailyLogs, 2)
	assert.Equal(t, 3.0, latest.Items[1].PlannedHours)
	assert.Equal(t, 3.0, latest.Items[1].ActualHours)
	assert.Equal(t, 7.0, latest.TotalPlannedHours)
	assert.Equal(t, 3.0, latest.TotalActualHours)

	earliest := groups[1]
	assert.Equal(t, "2026-W08", earliest.Key)
	require.Len(t, earliest.Items, 1)
	assert.Equal(t, []string{"w1"}, []string{earliest.Items[0].DailyLogs[0].ID})
}

func TestBuildWeekGroupsFallsBackToItemHours(t *testing.T) {
	items := MapRoadmapItems(
		[]db.RoadmapItem{{ID: "a", StartDate: "2026-02-16", PlannedHours: ptr(9.0), ActualHours: ptr(3.0)}},
		[]db.DailyLog{{ID: "l", RoadmapItemID: "a", LogDate: "2026-02-18"}},
		nil,
	)

	groups := BuildWeekGroups(items)
	require.Len(t, groups, 1)
	assert.Equal(t, 9.0, groups[0].TotalPlannedHours)
	assert.Equal(t, 3.0, groups[0].TotalActualHours)
}

func TestBuildWeekGroupsAssignsArtifacts(t *testing.T) {
	items := MapRoadmapItems(
		[]db.RoadmapItem{{ID: "a", StartDate: "2026-02-16"}},
		[]db.DailyLog{
			{ID: "l1", RoadmapItemID: "a", LogDate: "2026-02-17"},
			{ID: "l2", RoadmapItemID: "a", LogDate: "2026-02-24"},
		},
		[]db.Artifact{
			{ID: "by-log", RoadmapItemID: ptr("a"), DailyLogID: ptr("l2"), CreatedAt: time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)},
			{ID: "by-date", RoadmapItemID: ptr("a"), CreatedAt: time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)},
			{ID: "foreign-log", RoadmapItemID: ptr("a"), DailyLogID: ptr("other"), CreatedAt: time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)},
			{ID: "quiet-week", RoadmapItemID: ptr("a"), CreatedAt: time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)},
		},
	)

	groups := BuildWeekGroups(items)
	require.Len(t, groups, 2)

	artifactIDs := func(group WeekGroup) []string {
		ids := []string{}
		for _, artifact := range group.Items[0].Artifacts {
			ids = append(ids, artifact.ID)
		}
		return ids
	}

	assert.Equal(t, []string{"by-log"}, artifactIDs(groups[0]))
	assert.Equal(t, []string{"by-date"}, artifactIDs(groups[1]))
}

func TestBuildWeekGroupsSkipsOrphans(t *testing.T) {
	items := MapRoadmapItems(
		[]db.RoadmapItem{{ID: "a", StartDate: "2026-02-16"}},
		[]db.DailyLog{{ID: "orphan", RoadmapItemID: "ghost", LogDate: "2026-03-02"}},
		nil,
	)

	groups := BuildWeekGroups(items)
	require.Len(t, groups, 1)
	assert.Equal(t, "2026-W08", groups[0].Key)
}

func TestBuildWeekGroupsEndToEnd(t *testing.T) {
	rows := []db.RoadmapItem{{
		ID:           "item",
		SortOrder:    10,
		StartDate:    "2026-02-16",
		PlannedHours: ptr(9.0),
		ActualHours:  ptr(1.5),
		Status:       db.StatusInProgress,
	}}
	logs := []db.DailyLog{{
		ID:            "log",
		RoadmapItemID: "item",
		LogDate:       "2026-02-16",
		PlannedHours:  ptr(1.5),
		ActualHours:   ptr(1.5),
	}}
	artifacts := []db.Artifact{{
		ID:            "pr",
		RoadmapItemID: ptr("item"),
		DailyLogID:    ptr("log"),
		Type:          db.ArtifactPR,
		CreatedAt:     time.Date(2026, 2, 16, 18, 0, 0, 0, time.UTC),
	}}

	items := MapRoadmapItems(rows, logs, artifacts)
	require.Len(t, items, 1)
	assert.Equal(t, 17, items[0].ProgressPercent)
	assert.Len(t, items[0].DailyLogs, 1)
	assert.Len(t, items[0].Artifacts, 1)

	groups := BuildWeekGroups(items)
	require.Len(t, groups, 1)
	assert.Equal(t, "2026-W08", groups[0].Key)
	assert.Equal(t, "2026-02-16", groups[0].StartDate)
	assert.Equal(t, "2026-02-22", groups[0].EndDate)
	assert.Equal(t, 1.5, groups[0].TotalActualHours)
	assert.Equal(t, 1.5, groups[0].TotalPlannedHours)
	assert.Len(t, groups[0].Items[0].Artifacts, 1)
}

func TestBuildWeekGroupsEmpty(t *testing.T) {
	assert.Empty(t, BuildWeekGroups(nil))
}
