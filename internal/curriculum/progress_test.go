package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

func TestMatchDayIDs(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{title: "W3D2 - Pandas basics", want: []string{"W3D2"}},
		{title: "w3d2 notes", want: []string{"W3D2"}},
		{title: "Week 3 Day 2", want: nil},
		{title: "W5D1 out of range", want: nil},
		{title: "W1D7 out of range", want: nil},
		{title: "catch-up: W1D5 and W1D6", want: []string{"W1D5", "W1D6"}},
		{title: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := MatchDayIDs(tt.title)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompletedDayIDsUsesExplicitLink(t *testing.T) {
	link := "w2d4"
	completed := CompletedDayIDs([]db.DailyLog{
		{Title: "W1D1 - Environment and syntax"},
		{Title: "regex practice", CurriculumDayID: &link},
		{Title: "unrelated"},
	})

	assert.Len(t, completed, 2)
	assert.Contains(t, completed, "W1D1")
	assert.Contains(t, completed, "W2D4")
}

func TestComputeProgress(t *testing.T) {
	days := Default().Days()

	progress := ComputeProgress(days, CompletedFromTitles([]string{"W1D1", "w1d2 notes", "Week 1 Day 3"}))
	assert.Equal(t, Progress{CompletedDays: 2, TotalDays: 24, Percent: 8}, progress)

	assert.Equal(t, Progress{}, ComputeProgress(nil, map[string]struct{}{"W1D1": {}}))
}

func TestComputeProgressIgnoresUnknownIDs(t *testing.T) {
	days := Default().Days()[:6]
	progress := ComputeProgress(days, map[string]struct{}{"W4D6": {}, "W1D1": {}})
	assert.Equal(t, Progress{CompletedDays: 1, TotalDays: 6, Percent: 17}, progress)
}

func TestNextIncompleteDay(t *testing.T) {
	days := Default().Days()

	next := NextIncompleteDay(days, CompletedFromTitles([]string{"W1D1", "W1D3"}))
	require.NotNil(t, next)
	assert.Equal(t, "W1D2", next.ID)

	assert.Equal(t, "W1D1", NextIncompleteDay(days, nil).ID)
}

func TestCurriculumCompleteTerminalState(t *testing.T) {
	days := Default().Days()
	completed := make(map[string]struct{}, len(days))
	for _, day := range days {
		completed[day.ID] = struct{}{}
	}

	assert.Nil(t, NextIncompleteDay(days, completed))
	assert.Equal(t, Progress{CompletedDays: 24, TotalDays: 24, Percent: 100}, ComputeProgress(days, completed))
	for _, day := range days {
		assert.Equal(t, StateLogged, StateOf(day, completed))
	}
}
