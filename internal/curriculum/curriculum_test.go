package curriculum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCurriculumShape(t *testing.T) {
	c := Default()
	require.Len(t, c.Weeks, 4)

	days := c.Days()
	require.Len(t, days, 24)

	for i, day := range days {
		week, dayNum := i/6+1, i%6+1
		assert.Equal(t, week, day.Week)
		assert.Equal(t, dayNum, day.Day)
		assert.Equal(t, DayID(week, dayNum), day.ID)
		assert.NotEmpty(t, day.Title)
		assert.Positive(t, day.TimeboxHours)

		_, err := time.Parse("2006-01-02", day.SuggestedDate)
		assert.NoError(t, err, day.ID)
	}
}

func TestDefaultCurriculumLookup(t *testing.T) {
	c := Default()

	day, ok := c.Day("W3D2")
	require.True(t, ok)
	assert.Equal(t, "Pandas basics", day.Title)

	_, ok = c.Day("W9D9")
	assert.False(t, ok)

	week, ok := c.Week(2)
	require.True(t, ok)
	assert.Len(t, week.Days, 6)
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte(`
weeks:
  - week: 1
    title: One
    days:
      - day: 1
        title: a
      - day: 1
        title: b
`))
	assert.Error(t, err)
}

func TestParseSortsDays(t *testing.T) {
	c, err := Parse([]byte(`
weeks:
  - week: 2
    title: Two
    days:
      - day: 2
        title: b
      - day: 1
        title: a
  - week: 1
    title: One
    days:
      - day: 1
        title: first
`))
	require.NoError(t, err)

	var ids []string
	for _, day := range c.Days() {
		ids = append(ids, day.ID)
	}
	assert.Equal(t, []string{"W1D1", "W2D1", "W2D2"}, ids)
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse([]byte("weeks: []"))
	assert.Error(t, err)
}
