// Package curriculum holds the fixed four-week learning plan and derives
// progress against it from daily-log titles.
package curriculum

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed curriculum.yaml
var definition []byte

// Link is a study resource attached to a day.
type Link struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// Day is one session of the curriculum.
type Day struct {
	Week             int      `yaml:"-" json:"week"`
	Day              int      `yaml:"day" json:"day"`
	ID               string   `yaml:"-" json:"id"`
	Title            string   `yaml:"title" json:"title"`
	Focus            string   `yaml:"focus" json:"focus"`
	SuggestedDate    string   `yaml:"date" json:"suggested_date"`
	TimeboxHours     float64  `yaml:"timebox_hours" json:"timebox_hours"`
	Videos           []Link   `yaml:"videos" json:"videos"`
	BuildSteps       []string `yaml:"build" json:"build_steps"`
	DefinitionOfDone []string `yaml:"done" json:"definition_of_done"`
}

// Week groups the days sharing a theme.
type Week struct {
	Number int    `yaml:"week" json:"week"`
	Title  string `yaml:"title" json:"title"`
	Days   []Day  `yaml:"days" json:"days"`
}

// Curriculum is the ordered plan.
type Curriculum struct {
	Weeks []Week `yaml:"weeks" json:"weeks"`
}

// DayID formats the W{week}D{day} token.
func DayID(week, day int) string {
	return fmt.Sprintf("W%dD%d", week, day)
}

// Parse decodes a YAML definition and fills derived fields.
func Parse(data []byte) (Curriculum, error) {
	var c Curriculum
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Curriculum{}, fmt.Errorf("decode curriculum: %w", err)
	}
	if len(c.Weeks) == 0 {
		return Curriculum{}, errors.New("curriculum has no weeks")
	}

	seen := make(map[string]struct{})
	for wi := range c.Weeks {
		week := &c.Weeks[wi]
		if week.Number <= 0 {
			return Curriculum{}, fmt.Errorf("week %d: number must be positive", wi+1)
		}
		for di := range week.Days {
			day := &week.Days[di]
			if day.Day <= 0 {
				return Curriculum{}, fmt.Errorf("week %d: day number must be positive", week.Number)
			}
			day.Week = week.Number
			day.ID = DayID(week.Number, day.Day)
			if _, dup := seen[day.ID]; dup {
				return Curriculum{}, fmt.Errorf("duplicate curriculum day %s", day.ID)
			}
			seen[day.ID] = struct{}{}
		}
		slices.SortFunc(week.Days, func(a, b Day) int { return a.Day - b.Day })
	}
	slices.SortFunc(c.Weeks, func(a, b Week) int { return a.Number - b.Number })

	return c, nil
}

var loadDefault = sync.OnceValue(func() Curriculum {
	c, err := Parse(definition)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the embedded curriculum.
func Default() Curriculum {
	return loadDefault()
}

// Days flattens the plan in (week, day) order.
func (c Curriculum) Days() []Day {
	var days []Day
	for _, week := range c.Weeks {
		days = append(days, week.Days...)
	}
	return days
}

// Day looks a day up by id, e.g. "W2D3".
func (c Curriculum) Day(id string) (Day, bool) {
	for _, week := range c.Weeks {
		for _, day := range week.Days {
			if day.ID == id {
				return day, true
			}
		}
	}
	return Day{}, false
}

// Week looks a week up by number.
func (c Curriculum) Week(number int) (Week, bool) {
	for _, week := range c.Weeks {
		if week.Number == number {
			return week, true
		}
	}
	return Week{}, false
}
