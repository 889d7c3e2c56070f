package constraints

import (
	"fmt"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// WeatherWindowConstraint forbids outdoor-sport games outside a seasonal
// date window (e.g. baseball/softball outside [Feb, Jun]).
type WeatherWindowConstraint struct {
	BaseConstraint
	WindowStartMonth time.Month
	WindowEndMonth   time.Month
}

// NewWeatherWindowConstraint builds a WEATHER_WINDOW constraint.
func NewWeatherWindowConstraint(id string, scope Scope, startMonth, endMonth time.Month) *WeatherWindowConstraint {
	ki, _ := LookupKind(WeatherWindow)
	return &WeatherWindowConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         WeatherWindow,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Weather Window",
			DescriptionValue:  fmt.Sprintf("games must fall between %s and %s", startMonth, endMonth),
		},
		WindowStartMonth: startMonth,
		WindowEndMonth:   endMonth,
	}
}

func (c *WeatherWindowConstraint) inWindow(m time.Month) bool {
	if c.WindowStartMonth <= c.WindowEndMonth {
		return m >= c.WindowStartMonth && m <= c.WindowEndMonth
	}
	// window wraps the new year, e.g. Nov-Feb
	return m >= c.WindowStartMonth || m <= c.WindowEndMonth
}

func (c *WeatherWindowConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, g := range schedule.Games {
		if !c.Scope().AppliesToSport(g.Sport) {
			continue
		}
		if !c.inWindow(g.Date.Month()) {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("game %s falls outside the weather window", g.ID),
				GameIDs:     []string{g.ID},
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *WeatherWindowConstraint) Score(schedule *models.Schedule) (float64, error) {
	if len(schedule.Games) == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	return float64(len(schedule.Games)-len(violations)) / float64(len(schedule.Games)), nil
}
