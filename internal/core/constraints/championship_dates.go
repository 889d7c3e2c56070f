package constraints

import (
	"fmt"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// ChampionshipDatesConstraint reserves a set of dates for postseason play;
// no regular-season game may be scheduled on them.
type ChampionshipDatesConstraint struct {
	BaseConstraint
	ReservedDates []time.Time
}

// NewChampionshipDatesConstraint builds a CHAMPIONSHIP_DATES constraint.
func NewChampionshipDatesConstraint(id string, scope Scope, reserved []time.Time) *ChampionshipDatesConstraint {
	ki, _ := LookupKind(ChampionshipDates)
	return &ChampionshipDatesConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         ChampionshipDates,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Championship Dates",
			DescriptionValue:  "reserved postseason dates must remain free of regular-season games",
		},
		ReservedDates: reserved,
	}
}

func (c *ChampionshipDatesConstraint) isReserved(d time.Time) bool {
	y1, m1, dd1 := d.Date()
	for _, r := range c.ReservedDates {
		y2, m2, dd2 := r.Date()
		if y1 == y2 && m1 == m2 && dd1 == dd2 {
			return true
		}
	}
	return false
}

func (c *ChampionshipDatesConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, g := range schedule.Games {
		if !c.Scope().AppliesToSport(g.Sport) {
			continue
		}
		if c.isReserved(g.Date) {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("game %s is scheduled on a reserved championship date", g.ID),
				GameIDs:     []string{g.ID},
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *ChampionshipDatesConstraint) Score(schedule *models.Schedule) (float64, error) {
	if len(schedule.Games) == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	return float64(len(schedule.Games)-len(violations)) / float64(len(schedule.Games)), nil
}
