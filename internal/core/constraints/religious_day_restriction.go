package constraints

import (
	"fmt"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// ReligiousDayRestrictionConstraint forbids games on a day of week a team
// has flagged as restricted (e.g. "no-play-on-sunday").
type ReligiousDayRestrictionConstraint struct {
	BaseConstraint
	RestrictedWeekday time.Weekday
}

// NewReligiousDayRestrictionConstraint builds a RELIGIOUS_DAY_RESTRICTION
// constraint for teams tagged "no-play-on-sunday".
func NewReligiousDayRestrictionConstraint(id string, scope Scope) *ReligiousDayRestrictionConstraint {
	ki, _ := LookupKind(ReligiousDayRestriction)
	return &ReligiousDayRestrictionConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         ReligiousDayRestriction,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Religious Day Restriction",
			DescriptionValue:  "teams flagged no-play-on-sunday cannot have Sunday games",
		},
		RestrictedWeekday: time.Sunday,
	}
}

func (c *ReligiousDayRestrictionConstraint) restrictedTeams(schedule *models.Schedule) map[string]bool {
	teams := make(map[string]bool)
	for _, t := range schedule.Teams {
		if t.NoPlayOnSunday() && c.Scope().AppliesToTeam(t.ID) {
			teams[t.ID] = true
		}
	}
	return teams
}

func (c *ReligiousDayRestrictionConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	restricted := c.restrictedTeams(schedule)
	if len(restricted) == 0 {
		return nil, nil
	}
	var violations []Violation
	for _, g := range schedule.Games {
		if g.Date.Weekday() != c.RestrictedWeekday {
			continue
		}
		if restricted[g.HomeTeamID] || restricted[g.AwayTeamID] {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("game %s falls on a restricted weekday for a participating team", g.ID),
				GameIDs:     []string{g.ID},
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *ReligiousDayRestrictionConstraint) Score(schedule *models.Schedule) (float64, error) {
	if len(schedule.Games) == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	return float64(len(schedule.Games)-len(violations)) / float64(len(schedule.Games)), nil
}
