package constraints

import (
	"fmt"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// RivalryGameConstraint prefers rivalry games land in the last quarter of
// the season window.
type RivalryGameConstraint struct {
	BaseConstraint
}

// NewRivalryGameConstraint builds a RIVALRY_GAME constraint.
func NewRivalryGameConstraint(id string, scope Scope) *RivalryGameConstraint {
	ki, _ := LookupKind(RivalryGame)
	return &RivalryGameConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         RivalryGame,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Rivalry Placement",
			DescriptionValue:  "rivalry games prefer the last quarter of the season",
		},
	}
}

func (c *RivalryGameConstraint) lateSeasonCutoff(schedule *models.Schedule) (cutoff float64, ok bool) {
	if !schedule.HasWindow() {
		return 0, false
	}
	total := schedule.SeasonEnd.Sub(schedule.SeasonStart).Hours()
	return total * 0.75, total > 0
}

func (c *RivalryGameConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	cutoffHours, ok := c.lateSeasonCutoff(schedule)
	if !ok {
		return nil, nil
	}
	var violations []Violation
	for _, g := range schedule.Games {
		if !g.Rivalry {
			continue
		}
		elapsed := g.Date.Sub(schedule.SeasonStart).Hours()
		if elapsed < cutoffHours {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("rivalry game %s is not in the last quarter of the season", g.ID),
				GameIDs:     []string{g.ID},
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *RivalryGameConstraint) Score(schedule *models.Schedule) (float64, error) {
	rivalryCount := 0
	for _, g := range schedule.Games {
		if g.Rivalry {
			rivalryCount++
		}
	}
	if rivalryCount == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	return float64(rivalryCount-len(violations)) / float64(rivalryCount), nil
}
