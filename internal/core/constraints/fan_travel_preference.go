package constraints

import "github.com/overlook-conference/schedcore/internal/core/models"

// FanTravelPreferenceConstraint is a nice-to-have: it nudges away games
// within a team's own travel zone, which fans can drive to, ahead of games
// requiring air travel. Purely a preference, never a hard gate.
type FanTravelPreferenceConstraint struct {
	BaseConstraint
}

// NewFanTravelPreferenceConstraint builds a FAN_TRAVEL_PREFERENCE
// constraint.
func NewFanTravelPreferenceConstraint(id string, scope Scope) *FanTravelPreferenceConstraint {
	ki, _ := LookupKind(FanTravelPreference)
	return &FanTravelPreferenceConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         FanTravelPreference,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Fan Travel Preference",
			DescriptionValue:  "prefer opponents within a team's own travel zone",
		},
	}
}

func (c *FanTravelPreferenceConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	return nil, nil
}

func (c *FanTravelPreferenceConstraint) Score(schedule *models.Schedule) (float64, error) {
	teamZone := make(map[string]string, len(schedule.Teams))
	for _, t := range schedule.Teams {
		teamZone[t.ID] = t.TravelZone()
	}
	total, inZone := 0, 0
	for _, g := range schedule.Games {
		hz, aok := teamZone[g.HomeTeamID]
		az, bok := teamZone[g.AwayTeamID]
		if !aok || !bok || hz == "" || az == "" {
			continue
		}
		total++
		if hz == az {
			inZone++
		}
	}
	if total == 0 {
		return 1.0, nil
	}
	return float64(inZone) / float64(total), nil
}
