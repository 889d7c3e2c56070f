package constraints

import (
	"fmt"
	"sort"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// SeriesStructureConstraint enforces that games sharing a SeriesID are
// played on consecutive days at the same venue (the baseball/softball
// "series" of the GLOSSARY).
type SeriesStructureConstraint struct {
	BaseConstraint
	ExpectedLength int
}

// NewSeriesStructureConstraint builds a SERIES_STRUCTURE constraint.
func NewSeriesStructureConstraint(id string, scope Scope, expectedLength int) *SeriesStructureConstraint {
	ki, _ := LookupKind(SeriesStructure)
	return &SeriesStructureConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         SeriesStructure,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Series Structure",
			DescriptionValue:  "series games must be consecutive days at the same venue",
		},
		ExpectedLength: expectedLength,
	}
}

func (c *SeriesStructureConstraint) seriesGroups(schedule *models.Schedule) map[string][]*models.Game {
	groups := make(map[string][]*models.Game)
	for _, g := range schedule.Games {
		if g.SeriesID == "" || !c.Scope().AppliesToSport(g.Sport) {
			continue
		}
		groups[g.SeriesID] = append(groups[g.SeriesID], g)
	}
	return groups
}

func (c *SeriesStructureConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for seriesID, games := range c.seriesGroups(schedule) {
		sort.Slice(games, func(i, j int) bool { return games[i].Date.Before(games[j].Date) })

		if c.ExpectedLength > 0 && len(games) != c.ExpectedLength {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("series %s has %d games, expected %d", seriesID, len(games), c.ExpectedLength),
				Severity:    c.Hardness().String(),
			})
			continue
		}
		for i := 1; i < len(games); i++ {
			gapDays := games[i].Date.Sub(games[i-1].Date).Hours() / 24
			if gapDays > 1 {
				violations = append(violations, Violation{
					Description: fmt.Sprintf("series %s games %s and %s are not on consecutive days", seriesID, games[i-1].ID, games[i].ID),
					GameIDs:     []string{games[i-1].ID, games[i].ID},
					Severity:    c.Hardness().String(),
				})
			}
			if games[i].VenueID != games[0].VenueID {
				violations = append(violations, Violation{
					Description: fmt.Sprintf("series %s game %s is not at the series venue", seriesID, games[i].ID),
					GameIDs:     []string{games[i].ID},
					Severity:    c.Hardness().String(),
				})
			}
		}
	}
	return violations, nil
}

func (c *SeriesStructureConstraint) Score(schedule *models.Schedule) (float64, error) {
	groups := c.seriesGroups(schedule)
	if len(groups) == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	score := float64(len(groups)-len(violations)) / float64(len(groups))
	if score < 0 {
		score = 0
	}
	return score, nil
}
