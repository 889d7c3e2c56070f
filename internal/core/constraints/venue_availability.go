package constraints

import (
	"fmt"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// VenueAvailabilityConstraint rejects games scheduled on a venue's blackout
// dates.
type VenueAvailabilityConstraint struct {
	DateConstraint
}

// NewVenueAvailabilityConstraint builds a VENUE_AVAILABILITY constraint
// from a venue id -> blackout dates map.
func NewVenueAvailabilityConstraint(id string, scope Scope, unavailable map[string][]time.Time) *VenueAvailabilityConstraint {
	ki, _ := LookupKind(VenueAvailability)
	return &VenueAvailabilityConstraint{
		DateConstraint: DateConstraint{
			BaseConstraint: BaseConstraint{
				IDValue:           id,
				KindValue:         VenueAvailability,
				HardnessValue:     ki.Hardness,
				BasePriorityValue: ki.BasePriority,
				CategoryValue:     ki.Category,
				WeightValue:       1.0,
				ScopeValue:        scope,
				NameValue:         "Venue Availability",
				DescriptionValue:  "games cannot be scheduled on a venue's blackout dates",
			},
			UnavailableDates: unavailable,
		},
	}
}

func (c *VenueAvailabilityConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, g := range schedule.Games {
		if !c.Scope().AppliesToSport(g.Sport) {
			continue
		}
		if c.IsDateUnavailable(g.VenueID, g.Date) {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("venue %s is unavailable on %s", g.VenueID, g.Date.Format("2006-01-02")),
				GameIDs:     []string{g.ID},
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *VenueAvailabilityConstraint) Score(schedule *models.Schedule) (float64, error) {
	if len(schedule.Games) == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	return float64(len(schedule.Games)-len(violations)) / float64(len(schedule.Games)), nil
}
