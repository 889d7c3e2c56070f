package constraints

import (
	"fmt"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// WeekendDistributionConstraint encourages a minimum fraction of games to
// fall on Saturday/Sunday for attendance.
type WeekendDistributionConstraint struct {
	BaseConstraint
	MinWeekendRatio float64
}

// NewWeekendDistributionConstraint builds a WEEKEND_DISTRIBUTION
// constraint.
func NewWeekendDistributionConstraint(id string, scope Scope, minWeekendRatio float64) *WeekendDistributionConstraint {
	ki, _ := LookupKind(WeekendDistribution)
	return &WeekendDistributionConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         WeekendDistribution,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Weekend Distribution",
			DescriptionValue:  fmt.Sprintf("at least %.0f%% of games should fall on a weekend", minWeekendRatio*100),
		},
		MinWeekendRatio: minWeekendRatio,
	}
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

func (c *WeekendDistributionConstraint) ratio(schedule *models.Schedule) float64 {
	if len(schedule.Games) == 0 {
		return 1.0
	}
	weekend := 0
	for _, g := range schedule.Games {
		if isWeekend(g.Date) {
			weekend++
		}
	}
	return float64(weekend) / float64(len(schedule.Games))
}

func (c *WeekendDistributionConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	if c.ratio(schedule) < c.MinWeekendRatio {
		return []Violation{{
			Description: "weekend game ratio is below the configured minimum",
			Severity:    c.Hardness().String(),
		}}, nil
	}
	return nil, nil
}

func (c *WeekendDistributionConstraint) Score(schedule *models.Schedule) (float64, error) {
	r := c.ratio(schedule)
	if r >= c.MinWeekendRatio {
		return 1.0, nil
	}
	if c.MinWeekendRatio == 0 {
		return 1.0, nil
	}
	return r / c.MinWeekendRatio, nil
}
