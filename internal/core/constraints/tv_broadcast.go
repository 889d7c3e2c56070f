package constraints

import (
	"fmt"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// TVBroadcastMandatoryConstraint requires games flagged with a specific TV
// window to keep that window (national broadcast commitments cannot be
// moved).
type TVBroadcastMandatoryConstraint struct {
	BaseConstraint
	RequiredWindows map[string]string // game id -> required TV window
}

// NewTVBroadcastMandatoryConstraint builds a TV_BROADCAST_MANDATORY
// constraint.
func NewTVBroadcastMandatoryConstraint(id string, scope Scope, required map[string]string) *TVBroadcastMandatoryConstraint {
	ki, _ := LookupKind(TVBroadcastMandatory)
	return &TVBroadcastMandatoryConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         TVBroadcastMandatory,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Mandatory TV Broadcast Window",
			DescriptionValue:  "nationally broadcast games must keep their assigned TV window",
		},
		RequiredWindows: required,
	}
}

func (c *TVBroadcastMandatoryConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, g := range schedule.Games {
		want, ok := c.RequiredWindows[g.ID]
		if !ok {
			continue
		}
		if g.TVWindow != want {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("game %s must keep TV window %q, has %q", g.ID, want, g.TVWindow),
				GameIDs:     []string{g.ID},
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *TVBroadcastMandatoryConstraint) Score(schedule *models.Schedule) (float64, error) {
	if len(c.RequiredWindows) == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	return float64(len(c.RequiredWindows)-len(violations)) / float64(len(c.RequiredWindows)), nil
}

// TVBroadcastPreferredConstraint is the soft counterpart: prime-time slots
// are preferred but not mandatory for flagged rivalry/marquee games.
type TVBroadcastPreferredConstraint struct {
	BaseConstraint
	PreferredWindow string
}

// NewTVBroadcastPreferredConstraint builds a TV_BROADCAST_PREFERRED
// constraint.
func NewTVBroadcastPreferredConstraint(id string, scope Scope, preferredWindow string) *TVBroadcastPreferredConstraint {
	ki, _ := LookupKind(TVBroadcastPreferred)
	return &TVBroadcastPreferredConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         TVBroadcastPreferred,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Preferred TV Broadcast Window",
			DescriptionValue:  fmt.Sprintf("marquee games prefer the %s window", preferredWindow),
		},
		PreferredWindow: preferredWindow,
	}
}

func (c *TVBroadcastPreferredConstraint) marqueeGames(schedule *models.Schedule) []*models.Game {
	var out []*models.Game
	for _, g := range schedule.Games {
		if g.Rivalry {
			out = append(out, g)
		}
	}
	return out
}

func (c *TVBroadcastPreferredConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, g := range c.marqueeGames(schedule) {
		if g.TVWindow != c.PreferredWindow {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("marquee game %s is not in the preferred TV window", g.ID),
				GameIDs:     []string{g.ID},
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *TVBroadcastPreferredConstraint) Score(schedule *models.Schedule) (float64, error) {
	marquee := c.marqueeGames(schedule)
	if len(marquee) == 0 {
		return 1.0, nil
	}
	violations, _ := c.Validate(schedule)
	return float64(len(marquee)-len(violations)) / float64(len(marquee)), nil
}
