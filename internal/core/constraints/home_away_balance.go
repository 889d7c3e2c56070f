package constraints

import (
	"fmt"
	"math"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// HomeAwayBalanceConstraint penalizes teams whose home/away split deviates
// from even.
type HomeAwayBalanceConstraint struct {
	BaseConstraint
	MaxImbalance int
}

// NewHomeAwayBalanceConstraint builds a HOME_AWAY_BALANCE constraint.
func NewHomeAwayBalanceConstraint(id string, scope Scope, maxImbalance int) *HomeAwayBalanceConstraint {
	ki, _ := LookupKind(HomeAwayBalance)
	return &HomeAwayBalanceConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         HomeAwayBalance,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Home/Away Balance",
			DescriptionValue:  fmt.Sprintf("home/away imbalance should not exceed %d", maxImbalance),
		},
		MaxImbalance: maxImbalance,
	}
}

func (c *HomeAwayBalanceConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		home, away := schedule.HomeAwayCounts(team.ID)
		imbalance := int(math.Abs(float64(home - away)))
		if imbalance > c.MaxImbalance {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("%s has a home/away imbalance of %d (home=%d, away=%d)", team.ID, imbalance, home, away),
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *HomeAwayBalanceConstraint) Score(schedule *models.Schedule) (float64, error) {
	teams := 0
	var totalPenalty float64
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		teams++
		home, away := schedule.HomeAwayCounts(team.ID)
		total := home + away
		if total == 0 {
			continue
		}
		expected := float64(total) / 2
		penalty := math.Abs(float64(home)-expected) / float64(total)
		totalPenalty += penalty
	}
	if teams == 0 {
		return 1.0, nil
	}
	avgPenalty := totalPenalty / float64(teams)
	score := 1 - avgPenalty
	if score < 0 {
		score = 0
	}
	return score, nil
}

// HomeAwayAnalysis summarizes a team's home/away split.
type HomeAwayAnalysis struct {
	TeamID    string
	Home      int
	Away      int
	Imbalance int
}

// AnalyzeTeamHomeAwayBalance returns the home/away split for teamID.
func AnalyzeTeamHomeAwayBalance(schedule *models.Schedule, teamID string) HomeAwayAnalysis {
	home, away := schedule.HomeAwayCounts(teamID)
	return HomeAwayAnalysis{TeamID: teamID, Home: home, Away: away, Imbalance: int(math.Abs(float64(home - away)))}
}

// GetTeamsWithPoorBalance returns every team whose imbalance exceeds
// maxImbalance.
func GetTeamsWithPoorBalance(schedule *models.Schedule, maxImbalance int) []HomeAwayAnalysis {
	var out []HomeAwayAnalysis
	for _, t := range schedule.Teams {
		a := AnalyzeTeamHomeAwayBalance(schedule, t.ID)
		if a.Imbalance > maxImbalance {
			out = append(out, a)
		}
	}
	return out
}
