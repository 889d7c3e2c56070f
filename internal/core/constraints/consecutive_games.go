package constraints

import (
	"fmt"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// consecutiveRuns returns the lengths of every run of consecutive games on
// the given side (home=true or away=false) for teamID, in date order.
func consecutiveRuns(schedule *models.Schedule, teamID string, home bool) []int {
	games := schedule.GamesForTeam(teamID)
	var runs []int
	current := 0
	for _, g := range games {
		onSide := (home && g.HomeTeamID == teamID) || (!home && g.AwayTeamID == teamID)
		if onSide {
			current++
		} else {
			if current > 0 {
				runs = append(runs, current)
			}
			current = 0
		}
	}
	if current > 0 {
		runs = append(runs, current)
	}
	return runs
}

func runPenalty(runs []int, maxRun int) int {
	penalty := 0
	for _, r := range runs {
		if r > maxRun {
			penalty += r - maxRun
		}
	}
	return penalty
}

// ConsecutiveHomeGamesConstraint penalizes long runs of home games.
type ConsecutiveHomeGamesConstraint struct {
	BaseConstraint
	MaxRun int
}

// NewConsecutiveHomeGamesConstraint builds a CONSECUTIVE_HOME_GAMES
// constraint.
func NewConsecutiveHomeGamesConstraint(id string, scope Scope, maxRun int) *ConsecutiveHomeGamesConstraint {
	ki, _ := LookupKind(ConsecutiveHomeGames)
	return &ConsecutiveHomeGamesConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         ConsecutiveHomeGames,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Consecutive Home Games",
			DescriptionValue:  fmt.Sprintf("home stands should not exceed %d games", maxRun),
		},
		MaxRun: maxRun,
	}
}

func (c *ConsecutiveHomeGamesConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		runs := consecutiveRuns(schedule, team.ID, true)
		if runPenalty(runs, c.MaxRun) > 0 {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("%s has a home stand exceeding %d games", team.ID, c.MaxRun),
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *ConsecutiveHomeGamesConstraint) Score(schedule *models.Schedule) (float64, error) {
	teams := 0
	var penalty int
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		teams++
		penalty += runPenalty(consecutiveRuns(schedule, team.ID, true), c.MaxRun)
	}
	if teams == 0 {
		return 1.0, nil
	}
	score := 1 - float64(penalty)/float64(teams*10)
	if score < 0 {
		score = 0
	}
	return score, nil
}

// ConsecutiveAwayGamesConstraint penalizes long road trips.
type ConsecutiveAwayGamesConstraint struct {
	BaseConstraint
	MaxRun int
}

// NewConsecutiveAwayGamesConstraint builds a CONSECUTIVE_AWAY_GAMES
// constraint.
func NewConsecutiveAwayGamesConstraint(id string, scope Scope, maxRun int) *ConsecutiveAwayGamesConstraint {
	ki, _ := LookupKind(ConsecutiveAwayGames)
	return &ConsecutiveAwayGamesConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         ConsecutiveAwayGames,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Consecutive Away Games",
			DescriptionValue:  fmt.Sprintf("road trips should not exceed %d games", maxRun),
		},
		MaxRun: maxRun,
	}
}

func (c *ConsecutiveAwayGamesConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		runs := consecutiveRuns(schedule, team.ID, false)
		if runPenalty(runs, c.MaxRun) > 0 {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("%s has a road trip exceeding %d games", team.ID, c.MaxRun),
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *ConsecutiveAwayGamesConstraint) Score(schedule *models.Schedule) (float64, error) {
	teams := 0
	var penalty int
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		teams++
		penalty += runPenalty(consecutiveRuns(schedule, team.ID, false), c.MaxRun)
	}
	if teams == 0 {
		return 1.0, nil
	}
	score := 1 - float64(penalty)/float64(teams*10)
	if score < 0 {
		score = 0
	}
	return score, nil
}
