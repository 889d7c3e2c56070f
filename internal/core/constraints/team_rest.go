package constraints

import (
	"fmt"
	"sort"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// TeamRestConstraint enforces a minimum number of days between a team's
// consecutive games.
type TeamRestConstraint struct {
	BaseConstraint
	MinRestDays int
}

// NewTeamRestConstraint builds a TEAM_REST constraint with the given
// minimum rest requirement.
func NewTeamRestConstraint(id string, minRestDays int, scope Scope) *TeamRestConstraint {
	ki, _ := LookupKind(TeamRest)
	return &TeamRestConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         TeamRest,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Minimum Team Rest",
			DescriptionValue:  fmt.Sprintf("teams must have at least %d day(s) between games", minRestDays),
		},
		MinRestDays: minRestDays,
	}
}

// ParameterKey implements constraints.ParameterKeyer so the engine can
// detect two TEAM_REST constraints disagreeing on the same scope.
func (c *TeamRestConstraint) ParameterKey() string {
	return fmt.Sprintf("min_rest_days=%d", c.MinRestDays)
}

func (c *TeamRestConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		games := schedule.GamesForTeam(team.ID)
		for i := 1; i < len(games); i++ {
			gap := games[i].Date.Sub(games[i-1].Date).Hours() / 24
			if gap < float64(c.MinRestDays) {
				violations = append(violations, Violation{
					Description: fmt.Sprintf("%s has only %.1f day(s) rest between %s and %s", team.ID, gap, games[i-1].ID, games[i].ID),
					GameIDs:     []string{games[i-1].ID, games[i].ID},
					Severity:    c.Hardness().String(),
				})
			}
		}
	}
	return violations, nil
}

func (c *TeamRestConstraint) Score(schedule *models.Schedule) (float64, error) {
	total, violating := 0, 0
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		games := schedule.GamesForTeam(team.ID)
		for i := 1; i < len(games); i++ {
			total++
			gap := games[i].Date.Sub(games[i-1].Date).Hours() / 24
			if gap < float64(c.MinRestDays) {
				violating++
			}
		}
	}
	if total == 0 {
		return 1.0, nil
	}
	return float64(total-violating) / float64(total), nil
}

// RestStatistics summarizes a team's rest profile across the schedule.
type RestStatistics struct {
	TeamID        string
	MinGapDays    float64
	AverageGap    float64
	ViolationDays int
}

// AnalyzeTeamRest returns rest statistics for a single team.
func AnalyzeTeamRest(schedule *models.Schedule, teamID string, minRestDays int) RestStatistics {
	games := schedule.GamesForTeam(teamID)
	stats := RestStatistics{TeamID: teamID, MinGapDays: -1}
	if len(games) < 2 {
		return stats
	}
	sort.SliceStable(games, func(i, j int) bool { return games[i].Date.Before(games[j].Date) })
	var sum float64
	count := 0
	for i := 1; i < len(games); i++ {
		gap := games[i].Date.Sub(games[i-1].Date).Hours() / 24
		sum += gap
		count++
		if stats.MinGapDays < 0 || gap < stats.MinGapDays {
			stats.MinGapDays = gap
		}
		if gap < float64(minRestDays) {
			stats.ViolationDays++
		}
	}
	stats.AverageGap = sum / float64(count)
	return stats
}
