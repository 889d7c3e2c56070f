package orchestrator

import (
	"github.com/overlook-conference/schedcore/internal/core/annealing"
	"github.com/overlook-conference/schedcore/internal/core/models"
	"github.com/overlook-conference/schedcore/internal/core/scoring"
)

// mergeEnsemble implements §4.6 step 5: starting from the single best
// candidate, selectively adopt per-team improvements from the other
// candidates. Adoption mutates only the base clone; the original
// candidate schedules are left untouched.
func mergeEnsemble(candidates []annealing.ChainResult, venues map[string]*models.Venue, travelThreshold float64) *models.Schedule {
	if len(candidates) == 0 {
		return nil
	}
	base := candidates[0].BestSchedule.Clone()
	if len(candidates) == 1 {
		return base
	}

	for _, team := range base.Teams {
		baseTravel, err := scoring.TeamTravelCost(base, venues, team.ID)
		if err != nil {
			continue
		}
		baseHome, baseAway := base.HomeAwayCounts(team.ID)
		baseImbalance := abs(baseHome - baseAway)

		for _, cand := range candidates[1:] {
			candSchedule := cand.BestSchedule
			candTravel, err := scoring.TeamTravelCost(candSchedule, venues, team.ID)
			if err == nil && candTravel <= baseTravel*travelThreshold {
				adoptVenues(base, candSchedule, team.ID)
				baseTravel = candTravel
			}

			candHome, candAway := candSchedule.HomeAwayCounts(team.ID)
			candImbalance := abs(candHome - candAway)
			if candImbalance < baseImbalance {
				adoptHomeAway(base, candSchedule, team.ID)
				baseImbalance = candImbalance
			}
		}
	}
	return base
}

// adoptVenues copies src's venue assignment, for every game involving
// teamID, onto the matching (by game id) game in dst.
func adoptVenues(dst, src *models.Schedule, teamID string) {
	srcByID := make(map[string]*models.Game, len(src.Games))
	for _, g := range src.Games {
		if g.HasTeam(teamID) {
			srcByID[g.ID] = g
		}
	}
	for _, g := range dst.Games {
		if sg, ok := srcByID[g.ID]; ok {
			g.VenueID = sg.VenueID
		}
	}
}

// adoptHomeAway copies src's home/away assignment, for every game
// involving teamID, onto the matching (by game id) game in dst.
func adoptHomeAway(dst, src *models.Schedule, teamID string) {
	srcByID := make(map[string]*models.Game, len(src.Games))
	for _, g := range src.Games {
		if g.HasTeam(teamID) {
			srcByID[g.ID] = g
		}
	}
	for _, g := range dst.Games {
		if sg, ok := srcByID[g.ID]; ok {
			g.HomeTeamID, g.AwayTeamID = sg.HomeTeamID, sg.AwayTeamID
		}
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
