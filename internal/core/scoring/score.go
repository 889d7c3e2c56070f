package scoring

import (
	"fmt"
	"math"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// ScoringError signals a NaN/Inf numeric failure in a score component
// (§4.7); it is fatal for the chain that produced it.
type ScoringError struct {
	Component string
	Detail    string
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring error in %s: %s", e.Component, e.Detail)
}

// Weights are the per-component multipliers w_k (§4.7), derived from the
// effective constraint set's aggregated weights per kind. Plain named
// fields rather than a map keyed by the constraints package's Kind type,
// to keep scoring a leaf package the constraint library itself can depend on
// for Haversine.
type Weights struct {
	Travel          float64
	HomeAwayBalance float64
	TeamRest        float64
	ConsecutiveHA   float64
}

// Breakdown exposes each raw (unweighted) component value for diagnostics
// and the refinement pass.
type Breakdown struct {
	Travel          float64
	HomeAwayBalance float64
	TeamRest        float64
	ConsecutiveHA   float64
	EngineComponent float64
}

// Score computes Σ w_k · component_k(schedule) (§4.7). engineComponent is
// the already-weighted numeric contribution of the weather/series/
// sport-specific constraints the scoring module delegates to the
// constraint engine; it is added to the total as-is. Lower is better.
func Score(schedule *models.Schedule, venues map[string]*models.Venue, w Weights, engineComponent float64) (float64, Breakdown, error) {
	travel, err := TravelComponent(schedule, venues)
	if err != nil {
		return 0, Breakdown{}, err
	}
	balance, err := HomeAwayBalanceComponent(schedule)
	if err != nil {
		return 0, Breakdown{}, err
	}
	rest, err := TeamRestComponent(schedule)
	if err != nil {
		return 0, Breakdown{}, err
	}
	consecutive, err := ConsecutiveComponent(schedule)
	if err != nil {
		return 0, Breakdown{}, err
	}

	total := w.Travel*travel + w.HomeAwayBalance*balance + w.TeamRest*rest + w.ConsecutiveHA*consecutive + engineComponent
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, Breakdown{}, &ScoringError{Component: "total", Detail: "non-finite aggregate score"}
	}
	return total, Breakdown{
		Travel:          travel,
		HomeAwayBalance: balance,
		TeamRest:        rest,
		ConsecutiveHA:   consecutive,
		EngineComponent: engineComponent,
	}, nil
}

// TravelComponent is the average per-team round-trip haversine distance:
// home -> g1.venue -> g2.venue -> ... -> gn.venue -> home, summed over
// teams and divided by team count.
func TravelComponent(schedule *models.Schedule, venues map[string]*models.Venue) (float64, error) {
	if len(schedule.Teams) == 0 {
		return 0, nil
	}
	var total float64
	for _, team := range schedule.Teams {
		games := schedule.GamesForTeam(team.ID)
		curLat, curLon := team.Latitude, team.Longitude
		for _, g := range games {
			v, ok := venues[g.VenueID]
			if !ok {
				continue
			}
			if v.Latitude < -90 || v.Latitude > 90 {
				return 0, &ScoringError{Component: "travel", Detail: "venue latitude out of range"}
			}
			d := Haversine(curLat, curLon, v.Latitude, v.Longitude)
			if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				return 0, &ScoringError{Component: "travel", Detail: "negative or non-finite distance"}
			}
			total += d
			curLat, curLon = v.Latitude, v.Longitude
		}
		total += Haversine(curLat, curLon, team.Latitude, team.Longitude)
	}
	return total / float64(len(schedule.Teams)), nil
}

// TeamTravelCost is the single-team round-trip haversine total used by
// the orchestrator's ensemble merge to compare a team's travel pattern
// across candidate schedules (§4.6 step 5).
func TeamTravelCost(schedule *models.Schedule, venues map[string]*models.Venue, teamID string) (float64, error) {
	team := schedule.TeamByID(teamID)
	if team == nil {
		return 0, &ScoringError{Component: "travel", Detail: "unknown team " + teamID}
	}
	var total float64
	curLat, curLon := team.Latitude, team.Longitude
	for _, g := range schedule.GamesForTeam(teamID) {
		v, ok := venues[g.VenueID]
		if !ok {
			continue
		}
		d := Haversine(curLat, curLon, v.Latitude, v.Longitude)
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, &ScoringError{Component: "travel", Detail: "negative or non-finite distance"}
		}
		total += d
		curLat, curLon = v.Latitude, v.Longitude
	}
	total += Haversine(curLat, curLon, team.Latitude, team.Longitude)
	return total, nil
}

// HomeAwayBalanceComponent is the average of |home-expected|/total_games
// across teams, scaled x100.
func HomeAwayBalanceComponent(schedule *models.Schedule) (float64, error) {
	if len(schedule.Teams) == 0 {
		return 0, nil
	}
	var total float64
	counted := 0
	for _, team := range schedule.Teams {
		home, away := schedule.HomeAwayCounts(team.ID)
		games := home + away
		if games == 0 {
			continue
		}
		expected := float64(games) / 2
		total += math.Abs(float64(home)-expected) / float64(games)
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return (total / float64(counted)) * 100, nil
}

// TeamRestComponent sums, per team over games sorted by date, the penalty
// (1-gap_days)*10 for gaps under 1 day. Negative gaps are an invariant
// violation upstream (§3/§9) and are never expected to reach this
// function — callers must reject or repair such schedules before scoring.
func TeamRestComponent(schedule *models.Schedule) (float64, error) {
	var total float64
	for _, team := range schedule.Teams {
		games := schedule.GamesForTeam(team.ID)
		for i := 1; i < len(games); i++ {
			gap := games[i].Date.Sub(games[i-1].Date).Hours() / 24
			if gap < 0 {
				return 0, &ScoringError{Component: "team_rest", Detail: fmt.Sprintf("negative rest gap for team %s between %s and %s", team.ID, games[i-1].ID, games[i].ID)}
			}
			if gap < 1 {
				total += (1 - gap) * 10
			}
		}
	}
	return total, nil
}

// ConsecutiveComponent sums, per team, max(0, run_length-3) over every run
// of consecutive home or away games.
func ConsecutiveComponent(schedule *models.Schedule) (float64, error) {
	var total float64
	for _, team := range schedule.Teams {
		games := schedule.GamesForTeam(team.ID)
		total += float64(runPenalty(homeRuns(games, team.ID), 3))
		total += float64(runPenalty(awayRuns(games, team.ID), 3))
	}
	return total, nil
}

func homeRuns(games []*models.Game, teamID string) []int { return sideRuns(games, teamID, true) }
func awayRuns(games []*models.Game, teamID string) []int { return sideRuns(games, teamID, false) }

func sideRuns(games []*models.Game, teamID string, home bool) []int {
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
