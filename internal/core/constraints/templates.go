package constraints

import (
	"fmt"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// Params carries the kind-specific arguments a template consumes. Templates
// are pure functions of these parameters (§4.2) — no I/O, no randomness.
type Params map[string]any

func (p Params) float(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return def
}

func (p Params) int(key string, def int) int {
	if v, ok := p[key]; ok {
		if i, ok := v.(int); ok {
			return i
		}
	}
	return def
}

func (p Params) venues(key string) map[string]*models.Venue {
	if v, ok := p[key]; ok {
		if m, ok := v.(map[string]*models.Venue); ok {
			return m
		}
	}
	return nil
}

// Template produces a pre-configured constraint list for a named scenario.
// Unrecognized names are an InvalidInputError-shaped error, mirroring
// process()'s rejection of unrecognized constraint kinds (§4.3).
func Template(name string, params Params) ([]Constraint, error) {
	switch name {
	case "round_robin":
		return roundRobinTemplate(params), nil
	case "conference_series":
		return conferenceSeriesTemplate(params), nil
	default:
		return nil, fmt.Errorf("unrecognized template %q", name)
	}
}

// roundRobinTemplate is the general conference round-robin preset: minimum
// rest, travel and balance soft constraints, weekend attendance preference.
func roundRobinTemplate(params Params) []Constraint {
	minRest := params.int("min_rest_days", 5)
	maxMiles := params.float("max_season_miles", 15000)
	maxAway := params.int("max_consecutive_away", 3)
	maxImbalance := params.int("max_home_away_imbalance", 1)
	venues := params.venues("venues")

	return []Constraint{
		NewTeamRestConstraint("tmpl-round-robin-rest", minRest, Scope{}),
		NewTravelDistanceConstraint("tmpl-round-robin-travel", Scope{}, maxMiles, maxAway, venues),
		NewHomeAwayBalanceConstraint("tmpl-round-robin-balance", Scope{}, maxImbalance),
		NewConsecutiveHomeGamesConstraint("tmpl-round-robin-home-streak", Scope{}, 3),
		NewConsecutiveAwayGamesConstraint("tmpl-round-robin-away-streak", Scope{}, 3),
		NewWeekendDistributionConstraint("tmpl-round-robin-weekend", Scope{}, 0.5),
	}
}

// conferenceSeriesTemplate is the baseball/softball weekend-series preset:
// series structure, the seasonal weather window, and a relaxed rest
// requirement (teams rest between series, not between individual games).
func conferenceSeriesTemplate(params Params) []Constraint {
	seriesLen := params.int("series_length", 3)
	startMonth := time.Month(params.int("window_start_month", int(time.February)))
	endMonth := time.Month(params.int("window_end_month", int(time.June)))

	return []Constraint{
		NewSeriesStructureConstraint("tmpl-series-structure", Scope{}, seriesLen),
		NewWeatherWindowConstraint("tmpl-series-weather", Scope{}, startMonth, endMonth),
		NewTeamRestConstraint("tmpl-series-rest", 0, Scope{}),
	}
}

// GenerateRoundRobin builds an initial schedule where each team plays every
// other team once, spread across [start,end]; the rotation algorithm keeps
// the first team fixed and rotates the rest each round.
func GenerateRoundRobin(sport string, teams []*models.Team, start, end time.Time) (*models.Schedule, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("need at least 2 teams to generate a round robin")
	}

	working := append([]*models.Team(nil), teams...)
	bye := len(working)%2 == 1
	if bye {
		working = append(working, nil)
	}
	n := len(working)
	rounds := n - 1
	matchesPerRound := n / 2

	schedule := &models.Schedule{
		ID:           fmt.Sprintf("round-robin-%s", sport),
		Sport:        sport,
		Teams:        teams,
		SeasonStart:  start,
		SeasonEnd:    end,
		GamesPerTeam: rounds,
	}

	totalSpan := end.Sub(start)
	roundSpan := time.Duration(0)
	if rounds > 0 {
		roundSpan = totalSpan / time.Duration(rounds)
	}

	for round := 0; round < rounds; round++ {
		roundDate := start.Add(time.Duration(round) * roundSpan)
		for m := 0; m < matchesPerRound; m++ {
			home := working[m]
			away := working[n-1-m]
			if home == nil || away == nil {
				continue
			}
			actualHome, actualAway := home, away
			if m == 0 {
				if round%2 == 1 {
					actualHome, actualAway = away, home
				}
			} else if round%2 == 1 {
				actualHome, actualAway = away, home
			}
			venue := actualHome.PrimaryVenueID
			g := &models.Game{
				ID:         fmt.Sprintf("rr-%d-%d", round, m),
				Sport:      sport,
				HomeTeamID: actualHome.ID,
				AwayTeamID: actualAway.ID,
				VenueID:    venue,
				Date:       roundDate,
			}
			if err := schedule.AddGame(g); err != nil {
				return nil, err
			}
		}
		rotateTeams(working)
	}
	return schedule, nil
}

// rotateTeams performs round-robin rotation, keeping the first team fixed.
func rotateTeams(teams []*models.Team) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	for i := len(teams) - 1; i > 1; i-- {
		teams[i] = teams[i-1]
	}
	teams[1] = last
}
