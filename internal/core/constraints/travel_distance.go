package constraints

import (
	"fmt"
	"sort"

	"github.com/overlook-conference/schedcore/internal/core/models"
	"github.com/overlook-conference/schedcore/internal/core/scoring"
)

// TravelDistanceConstraint penalizes teams whose season travel exceeds a
// configured threshold, and tracks consecutive-away road-trip streaks the
// way a travel secretary would.
type TravelDistanceConstraint struct {
	BaseConstraint
	MaxSeasonMiles      float64
	MaxConsecutiveAway  int
	venues              map[string]*models.Venue
}

// NewTravelDistanceConstraint builds a TRAVEL_DISTANCE constraint. venues
// maps venue id -> venue, used to resolve game locations for the haversine
// computation.
func NewTravelDistanceConstraint(id string, scope Scope, maxSeasonMiles float64, maxConsecutiveAway int, venues map[string]*models.Venue) *TravelDistanceConstraint {
	ki, _ := LookupKind(TravelDistance)
	return &TravelDistanceConstraint{
		BaseConstraint: BaseConstraint{
			IDValue:           id,
			KindValue:         TravelDistance,
			HardnessValue:     ki.Hardness,
			BasePriorityValue: ki.BasePriority,
			CategoryValue:     ki.Category,
			WeightValue:       1.0,
			ScopeValue:        scope,
			NameValue:         "Travel Distance",
			DescriptionValue:  fmt.Sprintf("season travel should not exceed %.0f miles", maxSeasonMiles),
		},
		MaxSeasonMiles:     maxSeasonMiles,
		MaxConsecutiveAway: maxConsecutiveAway,
		venues:             venues,
	}
}

func (c *TravelDistanceConstraint) venueLoc(venueID string) (lat, lon float64, ok bool) {
	v, found := c.venues[venueID]
	if !found {
		return 0, 0, false
	}
	return v.Latitude, v.Longitude, true
}

// seasonMiles computes the round-trip travel for a team over its games in
// date order: home -> g1.venue -> g2.venue -> ... -> home.
func (c *TravelDistanceConstraint) seasonMiles(schedule *models.Schedule, team *models.Team) float64 {
	games := schedule.GamesForTeam(team.ID)
	if len(games) == 0 {
		return 0
	}
	curLat, curLon := team.Latitude, team.Longitude
	var total float64
	for _, g := range games {
		lat, lon, ok := c.venueLoc(g.VenueID)
		if !ok {
			continue
		}
		total += scoring.Haversine(curLat, curLon, lat, lon)
		curLat, curLon = lat, lon
	}
	total += scoring.Haversine(curLat, curLon, team.Latitude, team.Longitude)
	return total
}

func (c *TravelDistanceConstraint) Validate(schedule *models.Schedule) ([]Violation, error) {
	var violations []Violation
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		miles := c.seasonMiles(schedule, team)
		if miles > c.MaxSeasonMiles {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("%s travels %.0f miles, exceeding the %.0f mile budget", team.ID, miles, c.MaxSeasonMiles),
				Severity:    c.Hardness().String(),
			})
		}
		if streak := c.longestAwayStreak(schedule, team.ID); streak > c.MaxConsecutiveAway {
			violations = append(violations, Violation{
				Description: fmt.Sprintf("%s has a %d-game road trip, exceeding %d", team.ID, streak, c.MaxConsecutiveAway),
				Severity:    c.Hardness().String(),
			})
		}
	}
	return violations, nil
}

func (c *TravelDistanceConstraint) longestAwayStreak(schedule *models.Schedule, teamID string) int {
	games := schedule.GamesForTeam(teamID)
	longest, current := 0, 0
	for _, g := range games {
		if g.AwayTeamID == teamID {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

func (c *TravelDistanceConstraint) Score(schedule *models.Schedule) (float64, error) {
	teams := 0
	var totalRatio float64
	for _, team := range schedule.Teams {
		if !c.Scope().AppliesToTeam(team.ID) {
			continue
		}
		teams++
		miles := c.seasonMiles(schedule, team)
		if c.MaxSeasonMiles <= 0 {
			continue
		}
		ratio := miles / c.MaxSeasonMiles
		if ratio > 1 {
			ratio = 1
		}
		totalRatio += 1 - ratio
	}
	if teams == 0 {
		return 1.0, nil
	}
	return totalRatio / float64(teams), nil
}

// TravelAnalysis is a per-team travel summary.
type TravelAnalysis struct {
	TeamID              string
	SeasonMiles         float64
	LongestAwayStreak   int
	AverageMilesPerGame float64
}

// AnalyzeTeamTravel produces a travel summary for a single team.
func (c *TravelDistanceConstraint) AnalyzeTeamTravel(schedule *models.Schedule, teamID string) TravelAnalysis {
	team := schedule.Teams[0]
	for _, t := range schedule.Teams {
		if t.ID == teamID {
			team = t
			break
		}
	}
	miles := c.seasonMiles(schedule, team)
	games := schedule.GamesForTeam(teamID)
	avg := 0.0
	if len(games) > 0 {
		avg = miles / float64(len(games))
	}
	return TravelAnalysis{
		TeamID:              teamID,
		SeasonMiles:         miles,
		LongestAwayStreak:   c.longestAwayStreak(schedule, teamID),
		AverageMilesPerGame: avg,
	}
}

// GetWorstTravelTeams returns the top-n teams by season travel, descending.
func (c *TravelDistanceConstraint) GetWorstTravelTeams(schedule *models.Schedule, n int) []TravelAnalysis {
	var all []TravelAnalysis
	for _, t := range schedule.Teams {
		all = append(all, c.AnalyzeTeamTravel(schedule, t.ID))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SeasonMiles > all[j].SeasonMiles })
	if n < len(all) {
		all = all[:n]
	}
	return all
}
