// Package refinement implements the final repair pass (§4.8): a fixed
// sequence of domain rules applied to fixpoint, each attempted at most
// once per game per pass, one function per rule.
package refinement

import (
	"math/rand"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// MaxPasses is the §4.8 default: the whole rule sequence repeats at most
// this many times until no rule changes anything (fixpoint).
const MaxPasses = 3

// MinRestDays is the generic minimum rest the rest-repair rule enforces,
// matching the scoring module's "gaps < 1 day" rest penalty threshold
// (§4.7) rather than any single TEAM_REST constraint's configured value.
const MinRestDays = 1

// SharedVenueMinGap is the minimum separation required between two games
// at the same venue on the same calendar day (§4.8).
const SharedVenueMinGap = 4 * time.Hour

// TravelZoneWindow/TravelZoneCluster bound the §4.8 travel-zone rule:
// adjacent inter-zone games within TravelZoneWindow must land within
// TravelZoneCluster of each other.
const (
	TravelZoneWindow  = 7 * 24 * time.Hour
	TravelZoneCluster = 3 * 24 * time.Hour
)

// LateSeasonFraction is the boundary (§4.8) past which rivalry games
// flagged for late-season placement are considered already satisfied.
const LateSeasonFraction = 0.75

// Config parameterizes a Refine call.
type Config struct {
	Passes int
	Seed   int64
}

type rule func(s *models.Schedule, rng *rand.Rand) bool

// Refine runs the §4.8 rule sequence to fixpoint (idempotence property
// P7): each rule gets one attempt per game per pass; the full sequence
// repeats until a pass changes nothing, up to Config.Passes (default
// MaxPasses).
func Refine(schedule *models.Schedule, cfg Config) (*models.Schedule, error) {
	if schedule == nil {
		return nil, nil
	}
	passes := cfg.Passes
	if passes <= 0 {
		passes = MaxPasses
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := schedule.Clone()
	rules := []rule{
		repairHomeAwayBalance,
		repairRest,
		enforceReligiousDay,
		clusterTravelZones,
		spaceSharedVenue,
		placeRivalryGames,
	}

	for pass := 0; pass < passes; pass++ {
		changed := false
		for _, r := range rules {
			if r(s, rng) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return s, nil
}

// repairHomeAwayBalance matches the most-over-home team with the
// most-over-away team and swaps home/away on one shared game.
func repairHomeAwayBalance(s *models.Schedule, rng *rand.Rand) bool {
	type imbalance struct {
		teamID string
		delta  int // home - away
	}
	var imbalances []imbalance
	for _, t := range s.Teams {
		home, away := s.HomeAwayCounts(t.ID)
		d := home - away
		if d >= 2 || d <= -2 {
			imbalances = append(imbalances, imbalance{t.ID, d})
		}
	}
	if len(imbalances) < 2 {
		return false
	}

	mostOverHome, mostOverAway := imbalances[0], imbalances[0]
	for _, im := range imbalances {
		if im.delta > mostOverHome.delta {
			mostOverHome = im
		}
		if im.delta < mostOverAway.delta {
			mostOverAway = im
		}
	}
	if mostOverHome.teamID == mostOverAway.teamID || mostOverHome.delta <= 0 || mostOverAway.delta >= 0 {
		return false
	}

	for _, g := range s.Games {
		if g.HomeTeamID == mostOverHome.teamID && g.AwayTeamID == mostOverAway.teamID {
			g.HomeTeamID, g.AwayTeamID = g.AwayTeamID, g.HomeTeamID
			return true
		}
	}
	return false
}

// repairRest finds consecutive games for a team with less than
// MinRestDays between them and shifts the later one forward by 1-2 days
// (seeded, not uniform per-call, so the pass is reproducible).
func repairRest(s *models.Schedule, rng *rand.Rand) bool {
	changed := false
	touched := make(map[string]bool)
	for _, t := range s.Teams {
		games := s.GamesForTeam(t.ID)
		for i := 1; i < len(games); i++ {
			prev, cur := games[i-1], games[i]
			if touched[cur.ID] {
				continue
			}
			gap := cur.Date.Sub(prev.Date).Hours() / 24
			if gap < float64(MinRestDays) {
				shift := 1 + rng.Intn(2) // 1 or 2 days
				cur.Date = cur.Date.AddDate(0, 0, shift)
				touched[cur.ID] = true
				changed = true
			}
		}
	}
	return changed
}

// enforceReligiousDay moves any game played by a no-Sunday team on a
// Sunday to the following Monday.
func enforceReligiousDay(s *models.Schedule, _ *rand.Rand) bool {
	changed := false
	for _, g := range s.Games {
		if g.Date.Weekday() != time.Sunday {
			continue
		}
		home := s.TeamByID(g.HomeTeamID)
		away := s.TeamByID(g.AwayTeamID)
		if (home != nil && home.NoPlayOnSunday()) || (away != nil && away.NoPlayOnSunday()) {
			g.Date = g.Date.AddDate(0, 0, 1)
			changed = true
		}
	}
	return changed
}

// clusterTravelZones requires adjacent inter-zone games for a team that
// are within TravelZoneWindow to actually land within TravelZoneCluster
// of each other, shifting the later game earlier by up to 3 days.
func clusterTravelZones(s *models.Schedule, _ *rand.Rand) bool {
	changed := false
	touched := make(map[string]bool)
	for _, t := range s.Teams {
		games := s.GamesForTeam(t.ID)
		for i := 1; i < len(games); i++ {
			prev, cur := games[i-1], games[i]
			if touched[cur.ID] {
				continue
			}
			if prev.VenueID == cur.VenueID {
				continue // same zone proxy: same venue
			}
			gap := cur.Date.Sub(prev.Date)
			if gap > 0 && gap <= TravelZoneWindow && gap > TravelZoneCluster {
				shift := gap - TravelZoneCluster
				if shift > 3*24*time.Hour {
					shift = 3 * 24 * time.Hour
				}
				cur.Date = cur.Date.Add(-shift)
				touched[cur.ID] = true
				changed = true
			}
		}
	}
	return changed
}

// spaceSharedVenue pushes the later of two same-venue, same-day games to
// the next day if they are less than SharedVenueMinGap apart.
func spaceSharedVenue(s *models.Schedule, _ *rand.Rand) bool {
	changed := false
	touched := make(map[string]bool)
	byDay := make(map[string][]*models.Game)
	for _, g := range s.Games {
		key := g.VenueID + "|" + g.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], g)
	}
	for _, games := range byDay {
		if len(games) < 2 {
			continue
		}
		for i := 0; i < len(games); i++ {
			for j := i + 1; j < len(games); j++ {
				a, b := games[i], games[j]
				if touched[b.ID] {
					continue
				}
				diff := b.Date.Sub(a.Date)
				if diff < 0 {
					diff = -diff
				}
				if diff < SharedVenueMinGap {
					b.Date = b.Date.AddDate(0, 0, 1)
					touched[b.ID] = true
					changed = true
				}
			}
		}
	}
	return changed
}

// placeRivalryGames moves rivalry games that fall in the first 75% of
// the season into the last 25%, uniformly at random, when a season
// window is configured.
func placeRivalryGames(s *models.Schedule, rng *rand.Rand) bool {
	if !s.HasWindow() {
		return false
	}
	total := s.SeasonEnd.Sub(s.SeasonStart)
	if total <= 0 {
		return false
	}
	lateStart := s.SeasonStart.Add(time.Duration(float64(total) * LateSeasonFraction))
	changed := false
	for _, g := range s.Games {
		if !g.Rivalry {
			continue
		}
		if g.Date.Before(lateStart) {
			span := s.SeasonEnd.Sub(lateStart)
			if span <= 0 {
				continue
			}
			offset := time.Duration(rng.Int63n(int64(span)))
			g.Date = lateStart.Add(offset)
			changed = true
		}
	}
	return changed
}
