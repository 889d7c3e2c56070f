package models

import (
	"fmt"
	"sort"
	"time"
)

// Metadata is the bag the orchestrator populates on the schedule it
// returns: final_score, iterations, chain statistics, and the rest of §7's
// user-visible fields.
type Metadata struct {
	FinalScore          float64        `json:"final_score"`
	InitialScore        float64        `json:"initial_score"`
	Iterations          int            `json:"iterations"`
	ChainScores         []float64      `json:"chain_scores,omitempty"`
	Improvements        int            `json:"improvements"`
	ConflictsUnresolved int            `json:"conflicts_unresolved"`
	CacheHitRate        float64        `json:"cache_hit_rate"`
	ElapsedMS           int64          `json:"elapsed_ms"`
	Partial             bool           `json:"partial"`
	Extra               map[string]any `json:"extra,omitempty"`
}

// Schedule is a set of games for a single sport and season. ConstraintIDs
// names the constraint set attached to it; the constraint values themselves
// live in the engine/constraints packages to avoid a model<->constraint
// import cycle.
type Schedule struct {
	ID     string `json:"id"`
	Sport  string `json:"sport"`
	Season string `json:"season"`

	Teams []*Team  `json:"teams"`
	Games []*Game  `json:"games"`

	ConstraintIDs []string `json:"constraint_ids,omitempty"`

	// SeasonStart/SeasonEnd bound the season window (§3); both zero means
	// no window is enforced.
	SeasonStart time.Time `json:"season_start,omitempty"`
	SeasonEnd   time.Time `json:"season_end,omitempty"`

	// GamesPerTeam is the configured season target used by P1.
	GamesPerTeam int `json:"games_per_team"`

	Metadata Metadata `json:"metadata"`
}

// InvalidScheduleError names the §3 invariant a mutation would have
// violated.
type InvalidScheduleError struct {
	Invariant string
	Detail    string
}

func (e *InvalidScheduleError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid schedule: %s", e.Invariant)
	}
	return fmt.Sprintf("invalid schedule: %s: %s", e.Invariant, e.Detail)
}

func (s *Schedule) hasTeam(teamID string) bool {
	for _, t := range s.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

func (s *Schedule) teamByID(teamID string) *Team {
	for _, t := range s.Teams {
		if t.ID == teamID {
			return t
		}
	}
	return nil
}

// TeamByID returns the team with the given id, or nil if not present.
func (s *Schedule) TeamByID(teamID string) *Team {
	return s.teamByID(teamID)
}

// HasWindow reports whether a season window is configured.
func (s *Schedule) HasWindow() bool {
	return !s.SeasonStart.IsZero() || !s.SeasonEnd.IsZero()
}

// AddGame appends game after validating the §3 invariants: home/away are
// both in the team set, the date lies within the season window (if
// present), and the game itself is internally valid.
func (s *Schedule) AddGame(g *Game) error {
	if g == nil {
		return &InvalidScheduleError{Invariant: "game not nil"}
	}
	if !s.hasTeam(g.HomeTeamID) {
		return &InvalidScheduleError{Invariant: "game.home in team set", Detail: g.HomeTeamID}
	}
	if !s.hasTeam(g.AwayTeamID) {
		return &InvalidScheduleError{Invariant: "game.away in team set", Detail: g.AwayTeamID}
	}
	home := s.teamByID(g.HomeTeamID)
	allowNeutral := g.VenueID != "" && home != nil && !home.HasVenue(g.VenueID)
	if err := g.Validate(home, allowNeutral && isKnownNeutralVenue(g.VenueID, s)); err != nil {
		return &InvalidScheduleError{Invariant: "game venue", Detail: err.Error()}
	}
	if s.HasWindow() {
		if !s.SeasonStart.IsZero() && g.Date.Before(s.SeasonStart) {
			return &InvalidScheduleError{Invariant: "date within season window", Detail: g.Date.String()}
		}
		if !s.SeasonEnd.IsZero() && g.Date.After(s.SeasonEnd) {
			return &InvalidScheduleError{Invariant: "date within season window", Detail: g.Date.String()}
		}
	}
	for _, existing := range s.Games {
		if existing.ID == g.ID {
			return &InvalidScheduleError{Invariant: "unique game id", Detail: g.ID}
		}
	}
	s.Games = append(s.Games, g)
	return nil
}

func isKnownNeutralVenue(venueID string, s *Schedule) bool {
	// Neutral-site games reference a venue that is not any participating
	// team's home venue at all (e.g. a championship site); if no team owns
	// it, treat the game as explicitly neutral per §3.
	for _, t := range s.Teams {
		if t.HasVenue(venueID) {
			return false
		}
	}
	return true
}

// Validate re-checks the §3 invariants across every game already present
// on the schedule (duplicate ids, team membership, venue ownership, date
// window) — the same checks AddGame enforces incrementally, useful for a
// schedule callers assembled without going through AddGame.
func (s *Schedule) Validate() error {
	seen := make(map[string]bool, len(s.Games))
	for _, g := range s.Games {
		if g == nil {
			return &InvalidScheduleError{Invariant: "game not nil"}
		}
		if seen[g.ID] {
			return &InvalidScheduleError{Invariant: "unique game id", Detail: g.ID}
		}
		seen[g.ID] = true

		if !s.hasTeam(g.HomeTeamID) {
			return &InvalidScheduleError{Invariant: "game.home in team set", Detail: g.HomeTeamID}
		}
		if !s.hasTeam(g.AwayTeamID) {
			return &InvalidScheduleError{Invariant: "game.away in team set", Detail: g.AwayTeamID}
		}
		if g.HomeTeamID == g.AwayTeamID {
			return &InvalidScheduleError{Invariant: "home != away", Detail: g.ID}
		}

		home := s.teamByID(g.HomeTeamID)
		allowNeutral := g.VenueID != "" && home != nil && !home.HasVenue(g.VenueID)
		if err := g.Validate(home, allowNeutral && isKnownNeutralVenue(g.VenueID, s)); err != nil {
			return &InvalidScheduleError{Invariant: "game venue", Detail: err.Error()}
		}

		if s.HasWindow() {
			if !s.SeasonStart.IsZero() && g.Date.Before(s.SeasonStart) {
				return &InvalidScheduleError{Invariant: "date within season window", Detail: g.Date.String()}
			}
			if !s.SeasonEnd.IsZero() && g.Date.After(s.SeasonEnd) {
				return &InvalidScheduleError{Invariant: "date within season window", Detail: g.Date.String()}
			}
		}
	}
	return nil
}

// GamesForTeam returns every game involving teamID, sorted by date.
func (s *Schedule) GamesForTeam(teamID string) []*Game {
	var out []*Game
	for _, g := range s.Games {
		if g.HasTeam(teamID) {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// HomeAwayCounts returns how many home and away games teamID has.
func (s *Schedule) HomeAwayCounts(teamID string) (home, away int) {
	for _, g := range s.Games {
		if g.HomeTeamID == teamID {
			home++
		} else if g.AwayTeamID == teamID {
			away++
		}
	}
	return home, away
}

// GamesOnDate returns every game scheduled on the calendar day of t.
func (s *Schedule) GamesOnDate(t time.Time) []*Game {
	y1, m1, d1 := t.Date()
	var out []*Game
	for _, g := range s.Games {
		y2, m2, d2 := g.Date.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, g)
		}
	}
	return out
}

// IsComplete reports whether every team has reached GamesPerTeam.
func (s *Schedule) IsComplete() bool {
	if s.GamesPerTeam <= 0 {
		return len(s.Games) > 0
	}
	for _, t := range s.Teams {
		if len(s.GamesForTeam(t.ID)) != s.GamesPerTeam {
			return false
		}
	}
	return true
}

// Clone performs a deep copy of games (dates copy by value since time.Time
// is a value type); teams and venues are aliased by reference since the
// optimizer never mutates them (§3 Ownership).
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Teams = append([]*Team(nil), s.Teams...)
	cp.ConstraintIDs = append([]string(nil), s.ConstraintIDs...)
	cp.Games = make([]*Game, len(s.Games))
	for i, g := range s.Games {
		cp.Games[i] = g.Clone()
	}
	if s.Metadata.Extra != nil {
		cp.Metadata.Extra = make(map[string]any, len(s.Metadata.Extra))
		for k, v := range s.Metadata.Extra {
			cp.Metadata.Extra[k] = v
		}
	}
	cp.Metadata.ChainScores = append([]float64(nil), s.Metadata.ChainScores...)
	return &cp
}

// Fingerprint reduces the schedule's games to a canonically ordered,
// stable string suitable for cache-key hashing upstream (engine.Fingerprint
// builds the actual hash; this supplies the canonical tuple ordering that
// §4.3 requires: (sport, home, away, date_bucket, venue)).
func (s *Schedule) Fingerprint() []string {
	games := append([]*Game(nil), s.Games...)
	sort.Slice(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.HomeTeamID != b.HomeTeamID {
			return a.HomeTeamID < b.HomeTeamID
		}
		if a.AwayTeamID != b.AwayTeamID {
			return a.AwayTeamID < b.AwayTeamID
		}
		return a.VenueID < b.VenueID
	})
	out := make([]string, len(games))
	for i, g := range games {
		bucket := g.Date.Format("2006-01-02")
		out[i] = fmt.Sprintf("%s|%s|%s|%s|%s", g.Sport, g.HomeTeamID, g.AwayTeamID, bucket, g.VenueID)
	}
	return out
}
