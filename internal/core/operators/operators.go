// Package operators implements the neighborhood operators (C4): four local
// moves that each return a new cloned schedule with exactly one change,
// operating on time.Time-indexed games.
package operators

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// DefaultMaxAttempts is the bounded retry count before a move aborts (§4.4).
const DefaultMaxAttempts = 8

// Kind names one of the four neighborhood moves.
type Kind int

const (
	SwapDates Kind = iota
	SwapHomeAway
	ReassignDate
	SwapVenues
)

// ErrCancelled is returned when ctx is cancelled mid-move (§4.4
// Cancellation: operators return immediately on a stop signal).
var ErrCancelled = errors.New("operators: cancelled")

// ErrExhausted is returned when no valid move could be found within
// maxAttempts resamples.
var ErrExhausted = errors.New("operators: exhausted retries without a valid move")

// Apply picks one of the four move kinds uniformly at random, applies it
// to a clone of current, and retries (bounded, default DefaultMaxAttempts)
// until it finds a move that preserves §3 invariants.
func Apply(ctx context.Context, current *models.Schedule, rng *rand.Rand, maxAttempts int) (*models.Schedule, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if len(current.Games) == 0 {
		return nil, fmt.Errorf("operators: schedule has no games to move")
	}

	kinds := []Kind{SwapDates, SwapHomeAway, ReassignDate, SwapVenues}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}

		kind := kinds[rng.Intn(len(kinds))]
		candidate, err := applyOne(current, kind, rng)
		if err != nil {
			continue // invariant violated or move not applicable; resample
		}
		return candidate, nil
	}
	return nil, ErrExhausted
}

func applyOne(current *models.Schedule, kind Kind, rng *rand.Rand) (*models.Schedule, error) {
	switch kind {
	case SwapDates:
		return swapDates(current, rng)
	case SwapHomeAway:
		return swapHomeAway(current, rng)
	case ReassignDate:
		return reassignDate(current, rng)
	case SwapVenues:
		return swapVenues(current, rng)
	default:
		return nil, fmt.Errorf("operators: unknown move kind %d", kind)
	}
}

func pickTwoDistinctGames(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n)
	for j == i && n > 1 {
		j = rng.Intn(n)
	}
	return i, j
}

// swapDates exchanges the scheduled instant of two distinct games.
func swapDates(current *models.Schedule, rng *rand.Rand) (*models.Schedule, error) {
	if len(current.Games) < 2 {
		return nil, fmt.Errorf("operators: need at least 2 games to swap dates")
	}
	clone := current.Clone()
	i, j := pickTwoDistinctGames(len(clone.Games), rng)
	clone.Games[i].Date, clone.Games[j].Date = clone.Games[j].Date, clone.Games[i].Date
	if err := checkInvariants(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// swapHomeAway swaps home and away for one game; if the venue was the old
// home team's primary venue, it moves to the new home team's primary venue.
func swapHomeAway(current *models.Schedule, rng *rand.Rand) (*models.Schedule, error) {
	clone := current.Clone()
	i := rng.Intn(len(clone.Games))
	g := clone.Games[i]

	oldHome := teamByID(clone, g.HomeTeamID)
	newHome := teamByID(clone, g.AwayTeamID)
	g.HomeTeamID, g.AwayTeamID = g.AwayTeamID, g.HomeTeamID

	if oldHome != nil && newHome != nil && g.VenueID == oldHome.PrimaryVenueID {
		g.VenueID = newHome.PrimaryVenueID
	}
	if err := checkInvariants(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// reassignDate moves one game to a uniformly random date within the
// schedule's current date range.
func reassignDate(current *models.Schedule, rng *rand.Rand) (*models.Schedule, error) {
	clone := current.Clone()
	if len(clone.Games) == 0 {
		return nil, fmt.Errorf("operators: no games")
	}
	minDate, maxDate := dateRange(clone)
	span := maxDate.Sub(minDate)
	if span <= 0 {
		return nil, fmt.Errorf("operators: schedule has no date range to reassign within")
	}

	i := rng.Intn(len(clone.Games))
	offset := time.Duration(rng.Int63n(int64(span)))
	clone.Games[i].Date = minDate.Add(offset)

	if err := checkInvariants(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// swapVenues exchanges the venue between two distinct games.
func swapVenues(current *models.Schedule, rng *rand.Rand) (*models.Schedule, error) {
	if len(current.Games) < 2 {
		return nil, fmt.Errorf("operators: need at least 2 games to swap venues")
	}
	clone := current.Clone()
	i, j := pickTwoDistinctGames(len(clone.Games), rng)
	clone.Games[i].VenueID, clone.Games[j].VenueID = clone.Games[j].VenueID, clone.Games[i].VenueID
	if err := checkInvariants(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

func teamByID(s *models.Schedule, id string) *models.Team {
	for _, t := range s.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func dateRange(s *models.Schedule) (min, max time.Time) {
	if s.HasWindow() {
		return s.SeasonStart, s.SeasonEnd
	}
	for i, g := range s.Games {
		if i == 0 || g.Date.Before(min) {
			min = g.Date
		}
		if i == 0 || g.Date.After(max) {
			max = g.Date
		}
	}
	return min, max
}

// checkInvariants re-validates the §3 invariants a move must preserve:
// home != away and, when the window is present, the date stays inside it.
// Venue ownership is intentionally not re-checked here: SWAP_VENUES and
// SWAP_HOME_AWAY may legitimately produce a neutral-site game.
func checkInvariants(s *models.Schedule) error {
	for _, g := range s.Games {
		if g.HomeTeamID == g.AwayTeamID {
			return &models.InvalidScheduleError{Invariant: "home != away", Detail: g.ID}
		}
		if s.HasWindow() {
			if !s.SeasonStart.IsZero() && g.Date.Before(s.SeasonStart) {
				return &models.InvalidScheduleError{Invariant: "date within season window", Detail: g.ID}
			}
			if !s.SeasonEnd.IsZero() && g.Date.After(s.SeasonEnd) {
				return &models.InvalidScheduleError{Invariant: "date within season window", Detail: g.ID}
			}
		}
	}
	return nil
}
