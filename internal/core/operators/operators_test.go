package operators

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

func twoTeamSchedule() *models.Schedule {
	s := &models.Schedule{
		Sport: "football",
		Teams: []*models.Team{
			{ID: "A", Name: "Alpha", VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
			{ID: "B", Name: "Beta", VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		},
		SeasonStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SeasonEnd:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	_ = s.AddGame(&models.Game{ID: "g1", Sport: "football", HomeTeamID: "A", AwayTeamID: "B", VenueID: "V1", Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)})
	_ = s.AddGame(&models.Game{ID: "g2", Sport: "football", HomeTeamID: "B", AwayTeamID: "A", VenueID: "V2", Date: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)})
	return s
}

func TestApplyProducesClonedScheduleWithOneChange(t *testing.T) {
	s := twoTeamSchedule()
	rng := rand.New(rand.NewSource(42))
	candidate, err := Apply(context.Background(), s, rng, DefaultMaxAttempts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == s {
		t.Fatal("expected Apply to return a new schedule, not the same pointer")
	}
	if len(candidate.Games) != len(s.Games) {
		t.Fatalf("expected same game count, got %d vs %d", len(candidate.Games), len(s.Games))
	}
}

func TestApplyRespectsCancellation(t *testing.T) {
	s := twoTeamSchedule()
	rng := rand.New(rand.NewSource(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Apply(ctx, s, rng, DefaultMaxAttempts)
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestSwapHomeAwayUpdatesVenueWhenPrimary(t *testing.T) {
	s := twoTeamSchedule()
	rng := rand.New(rand.NewSource(7))
	clone, err := swapHomeAway(s, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for i, g := range clone.Games {
		if g.HomeTeamID != s.Games[i].HomeTeamID {
			found = true
			newHome := teamByID(clone, g.HomeTeamID)
			if g.VenueID != newHome.PrimaryVenueID {
				t.Errorf("expected venue to follow new home team's primary venue")
			}
		}
	}
	if !found {
		t.Fatal("expected at least one game's home/away to change")
	}
}

func TestReassignDateStaysWithinWindow(t *testing.T) {
	s := twoTeamSchedule()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		clone, err := reassignDate(s, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, g := range clone.Games {
			if g.Date.Before(s.SeasonStart) || g.Date.After(s.SeasonEnd) {
				t.Fatalf("game %s date %v outside window [%v,%v]", g.ID, g.Date, s.SeasonStart, s.SeasonEnd)
			}
		}
	}
}
