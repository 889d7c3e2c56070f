package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/models"
)

func sixGameSchedule() (*models.Schedule, map[string]*models.Venue) {
	teams := []*models.Team{
		{ID: "A", Name: "Alpha", City: "Alpha City", Latitude: 40.0, Longitude: -75.0, VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
		{ID: "B", Name: "Beta", City: "Beta City", Latitude: 41.0, Longitude: -74.0, VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		{ID: "C", Name: "Gamma", City: "Gamma City", Latitude: 39.0, Longitude: -76.0, VenueIDs: []string{"V3"}, PrimaryVenueID: "V3"},
	}
	venues := map[string]*models.Venue{
		"V1": {ID: "V1", Name: "V1 Stadium", Latitude: 40.0, Longitude: -75.0},
		"V2": {ID: "V2", Name: "V2 Stadium", Latitude: 41.0, Longitude: -74.0},
		"V3": {ID: "V3", Name: "V3 Stadium", Latitude: 39.0, Longitude: -76.0},
	}
	s := &models.Schedule{
		Sport:       "football",
		Teams:       teams,
		SeasonStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SeasonEnd:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	base := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	pairs := [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"A", "B"}, {"B", "C"}, {"C", "A"}}
	venueOf := map[string]string{"A": "V1", "B": "V2", "C": "V3"}
	for i, p := range pairs {
		home, away := p[0], p[1]
		_ = s.AddGame(&models.Game{
			ID: "g" + string(rune('0'+i)), Sport: "football",
			HomeTeamID: home, AwayTeamID: away, VenueID: venueOf[home],
			Date: base.AddDate(0, 0, 7*i),
		})
	}
	return s, venues
}

func TestOptimizeReturnsNoWorseThanInitialScore(t *testing.T) {
	schedule, venues := sixGameSchedule()
	raw := []constraints.Constraint{
		constraints.NewHomeAwayBalanceConstraint("", constraints.Scope{}, 1),
		constraints.NewTeamRestConstraint("", 2, constraints.Scope{}),
	}
	cfg := Config{
		MaxIterations:      200,
		InitialTemperature: 20,
		CoolingRate:        0.9,
		ParallelChains:     2,
		AdaptiveCooling:    true,
		EnableCache:        true,
		CacheSize:          100,
		BaseSeed:           99,
		PerChainTimeout:    5 * time.Second,
		DiversityThreshold: 0.1,
		RefinementPasses:   3,
		Venues:             venues,
	}
	result, err := Optimize(context.Background(), schedule, raw, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Schedule == nil {
		t.Fatal("expected a non-nil schedule")
	}
	if len(result.Schedule.Games) != len(schedule.Games) {
		t.Fatalf("expected game count preserved, got %d vs %d", len(result.Schedule.Games), len(schedule.Games))
	}
}

func TestOptimizeCancelledReturnsPartial(t *testing.T) {
	schedule, venues := sixGameSchedule()
	cfg := Config{
		MaxIterations:      50,
		InitialTemperature: 10,
		CoolingRate:        0.9,
		ParallelChains:     0,
		BaseSeed:           1,
		Venues:             venues,
	}
	// ParallelChains of 0 is normalized to 1 internally, so the call
	// still runs a chain; cancellation leads to a partial result rather
	// than outright failure.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := Optimize(ctx, schedule, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Partial {
		t.Error("expected a cancelled optimize call to return a partial result")
	}
}

func TestOptimizePopulatesMetadata(t *testing.T) {
	schedule, venues := sixGameSchedule()
	raw := []constraints.Constraint{
		constraints.NewHomeAwayBalanceConstraint("", constraints.Scope{}, 1),
	}
	cfg := Config{
		MaxIterations:      200,
		InitialTemperature: 20,
		CoolingRate:        0.9,
		CoolingSchedule:    "linear",
		ParallelChains:     2,
		EnableCache:        true,
		CacheSize:          100,
		BaseSeed:           7,
		RefinementPasses:   1,
		Venues:             venues,
	}
	result, err := Optimize(context.Background(), schedule, raw, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta := result.Schedule.Metadata
	if len(meta.ChainScores) != cfg.ParallelChains {
		t.Errorf("expected %d chain scores, got %d", cfg.ParallelChains, len(meta.ChainScores))
	}
	if meta.ConflictsUnresolved < 0 {
		t.Errorf("conflicts unresolved should never be negative, got %d", meta.ConflictsUnresolved)
	}
	if meta.CacheHitRate < 0 || meta.CacheHitRate > 1 {
		t.Errorf("cache hit rate out of range: %f", meta.CacheHitRate)
	}
}
