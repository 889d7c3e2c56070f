package schedcore

import (
	"context"
	"testing"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/models"
)

func fourTeamSchedule() (*models.Schedule, map[string]*models.Venue) {
	teams := []*models.Team{
		{ID: "A", Name: "Alpha", Latitude: 40.0, Longitude: -75.0, VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
		{ID: "B", Name: "Beta", Latitude: 41.0, Longitude: -74.0, VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		{ID: "C", Name: "Gamma", Latitude: 39.0, Longitude: -76.0, VenueIDs: []string{"V3"}, PrimaryVenueID: "V3"},
		{ID: "D", Name: "Delta", Latitude: 38.0, Longitude: -77.0, VenueIDs: []string{"V4"}, PrimaryVenueID: "V4"},
	}
	venues := map[string]*models.Venue{
		"V1": {ID: "V1", Latitude: 40.0, Longitude: -75.0},
		"V2": {ID: "V2", Latitude: 41.0, Longitude: -74.0},
		"V3": {ID: "V3", Latitude: 39.0, Longitude: -76.0},
		"V4": {ID: "V4", Latitude: 38.0, Longitude: -77.0},
	}
	s := &models.Schedule{
		Sport:       "football",
		Teams:       teams,
		SeasonStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SeasonEnd:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	base := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	pairs := [][2]string{{"A", "B"}, {"C", "D"}, {"B", "C"}, {"D", "A"}}
	venueOf := map[string]string{"A": "V1", "B": "V2", "C": "V3", "D": "V4"}
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

func TestOptimizeRejectsNilSchedule(t *testing.T) {
	_, err := Optimize(context.Background(), nil, nil, nil, DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for a nil schedule")
	}
	if _, ok := err.(*InvalidInputError); !ok {
		t.Errorf("expected *InvalidInputError, got %T", err)
	}
}

func TestOptimizeRejectsInvalidSchedule(t *testing.T) {
	schedule, venues := fourTeamSchedule()
	schedule.Games[0].HomeTeamID = "not-a-team"
	_, err := Optimize(context.Background(), schedule, nil, venues, DefaultOptions())
	if _, ok := err.(*InvalidInputError); !ok {
		t.Fatalf("expected *InvalidInputError, got %T (%v)", err, err)
	}
}

func TestOptimizeSmallSchedule(t *testing.T) {
	schedule, venues := fourTeamSchedule()
	raw := []Constraint{
		constraints.NewHomeAwayBalanceConstraint("", constraints.Scope{}, 1),
		constraints.NewTeamRestConstraint("", 2, constraints.Scope{}),
	}
	opts := DefaultOptions()
	opts.MaxIterations = 100
	opts.ParallelChains = 2
	opts.PerChainTimeout = 5 * time.Second
	opts.BaseSeed = 7

	result, err := Optimize(context.Background(), schedule, raw, venues, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Games) != len(schedule.Games) {
		t.Fatalf("expected game count preserved, got %d vs %d", len(result.Games), len(schedule.Games))
	}
	if result.Metadata.ElapsedMS < 0 {
		t.Errorf("expected a non-negative elapsed time")
	}
}

func TestEvaluateRejectsNilSchedule(t *testing.T) {
	_, err := Evaluate(nil, nil)
	if _, ok := err.(*InvalidInputError); !ok {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
}

func TestEvaluateScoresSchedule(t *testing.T) {
	schedule, _ := fourTeamSchedule()
	raw := []Constraint{constraints.NewTeamRestConstraint("", 2, constraints.Scope{})}
	result, err := Evaluate(raw, schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Results) != 1 {
		t.Fatalf("expected one constraint result, got %d", len(result.Results))
	}
}

func TestValidateModificationRejectsMissingSchedules(t *testing.T) {
	_, err := ValidateModification(Modification{}, nil)
	if _, ok := err.(*InvalidInputError); !ok {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
}

func TestValidateModificationAcceptsNoOp(t *testing.T) {
	schedule, _ := fourTeamSchedule()
	raw := []Constraint{constraints.NewTeamRestConstraint("", 2, constraints.Scope{})}
	mod := Modification{Before: schedule, After: schedule}
	result, err := ValidateModification(mod, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Error("expected a no-op modification to be valid")
	}
}

func TestTemplateUnknownNameFails(t *testing.T) {
	_, err := Template("not-a-template", nil)
	if _, ok := err.(*InvalidInputError); !ok {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
}

func TestTemplateRoundRobin(t *testing.T) {
	cs, err := Template("round_robin", map[string]any{"min_rest_days": 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) == 0 {
		t.Error("expected the round_robin template to produce at least one constraint")
	}
}
