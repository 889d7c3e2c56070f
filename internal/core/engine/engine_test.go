package engine

import (
	"testing"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/models"
)

func sampleSchedule() *models.Schedule {
	s := &models.Schedule{
		Sport: "football",
		Teams: []*models.Team{
			{ID: "A", Name: "Alpha", VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
			{ID: "B", Name: "Beta", VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		},
	}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = s.AddGame(&models.Game{ID: "g1", Sport: "football", HomeTeamID: "A", AwayTeamID: "B", VenueID: "V1", Date: base})
	_ = s.AddGame(&models.Game{ID: "g2", Sport: "football", HomeTeamID: "B", AwayTeamID: "A", VenueID: "V2", Date: base.AddDate(0, 0, 7)})
	return s
}

func TestProcessStampsIDsAndOrders(t *testing.T) {
	raw := []constraints.Constraint{
		constraints.NewHomeAwayBalanceConstraint("", constraints.Scope{}, 1),
		constraints.NewTeamRestConstraint("", 2, constraints.Scope{}),
	}
	result, err := Process(raw, Context{Sport: "football", TeamCount: 2}, constraints.DefaultSportProfiles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range result.EffectiveConstraints {
		if c.ID() == "" {
			t.Error("expected every constraint to have a stamped id")
		}
	}
	// hard (team rest) must sort before soft (home/away balance)
	if result.EffectiveConstraints[0].Hardness() != constraints.Hard {
		t.Errorf("expected hard constraint first, got hardness %v", result.EffectiveConstraints[0].Hardness())
	}
}

func TestProcessRejectsUnrecognizedKind(t *testing.T) {
	bogus := &bogusConstraint{constraints.BaseConstraint{KindValue: "NOT_A_KIND"}}
	_, err := Process([]constraints.Constraint{bogus}, Context{Sport: "football"}, nil)
	if err == nil {
		t.Fatal("expected error for unrecognized constraint kind")
	}
}

type bogusConstraint struct {
	constraints.BaseConstraint
}

func (b *bogusConstraint) Validate(*models.Schedule) ([]constraints.Violation, error) { return nil, nil }
func (b *bogusConstraint) Score(*models.Schedule) (float64, error)                    { return 1, nil }

func TestEvaluateAggregatesCompliance(t *testing.T) {
	cs := []constraints.Constraint{
		constraints.NewTeamRestConstraint("rest1", 2, constraints.Scope{}),
	}
	result, err := Evaluate(cs, sampleSchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OverallCompliance != 1.0 {
		t.Errorf("expected full compliance, got %f", result.OverallCompliance)
	}
}

func TestCacheHitOnSecondEvaluate(t *testing.T) {
	cache := NewCache(10, nil)
	cs := []constraints.Constraint{constraints.NewTeamRestConstraint("rest1", 2, constraints.Scope{})}
	schedule := sampleSchedule()

	if _, err := EvaluateCached(cache, cs, schedule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := EvaluateCached(cache, cs, schedule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hits, misses, _ := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got hits=%d misses=%d", hits, misses)
	}
}

func TestCacheEvictsOldestAtCapacity(t *testing.T) {
	cache := NewCache(1, nil)
	cache.Put("a", EvaluationResult{TotalScore: 1})
	cache.Put("b", EvaluationResult{TotalScore: 2})
	if cache.Size() != 1 {
		t.Fatalf("expected capacity-bounded size of 1, got %d", cache.Size())
	}
	if _, ok := cache.Get("a"); ok {
		t.Error("expected oldest entry to have been evicted")
	}
}

func TestValidateModificationRejectsIncreasedHardViolations(t *testing.T) {
	before := sampleSchedule()
	after := before.Clone()
	after.Games[0].Date = after.Games[1].Date.Add(-12 * time.Hour) // creates a rest violation

	cs := []constraints.Constraint{constraints.NewTeamRestConstraint("rest1", 2, constraints.Scope{})}
	result, err := ValidateModification(Modification{Before: before, After: after}, cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("expected modification that increases hard violations to be invalid")
	}
}

func TestConflictDetectionAndResolution(t *testing.T) {
	a := constraints.NewTeamRestConstraint("r1", 2, constraints.Scope{})
	b := constraints.NewTeamRestConstraint("r2", 4, constraints.Scope{})
	result, err := Process([]constraints.Constraint{a, b}, Context{Sport: "football"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	if !result.Conflicts[0].Resolved {
		t.Error("expected the TEAM_REST conflict to resolve via relaxation")
	}
}
