package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	d := Haversine(40.0, -75.0, 40.0, -75.0)
	if d != 0 {
		t.Errorf("expected 0 distance for identical points, got %f", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// New York to Los Angeles is roughly 2450 miles.
	d := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	if d < 2300 || d > 2600 {
		t.Errorf("expected ~2450 miles between NYC and LA, got %f", d)
	}
}

func twoTeamSchedule() (*models.Schedule, map[string]*models.Venue) {
	teams := []*models.Team{
		{ID: "A", Latitude: 40.0, Longitude: -75.0, VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
		{ID: "B", Latitude: 41.0, Longitude: -74.0, VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
	}
	venues := map[string]*models.Venue{
		"V1": {ID: "V1", Latitude: 40.0, Longitude: -75.0},
		"V2": {ID: "V2", Latitude: 41.0, Longitude: -74.0},
	}
	s := &models.Schedule{Sport: "football", Teams: teams}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = s.AddGame(&models.Game{ID: "g1", Sport: "football", HomeTeamID: "A", AwayTeamID: "B", VenueID: "V1", Date: base})
	_ = s.AddGame(&models.Game{ID: "g2", Sport: "football", HomeTeamID: "B", AwayTeamID: "A", VenueID: "V2", Date: base.AddDate(0, 0, 7)})
	return s, venues
}

func TestTravelComponentNonNegative(t *testing.T) {
	schedule, venues := twoTeamSchedule()
	travel, err := TravelComponent(schedule, venues)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if travel <= 0 {
		t.Errorf("expected positive travel cost for teams at different venues, got %f", travel)
	}
}

func TestTeamTravelCostMatchesSingleTeamSlice(t *testing.T) {
	schedule, venues := twoTeamSchedule()
	cost, err := TeamTravelCost(schedule, venues, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost <= 0 {
		t.Errorf("expected positive travel cost, got %f", cost)
	}
}

func TestTeamTravelCostUnknownTeam(t *testing.T) {
	schedule, venues := twoTeamSchedule()
	if _, err := TeamTravelCost(schedule, venues, "nope"); err == nil {
		t.Error("expected an error for an unknown team id")
	}
}

func TestHomeAwayBalanceComponentZeroWhenBalanced(t *testing.T) {
	schedule, _ := twoTeamSchedule()
	balance, err := HomeAwayBalanceComponent(schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 0 {
		t.Errorf("expected 0 imbalance for a 1-1 home/away split, got %f", balance)
	}
}

func TestTeamRestComponentPenalizesShortGaps(t *testing.T) {
	teams := []*models.Team{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	s := &models.Schedule{Sport: "football", Teams: teams}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = s.AddGame(&models.Game{ID: "g1", Sport: "football", HomeTeamID: "A", AwayTeamID: "B", Date: base})
	_ = s.AddGame(&models.Game{ID: "g2", Sport: "football", HomeTeamID: "A", AwayTeamID: "C", Date: base.Add(12 * time.Hour)})

	rest, err := TeamRestComponent(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rest <= 0 {
		t.Errorf("expected a positive penalty for a sub-1-day gap, got %f", rest)
	}
}

func TestConsecutiveComponentPenalizesLongRuns(t *testing.T) {
	teams := []*models.Team{{ID: "A"}, {ID: "B"}}
	s := &models.Schedule{Sport: "football", Teams: teams}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_ = s.AddGame(&models.Game{
			ID: "g" + string(rune('0'+i)), Sport: "football",
			HomeTeamID: "A", AwayTeamID: "B", Date: base.AddDate(0, 0, 7*i),
		})
	}
	consecutive, err := ConsecutiveComponent(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both A's 5-game home run and B's 5-game away run exceed the max run
	// of 3 by 2, contributing a penalty of 2 each.
	if consecutive != 4 {
		t.Errorf("expected a combined penalty of 4, got %f", consecutive)
	}
}

func TestScoreAggregatesWeightedComponents(t *testing.T) {
	schedule, venues := twoTeamSchedule()
	w := Weights{Travel: 1, HomeAwayBalance: 1, TeamRest: 1, ConsecutiveHA: 1}
	total, breakdown, err := Score(schedule, venues, w, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if breakdown.EngineComponent != 5.0 {
		t.Errorf("expected the engine component to pass through unchanged, got %f", breakdown.EngineComponent)
	}
	expected := breakdown.Travel + breakdown.HomeAwayBalance + breakdown.TeamRest + breakdown.ConsecutiveHA + 5.0
	if math.Abs(total-expected) > 1e-9 {
		t.Errorf("expected total %f to equal the sum of weighted components, got mismatch", expected)
	}
}

func TestScoreRejectsOutOfRangeLatitude(t *testing.T) {
	schedule, venues := twoTeamSchedule()
	venues["V1"].Latitude = 200
	w := Weights{Travel: 1, HomeAwayBalance: 1, TeamRest: 1, ConsecutiveHA: 1}
	if _, _, err := Score(schedule, venues, w, 0); err == nil {
		t.Error("expected an error for an out-of-range venue latitude")
	}
}
