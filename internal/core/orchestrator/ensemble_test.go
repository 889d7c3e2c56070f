package orchestrator

import (
	"testing"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/annealing"
	"github.com/overlook-conference/schedcore/internal/core/models"
)

func twoGameSchedule(aHome bool, venueA, venueB string) *models.Schedule {
	s := &models.Schedule{
		Sport: "football",
		Teams: []*models.Team{
			{ID: "A", Latitude: 40, Longitude: -75, VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
			{ID: "B", Latitude: 41, Longitude: -74, VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		},
	}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	home, away := "A", "B"
	if !aHome {
		home, away = "B", "A"
	}
	_ = s.AddGame(&models.Game{ID: "g1", Sport: "football", HomeTeamID: home, AwayTeamID: away, VenueID: venueA, Date: base})
	_ = s.AddGame(&models.Game{ID: "g2", Sport: "football", HomeTeamID: away, AwayTeamID: home, VenueID: venueB, Date: base.AddDate(0, 0, 7)})
	return s
}

func TestMergeEnsembleAdoptsBetterHomeAwayBalance(t *testing.T) {
	venues := map[string]*models.Venue{
		"V1": {ID: "V1", Latitude: 40, Longitude: -75},
		"V2": {ID: "V2", Latitude: 41, Longitude: -74},
	}
	base := twoGameSchedule(true, "V1", "V2")
	base.Games[1].HomeTeamID, base.Games[1].AwayTeamID = "A", "B" // A home twice: imbalance 2
	candidate := twoGameSchedule(true, "V1", "V2")
	candidate.Games[1].HomeTeamID, candidate.Games[1].AwayTeamID = "B", "A" // balanced 1/1

	merged := mergeEnsemble([]annealing.ChainResult{
		{BestSchedule: base},
		{BestSchedule: candidate},
	}, venues, DefaultEnsembleImprovementThreshold)

	home, away := merged.HomeAwayCounts("A")
	if home != 1 || away != 1 {
		t.Errorf("expected ensemble to adopt the balanced assignment, got home=%d away=%d", home, away)
	}
}

func TestMergeEnsembleSingleCandidateReturnsClone(t *testing.T) {
	base := twoGameSchedule(true, "V1", "V1")
	merged := mergeEnsemble([]annealing.ChainResult{{BestSchedule: base}}, nil, 0.95)
	if merged == base {
		t.Fatal("expected mergeEnsemble to return a clone, not the original pointer")
	}
	if len(merged.Games) != len(base.Games) {
		t.Errorf("expected same game count")
	}
}
