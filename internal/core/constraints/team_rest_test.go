package constraints

import (
	"testing"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

func scheduleWithGap(days float64) *models.Schedule {
	s := &models.Schedule{
		Teams: []*models.Team{
			{ID: "A", Name: "Alpha", VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
			{ID: "B", Name: "Beta", VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		},
	}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = s.AddGame(&models.Game{ID: "g1", Sport: "football", HomeTeamID: "A", AwayTeamID: "B", VenueID: "V1", Date: base})
	_ = s.AddGame(&models.Game{ID: "g2", Sport: "football", HomeTeamID: "B", AwayTeamID: "A", VenueID: "V2", Date: base.Add(time.Duration(days*24) * time.Hour)})
	return s
}

func TestTeamRestConstraintValidate(t *testing.T) {
	c := NewTeamRestConstraint("rest1", 2, Scope{})

	violations, err := c.Validate(scheduleWithGap(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) == 0 {
		t.Fatal("expected a rest violation for a 1 day gap with min 2")
	}

	violations, err = c.Validate(scheduleWithGap(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations for a 3 day gap with min 2, got %d", len(violations))
	}
}

func TestTeamRestConstraintScore(t *testing.T) {
	c := NewTeamRestConstraint("rest1", 2, Scope{})
	score, err := c.Score(scheduleWithGap(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.0 {
		t.Errorf("expected perfect score, got %f", score)
	}
}

func TestReligiousDayRestrictionConstraint(t *testing.T) {
	s := &models.Schedule{
		Teams: []*models.Team{
			{ID: "BYU", Name: "BYU", Tags: []string{"no-play-on-sunday"}, VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
			{ID: "B", Name: "Beta", VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		},
	}
	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if sunday.Weekday() != time.Sunday {
		t.Fatalf("test fixture date is not a Sunday")
	}
	_ = s.AddGame(&models.Game{ID: "g1", Sport: "football", HomeTeamID: "BYU", AwayTeamID: "B", VenueID: "V1", Date: sunday})

	c := NewReligiousDayRestrictionConstraint("rel1", Scope{})
	violations, err := c.Validate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
}

func TestTemplateRoundRobinProducesConstraints(t *testing.T) {
	cs, err := Template("round_robin", Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) == 0 {
		t.Fatal("expected round_robin template to produce constraints")
	}
}

func TestTemplateUnrecognizedName(t *testing.T) {
	if _, err := Template("not_a_template", Params{}); err == nil {
		t.Fatal("expected an error for an unrecognized template name")
	}
}

func TestGenerateRoundRobinEachTeamPlaysOthersOnce(t *testing.T) {
	teams := []*models.Team{
		{ID: "A", Name: "Alpha", VenueIDs: []string{"V1"}, PrimaryVenueID: "V1"},
		{ID: "B", Name: "Beta", VenueIDs: []string{"V2"}, PrimaryVenueID: "V2"},
		{ID: "C", Name: "Gamma", VenueIDs: []string{"V3"}, PrimaryVenueID: "V3"},
		{ID: "D", Name: "Delta", VenueIDs: []string{"V4"}, PrimaryVenueID: "V4"},
	}
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := GenerateRoundRobin("football", teams, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, team := range teams {
		games := schedule.GamesForTeam(team.ID)
		if len(games) != 3 {
			t.Errorf("team %s expected 3 games, got %d", team.ID, len(games))
		}
	}
}
