package constraints

import (
	"time"

	"github.com/overlook-conference/schedcore/internal/core/models"
)

// Scope names the sports and teams a constraint applies to; empty slices
// mean "applies to all".
type Scope struct {
	Sports  []string
	TeamIDs []string
}

// AppliesToSport reports whether the scope includes sport.
func (s Scope) AppliesToSport(sport string) bool {
	if len(s.Sports) == 0 {
		return true
	}
	for _, sp := range s.Sports {
		if sp == sport {
			return true
		}
	}
	return false
}

// AppliesToTeam reports whether the scope includes teamID.
func (s Scope) AppliesToTeam(teamID string) bool {
	if len(s.TeamIDs) == 0 {
		return true
	}
	for _, id := range s.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

// Violation is one concrete instance of a constraint not being met.
type Violation struct {
	Description string
	GameIDs     []string
	Severity    string // "hard", "soft" or "preference", mirrors the owning constraint's hardness
}

// Constraint is the pure evaluable unit §3 describes: given a schedule it
// produces a score and a violations list, never mutating the schedule.
type Constraint interface {
	ID() string
	SetID(id string)
	Kind() Kind
	Hardness() Hardness
	SetHardness(h Hardness)
	BasePriority() int
	SetBasePriority(p int)
	Category() string
	Weight() float64
	SetWeight(w float64)
	Scope() Scope
	Name() string
	Description() string

	// Validate returns the concrete violations found against schedule.
	Validate(schedule *models.Schedule) ([]Violation, error)
	// Score returns a value in [0,1], where 1.0 is fully satisfied.
	Score(schedule *models.Schedule) (float64, error)
}

// ParameterKeyer is implemented by constraints whose kind-specific
// parameters can conflict with another constraint of the same kind (e.g.
// two TEAM_REST constraints with different minimum-day values on
// overlapping scope, §4.3). Constraints that don't implement it are never
// flagged as conflicting by the engine's pairwise pass.
type ParameterKeyer interface {
	ParameterKey() string
}

// BaseConstraint supplies the identity/metadata fields shared by every
// concrete constraint; embedders implement Validate/Score themselves.
type BaseConstraint struct {
	IDValue           string
	KindValue         Kind
	HardnessValue     Hardness
	BasePriorityValue int
	CategoryValue     string
	WeightValue       float64
	ScopeValue        Scope
	NameValue         string
	DescriptionValue  string
}

func (b *BaseConstraint) ID() string                  { return b.IDValue }
func (b *BaseConstraint) SetID(id string)             { b.IDValue = id }
func (b *BaseConstraint) Kind() Kind                   { return b.KindValue }
func (b *BaseConstraint) Hardness() Hardness           { return b.HardnessValue }
func (b *BaseConstraint) SetHardness(h Hardness)       { b.HardnessValue = h }
func (b *BaseConstraint) BasePriority() int            { return b.BasePriorityValue }
func (b *BaseConstraint) SetBasePriority(p int)        { b.BasePriorityValue = p }
func (b *BaseConstraint) Category() string             { return b.CategoryValue }
func (b *BaseConstraint) Weight() float64              { return b.WeightValue }
func (b *BaseConstraint) SetWeight(w float64)          { b.WeightValue = w }
func (b *BaseConstraint) Scope() Scope                 { return b.ScopeValue }
func (b *BaseConstraint) Name() string                 { return b.NameValue }
func (b *BaseConstraint) Description() string          { return b.DescriptionValue }

// DateConstraint adds an unavailable-dates set to BaseConstraint, used by
// hard constraints keyed on a resource's blackout dates (venue/team
// availability).
type DateConstraint struct {
	BaseConstraint
	UnavailableDates map[string][]time.Time // resource id -> blackout dates
}

// IsDateUnavailable reports whether resourceID is blacked out on date's
// calendar day.
func (d *DateConstraint) IsDateUnavailable(resourceID string, date time.Time) bool {
	dates, ok := d.UnavailableDates[resourceID]
	if !ok {
		return false
	}
	y1, m1, d1 := date.Date()
	for _, blocked := range dates {
		y2, m2, d2 := blocked.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return true
		}
	}
	return false
}

// GetUnavailableDates returns the blackout dates configured for resourceID.
func (d *DateConstraint) GetUnavailableDates(resourceID string) []time.Time {
	return d.UnavailableDates[resourceID]
}
