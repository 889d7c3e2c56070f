package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/overlook-conference/schedcore/internal/core/constraints"
)

// ProcessResult is the output of Process: the ordered, weighted constraint
// set ready for evaluation, plus the conflict resolution log.
type ProcessResult struct {
	EffectiveConstraints []constraints.Constraint
	Conflicts            []ConflictLog
}

// Process normalizes raw constraints (filling defaults, stamping ids),
// applies per-sport weight multipliers and contextual adjustments, detects
// and resolves pairwise conflicts, and returns a stably ordered effective
// list plus a resolution log (§4.3).
func Process(raw []constraints.Constraint, ctx Context, profiles map[string]constraints.SportProfile) (ProcessResult, error) {
	normalized := make([]constraints.Constraint, 0, len(raw))
	for _, c := range raw {
		if _, ok := constraints.LookupKind(c.Kind()); !ok {
			return ProcessResult{}, fmt.Errorf("process: unrecognized constraint kind %q", c.Kind())
		}
		if c.ID() == "" {
			c.SetID(uuid.NewString())
		}
		mult := constraints.Multiplier(profiles, ctx.Sport, c.Kind())
		if c.Category() == "logistics" && ctx.TeamCount > largeConferenceThreshold {
			mult *= largeConferenceMultiplier
		}
		c.SetWeight(c.Weight() * mult)
		normalized = append(normalized, c)
	}

	conflicts := detectAndResolveConflicts(normalized)

	sort.SliceStable(normalized, func(i, j int) bool {
		a, b := normalized[i], normalized[j]
		if a.Hardness() != b.Hardness() {
			return a.Hardness() < b.Hardness() // hard < soft < preference
		}
		if a.BasePriority() != b.BasePriority() {
			return a.BasePriority() > b.BasePriority() // descending priority
		}
		return a.ID() < b.ID() // ascending id
	})

	return ProcessResult{EffectiveConstraints: normalized, Conflicts: conflicts}, nil
}
