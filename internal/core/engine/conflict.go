package engine

import (
	"fmt"

	"github.com/overlook-conference/schedcore/internal/core/constraints"
)

// ConflictLog records one detected conflict and how (or whether) it was
// resolved, for the caller-visible resolution log (unresolved entries are
// counted into metadata.conflicts_unresolved).
type ConflictLog struct {
	AID, BID string
	Detail   string
	Strategy string // name of the strategy that resolved it, or "" if unresolved
	Resolved bool
}

// detectAndResolveConflicts runs the pairwise conflict pass over
// normalized (already weighted) constraints, mutating the losing side in
// place per the winning strategy.
func detectAndResolveConflicts(cs []constraints.Constraint) []ConflictLog {
	var logs []ConflictLog
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			a, b := cs[i], cs[j]
			detail, conflicting := detectConflict(a, b)
			if !conflicting {
				continue
			}
			strategy, resolved := resolve(a, b)
			logs = append(logs, ConflictLog{
				AID: a.ID(), BID: b.ID(), Detail: detail,
				Strategy: strategy, Resolved: resolved,
			})
		}
	}
	return logs
}

// detectConflict reports whether a and b address overlapping scope with
// incompatible parameters (§4.3): same kind, overlapping team scope, and
// (when both implement ParameterKeyer) differing parameter keys.
func detectConflict(a, b constraints.Constraint) (string, bool) {
	if a.Kind() != b.Kind() {
		return "", false
	}
	if !scopesOverlap(a.Scope(), b.Scope()) {
		return "", false
	}
	ak, aok := a.(constraints.ParameterKeyer)
	bk, bok := b.(constraints.ParameterKeyer)
	if !aok || !bok {
		return "", false
	}
	if ak.ParameterKey() == bk.ParameterKey() {
		return "", false
	}
	return fmt.Sprintf("%s vs %s on overlapping scope", ak.ParameterKey(), bk.ParameterKey()), true
}

func scopesOverlap(a, b constraints.Scope) bool {
	if len(a.TeamIDs) == 0 || len(b.TeamIDs) == 0 {
		return true // a global scope overlaps everything
	}
	set := make(map[string]bool, len(a.TeamIDs))
	for _, id := range a.TeamIDs {
		set[id] = true
	}
	for _, id := range b.TeamIDs {
		if set[id] {
			return true
		}
	}
	return false
}

func moreSpecific(a, b constraints.Scope) int {
	// fewer (but nonzero) team ids is more specific; a global scope (0) is
	// least specific. Returns -1 if a is more specific, 1 if b is, 0 tied.
	as, bs := len(a.TeamIDs), len(b.TeamIDs)
	if as == 0 {
		as = 1 << 30
	}
	if bs == 0 {
		bs = 1 << 30
	}
	switch {
	case as < bs:
		return -1
	case bs < as:
		return 1
	default:
		return 0
	}
}

// resolve tries the five named strategies in order, returning the name of
// the first one that resolves the conflict (or "" if none did).
func resolve(a, b constraints.Constraint) (string, bool) {
	if weightAdjustment(a, b) {
		return "weight_adjustment", true
	}
	if priorityReordering(a, b) {
		return "priority_reordering", true
	}
	if relaxLowerPriority(a, b) {
		return "relaxation", true
	}
	if alternativeGeneration(a, b) {
		return "alternative_generation", true
	}
	if contextualExemption(a, b) {
		return "contextual_exemption", true
	}
	return "", false
}

// weightAdjustment resolves conflicts between two non-hard constraints by
// halving the weight of the lower-priority side.
func weightAdjustment(a, b constraints.Constraint) bool {
	if a.Hardness() == constraints.Hard || b.Hardness() == constraints.Hard {
		return false
	}
	loser := lowerPriority(a, b)
	if loser == nil {
		return false
	}
	loser.SetWeight(loser.Weight() * 0.5)
	return true
}

// priorityReordering resolves conflicts where one side has a strictly more
// specific scope, by bumping its priority above the other's.
func priorityReordering(a, b constraints.Constraint) bool {
	switch moreSpecific(a.Scope(), b.Scope()) {
	case -1:
		if a.BasePriority() <= b.BasePriority() {
			a.SetBasePriority(b.BasePriority() + 1)
			return true
		}
	case 1:
		if b.BasePriority() <= a.BasePriority() {
			b.SetBasePriority(a.BasePriority() + 1)
			return true
		}
	}
	return false
}

// relaxLowerPriority resolves TEAM_REST-style conflicts by raising the
// laxer (lower minimum) of two TEAM_REST constraints to the stricter one's
// minimum, so both agree. Base priority is not consulted, and neither
// side's minimum is lowered. Other constraint types fall through.
func relaxLowerPriority(a, b constraints.Constraint) bool {
	ar, aok := a.(*constraints.TeamRestConstraint)
	br, bok := b.(*constraints.TeamRestConstraint)
	if !aok || !bok {
		return false
	}
	if ar.MinRestDays >= br.MinRestDays {
		br.MinRestDays = ar.MinRestDays
	} else {
		ar.MinRestDays = br.MinRestDays
	}
	return true
}

// alternativeGeneration resolves remaining conflicts between two hard
// constraints of equal specificity by downgrading the numerically lower
// base-priority side to soft, generating an alternative (weaker) version
// of it rather than dropping it.
func alternativeGeneration(a, b constraints.Constraint) bool {
	if a.Hardness() != constraints.Hard || b.Hardness() != constraints.Hard {
		return false
	}
	loser := lowerPriority(a, b)
	if loser == nil {
		return false
	}
	loser.SetHardness(constraints.Soft)
	return true
}

// contextualExemption is the final fallback: per §4.3's tie-break rule,
// when both sides are already at minimum hardness (preference) there is
// nothing left to relax and the conflict stays unresolved (ConstraintConflict,
// surfaced as a warning, not fatal).
func contextualExemption(a, b constraints.Constraint) bool {
	if a.Hardness() == constraints.Preference && b.Hardness() == constraints.Preference {
		return false
	}
	loser := lowerPriority(a, b)
	if loser == nil {
		// equal priority and equal specificity: keep both, downgrade the
		// one with the lexicographically greater id (deterministic pick).
		if a.ID() > b.ID() {
			loser = a
		} else {
			loser = b
		}
	}
	loser.SetHardness(constraints.Preference)
	return true
}

// lowerPriority returns the constraint with the strictly lower base
// priority, or nil if they are tied.
func lowerPriority(a, b constraints.Constraint) constraints.Constraint {
	switch {
	case a.BasePriority() < b.BasePriority():
		return a
	case b.BasePriority() < a.BasePriority():
		return b
	default:
		return nil
	}
}
