package engine

import (
	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/models"
)

// Modification is a proposed schedule change: the schedule before and
// after applying it. Cheap local validation (§4.3) compares hard
// constraint violation counts between the two rather than re-running a
// full evaluate().
type Modification struct {
	Before *models.Schedule
	After  *models.Schedule
}

// ValidationResult reports whether a modification is acceptable and any
// suggestions the engine can offer.
type ValidationResult struct {
	Valid       bool
	Suggestions []string
}

// ValidateModification is valid iff no hard constraint in active is
// violated strictly more after applying mod than before.
func ValidateModification(mod Modification, active []constraints.Constraint) (ValidationResult, error) {
	var suggestions []string
	for _, c := range active {
		if c.Hardness() != constraints.Hard {
			continue
		}
		before, err := c.Validate(mod.Before)
		if err != nil {
			return ValidationResult{}, err
		}
		after, err := c.Validate(mod.After)
		if err != nil {
			return ValidationResult{}, err
		}
		if len(after) > len(before) {
			suggestions = append(suggestions, "modification increases violations of "+c.Name())
			return ValidationResult{Valid: false, Suggestions: suggestions}, nil
		}
	}
	return ValidationResult{Valid: true}, nil
}
