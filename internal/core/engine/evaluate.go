package engine

import (
	"math"

	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/models"
)

// Status classifies how well a single constraint was satisfied.
type Status string

const (
	Satisfied Status = "satisfied"
	Partial   Status = "partial"
	Violated  Status = "violated"
)

// ConstraintResult is the per-constraint outcome of evaluate().
type ConstraintResult struct {
	ConstraintID  string
	Status        Status
	Score         float64
	WeightedScore float64
	Violations    []constraints.Violation
	Suggestions   []string
}

// EvaluationResult aggregates every ConstraintResult for a schedule.
type EvaluationResult struct {
	Results           []ConstraintResult
	TotalScore        float64
	OverallCompliance float64 // satisfied_hard / total_hard
}

// ScoringError signals a NaN/Inf numeric failure in a score component
// (§4.7); evaluation is total otherwise — an unrecognized kind was already
// rejected in process(), recognized kinds always yield a numeric result.
type ScoringError struct {
	ConstraintID string
	Detail       string
}

func (e *ScoringError) Error() string {
	return "scoring error in constraint " + e.ConstraintID + ": " + e.Detail
}

// Evaluate scores schedule against every effective constraint, returning
// per-constraint results and the aggregate. Hard violations never cancel
// out with soft successes: OverallCompliance is computed purely from hard
// constraints.
func Evaluate(effective []constraints.Constraint, schedule *models.Schedule) (EvaluationResult, error) {
	var result EvaluationResult
	satisfiedHard, totalHard := 0, 0

	for _, c := range effective {
		score, err := c.Score(schedule)
		if err != nil {
			return EvaluationResult{}, err
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return EvaluationResult{}, &ScoringError{ConstraintID: c.ID(), Detail: "non-finite score"}
		}
		violations, err := c.Validate(schedule)
		if err != nil {
			return EvaluationResult{}, err
		}

		status := Satisfied
		switch {
		case len(violations) > 0 && score <= 0:
			status = Violated
		case len(violations) > 0:
			status = Partial
		}

		weighted := score * c.Weight()
		result.Results = append(result.Results, ConstraintResult{
			ConstraintID:  c.ID(),
			Status:        status,
			Score:         score,
			WeightedScore: weighted,
			Violations:    violations,
		})
		result.TotalScore += weighted

		if c.Hardness() == constraints.Hard {
			totalHard++
			if status == Satisfied {
				satisfiedHard++
			}
		}
	}

	if totalHard > 0 {
		result.OverallCompliance = float64(satisfiedHard) / float64(totalHard)
	} else {
		result.OverallCompliance = 1.0
	}
	return result, nil
}
