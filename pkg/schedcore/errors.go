package schedcore

import "fmt"

// InvalidInputError names a malformed schedule, unknown constraint kind,
// duplicate game id, or a game referencing a team outside the team set
// (§7).
type InvalidInputError struct {
	Detail string
	Cause  error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", e.Detail)
}

func (e *InvalidInputError) Unwrap() error { return e.Cause }

// InvariantViolation means a move or refinement produced a schedule
// violating §3; this is an internal bug and is surfaced as fatal (§7).
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s: %s", e.Invariant, e.Detail)
}

// ScoringError is a numeric failure (NaN/Inf) in a score component;
// fatal for the chain that produced it (§7).
type ScoringError struct {
	Component string
	Detail    string
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring error in %s: %s", e.Component, e.Detail)
}

// OptimizationFailedError means every chain failed or exceeded its
// deadline with no output (§7).
type OptimizationFailedError struct {
	Cause error
}

func (e *OptimizationFailedError) Error() string {
	return fmt.Sprintf("optimization failed: %v", e.Cause)
}

func (e *OptimizationFailedError) Unwrap() error { return e.Cause }

// ConstraintConflict is an unresolved conflict between two constraints
// after exhausting the §4.3 resolution strategies. It is a warning, not
// a fatal error: surfaced in metadata, the conflicting pair recorded.
type ConstraintConflict struct {
	ConstraintAID string
	ConstraintBID string
	Detail        string
}

func (e *ConstraintConflict) Error() string {
	return fmt.Sprintf("unresolved conflict between %s and %s: %s", e.ConstraintAID, e.ConstraintBID, e.Detail)
}

// Cancelled means the caller cancelled the operation; the returned value
// is marked partial = true (§7).
type Cancelled struct {
	Detail string
}

func (e *Cancelled) Error() string {
	if e.Detail == "" {
		return "cancelled"
	}
	return fmt.Sprintf("cancelled: %s", e.Detail)
}
