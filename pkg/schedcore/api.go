// Package schedcore is the public library surface (§6): four call
// surfaces over the internal constraint engine, SA chain, orchestrator,
// and scoring modules. It makes synchronous, in-process calls only and
// performs no I/O; callers own persistence.
package schedcore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/engine"
	"github.com/overlook-conference/schedcore/internal/core/models"
	"github.com/overlook-conference/schedcore/internal/core/orchestrator"
)

// Constraint re-exports the internal constraint interface so callers
// never need to import an internal package directly.
type Constraint = constraints.Constraint

// EvaluationResult re-exports the engine's evaluation result.
type EvaluationResult = engine.EvaluationResult

// ValidationResult re-exports the engine's modification-validation result.
type ValidationResult = engine.ValidationResult

// Modification re-exports the engine's before/after pair.
type Modification = engine.Modification

// Optimize is the primary entry point (§4.6/§6): it runs the parallel SA
// orchestrator over schedule using rawConstraints and opts, returning a
// new Schedule (the input is never mutated).
func Optimize(ctx context.Context, schedule *models.Schedule, rawConstraints []Constraint, venues map[string]*models.Venue, opts Options) (*models.Schedule, error) {
	if schedule == nil {
		return nil, &InvalidInputError{Detail: "schedule is nil"}
	}
	if err := schedule.Validate(); err != nil {
		return nil, &InvalidInputError{Detail: "schedule failed validation", Cause: err}
	}

	start := time.Now()

	cfg := orchestrator.Config{
		MaxIterations:      opts.MaxIterations,
		InitialTemperature: opts.InitialTemperature,
		CoolingRate:        opts.CoolingRate,
		CoolingSchedule:    opts.CoolingSchedule,
		ParallelChains:     opts.ParallelChains,
		AdaptiveCooling:    opts.AdaptiveCooling,
		EnableCache:        opts.EnableCache,
		CacheSize:          opts.CacheSize,
		BaseSeed:           opts.BaseSeed,
		PerChainTimeout:    opts.PerChainTimeout,
		DiversityThreshold: opts.DiversityThreshold,
		RefinementPasses:   opts.RefinementPasses,
		SportProfiles:      constraints.DefaultSportProfiles(),
		Venues:             venues,
		Logger:             opts.Logger,
		Progress:           opts.Progress,
	}

	result, err := orchestrator.Optimize(ctx, schedule, rawConstraints, cfg)
	if err != nil {
		if errors.Is(err, orchestrator.ErrNoChainSucceeded) {
			return nil, &OptimizationFailedError{Cause: err}
		}
		return nil, &InvalidInputError{Detail: "processing constraints", Cause: err}
	}

	result.Schedule.Metadata.ElapsedMS = time.Since(start).Milliseconds()
	return result.Schedule, nil
}

// Evaluate is the read-only evaluation call surface (§6): it runs
// constraint processing (C3) then evaluation, without optimizing.
func Evaluate(raw []Constraint, schedule *models.Schedule) (EvaluationResult, error) {
	if schedule == nil {
		return EvaluationResult{}, &InvalidInputError{Detail: "schedule is nil"}
	}
	if err := schedule.Validate(); err != nil {
		return EvaluationResult{}, &InvalidInputError{Detail: "schedule failed validation", Cause: err}
	}

	processed, err := engine.Process(raw, engine.Context{Sport: schedule.Sport, TeamCount: len(schedule.Teams)}, constraints.DefaultSportProfiles())
	if err != nil {
		return EvaluationResult{}, &InvalidInputError{Detail: "processing constraints", Cause: err}
	}
	result, err := engine.Evaluate(processed.EffectiveConstraints, schedule)
	if err != nil {
		return EvaluationResult{}, &ScoringError{Component: "evaluate", Detail: err.Error()}
	}
	return result, nil
}

// ValidateModification is the §6 call surface for checking whether a
// proposed before/after schedule pair increases any hard-constraint
// violation count.
func ValidateModification(mod Modification, raw []Constraint) (ValidationResult, error) {
	if mod.Before == nil || mod.After == nil {
		return ValidationResult{}, &InvalidInputError{Detail: "modification requires both before and after schedules"}
	}
	sport := mod.After.Sport
	processed, err := engine.Process(raw, engine.Context{Sport: sport, TeamCount: len(mod.After.Teams)}, constraints.DefaultSportProfiles())
	if err != nil {
		return ValidationResult{}, &InvalidInputError{Detail: "processing constraints", Cause: err}
	}
	result, err := engine.ValidateModification(mod, processed.EffectiveConstraints)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("validating modification: %w", err)
	}
	return result, nil
}

// Template is the constraint-templating call surface (§6): it expands a
// named template into a concrete constraint set.
func Template(name string, params map[string]any) ([]Constraint, error) {
	cs, err := constraints.Template(name, constraints.Params(params))
	if err != nil {
		return nil, &InvalidInputError{Detail: fmt.Sprintf("unknown template %q", name), Cause: err}
	}
	return cs, nil
}
