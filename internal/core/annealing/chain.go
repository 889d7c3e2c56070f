package annealing

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/overlook-conference/schedcore/internal/core/models"
	"github.com/overlook-conference/schedcore/internal/core/operators"
)

// MinTemperature is the §4.5 loop guard: a chain stops once T falls to or
// below this floor, regardless of remaining iteration budget.
const MinTemperature = 0.1

// CoolingInterval is how often (in iterations) the temperature is
// multiplied by the cooling rate (§4.5 step 5).
const CoolingInterval = 100

// ScoreFunc evaluates a schedule with read-only access; it must not
// mutate the schedule (§4.5). The orchestrator constructs one closing
// over the effective constraints, sport weights, and venue table so that
// this package never needs to import engine or scoring.
type ScoreFunc func(*models.Schedule) (float64, error)

// ChainResult is the per-chain outcome (§4.5).
type ChainResult struct {
	BestSchedule   *models.Schedule
	BestScore      float64
	InitialScore   float64
	Iterations     int
	Improvements   int
	AcceptanceRate float64
	Partial        bool
}

// ChainConfig parameterizes a single run_chain invocation.
type ChainConfig struct {
	Initial         *models.Schedule
	T0              float64
	MaxIterations   int
	CoolingRate     float64
	Seed            int64
	Score           ScoreFunc
	AdaptiveCooling bool
	MaxMoveAttempts int

	// CoolingSchedule names which CoolingSchedule strategy governs
	// temperature decay (§4.5 step 5); CreateCoolingSchedule's default
	// ("exponential") applies when empty.
	CoolingSchedule string
}

// RunChain implements run_chain(initial, T0, max_iter, cooling, weights,
// seed, cancel_token) -> ChainResult (§4.5). RNG state is entirely
// chain-local (seeded from cfg.Seed), so concurrent chains never share
// RNG, satisfying the determinism requirement.
func RunChain(ctx context.Context, cfg ChainConfig) (ChainResult, error) {
	if cfg.Initial == nil {
		return ChainResult{}, fmt.Errorf("annealing: initial schedule is nil")
	}
	if cfg.Score == nil {
		return ChainResult{}, fmt.Errorf("annealing: score function is nil")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	current := cfg.Initial.Clone()
	currentScore, err := cfg.Score(current)
	if err != nil {
		return ChainResult{}, err
	}
	best := current.Clone()
	bestScore := currentScore
	initialScore := currentScore

	t0 := cfg.T0
	if t0 <= 0 {
		t0 = 1
	}
	temperature := t0
	coolingRate := cfg.CoolingRate
	if coolingRate <= 0 || coolingRate >= 1 {
		coolingRate = 0.95
	}

	schedule := CreateCoolingSchedule(cfg.CoolingSchedule, coolingRate)
	adaptive := NewAdaptiveMultiplier(0, 0)

	improvements := 0
	acceptances := 0
	lastImprovementAt := 0
	i := 0
	partial := false

	for temperature > MinTemperature && i < cfg.MaxIterations {
		select {
		case <-ctx.Done():
			partial = true
		default:
		}
		if partial {
			break
		}

		candidate, err := operators.Apply(ctx, current, rng, cfg.MaxMoveAttempts)
		if err != nil {
			i++
			continue
		}

		candidateScore, err := cfg.Score(candidate)
		if err != nil {
			return ChainResult{}, err
		}

		accepted := false
		if candidateScore < currentScore {
			accepted = true
		} else if temperature > 0 {
			delta := candidateScore - currentScore
			probability := math.Exp(-delta / temperature)
			if rng.Float64() < probability {
				accepted = true
			}
		}

		if accepted {
			current = candidate
			currentScore = candidateScore
			acceptances++

			if currentScore < bestScore {
				best = current.Clone()
				bestScore = currentScore
				improvements++
				lastImprovementAt = i
			}
		}

		i++
		if i%CoolingInterval == 0 {
			if cfg.AdaptiveCooling {
				if adjusted := adaptive.CheckAndApply(coolingRate, i-lastImprovementAt); adjusted != coolingRate {
					coolingRate = adjusted
					schedule = CreateCoolingSchedule(cfg.CoolingSchedule, coolingRate)
				}
			}
			temperature = schedule.NextTemperature(t0, i/CoolingInterval)
		}
	}

	acceptanceRate := 0.0
	if i > 0 {
		acceptanceRate = float64(acceptances) / float64(i)
	}

	best.Metadata.FinalScore = bestScore
	best.Metadata.InitialScore = initialScore
	best.Metadata.Iterations = i
	best.Metadata.Improvements = improvements
	best.Metadata.Partial = partial

	return ChainResult{
		BestSchedule:   best,
		BestScore:      bestScore,
		InitialScore:   initialScore,
		Iterations:     i,
		Improvements:   improvements,
		AcceptanceRate: acceptanceRate,
		Partial:        partial,
	}, nil
}
