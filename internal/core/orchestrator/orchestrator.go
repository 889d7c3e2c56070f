// Package orchestrator implements the parallel optimizer (C6): it forks
// independent SA chains (C5), joins their results, merges the best ones
// into an ensemble, and hands the result to the refinement pass (§4.8).
// Fork/join shape follows a fan-out job manager, rebuilt here as a single
// synchronous call (no job-polling API) per §6.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/overlook-conference/schedcore/internal/core/annealing"
	"github.com/overlook-conference/schedcore/internal/core/constraints"
	"github.com/overlook-conference/schedcore/internal/core/engine"
	"github.com/overlook-conference/schedcore/internal/core/models"
	"github.com/overlook-conference/schedcore/internal/core/refinement"
	"github.com/overlook-conference/schedcore/internal/core/scoring"
	"github.com/overlook-conference/schedcore/internal/core/telemetry"
)

// ErrNoChainSucceeded is returned when every chain failed, timed out, or
// was cancelled before producing a result (§4.6 step 3).
var ErrNoChainSucceeded = errors.New("orchestrator: no chain produced a result")

// DefaultEnsembleImprovementThreshold is the §4.6 step 5 "≤ 95% of base"
// travel-adoption factor; a positive Config.EnsembleThreshold overrides it.
const DefaultEnsembleImprovementThreshold = 0.95

// Config is the orchestrator's internal configuration, translated from the
// public pkg/schedcore Options by the caller.
type Config struct {
	MaxIterations       int
	InitialTemperature  float64
	CoolingRate         float64
	CoolingSchedule     string
	ParallelChains      int
	AdaptiveCooling     bool
	EnableCache         bool
	CacheSize           int
	BaseSeed            int64
	PerChainTimeout     time.Duration
	DiversityThreshold  float64
	RefinementPasses    int
	EnsembleThreshold   float64

	SportProfiles map[string]constraints.SportProfile
	Venues        map[string]*models.Venue

	Logger   telemetry.Logger
	Progress telemetry.ProgressSink
}

// Result is what Optimize returns: the winning schedule (whose Metadata
// carries the per-chain scores) and whether the run was partial.
type Result struct {
	Schedule *models.Schedule
	Partial  bool
}

// Optimize implements the §4.6 public contract. rawConstraints is the
// caller-declared constraint set before C3 processing.
func Optimize(ctx context.Context, schedule *models.Schedule, rawConstraints []constraints.Constraint, cfg Config) (Result, error) {
	if schedule == nil {
		return Result{}, fmt.Errorf("orchestrator: schedule is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.NopLogger{}
	}
	telemetry.Emit(cfg.Progress, telemetry.Progress{Event: telemetry.EventOptimizationStart, ChainIndex: -1, Message: "optimize:start"})

	// 1. Prepare: build effective constraints via C3.
	engCtx := engine.Context{Sport: schedule.Sport, TeamCount: len(schedule.Teams)}
	processed, err := engine.Process(rawConstraints, engCtx, cfg.SportProfiles)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: processing constraints: %w", err)
	}

	n := cfg.ParallelChains
	if n <= 0 {
		n = 1
	}
	perChainIterations := cfg.MaxIterations / n
	if perChainIterations <= 0 {
		perChainIterations = 1
	}

	baseSeedRNG := rand.New(rand.NewSource(cfg.BaseSeed))
	scoreFn, cache := buildScoreFunc(processed.EffectiveConstraints, cfg.Venues, cfg.EnableCache, cfg.CacheSize)

	chainCfgs := make([]annealing.ChainConfig, n)
	for i := 0; i < n; i++ {
		u := baseSeedRNG.Float64()
		chainCfgs[i] = annealing.ChainConfig{
			Initial:         schedule,
			T0:              cfg.InitialTemperature * (0.8 + 0.4*u),
			MaxIterations:   perChainIterations,
			CoolingRate:     cfg.CoolingRate,
			CoolingSchedule: cfg.CoolingSchedule,
			Seed:            cfg.BaseSeed ^ int64(i),
			Score:           scoreFn,
			AdaptiveCooling: cfg.AdaptiveCooling,
			MaxMoveAttempts: 0,
		}
	}

	results, partial, chainErrs := runChainsParallel(ctx, chainCfgs, cfg.PerChainTimeout, logger, cfg.Progress)
	if len(results) == 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrNoChainSucceeded, chainErrs)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].BestScore < results[j].BestScore })

	k := int(math.Ceil(0.6 * float64(len(results))))
	if k < 1 {
		k = 1
	}
	if k > 3 {
		k = 3
	}
	candidates := append([]annealing.ChainResult(nil), results[:k]...)

	if diverse := pickDiverseCandidate(results[:k], results[k:], cfg.DiversityThreshold); diverse != nil {
		candidates = append(candidates, *diverse)
	}

	ensemble := mergeEnsemble(candidates, cfg.Venues, ensembleThreshold(cfg.EnsembleThreshold))
	ensembleScore, err := scoreFn(ensemble)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: scoring ensemble: %w", err)
	}
	ensemble.Metadata.FinalScore = ensembleScore

	// 6. Focused polish: one extra chain from the ensemble at tighter bounds.
	polishCfg := annealing.ChainConfig{
		Initial:         ensemble,
		T0:              cfg.InitialTemperature * 0.5,
		MaxIterations:   int(float64(cfg.MaxIterations) * 0.2),
		CoolingRate:     math.Min(cfg.CoolingRate*1.1, 0.999),
		CoolingSchedule: cfg.CoolingSchedule,
		Seed:            cfg.BaseSeed ^ int64(n),
		Score:           scoreFn,
		AdaptiveCooling: cfg.AdaptiveCooling,
	}
	polishCtx := ctx
	if cfg.PerChainTimeout > 0 {
		var cancel context.CancelFunc
		polishCtx, cancel = context.WithTimeout(ctx, cfg.PerChainTimeout)
		defer cancel()
	}
	polished, polishErr := annealing.RunChain(polishCtx, polishCfg)
	final := ensemble
	if polishErr == nil && polished.BestScore <= ensembleScore {
		final = polished.BestSchedule
		partial = partial || polished.Partial
	}

	// 7. Final refinement.
	refined, err := refinement.Refine(final, refinement.Config{Passes: cfg.RefinementPasses, Seed: cfg.BaseSeed})
	if err != nil {
		logger.Warnf("refinement failed, returning unrefined ensemble: %v", err)
		refined = final
	}

	refined.Metadata.Partial = partial

	chainScores := make([]float64, len(results))
	for i, r := range results {
		chainScores[i] = r.BestScore
	}
	refined.Metadata.ChainScores = chainScores

	unresolved := 0
	for _, c := range processed.Conflicts {
		if !c.Resolved {
			unresolved++
		}
	}
	refined.Metadata.ConflictsUnresolved = unresolved

	if cache != nil {
		_, _, hitRate := cache.Stats()
		refined.Metadata.CacheHitRate = hitRate
	}

	telemetry.Emit(cfg.Progress, telemetry.Progress{Event: telemetry.EventOptimizationComplete, ChainIndex: -1, BestScore: refined.Metadata.FinalScore})

	return Result{Schedule: refined, Partial: partial}, nil
}

func ensembleThreshold(t float64) float64 {
	if t <= 0 {
		return DefaultEnsembleImprovementThreshold
	}
	return t
}

// runChainsParallel forks len(cfgs) chains via errgroup, enforcing a
// per-chain timeout. Failed/timed-out/cancelled chains are dropped; the
// caller's ctx cancellation propagates to every chain (§4.6/§5).
func runChainsParallel(ctx context.Context, cfgs []annealing.ChainConfig, perChainTimeout time.Duration, logger telemetry.Logger, sink telemetry.ProgressSink) ([]annealing.ChainResult, bool, error) {
	results := make([]*annealing.ChainResult, len(cfgs))
	var mu sync.Mutex
	var errs *multierror.Error
	partial := false

	g, gctx := errgroup.WithContext(context.Background())
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			chainCtx, cancelChain := context.WithCancel(gctx)
			defer cancelChain()
			var cancel context.CancelFunc
			if perChainTimeout > 0 {
				chainCtx, cancel = context.WithTimeout(chainCtx, perChainTimeout)
				defer cancel()
			}
			// Link to the caller's cancellation without letting one
			// chain's internal errgroup context cancel its siblings.
			done := make(chan struct{})
			go func() {
				select {
				case <-ctx.Done():
					cancelChain()
				case <-done:
				}
			}()
			defer close(done)

			result, err := annealing.RunChain(chainCtx, cfg)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("chain %d: %w", i, err))
				logger.Warnf("chain %d failed: %v", i, err)
				return nil // do not abort sibling chains
			}
			results[i] = &result
			if result.Partial {
				partial = true
			}
			telemetry.Emit(sink, telemetry.Progress{Event: telemetry.EventChainDone, ChainIndex: i, BestScore: result.BestScore, Iteration: result.Iterations, AcceptedRate: result.AcceptanceRate})
			return nil
		})
	}
	_ = g.Wait()

	out := make([]annealing.ChainResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, partial, errs.ErrorOrNil()
}

// pickDiverseCandidate returns, among the runners-up, the first one whose
// schedule-level diversity from every selected candidate exceeds
// threshold; nil if none qualifies.
func pickDiverseCandidate(selected, runnersUp []annealing.ChainResult, threshold float64) *annealing.ChainResult {
	if threshold <= 0 {
		threshold = 0.1
	}
	for i := range runnersUp {
		candidate := runnersUp[i]
		diverseFromAll := true
		for _, s := range selected {
			if scheduleDiversity(candidate.BestSchedule, s.BestSchedule) <= threshold {
				diverseFromAll = false
				break
			}
		}
		if diverseFromAll {
			return &candidate
		}
	}
	return nil
}

// scheduleDiversity is the fraction of games differing in (date bucket,
// venue id, home team id) between two schedules of equal game count; for
// unequal counts, diversity is defined as 1 (§4.6).
func scheduleDiversity(a, b *models.Schedule) float64 {
	if len(a.Games) != len(b.Games) {
		return 1
	}
	if len(a.Games) == 0 {
		return 0
	}
	diff := 0
	for i := range a.Games {
		ga, gb := a.Games[i], b.Games[i]
		if ga.Date.Format("2006-01-02") != gb.Date.Format("2006-01-02") ||
			ga.VenueID != gb.VenueID ||
			ga.HomeTeamID != gb.HomeTeamID {
			diff++
		}
	}
	return float64(diff) / float64(len(a.Games))
}

// buildScoreFunc closes over the effective constraint set and venue table
// so annealing never needs to import engine or scoring directly. The
// returned cache is nil when caching is disabled; callers read its
// Stats() after the search completes to populate metadata.cache_hit_rate.
func buildScoreFunc(effective []constraints.Constraint, venues map[string]*models.Venue, enableCache bool, cacheSize int) (annealing.ScoreFunc, *engine.Cache) {
	weights := aggregateWeights(effective)
	nonScoring := excludeScoringOwnedKinds(effective)

	var cache *engine.Cache
	if enableCache {
		cache = engine.NewCache(cacheSize, nil)
	}

	scoreFn := func(s *models.Schedule) (float64, error) {
		var engineResult engine.EvaluationResult
		var err error
		if cache != nil {
			engineResult, err = engine.EvaluateCached(cache, nonScoring, s)
		} else {
			engineResult, err = engine.Evaluate(nonScoring, s)
		}
		if err != nil {
			return 0, err
		}
		// Engine scores are satisfaction in [0,1]; the total is lower-is-
		// better, so each constraint contributes weight*(1-score).
		var enginePenalty float64
		for i, r := range engineResult.Results {
			enginePenalty += nonScoring[i].Weight() - r.WeightedScore
		}
		total, _, err := scoring.Score(s, venues, weights, enginePenalty)
		if err != nil {
			return 0, err
		}
		return total, nil
	}
	return scoreFn, cache
}

var scoringOwnedKinds = map[constraints.Kind]bool{
	constraints.TravelDistance:        true,
	constraints.HomeAwayBalance:       true,
	constraints.TeamRest:              true,
	constraints.ConsecutiveHomeGames:  true,
	constraints.ConsecutiveAwayGames:  true,
}

func excludeScoringOwnedKinds(effective []constraints.Constraint) []constraints.Constraint {
	out := make([]constraints.Constraint, 0, len(effective))
	for _, c := range effective {
		if !scoringOwnedKinds[c.Kind()] {
			out = append(out, c)
		}
	}
	return out
}

func aggregateWeights(effective []constraints.Constraint) scoring.Weights {
	var w scoring.Weights
	for _, c := range effective {
		switch c.Kind() {
		case constraints.TravelDistance:
			w.Travel += c.Weight()
		case constraints.HomeAwayBalance:
			w.HomeAwayBalance += c.Weight()
		case constraints.TeamRest:
			w.TeamRest += c.Weight()
		case constraints.ConsecutiveHomeGames, constraints.ConsecutiveAwayGames:
			w.ConsecutiveHA += c.Weight()
		}
	}
	if w.Travel == 0 {
		w.Travel = 1
	}
	if w.HomeAwayBalance == 0 {
		w.HomeAwayBalance = 1
	}
	if w.TeamRest == 0 {
		w.TeamRest = 1
	}
	if w.ConsecutiveHA == 0 {
		w.ConsecutiveHA = 1
	}
	return w
}
