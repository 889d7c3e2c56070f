// Package annealing implements the SA chain (C5): a single simulated
// annealing run over a schedule, built around the minimize-is-better
// score of §4.7.
package annealing

import "math"

// CoolingSchedule decides the next temperature given the initial
// temperature and iteration count.
type CoolingSchedule interface {
	NextTemperature(initialTemp float64, iteration int) float64
}

// ExponentialCooling: T = T0 * rate^iteration.
type ExponentialCooling struct {
	CoolingRate float64
}

func NewExponentialCooling(rate float64) *ExponentialCooling {
	return &ExponentialCooling{CoolingRate: rate}
}

func (ec *ExponentialCooling) NextTemperature(initialTemp float64, iteration int) float64 {
	return initialTemp * math.Pow(ec.CoolingRate, float64(iteration))
}

// LinearCooling: T = T0 - rate*iteration, floored at 0.
type LinearCooling struct {
	CoolingRate float64
}

func NewLinearCooling(rate float64) *LinearCooling {
	return &LinearCooling{CoolingRate: rate}
}

func (lc *LinearCooling) NextTemperature(initialTemp float64, iteration int) float64 {
	t := initialTemp - lc.CoolingRate*float64(iteration)
	if t < 0 {
		return 0
	}
	return t
}

// LogarithmicCooling: T = T0 / (scale * log(1+iteration)).
type LogarithmicCooling struct {
	ScalingFactor float64
}

func NewLogarithmicCooling(scale float64) *LogarithmicCooling {
	return &LogarithmicCooling{ScalingFactor: scale}
}

func (lgc *LogarithmicCooling) NextTemperature(initialTemp float64, iteration int) float64 {
	if iteration == 0 {
		return initialTemp
	}
	return initialTemp / (lgc.ScalingFactor * math.Log(1.0+float64(iteration)))
}

// GeometricCooling: geometric decay with periodic reheating to escape
// local optima.
type GeometricCooling struct {
	CoolingRate  float64
	ReheatFactor float64
	ReheatPeriod int
}

func NewGeometricCooling(rate, reheatFactor float64, reheatPeriod int) *GeometricCooling {
	return &GeometricCooling{CoolingRate: rate, ReheatFactor: reheatFactor, ReheatPeriod: reheatPeriod}
}

func (gc *GeometricCooling) NextTemperature(initialTemp float64, iteration int) float64 {
	t := initialTemp * math.Pow(gc.CoolingRate, float64(iteration))
	if gc.ReheatPeriod > 0 && iteration > 0 && iteration%gc.ReheatPeriod == 0 {
		t *= gc.ReheatFactor
	}
	return t
}

// CombinedCooling blends several schedules by weight.
type CombinedCooling struct {
	Schedules []CoolingSchedule
	Weights   []float64
}

func NewCombinedCooling(schedules []CoolingSchedule, weights []float64) *CombinedCooling {
	if len(schedules) != len(weights) {
		panic("annealing: schedules and weights must have the same length")
	}
	return &CombinedCooling{Schedules: schedules, Weights: weights}
}

func (cc *CombinedCooling) NextTemperature(initialTemp float64, iteration int) float64 {
	var totalTemp, totalWeight float64
	for i, s := range cc.Schedules {
		totalTemp += s.NextTemperature(initialTemp, iteration) * cc.Weights[i]
		totalWeight += cc.Weights[i]
	}
	if totalWeight == 0 {
		return initialTemp
	}
	return totalTemp / totalWeight
}

// AdaptiveMultiplier implements §4.5 step 5's stagnation rule: a plain
// rate multiplier (not a full CoolingSchedule) applied once to the base
// cooling rate when a chain has gone stagnation_window iterations
// without improvement, making subsequent cooling faster.
type AdaptiveMultiplier struct {
	StagnationWindow int
	Factor           float64
	applied          bool
}

// DefaultStagnationWindow is the §4.5 default (no improvement for this
// many iterations triggers one faster-cooling adjustment).
const DefaultStagnationWindow = 500

// DefaultAdaptiveFactor is the §4.5 default cooling-rate multiplier
// applied once on stagnation.
const DefaultAdaptiveFactor = 1.05

// NewAdaptiveMultiplier builds a stagnation detector with the §4.5
// defaults when window or factor are zero.
func NewAdaptiveMultiplier(window int, factor float64) *AdaptiveMultiplier {
	if window <= 0 {
		window = DefaultStagnationWindow
	}
	if factor <= 0 {
		factor = DefaultAdaptiveFactor
	}
	return &AdaptiveMultiplier{StagnationWindow: window, Factor: factor}
}

// CheckAndApply returns the (possibly adjusted) cooling rate. It applies
// the Factor multiplier at most once per chain, the first time the gap
// since the last improvement reaches StagnationWindow.
func (am *AdaptiveMultiplier) CheckAndApply(coolingRate float64, iterationsSinceImprovement int) float64 {
	if am.applied {
		return coolingRate
	}
	if iterationsSinceImprovement >= am.StagnationWindow {
		am.applied = true
		return coolingRate * am.Factor
	}
	return coolingRate
}

// CreateCoolingSchedule builds a CoolingSchedule from a name and rate,
// limited to the parameters the orchestrator actually varies per chain.
func CreateCoolingSchedule(name string, rate float64) CoolingSchedule {
	switch name {
	case "linear":
		return NewLinearCooling(rate)
	case "logarithmic":
		return NewLogarithmicCooling(rate)
	case "geometric":
		return NewGeometricCooling(rate, 1.5, 1000)
	case "exponential", "":
		return NewExponentialCooling(rate)
	default:
		return NewExponentialCooling(rate)
	}
}
