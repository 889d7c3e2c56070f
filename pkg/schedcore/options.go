package schedcore

import (
	"runtime"
	"time"

	"github.com/overlook-conference/schedcore/internal/core/telemetry"
)

// Options configures Optimize (§6). DefaultOptions returns every field
// at its default; callers typically start from DefaultOptions() and
// override individual fields.
type Options struct {
	MaxIterations       int
	InitialTemperature  float64
	CoolingRate         float64
	CoolingSchedule     string
	ParallelChains      int
	MaxWorkers          int
	AdaptiveCooling     bool
	EnableCache         bool
	CacheSize           int
	BaseSeed            int64
	PerChainTimeout     time.Duration
	DiversityThreshold  float64
	RefinementPasses    int

	// Logger and Progress are the injected telemetry seams (Design Notes
	// §9: clock/RNG/progress are supplied externally). Both may be left
	// nil; Optimize substitutes a no-op logger and a nil progress sink.
	Logger   telemetry.Logger
	Progress telemetry.ProgressSink
}

// DefaultOptions returns the §6 defaults. BaseSeed defaults to the
// system clock; pass an explicit BaseSeed for deterministic tests.
func DefaultOptions() Options {
	cores := runtime.NumCPU()
	parallel := cores
	if parallel > 8 {
		parallel = 8
	}
	if parallel < 1 {
		parallel = 1
	}
	return Options{
		MaxIterations:      15000,
		InitialTemperature: 100.0,
		CoolingRate:        0.95,
		CoolingSchedule:    "exponential",
		ParallelChains:     parallel,
		MaxWorkers:         cores,
		AdaptiveCooling:    true,
		EnableCache:        true,
		CacheSize:          10000,
		BaseSeed:           time.Now().UnixNano(),
		PerChainTimeout:    300 * time.Second,
		DiversityThreshold: 0.1,
		RefinementPasses:   3,
	}
}
