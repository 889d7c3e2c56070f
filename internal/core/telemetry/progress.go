package telemetry

// Event names the lifecycle points the orchestrator reports through a
// ProgressSink.
type Event string

const (
	EventOptimizationStart    Event = "optimization:start"
	EventChainDone            Event = "chain:done"
	EventRefinementDone       Event = "refinement:done"
	EventOptimizationComplete Event = "optimization:complete"
)

// Progress is the payload delivered with each Event.
type Progress struct {
	Event        Event
	ChainIndex   int     // set for EventChainDone, -1 otherwise
	Iteration    int
	BestScore    float64
	AcceptedRate float64
	Message      string
}

// ProgressSink receives optional progress callbacks during optimize().
// A nil sink means the caller does not want progress reporting.
type ProgressSink func(Progress)

// Emit calls sink if non-nil; it is always safe to call with a nil sink.
func Emit(sink ProgressSink, p Progress) {
	if sink != nil {
		sink(p)
	}
}
