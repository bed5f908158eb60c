package types

import "time"

// RunState is the pipeline's per-run state machine. A run moves through the
// per-symbol states once per symbol and terminates in Completed or Failed.
type RunState string

const (
	RunStateInitialized       RunState = "initialized"
	RunStateFetching          RunState = "fetching"
	RunStateCleaning          RunState = "cleaning"
	RunStateGeneratingSignals RunState = "generating_signals"
	RunStatePersisting        RunState = "persisting"
	RunStateCompleted         RunState = "completed"
	RunStateFailed            RunState = "failed"
)

// Terminal reports whether the state ends a run.
func (s RunState) Terminal() bool {
	return s == RunStateCompleted || s == RunStateFailed
}

// RunSummary collects the observable counters of one pipeline run. Rejected
// records and skipped symbols are counted, not fatal; only rate-limit,
// configuration and persistence failures fail a run.
type RunSummary struct {
	SymbolsRequested int       `json:"symbolsRequested"`
	SymbolsProcessed int       `json:"symbolsProcessed"`
	SymbolsSkipped   int       `json:"symbolsSkipped"`
	BarsFetched      int       `json:"barsFetched"`
	BarsRejected     int       `json:"barsRejected"`
	BarsWritten      int       `json:"barsWritten"`
	SignalsGenerated int       `json:"signalsGenerated"`
	SignalsWritten   int       `json:"signalsWritten"`
	StartedAt        time.Time `json:"startedAt"`
	CompletedAt      time.Time `json:"completedAt"`
}
