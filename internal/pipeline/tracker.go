package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pal-3/AlgorithmTradingBacktester/internal/logger"
	"github.com/pal-3/AlgorithmTradingBacktester/internal/types"
)

// Snapshot is the externally visible picture of one run.
type Snapshot struct {
	RunID      string           `json:"runId"`
	State      types.RunState   `json:"state"`
	Symbols    []string         `json:"symbols"`
	OutputSize types.OutputSize `json:"outputSize"`
	Summary    types.RunSummary `json:"summary"`
	Error      string           `json:"error,omitempty"`
	StartedAt  time.Time        `json:"startTime"`
}

// Tracker registers pipeline runs under UUID handles so the trigger
// surfaces can start a run and poll it later. Runs execute on one
// background goroutine each; there is no cancellation primitive.
type Tracker struct {
	mu     sync.RWMutex
	runs   map[string]*trackedRun
	logger *logger.Logger
}

type trackedRun struct {
	mu       sync.Mutex
	snapshot Snapshot
}

// NewTracker creates an empty run registry.
func NewTracker(log *logger.Logger) *Tracker {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Tracker{
		runs:   map[string]*trackedRun{},
		logger: log,
	}
}

// Start launches p.Run on a background goroutine and returns the run
// handle immediately. The run outlives the caller's context: cancellation
// of ctx does not stop it.
func (t *Tracker) Start(ctx context.Context, p *Pipeline, symbols []string, size types.OutputSize) string {
	record := &trackedRun{
		snapshot: Snapshot{
			RunID:      uuid.New().String(),
			State:      types.RunStateInitialized,
			Symbols:    symbols,
			OutputSize: size,
			StartedAt:  time.Now().UTC(),
		},
	}

	t.mu.Lock()
	t.runs[record.snapshot.RunID] = record
	t.mu.Unlock()

	t.logger.Info("run registered",
		zap.String("run_id", record.snapshot.RunID),
		zap.Strings("symbols", symbols),
	)

	detached := context.WithoutCancel(ctx)
	go func() {
		summary, err := p.Run(detached, symbols, size, record.setState)
		record.finish(summary, err)
	}()

	return record.snapshot.RunID
}

// Get returns the current snapshot of a run.
func (t *Tracker) Get(runID string) (Snapshot, bool) {
	t.mu.RLock()
	record, ok := t.runs[runID]
	t.mu.RUnlock()
	if !ok {
		return Snapshot{}, false
	}

	record.mu.Lock()
	defer record.mu.Unlock()

	return record.snapshot, true
}

func (r *trackedRun) setState(state types.RunState) {
	// finish records terminal states together with the final summary, so a
	// reader never sees a terminal state with empty counters.
	if state.Terminal() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.State = state
}

func (r *trackedRun) finish(summary types.RunSummary, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Summary = summary
	if err != nil {
		r.snapshot.State = types.RunStateFailed
		r.snapshot.Error = err.Error()

		return
	}
	r.snapshot.State = types.RunStateCompleted
}
