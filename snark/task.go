package snark

import (
	"context"
	"sync"
)

// Stage is the lifecycle state of a proving task.
type Stage int

const (
	// StageChecking validates the prover inputs before any work is spent.
	StageChecking Stage = iota
	// StageProving covers the external prover invocation.
	StageProving
	// StageComplete means the output blobs parsed cleanly.
	StageComplete
	// StageFailed is terminal; Result reports the cause.
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageChecking:
		return "checking"
	case StageProving:
		return "proving"
	case StageComplete:
		return "complete"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is one progress notification from a running task. Err is set only
// with StageFailed.
type Event struct {
	Stage Stage
	Err   error
}

// Result is the parsed output of a completed task.
type Result struct {
	Proof  *Proof
	Public *PublicInputs
}

// Prover runs the external proving binary. Implementations exec the CLI with
// in.HexArgs() and return the raw proof and public-input blobs it wrote.
// Prove must honor ctx cancellation.
type Prover interface {
	Prove(ctx context.Context, in *ProverInputs) (proofBlob, publicBlob []byte, err error)
}

// Task drives one proof generation through its stages. Progress is observed
// on Events; the channel is buffered and sends never block, so a slow
// observer cannot stall the prover. Tasks are independent: two tasks for two
// assets run concurrently without coordination, and nothing here orders
// same-asset submissions.
type Task struct {
	prover Prover
	inputs *ProverInputs
	events chan Event

	mu     sync.Mutex
	stage  Stage
	result *Result
	err    error
}

// NewTask creates a task over the given prover and inputs. Run starts it.
func NewTask(prover Prover, in *ProverInputs) *Task {
	return &Task{
		prover: prover,
		inputs: in,
		events: make(chan Event, 8),
		stage:  StageChecking,
	}
}

// Events returns the progress channel. It is closed once the task reaches a
// terminal stage.
func (t *Task) Events() <-chan Event { return t.events }

// Stage returns the current stage.
func (t *Task) Stage() Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stage
}

// Result returns the parsed prover output after StageComplete, or the
// failure cause after StageFailed.
func (t *Task) Result() (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.err
}

func (t *Task) emit(stage Stage, err error) {
	t.mu.Lock()
	t.stage = stage
	t.err = err
	t.mu.Unlock()
	select {
	case t.events <- Event{Stage: stage, Err: err}:
	default:
	}
}

func (t *Task) fail(err error) error {
	t.mu.Lock()
	t.result = nil
	t.mu.Unlock()
	t.emit(StageFailed, err)
	close(t.events)
	return err
}

// Run executes the task to a terminal stage. It must be called exactly once.
// Cancelling ctx surfaces as StageFailed with the context's error; a
// cancelled or failed task retains no partial result.
func (t *Task) Run(ctx context.Context) error {
	t.emit(StageChecking, nil)
	if err := t.check(); err != nil {
		return t.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return t.fail(err)
	}

	t.emit(StageProving, nil)
	proofBlob, publicBlob, err := t.prover.Prove(ctx, t.inputs)
	if err != nil {
		return t.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return t.fail(err)
	}

	proof, err := ParseProof(proofBlob)
	if err != nil {
		return t.fail(err)
	}
	public, err := ParsePublicInputs(publicBlob)
	if err != nil {
		return t.fail(err)
	}

	t.mu.Lock()
	t.result = &Result{Proof: proof, Public: public}
	t.mu.Unlock()
	t.emit(StageComplete, nil)
	close(t.events)
	return nil
}

// check re-derives the public points from the secrets and confirms the
// inputs are internally consistent before the prover is invoked.
func (t *Task) check() error {
	in := t.inputs
	if in == nil || in.A == nil || in.R == nil || in.V == nil || in.W0 == nil || in.W1 == nil {
		return ErrMissingInputs
	}
	rebuilt, err := BuildInputs(in.A, in.R, in.V)
	if err != nil {
		return err
	}
	if !rebuilt.W0.Equal(in.W0) || !rebuilt.W1.Equal(in.W1) {
		return ErrInputMismatch
	}
	return nil
}
