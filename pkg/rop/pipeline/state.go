package pipeline

import (
	"github.com/felixgeelhaar/statekit"
)

// RunState is the lifecycle state of a single Execute call.
type RunState string

const (
	StateRunning   RunState = "running"
	StateSucceeded RunState = "succeeded"
	StateFailed    RunState = "failed"
	StateFatal     RunState = "fatal"
)

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeStepSucceeded     Outcome = "step_succeeded"
	OutcomeSucceeded         Outcome = "succeeded"
	OutcomeFailedDirect      Outcome = "failed_direct"
	OutcomeFailedPlaceholder Outcome = "failed_placeholder"
	OutcomeFatal             Outcome = "fatal"
)

// Event types for the run state machine.
const (
	EventStepSucceeded     = "STEP_SUCCEEDED"
	EventCompleted         = "COMPLETED"
	EventFailedDirect      = "FAILED_DIRECT"
	EventFailedPlaceholder = "FAILED_PLACEHOLDER"
	EventFatal             = "FATAL"
	EventReset             = "RESET"
)

// Transition is reported to observers for every move of a run. Index is the
// step the move concerns: the step that succeeded or failed, or the step
// count when the run completed.
type Transition struct {
	From    RunState
	To      RunState
	Step    string
	Index   int
	Outcome Outcome
}

type Observer func(Transition)

type runContext struct {
	Steps int
}

// runTracker drives one statekit interpreter per run. A nil tracker is valid
// and records nothing; sub-pipelines run that way.
type runTracker struct {
	interp   *statekit.Interpreter[runContext]
	observer Observer
}

func newRunTracker(steps int, observer Observer) (*runTracker, error) {
	machine, err := statekit.NewMachine[runContext]("pipeline-run").
		WithInitial("running").
		WithContext(runContext{Steps: steps}).
		State("running").
		On(EventStepSucceeded).Target("running").
		On(EventCompleted).Target("succeeded").
		On(EventFailedDirect).Target("failed").
		On(EventFailedPlaceholder).Target("failed").
		On(EventFatal).Target("fatal").Done().
		State("succeeded").
		On(EventReset).Target("running").Done().
		State("failed").
		On(EventReset).Target("running").Done().
		State("fatal").
		On(EventReset).Target("running").Done().
		Build()
	if err != nil {
		return nil, err
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &runTracker{interp: interp, observer: observer}, nil
}

func (t *runTracker) current() RunState {
	if t == nil {
		return StateRunning
	}
	return RunState(t.interp.State().Value)
}

func (t *runTracker) send(event string, outcome Outcome, index int, stepName string) {
	if t == nil {
		return
	}
	from := t.current()
	t.interp.Send(statekit.Event{Type: statekit.EventType(event)})
	if t.observer != nil {
		t.observer(Transition{
			From:    from,
			To:      t.current(),
			Step:    stepName,
			Index:   index,
			Outcome: outcome,
		})
	}
}

func (t *runTracker) advance(index int, stepName string) {
	t.send(EventStepSucceeded, OutcomeStepSucceeded, index, stepName)
}

func (t *runTracker) settle(outcome Outcome, index int, stepName string) {
	switch outcome {
	case OutcomeSucceeded:
		t.send(EventCompleted, outcome, index, stepName)
	case OutcomeFailedDirect:
		t.send(EventFailedDirect, outcome, index, stepName)
	case OutcomeFailedPlaceholder:
		t.send(EventFailedPlaceholder, outcome, index, stepName)
	default:
		t.send(EventFatal, OutcomeFatal, index, stepName)
	}
}

func (t *runTracker) stop() {
	if t == nil {
		return
	}
	t.interp.Stop()
}
