package execution

import (
	"github.com/felixgeelhaar/statekit"
)

// Per-step lifecycle states. Every step ends in exactly one of the
// terminal states; there are no retries.
const (
	statePending    = "pending"
	stateSatisfied  = "satisfied"
	stateConfirming = "confirming"
	stateApplying   = "applying"
	stateDeclined   = "declined"
	stateDone       = "done"
	stateFailed     = "failed"
)

// Lifecycle events.
const (
	eventSatisfied = "SATISFIED"
	eventConfirm   = "CONFIRM"
	eventApprove   = "APPROVE"
	eventDecline   = "DECLINE"
	eventApply     = "APPLY"
	eventSucceed   = "SUCCEED"
	eventFail      = "FAIL"
)

// stepMachineContext is the (empty) statekit context type; the runner
// keeps all step data in StepResult, the machine only guards transitions.
type stepMachineContext struct{}

// lifecycle wraps a statekit interpreter for one step execution.
type lifecycle struct {
	interp *statekit.Interpreter[stepMachineContext]
}

// newLifecycle builds the per-step state machine:
// pending → {satisfied | confirming → {declined | applying} | applying},
// applying → {done | failed}.
func newLifecycle() (*lifecycle, error) {
	machine, err := statekit.NewMachine[stepMachineContext]("orbitsweep-step").
		WithInitial(statePending).
		WithContext(stepMachineContext{}).
		State(statePending).
		On(eventSatisfied).Target(stateSatisfied).
		On(eventConfirm).Target(stateConfirming).
		On(eventApply).Target(stateApplying).Done().
		State(stateConfirming).
		On(eventApprove).Target(stateApplying).
		On(eventDecline).Target(stateDeclined).Done().
		State(stateApplying).
		On(eventSucceed).Target(stateDone).
		On(eventFail).Target(stateFailed).Done().
		State(stateSatisfied).Done().
		State(stateDeclined).Done().
		State(stateDone).Done().
		State(stateFailed).Done().
		Build()
	if err != nil {
		return nil, err
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &lifecycle{interp: interp}, nil
}

// send fires a lifecycle event.
func (l *lifecycle) send(event string) {
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

// state returns the current state value.
func (l *lifecycle) state() string {
	return string(l.interp.State().Value)
}

// stop tears down the interpreter.
func (l *lifecycle) stop() {
	l.interp.Stop()
}
