package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLifecycle(t *testing.T) *lifecycle {
	t.Helper()
	lc, err := newLifecycle()
	require.NoError(t, err)
	t.Cleanup(lc.stop)
	return lc
}

func TestLifecycle_StartsPending(t *testing.T) {
	t.Parallel()

	lc := newTestLifecycle(t)
	assert.Equal(t, statePending, lc.state())
}

func TestLifecycle_SatisfiedIsTerminal(t *testing.T) {
	t.Parallel()

	lc := newTestLifecycle(t)
	lc.send(eventSatisfied)
	assert.Equal(t, stateSatisfied, lc.state())

	// Terminal states ignore further events.
	lc.send(eventApply)
	assert.Equal(t, stateSatisfied, lc.state())
}

func TestLifecycle_DeclinePath(t *testing.T) {
	t.Parallel()

	lc := newTestLifecycle(t)
	lc.send(eventConfirm)
	assert.Equal(t, stateConfirming, lc.state())

	lc.send(eventDecline)
	assert.Equal(t, stateDeclined, lc.state())
}

func TestLifecycle_ApprovedApplySucceeds(t *testing.T) {
	t.Parallel()

	lc := newTestLifecycle(t)
	lc.send(eventConfirm)
	lc.send(eventApprove)
	assert.Equal(t, stateApplying, lc.state())

	lc.send(eventSucceed)
	assert.Equal(t, stateDone, lc.state())
}

func TestLifecycle_ApplyFailure(t *testing.T) {
	t.Parallel()

	lc := newTestLifecycle(t)
	lc.send(eventApply)
	lc.send(eventFail)
	assert.Equal(t, stateFailed, lc.state())
}

func TestLifecycle_IgnoresOutOfOrderEvents(t *testing.T) {
	t.Parallel()

	lc := newTestLifecycle(t)

	// Succeed is only valid while applying.
	lc.send(eventSucceed)
	assert.Equal(t, statePending, lc.state())

	// Decline is only valid while confirming.
	lc.send(eventDecline)
	assert.Equal(t, statePending, lc.state())
}
