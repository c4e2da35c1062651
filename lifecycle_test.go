package cyw55500

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateAtLeast(t *testing.T) {
	assert.True(t, StateUp.atLeast(StateFwReady))
	assert.False(t, StateInit.atLeast(StateUp))
	assert.True(t, StateOff.atLeast(StateOff))
}

// TestErrorStateIsTerminal: once in StateError, atLeast never succeeds, so
// every gated call returns ErrNotReady regardless of how far the driver
// previously progressed.
func TestErrorStateIsTerminal(t *testing.T) {
	assert.False(t, StateError.atLeast(StateOff))
	assert.False(t, StateError.atLeast(StateUp))
}

// TestNotReadyIssuesNoIO confirms a call made before its minimum state is
// reached returns ErrNotReady without any bus transaction.
func TestNotReadyIssuesNoIO(t *testing.T) {
	d, bus := newTestDevice()
	err := d.Up()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, bus.Delays)
}

func TestDeinitFromOffIsNoop(t *testing.T) {
	d, _ := newTestDevice()
	assert.NoError(t, d.Deinit())
	assert.Equal(t, StateOff, d.State())
}

func TestDeinitResetsFramerState(t *testing.T) {
	d, _ := newTestDevice()
	d.state = StateUp
	d.sdpcm.txSeq = 5
	d.reqID = 9
	d.windowValid = true
	assert.NoError(t, d.Deinit())
	assert.Equal(t, StateOff, d.State())
	assert.Equal(t, sdpcmState{}, d.sdpcm)
	assert.Equal(t, uint16(0), d.reqID)
	assert.False(t, d.windowValid)
}
