package cyw55500

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soypat/cyw55500/whd"
)

func TestUpDownRequireState(t *testing.T) {
	d, bus := newTestDevice()
	assert.ErrorIs(t, d.Up(), ErrNotReady)

	d.state = StateFwReady
	writeFakeIoctlOKResponses(bus, 2) // WLC_UP, then WLC_DOWN
	assert.NoError(t, d.Up())
	assert.Equal(t, StateUp, d.State())

	assert.NoError(t, d.Down())
	assert.Equal(t, StateFwReady, d.State())
}

// TestUpRejectsWhenAlreadyUp: the lifecycle table requires Up to start from
// exactly FwReady, not FwReady-or-later, so calling it again while already
// Up must not re-run WLC_UP against a live chip.
func TestUpRejectsWhenAlreadyUp(t *testing.T) {
	d, _ := newTestDevice()
	d.state = StateUp
	assert.ErrorIs(t, d.Up(), ErrNotReady)
}

func TestConnectRejectsOversizeSSID(t *testing.T) {
	d, _ := newTestDevice()
	d.state = StateUp
	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	err := d.Connect(string(long), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConnectRequiresUp(t *testing.T) {
	d, _ := newTestDevice()
	err := d.Connect("myssid", "mypassword")
	assert.ErrorIs(t, err, ErrNotReady)
}

// TestConnectSequence: infra, auth, wpa_auth, PMK, WSEC, SSID. The last
// ioctl Connect issues is SET_SSID; confirm its frame is what ends up on the
// wire by reading back the BCDC header's cmd field from function 2's
// incrementing-address store, where sendFrame wrote it.
func TestConnectSequence(t *testing.T) {
	d, bus := newTestDevice()
	d.state = StateUp
	// SET_INFRA, SET_AUTH, wpa_auth iovar (SET_VAR), SET_WSEC_PMK, SET_WSEC,
	// SET_SSID: six control-channel ioctls, reqid 1..6.
	writeFakeIoctlOKResponses(bus, 6)
	err := d.Connect("myssid", "mypassword")
	assert.NoError(t, err)

	var frame [sdpcmHeaderSize + bcdcHeaderSize]byte
	for i := range frame {
		frame[i] = bus.Peek(whd.FuncWLAN, uint32(i))
	}
	cmd := binary.LittleEndian.Uint32(frame[sdpcmHeaderSize : sdpcmHeaderSize+4])
	assert.Equal(t, uint32(whd.WLCSetSSID), cmd)
}

func TestIsConnectedFalseWhenBSSIDZero(t *testing.T) {
	d, bus := newTestDevice()
	d.state = StateUp
	writeFakeFrame(bus, whd.SDPCMControlChannel, 0, 0, bcdcResponsePayload(1, 0, make([]byte, 6)))
	ok, err := d.IsConnected()
	assert.NoError(t, err)
	assert.False(t, ok)
}
