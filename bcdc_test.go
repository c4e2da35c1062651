package cyw55500

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soypat/cyw55500/whd"
)

// bcdcResponsePayload builds the bytes a chip's BCDC reply carries on the
// SDPCM control channel: a 16-byte header (cmd is not echoed back, reqid
// matching the request, the given status) followed by data.
func bcdcResponsePayload(reqID uint16, status int32, data []byte) []byte {
	buf := make([]byte, bcdcHeaderSize+len(data))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(data)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(reqID)<<whd.BCDCReqIDShift)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(status))
	copy(buf[bcdcHeaderSize:], data)
	return buf
}

// writeFakeIoctlOKResponses enqueues n successive zero-status, empty-payload
// BCDC responses with reqid 1..n, matching the reqid sequence a fresh
// Device assigns to its first n ioctl calls.
func writeFakeIoctlOKResponses(bus interface {
	WriteBulk(function uint8, addr uint32, buf []byte, addrIncrementing bool) error
}, n int) {
	for i := 1; i <= n; i++ {
		writeFakeFrame(bus, whd.SDPCMControlChannel, 0, 0, bcdcResponsePayload(uint16(i), 0, nil))
	}
}

// TestIoctlWireRoundTrip exercises the BCDC header encode/decode symmetry.
// The fake bus runs no firmware, so the response a real chip would send on
// the control channel is injected directly; ioctl's reqid-matching and
// status/payload decoding are what's under test.
func TestIoctlWireRoundTrip(t *testing.T) {
	d, bus := newTestDevice()
	data := []byte{0x11, 0x22, 0x33, 0x44}
	// A freshly constructed Device assigns reqid 1 to its first ioctl call.
	writeFakeFrame(bus, whd.SDPCMControlChannel, 0, 0, bcdcResponsePayload(1, 0, data))

	resp, err := d.ioctl(whd.WLCSetSSID, true, data)
	assert.NoError(t, err)
	assert.Equal(t, data, resp)
}

func TestIoctlOutOfMemory(t *testing.T) {
	d, _ := newTestDevice()
	big := make([]byte, len(d.txBuf))
	_, err := d.ioctl(whd.WLCSetVar, true, big)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestIoctlPropagatesIOError(t *testing.T) {
	d, bus := newTestDevice()
	bus.FailNext = testBusError{}
	_, err := d.ioctl(whd.WLCGetVersion, false, nil)
	assert.ErrorIs(t, err, ErrIO)
}

func TestIovarBuildsNameValuePayload(t *testing.T) {
	d, bus := newTestDevice()
	name := "bssid"
	echoed := make([]byte, len(name)+1+6)
	copy(echoed, name)
	writeFakeFrame(bus, whd.SDPCMControlChannel, 0, 0, bcdcResponsePayload(1, 0, echoed))

	resp, err := d.iovar(name, false, make([]byte, 6))
	assert.NoError(t, err)
	// The injected response echoes name + NUL + value and is returned as-is.
	assert.Equal(t, "bssid", string(resp[:5]))
	assert.Equal(t, byte(0), resp[5])

	// The request iovar sent (function 2's incrementing-address store, where
	// sendFrame wrote it) is WLC_GET_VAR carrying name + NUL + value.
	var frame [sdpcmHeaderSize + bcdcHeaderSize + 5 + 1 + 6]byte
	for i := range frame {
		frame[i] = bus.Peek(whd.FuncWLAN, uint32(i))
	}
	req := frame[sdpcmHeaderSize:]
	assert.Equal(t, uint32(whd.WLCGetVar), binary.LittleEndian.Uint32(req[0:4]))
	assert.Equal(t, uint32(len(name)+1+6), binary.LittleEndian.Uint32(req[4:8]))
	assert.Equal(t, "bssid", string(req[bcdcHeaderSize:bcdcHeaderSize+5]))
	assert.Equal(t, byte(0), req[bcdcHeaderSize+5])
}

func TestIoctlErrorIsMatching(t *testing.T) {
	err := error(&IoctlError{Status: -3})
	assert.ErrorIs(t, err, ErrIoctl)
	assert.Contains(t, err.Error(), "-3")
}
