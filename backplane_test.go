package cyw55500

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soypat/cyw55500/internal/busfake"
	"github.com/soypat/cyw55500/whd"
)

func newTestDevice() (*Device, *busfake.Bus) {
	bus := busfake.New()
	d := NewDevice(bus, DefaultConfig(nil, nil))
	return d, bus
}

func TestSetWindowCaching(t *testing.T) {
	d, bus := newTestDevice()
	err := d.setWindow(0x00012345)
	assert.NoError(t, err)
	// Window 0x00010000: LOW carries bits 8-15 (0x00), MID bits 16-23 (0x01).
	assert.Equal(t, uint8(0x00), bus.Peek(whd.FuncBackplane, whd.SBAddrLow))
	assert.Equal(t, uint8(0x01), bus.Peek(whd.FuncBackplane, whd.SBAddrMid))
	assert.Equal(t, uint8(0x00), bus.Peek(whd.FuncBackplane, whd.SBAddrHigh))

	// Re-poking a register within the same window must not cause another
	// window write: corrupt SBAddrLow directly and confirm setWindow skips
	// rewriting it because the cached window still matches.
	bus.Poke(whd.FuncBackplane, whd.SBAddrLow, 0xFF)
	err = d.setWindow(0x00013000)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xFF), bus.Peek(whd.FuncBackplane, whd.SBAddrLow))
}

func TestBpReadWrite32RoundTrip(t *testing.T) {
	d, _ := newTestDevice()
	err := d.bpWrite32(0x00018004, 0xDEADBEEF)
	assert.NoError(t, err)
	v, err := d.bpRead32(0x00018004)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
}

// TestBpBlockTransferWindowChunking: a transfer spanning a 32KiB window
// boundary must split into two bus transactions at the boundary, and the
// data must still round-trip intact.
func TestBpBlockTransferWindowChunking(t *testing.T) {
	d, bus := newTestDevice()
	base := uint32(whd.SBOffsetLimit - 4)
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i + 1)
	}
	err := d.bpWriteBlock(base, data)
	assert.NoError(t, err)

	out := make([]byte, 16)
	err = d.bpReadBlock(base, out)
	assert.NoError(t, err)
	assert.Equal(t, data, out)

	// The write must have touched both the tail of the first window and the
	// head of the next: the first 4 bytes land at the top of window 0
	// (offset 0x7FFC|0x8000), the remaining 12 at the start of window 0x8000
	// (offset 0x0000|0x8000), and the cached window ends on the second page.
	assert.True(t, d.windowValid)
	assert.Equal(t, uint32(whd.SBOffsetLimit), d.windowAddr)
	assert.Equal(t, data[0], bus.Peek(whd.FuncBackplane, 0xFFFC))
	assert.Equal(t, data[4], bus.Peek(whd.FuncBackplane, whd.SBAccess32bFlag))
}

type testBusError struct{}

func (testBusError) Error() string { return "busfake: injected failure" }

func TestBpReadWriteIOError(t *testing.T) {
	d, bus := newTestDevice()
	bus.FailNext = testBusError{}
	_, err := d.bpRead32(0x1000)
	assert.ErrorIs(t, err, ErrIO)
}
