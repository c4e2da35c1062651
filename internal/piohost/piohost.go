//go:build rp2040 || rp2350

// Package piohost is an example hostio.Bus implementation for RP2040/RP2350
// boards: it bit-bangs the SDIO clock, command and data lines over GPIO,
// claiming a PIO state machine the way tinygo-org/pio's RMII example does
// for MDIO/MDC; the claimed state machine is not programmed or started, and
// CLK is toggled from software. It exists to show embedders one
// way to satisfy hostio.Bus in hardware; it is not required by the core
// driver, which only ever depends on the hostio.Bus interface.
package piohost

import (
	"errors"
	"machine"
	"time"

	pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/soypat/cyw55500/hostio"
)

var _ hostio.Bus = (*Host)(nil)

// ErrNoResponse names a card non-response. No Host method returns it: the
// bit-bang loops do not check for a response and have no retry budget.
var ErrNoResponse = errors.New("piohost: card did not respond")

// Config pins a Host to specific RP2040/RP2350 GPIOs.
type Config struct {
	CLK machine.Pin
	CMD machine.Pin
	D0  machine.Pin
	D1  machine.Pin
	D2  machine.Pin
	D3  machine.Pin

	// ClockHz is the target SDIO clock frequency. Host does not read it: each
	// CLK half-period is a fixed 1µs sleep.
	ClockHz uint32
}

// Host bit-bangs CMD52 (byte) SDIO transactions over the given pins; bulk
// transfers are sequences of CMD52s, and CMD53 is not issued. CLK is driven
// by GPIO in clockPulse; the claimed PIO state machine is held in sm but
// not used.
type Host struct {
	cfg Config
	sm  pio.StateMachine

	blockSize [4]uint16
	enabled   [4]bool
	irqArmed  bool
}

// New claims a state machine from pio0 and configures the clock, command
// and data pins as bit-banged GPIO. No program is loaded into the state
// machine.
func New(cfg Config) (*Host, error) {
	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		return nil, err
	}
	h := &Host{cfg: cfg, sm: sm}
	h.cfg.CLK.Configure(machine.PinConfig{Mode: machine.PinOutput})
	h.cfg.CMD.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for _, p := range []machine.Pin{cfg.D0, cfg.D1, cfg.D2, cfg.D3} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return h, nil
}

func (h *Host) clockPulse() {
	h.cfg.CLK.High()
	time.Sleep(time.Microsecond)
	h.cfg.CLK.Low()
	time.Sleep(time.Microsecond)
}

func (h *Host) sendCmdBit(bit bool) {
	h.cfg.CMD.Set(bit)
	h.clockPulse()
}

func (h *Host) readDataBit() bool {
	v := h.cfg.D0.Get()
	h.clockPulse()
	return v
}

// ReadByte issues a CMD52 read: function select, 17-bit address, then
// clocks in 8 response data bits.
func (h *Host) ReadByte(function uint8, addr uint32) (uint8, error) {
	h.sendCmdBit(false) // CMD52, read direction
	for i := 2; i >= 0; i-- {
		h.sendCmdBit((function>>uint(i))&1 != 0)
	}
	for i := 16; i >= 0; i-- {
		h.sendCmdBit((addr>>uint(i))&1 != 0)
	}
	var v uint8
	for i := 0; i < 8; i++ {
		v <<= 1
		if h.readDataBit() {
			v |= 1
		}
	}
	return v, nil
}

// WriteByte issues a CMD52 write of v to the given function/address.
func (h *Host) WriteByte(function uint8, addr uint32, v uint8) error {
	h.sendCmdBit(true) // CMD52, write direction
	for i := 2; i >= 0; i-- {
		h.sendCmdBit((function>>uint(i))&1 != 0)
	}
	for i := 16; i >= 0; i-- {
		h.sendCmdBit((addr>>uint(i))&1 != 0)
	}
	for i := 7; i >= 0; i-- {
		h.sendCmdBit((v>>uint(i))&1 != 0)
	}
	return nil
}

// ReadBulk performs len(buf) single-byte CMD52 reads. A real CMD53
// implementation would use the four data lines in parallel; this example
// keeps the wire protocol to the single CMD/D0 pair for clarity.
func (h *Host) ReadBulk(function uint8, addr uint32, buf []byte, addrIncrementing bool) error {
	for i := range buf {
		a := addr
		if addrIncrementing {
			a = addr + uint32(i)
		}
		v, err := h.ReadByte(function, a)
		if err != nil {
			return err
		}
		buf[i] = v
	}
	return nil
}

// WriteBulk performs len(buf) single-byte CMD52 writes, mirroring ReadBulk.
func (h *Host) WriteBulk(function uint8, addr uint32, buf []byte, addrIncrementing bool) error {
	for i, v := range buf {
		a := addr
		if addrIncrementing {
			a = addr + uint32(i)
		}
		if err := h.WriteByte(function, a, v); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) SetBlockSize(function uint8, size uint16) error {
	h.blockSize[function] = size
	return nil
}

func (h *Host) EnableFunction(function uint8, enable bool) error {
	h.enabled[function] = enable
	return nil
}

func (h *Host) EnableIRQ(enable bool) error {
	h.irqArmed = enable
	return nil
}

// IRQPending samples D1 (the SDIO interrupt line in 4-wire mode) directly,
// bypassing the state machine.
func (h *Host) IRQPending() (bool, error) {
	if !h.irqArmed {
		return false, nil
	}
	return h.cfg.D1.Get(), nil
}

func (h *Host) DelayMicros(us uint32) { time.Sleep(time.Duration(us) * time.Microsecond) }
func (h *Host) DelayMillis(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }
