// Package cyw55500 is a host-side driver for the Cypress/Infineon CYW55500
// WiFi module over a four-wire SDIO bus. It brings the chip out of reset,
// downloads firmware and NVRAM, negotiates the SDPCM/BCDC protocol stack,
// and exposes station-mode scan/connect/disassociate/RSSI operations.
//
// The driver is single-threaded and cooperative: every blocking operation is
// a bounded polling loop built from the host SDIO capability's delay
// primitives (hostio.Bus), and there is never more than one SDPCM control
// transaction outstanding. Embedders that need concurrency schedule Poll
// between other work on the same goroutine/thread.
package cyw55500

import (
	"log/slog"
	"net"
	"time"

	"github.com/soypat/cyw55500/hostio"
	"github.com/soypat/cyw55500/whd"
)

// bufSize is the size of each of the two fixed TX/RX buffers held in the
// driver context. Both are word-aligned for the 4-byte-access backplane
// path.
const bufSize = 2048

// Config carries the values an embedding application supplies to Init/
// LoadFirmware: firmware and NVRAM images, an optional MAC override, and
// the tunable poll budgets, each an approximate duration ("~100 ms", "~2 s",
// ...).
type Config struct {
	// Firmware is the chip firmware image. LoadFirmware streams the image
	// passed as its argument and does not read this field.
	Firmware []byte
	// NVRAM is the calibration/board-config blob, downloaded to the fixed
	// whd.NVRAMDownloadAddr. LoadFirmware uses the NVRAM passed as its
	// argument (nil skips the download) and does not read this field.
	NVRAM []byte
	// MAC is a MAC address override. NewDevice stores it on the Device; no
	// call writes it to the chip, so the factory MAC stays in effect.
	MAC net.HardwareAddr

	// Logger receives structured trace/debug/error output. A nil Logger
	// disables all logging.
	Logger *slog.Logger

	// Poll budgets. Zero values fall back to the defaults in DefaultConfig.
	ALPClockBudget    time.Duration // ALP clock negotiation: ~100ms.
	HTClockBudget     time.Duration // HT clock negotiation: ~2s.
	FWReadyBudget     time.Duration // firmware-ready mailbox poll: ~1s.
	FunctionReadyBudget time.Duration
	BCDCBudget        time.Duration // BCDC request/response round trip: ~100ms.
	ScanBudget        time.Duration // escan collection window: ~10s.
	ConnectBudget     time.Duration // association wait: ~10s; Connect does not read it.
	PollStep          time.Duration // sleep between poll iterations.
}

// DefaultConfig returns a Config with the firmware/NVRAM images attached and
// every poll budget set to its named default.
func DefaultConfig(firmware, nvram []byte) Config {
	return Config{
		Firmware:            firmware,
		NVRAM:               nvram,
		ALPClockBudget:      100 * time.Millisecond,
		HTClockBudget:       2 * time.Second,
		FWReadyBudget:       time.Second,
		FunctionReadyBudget: 100 * time.Millisecond,
		BCDCBudget:          100 * time.Millisecond,
		ScanBudget:          10 * time.Second,
		ConnectBudget:       10 * time.Second,
		PollStep:            time.Millisecond,
	}
}

func (c *Config) withDefaults() Config {
	out := *c
	def := DefaultConfig(nil, nil)
	if out.ALPClockBudget == 0 {
		out.ALPClockBudget = def.ALPClockBudget
	}
	if out.HTClockBudget == 0 {
		out.HTClockBudget = def.HTClockBudget
	}
	if out.FWReadyBudget == 0 {
		out.FWReadyBudget = def.FWReadyBudget
	}
	if out.FunctionReadyBudget == 0 {
		out.FunctionReadyBudget = def.FunctionReadyBudget
	}
	if out.BCDCBudget == 0 {
		out.BCDCBudget = def.BCDCBudget
	}
	if out.ScanBudget == 0 {
		out.ScanBudget = def.ScanBudget
	}
	if out.ConnectBudget == 0 {
		out.ConnectBudget = def.ConnectBudget
	}
	if out.PollStep == 0 {
		out.PollStep = def.PollStep
	}
	return out
}

// ChipIdentity is the immutable-once-populated chip identity.
type ChipIdentity struct {
	ID      uint16
	Rev     uint8
	RAMBase uint32
	RAMSize uint32
}

// sdpcmState tracks the SDPCM framer's sequence numbers and flow control.
type sdpcmState struct {
	txSeq    uint8
	rxSeq    uint8
	txMax    uint8
	flowCtrl uint8
}

// Device is the driver context: one value per chip, created by Init and
// mutated only by the core's own entry points. Callers should treat it as a
// handle; there is no global/package-level state.
type Device struct {
	bus    hostio.Bus
	log    *slog.Logger
	config Config

	state State
	chip  ChipIdentity

	windowAddr  uint32
	windowValid bool

	sdpcm sdpcmState
	reqID uint16

	txBuf [bufSize]byte
	rxBuf [bufSize]byte

	mac net.HardwareAddr
}

// NewDevice constructs a Device bound to the given host SDIO capability. The
// returned Device starts in StateOff; call Init to bring the chip up.
func NewDevice(bus hostio.Bus, config Config) *Device {
	d := &Device{
		bus:    bus,
		log:    config.Logger,
		config: config.withDefaults(),
		state:  StateOff,
		mac:    config.MAC,
	}
	return d
}

// Deinit tears the driver down unconditionally and returns it to StateOff,
// regardless of starting state.
// Callers recovering from StateError must call Deinit then Init again.
func (d *Device) Deinit() error {
	if d.state == StateOff {
		return nil
	}
	d.trace("deinit:start", slog.String("from", d.state.String()))
	_ = d.bus.WriteByte(whd.FuncBus, whd.CCCRIntEnable, 0)
	_ = d.bus.WriteByte(whd.FuncBus, whd.CCCRBRCMSepInt, 0)
	_ = d.bus.WriteByte(whd.FuncBus, whd.CCCRBRCMCardCtl, whd.BRCMCardCtrlWLANReset)
	_ = d.bus.EnableFunction(whd.FuncWLAN, false)
	_ = d.bus.EnableFunction(whd.FuncBackplane, false)
	d.windowValid = false
	d.sdpcm = sdpcmState{}
	d.reqID = 0
	d.setState(StateOff)
	return nil
}
