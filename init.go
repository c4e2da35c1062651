package cyw55500

import (
	"log/slog"
	"time"

	"github.com/soypat/cyw55500/whd"
)

// Init brings up the SDIO link: enables function 1, waits for it to report
// ready, sets both functions' block sizes, negotiates the ALP clock,
// identifies the chip, enables function 2 and its watermark, and arms the
// card interrupt. On success the driver reaches StateInit, from which
// LoadFirmware can run.
func (d *Device) Init() error {
	if d.state != StateOff {
		return ErrNotReady
	}
	if err := d.initLocked(); err != nil {
		d.logerr("Init:failed", slog.String("err", err.Error()))
		d.setState(StateError)
		return err
	}
	d.setState(StateInit)
	return nil
}

func (d *Device) initLocked() error {
	cardCap, err := d.bus.ReadByte(whd.FuncBus, whd.CCCRBRCMCardCap)
	if err != nil {
		return ErrIO
	}
	d.trace("init:cardcap", slog.Uint64("cardcap", uint64(cardCap)))
	// Optional vendor board-reset pulse: assert then release WLAN reset on
	// the BRCM CARDCTRL register before function 1 is brought up.
	if err := d.bus.WriteByte(whd.FuncBus, whd.CCCRBRCMCardCtl, whd.BRCMCardCtrlWLANReset); err != nil {
		return ErrIO
	}
	if err := d.bus.WriteByte(whd.FuncBus, whd.CCCRBRCMCardCtl, 0); err != nil {
		return ErrIO
	}

	if err := d.bus.EnableFunction(whd.FuncBackplane, true); err != nil {
		return ErrIO
	}
	if err := d.pollFunctionReady(whd.FuncBackplane); err != nil {
		return err
	}
	if err := d.bus.SetBlockSize(whd.FuncBackplane, whd.Func1BlockSize); err != nil {
		return ErrIO
	}

	if err := d.requestALPClock(); err != nil {
		return err
	}
	if err := d.detectChip(); err != nil {
		return err
	}

	if err := d.bus.EnableFunction(whd.FuncWLAN, true); err != nil {
		return ErrIO
	}
	if err := d.pollFunctionReady(whd.FuncWLAN); err != nil {
		return err
	}
	if err := d.bus.SetBlockSize(whd.FuncWLAN, whd.Func2BlockSize); err != nil {
		return ErrIO
	}
	if err := d.bus.WriteByte(whd.FuncBackplane, whd.Watermark, whd.F2Watermark); err != nil {
		return ErrIO
	}

	if err := d.bus.WriteByte(whd.FuncBus, whd.CCCRIntEnable, whd.IntEnFunc0|whd.IntEnFunc1|whd.IntEnFunc2); err != nil {
		return ErrIO
	}
	if err := d.bus.EnableIRQ(true); err != nil {
		return ErrIO
	}
	return nil
}

// pollFunctionReady polls CCCRIOReady for the given function's ready bit,
// bounded by config.FunctionReadyBudget.
func (d *Device) pollFunctionReady(function uint8) error {
	var want uint8
	switch function {
	case whd.FuncBackplane:
		want = whd.IOFunc1Enable
	case whd.FuncWLAN:
		want = whd.IOFunc2Enable
	default:
		return ErrInvalidArgument
	}
	deadline := time.Now().Add(d.config.FunctionReadyBudget)
	for {
		v, err := d.bus.ReadByte(whd.FuncBus, whd.CCCRIOReady)
		if err != nil {
			return ErrIO
		}
		if v&want != 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		d.bus.DelayMillis(1)
	}
}
