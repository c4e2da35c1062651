package cyw55500

import (
	"log/slog"
	"time"

	"github.com/soypat/cyw55500/whd"
)

// requestALPClock forces the always-on low-power clock and polls ChipClockCSR
// for ALPAvail, bounded by config.ALPClockBudget.
func (d *Device) requestALPClock() error {
	if err := d.bus.WriteByte(whd.FuncBackplane, whd.ChipClockCSR, whd.ForceALP|whd.ALPAvailReq); err != nil {
		return ErrIO
	}
	deadline := time.Now().Add(d.config.ALPClockBudget)
	for {
		v, err := d.bus.ReadByte(whd.FuncBackplane, whd.ChipClockCSR)
		if err != nil {
			return ErrIO
		}
		if v&whd.ALPAvail != 0 {
			return nil
		}
		if time.Now().After(deadline) {
			d.logerr("requestALPClock:timeout", slog.Uint64("csr", uint64(v)))
			return ErrTimeout
		}
		d.bus.DelayMillis(1)
	}
}

// requestHTClock forces the backplane high-throughput clock and polls for
// HTAvail, bounded by config.HTClockBudget.
func (d *Device) requestHTClock() error {
	if err := d.bus.WriteByte(whd.FuncBackplane, whd.ChipClockCSR, whd.ForceHT|whd.HTAvailReq); err != nil {
		return ErrIO
	}
	deadline := time.Now().Add(d.config.HTClockBudget)
	for {
		v, err := d.bus.ReadByte(whd.FuncBackplane, whd.ChipClockCSR)
		if err != nil {
			return ErrIO
		}
		if v&whd.HTAvail != 0 {
			return nil
		}
		if time.Now().After(deadline) {
			d.logerr("requestHTClock:timeout", slog.Uint64("csr", uint64(v)))
			return ErrTimeout
		}
		d.bus.DelayMillis(10)
	}
}

// detectChip reads the ChipCommon chip-identity word, validates the ID
// against the expected CYW55500 value, and populates d.chip including the
// revision-selected RAM base.
func (d *Device) detectChip() error {
	v, err := d.bpRead32(whd.ChipCommonBase + whd.CCChipID)
	if err != nil {
		return err
	}
	id := uint16(v & whd.ChipIDMask)
	rev := uint8((v & whd.ChipRevMask) >> whd.ChipRevShift)
	if id != whd.ExpectedChipID {
		d.logerr("detectChip:mismatch", slog.Uint64("got", uint64(id)), slog.Uint64("want", uint64(whd.ExpectedChipID)))
		return ErrIO
	}
	ramBase := uint32(whd.RAMBaseRevA0)
	if rev >= 1 {
		ramBase = whd.RAMBaseRevA1
	}
	d.chip = ChipIdentity{
		ID:      id,
		Rev:     rev,
		RAMBase: ramBase,
	}
	d.trace("detectChip:ok", slog.Uint64("id", uint64(id)), slog.Uint64("rev", uint64(rev)))
	return nil
}

// resetCore halts or releases a BCMA core's ARM/D11 reset line by writing
// the BCMAResetCtl/BCMAIOCtl register pair at the core's base address.
func (d *Device) resetCore(coreBase uint32, enable bool) error {
	if enable {
		if err := d.bpWrite32(coreBase+whd.BCMAIOCtl, whd.BCMAIOCtlClk); err != nil {
			return err
		}
		d.bus.DelayMillis(1)
		if err := d.bpWrite32(coreBase+whd.BCMAResetCtl, 0); err != nil {
			return err
		}
		d.bus.DelayMillis(1)
		return nil
	}
	if err := d.bpWrite32(coreBase+whd.BCMAResetCtl, whd.BCMAResetCtlReset); err != nil {
		return err
	}
	d.bus.DelayMillis(1)
	if err := d.bpWrite32(coreBase+whd.BCMAIOCtl, 0); err != nil {
		return err
	}
	d.bus.DelayMillis(1)
	return nil
}
