package cyw55500

import (
	"log/slog"
	"time"

	"github.com/soypat/cyw55500/whd"
)

// LoadFirmware halts the ARM core, streams the firmware image to RAM and the
// NVRAM image to its fixed destination address with the inverted word-count
// footer the chip's bootloader expects, releases the core, and waits for the
// firmware-ready mailbox bit. Requires StateInit; on success the driver
// reaches StateFwReady. Any failure in the download sequence, including an
// empty firmware image, is reported as ErrFwLoadFailed and drives the
// lifecycle to StateError.
func (d *Device) LoadFirmware(fw, nvram []byte) error {
	if err := d.requireState(StateInit); err != nil {
		return err
	}
	d.setState(StateFwLoading)
	if err := d.loadFirmwareLocked(fw, nvram); err != nil {
		d.logerr("LoadFirmware:failed", slog.String("err", err.Error()))
		d.setState(StateError)
		return ErrFwLoadFailed
	}
	d.setState(StateFwReady)
	return nil
}

func (d *Device) loadFirmwareLocked(fw, nvram []byte) error {
	if len(fw) == 0 {
		return ErrInvalidArgument
	}
	armCoreBase := uint32(whd.BCMACoreARMCR4 * whd.BCMACoreSize)

	// Halt the ARM core by zeroing BANKIDX before streaming firmware.
	if err := d.bpWrite32(armCoreBase+whd.ARMCR4BankIdx, 0); err != nil {
		return err
	}
	if err := d.resetCore(armCoreBase, false); err != nil {
		return err
	}

	if err := d.bpWriteBlock(d.chip.RAMBase, fw); err != nil {
		return err
	}

	if len(nvram) > 0 {
		if err := d.downloadNVRAM(nvram); err != nil {
			return err
		}
	}

	if err := d.resetCore(armCoreBase, true); err != nil {
		return err
	}

	if err := d.requestHTClock(); err != nil {
		return err
	}

	return d.waitFirmwareReady()
}

// downloadNVRAM writes the NVRAM blob to whd.NVRAMDownloadAddr followed by a
// 4-byte footer of the word count and its one's complement in the upper
// 16 bits. The destination is the fixed NVRAMDownloadAddr, not an address
// derived from the end of RAM.
func (d *Device) downloadNVRAM(nvram []byte) error {
	padded := (len(nvram) + 3) &^ 3
	buf := make([]byte, padded)
	copy(buf, nvram)
	if err := d.bpWriteBlock(whd.NVRAMDownloadAddr, buf); err != nil {
		return err
	}
	words := uint32(padded / 4)
	footer := words | ((^words & 0xFFFF) << 16)
	footerAddr := whd.NVRAMDownloadAddr + uint32(padded)
	return d.bpWrite32(footerAddr, footer)
}

// waitFirmwareReady polls the host mailbox data register for the FWReady bit,
// bounded by config.FWReadyBudget.
func (d *Device) waitFirmwareReady() error {
	deadline := time.Now().Add(d.config.FWReadyBudget)
	for {
		v, err := d.bpRead32(whd.HostMailboxData)
		if err != nil {
			return err
		}
		if v&whd.HMBDataFWReady != 0 {
			d.trace("waitFirmwareReady:ready")
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		d.bus.DelayMillis(10)
	}
}
