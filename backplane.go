package cyw55500

import (
	"encoding/binary"

	"github.com/soypat/cyw55500/whd"
)

// setWindow points the 3-byte SBADDR{LOW,MID,HIGH} window register at the
// 32-bit chip address's high bits, caching the last-written window so a
// repeated access to the same 32KiB page costs no SDIO transaction at all.
// Unwritten windows are set lazily on first access.
func (d *Device) setWindow(chipAddr uint32) error {
	window := chipAddr & whd.SBWindowMask
	if d.windowValid && d.windowAddr == window {
		return nil
	}
	b0 := uint8(window >> 8)
	b1 := uint8(window >> 16)
	b2 := uint8(window >> 24)
	if err := d.bus.WriteByte(whd.FuncBackplane, whd.SBAddrLow, b0); err != nil {
		return ErrIO
	}
	if err := d.bus.WriteByte(whd.FuncBackplane, whd.SBAddrMid, b1); err != nil {
		return ErrIO
	}
	if err := d.bus.WriteByte(whd.FuncBackplane, whd.SBAddrHigh, b2); err != nil {
		return ErrIO
	}
	d.windowAddr = window
	d.windowValid = true
	return nil
}

// bpRead32 reads a 32-bit little-endian word from the chip backplane address
// space, windowing as needed. The 2/4-byte access flag (bit 15 of the SDIO
// offset) selects 4-byte-wide access.
func (d *Device) bpRead32(chipAddr uint32) (uint32, error) {
	if err := d.setWindow(chipAddr); err != nil {
		return 0, err
	}
	offset := (chipAddr & whd.SBOffsetAddrMask) | whd.SBAccess32bFlag
	var buf [4]byte
	if err := d.bus.ReadBulk(whd.FuncBackplane, offset, buf[:], false); err != nil {
		return 0, ErrIO
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// bpWrite32 writes a 32-bit little-endian word to the chip backplane address
// space, windowing as needed.
func (d *Device) bpWrite32(chipAddr, value uint32) error {
	if err := d.setWindow(chipAddr); err != nil {
		return err
	}
	offset := (chipAddr & whd.SBOffsetAddrMask) | whd.SBAccess32bFlag
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	if err := d.bus.WriteBulk(whd.FuncBackplane, offset, buf[:], false); err != nil {
		return ErrIO
	}
	return nil
}

// bpRead8 reads a single byte from the chip backplane address space.
func (d *Device) bpRead8(chipAddr uint32) (uint8, error) {
	if err := d.setWindow(chipAddr); err != nil {
		return 0, err
	}
	offset := chipAddr & whd.SBOffsetAddrMask
	v, err := d.bus.ReadByte(whd.FuncBackplane, offset)
	if err != nil {
		return 0, ErrIO
	}
	return v, nil
}

// bpWrite8 writes a single byte to the chip backplane address space.
func (d *Device) bpWrite8(chipAddr uint32, v uint8) error {
	if err := d.setWindow(chipAddr); err != nil {
		return err
	}
	offset := chipAddr & whd.SBOffsetAddrMask
	if err := d.bus.WriteByte(whd.FuncBackplane, offset, v); err != nil {
		return ErrIO
	}
	return nil
}

// bpReadBlock reads len(buf) bytes starting at chipAddr, chunking each
// transfer at the 32KiB window boundary so no single SDIO transaction
// crosses a window.
func (d *Device) bpReadBlock(chipAddr uint32, buf []byte) error {
	return d.bpTransferBlock(chipAddr, buf, false)
}

// bpWriteBlock writes len(buf) bytes starting at chipAddr, with the same
// window-boundary chunking as bpReadBlock.
func (d *Device) bpWriteBlock(chipAddr uint32, buf []byte) error {
	return d.bpTransferBlock(chipAddr, buf, true)
}

func (d *Device) bpTransferBlock(chipAddr uint32, buf []byte, write bool) error {
	remaining := buf
	addr := chipAddr
	for len(remaining) > 0 {
		if err := d.setWindow(addr); err != nil {
			return err
		}
		offset := addr & whd.SBOffsetAddrMask
		toBoundary := whd.SBOffsetLimit - int(offset)
		n := len(remaining)
		if n > toBoundary {
			n = toBoundary
		}
		chunk := remaining[:n]
		fullOffset := uint32(offset) | whd.SBAccess32bFlag
		var err error
		if write {
			err = d.bus.WriteBulk(whd.FuncBackplane, fullOffset, chunk, true)
		} else {
			err = d.bus.ReadBulk(whd.FuncBackplane, fullOffset, chunk, true)
		}
		if err != nil {
			return ErrIO
		}
		remaining = remaining[n:]
		addr += uint32(n)
	}
	return nil
}
