package cyw55500

import (
	"log/slog"

	"github.com/soypat/cyw55500/whd"
)

// Poll services one pending SDIO interrupt, if any, dispatching the received
// SDPCM frame by channel. Event-channel frames update no public state yet
// (Scan reads events directly); data-channel frames are outside this
// driver's scope and are discarded after
// their header is accounted into flow control. Requires StateFwReady or
// later; callers schedule Poll cooperatively alongside other work
// alongside other work.
func (d *Device) Poll() error {
	if err := d.requireMinState(StateFwReady); err != nil {
		return err
	}
	pending, err := d.bus.IRQPending()
	if err != nil {
		return ErrIO
	}
	if !pending {
		return nil
	}
	channel, payload, err := d.recvFrame(d.rxBuf[:])
	if err != nil {
		return err
	}
	if payload == nil {
		return nil
	}
	switch channel {
	case whd.SDPCMEventChannel:
		hdr, _, err := decodeEventHeader(payload)
		if err != nil {
			return nil
		}
		d.trace("Poll:event", slog.Uint64("type", uint64(hdr.EventType)), slog.Uint64("status", uint64(hdr.Status)))
	case whd.SDPCMDataChannel:
		// Data-path frames are received and their SDPCM header accounted
		// for flow control by recvFrame, but the payload itself is not a
		// goal of this driver.
	}
	return nil
}
