package cyw55500

import (
	"encoding/binary"
	"time"

	"github.com/soypat/cyw55500/whd"
)

const bcdcHeaderSize = whd.BCDCHeaderSize

// ioctl performs one BCDC request/response transaction on the SDPCM control
// channel: it builds the 16-byte BCDC header (cmd, length, flags carrying
// the protocol version and a per-request ID, zero status), sends it, and
// polls for a reply whose reqid matches, bounded by config.BCDCBudget.
// Frames with a non-matching reqid are still accounted into the flow-control
// state by recvFrame and are otherwise discarded.
// A non-zero response status surfaces as *IoctlError.
func (d *Device) ioctl(cmd uint32, set bool, data []byte) ([]byte, error) {
	if bcdcHeaderSize+len(data) > len(d.txBuf) {
		return nil, ErrOutOfMemory
	}
	d.reqID++
	reqID := d.reqID

	header := make([]byte, bcdcHeaderSize+len(data))
	binary.LittleEndian.PutUint32(header[0:4], cmd)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(data)))
	flags := uint32(whd.BCDCProtoVer) << whd.BCDCFlagVerShift
	if set {
		flags |= whd.BCDCFlagSet
	}
	flags |= uint32(reqID) << whd.BCDCReqIDShift
	binary.LittleEndian.PutUint32(header[8:12], flags)
	binary.LittleEndian.PutUint32(header[12:16], 0)
	copy(header[bcdcHeaderSize:], data)

	if err := d.sendFrame(whd.SDPCMControlChannel, header); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(d.config.BCDCBudget)
	for {
		channel, payload, err := d.recvFrame(d.rxBuf[:])
		if err != nil {
			return nil, err
		}
		if payload != nil && channel == whd.SDPCMControlChannel && len(payload) >= bcdcHeaderSize {
			gotFlags := binary.LittleEndian.Uint32(payload[8:12])
			gotReqID := uint16(gotFlags >> whd.BCDCReqIDShift)
			if gotReqID == reqID {
				status := int32(binary.LittleEndian.Uint32(payload[12:16]))
				if status != 0 {
					return nil, &IoctlError{Status: status}
				}
				respLen := binary.LittleEndian.Uint32(payload[4:8])
				if bcdcHeaderSize+int(respLen) > len(payload) {
					return nil, ErrIO
				}
				return payload[bcdcHeaderSize : bcdcHeaderSize+int(respLen)], nil
			}
		}
		if time.Now().After(deadline) {
			return nil, ErrTimeout
		}
		d.bus.DelayMillis(1)
	}
}

// iovar performs a named get/set transaction: the variable name (NUL
// terminated) is concatenated with the value bytes and dispatched through
// ioctl using WLC_GET_VAR/WLC_SET_VAR.
func (d *Device) iovar(name string, set bool, value []byte) ([]byte, error) {
	payload := make([]byte, len(name)+1+len(value))
	copy(payload, name)
	copy(payload[len(name)+1:], value)
	cmd := uint32(whd.WLCGetVar)
	if set {
		cmd = whd.WLCSetVar
	}
	return d.ioctl(cmd, set, payload)
}
