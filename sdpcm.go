package cyw55500

import (
	"encoding/binary"

	"github.com/soypat/cyw55500/whd"
)

// sdpcmHeaderSize is whd.SDPCMHeaderSize as an int, for slice arithmetic.
const sdpcmHeaderSize = whd.SDPCMHeaderSize

// sendFrame wraps payload in a 12-byte SDPCM header and writes it to the WLAN
// data function. Frames are 4-byte aligned; the alignment pad is written on
// the bus but is not counted in the header's length field, which holds
// 12 + len(payload).
func (d *Device) sendFrame(channel uint8, payload []byte) error {
	total := sdpcmHeaderSize + len(payload)
	padded := (total + 3) &^ 3
	if padded > len(d.txBuf) {
		return ErrOutOfMemory
	}
	buf := d.txBuf[:padded]
	for i := range buf {
		buf[i] = 0
	}

	length := uint16(total)
	binary.LittleEndian.PutUint16(buf[0:2], length)
	binary.LittleEndian.PutUint16(buf[2:4], ^length)
	buf[4] = d.sdpcm.txSeq
	buf[5] = channel
	buf[6] = 0 // next_len, unused on host->chip frames.
	buf[7] = sdpcmHeaderSize
	buf[8] = 0 // flow_control, host does not throttle the chip.
	buf[9] = d.sdpcm.txMax
	copy(buf[sdpcmHeaderSize:], payload)

	if err := d.bus.WriteBulk(whd.FuncWLAN, 0, buf, true); err != nil {
		return ErrIO
	}
	d.sdpcm.txSeq++
	return nil
}

// recvFrame reads one SDPCM frame from the WLAN data function into buf,
// validates the length/~length checksum invariant, updates the flow-control
// and sequence state, and returns the channel and payload slice (aliasing
// buf).
func (d *Device) recvFrame(buf []byte) (channel uint8, payload []byte, err error) {
	if len(buf) < sdpcmHeaderSize {
		return 0, nil, ErrInvalidArgument
	}
	if err := d.bus.ReadBulk(whd.FuncWLAN, 0, buf[:sdpcmHeaderSize], false); err != nil {
		return 0, nil, ErrIO
	}
	length := binary.LittleEndian.Uint16(buf[0:2])
	lengthCheck := binary.LittleEndian.Uint16(buf[2:4])
	if length == 0 {
		return 0, nil, nil
	}
	if length^lengthCheck != 0xFFFF {
		d.logerr("recvFrame:badchecksum")
		return 0, nil, ErrIO
	}
	if int(length) > len(buf) {
		return 0, nil, ErrOutOfMemory
	}
	if int(length) > sdpcmHeaderSize {
		if err := d.bus.ReadBulk(whd.FuncWLAN, 0, buf[sdpcmHeaderSize:length], false); err != nil {
			return 0, nil, ErrIO
		}
	}
	seq := buf[4]
	channel = buf[5]
	dataOffset := buf[7]
	flowControl := buf[8]
	txMax := buf[9]

	d.sdpcm.rxSeq = seq
	d.sdpcm.flowCtrl = flowControl
	d.sdpcm.txMax = txMax

	if int(dataOffset) > int(length) {
		return 0, nil, ErrIO
	}
	return channel, buf[dataOffset:length], nil
}
