package cyw55500

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soypat/cyw55500/whd"
)

func TestSendFrameHeaderInvariant(t *testing.T) {
	d, bus := newTestDevice()
	payload := []byte{0x01, 0x02, 0x03}
	err := d.sendFrame(whd.SDPCMControlChannel, payload)
	assert.NoError(t, err)

	var frame [sdpcmHeaderSize + 3]byte
	for i := range frame {
		frame[i] = bus.Peek(whd.FuncWLAN, uint32(i))
	}
	length := binary.LittleEndian.Uint16(frame[0:2])
	lengthCheck := binary.LittleEndian.Uint16(frame[2:4])
	assert.Equal(t, uint16(sdpcmHeaderSize+3), length)
	assert.Equal(t, uint16(0xFFFF), length^lengthCheck)
	assert.Equal(t, uint8(whd.SDPCMControlChannel), frame[5])
	assert.Equal(t, uint8(sdpcmHeaderSize), frame[7])
	assert.Equal(t, payload, frame[sdpcmHeaderSize:])
}

func TestSendFrameSequenceIncrements(t *testing.T) {
	d, _ := newTestDevice()
	assert.NoError(t, d.sendFrame(whd.SDPCMDataChannel, nil))
	assert.Equal(t, uint8(1), d.sdpcm.txSeq)
	assert.NoError(t, d.sendFrame(whd.SDPCMDataChannel, nil))
	assert.Equal(t, uint8(2), d.sdpcm.txSeq)
}

func TestSendFrameOutOfMemory(t *testing.T) {
	d, _ := newTestDevice()
	big := make([]byte, len(d.txBuf))
	err := d.sendFrame(whd.SDPCMDataChannel, big)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func writeFakeFrame(bus interface {
	WriteBulk(function uint8, addr uint32, buf []byte, addrIncrementing bool) error
}, channel uint8, seq, txMax uint8, payload []byte) {
	total := sdpcmHeaderSize + len(payload)
	buf := make([]byte, total)
	length := uint16(total)
	binary.LittleEndian.PutUint16(buf[0:2], length)
	binary.LittleEndian.PutUint16(buf[2:4], ^length)
	buf[4] = seq
	buf[5] = channel
	buf[7] = sdpcmHeaderSize
	buf[9] = txMax
	copy(buf[sdpcmHeaderSize:], payload)
	_ = bus.WriteBulk(whd.FuncWLAN, 0, buf, false)
}

func TestRecvFrameChecksumAndFlowControl(t *testing.T) {
	d, bus := newTestDevice()
	writeFakeFrame(bus, whd.SDPCMEventChannel, 7, 42, []byte{0xAA, 0xBB})

	channel, payload, err := d.recvFrame(d.rxBuf[:])
	assert.NoError(t, err)
	assert.Equal(t, uint8(whd.SDPCMEventChannel), channel)
	assert.Equal(t, []byte{0xAA, 0xBB}, payload)
	assert.Equal(t, uint8(7), d.sdpcm.rxSeq)
	assert.Equal(t, uint8(42), d.sdpcm.txMax)
}

func TestRecvFrameBadChecksum(t *testing.T) {
	d, bus := newTestDevice()
	var buf [sdpcmHeaderSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], 20)
	binary.LittleEndian.PutUint16(buf[2:4], 20) // not the one's complement
	bus.WriteBulk(whd.FuncWLAN, 0, buf[:], false)

	_, _, err := d.recvFrame(d.rxBuf[:])
	assert.ErrorIs(t, err, ErrIO)
}

func TestRecvFrameEmpty(t *testing.T) {
	d, _ := newTestDevice()
	channel, payload, err := d.recvFrame(d.rxBuf[:])
	assert.NoError(t, err)
	assert.Nil(t, payload)
	assert.Equal(t, uint8(0), channel)
}
