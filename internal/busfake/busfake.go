// Package busfake is an in-memory hostio.Bus double for unit tests: a flat
// byte-addressed register file per SDIO function, with no real timing or
// bus errors unless injected.
package busfake

import "fmt"

// Bus is a fake hostio.Bus. The zero value is ready to use.
type Bus struct {
	regs      map[uint8]map[uint32]byte
	// queues holds the bytes of pending non-incrementing (addrIncrementing
	// == false) transfers, keyed by function then by the fixed address the
	// transfer targets. A real SDIO FIFO register accepts/emits a stream of
	// bytes at one unchanging address; WriteBulk appends to the stream and
	// ReadBulk drains it front-to-back, possibly across several calls, so a
	// single map slot per address (which can only hold the last byte
	// written) cannot model it.
	queues    map[uint8]map[uint32][]byte
	blockSize map[uint8]uint16
	enabled   map[uint8]bool
	irqArmed  bool
	irqPend   bool

	// FailNext, if non-nil, is returned by the next bus operation and then
	// cleared.
	FailNext error

	// Delays records every DelayMicros/DelayMillis call for assertions.
	Delays []uint32
}

func New() *Bus {
	return &Bus{
		regs:      make(map[uint8]map[uint32]byte),
		queues:    make(map[uint8]map[uint32][]byte),
		blockSize: make(map[uint8]uint16),
		enabled:   make(map[uint8]bool),
	}
}

func (b *Bus) fn(function uint8) map[uint32]byte {
	m, ok := b.regs[function]
	if !ok {
		m = make(map[uint32]byte)
		b.regs[function] = m
	}
	return m
}

// Poke sets a register's byte value directly, bypassing any fake error
// injection, for test setup.
func (b *Bus) Poke(function uint8, addr uint32, v uint8) {
	b.fn(function)[addr] = v
}

// Peek reads a register's byte value directly, for test assertions.
func (b *Bus) Peek(function uint8, addr uint32) uint8 {
	return b.fn(function)[addr]
}

// SetIRQPending arms the next IRQPending() call to report true.
func (b *Bus) SetIRQPending(pending bool) { b.irqPend = pending }

func (b *Bus) takeErr() error {
	if b.FailNext != nil {
		err := b.FailNext
		b.FailNext = nil
		return err
	}
	return nil
}

func (b *Bus) ReadByte(function uint8, addr uint32) (uint8, error) {
	if err := b.takeErr(); err != nil {
		return 0, err
	}
	return b.fn(function)[addr], nil
}

func (b *Bus) WriteByte(function uint8, addr uint32, v uint8) error {
	if err := b.takeErr(); err != nil {
		return err
	}
	b.fn(function)[addr] = v
	return nil
}

func (b *Bus) ReadBulk(function uint8, addr uint32, buf []byte, addrIncrementing bool) error {
	if err := b.takeErr(); err != nil {
		return err
	}
	if addrIncrementing {
		m := b.fn(function)
		for i := range buf {
			buf[i] = m[addr+uint32(i)]
		}
		return nil
	}
	if b.queues[function] == nil {
		b.queues[function] = make(map[uint32][]byte)
	}
	q := b.queues[function][addr]
	n := copy(buf, q)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	b.queues[function][addr] = q[n:]
	return nil
}

func (b *Bus) WriteBulk(function uint8, addr uint32, buf []byte, addrIncrementing bool) error {
	if err := b.takeErr(); err != nil {
		return err
	}
	if addrIncrementing {
		m := b.fn(function)
		for i, v := range buf {
			m[addr+uint32(i)] = v
		}
		return nil
	}
	if b.queues[function] == nil {
		b.queues[function] = make(map[uint32][]byte)
	}
	b.queues[function][addr] = append(b.queues[function][addr], buf...)
	return nil
}

func (b *Bus) SetBlockSize(function uint8, size uint16) error {
	if err := b.takeErr(); err != nil {
		return err
	}
	b.blockSize[function] = size
	return nil
}

func (b *Bus) EnableFunction(function uint8, enable bool) error {
	if err := b.takeErr(); err != nil {
		return err
	}
	b.enabled[function] = enable
	return nil
}

func (b *Bus) EnableIRQ(enable bool) error {
	if err := b.takeErr(); err != nil {
		return err
	}
	b.irqArmed = enable
	return nil
}

func (b *Bus) IRQPending() (bool, error) {
	if err := b.takeErr(); err != nil {
		return false, err
	}
	if !b.irqArmed {
		return false, nil
	}
	pending := b.irqPend
	b.irqPend = false
	return pending, nil
}

func (b *Bus) DelayMicros(us uint32) { b.Delays = append(b.Delays, us) }
func (b *Bus) DelayMillis(ms uint32) { b.Delays = append(b.Delays, ms*1000) }

func (b *Bus) String() string {
	return fmt.Sprintf("busfake.Bus{functions=%d}", len(b.regs))
}
