package cyw55500

import (
	"errors"
	"fmt"
)

// Error taxonomy. Each call reports exactly one of these (or wraps
// IoctlError) by return value; there is no panic/unwinding path.
var (
	// ErrNotReady is returned when a call is made in the wrong lifecycle
	// state. It is not fatal: the driver's state is
	// unchanged and the call may be retried once the precondition holds.
	ErrNotReady = errors.New("cyw55500: not ready for this call in current lifecycle state")

	// ErrInvalidArgument covers a nil buffer, an oversize payload, or an
	// illegal SDIO function number.
	ErrInvalidArgument = errors.New("cyw55500: invalid argument")

	// ErrIO is returned when the host SDIO capability reports a failed
	// transaction (hostio.ErrIO surfaced through the core).
	ErrIO = errors.New("cyw55500: sdio transaction failed")

	// ErrTimeout is returned when a bounded polling loop exhausts its
	// budget without observing the awaited condition.
	ErrTimeout = errors.New("cyw55500: polling budget exceeded")

	// ErrFwLoadFailed is returned by LoadFirmware for any failure during
	// the download sequence, including IO and timeout failures that are
	// promoted to it. It drives the lifecycle
	// to StateError.
	ErrFwLoadFailed = errors.New("cyw55500: firmware load failed")

	// ErrOutOfMemory is returned when a bounded internal buffer (TX/RX/BCDC
	// scratch) is too small for the requested payload.
	ErrOutOfMemory = errors.New("cyw55500: payload exceeds internal buffer")
)

// IoctlError reports a non-zero BCDC response status.
// Status is the raw 32-bit value the chip wrote into the BCDC header.
type IoctlError struct {
	Status int32
}

func (e *IoctlError) Error() string {
	return fmt.Sprintf("cyw55500: ioctl returned status %d", e.Status)
}

// Is lets errors.Is(err, ErrIoctl) match any *IoctlError regardless of its
// Status, for callers that only care that the chip rejected the command.
func (e *IoctlError) Is(target error) bool {
	_, ok := target.(*IoctlError)
	return ok
}

// ErrIoctl is a zero-value IoctlError usable with errors.Is to test whether
// an error is an IoctlError of any status.
var ErrIoctl = &IoctlError{}
