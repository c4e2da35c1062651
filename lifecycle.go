package cyw55500

import "log/slog"

// State is the driver lifecycle state. States are ordered; Error is terminal
// and reachable from any non-Off state.
type State uint8

const (
	StateOff State = iota
	StateInit
	StateFwLoading
	StateFwReady
	StateUp
	StateError
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateInit:
		return "init"
	case StateFwLoading:
		return "fw-loading"
	case StateFwReady:
		return "fw-ready"
	case StateUp:
		return "up"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// atLeast reports whether s has progressed at least as far as min along the
// Off->Init->FwLoading->FwReady->Up progression. StateError never satisfies
// atLeast for any min: after a fatal lifecycle transition to Error, every
// call other than Deinit returns ErrNotReady.
func (s State) atLeast(min State) bool {
	if s == StateError {
		return false
	}
	return s >= min
}

// requireState returns ErrNotReady unless the driver is in exactly want, and
// issues no SDIO transaction in that case. Every entry point in the
// lifecycle table requires an exact predecessor state except Poll, which
// uses requireMinState instead since it is legal in FwReady or Up.
func (d *Device) requireState(want State) error {
	if d.state != want {
		d.trace("requireState:reject", slog.String("have", d.state.String()), slog.String("want", want.String()))
		return ErrNotReady
	}
	return nil
}

// requireMinState returns ErrNotReady unless the driver has progressed at
// least as far as min.
func (d *Device) requireMinState(min State) error {
	if !d.state.atLeast(min) {
		d.trace("requireState:reject", slog.String("have", d.state.String()), slog.String("want", min.String()))
		return ErrNotReady
	}
	return nil
}

func (d *Device) setState(s State) {
	if d.state != s {
		d.debugState(d.state, s)
		d.state = s
	}
}

// State returns the driver's current lifecycle state.
func (d *Device) State() State {
	return d.state
}
