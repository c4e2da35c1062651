package cyw55500

import (
	"context"
	"log/slog"
)

// trace/debug/logerr are nil-safe wrappers around the configured *slog.Logger:
// a Device with no Logger configured pays no logging cost and never
// nil-derefs.
func (d *Device) trace(msg string, args ...slog.Attr) {
	if d.log == nil {
		return
	}
	d.log.LogAttrs(context.Background(), slog.LevelDebug-4, msg, args...)
}

func (d *Device) debug(msg string, args ...slog.Attr) {
	if d.log == nil {
		return
	}
	d.log.LogAttrs(context.Background(), slog.LevelDebug, msg, args...)
}

func (d *Device) logerr(msg string, args ...slog.Attr) {
	if d.log == nil {
		return
	}
	d.log.LogAttrs(context.Background(), slog.LevelError, msg, args...)
}

// debugState logs a lifecycle transition at debug level.
func (d *Device) debugState(from, to State) {
	d.debug("state", slog.String("from", from.String()), slog.String("to", to.String()))
}
