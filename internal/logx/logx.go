// Package logx binds tab and window identifiers to the context logger.
package logx

import (
	"context"

	"github.com/example/tabmagnet/internal/core/tabs"
	"pkt.systems/pslog"
)

type contextKey int

const (
	windowKey contextKey = iota
	tabKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithWindow annotates the logger with the window id if present.
func WithWindow(ctx context.Context, windowID tabs.WindowID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if windowID != "" {
		if current, ok := ctx.Value(windowKey).(tabs.WindowID); ok && current == windowID {
			return log
		}
		log = log.With("window", string(windowID))
	}
	return log
}

// WithWindowTab annotates the logger with window and tab identifiers.
func WithWindowTab(ctx context.Context, windowID tabs.WindowID, tabID tabs.TabID) pslog.Logger {
	log := WithWindow(ctx, windowID)
	if tabID != "" {
		if current, ok := ctx.Value(tabKey).(tabs.TabID); ok && current == tabID {
			return log
		}
		log = log.With("tab", string(tabID))
	}
	return log
}

// ContextWithWindowTab attaches a logger carrying window/tab fields to the
// context, and stores markers so later helpers do not repeat them.
func ContextWithWindowTab(ctx context.Context, windowID tabs.WindowID, tabID tabs.TabID) context.Context {
	log := WithWindowTab(ctx, windowID, tabID)
	ctx = pslog.ContextWithLogger(ctx, log)
	if windowID != "" {
		ctx = context.WithValue(ctx, windowKey, windowID)
	}
	if tabID != "" {
		ctx = context.WithValue(ctx, tabKey, tabID)
	}
	return ctx
}
