// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tabmagnet/internal/core/effects"
	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/logx"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place tab mutations happen.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// HostEffectExecutor implements EffectExecutor against a TabHost.
//
// Mutations that hit a stale reference are swallowed. Any other failure is
// returned to the caller, which logs it; nothing is retried.
type HostEffectExecutor struct {
	host     secondary.TabHost
	activity secondary.ActivityLog // optional
}

// NewEffectExecutor creates a new HostEffectExecutor.
func NewEffectExecutor(host secondary.TabHost, activity secondary.ActivityLog) *HostEffectExecutor {
	return &HostEffectExecutor{host: host, activity: activity}
}

// Execute processes a slice of effects, executing each in sequence.
// Every effect is attempted even when an earlier one failed.
func (e *HostEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	var errs []error
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			errs = append(errs, fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err))
		}
	}
	return errors.Join(errs...)
}

func (e *HostEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.MoveEffect:
		return e.mutate(ctx, typed.WindowID, typed.TabID, secondary.ActionMove,
			fmt.Sprintf("index %d", typed.Index),
			func() error { return e.host.Move(ctx, typed.TabID, typed.Index) })
	case effects.MoveToEndEffect:
		return e.mutate(ctx, typed.WindowID, typed.TabID, secondary.ActionMoveToEnd, "last position",
			func() error { return e.host.Move(ctx, typed.TabID, secondary.MoveToEnd) })
	case effects.ActivateEffect:
		return e.mutate(ctx, typed.WindowID, typed.TabID, secondary.ActionActivate, "",
			func() error { return e.host.Activate(ctx, typed.TabID) })
	case effects.LogEffect:
		e.executeLog(ctx, typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *HostEffectExecutor) mutate(ctx context.Context, windowID tabs.WindowID, tabID tabs.TabID, action, detail string, apply func() error) error {
	log := logx.WithWindowTab(ctx, windowID, tabID)
	if err := apply(); err != nil {
		if secondary.IsStaleReference(err) {
			log.Debug("tab mutation skipped, stale reference", "action", action, "err", err)
			return nil
		}
		return err
	}
	log.Debug("tab mutation applied", "action", action, "detail", detail)

	if e.activity == nil {
		return nil
	}
	entry := &secondary.ActivityRecord{
		WindowID: string(windowID),
		TabID:    string(tabID),
		Action:   action,
		Detail:   detail,
	}
	if err := e.activity.Record(ctx, entry); err != nil {
		log.Warn("failed to record activity", "action", action, "err", err)
	}
	return nil
}

func (e *HostEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) {
	log := logx.Ctx(ctx)
	kv := make([]any, 0, len(eff.Fields)*2)
	for k, v := range eff.Fields {
		kv = append(kv, k, v)
	}
	switch eff.Level {
	case "debug":
		log.Debug(eff.Message, kv...)
	case "warn":
		log.Warn(eff.Message, kv...)
	case "error":
		log.Error(eff.Message, kv...)
	default:
		log.Info(eff.Message, kv...)
	}
}
