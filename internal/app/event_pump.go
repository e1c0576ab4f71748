package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tabmagnet/internal/logx"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

// Serve pumps host events into the arranger until ctx ends or the source
// closes. Handler failures are logged and never stop the pump.
func Serve(ctx context.Context, arranger primary.ArrangerService, source secondary.EventSource) error {
	for {
		event, err := source.Next(ctx)
		if err != nil {
			if errors.Is(err, secondary.ErrSourceClosed) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read host event: %w", err)
		}
		if err := Dispatch(ctx, arranger, event); err != nil {
			logx.WithWindowTab(ctx, event.WindowID, event.TabID).Warn("event handling failed", "kind", string(event.Kind), "err", err)
		}
	}
}

// Dispatch routes one host event to the matching arranger operation.
func Dispatch(ctx context.Context, arranger primary.ArrangerService, event secondary.TabEvent) error {
	switch event.Kind {
	case secondary.EventCreated:
		_, err := arranger.TabCreated(ctx, primary.TabCreatedEvent{TabID: event.TabID, WindowID: event.WindowID})
		return err
	case secondary.EventRemoved:
		_, err := arranger.TabRemoved(ctx, primary.TabRemovedEvent{
			TabID:           event.TabID,
			WindowID:        event.WindowID,
			IsWindowClosing: event.IsWindowClosing,
		})
		return err
	case secondary.EventActivated:
		return arranger.TabActivated(ctx, primary.TabActivatedEvent{TabID: event.TabID, WindowID: event.WindowID})
	case secondary.EventCommand:
		if event.Command != secondary.CommandNewTabAtEnd {
			return fmt.Errorf("unknown command: %s", event.Command)
		}
		_, err := arranger.OpenTabAtEnd(ctx, primary.OpenTabAtEndRequest{WindowID: event.WindowID})
		return err
	default:
		return fmt.Errorf("unknown event kind: %s", event.Kind)
	}
}
