package secondary

import (
	"context"
	"errors"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// ErrSourceClosed is returned by an EventSource that will deliver no more events.
var ErrSourceClosed = errors.New("event source closed")

// EventKind identifies a tab lifecycle notification.
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventRemoved   EventKind = "removed"
	EventActivated EventKind = "activated"
	EventCommand   EventKind = "command"
)

// CommandNewTabAtEnd is the named command trigger for opening a tab at the end of a window.
const CommandNewTabAtEnd = "new-tab-at-end"

// TabEvent is a lifecycle notification dispatched by a host.
type TabEvent struct {
	Kind            EventKind
	TabID           tabs.TabID
	WindowID        tabs.WindowID
	IsWindowClosing bool   // removed events only
	Command         string // command events only
}

// EventSource delivers host notifications in order.
type EventSource interface {
	// Next blocks until an event is available, ctx ends or the source closes.
	Next(ctx context.Context) (TabEvent, error)
}
