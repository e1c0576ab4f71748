// Package memory provides an in-process tab host with browser tab strip
// semantics. It backs tests, the scenario harness and the simulate command.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

type tab struct {
	id       tabs.TabID
	openerID tabs.TabID
	pinned   bool
	url      string
}

type window struct {
	id     tabs.WindowID
	tabs   []*tab // left to right
	active tabs.TabID
}

// OpenOptions describes a tab opened by a simulated user action.
type OpenOptions struct {
	URL      string
	OpenerID tabs.TabID
	Pinned   bool
	Active   bool
}

// Host is a simulated tab host. Every structural change queues the
// notifications a browser would dispatch; they are delivered through Next.
type Host struct {
	mu       sync.Mutex
	windows  map[tabs.WindowID]*window
	order    []tabs.WindowID
	nextTab  int
	nextWin  int
	queue    []secondary.TabEvent
	signal   chan struct{}
	closed   bool
	emitting bool
}

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{
		windows:  make(map[tabs.WindowID]*window),
		signal:   make(chan struct{}, 1),
		emitting: true,
	}
}

// SetEventsEnabled turns event queueing on or off. Setup code disables it to
// build a window layout without triggering handlers.
func (h *Host) SetEventsEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.emitting = enabled
}

// NewWindow opens an empty window.
func (h *Host) NewWindow() tabs.WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextWin++
	id := tabs.WindowID(fmt.Sprintf("w%d", h.nextWin))
	h.windows[id] = &window{id: id}
	h.order = append(h.order, id)
	return id
}

// Windows lists open windows in creation order.
func (h *Host) Windows() []tabs.WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]tabs.WindowID, len(h.order))
	copy(result, h.order)
	return result
}

// OpenTab simulates a user opening a tab. The tab is appended to the strip.
func (h *Host) OpenTab(windowID tabs.WindowID, opts OpenOptions) (tabs.TabRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.openLocked(windowID, opts)
}

// CloseTab simulates a user closing a tab. When the active tab closes, focus
// moves to the right neighbour, or to the left one at the end of the strip.
func (h *Host) CloseTab(id tabs.TabID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, pos, err := h.findLocked(id)
	if err != nil {
		return err
	}
	w.tabs = append(w.tabs[:pos], w.tabs[pos+1:]...)
	h.emitLocked(secondary.TabEvent{Kind: secondary.EventRemoved, TabID: id, WindowID: w.id})

	if w.active != id {
		return nil
	}
	w.active = ""
	if len(w.tabs) == 0 {
		return nil
	}
	next := pos
	if next >= len(w.tabs) {
		next = len(w.tabs) - 1
	}
	h.activateLocked(w, w.tabs[next].id)
	return nil
}

// CloseWindow closes every tab of a window, flagging the removals as part of
// a window close.
func (h *Host) CloseWindow(windowID tabs.WindowID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.windows[windowID]
	if !ok {
		return fmt.Errorf("%w: %s", secondary.ErrWindowNotFound, windowID)
	}
	for _, t := range w.tabs {
		h.emitLocked(secondary.TabEvent{Kind: secondary.EventRemoved, TabID: t.id, WindowID: windowID, IsWindowClosing: true})
	}
	delete(h.windows, windowID)
	for i, id := range h.order {
		if id == windowID {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return nil
}

// SelectTab simulates a user clicking a tab.
func (h *Host) SelectTab(id tabs.TabID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, _, err := h.findLocked(id)
	if err != nil {
		return err
	}
	h.activateLocked(w, id)
	return nil
}

// TriggerCommand simulates a keyboard shortcut bound to a named command.
func (h *Host) TriggerCommand(windowID tabs.WindowID, command string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.emitLocked(secondary.TabEvent{Kind: secondary.EventCommand, WindowID: windowID, Command: command})
}

// Snapshot returns a window's records ordered by index.
func (h *Host) Snapshot(windowID tabs.WindowID) []tabs.TabRecord {
	records, _ := h.QueryTabs(context.Background(), windowID)
	return records
}

// GetTab implements secondary.TabHost.
func (h *Host) GetTab(ctx context.Context, id tabs.TabID) (*tabs.TabRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, pos, err := h.findLocked(id)
	if err != nil {
		return nil, err
	}
	r := h.recordLocked(w, pos)
	return &r, nil
}

// QueryTabs implements secondary.TabHost.
func (h *Host) QueryTabs(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", secondary.ErrWindowNotFound, windowID)
	}
	records := make([]tabs.TabRecord, len(w.tabs))
	for i := range w.tabs {
		records[i] = h.recordLocked(w, i)
	}
	return records, nil
}

// ActiveTab implements secondary.TabHost.
func (h *Host) ActiveTab(ctx context.Context, windowID tabs.WindowID) (*tabs.TabRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", secondary.ErrWindowNotFound, windowID)
	}
	for i, t := range w.tabs {
		if t.id == w.active {
			r := h.recordLocked(w, i)
			return &r, nil
		}
	}
	return nil, nil
}

// Move implements secondary.TabHost. Out of range indices clamp to the end.
func (h *Host) Move(ctx context.Context, id tabs.TabID, index int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, pos, err := h.findLocked(id)
	if err != nil {
		return err
	}
	moving := w.tabs[pos]
	rest := append(append([]*tab{}, w.tabs[:pos]...), w.tabs[pos+1:]...)
	if index == secondary.MoveToEnd || index > len(rest) {
		index = len(rest)
	}
	if index < 0 {
		return fmt.Errorf("invalid index %d", index)
	}
	w.tabs = append(rest[:index], append([]*tab{moving}, rest[index:]...)...)
	return nil
}

// Activate implements secondary.TabHost.
func (h *Host) Activate(ctx context.Context, id tabs.TabID) error {
	return h.SelectTab(id)
}

// CreateTab implements secondary.TabHost.
func (h *Host) CreateTab(ctx context.Context, req secondary.CreateTabRequest) (*tabs.TabRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, err := h.openLocked(req.WindowID, OpenOptions{URL: req.URL, OpenerID: req.OpenerID, Active: req.Active})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Next implements secondary.EventSource.
func (h *Host) Next(ctx context.Context) (secondary.TabEvent, error) {
	for {
		h.mu.Lock()
		if len(h.queue) > 0 {
			event := h.queue[0]
			h.queue = h.queue[1:]
			h.mu.Unlock()
			return event, nil
		}
		closed := h.closed
		h.mu.Unlock()
		if closed {
			return secondary.TabEvent{}, secondary.ErrSourceClosed
		}

		select {
		case <-ctx.Done():
			return secondary.TabEvent{}, ctx.Err()
		case <-h.signal:
		}
	}
}

// Pending returns the number of queued events.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// TryNext pops one queued event without blocking.
func (h *Host) TryNext() (secondary.TabEvent, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return secondary.TabEvent{}, false
	}
	event := h.queue[0]
	h.queue = h.queue[1:]
	return event, true
}

// Close stops event delivery once the queue is drained.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.notify()
}

// Helper methods

func (h *Host) openLocked(windowID tabs.WindowID, opts OpenOptions) (tabs.TabRecord, error) {
	w, ok := h.windows[windowID]
	if !ok {
		return tabs.TabRecord{}, fmt.Errorf("%w: %s", secondary.ErrWindowNotFound, windowID)
	}
	h.nextTab++
	t := &tab{
		id:       tabs.TabID(fmt.Sprintf("t%d", h.nextTab)),
		openerID: opts.OpenerID,
		pinned:   opts.Pinned,
		url:      opts.URL,
	}
	w.tabs = append(w.tabs, t)
	h.emitLocked(secondary.TabEvent{Kind: secondary.EventCreated, TabID: t.id, WindowID: windowID})
	if opts.Active || w.active == "" {
		h.activateLocked(w, t.id)
	}
	return h.recordLocked(w, len(w.tabs)-1), nil
}

func (h *Host) activateLocked(w *window, id tabs.TabID) {
	if w.active == id {
		return
	}
	w.active = id
	h.emitLocked(secondary.TabEvent{Kind: secondary.EventActivated, TabID: id, WindowID: w.id})
}

func (h *Host) findLocked(id tabs.TabID) (*window, int, error) {
	for _, w := range h.windows {
		for i, t := range w.tabs {
			if t.id == id {
				return w, i, nil
			}
		}
	}
	return nil, 0, fmt.Errorf("%w: %s", secondary.ErrTabNotFound, id)
}

func (h *Host) recordLocked(w *window, pos int) tabs.TabRecord {
	t := w.tabs[pos]
	return tabs.TabRecord{
		ID:       t.id,
		WindowID: w.id,
		Index:    pos,
		OpenerID: t.openerID,
		Active:   t.id == w.active,
		Pinned:   t.pinned,
		URL:      t.url,
	}
}

func (h *Host) emitLocked(event secondary.TabEvent) {
	if !h.emitting {
		return
	}
	h.queue = append(h.queue, event)
	h.notify()
}

func (h *Host) notify() {
	select {
	case h.signal <- struct{}{}:
	default:
	}
}

// Ensure Host implements the interfaces
var (
	_ secondary.TabHost     = (*Host)(nil)
	_ secondary.EventSource = (*Host)(nil)
)
