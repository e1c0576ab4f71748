// Package tmux exposes a tmux server as a tab host. A session is a window
// and each tmux window is a tab.
package tmux

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/secondary"
	tmuxpkg "github.com/example/tabmagnet/internal/tmux"
)

// Commander is the subset of tmux.Client the host uses.
type Commander interface {
	ListWindows(ctx context.Context, session string) ([]tmuxpkg.WindowInfo, error)
	DescribeWindow(ctx context.Context, target string) (tmuxpkg.WindowInfo, error)
	MoveWindow(ctx context.Context, source, target string, after bool) error
	SelectWindow(ctx context.Context, target string) error
	SetHook(ctx context.Context, name, command string) error
	UnsetHook(ctx context.Context, name string) error
	BindKey(ctx context.Context, key, command string) error
}

// WindowCreator creates tmux windows.
type WindowCreator interface {
	NewWindow(target string, req tmuxpkg.NewWindowRequest) (string, error)
}

// Host implements secondary.TabHost and secondary.HookInstaller over tmux.
type Host struct {
	cmd     Commander
	creator WindowCreator
}

// NewHost creates a tmux host.
func NewHost(cmd Commander, creator WindowCreator) *Host {
	return &Host{cmd: cmd, creator: creator}
}

// GetTab implements secondary.TabHost.
func (h *Host) GetTab(ctx context.Context, id tabs.TabID) (*tabs.TabRecord, error) {
	info, err := h.cmd.DescribeWindow(ctx, string(id))
	if err != nil {
		return nil, mapError(err)
	}
	records, err := h.QueryTabs(ctx, tabs.WindowID(info.SessionID))
	if err != nil {
		return nil, err
	}
	record, ok := tabs.FindByID(records, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", secondary.ErrTabNotFound, id)
	}
	return &record, nil
}

// QueryTabs implements secondary.TabHost. tmux indices are renumbered to
// dense positions, so base-index and gaps do not leak out.
func (h *Host) QueryTabs(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error) {
	windows, err := h.cmd.ListWindows(ctx, string(windowID))
	if err != nil {
		return nil, mapSessionError(err)
	}
	records := make([]tabs.TabRecord, 0, len(windows))
	for _, w := range windows {
		records = append(records, tabs.TabRecord{
			ID:       tabs.TabID(w.ID),
			WindowID: windowID,
			Index:    w.Index,
			OpenerID: tabs.TabID(w.Opener),
			Active:   w.Active,
			Pinned:   w.Pinned,
		})
	}
	return tabs.Renumber(records), nil
}

// ActiveTab implements secondary.TabHost.
func (h *Host) ActiveTab(ctx context.Context, windowID tabs.WindowID) (*tabs.TabRecord, error) {
	records, err := h.QueryTabs(ctx, windowID)
	if err != nil {
		return nil, err
	}
	if active, ok := tabs.FindActive(records); ok {
		return &active, nil
	}
	return nil, nil
}

// Move implements secondary.TabHost.
func (h *Host) Move(ctx context.Context, id tabs.TabID, index int) error {
	record, err := h.GetTab(ctx, id)
	if err != nil {
		return err
	}
	records, err := h.QueryTabs(ctx, record.WindowID)
	if err != nil {
		return err
	}
	target, after, ok, err := moveTarget(records, id, index)
	if err != nil || !ok {
		return err
	}
	if err := h.cmd.MoveWindow(ctx, string(id), string(target), after); err != nil {
		return mapError(err)
	}
	return nil
}

// Activate implements secondary.TabHost.
func (h *Host) Activate(ctx context.Context, id tabs.TabID) error {
	if err := h.cmd.SelectWindow(ctx, string(id)); err != nil {
		return mapError(err)
	}
	return nil
}

// CreateTab implements secondary.TabHost. The URL is used as the start
// directory of the new window.
func (h *Host) CreateTab(ctx context.Context, req secondary.CreateTabRequest) (*tabs.TabRecord, error) {
	options := map[string]string{}
	if req.OpenerID != "" {
		options[tmuxpkg.OptionOpener] = string(req.OpenerID)
	}
	id, err := h.creator.NewWindow(string(req.WindowID), tmuxpkg.NewWindowRequest{
		StartDirectory: req.URL,
		Attach:         req.Active,
		Options:        options,
	})
	if err != nil {
		return nil, mapSessionError(err)
	}
	return h.GetTab(ctx, tabs.TabID(id))
}

// InstallHooks implements secondary.HookInstaller.
func (h *Host) InstallHooks(ctx context.Context, hooks []secondary.Hook) error {
	for _, hook := range hooks {
		if err := h.cmd.SetHook(ctx, hook.Name, hook.Command); err != nil {
			return fmt.Errorf("failed to install hook %s: %w", hook.Name, err)
		}
	}
	return nil
}

// InstallKeyBindings implements secondary.HookInstaller.
func (h *Host) InstallKeyBindings(ctx context.Context, bindings []secondary.KeyBinding) error {
	for _, b := range bindings {
		if err := h.cmd.BindKey(ctx, b.Key, b.Command); err != nil {
			return fmt.Errorf("failed to bind key %s: %w", b.Key, err)
		}
	}
	return nil
}

// UninstallHooks implements secondary.HookInstaller.
func (h *Host) UninstallHooks(ctx context.Context, hooks []secondary.Hook) error {
	var errs []error
	for _, hook := range hooks {
		if err := h.cmd.UnsetHook(ctx, hook.Name); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove hook %s: %w", hook.Name, err))
		}
	}
	return errors.Join(errs...)
}

// moveTarget translates a dense destination index into a tmux move relative
// to a neighbour. ok is false when the tab is already in place.
func moveTarget(records []tabs.TabRecord, id tabs.TabID, index int) (target tabs.TabID, after bool, ok bool, err error) {
	current, found := tabs.FindByID(records, id)
	if !found {
		return "", false, false, fmt.Errorf("%w: %s", secondary.ErrTabNotFound, id)
	}
	if index < secondary.MoveToEnd {
		return "", false, false, fmt.Errorf("invalid index %d", index)
	}

	rest := make([]tabs.TabRecord, 0, len(records))
	for _, r := range tabs.SortByIndex(records) {
		if r.ID != id {
			rest = append(rest, r)
		}
	}
	if len(rest) == 0 {
		return "", false, false, nil
	}
	if index == secondary.MoveToEnd || index >= len(rest) {
		if current.Index == len(rest) {
			return "", false, false, nil
		}
		return rest[len(rest)-1].ID, true, true, nil
	}
	if current.Index == index {
		return "", false, false, nil
	}
	return rest[index].ID, false, true, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, tmuxpkg.ErrWindowNotFound):
		return fmt.Errorf("%w: %v", secondary.ErrTabNotFound, err)
	case errors.Is(err, tmuxpkg.ErrSessionNotFound):
		return fmt.Errorf("%w: %v", secondary.ErrWindowNotFound, err)
	}
	return err
}

// mapSessionError is mapError for commands that target a session, where tmux
// reports a missing session id as a missing window.
func mapSessionError(err error) error {
	if errors.Is(err, tmuxpkg.ErrWindowNotFound) || errors.Is(err, tmuxpkg.ErrSessionNotFound) {
		return fmt.Errorf("%w: %v", secondary.ErrWindowNotFound, err)
	}
	return err
}

// Ensure Host implements the interfaces
var (
	_ secondary.TabHost       = (*Host)(nil)
	_ secondary.HookInstaller = (*Host)(nil)
)
