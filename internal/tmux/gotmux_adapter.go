package tmux

import (
	"fmt"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// GotmuxAdapter wraps the gotmux library for session lookups and window creation.
type GotmuxAdapter struct {
	tmux *gotmux.Tmux
}

// NewGotmuxAdapter creates a new gotmux adapter
func NewGotmuxAdapter() (*GotmuxAdapter, error) {
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to create tmux client: %w", err)
	}
	return &GotmuxAdapter{
		tmux: tmux,
	}, nil
}

// NewWindowRequest describes a window created by NewWindow.
type NewWindowRequest struct {
	StartDirectory string
	Attach         bool
	Options        map[string]string
}

// GetSession returns a gotmux Session by id or name, or nil if not found.
func (g *GotmuxAdapter) GetSession(target string) (*gotmux.Session, error) {
	sessions, err := g.tmux.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Id == target || s.Name == target {
			return s, nil
		}
	}
	return nil, nil
}

// NewWindow creates a window in the target session, sets the requested window
// options and returns the new window id.
func (g *GotmuxAdapter) NewWindow(target string, req NewWindowRequest) (string, error) {
	session, err := g.GetSession(target)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, target)
	}

	window, err := session.NewWindow(&gotmux.NewWindowOptions{
		StartDirectory: req.StartDirectory,
		DoNotAttach:    !req.Attach,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create window in %s: %w", target, err)
	}

	for key, value := range req.Options {
		if err := window.SetOption(key, value); err != nil {
			return "", fmt.Errorf("failed to set %s on %s: %w", key, window.Id, err)
		}
	}
	return window.Id, nil
}
