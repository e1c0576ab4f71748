// Package tmux wraps the tmux command line and the gotmux client.
//
// In tabmagnet terms a tmux session is a window and a tmux window is a tab.
// This package keeps tmux vocabulary; the adapter in internal/adapters/tmux
// does the translation.
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Errors reported by tmux for stale targets.
var (
	ErrSessionNotFound = errors.New("tmux session not found")
	ErrWindowNotFound  = errors.New("tmux window not found")
	ErrNoServer        = errors.New("tmux server not running")
)

// HookSlot is the hook array index tabmagnet owns. Using a fixed slot keeps
// user hooks intact and makes reinstalling idempotent.
const HookSlot = 42

// RunFunc executes a binary and returns its stdout, or an error carrying stderr.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client runs tmux commands.
type Client struct {
	binary string
	run    RunFunc
}

// NewClient creates a client for the given tmux binary.
func NewClient(binary string) *Client {
	if binary == "" {
		binary = "tmux"
	}
	return &Client{binary: binary, run: execRun}
}

// NewClientWithRunner creates a client with a custom runner.
func NewClientWithRunner(binary string, run RunFunc) *Client {
	c := NewClient(binary)
	c.run = run
	return c
}

// Run executes a tmux command and returns trimmed stdout.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	out, err := c.run(ctx, c.binary, args...)
	if err != nil {
		return "", classifyError(err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// ListWindows lists the windows of a session in tmux index order.
func (c *Client) ListWindows(ctx context.Context, session string) ([]WindowInfo, error) {
	out, err := c.Run(ctx, "list-windows", "-t", session, "-F", WindowFormat)
	if err != nil {
		return nil, err
	}
	return ParseWindows(out)
}

// DescribeWindow returns a single window by target.
func (c *Client) DescribeWindow(ctx context.Context, target string) (WindowInfo, error) {
	out, err := c.Run(ctx, "display-message", "-p", "-t", target, WindowFormat)
	if err != nil {
		return WindowInfo{}, err
	}
	windows, err := ParseWindows(out)
	if err != nil {
		return WindowInfo{}, err
	}
	if len(windows) != 1 {
		return WindowInfo{}, fmt.Errorf("%w: %s", ErrWindowNotFound, target)
	}
	return windows[0], nil
}

// MoveWindow moves source next to target, after it when after is set and
// before it otherwise. tmux shifts the other windows to make room.
func (c *Client) MoveWindow(ctx context.Context, source, target string, after bool) error {
	flag := "-b"
	if after {
		flag = "-a"
	}
	_, err := c.Run(ctx, "move-window", flag, "-s", source, "-t", target)
	return err
}

// SelectWindow makes target the current window of its session.
func (c *Client) SelectWindow(ctx context.Context, target string) error {
	_, err := c.Run(ctx, "select-window", "-t", target)
	return err
}

// SetHook installs a global hook in the tabmagnet slot.
func (c *Client) SetHook(ctx context.Context, name, command string) error {
	_, err := c.Run(ctx, "set-hook", "-g", hookTarget(name), command)
	return err
}

// UnsetHook removes the global hook in the tabmagnet slot.
func (c *Client) UnsetHook(ctx context.Context, name string) error {
	_, err := c.Run(ctx, "set-hook", "-gu", hookTarget(name))
	return err
}

// BindKey binds key in the prefix table to a background shell command.
func (c *Client) BindKey(ctx context.Context, key, command string) error {
	_, err := c.Run(ctx, "bind-key", key, "run-shell", "-b", command)
	return err
}

func hookTarget(name string) string {
	return fmt.Sprintf("%s[%d]", name, HookSlot)
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return out, nil
}

// classifyError maps tmux diagnostics to sentinel errors.
func classifyError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "can't find window"):
		return fmt.Errorf("%w: %s", ErrWindowNotFound, msg)
	case strings.Contains(msg, "can't find session"):
		return fmt.Errorf("%w: %s", ErrSessionNotFound, msg)
	case strings.Contains(msg, "no server running"), strings.Contains(msg, "error connecting to"):
		return fmt.Errorf("%w: %s", ErrNoServer, msg)
	default:
		return fmt.Errorf("tmux: %w", err)
	}
}
