// Package harness runs scripted tab scenarios against the in-memory host.
// Every scenario gets a fresh host and database, acts like a user, and
// checks the strip after the arranger has handled the resulting events.
package harness

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tabmagnet/internal/adapters/memory"
	"github.com/example/tabmagnet/internal/app"
	"github.com/example/tabmagnet/internal/config"
	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/db"
	"github.com/example/tabmagnet/internal/logx"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/wire"
)

// Env is the world a scenario runs in.
type Env struct {
	Host     *memory.Host
	Services *wire.Services
	Window   tabs.WindowID

	database *sql.DB
}

// NewEnv creates a host with one empty window and services over an
// in-memory database. The settle delay is disabled.
func NewEnv(cfg config.Config) (*Env, error) {
	database, err := db.Open(":memory:")
	if err != nil {
		return nil, err
	}
	cfg.SettleDelayMS = 0

	host := memory.NewHost()
	env := &Env{
		Host:     host,
		Services: wire.Build(cfg, host, database),
		Window:   host.NewWindow(),
		database: database,
	}
	return env, nil
}

// Close releases the database.
func (e *Env) Close() error {
	return e.database.Close()
}

// Layout opens tabs without notifying the arranger, activates the tab at
// active, and records the starting snapshot.
func (e *Env) Layout(ctx context.Context, urls []string, active int) ([]tabs.TabRecord, error) {
	e.Host.SetEventsEnabled(false)
	var opened []tabs.TabRecord
	for _, url := range urls {
		r, err := e.Host.OpenTab(e.Window, memory.OpenOptions{URL: url})
		if err != nil {
			e.Host.SetEventsEnabled(true)
			return nil, err
		}
		opened = append(opened, r)
	}
	if active >= 0 && active < len(opened) {
		if err := e.Host.SelectTab(opened[active].ID); err != nil {
			e.Host.SetEventsEnabled(true)
			return nil, err
		}
	}
	e.Host.SetEventsEnabled(true)

	if _, err := e.Services.Arranger.Reconcile(ctx, e.Window); err != nil {
		return nil, err
	}
	return e.Host.Snapshot(e.Window), nil
}

// Settle dispatches queued host events until none remain. Handlers may queue
// further events, which are handled in the same call.
func (e *Env) Settle(ctx context.Context) error {
	for {
		event, ok := e.Host.TryNext()
		if !ok {
			return nil
		}
		if err := app.Dispatch(ctx, e.Services.Arranger, event); err != nil {
			return fmt.Errorf("%s event for %s: %w", event.Kind, event.TabID, err)
		}
	}
}

// SetPolicies stores the two policies.
func (e *Env) SetPolicies(ctx context.Context, position tabs.PositionPolicy, closeBehavior tabs.CloseBehaviorPolicy) error {
	p, c := string(position), string(closeBehavior)
	_, err := e.Services.Settings.UpdateSettings(ctx, primary.UpdateSettingsRequest{Position: &p, CloseBehavior: &c})
	return err
}

// Order returns the tab ids of the window left to right.
func (e *Env) Order() []tabs.TabID {
	var ids []tabs.TabID
	for _, r := range e.Host.Snapshot(e.Window) {
		ids = append(ids, r.ID)
	}
	return ids
}

// Active returns the active tab id.
func (e *Env) Active() tabs.TabID {
	active, _ := tabs.FindActive(e.Host.Snapshot(e.Window))
	return active.ID
}

// IndexOf returns the position of id, or -1.
func (e *Env) IndexOf(id tabs.TabID) int {
	r, ok := tabs.FindByID(e.Host.Snapshot(e.Window), id)
	if !ok {
		return -1
	}
	return r.Index
}

// Scenario is a named user story.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string
	Passed   bool
	Err      error
	Duration time.Duration
}

// Run executes scenarios in order, each in a fresh Env.
func Run(ctx context.Context, cfg config.Config, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		start := time.Now()
		err := runOne(ctx, cfg, sc)
		if err != nil {
			logx.Ctx(ctx).Debug("scenario failed", "scenario", sc.Name, "err", err)
		}
		results = append(results, Result{
			Name:     sc.Name,
			Passed:   err == nil,
			Err:      err,
			Duration: time.Since(start),
		})
	}
	return results
}

func runOne(ctx context.Context, cfg config.Config, sc Scenario) error {
	env, err := NewEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()
	return sc.Run(ctx, env)
}

// Passed counts passing results.
func Passed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Passed {
			n++
		}
	}
	return n
}
