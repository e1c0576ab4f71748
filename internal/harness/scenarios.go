package harness

import (
	"context"
	"fmt"

	"github.com/example/tabmagnet/internal/adapters/memory"
	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

var pages = []string{"https://example.com", "https://google.com", "https://github.com"}

// Scenarios returns the built-in scenarios.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:        "basic-positioning",
			Description: "a link opened from the active tab lands right of it",
			Run:         basicPositioning,
		},
		{
			Name:        "position-policies",
			Description: "left, start and end place the new tab accordingly",
			Run:         positionPolicies,
		},
		{
			Name:        "new-tab-page",
			Description: "an empty new tab without opener follows the previously active tab",
			Run:         newTabPage,
		},
		{
			Name:        "skip-ineligible",
			Description: "pinned, system and restored tabs are left alone",
			Run:         skipIneligible,
		},
		{
			Name:        "settings-round-trip",
			Description: "stored policies read back unchanged",
			Run:         settingsRoundTrip,
		},
		{
			Name:        "close-left",
			Description: "closing the active tab focuses its left neighbour",
			Run:         closeLeft,
		},
		{
			Name:        "close-smart",
			Description: "closing a child tab returns focus to its opener",
			Run:         closeSmart,
		},
		{
			Name:        "close-right",
			Description: "the right policy keeps the host's choice",
			Run:         closeRight,
		},
		{
			Name:        "close-unseen-background",
			Description: "closing a background tab the arranger never saw keeps focus",
			Run:         closeUnseenBackground,
		},
		{
			Name:        "close-two-unhandled",
			Description: "two closes missed while events were off still focus the surviving left neighbour",
			Run:         closeTwoUnhandled,
		},
		{
			Name:        "new-tab-at-end",
			Description: "the command opens a tab last regardless of policy",
			Run:         newTabAtEnd,
		},
	}
}

func basicPositioning(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 0)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionRight, tabs.CloseLeft); err != nil {
		return err
	}

	child, err := env.Host.OpenTab(env.Window, memory.OpenOptions{URL: "https://example.com/docs", OpenerID: layout[0].ID})
	if err != nil {
		return err
	}
	if err := env.Settle(ctx); err != nil {
		return err
	}

	if n := len(env.Order()); n != len(layout)+1 {
		return fmt.Errorf("expected %d tabs, got %d", len(layout)+1, n)
	}
	return expectIndex(env, child.ID, 1)
}

func positionPolicies(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 1)
	if err != nil {
		return err
	}
	opener := layout[1].ID

	cases := []struct {
		policy tabs.PositionPolicy
		want   func() int
	}{
		{tabs.PositionLeft, func() int { return env.IndexOf(opener) - 1 }},
		{tabs.PositionStart, func() int { return 0 }},
		{tabs.PositionEnd, func() int { return len(env.Order()) - 1 }},
	}
	for _, c := range cases {
		if err := env.SetPolicies(ctx, c.policy, tabs.CloseLeft); err != nil {
			return err
		}
		child, err := env.Host.OpenTab(env.Window, memory.OpenOptions{URL: "https://example.com/" + string(c.policy), OpenerID: opener})
		if err != nil {
			return err
		}
		if err := env.Settle(ctx); err != nil {
			return err
		}
		if err := expectIndex(env, child.ID, c.want()); err != nil {
			return fmt.Errorf("%s: %w", c.policy, err)
		}
	}
	return nil
}

func newTabPage(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 0)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionRight, tabs.CloseLeft); err != nil {
		return err
	}

	blank, err := env.Host.OpenTab(env.Window, memory.OpenOptions{URL: "chrome://newtab/", Active: true})
	if err != nil {
		return err
	}
	if err := env.Settle(ctx); err != nil {
		return err
	}
	if err := expectIndex(env, blank.ID, env.IndexOf(layout[0].ID)+1); err != nil {
		return err
	}
	return expectActive(env, blank.ID)
}

func skipIneligible(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 0)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionStart, tabs.CloseLeft); err != nil {
		return err
	}

	opened := []memory.OpenOptions{
		{URL: "https://example.com/pinned", OpenerID: layout[0].ID, Pinned: true},
		{URL: "chrome://settings/", OpenerID: layout[0].ID},
		{URL: "chrome-extension://abc/options.html", OpenerID: layout[0].ID},
		{URL: "https://restored.example"},
	}
	for _, opts := range opened {
		before := len(env.Order())
		tab, err := env.Host.OpenTab(env.Window, opts)
		if err != nil {
			return err
		}
		if err := env.Settle(ctx); err != nil {
			return err
		}
		if err := expectIndex(env, tab.ID, before); err != nil {
			return fmt.Errorf("%s: %w", opts.URL, err)
		}
	}
	return nil
}

func settingsRoundTrip(ctx context.Context, env *Env) error {
	if err := env.SetPolicies(ctx, tabs.PositionRight, tabs.CloseLeft); err != nil {
		return err
	}
	settings, err := env.Services.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings.Position != tabs.PositionRight || settings.CloseBehavior != tabs.CloseLeft {
		return fmt.Errorf("unexpected settings %+v", settings)
	}

	bogus := "sideways"
	if _, err := env.Services.Settings.UpdateSettings(ctx, primary.UpdateSettingsRequest{Position: &bogus}); err == nil {
		return fmt.Errorf("expected invalid position to be rejected")
	}
	return nil
}

func closeLeft(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 1)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionRight, tabs.CloseLeft); err != nil {
		return err
	}

	if err := env.Host.CloseTab(layout[1].ID); err != nil {
		return err
	}
	if err := env.Settle(ctx); err != nil {
		return err
	}
	return expectActive(env, layout[0].ID)
}

func closeSmart(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 0)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionEnd, tabs.CloseSmart); err != nil {
		return err
	}

	child, err := env.Host.OpenTab(env.Window, memory.OpenOptions{URL: "https://example.com/child", OpenerID: layout[0].ID, Active: true})
	if err != nil {
		return err
	}
	if err := env.Settle(ctx); err != nil {
		return err
	}
	if err := expectActive(env, child.ID); err != nil {
		return err
	}

	if err := env.Host.CloseTab(child.ID); err != nil {
		return err
	}
	if err := env.Settle(ctx); err != nil {
		return err
	}
	return expectActive(env, layout[0].ID)
}

func closeRight(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 1)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionRight, tabs.CloseRight); err != nil {
		return err
	}

	if err := env.Host.CloseTab(layout[1].ID); err != nil {
		return err
	}
	if err := env.Settle(ctx); err != nil {
		return err
	}
	return expectActive(env, layout[2].ID)
}

func closeUnseenBackground(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, pages, 2)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionRight, tabs.CloseLeft); err != nil {
		return err
	}

	env.Host.SetEventsEnabled(false)
	background, err := env.Host.OpenTab(env.Window, memory.OpenOptions{URL: "https://example.com/later", OpenerID: layout[0].ID})
	env.Host.SetEventsEnabled(true)
	if err != nil {
		return err
	}

	if err := env.Host.CloseTab(background.ID); err != nil {
		return err
	}
	if err := env.Settle(ctx); err != nil {
		return err
	}
	return expectActive(env, layout[2].ID)
}

func closeTwoUnhandled(ctx context.Context, env *Env) error {
	layout, err := env.Layout(ctx, append(pages[:len(pages):len(pages)], "https://example.org"), 2)
	if err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionRight, tabs.CloseLeft); err != nil {
		return err
	}

	env.Host.SetEventsEnabled(false)
	for _, closed := range []tabs.TabID{layout[1].ID, layout[2].ID} {
		if err := env.Host.CloseTab(closed); err != nil {
			env.Host.SetEventsEnabled(true)
			return err
		}
	}
	env.Host.SetEventsEnabled(true)

	if _, err := env.Services.Arranger.Reconcile(ctx, env.Window); err != nil {
		return err
	}
	return expectActive(env, layout[0].ID)
}

func newTabAtEnd(ctx context.Context, env *Env) error {
	if _, err := env.Layout(ctx, pages, 0); err != nil {
		return err
	}
	if err := env.SetPolicies(ctx, tabs.PositionStart, tabs.CloseLeft); err != nil {
		return err
	}

	env.Host.TriggerCommand(env.Window, secondary.CommandNewTabAtEnd)
	if err := env.Settle(ctx); err != nil {
		return err
	}

	order := env.Order()
	if len(order) != len(pages)+1 {
		return fmt.Errorf("expected %d tabs, got %d", len(pages)+1, len(order))
	}
	last := order[len(order)-1]
	if env.Active() != last {
		return fmt.Errorf("expected the new last tab %s to be active, active is %s", last, env.Active())
	}
	return nil
}

func expectIndex(env *Env, id tabs.TabID, want int) error {
	if got := env.IndexOf(id); got != want {
		return fmt.Errorf("tab %s at index %d, want %d (order %v)", id, got, want, env.Order())
	}
	return nil
}

func expectActive(env *Env, id tabs.TabID) error {
	if got := env.Active(); got != id {
		return fmt.Errorf("active tab is %s, want %s", got, id)
	}
	return nil
}
