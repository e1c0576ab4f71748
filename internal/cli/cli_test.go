package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/harness"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

func init() {
	color.NoColor = true
}

// fakeArranger records the events it receives.
type fakeArranger struct {
	created    []primary.TabCreatedEvent
	removed    []primary.TabRemovedEvent
	activated  []primary.TabActivatedEvent
	reconciled []tabs.WindowID
	err        error
}

func (f *fakeArranger) TabCreated(ctx context.Context, event primary.TabCreatedEvent) (*primary.ArrangeResult, error) {
	f.created = append(f.created, event)
	if f.err != nil {
		return nil, f.err
	}
	return &primary.ArrangeResult{TabID: event.TabID, Outcome: primary.OutcomeMoved, Index: 1}, nil
}

func (f *fakeArranger) TabRemoved(ctx context.Context, event primary.TabRemovedEvent) (*primary.ArrangeResult, error) {
	f.removed = append(f.removed, event)
	if f.err != nil {
		return nil, f.err
	}
	return &primary.ArrangeResult{Outcome: primary.OutcomeNone, Index: -1}, nil
}

func (f *fakeArranger) TabActivated(ctx context.Context, event primary.TabActivatedEvent) error {
	f.activated = append(f.activated, event)
	return f.err
}

func (f *fakeArranger) Reconcile(ctx context.Context, windowID tabs.WindowID) (*primary.ReconcileResult, error) {
	f.reconciled = append(f.reconciled, windowID)
	if f.err != nil {
		return nil, f.err
	}
	return &primary.ReconcileResult{}, nil
}

func (f *fakeArranger) OpenTabAtEnd(ctx context.Context, req primary.OpenTabAtEndRequest) (*primary.OpenTabAtEndResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeArranger) ListTabs(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error) {
	return nil, nil
}

func arrangerOf(f *fakeArranger) arrangerFunc {
	return func() (primary.ArrangerService, error) { return f, nil }
}

// fakeInstaller records installed hooks and bindings.
type fakeInstaller struct {
	hooks    []secondary.Hook
	bindings []secondary.KeyBinding
	err      error
}

func (f *fakeInstaller) InstallHooks(ctx context.Context, hooks []secondary.Hook) error {
	if f.err != nil {
		return f.err
	}
	f.hooks = append(f.hooks, hooks...)
	return nil
}

func (f *fakeInstaller) InstallKeyBindings(ctx context.Context, bindings []secondary.KeyBinding) error {
	f.bindings = append(f.bindings, bindings...)
	return nil
}

func (f *fakeInstaller) UninstallHooks(ctx context.Context, hooks []secondary.Hook) error {
	return nil
}

func subcommandNames(cmd *cobra.Command) map[string]bool {
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	return names
}

func TestCommandStructure(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		subs []string
	}{
		{OptionsCmd(), []string{"show", "set", "reset", "language"}},
		{HookCmd(), []string{"created", "removed", "activated", "reconcile"}},
		{TmuxCmd(), []string{"install", "uninstall"}},
		{LogCmd(), []string{"prune"}},
		{ConfigCmd(), []string{"init", "show"}},
	}

	for _, tt := range tests {
		names := subcommandNames(tt.cmd)
		for _, want := range tt.subs {
			if !names[want] {
				t.Errorf("%s: subcommand %q not registered", tt.cmd.Name(), want)
			}
		}
		for _, sub := range tt.cmd.Commands() {
			if sub.Short == "" {
				t.Errorf("%s %s should have a Short description", tt.cmd.Name(), sub.Name())
			}
		}
	}
}

func TestHookCmdFlags(t *testing.T) {
	hook := HookCmd()
	for _, sub := range hook.Commands() {
		if sub.Flags().Lookup("window") == nil {
			t.Errorf("hook %s should accept --window", sub.Name())
		}
	}
	removed, _, err := hook.Find([]string{"removed"})
	if err != nil {
		t.Fatalf("find removed: %v", err)
	}
	if removed.Flags().Lookup("closing") == nil {
		t.Error("hook removed should accept --closing")
	}
}

func TestHookCreated_Dispatches(t *testing.T) {
	fake := &fakeArranger{}
	cmd := hookCreatedCmd(arrangerOf(fake))
	cmd.SetArgs([]string{"--window", "$1", "--tab", "@7"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.created) != 1 {
		t.Fatalf("expected 1 created event, got %d", len(fake.created))
	}
	if fake.created[0].TabID != "@7" || fake.created[0].WindowID != "$1" {
		t.Errorf("unexpected event: %+v", fake.created[0])
	}
}

func TestHookRemoved_PassesClosing(t *testing.T) {
	fake := &fakeArranger{}
	cmd := hookRemovedCmd(arrangerOf(fake))
	cmd.SetArgs([]string{"--window", "$1", "--tab", "@7", "--closing"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.removed) != 1 || !fake.removed[0].IsWindowClosing {
		t.Errorf("expected one removal flagged as window closing, got %+v", fake.removed)
	}
}

func TestHooks_FailOpen(t *testing.T) {
	ctx := context.Background()
	broken := func() (primary.ArrangerService, error) {
		return nil, errors.New("config_version is required")
	}
	failing := arrangerOf(&fakeArranger{err: errors.New("tmux exploded")})

	for _, arranger := range []arrangerFunc{broken, failing} {
		if err := runHookCreated(ctx, arranger, "$1", "@2"); err != nil {
			t.Errorf("created: expected nil, got %v", err)
		}
		if err := runHookRemoved(ctx, arranger, "$1", "@2", false); err != nil {
			t.Errorf("removed: expected nil, got %v", err)
		}
		if err := runHookActivated(ctx, arranger, "$1", "@2"); err != nil {
			t.Errorf("activated: expected nil, got %v", err)
		}
		if err := runHookReconcile(ctx, arranger, "$1"); err != nil {
			t.Errorf("reconcile: expected nil, got %v", err)
		}
	}
}

func TestHooks_MissingIDsSkipService(t *testing.T) {
	ctx := context.Background()
	fake := &fakeArranger{}

	_ = runHookCreated(ctx, arrangerOf(fake), "$1", "")
	_ = runHookRemoved(ctx, arrangerOf(fake), "", "@2", false)
	_ = runHookActivated(ctx, arrangerOf(fake), "$1", "")
	_ = runHookReconcile(ctx, arrangerOf(fake), "")

	if len(fake.created)+len(fake.removed)+len(fake.activated)+len(fake.reconciled) != 0 {
		t.Errorf("expected no service calls, got %+v", fake)
	}
}

func TestRunTmuxInstall(t *testing.T) {
	installer := &fakeInstaller{}
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runTmuxInstall(context.Background(), cmd, installer, "/usr/local/bin/tabmagnet", "T"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installer.hooks) != 3 {
		t.Errorf("expected 3 hooks, got %d", len(installer.hooks))
	}
	if len(installer.bindings) != 1 || installer.bindings[0].Key != "T" {
		t.Errorf("unexpected bindings: %+v", installer.bindings)
	}
	if !strings.Contains(out.String(), "after-new-window") {
		t.Errorf("output should list installed hooks, got:\n%s", out.String())
	}
}

func TestRunTmuxInstall_Error(t *testing.T) {
	installer := &fakeInstaller{err: errors.New("no server running")}
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runTmuxInstall(context.Background(), cmd, installer, "/bin/tabmagnet", "T")
	if err == nil || !strings.Contains(err.Error(), "failed to install hooks") {
		t.Errorf("expected wrapped install error, got %v", err)
	}
}

func TestSettingsRequestFromFlags(t *testing.T) {
	cmd := optionsSetCmd()
	if err := cmd.ParseFlags([]string{"--position", "end"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	req := settingsRequestFromFlags(cmd)
	if req.Position == nil || *req.Position != "end" {
		t.Errorf("Position = %v, want end", req.Position)
	}
	if req.CloseBehavior != nil || req.Language != nil {
		t.Error("unset flags should stay nil")
	}
}

func TestRequiredWindow(t *testing.T) {
	cmd := TabsCmd()
	if _, err := requiredWindow(cmd); err == nil {
		t.Error("expected error without --window")
	}
	if err := cmd.ParseFlags([]string{"--window", "$3"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	windowID, err := requiredWindow(cmd)
	if err != nil || windowID != "$3" {
		t.Errorf("requiredWindow = %q, %v", windowID, err)
	}
}

func TestSelectScenarios(t *testing.T) {
	all := harness.Scenarios()

	selected, err := selectScenarios(all, nil)
	if err != nil || len(selected) != len(all) {
		t.Errorf("no names should select all, got %d, %v", len(selected), err)
	}

	selected, err = selectScenarios(all, []string{"close-smart"})
	if err != nil || len(selected) != 1 || selected[0].Name != "close-smart" {
		t.Errorf("unexpected selection %+v, %v", selected, err)
	}

	if _, err := selectScenarios(all, []string{"nope"}); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestPrintResults(t *testing.T) {
	var out bytes.Buffer
	printResults(&out, []harness.Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false, Err: errors.New("active tab is t3, want t1")},
	})

	got := out.String()
	for _, want := range []string{"PASS  a", "FAIL  b", "active tab is t3", "1/2 passed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
