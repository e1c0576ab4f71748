package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/tabmagnet/internal/core/placement"
	"github.com/example/tabmagnet/internal/core/successor"
	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/logx"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

// DefaultSettleDelay is how long TabCreated waits for the host to finish
// initializing a tab before re-fetching it.
const DefaultSettleDelay = 50 * time.Millisecond

// SettingsReader provides the settings snapshot used for one event.
type SettingsReader interface {
	GetSettings(ctx context.Context) (tabs.Settings, error)
}

// ArrangerConfig tunes the event adapters.
type ArrangerConfig struct {
	SettleDelay time.Duration
	NewTabURLs  []string // empty means placement.DefaultNewTabURLs
}

// ArrangerServiceImpl implements the ArrangerService interface.
type ArrangerServiceImpl struct {
	host     secondary.TabHost
	state    secondary.TabStateRepository
	settings SettingsReader
	executor EffectExecutor
	activity secondary.ActivityLog // optional
	config   ArrangerConfig
	locks    *windowLocks
}

// NewArrangerService creates a new ArrangerService with injected dependencies.
func NewArrangerService(
	host secondary.TabHost,
	state secondary.TabStateRepository,
	settings SettingsReader,
	executor EffectExecutor,
	activity secondary.ActivityLog,
	config ArrangerConfig,
) *ArrangerServiceImpl {
	if config.SettleDelay < 0 {
		config.SettleDelay = 0
	}
	return &ArrangerServiceImpl{
		host:     host,
		state:    state,
		settings: settings,
		executor: executor,
		activity: activity,
		config:   config,
		locks:    newWindowLocks(),
	}
}

// TabCreated places a new tab according to the position policy.
func (s *ArrangerServiceImpl) TabCreated(ctx context.Context, event primary.TabCreatedEvent) (*primary.ArrangeResult, error) {
	ctx = logx.ContextWithWindowTab(ctx, event.WindowID, event.TabID)
	log := logx.Ctx(ctx)

	unlock := s.locks.lock(event.WindowID)
	defer unlock()

	// 1. Let the host settle, then re-fetch the authoritative record
	if err := sleepCtx(ctx, s.config.SettleDelay); err != nil {
		return nil, err
	}
	tab, err := s.host.GetTab(ctx, event.TabID)
	if err != nil {
		if secondary.IsStaleReference(err) {
			log.Debug("new tab closed before placement", "err", err)
			return skipped(event.TabID, "tab closed before placement"), nil
		}
		return nil, fmt.Errorf("failed to fetch new tab: %w", err)
	}
	windowID := tab.WindowID
	defer s.refresh(ctx, windowID)

	// 2. Tabs opened by the end command are already placed
	explicit, err := s.state.IsExplicit(ctx, tab.ID)
	if err != nil {
		log.Warn("failed to read explicit placement mark", "err", err)
	}
	if explicit {
		if err := s.state.ClearExplicit(ctx, tab.ID); err != nil {
			log.Warn("failed to clear explicit placement mark", "err", err)
		}
		return skipped(tab.ID, "placed by command"), nil
	}

	// 3. Guard check
	if guard := placement.CheckEligibility(*tab, s.config.NewTabURLs); !guard.Allowed {
		log.Debug("tab not eligible for placement", "reason", guard.Reason)
		return skipped(tab.ID, guard.Reason), nil
	}

	// 4. Gather inputs
	settings := s.readSettings(ctx)
	input := placement.PlanInput{
		NewTab:            *tab,
		OpenerTab:         s.lookupOpener(ctx, *tab),
		ActiveTabFallback: s.lookupActiveFallback(ctx, *tab),
		Policy:            settings.Position,
	}

	// 5. Generate and execute plan
	plan := placement.GeneratePlan(input)
	result := &primary.ArrangeResult{
		TabID:   tab.ID,
		Outcome: primary.OutcomeNone,
		Index:   plan.TargetIndex,
		Reason:  plan.Reason,
	}
	effs := plan.Effects()
	if len(effs) == 0 {
		log.Debug("placement decided no move", "reason", plan.Reason)
		return result, nil
	}
	if err := s.executor.Execute(ctx, effs); err != nil {
		log.Warn("placement failed", "policy", string(settings.Position), "err", err)
		result.Reason = fmt.Sprintf("%s (failed: %v)", plan.Reason, err)
		return result, nil
	}
	log.Info("tab placed", "policy", string(settings.Position), "index", plan.TargetIndex)
	result.Outcome = primary.OutcomeMoved
	return result, nil
}

// TabRemoved chooses the next active tab according to the close behavior.
func (s *ArrangerServiceImpl) TabRemoved(ctx context.Context, event primary.TabRemovedEvent) (*primary.ArrangeResult, error) {
	ctx = logx.ContextWithWindowTab(ctx, event.WindowID, event.TabID)

	unlock := s.locks.lock(event.WindowID)
	defer unlock()

	if err := s.state.ClearExplicit(ctx, event.TabID); err != nil {
		logx.Ctx(ctx).Warn("failed to clear explicit placement mark", "err", err)
	}

	if event.IsWindowClosing {
		if err := s.state.DeleteFocus(ctx, event.WindowID); err != nil {
			logx.Ctx(ctx).Warn("failed to forget window", "err", err)
		}
		return none(event.TabID, "window closing"), nil
	}

	focus, err := s.state.GetFocus(ctx, event.WindowID)
	if err != nil {
		logx.Ctx(ctx).Warn("failed to read window snapshot", "err", err)
	}
	result, err := s.handleRemoval(ctx, event.WindowID, event.TabID, focus, s.readSettings(ctx))
	s.refresh(ctx, event.WindowID)
	return result, err
}

// handleRemoval runs the successor decision for one closed tab. The caller
// holds the window lock and refreshes the snapshot afterwards.
func (s *ArrangerServiceImpl) handleRemoval(ctx context.Context, windowID tabs.WindowID, closedID tabs.TabID, focus *secondary.WindowFocusRecord, settings tabs.Settings) (*primary.ArrangeResult, error) {
	log := logx.WithWindowTab(ctx, windowID, closedID)

	if settings.CloseBehavior == tabs.CloseRight {
		return none(closedID, "close behavior right: host default"), nil
	}

	remaining, err := s.host.QueryTabs(ctx, windowID)
	if err != nil {
		if secondary.IsStaleReference(err) {
			log.Debug("window gone after tab removal", "err", err)
			return none(closedID, "window gone"), nil
		}
		return nil, fmt.Errorf("failed to query remaining tabs: %w", err)
	}

	input := closedTabInput(closedID, focus, remaining)
	plan := successor.GeneratePlan(successor.PlanInput{
		WindowID: windowID,
		ClosedID: closedID,
		Input:    input,
		Policy:   settings.CloseBehavior,
	})

	result := none(closedID, plan.Reason)
	effs := plan.Effects()
	if len(effs) == 0 {
		log.Debug("successor decided host default", "reason", plan.Reason)
		return result, nil
	}
	if err := s.executor.Execute(ctx, effs); err != nil {
		log.Warn("activation failed", "policy", string(settings.CloseBehavior), "err", err)
		result.Reason = fmt.Sprintf("%s (failed: %v)", plan.Reason, err)
		return result, nil
	}
	log.Info("successor activated", "policy", string(settings.CloseBehavior), "target", string(plan.TargetID))
	result.TabID = plan.TargetID
	result.Outcome = primary.OutcomeActivated
	return result, nil
}

// closedTabInput reconstructs what is known about a closed tab.
// The snapshot knows its former position, opener and focus. A tab the
// snapshot never saw only took focus with it when the snapshot's active
// tab is gone too; then the host's current active tab stands in.
func closedTabInput(closedID tabs.TabID, focus *secondary.WindowFocusRecord, remaining []tabs.TabRecord) successor.SuccessorInput {
	input := successor.SuccessorInput{Remaining: remaining}
	if focus != nil {
		if closed, ok := tabs.FindByID(focus.Tabs, closedID); ok {
			input.ClosedIndex = survivingIndex(focus.Tabs, closed, remaining)
			input.ClosedOpenerID = closed.OpenerID
			input.ClosedWasActive = focus.ActiveTabID == closedID
			return input
		}
		if focus.ActiveTabID != "" {
			if _, ok := tabs.FindByID(remaining, focus.ActiveTabID); ok {
				return input
			}
		}
	}
	if active, ok := tabs.FindActive(remaining); ok {
		input.ClosedIndex = active.Index
		input.ClosedWasActive = true
	}
	return input
}

// survivingIndex maps a closed tab's snapshot position onto the current
// strip: it is the slot right after the nearest surviving tab that stood
// to its left, or 0 when none did.
func survivingIndex(snapshot []tabs.TabRecord, closed tabs.TabRecord, remaining []tabs.TabRecord) int {
	ordered := tabs.SortByIndex(snapshot)
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].Index >= closed.Index {
			continue
		}
		if current, ok := tabs.FindByID(remaining, ordered[i].ID); ok {
			return current.Index + 1
		}
	}
	return 0
}

// TabActivated records a focus change in the window snapshot.
func (s *ArrangerServiceImpl) TabActivated(ctx context.Context, event primary.TabActivatedEvent) error {
	ctx = logx.ContextWithWindowTab(ctx, event.WindowID, event.TabID)
	log := logx.Ctx(ctx)

	unlock := s.locks.lock(event.WindowID)
	defer unlock()

	focus, err := s.state.GetFocus(ctx, event.WindowID)
	if err != nil {
		return fmt.Errorf("failed to read window snapshot: %w", err)
	}
	current, err := s.host.QueryTabs(ctx, event.WindowID)
	if err != nil {
		if secondary.IsStaleReference(err) {
			return nil
		}
		return fmt.Errorf("failed to query tabs: %w", err)
	}

	// Focus moved because the active tab closed. Keep the snapshot as it was
	// so the removal handler still sees which tab held focus.
	if focus != nil && focus.ActiveTabID != "" && focus.ActiveTabID != event.TabID {
		if _, ok := tabs.FindByID(current, focus.ActiveTabID); !ok {
			log.Debug("previous active tab is gone, waiting for removal", "previous", string(focus.ActiveTabID))
			return nil
		}
	}

	// Events can trail the host; its own focus wins over the event's tab.
	activeID := event.TabID
	if active, ok := tabs.FindActive(current); ok {
		activeID = active.ID
	}
	return s.saveSnapshot(ctx, event.WindowID, focus, current, activeID)
}

// Reconcile handles tabs missing from the host that the snapshot still lists.
func (s *ArrangerServiceImpl) Reconcile(ctx context.Context, windowID tabs.WindowID) (*primary.ReconcileResult, error) {
	ctx = logx.ContextWithWindowTab(ctx, windowID, "")
	log := logx.Ctx(ctx)

	unlock := s.locks.lock(windowID)
	defer unlock()

	result := &primary.ReconcileResult{}
	focus, err := s.state.GetFocus(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("failed to read window snapshot: %w", err)
	}

	current, err := s.host.QueryTabs(ctx, windowID)
	if err != nil {
		if !secondary.IsStaleReference(err) {
			return nil, fmt.Errorf("failed to query tabs: %w", err)
		}
		// The whole window went away.
		if focus != nil {
			for _, t := range focus.Tabs {
				result.Removed = append(result.Removed, t.ID)
			}
		}
		if err := s.state.DeleteFocus(ctx, windowID); err != nil {
			log.Warn("failed to forget window", "err", err)
		}
		return result, nil
	}

	if focus == nil {
		s.refresh(ctx, windowID)
		return result, nil
	}

	settings := s.readSettings(ctx)
	for _, known := range tabs.SortByIndex(focus.Tabs) {
		if _, ok := tabs.FindByID(current, known.ID); ok {
			continue
		}
		result.Removed = append(result.Removed, known.ID)
		if err := s.state.ClearExplicit(ctx, known.ID); err != nil {
			log.Warn("failed to clear explicit placement mark", "tab", string(known.ID), "err", err)
		}
		// Only the tab that held focus can change the successor.
		if known.ID != focus.ActiveTabID {
			continue
		}
		res, err := s.handleRemoval(ctx, windowID, known.ID, focus, settings)
		if err != nil {
			log.Warn("removal handling failed", "tab", string(known.ID), "err", err)
			continue
		}
		result.Results = append(result.Results, res)
	}

	s.refresh(ctx, windowID)
	if len(result.Removed) > 0 {
		log.Debug("reconciled window", "removed", len(result.Removed))
	}
	return result, nil
}

// OpenTabAtEnd opens a tab and moves it to the last position of its window,
// independent of the position policy.
func (s *ArrangerServiceImpl) OpenTabAtEnd(ctx context.Context, req primary.OpenTabAtEndRequest) (*primary.OpenTabAtEndResponse, error) {
	ctx = logx.ContextWithWindowTab(ctx, req.WindowID, "")
	log := logx.Ctx(ctx)

	unlock := s.locks.lock(req.WindowID)
	defer unlock()

	createReq := secondary.CreateTabRequest{
		WindowID: req.WindowID,
		URL:      req.URL,
		Active:   true,
	}
	if active, err := s.host.ActiveTab(ctx, req.WindowID); err == nil && active != nil {
		createReq.OpenerID = active.ID
	}

	created, err := s.host.CreateTab(ctx, createReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create tab: %w", err)
	}
	defer s.refresh(ctx, created.WindowID)
	s.recordCreate(ctx, *created)

	if err := s.state.MarkExplicit(ctx, created.ID); err != nil {
		log.Warn("failed to mark tab as explicitly placed", "tab", string(created.ID), "err", err)
	}

	plan := placement.GeneratePlan(placement.PlanInput{
		NewTab: *created,
		Policy: tabs.PositionEnd,
	})
	if err := s.executor.Execute(ctx, plan.Effects()); err != nil {
		log.Warn("failed to move new tab to end", "tab", string(created.ID), "err", err)
	}

	placed, err := s.host.GetTab(ctx, created.ID)
	if err != nil {
		if errors.Is(err, secondary.ErrTabNotFound) {
			return &primary.OpenTabAtEndResponse{Tab: *created}, nil
		}
		return nil, fmt.Errorf("failed to fetch new tab: %w", err)
	}
	log.Info("opened tab at end", "tab", string(placed.ID), "index", placed.Index)
	return &primary.OpenTabAtEndResponse{Tab: *placed}, nil
}

func (s *ArrangerServiceImpl) recordCreate(ctx context.Context, tab tabs.TabRecord) {
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, &secondary.ActivityRecord{
		WindowID: string(tab.WindowID),
		TabID:    string(tab.ID),
		Action:   secondary.ActionCreate,
		Detail:   tab.URL,
	})
	if err != nil {
		logx.Ctx(ctx).Warn("failed to record activity", "action", secondary.ActionCreate, "err", err)
	}
}

// ListTabs returns the window's tabs ordered by index.
func (s *ArrangerServiceImpl) ListTabs(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error) {
	records, err := s.host.QueryTabs(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tabs: %w", err)
	}
	return tabs.SortByIndex(records), nil
}

// Helper methods

func (s *ArrangerServiceImpl) readSettings(ctx context.Context) tabs.Settings {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		logx.Ctx(ctx).Warn("failed to read settings, using defaults", "err", err)
		return tabs.DefaultSettings()
	}
	return settings.Normalize()
}

// lookupOpener fetches the opener. A failed lookup counts as no opener.
func (s *ArrangerServiceImpl) lookupOpener(ctx context.Context, tab tabs.TabRecord) *tabs.TabRecord {
	if !tab.HasOpener() {
		return nil
	}
	opener, err := s.host.GetTab(ctx, tab.OpenerID)
	if err != nil {
		logx.Ctx(ctx).Debug("opener lookup failed", "opener", string(tab.OpenerID), "err", err)
		return nil
	}
	return opener
}

// lookupActiveFallback finds the tab that was active before tab appeared.
// When the host already focused the new tab the snapshot's previous active
// tab is used instead.
func (s *ArrangerServiceImpl) lookupActiveFallback(ctx context.Context, tab tabs.TabRecord) *tabs.TabRecord {
	focus, err := s.state.GetFocus(ctx, tab.WindowID)
	if err != nil {
		logx.Ctx(ctx).Debug("window snapshot unavailable", "err", err)
	}
	if focus != nil {
		candidate := focus.ActiveTabID
		if candidate == tab.ID {
			candidate = focus.PreviousActiveTabID
		}
		if candidate != "" && candidate != tab.ID {
			if found, err := s.host.GetTab(ctx, candidate); err == nil {
				return found
			}
		}
	}

	active, err := s.host.ActiveTab(ctx, tab.WindowID)
	if err != nil || active == nil || active.ID == tab.ID {
		return nil
	}
	return active
}

// refresh stores the host's current view of a window.
func (s *ArrangerServiceImpl) refresh(ctx context.Context, windowID tabs.WindowID) {
	log := logx.Ctx(ctx)
	current, err := s.host.QueryTabs(ctx, windowID)
	if err != nil {
		if secondary.IsStaleReference(err) {
			if err := s.state.DeleteFocus(ctx, windowID); err != nil {
				log.Warn("failed to forget window", "err", err)
			}
			return
		}
		log.Warn("failed to refresh window snapshot", "err", err)
		return
	}
	focus, err := s.state.GetFocus(ctx, windowID)
	if err != nil {
		log.Warn("failed to read window snapshot", "err", err)
	}
	var activeID tabs.TabID
	if active, ok := tabs.FindActive(current); ok {
		activeID = active.ID
	}
	if err := s.saveSnapshot(ctx, windowID, focus, current, activeID); err != nil {
		log.Warn("failed to save window snapshot", "err", err)
	}
}

func (s *ArrangerServiceImpl) saveSnapshot(ctx context.Context, windowID tabs.WindowID, previous *secondary.WindowFocusRecord, current []tabs.TabRecord, activeID tabs.TabID) error {
	record := &secondary.WindowFocusRecord{
		WindowID:    windowID,
		ActiveTabID: activeID,
		Tabs:        tabs.SortByIndex(current),
	}
	if previous != nil {
		record.PreviousActiveTabID = previous.PreviousActiveTabID
		if previous.ActiveTabID != "" && previous.ActiveTabID != activeID {
			record.PreviousActiveTabID = previous.ActiveTabID
		}
	}
	if err := s.state.SaveFocus(ctx, record); err != nil {
		return fmt.Errorf("failed to save window snapshot: %w", err)
	}
	return nil
}

func skipped(id tabs.TabID, reason string) *primary.ArrangeResult {
	return &primary.ArrangeResult{TabID: id, Outcome: primary.OutcomeSkipped, Index: -1, Reason: reason}
}

func none(id tabs.TabID, reason string) *primary.ArrangeResult {
	return &primary.ArrangeResult{TabID: id, Outcome: primary.OutcomeNone, Index: -1, Reason: reason}
}

// sleepCtx waits for d or until ctx ends.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Ensure ArrangerServiceImpl implements the interface
var _ primary.ArrangerService = (*ArrangerServiceImpl)(nil)
