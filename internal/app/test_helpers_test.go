package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/tabmagnet/internal/core/effects"
	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

// ============================================================================
// mockTabHost
// ============================================================================

// Ensure mockTabHost implements the interface
var _ secondary.TabHost = (*mockTabHost)(nil)

type hostMove struct {
	TabID tabs.TabID
	Index int
}

// mockTabHost implements secondary.TabHost for testing.
// It only records mutations; indices stay as configured.
type mockTabHost struct {
	mu          sync.Mutex
	tabs        map[tabs.TabID]tabs.TabRecord
	getErr      map[tabs.TabID]error
	queryErr    error
	moveErr     error
	activateErr error
	createErr   error
	moves       []hostMove
	activations []tabs.TabID
	nextID      int
}

func newMockTabHost(records ...tabs.TabRecord) *mockTabHost {
	m := &mockTabHost{
		tabs:   make(map[tabs.TabID]tabs.TabRecord),
		getErr: make(map[tabs.TabID]error),
	}
	for _, r := range records {
		m.tabs[r.ID] = r
	}
	return m
}

func (m *mockTabHost) GetTab(ctx context.Context, id tabs.TabID) (*tabs.TabRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.getErr[id]; err != nil {
		return nil, err
	}
	r, ok := m.tabs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", secondary.ErrTabNotFound, id)
	}
	return &r, nil
}

func (m *mockTabHost) QueryTabs(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var result []tabs.TabRecord
	for _, r := range m.tabs {
		if r.WindowID == windowID {
			result = append(result, r)
		}
	}
	return tabs.SortByIndex(result), nil
}

func (m *mockTabHost) ActiveTab(ctx context.Context, windowID tabs.WindowID) (*tabs.TabRecord, error) {
	records, err := m.QueryTabs(ctx, windowID)
	if err != nil {
		return nil, err
	}
	if active, ok := tabs.FindActive(records); ok {
		return &active, nil
	}
	return nil, nil
}

func (m *mockTabHost) Move(ctx context.Context, id tabs.TabID, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.moveErr != nil {
		return m.moveErr
	}
	m.moves = append(m.moves, hostMove{TabID: id, Index: index})
	return nil
}

func (m *mockTabHost) Activate(ctx context.Context, id tabs.TabID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activateErr != nil {
		return m.activateErr
	}
	m.activations = append(m.activations, id)
	return nil
}

func (m *mockTabHost) CreateTab(ctx context.Context, req secondary.CreateTabRequest) (*tabs.TabRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	count := 0
	for _, r := range m.tabs {
		if r.WindowID == req.WindowID {
			count++
		}
	}
	r := tabs.TabRecord{
		ID:       tabs.TabID(fmt.Sprintf("created-%d", m.nextID)),
		WindowID: req.WindowID,
		Index:    count,
		OpenerID: req.OpenerID,
		URL:      req.URL,
	}
	m.tabs[r.ID] = r
	return &r, nil
}

// ============================================================================
// mockTabStateRepository
// ============================================================================

// Ensure mockTabStateRepository implements the interface
var _ secondary.TabStateRepository = (*mockTabStateRepository)(nil)

type mockTabStateRepository struct {
	focus    map[tabs.WindowID]*secondary.WindowFocusRecord
	explicit map[tabs.TabID]bool
	deleted  []tabs.WindowID
	getErr   error
}

func newMockTabStateRepository() *mockTabStateRepository {
	return &mockTabStateRepository{
		focus:    make(map[tabs.WindowID]*secondary.WindowFocusRecord),
		explicit: make(map[tabs.TabID]bool),
	}
}

func (m *mockTabStateRepository) GetFocus(ctx context.Context, windowID tabs.WindowID) (*secondary.WindowFocusRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	record, ok := m.focus[windowID]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *mockTabStateRepository) SaveFocus(ctx context.Context, record *secondary.WindowFocusRecord) error {
	copied := *record
	m.focus[record.WindowID] = &copied
	return nil
}

func (m *mockTabStateRepository) DeleteFocus(ctx context.Context, windowID tabs.WindowID) error {
	delete(m.focus, windowID)
	m.deleted = append(m.deleted, windowID)
	return nil
}

func (m *mockTabStateRepository) MarkExplicit(ctx context.Context, tabID tabs.TabID) error {
	m.explicit[tabID] = true
	return nil
}

func (m *mockTabStateRepository) IsExplicit(ctx context.Context, tabID tabs.TabID) (bool, error) {
	return m.explicit[tabID], nil
}

func (m *mockTabStateRepository) ClearExplicit(ctx context.Context, tabID tabs.TabID) error {
	delete(m.explicit, tabID)
	return nil
}

// ============================================================================
// mockSettingsRepository
// ============================================================================

// Ensure mockSettingsRepository implements the interface
var _ secondary.SettingsRepository = (*mockSettingsRepository)(nil)

type mockSettingsRepository struct {
	values map[string]string
	setErr error
	allErr error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{values: make(map[string]string)}
}

func (m *mockSettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockSettingsRepository) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsRepository) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *mockSettingsRepository) All(ctx context.Context) (map[string]string, error) {
	if m.allErr != nil {
		return nil, m.allErr
	}
	result := make(map[string]string, len(m.values))
	for k, v := range m.values {
		result[k] = v
	}
	return result, nil
}

// ============================================================================
// mockActivityLog
// ============================================================================

// Ensure mockActivityLog implements the interface
var _ secondary.ActivityLog = (*mockActivityLog)(nil)

type mockActivityLog struct {
	records   []*secondary.ActivityRecord
	recordErr error
}

func newMockActivityLog() *mockActivityLog {
	return &mockActivityLog{}
}

func (m *mockActivityLog) Record(ctx context.Context, entry *secondary.ActivityRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, entry)
	return nil
}

func (m *mockActivityLog) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	var result []*secondary.ActivityRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if filters.WindowID != "" && r.WindowID != filters.WindowID {
			continue
		}
		result = append(result, r)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockActivityLog) Prune(ctx context.Context, keep int) (int, error) {
	if len(m.records) <= keep {
		return 0, nil
	}
	removed := len(m.records) - keep
	m.records = m.records[removed:]
	return removed, nil
}

// ============================================================================
// mockEffectExecutor
// ============================================================================

// mockEffectExecutor keeps tab mutations and decision logs apart.
type mockEffectExecutor struct {
	executedEffects []effects.Effect
	logged          []effects.LogEffect
	executeErr      error
}

func newMockEffectExecutor() *mockEffectExecutor {
	return &mockEffectExecutor{
		executedEffects: []effects.Effect{},
	}
}

func (m *mockEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	if m.executeErr != nil {
		return m.executeErr
	}
	for _, eff := range effs {
		if log, ok := eff.(effects.LogEffect); ok {
			m.logged = append(m.logged, log)
			continue
		}
		m.executedEffects = append(m.executedEffects, eff)
	}
	return nil
}

// ============================================================================
// stubSettings
// ============================================================================

type stubSettings struct {
	settings tabs.Settings
	err      error
}

func (s *stubSettings) GetSettings(ctx context.Context) (tabs.Settings, error) {
	if s.err != nil {
		return tabs.Settings{}, s.err
	}
	return s.settings, nil
}
