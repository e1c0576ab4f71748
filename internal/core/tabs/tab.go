// Package tabs contains the core value types shared by the placement and
// successor deciders. Everything here is plain data with no I/O.
package tabs

import "sort"

// TabID identifies a tab. The host decides the format.
type TabID string

// WindowID identifies the window (tab strip) a tab lives in.
type WindowID string

// TabRecord is a read-only snapshot of a tab at one observation instant.
// Within one window the indices form a dense permutation of 0..N-1.
type TabRecord struct {
	ID       TabID
	WindowID WindowID
	Index    int
	OpenerID TabID // empty when the host does not know the opener
	Active   bool
	Pinned   bool
	URL      string
}

// HasOpener reports whether the host recorded an opener for the tab.
func (t TabRecord) HasOpener() bool {
	return t.OpenerID != ""
}

// SortByIndex returns a copy of records ordered left to right.
func SortByIndex(records []TabRecord) []TabRecord {
	sorted := make([]TabRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	return sorted
}

// FindByID returns the record with the given id.
func FindByID(records []TabRecord, id TabID) (TabRecord, bool) {
	if id == "" {
		return TabRecord{}, false
	}
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return TabRecord{}, false
}

// FindActive returns the active record, if any.
func FindActive(records []TabRecord) (TabRecord, bool) {
	for _, r := range records {
		if r.Active {
			return r, true
		}
	}
	return TabRecord{}, false
}

// Renumber rewrites indices to dense positions, keeping the relative order.
// Hosts with sparse native numbering use it before handing records out.
func Renumber(records []TabRecord) []TabRecord {
	sorted := SortByIndex(records)
	for i := range sorted {
		sorted[i].Index = i
	}
	return sorted
}
