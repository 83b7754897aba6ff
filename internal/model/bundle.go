// Package model defines the health-tracking domain types and the persisted
// bundle shape shared by the remote document store, the local cache and the
// import/export surface.
package model

import "sort"

// SlotEntry is one time slot's recorded observation.
type SlotEntry struct {
	Value       Severity `json:"value"`
	Medications []string `json:"medications"`
	Comments    string   `json:"comments"`
}

// Empty reports whether the entry carries no observation at all.
func (e SlotEntry) Empty() bool {
	return !e.Value.IsSet() && len(e.Medications) == 0 && e.Comments == ""
}

// Clone returns a deep copy of the entry.
func (e SlotEntry) Clone() SlotEntry {
	out := e
	if e.Medications != nil {
		out.Medications = append([]string(nil), e.Medications...)
	}
	return out
}

// DayRecord maps a time-slot label ("08:00" .. "23:30") to its entry.
// Missing labels read as empty entries.
type DayRecord map[string]SlotEntry

// Entry returns the entry for the slot, or an empty entry if absent.
func (d DayRecord) Entry(slot string) SlotEntry { return d[slot] }

// HasData reports whether any slot carries an observation.
func (d DayRecord) HasData() bool {
	for _, e := range d {
		if !e.Empty() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the day record.
func (d DayRecord) Clone() DayRecord {
	if d == nil {
		return nil
	}
	out := make(DayRecord, len(d))
	for slot, e := range d {
		out[slot] = e.Clone()
	}
	return out
}

// Archive maps an ISO date ("2006-01-02") to that day's record.
type Archive map[string]DayRecord

// Clone returns a deep copy of the archive.
func (a Archive) Clone() Archive {
	if a == nil {
		return nil
	}
	out := make(Archive, len(a))
	for date, d := range a {
		out[date] = d.Clone()
	}
	return out
}

// Pattern maps a time-slot label to the usual medications at that time.
type Pattern map[string][]string

// Clone returns a deep copy of the pattern.
func (p Pattern) Clone() Pattern {
	if p == nil {
		return nil
	}
	out := make(Pattern, len(p))
	for slot, meds := range p {
		out[slot] = append([]string(nil), meds...)
	}
	return out
}

// Prune removes slots whose medication set is empty.
func (p Pattern) Prune() {
	for slot, meds := range p {
		if len(meds) == 0 {
			delete(p, slot)
		}
	}
}

// Bundle is the atomic persisted unit. The remote store, the local cache
// and export/import all operate on the whole bundle; there is no partial
// read or write.
type Bundle struct {
	HealthData  Archive  `json:"healthData"`
	Medications []string `json:"medications"`
	Pattern     Pattern  `json:"standardPattern"`
}

// DefaultBundle returns an empty bundle with all collections allocated.
func DefaultBundle() Bundle {
	return Bundle{
		HealthData:  Archive{},
		Medications: []string{},
		Pattern:     Pattern{},
	}
}

// Clone returns a deep copy of the bundle.
func (b Bundle) Clone() Bundle {
	out := Bundle{
		HealthData: b.HealthData.Clone(),
		Pattern:    b.Pattern.Clone(),
	}
	if b.Medications != nil {
		out.Medications = append([]string(nil), b.Medications...)
	}
	return out
}

// Normalize allocates missing collections, sorts the catalog and prunes
// empty pattern slots so that persisted bundles have a canonical shape.
func (b *Bundle) Normalize() {
	if b.HealthData == nil {
		b.HealthData = Archive{}
	}
	if b.Medications == nil {
		b.Medications = []string{}
	}
	if b.Pattern == nil {
		b.Pattern = Pattern{}
	}
	sort.Strings(b.Medications)
	b.Pattern.Prune()
}
