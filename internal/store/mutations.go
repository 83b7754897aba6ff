package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/jgfrigo2/medtracker2/internal/model"
)

// mutate applies fn to the bundle under the lock, then restarts the save
// window. All mutation methods funnel through here so the optimistic-write,
// debounced-persist pairing cannot be forgotten.
func (s *Store) mutate(fn func(b *model.Bundle)) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	fn(&s.bundle)
	s.mu.Unlock()
	s.saver.Trigger()
	return nil
}

// RecordDay replaces the entire record for date. It is not a per-slot
// merge; callers supply the complete day.
func (s *Store) RecordDay(date string, rec model.DayRecord) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return err
	}
	return s.mutate(func(b *model.Bundle) {
		b.HealthData[date] = rec.Clone()
	})
}

// Day returns a copy of the record for date; missing days are empty.
func (s *Store) Day(date string) model.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.bundle.HealthData[date]; ok {
		return d.Clone()
	}
	return model.DayRecord{}
}

// HasData reports whether any slot of date carries an observation.
func (s *Store) HasData(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.HealthData[date].HasData()
}

// Medications returns a copy of the sorted catalog.
func (s *Store) Medications() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bundle.Medications...)
}

// AddMedication inserts name into the catalog. Idempotent: an exact match
// leaves the catalog untouched and schedules nothing.
func (s *Store) AddMedication(name string) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotReady
	}
	if containsString(s.bundle.Medications, name) {
		s.mu.Unlock()
		return nil
	}
	s.bundle.Medications = append(s.bundle.Medications, name)
	sort.Strings(s.bundle.Medications)
	s.mu.Unlock()
	s.saver.Trigger()
	return nil
}

// RenameMedication rewrites every occurrence of oldName across the catalog,
// every day's slots and the standard pattern. Trimming and empty-name
// guards belong to the UI; the store rewrites whatever it is told to.
// O(days × slots), which is fine at this scale.
func (s *Store) RenameMedication(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	return s.mutate(func(b *model.Bundle) {
		for i, m := range b.Medications {
			if m == oldName {
				b.Medications[i] = newName
			}
		}
		sort.Strings(b.Medications)
		for _, day := range b.HealthData {
			for slot, e := range day {
				for i, m := range e.Medications {
					if m == oldName {
						e.Medications[i] = newName
					}
				}
				day[slot] = e
			}
		}
		for slot, meds := range b.Pattern {
			for i, m := range meds {
				if m == oldName {
					meds[i] = newName
				}
			}
			b.Pattern[slot] = meds
		}
	})
}

// DeleteMedication removes name from the catalog, from every slot of every
// day and from the standard pattern, pruning pattern slots left empty.
func (s *Store) DeleteMedication(name string) error {
	return s.mutate(func(b *model.Bundle) {
		b.Medications = removeString(b.Medications, name)
		for _, day := range b.HealthData {
			for slot, e := range day {
				e.Medications = removeString(e.Medications, name)
				day[slot] = e
			}
		}
		for slot, meds := range b.Pattern {
			b.Pattern[slot] = removeString(meds, name)
		}
		b.Pattern.Prune()
	})
}

// Pattern returns a copy of the standard pattern.
func (s *Store) Pattern() model.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.Pattern.Clone()
}

// SetStandardPattern wholesale-replaces the pattern. Empty slots are pruned
// before the next persist.
func (s *Store) SetStandardPattern(p model.Pattern) error {
	return s.mutate(func(b *model.Bundle) {
		b.Pattern = p.Clone()
		b.Pattern.Prune()
	})
}

// ApplyStandardPattern unions the pattern's medications into the day's
// slots. Union only: medications already on a slot are never removed, even
// if the pattern no longer lists them.
func (s *Store) ApplyStandardPattern(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return err
	}
	return s.mutate(func(b *model.Bundle) {
		day := b.HealthData[date]
		if day == nil {
			day = model.DayRecord{}
			b.HealthData[date] = day
		}
		for slot, meds := range b.Pattern {
			e := day[slot]
			for _, m := range meds {
				if !containsString(e.Medications, m) {
					e.Medications = append(e.Medications, m)
				}
			}
			day[slot] = e
		}
	})
}

// ImportBundle validates and installs an exported bundle, then schedules a
// save. Shape failures surface as errors wrapping model.ErrInvalidBundle.
func (s *Store) ImportBundle(data []byte) error {
	b, err := model.ParseBundle(data)
	if err != nil {
		return err
	}
	return s.mutate(func(dst *model.Bundle) {
		*dst = b
	})
}

// ExportBundle serialises the current bundle as pretty-printed JSON.
func (s *Store) ExportBundle() ([]byte, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	snap := s.bundle.Clone()
	s.mu.Unlock()
	return json.MarshalIndent(snap, "", "  ")
}

func containsString(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

func removeString(ss []string, v string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
