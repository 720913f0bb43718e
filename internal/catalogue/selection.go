package catalogue

import (
	"fmt"

	"amlscope/internal/screening"
	"amlscope/pkg/platform/sentinel"
)

// Selection tracks the record open in the detail panel. The zero value is
// NoSelection.
type Selection struct {
	key      screening.RecordKey
	selected bool
}

// Selected reports the active key, if any.
func (s Selection) Selected() (screening.RecordKey, bool) {
	return s.key, s.selected
}

// Init selects the first record when nothing is selected yet.
func (s *Selection) Init(records []screening.TestCase) {
	if s.selected || len(records) == 0 {
		return
	}
	s.key, s.selected = records[0].Key(), true
}

// Select makes key active. The key must identify a record in the full,
// unfiltered collection; filtered-out records stay selectable.
func (s *Selection) Select(records []screening.TestCase, key screening.RecordKey) error {
	if _, ok := find(records, key); !ok {
		return fmt.Errorf("record %s: %w", key, sentinel.ErrNotFound)
	}
	s.key, s.selected = key, true
	return nil
}

// Clear returns to NoSelection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Resolve returns the selected record from records.
func (s Selection) Resolve(records []screening.TestCase) (screening.TestCase, bool) {
	if !s.selected {
		return screening.TestCase{}, false
	}
	return find(records, s.key)
}

func find(records []screening.TestCase, key screening.RecordKey) (screening.TestCase, bool) {
	for _, r := range records {
		if r.Key() == key {
			return r, true
		}
	}
	return screening.TestCase{}, false
}
