package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/utils"
)

// CountStore holds the tally state for one session: predefined item
// counts keyed by the catalog and custom item counts keyed by
// user-entered names. All operations are synchronous and perform no I/O.
// Safe for concurrent use; requests sharing a session cookie may hit
// the same store in parallel.
type CountStore struct {
	mu         sync.Mutex
	catalog    *models.Catalog
	predefined map[string]int
	custom     map[string]int
}

// NewCountStore creates a CountStore with every catalog item
// initialized to 0 and an empty custom item map
func NewCountStore(catalog *models.Catalog) *CountStore {
	s := &CountStore{catalog: catalog}
	s.initialize()
	return s
}

func (s *CountStore) initialize() {
	s.predefined = make(map[string]int)
	for _, item := range s.catalog.Items() {
		s.predefined[item.Name] = 0
	}
	s.custom = make(map[string]int)
}

// UpdateCount adds delta to the named item's count, clamping the result
// at 0. For predefined items the name must exist in the initialized
// map; custom names are created implicitly.
func (s *CountStore) UpdateCount(name string, delta int, custom bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if custom {
		next := s.custom[name] + delta
		if next < 0 {
			next = 0
		}
		s.custom[name] = next
		return nil
	}

	current, ok := s.predefined[name]
	if !ok {
		return fmt.Errorf("unknown item: %s", name)
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	s.predefined[name] = next
	return nil
}

// SetCount sets the named item's count directly after sanitization:
// non-finite values become 0, fractions truncate, negatives clamp to 0
func (s *CountStore) SetCount(name string, value float64, custom bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sanitized := utils.SanitizeCount(value)
	if custom {
		s.custom[name] = sanitized
		return nil
	}
	if _, ok := s.predefined[name]; !ok {
		return fmt.Errorf("unknown item: %s", name)
	}
	s.predefined[name] = sanitized
	return nil
}

// AddCustomItem inserts a trimmed, non-empty custom item at 0.
// Whitespace-only names are a no-op; re-adding an existing name keeps
// its current count.
func (s *CountStore) AddCustomItem(name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.custom[trimmed]; ok {
		return
	}
	s.custom[trimmed] = 0
}

// RemoveCustomItem deletes the named custom item. Removing a
// non-existent key is a no-op.
func (s *CountStore) RemoveCustomItem(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.custom, name)
}

// Reset reinitializes every predefined count to 0 and clears all custom
// items. Confirmation is enforced at the HTTP boundary, not here.
func (s *CountStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialize()
}

// Snapshot returns copies of the predefined and custom count maps
func (s *CountStore) Snapshot() (predefined, custom map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	predefined = make(map[string]int, len(s.predefined))
	for k, v := range s.predefined {
		predefined[k] = v
	}
	custom = make(map[string]int, len(s.custom))
	for k, v := range s.custom {
		custom[k] = v
	}
	return predefined, custom
}

// Merged returns a single map holding both predefined and custom
// counts, the shape consumed by the compositor and the recorder
func (s *CountStore) Merged() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[string]int, len(s.predefined)+len(s.custom))
	for k, v := range s.predefined {
		merged[k] = v
	}
	for k, v := range s.custom {
		merged[k] = v
	}
	return merged
}
