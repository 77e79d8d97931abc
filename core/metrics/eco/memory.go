package eco

import (
	"sort"
	"sync"
)

// MemoryStore stores records in memory for testing or lightweight usage.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[int]*Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[int]*Record{}}
}

// Add inserts the record or replaces the one stored for the same system and
// epoch.
func (s *MemoryStore) Add(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[r.System] == nil {
		s.data[r.System] = map[int]*Record{}
	}
	rec := r
	s.data[r.System][r.Epoch] = &rec
	return nil
}

// Query returns records between from and to inclusive, ordered by epoch.
func (s *MemoryStore) Query(system string, from, to int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []Record
	for e, r := range s.data[system] {
		if e < from || e > to {
			continue
		}
		res = append(res, *r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Epoch < res[j].Epoch })
	return res, nil
}

// Systems lists the systems with at least one record.
func (s *MemoryStore) Systems() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.data))
	for name := range s.data {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
