package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

// Store is the embedding store: an in-memory map of document id to record,
// persisted as a single JSON artifact. The store is the only component that
// owns record mutation; readers take immutable snapshots so a concurrent
// re-index pass can never expose a half-updated record.
type Store struct {
	path string

	mu      sync.RWMutex
	records map[string]types.DocumentRecord
}

// New creates a store backed by the JSON artifact at path. The file is not
// touched until Load or Save is called.
func New(path string) *Store {
	return &Store{
		path:    path,
		records: make(map[string]types.DocumentRecord),
	}
}

// Path returns the location of the persisted artifact.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record set into memory. A missing file yields an
// empty index rather than an error: the system must start and serve queries
// before the first sync has run. A corrupt file is logged and treated the
// same way; the next Save rewrites it wholesale.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.mu.Lock()
		s.records = make(map[string]types.DocumentRecord)
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read embedding store: %w", err)
	}

	var list []types.DocumentRecord
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("warning: embedding store %s is corrupt, starting empty: %v", s.path, err)
		s.mu.Lock()
		s.records = make(map[string]types.DocumentRecord)
		s.mu.Unlock()
		return nil
	}

	records := make(map[string]types.DocumentRecord, len(list))
	for _, rec := range list {
		if err := rec.Validate(0); err != nil {
			log.Printf("warning: dropping record %q from %s: %v", rec.ID, s.path, err)
			continue
		}
		records[rec.ID] = rec
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// Save persists the entire record set atomically: marshal to a temp file in
// the same directory, then rename over the artifact. Readers either see the
// old complete state or the new complete state, never a partial write.
// Output is ordered by id so an unchanged index round-trips byte-for-byte.
func (s *Store) Save() error {
	s.mu.RLock()
	list := make([]types.DocumentRecord, 0, len(s.records))
	for _, rec := range s.records {
		list = append(list, rec)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal embedding store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write embedding store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace embedding store: %w", err)
	}

	return nil
}

// Upsert adds or replaces a record in memory. Persistence is explicit via
// Save, so a batch pass writes the artifact once, not per document.
func (s *Store) Upsert(rec types.DocumentRecord) {
	rec.TruncateText()
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
}

// Remove deletes a record from memory. Returns true if the id was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

// Get returns a single record by id.
func (s *Store) Get(id string) (types.DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Len returns the number of indexed records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns a copy of the current record map. The copy is owned by
// the caller; subsequent Upsert/Remove calls do not affect it.
func (s *Store) Snapshot() map[string]types.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]types.DocumentRecord, len(s.records))
	for id, rec := range s.records {
		snap[id] = rec
	}
	return snap
}
