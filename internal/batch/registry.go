// Package batch tracks which hospital IDs each bulk upload produced.
//
// The registry is a process-wide index, not a cache of directory state:
// the directory remains authoritative for whether a hospital exists or is
// active. The registry is empty at startup and lost on restart.
package batch

import "sync"

// Registry maps a batch ID to the hospital IDs created under it.
// All operations serialize through one mutex; concurrent uploads and
// batch queries contend on the whole map, not per key.
type Registry struct {
	mu      sync.RWMutex
	batches map[string][]string
}

// NewRegistry creates an empty registry. Callers inject it wherever batch
// membership is needed; there is no package-level instance.
func NewRegistry() *Registry {
	return &Registry{
		batches: make(map[string][]string),
	}
}

// Save records the hospital IDs for batchID, silently replacing any prior
// entry. Batch IDs are generated fresh per upload, so collisions only
// happen if a caller reuses one deliberately. An empty ID list is a valid
// batch: an upload where every row failed is still registered.
func (r *Registry) Save(batchID string, hospitalIDs []string) {
	ids := make([]string, len(hospitalIDs))
	copy(ids, hospitalIDs)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[batchID] = ids
}

// Get returns the hospital IDs for batchID and whether it exists.
// The returned slice is a copy; mutating it does not affect the registry.
func (r *Registry) Get(batchID string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, ok := r.batches[batchID]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, true
}

// All returns a snapshot of every batch. Callers never observe concurrent
// mutation through the returned map.
func (r *Registry) All() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string][]string, len(r.batches))
	for id, ids := range r.batches {
		out := make([]string, len(ids))
		copy(out, ids)
		snapshot[id] = out
	}
	return snapshot
}

// Remove deletes batchID from the registry. Returns false if it was absent.
func (r *Registry) Remove(batchID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batches[batchID]; !ok {
		return false
	}
	delete(r.batches, batchID)
	return true
}

// Len returns the number of registered batches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.batches)
}
