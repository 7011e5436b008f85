package feed

import (
	"sync"

	"applixy/internal/domain"
)

// SavedRegistry is the process-local set of opportunities the user has
// chosen to keep, ordered by insertion. It never talks to the store.
type SavedRegistry struct {
	mu    sync.Mutex
	index map[string]struct{}
	items []domain.Opportunity
}

func NewSavedRegistry() *SavedRegistry {
	return &SavedRegistry{
		index: make(map[string]struct{}),
	}
}

// Save keeps the item. Saving an id that is already present is a no-op;
// the original record wins.
func (r *SavedRegistry) Save(item domain.Opportunity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[item.ID]; ok {
		return
	}
	r.index[item.ID] = struct{}{}
	r.items = append(r.items, item)
}

// Remove drops every entry matching the item's id. Removing an absent
// id is a no-op.
func (r *SavedRegistry) Remove(item domain.Opportunity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[item.ID]; !ok {
		return
	}
	delete(r.index, item.ID)

	kept := r.items[:0]
	for _, it := range r.items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	r.items = kept
}

func (r *SavedRegistry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.index[id]
	return ok
}

// Items returns the saved opportunities in insertion order.
func (r *SavedRegistry) Items() []domain.Opportunity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Opportunity, len(r.items))
	copy(out, r.items)
	return out
}

func (r *SavedRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
