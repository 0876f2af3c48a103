// Package adapters implements the storage interfaces the use cases depend
// on: an in-memory feed type registry and sqlite-backed stores for feeds,
// events, plugins, content, and permissions.
package adapters

import (
	"fmt"
	"sync"

	"github.com/geomanifold/manifold/pkg/manifold"
)

// FeedTypeRegistry holds the adapter capabilities registered at startup.
// ReadAll preserves registration order; nothing re-sorts.
type FeedTypeRegistry struct {
	mu    sync.RWMutex
	order []string
	types map[string]manifold.FeedType
}

func NewFeedTypeRegistry() *FeedTypeRegistry {
	return &FeedTypeRegistry{types: map[string]manifold.FeedType{}}
}

func (r *FeedTypeRegistry) RegisterType(t manifold.FeedType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.types[t.ID()]; dup {
		return fmt.Errorf("feed type %q is already registered", t.ID())
	}
	r.types[t.ID()] = t
	r.order = append(r.order, t.ID())
	return nil
}

func (r *FeedTypeRegistry) ReadAll() ([]manifold.FeedType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]manifold.FeedType, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.types[id])
	}
	return all, nil
}

func (r *FeedTypeRegistry) FindByID(id string) (manifold.FeedType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}
