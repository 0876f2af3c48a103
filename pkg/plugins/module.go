package plugins

import (
	"sort"
	"sync"

	"github.com/geomanifold/manifold/pkg/manifold"
)

// Module is the contract an installable plugin satisfies. A module's ID is
// its stable physical identity; everything else describes what it
// contributes.
type Module interface {
	ID() string
	Version() string
	Title() string
	Summary() string

	// SettingsSchema describes the module's settings object, or nil when
	// the module has none.
	SettingsSchema() map[string]any

	// FeedTypes returns the adapter capabilities this module contributes.
	FeedTypes() []manifold.FeedType
}

var (
	modulesMu sync.Mutex
	modules   = make(map[string]Module)
)

// Register makes a plugin module available for discovery. It is called from
// the composition root during startup, before Discover. Registering two
// modules under one id is a programming error.
func Register(m Module) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	if m == nil {
		panic("plugins: Register called with nil module")
	}
	if _, dup := modules[m.ID()]; dup {
		panic("plugins: Register called twice for module " + m.ID())
	}
	modules[m.ID()] = m
}

// Modules returns the registered modules sorted by id.
func Modules() []Module {
	modulesMu.Lock()
	defer modulesMu.Unlock()

	ids := make([]string, 0, len(modules))
	for id := range modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := make([]Module, 0, len(ids))
	for _, id := range ids {
		list = append(list, modules[id])
	}
	return list
}

// unregisterAll resets the process registry. Test hook.
func unregisterAll() {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	modules = make(map[string]Module)
}
