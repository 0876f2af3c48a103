package plugins

import (
	"log"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// PluginStorage persists plugin descriptors. FindByID returns nil without
// error for an unknown id. Update must replace the whole row atomically; the
// underlying store's per-row atomicity is what keeps two concurrent
// settings writes from interleaving.
type PluginStorage interface {
	ReadAll() ([]*PluginDescriptor, error)
	FindByID(id string) (*PluginDescriptor, error)
	Create(d *PluginDescriptor) (*PluginDescriptor, error)
	Update(d *PluginDescriptor) (*PluginDescriptor, error)
}

// TypeRegistrar accepts the feed types an enabled plugin contributes.
type TypeRegistrar interface {
	RegisterType(t manifold.FeedType) error
}

// Discover runs once at startup: it persists a descriptor for every
// registered module seen for the first time, and registers the feed types of
// the enabled ones. Per-module failures are aggregated so one broken plugin
// does not hide the rest.
func Discover(storage PluginStorage, registrar TypeRegistrar) error {
	var result error
	for _, m := range Modules() {
		if err := discoverModule(m, storage, registrar); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "plugin %s", m.ID()))
		}
	}
	return result
}

func discoverModule(m Module, storage PluginStorage, registrar TypeRegistrar) error {
	descriptor, err := storage.FindByID(m.ID())
	if err != nil {
		return errors.Wrap(err, "error reading plugin descriptor")
	}

	if descriptor == nil {
		descriptor, err = storage.Create(NewPluginDescriptor(m))
		if err != nil {
			return errors.Wrap(err, "error persisting plugin descriptor")
		}
		log.Printf("[INFO] discovered new plugin %s@%s", descriptor.ID, descriptor.Version)
	}

	if !descriptor.Enabled {
		log.Printf("[DEBUG] plugin %s is disabled, skipping feed type registration", descriptor.ID)
		return nil
	}

	for _, t := range m.FeedTypes() {
		if err := registrar.RegisterType(t); err != nil {
			return errors.Wrapf(err, "error registering feed type %s", t.ID())
		}
		log.Printf("[INFO] plugin %s registered feed type %s", descriptor.ID, t.ID())
	}

	return nil
}
