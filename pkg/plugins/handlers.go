package plugins

import (
	"log"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
)

// Plugin administration use cases, one handler each, in the same
// request-to-result shape as the feed handlers.

type HandlerListPlugins struct {
	storage PluginStorage
	perms   manifold.PermissionService
}

func NewHandlerListPlugins(storage PluginStorage, perms manifold.PermissionService) *HandlerListPlugins {
	return &HandlerListPlugins{storage: storage, perms: perms}
}

func (h *HandlerListPlugins) Handle(req manifold.RequestContext) ([]*PluginDescriptor, error) {
	if denied := h.perms.EnsureReadPlugins(req); denied != nil {
		return nil, denied
	}

	descriptors, err := h.storage.ReadAll()
	if err != nil {
		return nil, manifold.InternalError(err, "error reading plugin descriptors")
	}
	return descriptors, nil
}

type HandlerGetPlugin struct {
	storage PluginStorage
	perms   manifold.PermissionService
}

func NewHandlerGetPlugin(storage PluginStorage, perms manifold.PermissionService) *HandlerGetPlugin {
	return &HandlerGetPlugin{storage: storage, perms: perms}
}

// Handle resolves a plugin by id. An unknown id yields nil, not an error;
// callers probing for presence get a clean answer.
func (h *HandlerGetPlugin) Handle(req manifold.RequestContext, pluginID string) (*PluginDescriptor, error) {
	if denied := h.perms.EnsureReadPlugins(req); denied != nil {
		return nil, denied
	}

	descriptor, err := h.storage.FindByID(pluginID)
	if err != nil {
		return nil, manifold.InternalError(err, "error reading plugin "+pluginID)
	}
	return descriptor, nil
}

type HandlerEnablePlugin struct {
	storage PluginStorage
	perms   manifold.PermissionService
}

func NewHandlerEnablePlugin(storage PluginStorage, perms manifold.PermissionService) *HandlerEnablePlugin {
	return &HandlerEnablePlugin{storage: storage, perms: perms}
}

func (h *HandlerEnablePlugin) Handle(req manifold.RequestContext, pluginID string) (*PluginDescriptor, error) {
	if denied := h.perms.EnsureWritePlugins(req); denied != nil {
		return nil, denied
	}

	descriptor, err := h.storage.FindByID(pluginID)
	if err != nil {
		return nil, manifold.InternalError(err, "error reading plugin "+pluginID)
	}
	if descriptor == nil {
		return nil, manifold.EntityNotFoundError("PluginDescriptor", pluginID)
	}

	if !descriptor.Enable() {
		return descriptor, nil
	}

	updated, err := h.storage.Update(descriptor)
	if err != nil {
		return nil, manifold.InternalError(err, "error persisting plugin "+pluginID)
	}

	metrics.PluginStateChanges.WithLabelValues(string(StateEnabled)).Inc()
	log.Printf("[INFO] plugin %s enabled; its feed types register on next startup discovery", pluginID)

	return updated, nil
}

type HandlerDisablePlugin struct {
	storage PluginStorage
	perms   manifold.PermissionService
}

func NewHandlerDisablePlugin(storage PluginStorage, perms manifold.PermissionService) *HandlerDisablePlugin {
	return &HandlerDisablePlugin{storage: storage, perms: perms}
}

func (h *HandlerDisablePlugin) Handle(req manifold.RequestContext, pluginID string) (*PluginDescriptor, error) {
	if denied := h.perms.EnsureWritePlugins(req); denied != nil {
		return nil, denied
	}

	descriptor, err := h.storage.FindByID(pluginID)
	if err != nil {
		return nil, manifold.InternalError(err, "error reading plugin "+pluginID)
	}
	if descriptor == nil {
		return nil, manifold.EntityNotFoundError("PluginDescriptor", pluginID)
	}

	if !descriptor.Disable() {
		return descriptor, nil
	}

	updated, err := h.storage.Update(descriptor)
	if err != nil {
		return nil, manifold.InternalError(err, "error persisting plugin "+pluginID)
	}

	metrics.PluginStateChanges.WithLabelValues(string(StateDisabled)).Inc()

	return updated, nil
}

type HandlerSavePluginSettings struct {
	storage PluginStorage
	perms   manifold.PermissionService
}

func NewHandlerSavePluginSettings(storage PluginStorage, perms manifold.PermissionService) *HandlerSavePluginSettings {
	return &HandlerSavePluginSettings{storage: storage, perms: perms}
}

// Handle replaces the plugin's settings object wholesale and appends one
// settings-changed entry to the state log.
func (h *HandlerSavePluginSettings) Handle(req manifold.RequestContext, pluginID string, settings map[string]any) (*PluginDescriptor, error) {
	if denied := h.perms.EnsureWritePlugins(req); denied != nil {
		return nil, denied
	}

	descriptor, err := h.storage.FindByID(pluginID)
	if err != nil {
		return nil, manifold.InternalError(err, "error reading plugin "+pluginID)
	}
	if descriptor == nil {
		return nil, manifold.EntityNotFoundError("PluginDescriptor", pluginID)
	}

	descriptor.ReplaceSettings(settings)

	updated, err := h.storage.Update(descriptor)
	if err != nil {
		return nil, manifold.InternalError(err, "error persisting plugin "+pluginID)
	}

	metrics.PluginStateChanges.WithLabelValues(string(StateSettingsChanged)).Inc()

	return updated, nil
}
