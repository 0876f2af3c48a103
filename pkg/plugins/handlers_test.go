package plugins

import (
	"testing"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPluginStorage struct {
	descriptors map[string]*PluginDescriptor
	updateCalls int
	err         error
}

func newMemoryPluginStorage(descriptors ...*PluginDescriptor) *memoryPluginStorage {
	s := &memoryPluginStorage{descriptors: map[string]*PluginDescriptor{}}
	for _, d := range descriptors {
		copied := *d
		s.descriptors[d.ID] = &copied
	}
	return s
}

func (s *memoryPluginStorage) ReadAll() ([]*PluginDescriptor, error) {
	if s.err != nil {
		return nil, s.err
	}
	var all []*PluginDescriptor
	for _, d := range s.descriptors {
		all = append(all, d)
	}
	return all, nil
}

func (s *memoryPluginStorage) FindByID(id string) (*PluginDescriptor, error) {
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.descriptors[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	copied.StateLog = append([]StateLogEntry(nil), d.StateLog...)
	return &copied, nil
}

func (s *memoryPluginStorage) Create(d *PluginDescriptor) (*PluginDescriptor, error) {
	if s.err != nil {
		return nil, s.err
	}
	copied := *d
	s.descriptors[d.ID] = &copied
	return d, nil
}

func (s *memoryPluginStorage) Update(d *PluginDescriptor) (*PluginDescriptor, error) {
	s.updateCalls++
	if s.err != nil {
		return nil, s.err
	}
	copied := *d
	s.descriptors[d.ID] = &copied
	return d, nil
}

func adminRequest(perms ...manifold.Permission) manifold.AdminRequest {
	return manifold.NewAdminRequest(manifold.Principal{UserID: "admin1", Permissions: perms})
}

func TestSavePluginSettingsReplacesWholesaleAndLogsOncePerCall(t *testing.T) {
	storage := newMemoryPluginStorage(NewPluginDescriptor(&fakeModule{id: "p", version: "1.0.0"}))
	handler := NewHandlerSavePluginSettings(storage, manifold.NewRolePermissionService())
	req := adminRequest(manifold.PermWritePlugins)

	first, err := handler.Handle(req, "p", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, first.Settings)

	second, err := handler.Handle(req, "p", map[string]any{"b": 2})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"b": 2}, second.Settings)
	// created + two settings-changed entries, exactly one per call.
	require.Len(t, second.StateLog, 3)
	assert.Equal(t, StateSettingsChanged, second.StateLog[1].State)
	assert.Equal(t, StateSettingsChanged, second.StateLog[2].State)
}

func TestSavePluginSettingsUnknownIDIsEntityNotFound(t *testing.T) {
	storage := newMemoryPluginStorage()
	handler := NewHandlerSavePluginSettings(storage, manifold.NewRolePermissionService())

	_, err := handler.Handle(adminRequest(manifold.PermWritePlugins), "ghost", map[string]any{"a": 1})

	assert.Equal(t, manifold.ErrCodeEntityNotFound, manifold.CodeOf(err))
	notFound, ok := manifold.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "PluginDescriptor", notFound.EntityType)
	assert.Equal(t, "ghost", notFound.EntityID)
	assert.Zero(t, storage.updateCalls)
}

func TestSavePluginSettingsDeniedWithoutTouchingStorage(t *testing.T) {
	storage := newMemoryPluginStorage(NewPluginDescriptor(&fakeModule{id: "p", version: "1.0.0"}))
	handler := NewHandlerSavePluginSettings(storage, manifold.NewDenyAllPermissionService())

	_, err := handler.Handle(adminRequest(), "p", map[string]any{"a": 1})

	assert.Equal(t, manifold.ErrCodePermissionDenied, manifold.CodeOf(err))
	assert.Zero(t, storage.updateCalls)
}

func TestEnableThenDisablePluginPersistsEachTransition(t *testing.T) {
	storage := newMemoryPluginStorage(NewPluginDescriptor(&fakeModule{id: "p", version: "1.0.0"}))
	enable := NewHandlerEnablePlugin(storage, manifold.NewRolePermissionService())
	disable := NewHandlerDisablePlugin(storage, manifold.NewRolePermissionService())
	req := adminRequest(manifold.PermWritePlugins)

	enabled, err := enable.Handle(req, "p")
	require.NoError(t, err)
	assert.True(t, enabled.Enabled)
	assert.Equal(t, 1, storage.updateCalls)

	// Enabling again changes nothing and persists nothing.
	again, err := enable.Handle(req, "p")
	require.NoError(t, err)
	assert.True(t, again.Enabled)
	assert.Equal(t, 1, storage.updateCalls)

	disabled, err := disable.Handle(req, "p")
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)
	assert.Equal(t, 2, storage.updateCalls)
	require.Len(t, disabled.StateLog, 3)
}

func TestEnablePluginUnknownIDIsEntityNotFound(t *testing.T) {
	handler := NewHandlerEnablePlugin(newMemoryPluginStorage(), manifold.NewRolePermissionService())

	_, err := handler.Handle(adminRequest(manifold.PermWritePlugins), "ghost")

	assert.Equal(t, manifold.ErrCodeEntityNotFound, manifold.CodeOf(err))
}

func TestGetPluginUnknownIDResolvesToNil(t *testing.T) {
	handler := NewHandlerGetPlugin(newMemoryPluginStorage(), manifold.NewRolePermissionService())

	descriptor, err := handler.Handle(adminRequest(manifold.PermReadPlugins), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, descriptor)
}

func TestListPluginsRequiresReadPermission(t *testing.T) {
	storage := newMemoryPluginStorage(NewPluginDescriptor(&fakeModule{id: "p", version: "1.0.0"}))
	handler := NewHandlerListPlugins(storage, manifold.NewRolePermissionService())

	_, err := handler.Handle(adminRequest())
	assert.Equal(t, manifold.ErrCodePermissionDenied, manifold.CodeOf(err))

	listed, err := handler.Handle(adminRequest(manifold.PermReadPlugins))
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
