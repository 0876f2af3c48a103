// Package plugins manages optional, installable feature modules: their
// persisted descriptors, the process-scoped module registry, and the
// administrative use cases that flip their lifecycle state.
package plugins

import "time"

// StateEvent is one lifecycle transition recorded in a descriptor's state
// log.
type StateEvent string

const (
	StateCreated         StateEvent = "created"
	StateEnabled         StateEvent = "enabled"
	StateDisabled        StateEvent = "disabled"
	StateSettingsChanged StateEvent = "settings-changed"
)

type StateLogEntry struct {
	State     StateEvent `json:"state"`
	Timestamp time.Time  `json:"timestamp"`
}

// PluginDescriptor is the persisted metadata and lifecycle state of an
// installed plugin module. The id is the module's stable identity, not
// user-chosen; the descriptor is never deleted while the module remains
// installed.
type PluginDescriptor struct {
	ID             string          `json:"id"`
	Version        string          `json:"version"`
	Title          string          `json:"title"`
	Summary        *string         `json:"summary,omitempty"`
	Enabled        bool            `json:"enabled"`
	SettingsSchema map[string]any  `json:"settingsSchema,omitempty"`
	Settings       map[string]any  `json:"settings"`
	StateLog       []StateLogEntry `json:"stateLog"`
}

// NewPluginDescriptor builds the initial descriptor for a freshly discovered
// module: disabled, empty settings, a single created entry in the state log.
func NewPluginDescriptor(m Module) *PluginDescriptor {
	d := &PluginDescriptor{
		ID:             m.ID(),
		Version:        m.Version(),
		Title:          m.Title(),
		SettingsSchema: m.SettingsSchema(),
		Settings:       map[string]any{},
	}
	if summary := m.Summary(); summary != "" {
		d.Summary = &summary
	}
	d.appendState(StateCreated)
	return d
}

// Enable moves the descriptor to the enabled state. It reports whether the
// state actually changed; enabling an enabled plugin is a no-op and appends
// nothing to the log.
func (d *PluginDescriptor) Enable() bool {
	if d.Enabled {
		return false
	}
	d.Enabled = true
	d.appendState(StateEnabled)
	return true
}

func (d *PluginDescriptor) Disable() bool {
	if !d.Enabled {
		return false
	}
	d.Enabled = false
	d.appendState(StateDisabled)
	return true
}

// ReplaceSettings swaps the whole settings object. The new object replaces
// the old one wholesale; there is no deep merge.
func (d *PluginDescriptor) ReplaceSettings(settings map[string]any) {
	if settings == nil {
		settings = map[string]any{}
	}
	d.Settings = settings
	d.appendState(StateSettingsChanged)
}

func (d *PluginDescriptor) appendState(state StateEvent) {
	d.StateLog = append(d.StateLog, StateLogEntry{State: state, Timestamp: time.Now().UTC()})
}
