package adapters

import "github.com/geomanifold/manifold/pkg/manifold"

type staticModule struct {
	id      string
	version string
}

func (m *staticModule) ID() string                     { return m.id }
func (m *staticModule) Version() string                { return m.version }
func (m *staticModule) Title() string                  { return m.id }
func (m *staticModule) Summary() string                { return "" }
func (m *staticModule) SettingsSchema() map[string]any { return nil }
func (m *staticModule) FeedTypes() []manifold.FeedType { return nil }
