package rss

import (
	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/plugins"
)

// Plugin wraps the RSS feed type as an installable module.
type Plugin struct{}

var _ plugins.Module = (*Plugin)(nil)

func NewPlugin() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string      { return "rss" }
func (p *Plugin) Version() string { return "1.0.0" }
func (p *Plugin) Title() string   { return "RSS & Atom feeds" }

func (p *Plugin) Summary() string {
	return "Brings web syndication feeds into events as external data sources."
}

func (p *Plugin) SettingsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"userAgent": map[string]any{
				"type":  "string",
				"title": "User-Agent header sent when fetching feeds",
			},
		},
	}
}

func (p *Plugin) FeedTypes() []manifold.FeedType {
	return []manifold.FeedType{NewFeedType()}
}
