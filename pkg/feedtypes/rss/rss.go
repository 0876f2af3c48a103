// Package rss is the bundled plugin contributing an RSS/Atom feed type. It
// resolves the configured URL to an actual feed document, parses it with
// gofeed, and projects entries into topic items with markdown summaries.
package rss

import (
	"context"
	"fmt"
	"time"

	"github.com/geomanifold/manifold/pkg/helpers"
	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/mmcdole/gofeed"
)

const defaultUpdateFrequencySeconds = 900

type FeedType struct {
	parser *Parser
}

func NewFeedType() *FeedType {
	return &FeedType{parser: NewParser(NewDownloader())}
}

func (t *FeedType) ID() string { return "rss" }

func (t *FeedType) Title() string { return "RSS & Atom" }

func (t *FeedType) Summary() string {
	return "Follow the entries of an RSS, Atom, or JSON feed published on the web."
}

func (t *FeedType) ConstantParamsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedUrl": map[string]any{
				"type":   "string",
				"title":  "Feed URL",
				"format": "uri",
			},
		},
		"required": []any{"feedUrl"},
	}
}

func (t *FeedType) VariableParamsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"maxItems": map[string]any{
				"type":    "number",
				"title":   "Maximum items",
				"minimum": float64(1),
			},
		},
	}
}

func (t *FeedType) Topics() []manifold.FeedTopic {
	primary := "title"
	secondary := "summary"
	temporal := "timestamp"
	frequency := defaultUpdateFrequencySeconds

	return []manifold.FeedTopic{
		{
			ID:                        "entries",
			Title:                     "Feed entries",
			Summary:                   "Entries published to the feed, newest first.",
			ItemsHaveIdentity:         true,
			ItemsHaveSpatialDimension: false,
			ItemPrimaryProperty:       &primary,
			ItemSecondaryProperty:     &secondary,
			ItemTemporalProperty:      &temporal,
			UpdateFrequencySeconds:    &frequency,
			ItemPropertiesSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"guid":      map[string]any{"type": "string"},
					"title":     map[string]any{"type": "string"},
					"summary":   map[string]any{"type": "string"},
					"link":      map[string]any{"type": "string"},
					"timestamp": map[string]any{"type": "string", "format": "date-time"},
				},
			},
		},
	}
}

func (t *FeedType) PreviewContent(ctx context.Context, params map[string]any) (*manifold.FeedContent, error) {
	return t.fetch(ctx, params)
}

func (t *FeedType) FetchContentFromFeed(ctx context.Context, params map[string]any) (*manifold.FeedContent, error) {
	return t.fetch(ctx, params)
}

func (t *FeedType) fetch(ctx context.Context, params map[string]any) (*manifold.FeedContent, error) {
	feedUrl, maxItems, err := parseParams(params)
	if err != nil {
		return nil, err
	}

	resolved := GetFeedURL(ctx, feedUrl)
	if resolved == "" {
		return nil, fmt.Errorf("no feed document found at %s", feedUrl)
	}

	feed, err := t.parser.ParseFeed(ctx, resolved)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(feed.Items))
	for _, item := range feed.Items {
		if maxItems > 0 && len(items) >= maxItems {
			break
		}
		items = append(items, itemProperties(item))
	}

	return &manifold.FeedContent{Topic: "entries", Items: items}, nil
}

func parseParams(params map[string]any) (feedUrl string, maxItems int, err error) {
	var problems []string

	raw, ok := params["feedUrl"]
	if !ok {
		problems = append(problems, "feedUrl is required")
	} else if feedUrl, ok = raw.(string); !ok {
		problems = append(problems, "feedUrl must be a string")
	} else if !helpers.IsValidHttpUrl(feedUrl) {
		problems = append(problems, "feedUrl must be an http or https URL")
	}

	if raw, ok := params["maxItems"]; ok {
		n, isNumber := raw.(float64)
		switch {
		case !isNumber:
			problems = append(problems, "maxItems must be a number")
		case n < 1:
			problems = append(problems, "maxItems must be at least 1")
		default:
			maxItems = int(n)
		}
	}

	if len(problems) > 0 {
		return "", 0, &manifold.InvalidParamsError{Problems: problems}
	}
	return feedUrl, maxItems, nil
}

func itemProperties(item *gofeed.Item) map[string]any {
	properties := map[string]any{
		"guid":  item.GUID,
		"title": item.Title,
	}
	if item.GUID == "" {
		properties["guid"] = item.Link
	}

	if summary := buildSummary(item); summary != "" {
		properties["summary"] = summary
	}
	if item.Link != "" {
		properties["link"] = item.Link
	}
	if timestamp := itemTimestamp(item); timestamp != nil {
		properties["timestamp"] = timestamp.UTC().Format(time.RFC3339)
	}

	return properties
}

func itemTimestamp(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}
