package rss

import (
	"testing"
	"time"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamsRequiresAFeedUrl(t *testing.T) {
	_, _, err := parseParams(map[string]any{})

	var invalid *manifold.InvalidParamsError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Problems, "feedUrl is required")
}

func TestParseParamsRejectsNonHttpUrls(t *testing.T) {
	_, _, err := parseParams(map[string]any{"feedUrl": "ftp://feeds.example/rss"})

	var invalid *manifold.InvalidParamsError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Problems, "feedUrl must be an http or https URL")
}

func TestParseParamsRejectsZeroMaxItems(t *testing.T) {
	_, _, err := parseParams(map[string]any{
		"feedUrl":  "https://feeds.example/rss",
		"maxItems": float64(0),
	})

	var invalid *manifold.InvalidParamsError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Problems, "maxItems must be at least 1")
}

func TestParseParamsAcceptsAValidParameterSet(t *testing.T) {
	feedUrl, maxItems, err := parseParams(map[string]any{
		"feedUrl":  "https://feeds.example/rss",
		"maxItems": float64(5),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://feeds.example/rss", feedUrl)
	assert.Equal(t, 5, maxItems)
}

func TestItemPropertiesProjectsTheEntry(t *testing.T) {
	published := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		GUID:            "entry-1",
		Title:           "Magnitude 4.2 earthquake",
		Description:     "<p>Felt across the <b>county</b>.</p>",
		Link:            "https://feeds.example/entries/1",
		PublishedParsed: &published,
	}

	properties := itemProperties(item)

	assert.Equal(t, "entry-1", properties["guid"])
	assert.Equal(t, "Magnitude 4.2 earthquake", properties["title"])
	assert.Equal(t, "Felt across the **county**.", properties["summary"])
	assert.Equal(t, "https://feeds.example/entries/1", properties["link"])
	assert.Equal(t, "2026-08-30T12:00:00Z", properties["timestamp"])
}

func TestItemPropertiesFallsBackToTheLinkAsIdentity(t *testing.T) {
	properties := itemProperties(&gofeed.Item{
		Title: "Untracked entry",
		Link:  "https://feeds.example/entries/2",
	})

	assert.Equal(t, "https://feeds.example/entries/2", properties["guid"])
	_, hasTimestamp := properties["timestamp"]
	assert.False(t, hasTimestamp)
}

func TestBuildSummaryOmitsADescriptionRepeatingTheTitle(t *testing.T) {
	summary := buildSummary(&gofeed.Item{
		Title:       "Road closed",
		Description: "Road closed",
	})

	assert.Empty(t, summary)
}

func TestPluginContributesTheRSSFeedType(t *testing.T) {
	plugin := NewPlugin()

	assert.Equal(t, "rss", plugin.ID())
	types := plugin.FeedTypes()
	require.Len(t, types, 1)
	assert.Equal(t, "rss", types[0].ID())
}

func TestTopicsExposeASingleEntriesTopic(t *testing.T) {
	feedType := NewFeedType()

	topics := feedType.Topics()
	require.Len(t, topics, 1)
	assert.Equal(t, "entries", topics[0].ID)
	require.NotNil(t, topics[0].ItemTemporalProperty)
	assert.Equal(t, "timestamp", *topics[0].ItemTemporalProperty)

	assert.Nil(t, manifold.TopicByID(feedType, "missing"))
	require.NotNil(t, manifold.TopicByID(feedType, "entries"))
}
