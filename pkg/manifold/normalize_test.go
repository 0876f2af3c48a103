package manifold

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func sampleTopic() *FeedTopic {
	return &FeedTopic{
		ID:                        "weather-alerts",
		Title:                     "Weather Alerts",
		Summary:                   "Active weather alerts",
		ItemsHaveIdentity:         true,
		ItemsHaveSpatialDimension: true,
		ItemPrimaryProperty:       strPtr("headline"),
		ItemSecondaryProperty:     strPtr("severity"),
		ItemTemporalProperty:      strPtr("topicTemporal"),
		UpdateFrequencySeconds:    intPtr(900),
		ParamsSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"area": map[string]any{"type": "string"},
			},
		},
		ItemPropertiesSchema: map[string]any{"type": "object"},
		MapStyle:             &MapStyle{IconURL: "https://icons.example/alert.png"},
	}
}

func TestNormalizeFallsBackToTopicTitleWhenFeedTitleAbsent(t *testing.T) {
	out := Normalize(sampleTopic(), FeedCreateAttrs{Service: "nws"})
	assert.Equal(t, "Weather Alerts", out.Title)
}

func TestNormalizeKeepsFeedTitleWhenPresent(t *testing.T) {
	out := Normalize(sampleTopic(), FeedCreateAttrs{Service: "nws", Title: "My Alerts"})
	assert.Equal(t, "My Alerts", out.Title)
}

func TestNormalizeExplicitNullRemovesTemporalPropertyDespiteTopicValue(t *testing.T) {
	attrs := FeedCreateAttrs{
		Service:              "nws",
		Summary:              Some("About the feed"),
		ItemTemporalProperty: Null[string](),
	}

	out := Normalize(sampleTopic(), attrs)

	assert.True(t, out.ItemTemporalProperty.IsNull())
	assert.False(t, out.ItemTemporalProperty.HasValue())
	summary, ok := out.Summary.Value()
	require.True(t, ok)
	assert.Equal(t, "About the feed", summary)
}

func TestNormalizeClearSurvivesRenormalization(t *testing.T) {
	once := Normalize(sampleTopic(), FeedCreateAttrs{
		Service:              "nws",
		ItemTemporalProperty: Null[string](),
	})
	twice := Normalize(sampleTopic(), once)

	assert.False(t, twice.ItemTemporalProperty.HasValue())
	assert.Nil(t, FeedFromAttrs("feed-1", twice).ItemTemporalProperty)
}

func TestNormalizeExplicitFalseOverridesTopicBooleans(t *testing.T) {
	attrs := FeedCreateAttrs{
		Service:                   "nws",
		ItemsHaveIdentity:         Some(false),
		ItemsHaveSpatialDimension: Some(false),
	}

	out := Normalize(sampleTopic(), attrs)

	v, ok := out.ItemsHaveIdentity.Value()
	require.True(t, ok)
	assert.False(t, v)
	v, ok = out.ItemsHaveSpatialDimension.Value()
	require.True(t, ok)
	assert.False(t, v)
}

func TestNormalizeAbsentKeysFallBackToTopicDefaults(t *testing.T) {
	out := Normalize(sampleTopic(), FeedCreateAttrs{Service: "nws"})

	primary, ok := out.ItemPrimaryProperty.Value()
	require.True(t, ok)
	assert.Equal(t, "headline", primary)

	frequency, ok := out.UpdateFrequencySeconds.Value()
	require.True(t, ok)
	assert.Equal(t, 900, frequency)

	schema, ok := out.VariableParamsSchema.Value()
	require.True(t, ok)
	assert.Equal(t, sampleTopic().ParamsSchema, schema)

	style, ok := out.MapStyle.Value()
	require.True(t, ok)
	assert.Equal(t, "https://icons.example/alert.png", style.IconURL)
}

func TestNormalizeOmitsKeysNeitherSideSupplies(t *testing.T) {
	topic := &FeedTopic{ID: "bare", Title: "Bare"}
	out := Normalize(topic, FeedCreateAttrs{Service: "nws"})

	assert.False(t, out.ItemPrimaryProperty.Present())
	assert.False(t, out.UpdateFrequencySeconds.Present())
	assert.False(t, out.ConstantParams.Present())
	assert.False(t, out.MapStyle.Present())
}

func TestNormalizeIsIdempotent(t *testing.T) {
	cases := []struct {
		name  string
		attrs FeedCreateAttrs
	}{
		{
			name:  "empty attrs",
			attrs: FeedCreateAttrs{Service: "nws"},
		},
		{
			name: "explicit clears",
			attrs: FeedCreateAttrs{
				Service:               "nws",
				ItemPrimaryProperty:   Null[string](),
				ItemSecondaryProperty: Null[string](),
				ItemTemporalProperty:  Null[string](),
			},
		},
		{
			name: "full overrides",
			attrs: FeedCreateAttrs{
				Service:                   "nws",
				Topic:                     "weather-alerts",
				Title:                     "Override",
				Summary:                   Some("s"),
				ItemsHaveIdentity:         Some(false),
				ItemsHaveSpatialDimension: Some(true),
				ItemPrimaryProperty:       Some("p"),
				UpdateFrequencySeconds:    Some(60),
				ConstantParams:            Some(map[string]any{"area": "OR"}),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := Normalize(sampleTopic(), tc.attrs)
			twice := Normalize(sampleTopic(), once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalizeWithNilTopic(t *testing.T) {
	out := Normalize(nil, FeedCreateAttrs{Service: "nws", Title: "Standalone"})

	assert.Equal(t, "Standalone", out.Title)
	v, ok := out.ItemsHaveIdentity.Value()
	require.True(t, ok)
	assert.False(t, v)
}

func TestFeedCreateAttrsUnmarshalDistinguishesNullFromAbsent(t *testing.T) {
	payload := `{
		"service": "nws",
		"title": "Alerts",
		"itemTemporalProperty": null,
		"itemPrimaryProperty": "headline"
	}`

	var attrs FeedCreateAttrs
	require.NoError(t, json.Unmarshal([]byte(payload), &attrs))

	assert.True(t, attrs.ItemTemporalProperty.IsNull())
	assert.False(t, attrs.ItemSecondaryProperty.Present())
	primary, ok := attrs.ItemPrimaryProperty.Value()
	require.True(t, ok)
	assert.Equal(t, "headline", primary)
}

func TestFeedFromAttrsLowersNormalizedAttrs(t *testing.T) {
	out := Normalize(sampleTopic(), FeedCreateAttrs{
		Service:              "nws",
		Topic:                "weather-alerts",
		ItemTemporalProperty: Null[string](),
	})

	feed := FeedFromAttrs("feed-1", out)

	assert.Equal(t, "feed-1", feed.ID)
	assert.Equal(t, "nws", feed.Service)
	assert.Equal(t, "Weather Alerts", feed.Title)
	assert.Nil(t, feed.ItemTemporalProperty)
	require.NotNil(t, feed.ItemPrimaryProperty)
	assert.Equal(t, "headline", *feed.ItemPrimaryProperty)
	assert.True(t, feed.ItemsHaveIdentity)
}
