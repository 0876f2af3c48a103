package manifold

import "context"

// FeedType is the pluggable adapter capability describing how to connect to
// and normalize one class of external data source. Implementations are
// contributed by plugin modules and registered once at startup; they are
// immutable for the process lifetime.
type FeedType interface {
	ID() string
	Title() string
	Summary() string

	// ConstantParamsSchema describes the configuration fixed on the feed
	// descriptor at creation time; VariableParamsSchema describes the
	// parameters a caller may vary per content request. Both are JSON
	// Schema fragments.
	ConstantParamsSchema() map[string]any
	VariableParamsSchema() map[string]any

	// Topics lists the content varieties this type can produce. May be
	// empty for single-variety types.
	Topics() []FeedTopic

	PreviewContent(ctx context.Context, params map[string]any) (*FeedContent, error)
	FetchContentFromFeed(ctx context.Context, params map[string]any) (*FeedContent, error)
}

// TopicByID resolves one of a feed type's topics. Returns nil when the type
// exposes no such topic.
func TopicByID(t FeedType, topicID string) *FeedTopic {
	for _, topic := range t.Topics() {
		if topic.ID == topicID {
			topic := topic
			return &topic
		}
	}
	return nil
}

// FeedTopic is a read-only template of default attributes a feed type offers
// for one content variety. Pointer fields are absent defaults.
type FeedTopic struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`

	ItemsHaveIdentity         bool `json:"itemsHaveIdentity"`
	ItemsHaveSpatialDimension bool `json:"itemsHaveSpatialDimension"`

	ItemPrimaryProperty    *string `json:"itemPrimaryProperty,omitempty"`
	ItemSecondaryProperty  *string `json:"itemSecondaryProperty,omitempty"`
	ItemTemporalProperty   *string `json:"itemTemporalProperty,omitempty"`
	UpdateFrequencySeconds *int    `json:"updateFrequencySeconds,omitempty"`

	ParamsSchema         map[string]any `json:"paramsSchema,omitempty"`
	ItemPropertiesSchema map[string]any `json:"itemPropertiesSchema,omitempty"`
	MapStyle             *MapStyle      `json:"mapStyle,omitempty"`
}

// MapStyle is a rendering hint for feed items placed on the map.
type MapStyle struct {
	IconURL       string   `json:"iconUrl,omitempty"`
	StrokeColor   string   `json:"strokeColor,omitempty"`
	StrokeOpacity *float64 `json:"strokeOpacity,omitempty"`
	StrokeWidth   *float64 `json:"strokeWidth,omitempty"`
	FillColor     string   `json:"fillColor,omitempty"`
	FillOpacity   *float64 `json:"fillOpacity,omitempty"`
}

// Feed is a persisted, administrator-created source descriptor. Service must
// reference a registered FeedType at creation time; pointer and map fields
// are omitted attributes.
type Feed struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	Topic   string `json:"topic,omitempty"`

	Title   string  `json:"title"`
	Summary *string `json:"summary,omitempty"`

	ItemsHaveIdentity         bool `json:"itemsHaveIdentity"`
	ItemsHaveSpatialDimension bool `json:"itemsHaveSpatialDimension"`

	ItemPrimaryProperty    *string `json:"itemPrimaryProperty,omitempty"`
	ItemSecondaryProperty  *string `json:"itemSecondaryProperty,omitempty"`
	ItemTemporalProperty   *string `json:"itemTemporalProperty,omitempty"`
	UpdateFrequencySeconds *int    `json:"updateFrequencySeconds,omitempty"`

	ConstantParams       map[string]any `json:"constantParams,omitempty"`
	VariableParamsSchema map[string]any `json:"variableParamsSchema,omitempty"`
	ItemPropertiesSchema map[string]any `json:"itemPropertiesSchema,omitempty"`
	MapStyle             *MapStyle      `json:"mapStyle,omitempty"`
}

// FeedCreateAttrs is the caller-supplied attribute set for creating or
// updating a feed descriptor, before normalization against the topic.
type FeedCreateAttrs struct {
	Service string `json:"service" validate:"required"`
	Topic   string `json:"topic"`
	Title   string `json:"title"`

	Summary Opt[string] `json:"summary"`

	ItemsHaveIdentity         Opt[bool] `json:"itemsHaveIdentity"`
	ItemsHaveSpatialDimension Opt[bool] `json:"itemsHaveSpatialDimension"`

	ItemPrimaryProperty    Opt[string] `json:"itemPrimaryProperty"`
	ItemSecondaryProperty  Opt[string] `json:"itemSecondaryProperty"`
	ItemTemporalProperty   Opt[string] `json:"itemTemporalProperty"`
	UpdateFrequencySeconds Opt[int]    `json:"updateFrequencySeconds"`

	ConstantParams       Opt[map[string]any] `json:"constantParams"`
	VariableParamsSchema Opt[map[string]any] `json:"variableParamsSchema"`
	ItemPropertiesSchema Opt[map[string]any] `json:"itemPropertiesSchema"`
	MapStyle             Opt[MapStyle]       `json:"mapStyle"`
}

// FeedFromAttrs builds the persisted entity from a normalized attribute set.
func FeedFromAttrs(id string, attrs FeedCreateAttrs) *Feed {
	return &Feed{
		ID:                        id,
		Service:                   attrs.Service,
		Topic:                     attrs.Topic,
		Title:                     attrs.Title,
		Summary:                   ptrFromOpt(attrs.Summary),
		ItemsHaveIdentity:         attrs.ItemsHaveIdentity.MustValue(),
		ItemsHaveSpatialDimension: attrs.ItemsHaveSpatialDimension.MustValue(),
		ItemPrimaryProperty:       ptrFromOpt(attrs.ItemPrimaryProperty),
		ItemSecondaryProperty:     ptrFromOpt(attrs.ItemSecondaryProperty),
		ItemTemporalProperty:      ptrFromOpt(attrs.ItemTemporalProperty),
		UpdateFrequencySeconds:    ptrFromOpt(attrs.UpdateFrequencySeconds),
		ConstantParams:            attrs.ConstantParams.MustValue(),
		VariableParamsSchema:      attrs.VariableParamsSchema.MustValue(),
		ItemPropertiesSchema:      attrs.ItemPropertiesSchema.MustValue(),
		MapStyle:                  ptrFromOpt(attrs.MapStyle),
	}
}

// FeedContent is the normalized result of an adapter preview or fetch.
type FeedContent struct {
	FeedID string           `json:"feed,omitempty"`
	Topic  string           `json:"topic,omitempty"`
	Items  []map[string]any `json:"items"`

	// PageCursor is adapter-defined pagination state, opaque to this core.
	PageCursor any `json:"pageCursor,omitempty"`
}
