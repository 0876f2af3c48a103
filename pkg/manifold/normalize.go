package manifold

// Normalize merges a topic template with caller-supplied feed attributes
// into the final attribute set to persist. It is a pure function: same
// inputs, same output, and running the output through it again changes
// nothing.
//
// Precedence:
//   - title: the feed's non-empty title wins, otherwise the topic's.
//   - itemsHaveIdentity / itemsHaveSpatialDimension: the feed's value wins
//     when the key carries one (an explicit false counts), otherwise the
//     topic's.
//   - itemPrimaryProperty / itemSecondaryProperty / itemTemporalProperty:
//     the feed's value wins; an absent key falls back to the topic; an
//     explicit null stays null, so the key is dropped when the attributes
//     are lowered onto the entity, even when the topic has a value.
//   - updateFrequencySeconds, constantParams, variableParamsSchema,
//     mapStyle, itemPropertiesSchema: feed value, else topic value, else
//     omitted.
//   - summary, service, topic: feed-owned, never templated.
//
// A nil topic behaves like an empty template.
func Normalize(topic *FeedTopic, attrs FeedCreateAttrs) FeedCreateAttrs {
	if topic == nil {
		topic = &FeedTopic{}
	}

	out := FeedCreateAttrs{
		Service: attrs.Service,
		Topic:   attrs.Topic,
		Title:   attrs.Title,
	}

	if out.Title == "" {
		out.Title = topic.Title
	}

	if v, ok := attrs.Summary.Value(); ok {
		out.Summary = Some(v)
	}

	out.ItemsHaveIdentity = valueOr(attrs.ItemsHaveIdentity, Some(topic.ItemsHaveIdentity))
	out.ItemsHaveSpatialDimension = valueOr(attrs.ItemsHaveSpatialDimension, Some(topic.ItemsHaveSpatialDimension))

	out.ItemPrimaryProperty = clearable(attrs.ItemPrimaryProperty, topic.ItemPrimaryProperty)
	out.ItemSecondaryProperty = clearable(attrs.ItemSecondaryProperty, topic.ItemSecondaryProperty)
	out.ItemTemporalProperty = clearable(attrs.ItemTemporalProperty, topic.ItemTemporalProperty)

	out.UpdateFrequencySeconds = valueOr(attrs.UpdateFrequencySeconds, optFromPtr(topic.UpdateFrequencySeconds))
	out.ConstantParams = valueOr(attrs.ConstantParams, None[map[string]any]())
	out.VariableParamsSchema = valueOr(attrs.VariableParamsSchema, mapOpt(topic.ParamsSchema))
	out.ItemPropertiesSchema = valueOr(attrs.ItemPropertiesSchema, mapOpt(topic.ItemPropertiesSchema))
	out.MapStyle = valueOr(attrs.MapStyle, optFromPtr(topic.MapStyle))

	return out
}

// valueOr keeps the feed's value when it carries one and falls back to the
// topic default otherwise. Explicit nulls fall back too; only the clearable
// item-property keys treat null specially.
func valueOr[T any](feed Opt[T], fallback Opt[T]) Opt[T] {
	if feed.HasValue() {
		return feed
	}
	return fallback
}

// clearable applies the clear-on-null rule: absence falls back to the topic
// default, while an explicit null is kept as null. Keeping the null marker
// makes the cleared key a fixed point under re-normalization instead of
// falling back to the topic again.
func clearable(feed Opt[string], topicDefault *string) Opt[string] {
	switch {
	case feed.IsNull():
		return Null[string]()
	case feed.HasValue():
		return feed
	default:
		return optFromPtr(topicDefault)
	}
}

func mapOpt(m map[string]any) Opt[map[string]any] {
	if m == nil {
		return None[map[string]any]()
	}
	return Some(m)
}
