package app

import (
	"github.com/geomanifold/manifold/pkg/manifold"
)

type HandlerUpdateFeed struct {
	types FeedTypeStorage
	feeds FeedStorage
	perms manifold.PermissionService
}

func NewHandlerUpdateFeed(types FeedTypeStorage, feeds FeedStorage, perms manifold.PermissionService) *HandlerUpdateFeed {
	return &HandlerUpdateFeed{types: types, feeds: feeds, perms: perms}
}

// Handle re-normalizes the supplied attributes against the stored feed's
// topic and persists the result. The service reference is immutable after
// creation; whatever the caller sends, the stored one stays.
func (h *HandlerUpdateFeed) Handle(req manifold.RequestContext, feedID string, attrs manifold.FeedCreateAttrs) (*manifold.Feed, error) {
	if denied := h.perms.EnsureCreateFeed(req); denied != nil {
		return nil, denied
	}

	stored, feedType, err := resolveFeedAndType(h.feeds, h.types, feedID)
	if err != nil {
		return nil, err
	}

	attrs.Service = stored.Service
	if attrs.Topic == "" {
		attrs.Topic = stored.Topic
	}

	var topic *manifold.FeedTopic
	if attrs.Topic != "" {
		topic = manifold.TopicByID(feedType, attrs.Topic)
		if topic == nil {
			return nil, manifold.InvalidInputError("feed type %q has no topic %q", stored.Service, attrs.Topic)
		}
	}

	normalized := manifold.Normalize(topic, attrs)

	updated, err := h.feeds.Update(manifold.FeedFromAttrs(stored.ID, normalized))
	if err != nil {
		return nil, manifold.InternalError(err, "error persisting feed "+feedID)
	}
	return updated, nil
}

type HandlerRemoveFeed struct {
	feeds FeedStorage
	perms manifold.PermissionService
}

func NewHandlerRemoveFeed(feeds FeedStorage, perms manifold.PermissionService) *HandlerRemoveFeed {
	return &HandlerRemoveFeed{feeds: feeds, perms: perms}
}

func (h *HandlerRemoveFeed) Handle(req manifold.RequestContext, feedID string) (*manifold.Feed, error) {
	if denied := h.perms.EnsureCreateFeed(req); denied != nil {
		return nil, denied
	}

	removed, err := h.feeds.RemoveByID(feedID)
	if err != nil {
		return nil, manifold.InternalError(err, "error removing feed "+feedID)
	}
	if removed == nil {
		return nil, manifold.EntityNotFoundError("Feed", feedID)
	}
	return removed, nil
}
