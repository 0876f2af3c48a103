package app

import (
	"github.com/geomanifold/manifold/pkg/manifold"
)

type HandlerListFeeds struct {
	feeds FeedStorage
	perms manifold.PermissionService
}

func NewHandlerListFeeds(feeds FeedStorage, perms manifold.PermissionService) *HandlerListFeeds {
	return &HandlerListFeeds{feeds: feeds, perms: perms}
}

func (h *HandlerListFeeds) Handle(req manifold.RequestContext) ([]*manifold.Feed, error) {
	if denied := h.perms.EnsureListFeeds(req); denied != nil {
		return nil, denied
	}

	feeds, err := h.feeds.ReadAll()
	if err != nil {
		return nil, manifold.InternalError(err, "error reading feeds")
	}
	return feeds, nil
}

type HandlerGetFeed struct {
	feeds FeedStorage
	perms manifold.PermissionService
}

func NewHandlerGetFeed(feeds FeedStorage, perms manifold.PermissionService) *HandlerGetFeed {
	return &HandlerGetFeed{feeds: feeds, perms: perms}
}

func (h *HandlerGetFeed) Handle(req manifold.RequestContext, feedID string) (*manifold.Feed, error) {
	if denied := h.perms.EnsureListFeeds(req); denied != nil {
		return nil, denied
	}

	feed, err := h.feeds.FindByID(feedID)
	if err != nil {
		return nil, manifold.InternalError(err, "error reading feed "+feedID)
	}
	if feed == nil {
		return nil, manifold.EntityNotFoundError("Feed", feedID)
	}
	return feed, nil
}
