// Package app holds one handler per administrative feed use case. Each
// handler is constructed once from its dependencies and is a stateless
// request-to-result mapping after that, so concurrent calls are safe.
package app

import (
	"github.com/geomanifold/manifold/pkg/manifold"
)

type App struct {
	ListFeedTypes        *HandlerListFeedTypes
	ListFeeds            *HandlerListFeeds
	GetFeed              *HandlerGetFeed
	CreateFeed           *HandlerCreateFeed
	UpdateFeed           *HandlerUpdateFeed
	RemoveFeed           *HandlerRemoveFeed
	GetPreviewParameters *HandlerGetPreviewParameters
	PreviewFeedContent   *HandlerPreviewFeedContent
	FetchFeedContent     *HandlerFetchFeedContent
	AddFeedToEvent       *HandlerAddFeedToEvent
	RefreshFeeds         *HandlerRefreshFeeds
}

func NewApp(
	types FeedTypeStorage,
	feeds FeedStorage,
	events EventStorage,
	sink ContentSink,
	perms manifold.PermissionService,
) *App {
	return &App{
		ListFeedTypes:        NewHandlerListFeedTypes(types, perms),
		ListFeeds:            NewHandlerListFeeds(feeds, perms),
		GetFeed:              NewHandlerGetFeed(feeds, perms),
		CreateFeed:           NewHandlerCreateFeed(types, feeds, perms),
		UpdateFeed:           NewHandlerUpdateFeed(types, feeds, perms),
		RemoveFeed:           NewHandlerRemoveFeed(feeds, perms),
		GetPreviewParameters: NewHandlerGetPreviewParameters(types, feeds),
		PreviewFeedContent:   NewHandlerPreviewFeedContent(types, feeds, perms),
		FetchFeedContent:     NewHandlerFetchFeedContent(types, feeds, perms),
		AddFeedToEvent:       NewHandlerAddFeedToEvent(events, perms),
		RefreshFeeds:         NewHandlerRefreshFeeds(types, feeds, sink),
	}
}

// FeedTypeStorage is the registry of adapter capabilities. FindByID returns
// nil without error when the id is unknown.
type FeedTypeStorage interface {
	ReadAll() ([]manifold.FeedType, error)
	FindByID(id string) (manifold.FeedType, error)
}

// FeedStorage persists administrator-created feed descriptors. Create
// assigns the id. FindByID and RemoveByID return nil without error when the
// id is unknown.
type FeedStorage interface {
	Create(feed *manifold.Feed) (*manifold.Feed, error)
	ReadAll() ([]*manifold.Feed, error)
	FindByID(id string) (*manifold.Feed, error)
	Update(feed *manifold.Feed) (*manifold.Feed, error)
	RemoveByID(id string) (*manifold.Feed, error)
}

// EventStorage appends feeds to events. AddFeedToEvent returns nil without
// error when the event does not exist.
type EventStorage interface {
	AddFeedToEvent(eventID int64, feedID string) (*manifold.MageEvent, error)
}

// ContentSink receives fetched feed content during bulk refresh runs.
type ContentSink interface {
	StoreContent(content *manifold.FeedContent) error
}
