package app

import (
	"context"
	"testing"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshFeedsStoresContentForEveryFeed(t *testing.T) {
	feedType := &stubFeedType{
		id: "nws",
		fetchFn: func(map[string]any) (*manifold.FeedContent, error) {
			return &manifold.FeedContent{Items: []map[string]any{{"title": "item"}}}, nil
		},
	}
	types := &stubTypeStorage{types: []manifold.FeedType{feedType}}
	feeds := newStubFeedStorage()
	for i := 0; i < 3; i++ {
		feeds.nextID = string(rune('a' + i))
		_, err := feeds.Create(&manifold.Feed{Service: "nws", Title: "f"})
		require.NoError(t, err)
	}
	sink := &stubSink{}

	handler := NewHandlerRefreshFeeds(types, feeds, sink)
	err := handler.Handle(context.Background())

	require.NoError(t, err)
	assert.Len(t, sink.stored, 3)
}

func TestRefreshFeedsAggregatesPerFeedFailures(t *testing.T) {
	feedType := &stubFeedType{
		id: "nws",
		fetchFn: func(map[string]any) (*manifold.FeedContent, error) {
			return nil, errors.New("upstream down")
		},
	}
	types := &stubTypeStorage{types: []manifold.FeedType{feedType}}
	feeds := newStubFeedStorage()
	feeds.nextID = "a"
	_, err := feeds.Create(&manifold.Feed{Service: "nws", Title: "f"})
	require.NoError(t, err)
	feeds.nextID = "b"
	_, err = feeds.Create(&manifold.Feed{Service: "orphaned", Title: "g"})
	require.NoError(t, err)

	sink := &stubSink{}
	handler := NewHandlerRefreshFeeds(types, feeds, sink)

	err = handler.Handle(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "upstream down")
	assert.ErrorContains(t, err, "unregistered feed type")
	assert.Empty(t, sink.stored)
}

func TestRefreshFeedsWithNoFeedsIsANoOp(t *testing.T) {
	handler := NewHandlerRefreshFeeds(&stubTypeStorage{}, newStubFeedStorage(), &stubSink{})
	assert.NoError(t, handler.Handle(context.Background()))
}
