package app

import (
	"context"
	"fmt"
	"log"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const numRefreshWorkers = 10

// HandlerRefreshFeeds walks every feed descriptor, fetches current content
// through its adapter, and hands the result to the sink. It backs the
// periodic refresh port; it is not one of the permission-guarded
// administrative operations.
type HandlerRefreshFeeds struct {
	types FeedTypeStorage
	feeds FeedStorage
	sink  ContentSink
}

func NewHandlerRefreshFeeds(types FeedTypeStorage, feeds FeedStorage, sink ContentSink) *HandlerRefreshFeeds {
	return &HandlerRefreshFeeds{types: types, feeds: feeds, sink: sink}
}

func (h *HandlerRefreshFeeds) Handle(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feeds, err := h.feeds.ReadAll()
	if err != nil {
		return errors.Wrap(err, "error reading feed descriptors")
	}

	chIn := make(chan *manifold.Feed)
	chOut := make(chan feedWithError)

	go func() {
		for _, feed := range feeds {
			feed := feed
			select {
			case chIn <- feed:
				continue
			case <-ctx.Done():
				return
			}
		}
	}()

	h.startWorkers(ctx, chIn, chOut)

	counterSuccess := 0
	counterError := 0

	var resultErr error
	for i := 0; i < len(feeds); i++ {
		select {
		case out := <-chOut:
			if err := out.Err; err != nil {
				resultErr = multierror.Append(resultErr, err)
				counterError++
			} else {
				counterSuccess++
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	metrics.RefreshResults.WithLabelValues("success").Set(float64(counterSuccess))
	metrics.RefreshResults.WithLabelValues("error").Set(float64(counterError))
	log.Printf("[INFO] feed refresh result success=%d error=%d", counterSuccess, counterError)

	return resultErr
}

func (h *HandlerRefreshFeeds) startWorkers(ctx context.Context, chIn chan *manifold.Feed, chOut chan feedWithError) {
	for i := 0; i < numRefreshWorkers; i++ {
		go h.startWorker(ctx, chIn, chOut)
	}
}

func (h *HandlerRefreshFeeds) startWorker(ctx context.Context, chIn chan *manifold.Feed, chOut chan feedWithError) {
	for {
		select {
		case feed := <-chIn:
			err := h.refreshFeed(ctx, feed)
			select {
			case chOut <- feedWithError{Feed: feed, Err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *HandlerRefreshFeeds) refreshFeed(ctx context.Context, feed *manifold.Feed) error {
	log.Printf("[DEBUG] refreshing feed %s (%s)", feed.ID, feed.Service)

	feedType, err := h.types.FindByID(feed.Service)
	if err != nil {
		return errors.Wrapf(err, "error resolving feed type for feed '%s'", feed.ID)
	}
	if feedType == nil {
		return fmt.Errorf("feed '%s' references unregistered feed type '%s'", feed.ID, feed.Service)
	}

	content, err := feedType.FetchContentFromFeed(ctx, feed.ConstantParams)
	if err != nil {
		return errors.Wrapf(err, "error fetching content for feed '%s'", feed.ID)
	}

	content.FeedID = feed.ID
	content.Topic = feed.Topic

	if err := h.sink.StoreContent(content); err != nil {
		return errors.Wrapf(err, "error storing content for feed '%s'", feed.ID)
	}

	return nil
}

type feedWithError struct {
	Feed *manifold.Feed
	Err  error
}
