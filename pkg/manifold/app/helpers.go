package app

import (
	"errors"
	"fmt"

	"github.com/geomanifold/manifold/pkg/manifold"
)

// resolveFeedAndType runs the shared resolution chain: the feed by id, then
// its adapter's type. A missing feed is the caller's problem
// (EntityNotFound); a feed whose stored service reference no longer resolves
// is a data-integrity fault and surfaces as an internal error instead.
func resolveFeedAndType(feeds FeedStorage, types FeedTypeStorage, feedID string) (*manifold.Feed, manifold.FeedType, error) {
	feed, err := feeds.FindByID(feedID)
	if err != nil {
		return nil, nil, manifold.InternalError(err, "error reading feed "+feedID)
	}
	if feed == nil {
		return nil, nil, manifold.EntityNotFoundError("Feed", feedID)
	}

	feedType, err := types.FindByID(feed.Service)
	if err != nil {
		return nil, nil, manifold.InternalError(err, "error resolving feed type "+feed.Service)
	}
	if feedType == nil {
		return nil, nil, manifold.InternalError(nil,
			fmt.Sprintf("feed %s references unregistered feed type %s", feedID, feed.Service))
	}

	return feed, feedType, nil
}

// mergeParams overlays per-request variable parameters on the descriptor's
// constant parameters. Neither input map is mutated.
func mergeParams(constant map[string]any, variable map[string]any) map[string]any {
	merged := make(map[string]any, len(constant)+len(variable))
	for k, v := range constant {
		merged[k] = v
	}
	for k, v := range variable {
		merged[k] = v
	}
	return merged
}

// adapterError normalizes a failure from a feed type adapter: a recognized
// parameter-validation failure is the caller's fault, anything else is not.
func adapterError(err error, operation string) error {
	var invalid *manifold.InvalidParamsError
	if errors.As(err, &invalid) {
		return manifold.InvalidInputError("%s rejected the feed parameters: %v", operation, invalid.Problems)
	}
	return manifold.InternalError(err, operation+" failed")
}
