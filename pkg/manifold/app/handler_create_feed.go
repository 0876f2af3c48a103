package app

import (
	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/go-playground/validator/v10"
)

type HandlerCreateFeed struct {
	types    FeedTypeStorage
	feeds    FeedStorage
	perms    manifold.PermissionService
	validate *validator.Validate
}

func NewHandlerCreateFeed(types FeedTypeStorage, feeds FeedStorage, perms manifold.PermissionService) *HandlerCreateFeed {
	return &HandlerCreateFeed{
		types:    types,
		feeds:    feeds,
		perms:    perms,
		validate: validator.New(),
	}
}

// Handle validates the adapter reference, normalizes the attributes against
// the selected topic, and persists the descriptor. A missing or unknown
// service reference is the caller's fault (InvalidInput), and nothing is
// persisted in that case.
func (h *HandlerCreateFeed) Handle(req manifold.RequestContext, attrs manifold.FeedCreateAttrs) (*manifold.Feed, error) {
	if denied := h.perms.EnsureCreateFeed(req); denied != nil {
		return nil, denied
	}

	if err := h.validate.Struct(attrs); err != nil {
		return nil, manifold.InvalidInputError("invalid feed attributes: %v", err)
	}

	feedType, err := h.types.FindByID(attrs.Service)
	if err != nil {
		return nil, manifold.InternalError(err, "error resolving feed type "+attrs.Service)
	}
	if feedType == nil {
		return nil, manifold.InvalidInputError("feed type %q is not registered", attrs.Service)
	}

	var topic *manifold.FeedTopic
	if attrs.Topic != "" {
		topic = manifold.TopicByID(feedType, attrs.Topic)
		if topic == nil {
			return nil, manifold.InvalidInputError("feed type %q has no topic %q", attrs.Service, attrs.Topic)
		}
	}

	normalized := manifold.Normalize(topic, attrs)

	created, err := h.feeds.Create(manifold.FeedFromAttrs("", normalized))
	if err != nil {
		return nil, manifold.InternalError(err, "error persisting the feed")
	}

	metrics.FeedCreateRequests.Inc()

	return created, nil
}
