package app

import (
	"context"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
)

// PreviewParameters presents the parameter schemas an administrator fills
// in before previewing a feed's content.
type PreviewParameters struct {
	ConstantParamsSchema map[string]any `json:"constantParamsSchema,omitempty"`
	VariableParamsSchema map[string]any `json:"variableParamsSchema,omitempty"`
	ConstantParams       map[string]any `json:"constantParams,omitempty"`
}

type HandlerGetPreviewParameters struct {
	types FeedTypeStorage
	feeds FeedStorage
}

func NewHandlerGetPreviewParameters(types FeedTypeStorage, feeds FeedStorage) *HandlerGetPreviewParameters {
	return &HandlerGetPreviewParameters{types: types, feeds: feeds}
}

func (h *HandlerGetPreviewParameters) Handle(feedID string) (*PreviewParameters, error) {
	feed, feedType, err := resolveFeedAndType(h.feeds, h.types, feedID)
	if err != nil {
		return nil, err
	}

	variableSchema := feed.VariableParamsSchema
	if variableSchema == nil {
		variableSchema = feedType.VariableParamsSchema()
	}

	return &PreviewParameters{
		ConstantParamsSchema: feedType.ConstantParamsSchema(),
		VariableParamsSchema: variableSchema,
		ConstantParams:       feed.ConstantParams,
	}, nil
}

type HandlerPreviewFeedContent struct {
	types FeedTypeStorage
	feeds FeedStorage
	perms manifold.PermissionService
}

func NewHandlerPreviewFeedContent(types FeedTypeStorage, feeds FeedStorage, perms manifold.PermissionService) *HandlerPreviewFeedContent {
	return &HandlerPreviewFeedContent{types: types, feeds: feeds, perms: perms}
}

func (h *HandlerPreviewFeedContent) Handle(ctx context.Context, req manifold.RequestContext, feedID string, variableParams map[string]any) (*manifold.FeedContent, error) {
	if denied := h.perms.EnsureCreateFeed(req); denied != nil {
		return nil, denied
	}

	feed, feedType, err := resolveFeedAndType(h.feeds, h.types, feedID)
	if err != nil {
		return nil, err
	}

	metrics.FeedPreviewRequests.Inc()

	content, err := feedType.PreviewContent(ctx, mergeParams(feed.ConstantParams, variableParams))
	if err != nil {
		return nil, adapterError(err, "preview")
	}

	content.FeedID = feed.ID
	content.Topic = feed.Topic
	return content, nil
}

type HandlerFetchFeedContent struct {
	types FeedTypeStorage
	feeds FeedStorage
	perms manifold.PermissionService
}

func NewHandlerFetchFeedContent(types FeedTypeStorage, feeds FeedStorage, perms manifold.PermissionService) *HandlerFetchFeedContent {
	return &HandlerFetchFeedContent{types: types, feeds: feeds, perms: perms}
}

func (h *HandlerFetchFeedContent) Handle(ctx context.Context, req manifold.RequestContext, feedID string, variableParams map[string]any) (*manifold.FeedContent, error) {
	if denied := h.perms.EnsureFetchFeedContent(req); denied != nil {
		return nil, denied
	}

	feed, feedType, err := resolveFeedAndType(h.feeds, h.types, feedID)
	if err != nil {
		return nil, err
	}

	metrics.ContentFetchRequests.Inc()

	content, err := feedType.FetchContentFromFeed(ctx, mergeParams(feed.ConstantParams, variableParams))
	if err != nil {
		return nil, adapterError(err, "fetch")
	}

	content.FeedID = feed.ID
	content.Topic = feed.Topic
	return content, nil
}
