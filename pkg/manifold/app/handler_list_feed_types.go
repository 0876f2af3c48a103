package app

import (
	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
)

type HandlerListFeedTypes struct {
	types FeedTypeStorage
	perms manifold.PermissionService
}

func NewHandlerListFeedTypes(types FeedTypeStorage, perms manifold.PermissionService) *HandlerListFeedTypes {
	return &HandlerListFeedTypes{types: types, perms: perms}
}

// Handle returns every registered feed type in repository order.
func (h *HandlerListFeedTypes) Handle(req manifold.RequestContext) ([]manifold.FeedType, error) {
	if denied := h.perms.EnsureListFeedTypes(req); denied != nil {
		return nil, denied
	}

	metrics.FeedTypeListRequests.Inc()

	types, err := h.types.ReadAll()
	if err != nil {
		return nil, manifold.InternalError(err, "error reading feed types")
	}
	return types, nil
}
