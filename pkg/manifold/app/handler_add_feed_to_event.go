package app

import (
	"github.com/geomanifold/manifold/pkg/manifold"
)

type HandlerAddFeedToEvent struct {
	events EventStorage
	perms  manifold.PermissionService
}

func NewHandlerAddFeedToEvent(events EventStorage, perms manifold.PermissionService) *HandlerAddFeedToEvent {
	return &HandlerAddFeedToEvent{events: events, perms: perms}
}

// Handle appends the feed to the event's feed list. The storage resolving to
// nil means no such event exists.
func (h *HandlerAddFeedToEvent) Handle(req manifold.RequestContext, eventID int64, feedID string) (*manifold.MageEvent, error) {
	if denied := h.perms.EnsureWriteEvent(req); denied != nil {
		return nil, denied
	}

	event, err := h.events.AddFeedToEvent(eventID, feedID)
	if err != nil {
		return nil, manifold.InternalError(err, "error adding feed to event")
	}
	if event == nil {
		return nil, manifold.EntityNotFoundError("MageEvent", eventID)
	}
	return event, nil
}
