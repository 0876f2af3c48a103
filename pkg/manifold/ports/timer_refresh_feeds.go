// Package ports drives the use cases from the outside: the periodic refresh
// timer here, the HTTP operations surface in cmd.
package ports

import (
	"context"
	"log"
	"time"
)

type HandlerRefreshFeeds interface {
	Handle(ctx context.Context) error
}

// RefreshFeedsTimer runs the bulk refresh on a fixed interval until the
// context is cancelled. Individual feed failures are logged, never fatal.
type RefreshFeedsTimer struct {
	handler  HandlerRefreshFeeds
	interval time.Duration
}

func NewRefreshFeedsTimer(handler HandlerRefreshFeeds, interval time.Duration) *RefreshFeedsTimer {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &RefreshFeedsTimer{handler: handler, interval: interval}
}

func (h *RefreshFeedsTimer) Run(ctx context.Context) {
	for {
		if err := h.handler.Handle(ctx); err != nil {
			log.Printf("[ERROR] error refreshing feeds: %s", err)
		}

		select {
		case <-time.After(h.interval):
			continue
		case <-ctx.Done():
			return
		}
	}
}
