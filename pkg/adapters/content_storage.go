package adapters

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// ContentStorage keeps the latest fetched content per feed and topic. Refresh
// runs overwrite the previous snapshot; history is not kept.
type ContentStorage struct {
	db *sql.DB
}

func NewContentStorage(db *sql.DB) *ContentStorage {
	return &ContentStorage{db: db}
}

func (s *ContentStorage) StoreContent(content *manifold.FeedContent) error {
	items, err := json.Marshal(content.Items)
	if err != nil {
		return errors.Wrap(err, "error encoding the fetched items")
	}

	_, err = s.db.Exec(`
		INSERT INTO feed_content (feed_id, topic, items, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (feed_id, topic) DO UPDATE SET items = excluded.items, fetched_at = excluded.fetched_at`,
		content.FeedID, content.Topic, string(items), time.Now().UTC().Unix(),
	)
	if err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
		return errors.Wrap(err, "error storing the fetched content")
	}

	log.Printf("[DEBUG] stored %d items for feed %s topic %s", len(content.Items), content.FeedID, content.Topic)
	return nil
}
