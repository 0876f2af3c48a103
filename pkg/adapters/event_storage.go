package adapters

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slices"
)

type EventStorage struct {
	db *sql.DB
}

func NewEventStorage(db *sql.DB) *EventStorage {
	return &EventStorage{db: db}
}

// AddFeedToEvent appends the feed id to the event's feed list inside one
// transaction, so two concurrent assignments to the same event cannot lose
// each other's write. Resolves to nil when the event does not exist.
func (s *EventStorage) AddFeedToEvent(eventID int64, feedID string) (*manifold.MageEvent, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "error opening a transaction")
	}
	defer tx.Rollback() // no-op after commit

	row := tx.QueryRow(`SELECT name, description, feeds FROM events WHERE id = ?`, eventID)

	var (
		event       manifold.MageEvent
		description sql.NullString
		raw         sql.NullString
	)
	err = row.Scan(&event.Name, &description, &raw)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_SCAN"}).Inc()
		return nil, errors.Wrap(err, "error reading the event")
	}
	event.ID = eventID
	event.Description = description.String

	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &event.FeedIDs); err != nil {
			metrics.AppErrors.With(prometheus.Labels{"type": "JSON_DECODE"}).Inc()
			return nil, errors.Wrap(err, "error decoding the event feed list")
		}
	}

	if !slices.Contains(event.FeedIDs, feedID) {
		event.FeedIDs = append(event.FeedIDs, feedID)

		encoded, _ := json.Marshal(event.FeedIDs)
		if _, err := tx.Exec(`UPDATE events SET feeds = ? WHERE id = ?`, string(encoded), eventID); err != nil {
			metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
			return nil, errors.Wrap(err, "error updating the event feed list")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "error committing the event update")
	}

	log.Printf("[DEBUG] event %d now carries feed %s", eventID, feedID)
	return &event, nil
}
