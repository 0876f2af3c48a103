package adapters

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type FeedStorage struct {
	db *sql.DB
}

func NewFeedStorage(db *sql.DB) *FeedStorage {
	return &FeedStorage{db: db}
}

const feedColumns = `id, service, topic, title, summary,
		items_have_identity, items_have_spatial_dimension,
		item_primary_property, item_secondary_property, item_temporal_property,
		update_frequency_seconds, constant_params, variable_params_schema,
		item_properties_schema, map_style`

func (s *FeedStorage) Create(feed *manifold.Feed) (*manifold.Feed, error) {
	stored := *feed
	stored.ID = uuid.NewString()

	_, err := s.db.Exec(`
		INSERT INTO feeds (`+feedColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		feedRow(&stored)...,
	)
	if err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
		return nil, errors.Wrap(err, "error inserting the new feed")
	}

	log.Printf("[DEBUG] saved feed %s for service %s", stored.ID, stored.Service)
	return &stored, nil
}

func (s *FeedStorage) ReadAll() ([]*manifold.Feed, error) {
	rows, err := s.db.Query(`SELECT ` + feedColumns + ` FROM feeds`)
	if err != nil {
		return nil, errors.Wrap(err, "error getting feed descriptors")
	}
	defer rows.Close() // not much we can do here

	return s.scan(rows)
}

func (s *FeedStorage) FindByID(id string) (*manifold.Feed, error) {
	rows, err := s.db.Query(`SELECT `+feedColumns+` FROM feeds WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "error getting feed descriptor")
	}
	defer rows.Close() // not much we can do here

	feeds, err := s.scan(rows)
	if err != nil {
		return nil, err
	}
	if len(feeds) == 0 {
		return nil, nil
	}
	return feeds[0], nil
}

func (s *FeedStorage) Update(feed *manifold.Feed) (*manifold.Feed, error) {
	row := feedRow(feed)
	// Move the id to the WHERE position.
	args := append(row[1:], row[0])

	result, err := s.db.Exec(`
		UPDATE feeds SET
			service = ?, topic = ?, title = ?, summary = ?,
			items_have_identity = ?, items_have_spatial_dimension = ?,
			item_primary_property = ?, item_secondary_property = ?, item_temporal_property = ?,
			update_frequency_seconds = ?, constant_params = ?, variable_params_schema = ?,
			item_properties_schema = ?, map_style = ?
		WHERE id = ?`,
		args...,
	)
	if err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
		return nil, errors.Wrap(err, "error updating the feed")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "error checking the feed update result")
	}
	if affected == 0 {
		return nil, errors.Errorf("feed %s does not exist", feed.ID)
	}

	stored := *feed
	return &stored, nil
}

func (s *FeedStorage) RemoveByID(id string) (*manifold.Feed, error) {
	feed, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, nil
	}

	if _, err := s.db.Exec(`DELETE FROM feeds WHERE id = ?`, id); err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
		return nil, errors.Wrap(err, "error deleting the feed")
	}

	log.Printf("[DEBUG] deleted feed %s", id)
	return feed, nil
}

func (s *FeedStorage) scan(rows *sql.Rows) ([]*manifold.Feed, error) {
	var items []*manifold.Feed
	for rows.Next() {
		var (
			feed                 manifold.Feed
			summary              sql.NullString
			primary              sql.NullString
			secondary            sql.NullString
			temporal             sql.NullString
			frequency            sql.NullInt64
			constantParams       sql.NullString
			variableParamsSchema sql.NullString
			itemPropertiesSchema sql.NullString
			mapStyle             sql.NullString
		)

		if err := rows.Scan(
			&feed.ID, &feed.Service, &feed.Topic, &feed.Title, &summary,
			&feed.ItemsHaveIdentity, &feed.ItemsHaveSpatialDimension,
			&primary, &secondary, &temporal,
			&frequency, &constantParams, &variableParamsSchema,
			&itemPropertiesSchema, &mapStyle,
		); err != nil {
			metrics.AppErrors.With(prometheus.Labels{"type": "SQL_SCAN"}).Inc()
			return nil, errors.Wrap(err, "error scanning the retrieved rows")
		}

		feed.Summary = nullableString(summary)
		feed.ItemPrimaryProperty = nullableString(primary)
		feed.ItemSecondaryProperty = nullableString(secondary)
		feed.ItemTemporalProperty = nullableString(temporal)
		feed.UpdateFrequencySeconds = nullableInt(frequency)

		if err := decodeJSONColumn(constantParams, &feed.ConstantParams); err != nil {
			return nil, err
		}
		if err := decodeJSONColumn(variableParamsSchema, &feed.VariableParamsSchema); err != nil {
			return nil, err
		}
		if err := decodeJSONColumn(itemPropertiesSchema, &feed.ItemPropertiesSchema); err != nil {
			return nil, err
		}
		if mapStyle.Valid && mapStyle.String != "" {
			var style manifold.MapStyle
			if err := json.Unmarshal([]byte(mapStyle.String), &style); err != nil {
				metrics.AppErrors.With(prometheus.Labels{"type": "JSON_DECODE"}).Inc()
				return nil, errors.Wrap(err, "error decoding the stored map style")
			}
			feed.MapStyle = &style
		}

		items = append(items, &feed)
	}
	return items, nil
}

func feedRow(feed *manifold.Feed) []any {
	return []any{
		feed.ID, feed.Service, feed.Topic, feed.Title, ptrString(feed.Summary),
		feed.ItemsHaveIdentity, feed.ItemsHaveSpatialDimension,
		ptrString(feed.ItemPrimaryProperty), ptrString(feed.ItemSecondaryProperty), ptrString(feed.ItemTemporalProperty),
		ptrInt(feed.UpdateFrequencySeconds),
		encodeJSONColumn(feed.ConstantParams),
		encodeJSONColumn(feed.VariableParamsSchema),
		encodeJSONColumn(feed.ItemPropertiesSchema),
		encodeMapStyle(feed.MapStyle),
	}
}

func ptrString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func encodeJSONColumn(m map[string]any) any {
	if m == nil {
		return nil
	}
	// Marshal of map[string]any cannot fail for JSON-decoded values.
	data, _ := json.Marshal(m)
	return string(data)
}

func encodeMapStyle(style *manifold.MapStyle) any {
	if style == nil {
		return nil
	}
	data, _ := json.Marshal(style)
	return string(data)
}

func decodeJSONColumn(v sql.NullString, into *map[string]any) error {
	if !v.Valid || v.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(v.String), into); err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "JSON_DECODE"}).Inc()
		return errors.Wrap(err, "error decoding a stored JSON column")
	}
	return nil
}
