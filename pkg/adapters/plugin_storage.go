package adapters

import (
	"database/sql"
	"encoding/json"

	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/geomanifold/manifold/pkg/plugins"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type PluginStorage struct {
	db *sql.DB
}

func NewPluginStorage(db *sql.DB) *PluginStorage {
	return &PluginStorage{db: db}
}

const pluginColumns = `id, version, title, summary, enabled, settings_schema, settings, state_log`

func (s *PluginStorage) ReadAll() ([]*plugins.PluginDescriptor, error) {
	rows, err := s.db.Query(`SELECT ` + pluginColumns + ` FROM plugins`)
	if err != nil {
		return nil, errors.Wrap(err, "error getting plugin descriptors")
	}
	defer rows.Close() // not much we can do here

	return s.scan(rows)
}

func (s *PluginStorage) FindByID(id string) (*plugins.PluginDescriptor, error) {
	rows, err := s.db.Query(`SELECT `+pluginColumns+` FROM plugins WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "error getting plugin descriptor")
	}
	defer rows.Close() // not much we can do here

	descriptors, err := s.scan(rows)
	if err != nil {
		return nil, err
	}
	if len(descriptors) == 0 {
		return nil, nil
	}
	return descriptors[0], nil
}

func (s *PluginStorage) Create(d *plugins.PluginDescriptor) (*plugins.PluginDescriptor, error) {
	_, err := s.db.Exec(`
		INSERT INTO plugins (`+pluginColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		pluginRow(d)...,
	)
	if err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
		return nil, errors.Wrap(err, "error inserting the plugin descriptor")
	}
	return d, nil
}

// Update replaces the whole row in a single statement; sqlite's per-row
// write serialization is the atomicity the plugin use cases rely on.
func (s *PluginStorage) Update(d *plugins.PluginDescriptor) (*plugins.PluginDescriptor, error) {
	row := pluginRow(d)
	args := append(row[1:], row[0])

	result, err := s.db.Exec(`
		UPDATE plugins SET
			version = ?, title = ?, summary = ?, enabled = ?,
			settings_schema = ?, settings = ?, state_log = ?
		WHERE id = ?`,
		args...,
	)
	if err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
		return nil, errors.Wrap(err, "error updating the plugin descriptor")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "error checking the plugin update result")
	}
	if affected == 0 {
		return nil, errors.Errorf("plugin %s does not exist", d.ID)
	}
	return d, nil
}

func (s *PluginStorage) scan(rows *sql.Rows) ([]*plugins.PluginDescriptor, error) {
	var items []*plugins.PluginDescriptor
	for rows.Next() {
		var (
			d              plugins.PluginDescriptor
			summary        sql.NullString
			settingsSchema sql.NullString
			settings       sql.NullString
			stateLog       sql.NullString
		)

		if err := rows.Scan(&d.ID, &d.Version, &d.Title, &summary, &d.Enabled, &settingsSchema, &settings, &stateLog); err != nil {
			metrics.AppErrors.With(prometheus.Labels{"type": "SQL_SCAN"}).Inc()
			return nil, errors.Wrap(err, "error scanning the retrieved rows")
		}

		d.Summary = nullableString(summary)
		if err := decodeJSONColumn(settingsSchema, &d.SettingsSchema); err != nil {
			return nil, err
		}
		if err := decodeJSONColumn(settings, &d.Settings); err != nil {
			return nil, err
		}
		if d.Settings == nil {
			d.Settings = map[string]any{}
		}
		if stateLog.Valid && stateLog.String != "" {
			if err := json.Unmarshal([]byte(stateLog.String), &d.StateLog); err != nil {
				metrics.AppErrors.With(prometheus.Labels{"type": "JSON_DECODE"}).Inc()
				return nil, errors.Wrap(err, "error decoding the plugin state log")
			}
		}

		items = append(items, &d)
	}
	return items, nil
}

func pluginRow(d *plugins.PluginDescriptor) []any {
	stateLog, _ := json.Marshal(d.StateLog)
	settings, _ := json.Marshal(d.Settings)
	return []any{
		d.ID, d.Version, d.Title, ptrString(d.Summary), d.Enabled,
		encodeJSONColumn(d.SettingsSchema),
		string(settings),
		string(stateLog),
	}
}
