package adapters

import (
	"database/sql"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type PermissionStorage struct {
	db *sql.DB
}

func NewPermissionStorage(db *sql.DB) *PermissionStorage {
	return &PermissionStorage{db: db}
}

func (s *PermissionStorage) PermissionsForUser(userID string) ([]manifold.Permission, error) {
	rows, err := s.db.Query(`SELECT permission FROM user_permissions WHERE user_id = ?`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "error getting user permissions")
	}
	defer rows.Close() // not much we can do here

	var granted []manifold.Permission
	for rows.Next() {
		var permission string
		if err := rows.Scan(&permission); err != nil {
			metrics.AppErrors.With(prometheus.Labels{"type": "SQL_SCAN"}).Inc()
			return nil, errors.Wrap(err, "error scanning the retrieved rows")
		}
		granted = append(granted, manifold.Permission(permission))
	}
	return granted, nil
}

func (s *PermissionStorage) Grant(userID string, permission manifold.Permission) error {
	_, err := s.db.Exec(`
		INSERT INTO user_permissions (user_id, permission) VALUES (?, ?)
		ON CONFLICT (user_id, permission) DO NOTHING`,
		userID, string(permission),
	)
	if err != nil {
		metrics.AppErrors.With(prometheus.Labels{"type": "SQL_WRITE"}).Inc()
		return errors.Wrap(err, "error granting the permission")
	}
	return nil
}

