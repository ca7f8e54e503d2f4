// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/common/database"
	"dealer-benchmark/internal/common/logger"
)

// ErrNotFound is returned when a vehicle id has no catalog row.
var ErrNotFound = errors.New("catalog: vehicle not found")

const defaultListLimit = 50

// PostgresStore reads vehicles from the relational catalog. Each row keeps
// the full attribute map as JSONB so new template fields never require a
// schema migration.
type PostgresStore struct {
	db     *database.PostgresClient
	logger logger.Logger
}

// NewPostgresStore creates a catalog store backed by PostgreSQL.
func NewPostgresStore(db *database.PostgresClient, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-postgres"}),
	}
}

// Get fetches a single vehicle by catalog id.
func (s *PostgresStore) Get(ctx context.Context, id string) (record.Vehicle, error) {
	const query = `SELECT attributes FROM vehicles WHERE id = $1`

	var raw []byte
	err := s.db.QueryRow(ctx, query, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query vehicle %s: %w", id, err)
	}

	return decodeAttributes(raw)
}

// List returns vehicles matching the filter, newest catalog entries first.
func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]record.Vehicle, error) {
	query := `SELECT attributes FROM vehicles WHERE 1=1`
	args := []interface{}{}

	if filter.Brand != "" {
		args = append(args, filter.Brand)
		query += fmt.Sprintf(` AND lower(brand) = lower($%d)`, len(args))
	}
	if filter.Model != "" {
		args = append(args, filter.Model)
		query += fmt.Sprintf(` AND lower(model) = lower($%d)`, len(args))
	}
	if filter.Segment != "" {
		args = append(args, filter.Segment)
		query += fmt.Sprintf(` AND segment = $%d`, len(args))
	}
	if filter.ModelYear != 0 {
		args = append(args, filter.ModelYear)
		query += fmt.Sprintf(` AND model_year = $%d`, len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY updated_at DESC LIMIT $%d`, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []record.Vehicle
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		v, err := decodeAttributes(raw)
		if err != nil {
			s.logger.WithError(err).Warn("Skipping undecodable catalog row", nil)
			continue
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicle rows: %w", err)
	}

	return vehicles, nil
}

func decodeAttributes(raw []byte) (record.Vehicle, error) {
	var v record.Vehicle
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode vehicle attributes: %w", err)
	}
	return v, nil
}
