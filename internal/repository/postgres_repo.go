package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"truckbook/internal/db"
)

const createVehiclesTable = `
CREATE TABLE IF NOT EXISTS vehicles (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL UNIQUE,
	free     BOOLEAN NOT NULL DEFAULT TRUE,
	occupant TEXT
)`

type PostgresFleetStore struct {
	DB      *sql.DB
	Default db.Fleet
}

func NewPostgresFleetStore(database *sql.DB, defaultFleet db.Fleet) *PostgresFleetStore {
	return &PostgresFleetStore{DB: database, Default: defaultFleet.Clone()}
}

// Migrate creates the vehicles table if it does not exist.
func (r *PostgresFleetStore) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createVehiclesTable); err != nil {
		return fmt.Errorf("error creating vehicles table: %w", err)
	}
	return nil
}

// Load returns the roster ordered by position, or the default roster when
// the table is empty.
func (r *PostgresFleetStore) Load(ctx context.Context) (db.Fleet, error) {
	query := `SELECT id, name, free, occupant FROM vehicles ORDER BY position`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var fleet db.Fleet
	for rows.Next() {
		var v db.Vehicle
		var occupant sql.NullString
		if err := rows.Scan(&v.ID, &v.Name, &v.Free, &occupant); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		if occupant.Valid {
			o := occupant.String
			v.Occupant = &o
		}
		fleet = append(fleet, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicles: %w", err)
	}

	if len(fleet) == 0 {
		log.Info("Vehicles table is empty, starting from default roster")
		return r.Default.Clone(), nil
	}
	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	return fleet, nil
}

// Save upserts every vehicle and drops rows that are no longer in the roster,
// all in one transaction.
func (r *PostgresFleetStore) Save(ctx context.Context, fleet db.Fleet) error {
	if err := fleet.Validate(); err != nil {
		return fmt.Errorf("refusing to save roster: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(fleet))
	for _, v := range fleet {
		ids = append(ids, v.ID)
	}
	// Stale rows go first: a vehicle name may move to a new id.
	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicles WHERE id <> ALL($1)`, pq.Array(ids)); err != nil {
		return fmt.Errorf("error deleting stale vehicles: %w", err)
	}

	upsert := `
	INSERT INTO vehicles (id, position, name, free, occupant)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET position = EXCLUDED.position,
		name = EXCLUDED.name,
		free = EXCLUDED.free,
		occupant = EXCLUDED.occupant`
	for i, v := range fleet {
		var occupant sql.NullString
		if v.Occupant != nil {
			occupant = sql.NullString{String: *v.Occupant, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, upsert, v.ID, i, v.Name, v.Free, occupant); err != nil {
			return fmt.Errorf("error saving vehicle %q: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing roster: %w", err)
	}
	return nil
}
