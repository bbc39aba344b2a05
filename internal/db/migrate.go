package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Exercise names are plain data here, never identifiers: the measurement
// rows for all (user, exercise) pairs live in one normalized table, keyed
// by the exercise registration id.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS app_user (
		id SERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		height_cm INTEGER NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS exercise (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES app_user (id),
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT now(),
		UNIQUE (user_id, name)
	);`,
	`CREATE TABLE IF NOT EXISTS measurement (
		id SERIAL PRIMARY KEY,
		exercise_id INTEGER NOT NULL REFERENCES exercise (id) ON DELETE CASCADE,
		sets INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		max_weight_kg DOUBLE PRECISION NOT NULL,
		date DATE NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS measurement_exercise_date_idx
		ON measurement (exercise_id, date DESC, id DESC);`,
}

// Migrate creates the schema if not present yet. Safe to re-run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	log.Debugf("db migrations done [%d statements]", len(migrations))
	return nil
}
