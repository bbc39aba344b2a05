package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PlazzaA/entrename/internal/telemetry/tracing"
	"github.com/PlazzaA/entrename/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseExists   = errors.New("exercise already registered")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Register adds a new exercise to the user's registry. Duplicates are caught
// by the (user_id, name) unique constraint, not by a select-then-insert.
func (r *Repo) Register(ctx context.Context, userID int, name string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := ValidateName(name); err != nil {
		return nil, err
	}

	exercise := &Exercise{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (user_id, name, created_at)
			VALUES ($1, $2, $3)
		RETURNING id;`,
		exercise.UserID, exercise.Name, exercise.CreatedAt,
	).Scan(&exercise.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrExerciseExists
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))

	return exercise, nil
}

// List returns the user's registered exercises in registration order.
func (r *Repo) List(ctx context.Context, userID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, name, created_at
			FROM exercise
			WHERE user_id = $1
		ORDER BY id ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return exercises, nil
}

// AddMeasurement appends a measurement to a registered exercise.
// The insert resolves the registry row in the same statement, so an
// unregistered exercise yields ErrExerciseNotFound without auto-creating it.
func (r *Repo) AddMeasurement(
	ctx context.Context,
	userID int,
	name string,
	m Measurement,
) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.addmeasurement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if m.Date.IsZero() {
		m.Date = Today()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO measurement (exercise_id, sets, reps, max_weight_kg, date)
			SELECT e.id, $3, $4, $5, $6
			FROM exercise e
			WHERE e.user_id = $1 AND e.name = $2
		RETURNING id, exercise_id;`,
		userID, name,
		m.Sets, m.Reps, m.MaxWeightKg, m.Date.Time,
	).Scan(&m.ID, &m.ExerciseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}

	span.SetAttributes(attribute.Int("measurement.id", m.ID))

	return &m, nil
}

// Measurements returns the full history for an exercise, newest date first,
// same-day entries newest insert first.
func (r *Repo) Measurements(ctx context.Context, userID int, name string) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.measurements")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	exerciseID, err := r.exerciseID(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, exercise_id, sets, reps, max_weight_kg, date
			FROM measurement
			WHERE exercise_id = $1
		ORDER BY date DESC, id DESC;`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	measurements := make([]Measurement, 0)
	for rows.Next() {
		var m Measurement
		var date time.Time
		if err := rows.Scan(&m.ID, &m.ExerciseID, &m.Sets, &m.Reps, &m.MaxWeightKg, &date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		m.Date = NewDate(date)
		measurements = append(measurements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return measurements, nil
}

// Delete removes the exercise and its whole measurement history in one
// transaction. There is no undo.
func (r *Repo) Delete(ctx context.Context, userID int, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`DELETE FROM measurement
			WHERE exercise_id IN (
				SELECT id FROM exercise WHERE user_id = $1 AND name = $2
			);`,
		userID, name,
	); err != nil {
		return fmt.Errorf("delete measurements: %w", err)
	}

	tag, err := tx.Exec(
		ctx,
		`DELETE FROM exercise WHERE user_id = $1 AND name = $2;`,
		userID, name,
	)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = ErrExerciseNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (r *Repo) exerciseID(ctx context.Context, userID int, name string) (int, error) {
	var id int
	err := r.db.QueryRow(
		ctx,
		`SELECT id FROM exercise WHERE user_id = $1 AND name = $2;`,
		userID, name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrExerciseNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get exercise id: %w", err)
	}
	return id, nil
}
