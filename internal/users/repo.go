package users

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
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type CreateUserParams struct {
	FirstName string
	LastName  string
	HeightCm  int
	WeightKg  float64
	Email     string
	Password  string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create registers a new user; the password is stored as a bcrypt digest.
// Email uniqueness is enforced by the DB constraint, a duplicate yields ErrEmailTaken.
func (r *Repo) Create(ctx context.Context, params CreateUserParams) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	passwordHash, err := pkg.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		HeightCm:     params.HeightCm,
		WeightKg:     params.WeightKg,
		Email:        params.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO app_user
				(first_name, last_name, height_cm, weight_kg, email, password_hash, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		user.FirstName, user.LastName, user.HeightCm, user.WeightKg,
		user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))

	return user, nil
}

// Verify checks email and password against the stored digest. A wrong password
// and an unknown email both yield ErrInvalidCredentials; infra failures come
// back as distinct, wrapped errors so the caller can tell them apart.
func (r *Repo) Verify(ctx context.Context, email, password string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.verify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := r.getByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))

	return user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	user := &User{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, first_name, last_name, height_cm, weight_kg, email, password_hash, created_at
			FROM app_user WHERE id = $1;`,
		id,
	).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.HeightCm,
		&user.WeightKg, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (r *Repo) getByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(
		ctx,
		`SELECT id, first_name, last_name, height_cm, weight_kg, email, password_hash, created_at
			FROM app_user WHERE email = $1;`,
		email,
	).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.HeightCm,
		&user.WeightKg, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
