// Package user implements the users repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/striketrack/backend/internal/adapter/postgres"
	"github.com/striketrack/backend/internal/domain"
)

const table = "users"

var columns = []string{"user_id", "user_name"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns all tracked users ordered by ID.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var users []domain.User
	if err := pgxscan.Select(ctx, q, &users, sql, args...); err != nil {
		return nil, postgres.MapError(err, "users", "all")
	}

	return users, nil
}

// Get returns a user by ID.
func (r *Repo) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.NewValidationError("user_id", "is required")
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	var u domain.User
	if err := pgxscan.Get(ctx, q, &u, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return &u, nil
}

// Upsert inserts a user or updates its display name. Used by seeding tooling.
func (r *Repo) Upsert(ctx context.Context, u domain.User) error {
	if u.ID == "" {
		return domain.NewValidationError("user_id", "is required")
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(u.ID, u.Name).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET user_name = EXCLUDED.user_name").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert user query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "user", u.ID)
	}

	return nil
}
