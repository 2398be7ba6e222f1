package user

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/striketrack/backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func expectationsWereMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_List(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	rows := pgxmock.NewRows([]string{"user_id", "user_name"}).
		AddRow("alice", "Alice").
		AddRow("bob", "")
	mock.ExpectQuery(`SELECT user_id, user_name FROM users`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("List() len = %d, want 2", len(users))
	}
	if users[0].ID != "alice" || users[0].Name != "Alice" {
		t.Errorf("List()[0] = %+v", users[0])
	}
	if users[1].DisplayName() != "bob" {
		t.Errorf("List()[1].DisplayName() = %q, want fallback to ID", users[1].DisplayName())
	}

	expectationsWereMet(t, mock)
}

func TestRepo_Get(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found",
			id:   "alice",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"user_id", "user_name"}).
					AddRow("alice", "Alice")
				mock.ExpectQuery(`SELECT user_id, user_name FROM users WHERE`).
					WithArgs("alice").
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			id:   "ghost",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT user_id, user_name FROM users WHERE`).
					WithArgs("ghost").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "empty id rejected before query",
			id:      "",
			setup:   func(pgxmock.PgxPoolIface) {},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := New(mock)
			tt.setup(mock)

			u, err := repo.Get(context.Background(), tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if u.ID != tt.id {
				t.Errorf("Get().ID = %q, want %q", u.ID, tt.id)
			}

			expectationsWereMet(t, mock)
		})
	}
}

func TestRepo_Upsert(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	mock.ExpectExec(`INSERT INTO users .+ ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs("alice", "Alice").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(context.Background(), domain.User{ID: "alice", Name: "Alice"})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	expectationsWereMet(t, mock)
}

func TestRepo_Upsert_EmptyID(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	err := repo.Upsert(context.Background(), domain.User{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Upsert() error = %v, want validation error", err)
	}
}
