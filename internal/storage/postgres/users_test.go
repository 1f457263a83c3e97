package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestUserRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO users").WithArgs("user", "hash", "customer").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt),
	)
	user, err := repo.Create(context.Background(), "user", "hash", model.RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Login != "user" || user.Role != model.RoleCustomer {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("user", "hash", "customer").WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), "user", "hash", model.RoleCustomer); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("user", "hash", "admin").WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), "user", "hash", model.RoleAdmin); err == nil {
		t.Fatal("expected error")
	}

	columns := []string{"id", "login", "password_hash", "role", "created_at"}
	mock.ExpectQuery("SELECT id, login, password_hash, role, created_at FROM users WHERE login=").WithArgs("root").WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow(int64(1), "root", "hash", "admin", createdAt))
	found, err := repo.GetByLogin(context.Background(), "root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %q", found.Role)
	}

	mock.ExpectQuery("SELECT id, login, password_hash, role, created_at FROM users WHERE login=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByLogin(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("SELECT id, login, password_hash, role, created_at FROM users WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow(int64(1), "user", "hash", "customer", createdAt))
	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("SELECT id, login, password_hash, role, created_at FROM users WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("SELECT id, login, password_hash, role, created_at FROM users WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
