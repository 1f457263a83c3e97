package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64, role string) (string, error) {
			return fmt.Sprintf("token-%d-%s", userID, role), nil
		},
		ParseFn: func(token string) (pkgAuth.Claims, error) {
			var (
				id   int64
				role string
			)
			if _, err := fmt.Sscanf(token, "token-%d-%s", &id, &role); err != nil {
				return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
			}
			return pkgAuth.Claims{UserID: id, Role: role}, nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingUsers struct{ err error }

func (f failingUsers) Create(context.Context, string, string, model.Role) (*model.User, error) {
	return nil, f.err
}

func (f failingUsers) GetByLogin(context.Context, string) (*model.User, error) { return nil, f.err }

func (f failingUsers) GetByID(context.Context, int64) (*model.User, error) { return nil, f.err }

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewAuthUseCase(store.Users(), testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "  alice  ", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 || user.Login != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("registered users must be customers, got %q", user.Role)
	}
	if token != fmt.Sprintf("token-%d-customer", user.ID) {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := store.Users().GetByLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewMemoryStore().Users(), testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "bob", "secret1"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "bob", "secret1"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewMemoryStore().Users(), testhelpers.HasherStub{}, newStrategyStub())
	for _, creds := range [][2]string{{"", "password"}, {"   ", "password"}, {"user", ""}, {"user", "12345"}, {"user", strings.Repeat("x", 73)}} {
		if _, _, err := uc.Register(context.Background(), creds[0], creds[1]); !errors.Is(err, domainErrors.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument for %q/%q, got %v", creds[0], creds[1], err)
		}
	}
}

func TestAuthUseCaseRegisterFailures(t *testing.T) {
	ctx := context.Background()

	uc := NewAuthUseCase(testhelpers.NewMemoryStore().Users(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, newStrategyStub())
	if _, _, err := uc.Register(ctx, "user", "password"); err == nil {
		t.Fatal("expected hashing error")
	}

	uc = NewAuthUseCase(failingUsers{err: fmt.Errorf("db down")}, testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Register(ctx, "user", "password"); err == nil {
		t.Fatal("expected repository error")
	}

	uc = NewAuthUseCase(testhelpers.NewMemoryStore().Users(), testhelpers.HasherStub{}, testhelpers.StrategyStub{
		IssueFn: func(int64, string) (string, error) { return "", fmt.Errorf("cannot issue token") },
	})
	if _, _, err := uc.Register(ctx, "user", "password"); err == nil {
		t.Fatal("expected token issuing error")
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewMemoryStore().Users(), testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, _, err := uc.Register(ctx, "carol", "123456")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "absent", "123456"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown login, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for empty input, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "carol", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != fmt.Sprintf("token-%d-customer", user.ID) {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateRepositoryError(t *testing.T) {
	uc := NewAuthUseCase(failingUsers{err: fmt.Errorf("storage unavailable")}, testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Authenticate(context.Background(), "user", "pass"); err == nil || err.Error() != "storage unavailable" {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewMemoryStore().Users(), testhelpers.HasherStub{}, newStrategyStub())

	identity, err := uc.ParseToken("token-42-admin")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if identity.UserID != 42 || !identity.IsAdmin() {
		t.Fatalf("unexpected identity %+v", identity)
	}

	for _, token := range []string{"", "bad-token", "token-1-superuser"} {
		if _, err := uc.ParseToken(token); err != pkgAuth.ErrInvalidToken {
			t.Fatalf("expected invalid token error for %q, got %v", token, err)
		}
	}
}

func TestAuthUseCaseEnsureAdmin(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewAuthUseCase(store.Users(), testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()

	if err := uc.EnsureAdmin(ctx, "", "", discardLogger()); err != nil {
		t.Fatalf("empty login must be a no-op, got %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "root", "toor12", discardLogger()); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "root", "toor12", discardLogger()); err != nil {
		t.Fatalf("second seed must be idempotent, got %v", err)
	}

	admin, err := store.Users().GetByLogin(ctx, "root")
	if err != nil || admin.Role != model.RoleAdmin {
		t.Fatalf("expected seeded admin, got %+v, %v", admin, err)
	}

	if _, _, err := uc.Register(ctx, "dave", "password"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "dave", "password", discardLogger()); err == nil {
		t.Fatal("expected error when login belongs to a customer")
	}
}
