package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const minPasswordLength = 6

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a customer account and returns its auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, "", domainErrors.InvalidArgument("login is required")
	}
	if len(password) < minPasswordLength {
		return nil, "", domainErrors.InvalidArgument("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > pkgAuth.MaxPasswordBytes {
		return nil, "", domainErrors.InvalidArgument("password must be at most %d bytes", pkgAuth.MaxPasswordBytes)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	usr, err := u.users.Create(ctx, login, hash, model.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken resolves a bearer token into the caller identity.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Identity{}, err
	}
	role := model.Role(claims.Role)
	if !role.Valid() {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return model.Identity{UserID: claims.UserID, Role: role}, nil
}

// EnsureAdmin creates the admin account on first start. An existing admin with
// the same login is left untouched.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, login, password string, logger *slog.Logger) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil
	}

	existing, err := u.users.GetByLogin(ctx, login)
	switch {
	case err == nil && existing.Role == model.RoleAdmin:
		return nil
	case err == nil:
		return fmt.Errorf("seed admin %q: login belongs to a %s account", login, existing.Role)
	case !errors.Is(err, domainErrors.ErrNotFound):
		return fmt.Errorf("seed admin %q: %w", login, err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("seed admin %q: hash password: %w", login, err)
	}
	usr, err := u.users.Create(ctx, login, hash, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin %q: %w", login, err)
	}
	logger.Info("admin account created", slog.String("login", usr.Login), slog.Int64("user_id", usr.ID))
	return nil
}
