package test

import (
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// StubHashPrefix marks digests produced by HasherStub.
const StubHashPrefix = "hash:"

// HasherStub stores passwords as StubHashPrefix+password so tests can seed
// users without bcrypt.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return StubHashPrefix + password, nil
}

func (h HasherStub) Compare(hash string, password string) error {
	switch {
	case h.CompareFn != nil:
		return h.CompareFn(hash, password)
	case hash == StubHashPrefix+password:
		return nil
	default:
		return pkgAuth.ErrPasswordMismatch
	}
}

// StrategyStub issues the literal token "token" and parses every token as
// customer 1 unless overridden.
type StrategyStub struct {
	IssueFn func(int64, string) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
}

func (s StrategyStub) IssueToken(userID int64, role string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, role)
	}
	return "token", nil
}

func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: 1, Role: string(model.RoleCustomer)}, nil
}

func (s StrategyStub) Name() string { return "stub" }

// TokenParserStub resolves every token to Identity, or fails with Err.
type TokenParserStub struct {
	Identity model.Identity
	Err      error
	ParseFn  func(string) (model.Identity, error)
}

func (s TokenParserStub) ParseToken(token string) (model.Identity, error) {
	switch {
	case s.ParseFn != nil:
		return s.ParseFn(token)
	case s.Err != nil:
		return model.Identity{}, s.Err
	default:
		return s.Identity, nil
	}
}

var (
	_ pkgAuth.PasswordHasher = HasherStub{}
	_ pkgAuth.Strategy       = StrategyStub{}
)
