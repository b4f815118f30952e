// internal/app/system/identity/local.go
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is what the local provider needs from the users store.
type Credentials interface {
	// CredentialsByEmail returns the account uid and bcrypt hash for email,
	// or ErrAccountNotFound.
	CredentialsByEmail(ctx context.Context, email string) (uid, hash string, err error)
}

// Local checks passwords against bcrypt hashes kept on user documents.
type Local struct {
	Store Credentials
	Cost  int
}

// NewLocal returns a local provider backed by store.
func NewLocal(store Credentials) *Local {
	return &Local{Store: store, Cost: bcrypt.DefaultCost}
}

func (l *Local) Name() string { return "local" }

// dummyHash is compared against when the email is unknown so both paths do
// the same bcrypt work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ekskulhub-dummy-password"), bcrypt.DefaultCost)

func (l *Local) SignIn(ctx context.Context, email, password string) (Account, error) {
	uid, hash, err := l.Store.CredentialsByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, fmt.Errorf("identity: load credentials: %w", err)
	}
	if hash == "" {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return Account{UID: uid, Email: email}, nil
}

// CreateAccount hashes password and mints a uid; nothing is persisted here.
func (l *Local) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	if len(password) < MinPasswordLength {
		return Account{}, ErrWeakPassword
	}
	if _, _, err := l.Store.CredentialsByEmail(ctx, email); err == nil {
		return Account{}, ErrEmailExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return Account{}, fmt.Errorf("identity: check email: %w", err)
	}
	cost := l.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return Account{}, fmt.Errorf("identity: hash password: %w", err)
	}
	return Account{
		UID:          "local-" + uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}, nil
}

// DeleteAccount is a no-op: the hash goes away with the users document.
func (l *Local) DeleteAccount(ctx context.Context, uid string) error {
	return nil
}

// HashPassword is exposed for seeding the first super admin.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
