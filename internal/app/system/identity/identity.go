// internal/app/system/identity/identity.go

// Package identity signs users in against an identity provider and manages
// provider accounts for backoffice admins.
//
// Two providers exist: Firebase (Identity Toolkit REST) for deployments, and
// a local bcrypt provider that keeps password hashes on the users document.
package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid email or password")
	ErrEmailExists        = errors.New("identity: email already registered")
	ErrAccountNotFound    = errors.New("identity: account not found")
	ErrAccountDisabled    = errors.New("identity: account disabled")
	ErrWeakPassword       = errors.New("identity: password too weak")
	ErrTooManyAttempts    = errors.New("identity: too many attempts")
	ErrNotSupported       = errors.New("identity: operation not supported by provider")
)

// MinPasswordLength matches the hosted provider's minimum.
const MinPasswordLength = 6

// Account is a provider-side identity.
type Account struct {
	UID         string
	Email       string
	DisplayName string
	IDToken     string // Firebase only
	// PasswordHash is set by the local provider on CreateAccount and must
	// be stored on the users document.
	PasswordHash string
}

// Provider is an email/password identity backend.
type Provider interface {
	Name() string
	SignIn(ctx context.Context, email, password string) (Account, error)
	CreateAccount(ctx context.Context, email, password, displayName string) (Account, error)
	DeleteAccount(ctx context.Context, uid string) error
}
