package identity

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type memCreds map[string][2]string // email -> {uid, hash}

func (m memCreds) CredentialsByEmail(ctx context.Context, email string) (string, string, error) {
	c, ok := m[email]
	if !ok {
		return "", "", ErrAccountNotFound
	}
	return c[0], c[1], nil
}

func TestLocal_SignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	p := NewLocal(memCreds{"admin@sekolah.id": {"local-1", string(hash)}})

	acct, err := p.SignIn(context.Background(), "admin@sekolah.id", "rahasia123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if acct.UID != "local-1" {
		t.Errorf("UID = %q, want local-1", acct.UID)
	}

	if _, err := p.SignIn(context.Background(), "admin@sekolah.id", "salah"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := p.SignIn(context.Background(), "nobody@sekolah.id", "rahasia123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}
}

func TestLocal_CreateAccount(t *testing.T) {
	p := NewLocal(memCreds{"taken@sekolah.id": {"local-9", "x"}})
	p.Cost = bcrypt.MinCost

	acct, err := p.CreateAccount(context.Background(), "baru@sekolah.id", "rahasia123", "Admin Baru")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acct.UID == "" || acct.PasswordHash == "" {
		t.Fatalf("expected uid and hash, got %+v", acct)
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte("rahasia123")) != nil {
		t.Error("hash does not match password")
	}

	if _, err := p.CreateAccount(context.Background(), "taken@sekolah.id", "rahasia123", ""); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate email: err = %v", err)
	}
	if _, err := p.CreateAccount(context.Background(), "x@sekolah.id", "123", ""); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("short password: err = %v", err)
	}
}
