// internal/app/features/login/bearer.go
package login

import (
	"context"

	userstore "github.com/dalemusser/ekskulhub/internal/app/store/users"
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/app/system/identity"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
)

// BearerFunc resolves a Firebase ID token to the matching users document so
// API clients that signed in on the hosted identity service can call the
// admin API without a cookie.
func BearerFunc(v *identity.TokenVerifier, users *userstore.Store) auth.BearerFunc {
	return func(ctx context.Context, raw string) (*auth.SessionUser, error) {
		tok, err := v.Verify(ctx, raw)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()

		u, err := users.GetByUID(ctx, tok.UID)
		if err != nil {
			return nil, err
		}
		return &auth.SessionUser{
			ID:    u.ID.Hex(),
			UID:   u.UID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		}, nil
	}
}
