// internal/app/system/authz/authz.go

// Package authz interprets role strings.
//
// Two shapes are admins: "admin" is the super admin over every club, and
// "<slug>_admin" (e.g. "robotik_admin") is an admin pinned to one club.
// Any other role string grants nothing in the backoffice.
package authz

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/dalemusser/ekskulhub/internal/domain/ekskul"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleSuperAdmin is the unscoped admin role.
const RoleSuperAdmin = "admin"

const clubAdminSuffix = "_admin"

var (
	// ErrForbiddenEkskul is returned when a club admin asks for another club.
	ErrForbiddenEkskul = errors.New("authz: ekskul outside admin scope")
	// ErrUnknownEkskul is returned for a slug that is not a known club.
	ErrUnknownEkskul = errors.New("authz: unknown ekskul")
)

// Scope is what an admin role may see. Super is true for the super admin;
// otherwise Ekskul names the one club the admin manages.
type Scope struct {
	Super  bool   `json:"super"`
	Ekskul string `json:"ekskul,omitempty"`
}

// ParseRole maps a role string to its Scope. ok is false when the role is
// not an admin role.
func ParseRole(role string) (Scope, bool) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == RoleSuperAdmin {
		return Scope{Super: true}, true
	}
	slug, found := strings.CutSuffix(role, clubAdminSuffix)
	if !found || !ekskul.IsValid(slug) || ekskul.Normalize(slug) != slug {
		return Scope{}, false
	}
	return Scope{Ekskul: slug}, true
}

// IsAdminRole reports whether role is "admin" or a known "<slug>_admin".
func IsAdminRole(role string) bool {
	_, ok := ParseRole(role)
	return ok
}

// Allows reports whether the scope covers slug.
func (s Scope) Allows(slug string) bool {
	if s.Super {
		return true
	}
	return s.Ekskul != "" && s.Ekskul == ekskul.Normalize(slug)
}

// ScopeFilter resolves the club filter for a query. requested is the club
// named by the caller ("" for none). The result is the slug to filter on,
// with "" meaning every club (super admin only).
//
// A club admin is always pinned to its own club; naming another club is
// ErrForbiddenEkskul.
func ScopeFilter(scope Scope, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		if !ekskul.IsValid(requested) {
			return "", ErrUnknownEkskul
		}
		requested = ekskul.Normalize(requested)
	}
	if scope.Super {
		return requested, nil
	}
	if scope.Ekskul == "" {
		return "", ErrForbiddenEkskul
	}
	if requested != "" && requested != scope.Ekskul {
		return "", ErrForbiddenEkskul
	}
	return scope.Ekskul, nil
}

// ScopeForWrite resolves the club a new or updated record belongs to. Super
// admins must name a club; club admins may omit it.
func ScopeForWrite(scope Scope, requested string) (string, error) {
	slug, err := ScopeFilter(scope, requested)
	if err != nil {
		return "", err
	}
	if slug == "" {
		return "", ErrUnknownEkskul
	}
	return slug, nil
}

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID and a
// found flag. A missing user or a malformed ID yields "visitor" and ok=false.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// ScopeFrom returns the admin scope of the current request's user.
func ScopeFrom(r *http.Request) (Scope, bool) {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return Scope{}, false
	}
	return ParseRole(role)
}

// IsAdminUser reports whether u holds any admin role.
func IsAdminUser(u *auth.SessionUser) bool {
	return u != nil && IsAdminRole(u.Role)
}

// IsSuperAdminUser reports whether u holds the "admin" role.
func IsSuperAdminUser(u *auth.SessionUser) bool {
	if u == nil {
		return false
	}
	s, ok := ParseRole(u.Role)
	return ok && s.Super
}
