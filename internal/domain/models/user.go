// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a backoffice account. Role encodes both the privilege tier and the
// club scope: "admin" is the super admin, "<ekskul>_admin" is scoped to one club.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID          string             `bson:"uid,omitempty" json:"uid,omitempty"` // identity provider account id
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"`
	Role         string             `bson:"role" json:"role"`
	PasswordHash *string            `bson:"password_hash,omitempty" json:"-"` // local provider only

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
