package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the account record for anyone using the canteen. The ID is the
// subject issued by the identity provider. Role never changes after creation.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}
