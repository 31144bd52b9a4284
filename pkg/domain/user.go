package domain

import "github.com/google/uuid"

// UserID identifies an authenticated API user. It is carried in the JWT
// subject claim and only used for request attribution; favorites are stored
// per installation, not per user.
type UserID uuid.UUID

// String returns the canonical UUID form.
func (u UserID) String() string {
	return uuid.UUID(u).String()
}
