package entity

import (
	"time"
)

// User is the aggregate root for the author domain.
// PasswordHash holds a bcrypt hash, never the plaintext. The hash must not
// leak into API responses; handlers build their own payloads instead of
// serializing the entity.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
