package model

import (
	"time"

	"github.com/google/uuid"
)

// Practitioner is the single authenticated user of the system. Created at
// first-run seeding; never deleted.
type Practitioner struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
