package model

import (
	"time"

	"github.com/google/uuid"
)

// Hospital is a named partner facility. Names are unique; duplicate
// creation is rejected rather than upserted.
type Hospital struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
