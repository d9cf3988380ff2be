package entity

import (
	"time"
)

// Base holds the columns every stored document has. ID is a 24 char hex string.
type Base struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
