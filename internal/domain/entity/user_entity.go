package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// SenhaHash holds the bcrypt hash of the login password and must never be
// serialized to clients.
type User struct {
	ID        string
	Nome      string
	Email     string
	SenhaHash string
	Idade     *int
	CreatedAt time.Time
	UpdatedAt time.Time
}
