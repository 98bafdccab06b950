package repository

import (
	"context"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create inserts a new user and fills in the generated id and timestamps.
	// Returns errs.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateProfile persists nome and idade changes only.
	UpdateProfile(ctx context.Context, u *entity.User) error
}
