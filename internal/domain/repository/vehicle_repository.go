package repository

import (
	"context"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
)

// VehicleRepository defines the interface for vehicle persistence.
// Uniqueness of the plate is delegated to the storage engine; conflicting
// writes surface as errs.ErrDuplicatePlate.
type VehicleRepository interface {
	// Create inserts a new vehicle and fills in the generated id and timestamps.
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	// GetWithOwner resolves the owner to a {id, nome} projection for display.
	GetWithOwner(ctx context.Context, id string) (*entity.VehicleWithOwner, error)
	// ListVisibleTo returns vehicles owned by or shared with the user.
	ListVisibleTo(ctx context.Context, userID string) ([]entity.Vehicle, error)
	// ListPublic returns all public vehicles with their owner projection.
	ListPublic(ctx context.Context) ([]entity.VehicleWithOwner, error)
	// UpdateDetails persists core fields and additional details.
	UpdateDetails(ctx context.Context, v *entity.Vehicle) error
	SetImageURL(ctx context.Context, id, url string) error
	// AddShare appends the user to the shared set. Returns errs.ErrAlreadyShared
	// when the user is already present; the set never grows with duplicates.
	AddShare(ctx context.Context, vehicleID, userID string) error
	// TogglePrivacy atomically flips is_public and returns the new value.
	TogglePrivacy(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
