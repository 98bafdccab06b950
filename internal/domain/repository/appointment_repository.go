package repository

import (
	"context"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
)

// AppointmentRepository defines the interface for maintenance appointments.
// All operations are owner-scoped; there is no sharing concept here.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	// ListByOwner returns the owner's appointments ordered by (data, hora) ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Appointment, error)
	// Delete removes the appointment only when it belongs to ownerID;
	// otherwise errs.ErrNotFound.
	Delete(ctx context.Context, id, ownerID string) error
}
