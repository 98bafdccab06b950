package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/domain/repository"
)

// AppointmentService implements maintenance scheduling. Appointments are
// strictly owner-scoped; there is no sharing or public visibility.
type AppointmentService struct {
	Appointments repository.AppointmentRepository
	Logger       *logrus.Logger
}

func NewAppointmentService(appointments repository.AppointmentRepository, logger *logrus.Logger) *AppointmentService {
	return &AppointmentService{Appointments: appointments, Logger: logger}
}

type CreateAppointmentInput struct {
	Data      time.Time
	Hora      string
	Descricao string
}

func (s *AppointmentService) Create(ctx context.Context, ownerID string, in CreateAppointmentInput) (*entity.Appointment, error) {
	a := &entity.Appointment{
		Data:      in.Data,
		Hora:      in.Hora,
		Descricao: strings.TrimSpace(in.Descricao),
		OwnerID:   ownerID,
	}
	if err := s.Appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"appointment_id": a.ID, "owner_id": ownerID}).Info("appointment created")
	return a, nil
}

func (s *AppointmentService) ListMine(ctx context.Context, ownerID string) ([]entity.Appointment, error) {
	return s.Appointments.ListByOwner(ctx, ownerID)
}

// Delete removes an appointment. Ownership is enforced at the storage layer:
// an id that exists but belongs to someone else is indistinguishable from an
// id that does not exist.
func (s *AppointmentService) Delete(ctx context.Context, ownerID, id string) error {
	return s.Appointments.Delete(ctx, id, ownerID)
}
