package postgres

import (
	"context"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/domain/repository"
	"github.com/garagemlabs/garagem-api/internal/errs"
)

type AppointmentRepository struct {
	db *DB
}

func NewAppointmentRepository(db *DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	row := r.db.Pool.QueryRow(ctx, `
		INSERT INTO appointments (data, hora, descricao, owner_id)
		VALUES ($1, $2, $3, $4::uuid)
		RETURNING id::text, created_at
	`, a.Data, a.Hora, a.Descricao, a.OwnerID)
	return row.Scan(&a.ID, &a.CreatedAt)
}

func (r *AppointmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Appointment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id::text, data, hora, descricao, owner_id::text, created_at
		FROM appointments
		WHERE owner_id = $1::uuid
		ORDER BY data, hora
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Appointment, 0)
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(&a.ID, &a.Data, &a.Hora, &a.Descricao, &a.OwnerID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete is owner-scoped at the SQL level so a foreign id can never remove
// another user's appointment.
func (r *AppointmentRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.Pool.Exec(ctx, `
		DELETE FROM appointments WHERE id = $1::uuid AND owner_id = $2::uuid
	`, id, ownerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
