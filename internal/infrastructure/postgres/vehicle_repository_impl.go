package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/domain/repository"
	"github.com/garagemlabs/garagem-api/internal/errs"
)

const vehicleColumns = `id::text, modelo, placa, ano, COALESCE(cor, ''),
		COALESCE(imagem_url, ''), COALESCE(valor_fipe, ''), recall_pendente,
		proxima_revisao_km, owner_id::text, shared_with::text[], is_public,
		created_at, updated_at`

type VehicleRepository struct {
	db *DB
}

func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *entity.Vehicle) error {
	row := r.db.Pool.QueryRow(ctx, `
		INSERT INTO vehicles (modelo, placa, ano, cor, valor_fipe, recall_pendente, proxima_revisao_km, owner_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8::uuid)
		RETURNING id::text, created_at, updated_at
	`, v.Modelo, v.Placa, v.Ano, v.Cor, v.ValorFIPE, v.RecallPendente, v.ProximaRevisaoKm, v.OwnerID)

	if err := row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicatePlate
		}
		return err
	}
	v.SharedWith = []string{}
	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	v := &entity.Vehicle{}
	row := r.db.Pool.QueryRow(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE id = $1::uuid
	`, id)
	if err := scanVehicle(row, v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VehicleRepository) GetWithOwner(ctx context.Context, id string) (*entity.VehicleWithOwner, error) {
	vo := &entity.VehicleWithOwner{}
	row := r.db.Pool.QueryRow(ctx, `
		SELECT v.id::text, v.modelo, v.placa, v.ano, COALESCE(v.cor, ''),
			COALESCE(v.imagem_url, ''), COALESCE(v.valor_fipe, ''), v.recall_pendente,
			v.proxima_revisao_km, v.owner_id::text, v.shared_with::text[], v.is_public,
			v.created_at, v.updated_at, u.nome
		FROM vehicles v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1::uuid
	`, id)
	if err := row.Scan(&vo.ID, &vo.Modelo, &vo.Placa, &vo.Ano, &vo.Cor,
		&vo.ImagemURL, &vo.ValorFIPE, &vo.RecallPendente, &vo.ProximaRevisaoKm,
		&vo.OwnerID, &vo.SharedWith, &vo.IsPublic, &vo.CreatedAt, &vo.UpdatedAt,
		&vo.Owner.Nome); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	vo.Owner.ID = vo.OwnerID
	return vo, nil
}

func (r *VehicleRepository) ListVisibleTo(ctx context.Context, userID string) ([]entity.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE owner_id = $1::uuid OR shared_with @> ARRAY[$1]::uuid[]
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Vehicle, 0)
	for rows.Next() {
		var v entity.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VehicleRepository) ListPublic(ctx context.Context) ([]entity.VehicleWithOwner, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT v.id::text, v.modelo, v.placa, v.ano, COALESCE(v.cor, ''),
			COALESCE(v.imagem_url, ''), COALESCE(v.valor_fipe, ''), v.recall_pendente,
			v.proxima_revisao_km, v.owner_id::text, v.shared_with::text[], v.is_public,
			v.created_at, v.updated_at, u.nome
		FROM vehicles v
		JOIN users u ON u.id = v.owner_id
		WHERE v.is_public
		ORDER BY v.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.VehicleWithOwner, 0)
	for rows.Next() {
		var vo entity.VehicleWithOwner
		if err := rows.Scan(&vo.ID, &vo.Modelo, &vo.Placa, &vo.Ano, &vo.Cor,
			&vo.ImagemURL, &vo.ValorFIPE, &vo.RecallPendente, &vo.ProximaRevisaoKm,
			&vo.OwnerID, &vo.SharedWith, &vo.IsPublic, &vo.CreatedAt, &vo.UpdatedAt,
			&vo.Owner.Nome); err != nil {
			return nil, err
		}
		vo.Owner.ID = vo.OwnerID
		out = append(out, vo)
	}
	return out, rows.Err()
}

func (r *VehicleRepository) UpdateDetails(ctx context.Context, v *entity.Vehicle) error {
	res, err := r.db.Pool.Exec(ctx, `
		UPDATE vehicles
		SET modelo = $1, placa = $2, ano = $3, cor = NULLIF($4, ''), valor_fipe = NULLIF($5, ''),
			recall_pendente = $6, proxima_revisao_km = $7, updated_at = now()
		WHERE id = $8::uuid
	`, v.Modelo, v.Placa, v.Ano, v.Cor, v.ValorFIPE, v.RecallPendente, v.ProximaRevisaoKm, v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicatePlate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) SetImageURL(ctx context.Context, id, url string) error {
	res, err := r.db.Pool.Exec(ctx, `
		UPDATE vehicles SET imagem_url = $1, updated_at = now() WHERE id = $2::uuid
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// AddShare appends atomically; the guard keeps the shared set duplicate-free
// so a repeated share affects zero rows.
func (r *VehicleRepository) AddShare(ctx context.Context, vehicleID, userID string) error {
	res, err := r.db.Pool.Exec(ctx, `
		UPDATE vehicles
		SET shared_with = shared_with || $2::uuid, updated_at = now()
		WHERE id = $1::uuid AND NOT (shared_with @> ARRAY[$2]::uuid[])
	`, vehicleID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrAlreadyShared
	}
	return nil
}

func (r *VehicleRepository) TogglePrivacy(ctx context.Context, id string) (bool, error) {
	var isPublic bool
	row := r.db.Pool.QueryRow(ctx, `
		UPDATE vehicles
		SET is_public = NOT is_public, updated_at = now()
		WHERE id = $1::uuid
		RETURNING is_public
	`, id)
	if err := row.Scan(&isPublic); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, errs.ErrNotFound
		}
		return false, err
	}
	return isPublic, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row, v *entity.Vehicle) error {
	return row.Scan(&v.ID, &v.Modelo, &v.Placa, &v.Ano, &v.Cor, &v.ImagemURL,
		&v.ValorFIPE, &v.RecallPendente, &v.ProximaRevisaoKm, &v.OwnerID,
		&v.SharedWith, &v.IsPublic, &v.CreatedAt, &v.UpdatedAt)
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)
