package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/domain/repository"
	"github.com/garagemlabs/garagem-api/internal/errs"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (nome, email, senha_hash, idade)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, u.Nome, u.Email, u.SenhaHash, u.Idade)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id::text, nome, email, senha_hash, idade, created_at, updated_at
		FROM users
		WHERE id = $1::uuid
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id::text, nome, email, senha_hash, idade, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.Pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Idade,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	res, err := r.db.Pool.Exec(ctx, `
		UPDATE users
		SET nome = $1, idade = $2, updated_at = now()
		WHERE id = $3::uuid
	`, u.Nome, u.Idade, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
